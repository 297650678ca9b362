// Package render: PDF renderer.
// Lays Scroll lines out as a styled PDF using gofpdf. Headings get variable
// font sizes, code and table bodies are monospace, and image and link
// annotations are printed as gray notes.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/gaurav-prasanna/scrollpipe/core"
	"github.com/gaurav-prasanna/scrollpipe/core/scroll"
)

// headingSizes are font sizes by heading level.
var headingSizes = map[int]float64{1: 18, 2: 15, 3: 13, 4: 12, 5: 11, 6: 10}

// PDFRenderer renders Scroll content as a PDF document.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render converts Scroll into PDF bytes.
func (r *PDFRenderer) Render(doc string, meta core.DocumentMetadata) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	if meta.Title != "" {
		pdf.SetFont("Helvetica", "B", 18)
		pdf.MultiCell(0, 8, tr(meta.Title), "", "L", false)
		pdf.Ln(4)
	}
	if meta.Origin != "" {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.SetTextColor(100, 100, 100)
		pdf.MultiCell(0, 5, tr("Source: "+meta.Origin), "", "L", false)
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(6)
	}

	lines := splitLines(doc)
	for i := 0; i < len(lines); i++ {
		l := lines[i]
		margin := 10 + float64(l.depth)*4
		pdf.SetX(margin)

		switch {
		case l.text == "":
			pdf.Ln(3)

		case l.text == scroll.Code || l.text == scroll.Table:
			end := blockEnd(lines, i)
			pdf.Ln(2)
			pdf.SetFont("Courier", "", 9)
			pdf.SetFillColor(245, 245, 245)
			for _, body := range lines[i+1 : end] {
				pdf.SetX(margin)
				pdf.MultiCell(0, 4.5, tr(strings.Repeat(" ", max(0, body.depth-l.depth-1))+body.text), "", "L", true)
			}
			pdf.Ln(2)
			i = end - 1

		case headingRegex.MatchString(l.text):
			m := headingRegex.FindStringSubmatch(l.text)
			size := headingSizes[len(m[1])]
			pdf.Ln(4)
			pdf.SetFont("Helvetica", "B", size)
			pdf.MultiCell(0, size*0.6, tr(plain(m[2])), "", "L", false)
			pdf.Ln(2)

		case strings.HasPrefix(l.text, scroll.Image):
			note(pdf, tr("[image: "+strings.TrimPrefix(l.text, scroll.Image)+"]"))

		case isAnnotation(l.text):
			note(pdf, tr(l.text))

		case strings.HasPrefix(l.text, scroll.Quote):
			pdf.SetFont("Helvetica", "I", 10)
			pdf.MultiCell(0, 5, tr(plain(strings.TrimPrefix(l.text, scroll.Quote))), "", "L", false)

		case strings.HasPrefix(l.text, scroll.Bullet):
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, tr("• "+plain(strings.TrimPrefix(l.text, scroll.Bullet))), "", "L", false)

		case strings.HasPrefix(l.text, scroll.Paragraph):
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, tr(plain(strings.TrimPrefix(l.text, scroll.Paragraph))), "", "L", false)

		default:
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, tr(plain(l.text)), "", "L", false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

func note(pdf *gofpdf.Fpdf, text string) {
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(110, 110, 110)
	pdf.MultiCell(0, 4, text, "", "L", false)
	pdf.SetTextColor(0, 0, 0)
}

// isAnnotation reports whether text is a link, title or caption line.
func isAnnotation(text string) bool {
	for _, p := range []string{scroll.Link, scroll.Title, scroll.Caption} {
		if strings.HasPrefix(text, strings.TrimLeft(p, " ")) {
			return true
		}
	}
	return false
}

// plain strips Scroll inline markers and escapes for display.
var plain = strings.NewReplacer(
	`\*`, "*", `\_`, "_", "\\`", "`", `\[`, "[", `\]`, "]", `\^`, "^",
	"*", "", "`", "",
).Replace

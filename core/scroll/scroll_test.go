package scroll

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanup(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "adds trailing newline", in: "# Title", want: "# Title\n"},
		{name: "drops extra trailing newlines", in: "# Title\n\n\n", want: "# Title\n"},
		{name: "collapses blank runs", in: "a\n\n\n\nb", want: "a\n\nb\n"},
		{name: "strips trailing spaces", in: "a  \t\nb ", want: "a\nb\n"},
		{name: "whitespace-only lines count as blank", in: "a\n\n  \n\nb", want: "a\n\nb\n"},
		{name: "trims leading blank lines", in: "\n\n- a\n- b\n", want: "- a\n- b\n"},
		{name: "normalizes CRLF", in: "a\r\n\r\n\r\nb\r\n", want: "a\n\nb\n"},
		{name: "empty input", in: "", want: "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Cleanup(tt.in))
		})
	}
}

func TestCleanupIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"a\n\n  \n\nb",
		"code\n line  \n\n\n\n line\n",
		"  # x  \n\n\n* y\t\n\n",
		"\t\n \n",
	}
	for _, in := range inputs {
		once := Cleanup(in)
		assert.Equal(t, once, Cleanup(once), "input %q", in)
	}
}

func TestCodeBlock(t *testing.T) {
	assert.Equal(t, "code\n fmt.Println()\n x := 1\n", CodeBlock("", "\nfmt.Println()\nx := 1\n"))
	assert.Equal(t, " code\n  a\n", CodeBlock(" ", "a"))
	assert.Equal(t, "code\n", CodeBlock("", "\n\n"))
}

func TestHeading(t *testing.T) {
	assert.Equal(t, "# ", Heading(1))
	assert.Equal(t, "### ", Heading(3))
	assert.Equal(t, "# ", Heading(0))
}

func TestIndentLines(t *testing.T) {
	assert.Equal(t, " a\n\n b", IndentLines("a\n\nb", " "))
}

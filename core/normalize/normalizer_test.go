package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	n := New()

	md, err := n.Normalize("<h1>Title</h1><p>Some <strong>bold</strong> and <em>soft</em> text.</p>")
	require.NoError(t, err)
	assert.Contains(t, md, "# Title")
	assert.Contains(t, md, "**bold**")
	assert.Contains(t, md, "_soft_")
}

func TestNormalize_Table(t *testing.T) {
	md, err := New().Normalize("<table><tr><th>a</th><th>b</th></tr><tr><td>1</td><td>2</td></tr></table>")
	require.NoError(t, err)
	assert.Contains(t, md, "| a")
	assert.Contains(t, md, "| 1")
}

func TestNormalize_Empty(t *testing.T) {
	md, err := New().Normalize("  \n")
	require.NoError(t, err)
	assert.Empty(t, md)
}

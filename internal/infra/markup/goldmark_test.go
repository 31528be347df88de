package markup_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/automaton-legal/internal/infra/markup"
)

func TestRender(t *testing.T) {
	html, err := markup.NewRenderer().Render("## Risk\n\n**High** exposure\n\n- fix retention\n\n~~old~~\n\n| a | b |\n|---|---|\n| 1 | 2 |\n")
	require.NoError(t, err)

	assert.Contains(t, html, "<h2>Risk</h2>")
	assert.Contains(t, html, "<strong>High</strong>")
	assert.Contains(t, html, "<li>fix retention</li>")
	assert.Contains(t, html, "<del>old</del>")
	assert.Contains(t, html, "<table>")
}

func TestRender_DropsRawHTML(t *testing.T) {
	html, err := markup.NewRenderer().Render("<script>alert(1)</script>\n\ntext")
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "<p>text</p>")
}

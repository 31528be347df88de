package markup

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/bryanwahyu/automaton-legal/internal/domain/analysis"
)

// Renderer converts model markdown to HTML with GitHub flavoured extensions
// (tables, strikethrough, autolinks). Raw HTML in the input is not passed through.
type Renderer struct {
	md goldmark.Markdown
}

var _ analysis.Renderer = (*Renderer)(nil)

func NewRenderer() *Renderer {
	return &Renderer{md: goldmark.New(goldmark.WithExtensions(extension.GFM))}
}

func (r *Renderer) Render(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(markdown), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

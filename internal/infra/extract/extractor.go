package extract

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/bryanwahyu/automaton-legal/internal/domain/analysiserrors"
	"github.com/bryanwahyu/automaton-legal/internal/domain/documents"
)

// ErrNoText is wrapped when a readable file yields no text at all.
var ErrNoText = errors.New("no extractable text")

// Extractor handles .pdf, .docx and .txt uploads.
type Extractor struct{}

var _ documents.Extractor = Extractor{}

// Supported reports whether ext (with dot, any case) can be extracted.
func Supported(ext string) bool {
	switch strings.ToLower(ext) {
	case ".pdf", ".docx", ".txt":
		return true
	}
	return false
}

func (Extractor) Extract(data []byte, ext string) (string, error) {
	ext = strings.ToLower(ext)

	var (
		text string
		err  error
	)
	switch ext {
	case ".pdf":
		text, err = pdfText(data)
	case ".docx":
		text, err = docxText(data)
	case ".txt":
		if !utf8.Valid(data) {
			err = errors.New("text file is not valid UTF-8")
		}
		text = string(data)
	default:
		return "", &analysiserrors.ExtractionError{Extension: ext, Unsupported: true}
	}
	if err != nil {
		return "", &analysiserrors.ExtractionError{Extension: ext, Err: err}
	}

	text = Sanitize(text)
	if text == "" {
		return "", &analysiserrors.ExtractionError{Extension: ext, Err: ErrNoText}
	}
	return text, nil
}

// Sanitize drops NUL and other control characters except common whitespace.
func Sanitize(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, ch := range s {
		if ch == '\n' || ch == '\r' || ch == '\t' {
			b.WriteRune(ch)
			continue
		}
		if ch < 0x20 || ch == utf8.RuneError {
			continue
		}
		b.WriteRune(ch)
	}
	return strings.TrimSpace(b.String())
}

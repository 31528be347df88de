package ai

import (
	"encoding/json"
	"strings"
	"unicode"

	"github.com/bryanwahyu/automaton-legal/internal/domain/analysiserrors"
)

const fence = "```"

// Normalizer is implemented by decode targets that fill in defaults for
// fields the model left out.
type Normalizer interface {
	Normalize()
}

// StripFence trims the text and removes a fenced block wrapper (an opening
// ``` line with an optional format tag and a closing ``` line) when the whole
// payload is wrapped in one. Anything else is returned trimmed and unchanged.
func StripFence(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, fence) || len(s) < 2*len(fence) || !strings.HasSuffix(s, fence) {
		return s
	}

	nl := strings.IndexByte(s, '\n')
	if nl < 0 {
		return stripInlineFence(s)
	}

	tag := strings.TrimSpace(s[len(fence):nl])
	if !isFenceTag(tag) {
		return s
	}

	body := s[nl+1:]
	last := strings.LastIndexByte(body, '\n')
	closing := body
	if last >= 0 {
		closing = body[last+1:]
	}
	if strings.TrimSpace(closing) != fence {
		return s
	}
	if last < 0 {
		return ""
	}
	return strings.TrimSpace(body[:last])
}

// ```json {"a":1}``` on a single line
func stripInlineFence(s string) string {
	inner := s[len(fence) : len(s)-len(fence)]
	if strings.Contains(inner, fence) {
		return s
	}
	trimmed := strings.TrimLeftFunc(inner, unicode.IsLetter)
	if trimmed != inner && trimmed != "" && unicode.IsSpace(rune(trimmed[0])) {
		inner = trimmed
	}
	return strings.TrimSpace(inner)
}

func isFenceTag(tag string) bool {
	for _, r := range tag {
		if unicode.IsSpace(r) || r == '`' {
			return false
		}
	}
	return true
}

// DecodeResponse strips fence wrappers from raw model output and decodes the
// remainder as JSON into v. Decode failures come back as
// *analysiserrors.MalformedResponseError with Raw set to the trimmed input.
func DecodeResponse(raw string, v any) error {
	trimmed := strings.TrimSpace(raw)
	payload := StripFence(trimmed)
	if err := json.Unmarshal([]byte(payload), v); err != nil {
		return &analysiserrors.MalformedResponseError{Raw: trimmed, Err: err}
	}
	if n, ok := v.(Normalizer); ok {
		n.Normalize()
	}
	return nil
}

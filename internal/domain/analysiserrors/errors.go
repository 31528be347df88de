package analysiserrors

import (
	"errors"
	"fmt"
)

// Kind classifies pipeline failures so the front end can render a specific message.
type Kind string

const (
	KindNotFound            Kind = "not_found"
	KindPrerequisiteMissing Kind = "prerequisite_missing"
	KindExtraction          Kind = "extraction_failed"
	KindGenerationFailed    Kind = "generation_failed"
	KindMalformedResponse   Kind = "malformed_response"
	KindInternal            Kind = "internal"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrPrerequisiteMissing = errors.New("prerequisite stage missing")
	ErrExtraction          = errors.New("text extraction failed")
	ErrGenerationFailed    = errors.New("generation failed")
	ErrMalformedResponse   = errors.New("malformed model response")
)

// NotFoundError reports an absent document or issue.
type NotFoundError struct {
	Resource string // document | issue
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// PrerequisiteMissingError is returned when a stage runs before its upstream stage.
type PrerequisiteMissingError struct {
	DocumentID string
	Stage      string
	Missing    string
}

func (e *PrerequisiteMissingError) Error() string {
	return fmt.Sprintf("stage %q for document %s requires %q to run first", e.Stage, e.DocumentID, e.Missing)
}

func (e *PrerequisiteMissingError) Is(target error) bool { return target == ErrPrerequisiteMissing }

// ExtractionError wraps a failure to turn uploaded bytes into text.
type ExtractionError struct {
	Extension   string
	Unsupported bool
	Err         error
}

func (e *ExtractionError) Error() string {
	if e.Unsupported {
		return fmt.Sprintf("unsupported file format: %q", e.Extension)
	}
	if e.Err == nil {
		return fmt.Sprintf("extract %s: failed", e.Extension)
	}
	return fmt.Sprintf("extract %s: %v", e.Extension, e.Err)
}

func (e *ExtractionError) Is(target error) bool { return target == ErrExtraction }
func (e *ExtractionError) Unwrap() error        { return e.Err }

// GenerationFailedError wraps a text generator failure for a stage.
type GenerationFailedError struct {
	Stage string
	Err   error
}

func (e *GenerationFailedError) Error() string {
	return fmt.Sprintf("stage %q: generation failed: %v", e.Stage, e.Err)
}

func (e *GenerationFailedError) Is(target error) bool { return target == ErrGenerationFailed }
func (e *GenerationFailedError) Unwrap() error        { return e.Err }

// MalformedResponseError keeps the raw model output that failed to decode.
type MalformedResponseError struct {
	Stage string
	Raw   string
	Err   error
}

func (e *MalformedResponseError) Error() string {
	if e.Stage == "" {
		return fmt.Sprintf("failed to parse AI response: %v", e.Err)
	}
	return fmt.Sprintf("stage %q: failed to parse AI response: %v", e.Stage, e.Err)
}

func (e *MalformedResponseError) Is(target error) bool { return target == ErrMalformedResponse }
func (e *MalformedResponseError) Unwrap() error        { return e.Err }

// KindOf maps any error in the chain to its Kind.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrPrerequisiteMissing):
		return KindPrerequisiteMissing
	case errors.Is(err, ErrExtraction):
		return KindExtraction
	case errors.Is(err, ErrMalformedResponse):
		return KindMalformedResponse
	case errors.Is(err, ErrGenerationFailed):
		return KindGenerationFailed
	default:
		return KindInternal
	}
}

// RawResponse returns the raw model text carried by a MalformedResponseError, if any.
func RawResponse(err error) (string, bool) {
	var m *MalformedResponseError
	if errors.As(err, &m) {
		return m.Raw, true
	}
	return "", false
}

package analysis

import (
	"context"

	domain "github.com/bryanwahyu/automaton-legal/internal/domain/analysis"
	"github.com/bryanwahyu/automaton-legal/internal/domain/analysiserrors"
	"github.com/bryanwahyu/automaton-legal/internal/domain/documents"
)

// Stage describes one pipeline step and what it depends on.
type Stage interface {
	Name() domain.Stage
	// Requires lists the cached stages that must exist before this one runs.
	Requires() []domain.Stage
	// NeedsDocument reports whether the stage reads the uploaded document.
	NeedsDocument() bool
}

// Orchestrator enforces stage ordering. Ready must be called before any
// prompt is built so a refused request never reaches the generator.
type Orchestrator struct {
	Docs  documents.Repository
	Cache domain.Cache
}

// Ready returns the document (when the stage needs it) once every
// prerequisite of st is satisfied for docID.
func (o Orchestrator) Ready(ctx context.Context, docID string, st Stage) (documents.Document, error) {
	var doc documents.Document
	if st.NeedsDocument() {
		d, err := o.Docs.Get(ctx, docID)
		if err != nil {
			return documents.Document{}, err
		}
		doc = d
	}
	for _, req := range st.Requires() {
		if !o.Cache.Has(docID, req) {
			return documents.Document{}, &analysiserrors.PrerequisiteMissingError{
				DocumentID: docID,
				Stage:      string(st.Name()),
				Missing:    string(req),
			}
		}
	}
	return doc, nil
}

// cached reads a typed stage result. A value of the wrong type counts as absent.
func cached[T any](c domain.Cache, docID string, stage domain.Stage) (T, bool) {
	var zero T
	v, ok := c.Get(docID, stage)
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	if !ok {
		return zero, false
	}
	return t, true
}

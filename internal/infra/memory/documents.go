package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bryanwahyu/automaton-legal/internal/domain/analysiserrors"
	"github.com/bryanwahyu/automaton-legal/internal/domain/documents"
)

// DocumentStore keeps uploaded documents in process memory.
type DocumentStore struct {
	mu    sync.RWMutex
	seq   int
	order []string
	docs  map[string]documents.Document
	now   func() time.Time
}

// NewDocumentStore builds an empty store. A nil now uses time.Now.
func NewDocumentStore(now func() time.Time) *DocumentStore {
	if now == nil {
		now = time.Now
	}
	return &DocumentStore{
		docs: make(map[string]documents.Document),
		now:  now,
	}
}

func (s *DocumentStore) Create(_ context.Context, d documents.NewDocument) (documents.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	ts := s.now()
	doc := documents.Document{
		// seq bikin id unik walau upload di detik yang sama
		ID:         fmt.Sprintf("doc_%d_%s", s.seq, ts.Format("20060102150405")),
		Filename:   d.Filename,
		DocType:    d.DocType,
		Content:    d.Content,
		UploadTime: ts,
		ArchiveURL: d.ArchiveURL,
	}
	s.docs[doc.ID] = doc
	s.order = append(s.order, doc.ID)
	return doc, nil
}

func (s *DocumentStore) Get(_ context.Context, id string) (documents.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.docs[id]
	if !ok {
		return documents.Document{}, &analysiserrors.NotFoundError{Resource: "document", ID: id}
	}
	return d, nil
}

func (s *DocumentStore) List(_ context.Context) ([]documents.Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]documents.Summary, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.docs[id].Summary())
	}
	return out, nil
}

func (s *DocumentStore) MarkProcessed(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.docs[id]
	if !ok {
		return nil
	}
	d.Processed = true
	s.docs[id] = d
	return nil
}

package memory

import (
	"sync"

	"github.com/bryanwahyu/automaton-legal/internal/domain/analysis"
)

type cacheKey struct {
	docID string
	stage analysis.Stage
}

// AnalysisCache holds the latest stage result per document.
// Values are stored as given; callers put fully built results and never
// mutate them afterwards.
type AnalysisCache struct {
	mu      sync.RWMutex
	entries map[cacheKey]any
}

func NewAnalysisCache() *AnalysisCache {
	return &AnalysisCache{entries: make(map[cacheKey]any)}
}

func (c *AnalysisCache) Put(docID string, stage analysis.Stage, result any) {
	c.mu.Lock()
	c.entries[cacheKey{docID, stage}] = result
	c.mu.Unlock()
}

func (c *AnalysisCache) Get(docID string, stage analysis.Stage) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[cacheKey{docID, stage}]
	return v, ok
}

func (c *AnalysisCache) Has(docID string, stage analysis.Stage) bool {
	_, ok := c.Get(docID, stage)
	return ok
}

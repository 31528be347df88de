package middleware

import (
	"encoding/json"
	"net/http"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// StageStats counts the outcomes of one pipeline stage.
type StageStats struct {
	Runs            uint64 `json:"runs"`
	Failed          uint64 `json:"failed"`
	TotalDurationMS int64  `json:"total_duration_ms"`
}

// Metrics stores application metrics
type Metrics struct {
	RequestsTotal      uint64
	RequestsInProgress uint64
	RequestsSuccess    uint64
	RequestsFailed     uint64
	StartTime          time.Time

	mu     sync.Mutex
	stages map[string]*StageStats
}

func NewMetrics() *Metrics {
	return &Metrics{StartTime: time.Now(), stages: make(map[string]*StageStats)}
}

// ObserveStage records one stage outcome.
func (m *Metrics) ObserveStage(stage string, ok bool, d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, found := m.stages[stage]
	if !found {
		s = &StageStats{}
		m.stages[stage] = s
	}
	s.Runs++
	if !ok {
		s.Failed++
	}
	s.TotalDurationMS += d.Milliseconds()
}

// Stage returns a copy of the counters for one stage.
func (m *Metrics) Stage(stage string) StageStats {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.stages[stage]; ok {
		return *s
	}
	return StageStats{}
}

// Snapshot returns current metrics
func (m *Metrics) Snapshot() map[string]interface{} {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	m.mu.Lock()
	stages := make(map[string]StageStats, len(m.stages))
	for k, v := range m.stages {
		stages[k] = *v
	}
	m.mu.Unlock()

	return map[string]interface{}{
		"requests_total":       atomic.LoadUint64(&m.RequestsTotal),
		"requests_in_progress": atomic.LoadUint64(&m.RequestsInProgress),
		"requests_success":     atomic.LoadUint64(&m.RequestsSuccess),
		"requests_failed":      atomic.LoadUint64(&m.RequestsFailed),
		"stages":               stages,
		"uptime_seconds":       time.Since(m.StartTime).Seconds(),
		"memory": map[string]interface{}{
			"alloc_bytes":       mem.Alloc,
			"total_alloc_bytes": mem.TotalAlloc,
			"sys_bytes":         mem.Sys,
			"num_gc":            mem.NumGC,
		},
		"goroutines": runtime.NumGoroutine(),
	}
}

// Middleware tracks request metrics
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddUint64(&m.RequestsTotal, 1)
		atomic.AddUint64(&m.RequestsInProgress, 1)
		defer atomic.AddUint64(&m.RequestsInProgress, ^uint64(0))

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		if wrapped.statusCode >= 200 && wrapped.statusCode < 400 {
			atomic.AddUint64(&m.RequestsSuccess, 1)
		} else {
			atomic.AddUint64(&m.RequestsFailed, 1)
		}
	})
}

// Handler returns metrics as JSON
func (m *Metrics) Handler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(m.Snapshot())
}

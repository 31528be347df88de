package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/automaton-legal/internal/middleware"
)

var ok = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestRateLimitMiddleware_PerClientIP(t *testing.T) {
	h := middleware.RateLimitMiddleware(2, 0)(ok)

	call := func(addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/extract-clauses", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, call("10.0.0.1:1111"))
	assert.Equal(t, http.StatusOK, call("10.0.0.1:2222"))
	assert.Equal(t, http.StatusTooManyRequests, call("10.0.0.1:3333"))
	assert.Equal(t, http.StatusOK, call("10.0.0.2:1111"))
}

func TestTokenBucket(t *testing.T) {
	tb := middleware.NewTokenBucket(1, 0)
	assert.True(t, tb.Allow())
	assert.False(t, tb.Allow())
}

func TestMetrics(t *testing.T) {
	m := middleware.NewMetrics()
	fail := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	m.Middleware(ok).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	m.Middleware(fail).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	m.ObserveStage("clauses", true, 20*time.Millisecond)
	m.ObserveStage("clauses", false, 5*time.Millisecond)

	st := m.Stage("clauses")
	assert.Equal(t, uint64(2), st.Runs)
	assert.Equal(t, uint64(1), st.Failed)
	assert.Equal(t, int64(25), st.TotalDurationMS)
	assert.Equal(t, middleware.StageStats{}, m.Stage("heatmap"))

	rec := httptest.NewRecorder()
	m.Handler(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.EqualValues(t, 2, body["requests_total"])
	assert.EqualValues(t, 1, body["requests_success"])
	assert.EqualValues(t, 1, body["requests_failed"])
	assert.Contains(t, body["stages"], "clauses")
}

func TestHealth(t *testing.T) {
	h := &middleware.Health{
		Checkers: map[string]middleware.HealthChecker{
			"store": middleware.CheckerFunc(func(context.Context) error { return nil }),
		},
		Info: map[string]string{"ai_provider": "mock"},
	}

	rec := httptest.NewRecorder()
	h.Live(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy","ai_provider":"mock"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	h.Check(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.Ready(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ready"`)
}

func TestHealth_FailingChecker(t *testing.T) {
	h := &middleware.Health{Checkers: map[string]middleware.HealthChecker{
		"store":    middleware.CheckerFunc(func(context.Context) error { return nil }),
		"database": middleware.CheckerFunc(func(context.Context) error { return errors.New("connection refused") }),
	}}

	rec := httptest.NewRecorder()
	h.Check(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var report middleware.HealthReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, "unhealthy", report.Status)
	assert.Equal(t, "connection refused", report.Checks["database"].Message)
	assert.Equal(t, "healthy", report.Checks["store"].Status)

	rec = httptest.NewRecorder()
	h.Ready(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"status":"not_ready","failing":["database"]}`, rec.Body.String())
}

func TestValidateDocID(t *testing.T) {
	assert.NoError(t, middleware.ValidateDocID("doc_12_20240305140709"))
	assert.Error(t, middleware.ValidateDocID(""))
	assert.Error(t, middleware.ValidateDocID("doc_1"))
	assert.Error(t, middleware.ValidateDocID("../etc/passwd"))
}

func TestSanitizeIssueID(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "I12", want: "I12"},
		{in: "GDPR 1.1", want: "GDPR 1.1"},
		{in: " art.5:b ", want: "art.5:b"},
		{in: "I1\x00", want: "I1"},
		{in: "", wantErr: true},
		{in: " \t", wantErr: true},
		{in: strings.Repeat("x", 129), wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := middleware.SanitizeIssueID(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSanitizeRegulations(t *testing.T) {
	got, err := middleware.SanitizeRegulations(nil)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = middleware.SanitizeRegulations([]string{"GDPR", "SOX & GLBA", "ISO 27001", "Local Act (2023)", "LGPD\x07"})
	require.NoError(t, err)
	assert.Equal(t, []string{"GDPR", "SOX & GLBA", "ISO 27001", "Local Act (2023)", "LGPD"}, got)

	_, err = middleware.SanitizeRegulations([]string{strings.Repeat("A", 65)})
	assert.Error(t, err)
	_, err = middleware.SanitizeRegulations(make([]string, 11))
	assert.Error(t, err)
}

func TestValidateExtension(t *testing.T) {
	assert.NoError(t, middleware.ValidateExtension("a.PDF"))
	assert.Error(t, middleware.ValidateExtension("a.exe"))
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "msa.pdf", middleware.SanitizeFilename("../../etc/msa.pdf"))
	assert.Equal(t, "msa.pdf", middleware.SanitizeFilename(`C:\Users\x\msa.pdf`))
	assert.Equal(t, "contract.txt", middleware.SanitizeFilename("contract\x00.txt"))
	assert.Equal(t, "", middleware.SanitizeFilename(""))
}

package middleware

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"sort"
	"time"
)

const defaultCheckTimeout = 5 * time.Second

// HealthChecker is one named dependency probed by /healthz and /readyz.
type HealthChecker interface {
	Check(ctx context.Context) error
}

// CheckerFunc adapts a function to HealthChecker.
type CheckerFunc func(ctx context.Context) error

func (f CheckerFunc) Check(ctx context.Context) error { return f(ctx) }

// DatabaseHealthChecker pings the audit database.
type DatabaseHealthChecker struct {
	DB *sql.DB
}

func (d *DatabaseHealthChecker) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return d.DB.PingContext(ctx)
}

// CheckStatus is the outcome of one checker.
type CheckStatus struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// HealthReport is the /healthz body.
type HealthReport struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Checks    map[string]CheckStatus `json:"checks"`
}

// Health serves the three probe endpoints. Info is merged into the /health
// body (ai provider and similar static facts).
type Health struct {
	Checkers map[string]HealthChecker
	Info     map[string]string
	Timeout  time.Duration
}

// Live answers /health without touching dependencies.
func (h *Health) Live(w http.ResponseWriter, r *http.Request) {
	body := make(map[string]any, len(h.Info)+1)
	for k, v := range h.Info {
		body[k] = v
	}
	body["status"] = "healthy"
	writeProbe(w, http.StatusOK, body)
}

// Check answers /healthz with the result of every checker.
func (h *Health) Check(w http.ResponseWriter, r *http.Request) {
	report := h.run(r.Context())
	status := http.StatusOK
	if report.Status != "healthy" {
		status = http.StatusServiceUnavailable
	}
	writeProbe(w, status, report)
}

// Ready answers /readyz; it only lists failing checkers.
func (h *Health) Ready(w http.ResponseWriter, r *http.Request) {
	report := h.run(r.Context())
	failing := []string{}
	for name, c := range report.Checks {
		if c.Status != "healthy" {
			failing = append(failing, name)
		}
	}
	sort.Strings(failing)

	if len(failing) > 0 {
		writeProbe(w, http.StatusServiceUnavailable, map[string]any{"status": "not_ready", "failing": failing})
		return
	}
	writeProbe(w, http.StatusOK, map[string]any{"status": "ready", "timestamp": report.Timestamp})
}

func (h *Health) run(ctx context.Context) HealthReport {
	timeout := h.Timeout
	if timeout <= 0 {
		timeout = defaultCheckTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	report := HealthReport{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Checks:    make(map[string]CheckStatus, len(h.Checkers)),
	}
	for name, checker := range h.Checkers {
		if err := checker.Check(ctx); err != nil {
			report.Status = "unhealthy"
			report.Checks[name] = CheckStatus{Status: "unhealthy", Message: err.Error()}
			continue
		}
		report.Checks[name] = CheckStatus{Status: "healthy"}
	}
	return report
}

func writeProbe(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

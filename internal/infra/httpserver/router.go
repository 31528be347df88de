package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	appanalysis "github.com/bryanwahyu/automaton-legal/internal/application/analysis"
	appdocs "github.com/bryanwahyu/automaton-legal/internal/application/documents"
	"github.com/bryanwahyu/automaton-legal/internal/domain/ai"
	domain "github.com/bryanwahyu/automaton-legal/internal/domain/analysis"
	"github.com/bryanwahyu/automaton-legal/internal/domain/analysiserrors"
	"github.com/bryanwahyu/automaton-legal/internal/middleware"
	"github.com/bryanwahyu/automaton-legal/internal/pkg/logger"
)

const defaultMaxUploadBytes = 16 << 20

// Options tunes the router. Zero values pick sensible defaults.
type Options struct {
	MaxUploadBytes    int64
	CORSOrigins       []string
	RateLimitCapacity int
	RateLimitRefill   int
	Metrics           *middleware.Metrics
	HealthCheckers    map[string]middleware.HealthChecker
	AIProvider        string
}

type Router struct {
	docs     *appdocs.Service
	pipeline *appanalysis.Service
	opts     Options
}

func NewRouter(docs *appdocs.Service, pipeline *appanalysis.Service, opts Options) http.Handler {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = defaultMaxUploadBytes
	}
	if len(opts.CORSOrigins) == 0 {
		opts.CORSOrigins = []string{"*"}
	}
	if opts.Metrics == nil {
		opts.Metrics = middleware.NewMetrics()
	}
	r := &Router{docs: docs, pipeline: pipeline, opts: opts}

	mux := chi.NewRouter()
	mux.Use(chimw.RequestID)
	mux.Use(chimw.RealIP)
	mux.Use(middleware.LoggingMiddleware)
	mux.Use(chimw.Recoverer)
	mux.Use(opts.Metrics.Middleware)
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	health := &middleware.Health{
		Checkers: opts.HealthCheckers,
		Info:     map[string]string{"ai_provider": opts.AIProvider},
	}
	mux.Get("/health", health.Live)
	mux.Get("/healthz", health.Check)
	mux.Get("/readyz", health.Ready)
	mux.Get("/metrics", opts.Metrics.Handler)

	mux.Route("/api", func(rt chi.Router) {
		rt.Get("/documents", r.wrap(r.handleListDocuments))
		rt.Get("/documents/{id}/runs", r.wrap(r.handleListRuns))
		rt.Get("/regulations", r.wrap(r.handleRegulations))

		rt.Group(func(post chi.Router) {
			if opts.RateLimitCapacity > 0 {
				post.Use(middleware.RateLimitMiddleware(opts.RateLimitCapacity, opts.RateLimitRefill))
			}
			post.Post("/upload", r.wrap(r.handleUpload))
			post.Post("/extract-clauses", r.wrap(r.handleExtractClauses))
			post.Post("/analyze-compliance", r.wrap(r.handleAnalyzeCompliance))
			post.Post("/risk-heatmap", r.wrap(r.handleRiskHeatmap))
			post.Post("/explain-risk", r.wrap(r.handleExplainRisk))
			post.Post("/remediation-plan", r.wrap(r.handleRemediationPlan))
		})
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// badRequest marks client input errors.
type badRequest struct{ msg string }

func (e badRequest) Error() string { return e.msg }

func badRequestf(format string, args ...any) error {
	return badRequest{msg: fmt.Sprintf(format, args...)}
}

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			writeError(w, req, err)
		}
	}
}

// writeError maps error kinds to status codes and a JSON body.
func writeError(w http.ResponseWriter, req *http.Request, err error) {
	body := map[string]any{"success": false, "error": err.Error()}
	status := http.StatusInternalServerError

	var (
		br  badRequest
		mbe *http.MaxBytesError
		pm  *analysiserrors.PrerequisiteMissingError
	)
	switch {
	case errors.As(err, &br), errors.Is(err, appdocs.ErrFilenameRequired):
		status = http.StatusBadRequest
		body["kind"] = "bad_request"
	case errors.As(err, &mbe):
		status = http.StatusRequestEntityTooLarge
		body["kind"] = "bad_request"
		body["error"] = fmt.Sprintf("file too large (max %d bytes)", mbe.Limit)
	default:
		kind := analysiserrors.KindOf(err)
		body["kind"] = string(kind)
		switch kind {
		case analysiserrors.KindNotFound:
			status = http.StatusNotFound
		case analysiserrors.KindPrerequisiteMissing:
			status = http.StatusConflict
			if errors.As(err, &pm) {
				body["missing_stage"] = pm.Missing
			}
		case analysiserrors.KindExtraction:
			status = http.StatusBadRequest
		case analysiserrors.KindGenerationFailed:
			status = http.StatusBadGateway
			if errors.Is(err, ai.ErrQuotaExceeded) {
				status = http.StatusTooManyRequests
			}
		case analysiserrors.KindMalformedResponse:
			status = http.StatusBadGateway
			if raw, ok := analysiserrors.RawResponse(err); ok {
				body["raw_response"] = raw
			}
		}
	}

	if status >= http.StatusInternalServerError {
		logger.Error(req.Context(), "request failed", "path", req.URL.Path, "status", status, "error", err)
	}
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSON(req *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(req.Body, 1<<20))
	if err := dec.Decode(v); err != nil {
		return badRequestf("invalid JSON body: %v", err)
	}
	return nil
}

type docRequest struct {
	DocID string `json:"doc_id"`
}

func (b docRequest) validate() error {
	if err := middleware.ValidateDocID(strings.TrimSpace(b.DocID)); err != nil {
		return badRequest{msg: err.Error()}
	}
	return nil
}

// POST /api/upload (multipart: file, doc_type)
func (r *Router) handleUpload(w http.ResponseWriter, req *http.Request) error {
	req.Body = http.MaxBytesReader(w, req.Body, r.opts.MaxUploadBytes)
	if err := req.ParseMultipartForm(r.opts.MaxUploadBytes); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return mbe
		}
		return badRequestf("invalid multipart form: %v", err)
	}
	file, header, err := req.FormFile("file")
	if err != nil {
		return badRequestf("No file provided")
	}
	defer file.Close()

	filename := middleware.SanitizeFilename(header.Filename)
	if filename == "" {
		return appdocs.ErrFilenameRequired
	}
	if err := middleware.ValidateExtension(filename); err != nil {
		return &analysiserrors.ExtractionError{Extension: strings.ToLower(filepath.Ext(filename)), Unsupported: true}
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return badRequestf("read upload: %v", err)
	}

	doc, err := r.docs.Upload(req.Context(), appdocs.UploadCommand{
		Filename: filename,
		DocType:  middleware.SanitizeString(req.FormValue("doc_type")),
		Data:     data,
	})
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"doc_id":      doc.ID,
		"filename":    doc.Filename,
		"doc_type":    doc.DocType,
		"archive_url": doc.ArchiveURL,
		"message":     "Document uploaded successfully",
	})
	return nil
}

// POST /api/extract-clauses {doc_id}
func (r *Router) handleExtractClauses(w http.ResponseWriter, req *http.Request) error {
	var body docRequest
	if err := decodeJSON(req, &body); err != nil {
		return err
	}
	if err := body.validate(); err != nil {
		return err
	}
	res, err := r.pipeline.RunClauseExtraction(req.Context(), body.DocID)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"doc_id":  body.DocID,
		"clauses": res.Clauses,
		"summary": res.Summary,
	})
	return nil
}

// POST /api/analyze-compliance {doc_id, regulations}
func (r *Router) handleAnalyzeCompliance(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		docRequest
		Regulations []string `json:"regulations"`
	}
	if err := decodeJSON(req, &body); err != nil {
		return err
	}
	if err := body.validate(); err != nil {
		return err
	}
	regs, err := middleware.SanitizeRegulations(body.Regulations)
	if err != nil {
		return badRequest{msg: err.Error()}
	}
	res, err := r.pipeline.RunComplianceAnalysis(req.Context(), body.DocID, regs)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"doc_id":   body.DocID,
		"analysis": res,
	})
	return nil
}

// POST /api/risk-heatmap {doc_id}
func (r *Router) handleRiskHeatmap(w http.ResponseWriter, req *http.Request) error {
	var body docRequest
	if err := decodeJSON(req, &body); err != nil {
		return err
	}
	if err := body.validate(); err != nil {
		return err
	}
	hm, err := r.pipeline.RiskHeatmap(req.Context(), body.DocID)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"heatmap_data": hm,
	})
	return nil
}

// POST /api/explain-risk {doc_id, issue_id, audience}
func (r *Router) handleExplainRisk(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		docRequest
		IssueID  string `json:"issue_id"`
		Audience string `json:"audience"`
	}
	if err := decodeJSON(req, &body); err != nil {
		return err
	}
	if err := body.validate(); err != nil {
		return err
	}
	issueID, err := middleware.SanitizeIssueID(body.IssueID)
	if err != nil {
		return badRequest{msg: err.Error()}
	}
	// audience yang tidak dikenal jatuh ke executive di service
	exp, err := r.pipeline.ExplainIssue(req.Context(), body.DocID, issueID, domain.Audience(body.Audience))
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"explanation": exp.HTML,
		"markdown":    exp.Markdown,
		"audience":    exp.Audience,
		"issue":       exp.Issue,
	})
	return nil
}

// POST /api/remediation-plan {doc_id}
func (r *Router) handleRemediationPlan(w http.ResponseWriter, req *http.Request) error {
	var body docRequest
	if err := decodeJSON(req, &body); err != nil {
		return err
	}
	if err := body.validate(); err != nil {
		return err
	}
	plan, err := r.pipeline.RemediationPlan(req.Context(), body.DocID)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":          true,
		"remediation_plan": plan,
	})
	return nil
}

// GET /api/documents
func (r *Router) handleListDocuments(w http.ResponseWriter, req *http.Request) error {
	list, err := r.docs.List(req.Context())
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "documents": list})
	return nil
}

// GET /api/documents/{id}/runs
func (r *Router) handleListRuns(w http.ResponseWriter, req *http.Request) error {
	id := chi.URLParam(req, "id")
	if err := middleware.ValidateDocID(id); err != nil {
		return badRequest{msg: err.Error()}
	}
	runs, err := r.pipeline.ListRuns(req.Context(), id)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "doc_id": id, "runs": runs})
	return nil
}

// GET /api/regulations
func (r *Router) handleRegulations(w http.ResponseWriter, req *http.Request) error {
	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"regulations": domain.KnownRegulations(),
	})
	return nil
}

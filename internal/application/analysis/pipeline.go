package analysis

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bryanwahyu/automaton-legal/internal/application"
	"github.com/bryanwahyu/automaton-legal/internal/domain/ai"
	domain "github.com/bryanwahyu/automaton-legal/internal/domain/analysis"
	"github.com/bryanwahyu/automaton-legal/internal/domain/analysiserrors"
	"github.com/bryanwahyu/automaton-legal/internal/domain/audit"
	"github.com/bryanwahyu/automaton-legal/internal/domain/documents"
	"github.com/bryanwahyu/automaton-legal/internal/pkg/logger"
)

const (
	DefaultClauseContentLimit    = 15000
	DefaultRemediationInputLimit = 10000
)

// StageObserver receives the outcome of every generation-backed stage run.
type StageObserver interface {
	ObserveStage(stage string, ok bool, d time.Duration)
}

// Limits caps the text handed to prompts, counted in runes.
type Limits struct {
	ClauseContent    int
	RemediationInput int
}

// Deps wires the pipeline. Audit and Observer are optional.
type Deps struct {
	Docs      documents.Repository
	Cache     domain.Cache
	Generator ai.Generator
	Prompts   domain.PromptBuilder
	Renderer  domain.Renderer
	Audit     audit.Repository
	Observer  StageObserver
	Clock     application.Clock
	Limits    Limits
	// DefaultRegulations overrides domain.DefaultRegulations when set.
	DefaultRegulations []string
}

type pipeline struct {
	Deps
}

func newPipeline(d Deps) *pipeline {
	if d.Clock == nil {
		d.Clock = application.SystemClock{}
	}
	if d.Limits.ClauseContent <= 0 {
		d.Limits.ClauseContent = DefaultClauseContentLimit
	}
	if d.Limits.RemediationInput <= 0 {
		d.Limits.RemediationInput = DefaultRemediationInputLimit
	}
	return &pipeline{Deps: d}
}

// generate calls the model once and returns the raw text. No retry.
func (r *pipeline) generate(ctx context.Context, docID string, stage domain.Stage, prompt string) (string, error) {
	start := r.Clock.Now()
	raw, err := r.Generator.Generate(ctx, prompt)
	if err != nil {
		err = &analysiserrors.GenerationFailedError{Stage: string(stage), Err: err}
		r.finish(ctx, docID, stage, start, err)
		return "", err
	}
	r.finish(ctx, docID, stage, start, nil)
	return raw, nil
}

// generateJSON calls the model and decodes its answer into out.
func (r *pipeline) generateJSON(ctx context.Context, docID string, stage domain.Stage, prompt string, out any) error {
	start := r.Clock.Now()
	raw, err := r.Generator.Generate(ctx, prompt)
	if err != nil {
		err = &analysiserrors.GenerationFailedError{Stage: string(stage), Err: err}
		r.finish(ctx, docID, stage, start, err)
		return err
	}
	if err := ai.DecodeResponse(raw, out); err != nil {
		var m *analysiserrors.MalformedResponseError
		if errors.As(err, &m) {
			m.Stage = string(stage)
		}
		r.finish(ctx, docID, stage, start, err)
		return err
	}
	r.finish(ctx, docID, stage, start, nil)
	return nil
}

// finish logs, observes and audits one stage run. Audit errors are only logged.
func (r *pipeline) finish(ctx context.Context, docID string, stage domain.Stage, start time.Time, runErr error) {
	elapsed := r.Clock.Now().Sub(start)
	ctx = logger.WithDocument(ctx, docID)

	run := &audit.StageRun{
		ID:         uuid.New().String(),
		DocumentID: docID,
		Stage:      string(stage),
		Status:     audit.StatusSuccess,
		DurationMS: elapsed.Milliseconds(),
		CreatedAt:  r.Clock.Now(),
	}
	if runErr != nil {
		run.Status = audit.StatusFailed
		run.ErrorKind = string(analysiserrors.KindOf(runErr))
		run.Message = runErr.Error()
		if raw, ok := analysiserrors.RawResponse(runErr); ok {
			run.RawResponse = raw
		}
		logger.Warn(ctx, "stage failed", "stage", stage, "kind", run.ErrorKind, "duration_ms", run.DurationMS, "error", runErr)
	} else {
		logger.Info(ctx, "stage finished", "stage", stage, "duration_ms", run.DurationMS)
	}

	if r.Observer != nil {
		r.Observer.ObserveStage(string(stage), runErr == nil, elapsed)
	}
	if r.Audit != nil {
		if err := r.Audit.Save(ctx, run); err != nil {
			logger.Error(ctx, "save stage run", "stage", stage, "error", err)
		}
	}
}

func (r *pipeline) regulations(names []string) []string {
	for _, n := range names {
		if strings.TrimSpace(n) != "" {
			return domain.SelectRegulations(names)
		}
	}
	return domain.SelectRegulations(r.DefaultRegulations)
}

// truncateRunes cuts s to at most n runes without splitting a character.
func truncateRunes(s string, n int) string {
	if n <= 0 {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

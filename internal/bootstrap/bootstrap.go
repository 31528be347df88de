package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/bryanwahyu/automaton-legal/internal/application"
	appanalysis "github.com/bryanwahyu/automaton-legal/internal/application/analysis"
	appdocs "github.com/bryanwahyu/automaton-legal/internal/application/documents"
	"github.com/bryanwahyu/automaton-legal/internal/config"
	"github.com/bryanwahyu/automaton-legal/internal/domain/ai"
	"github.com/bryanwahyu/automaton-legal/internal/domain/audit"
	"github.com/bryanwahyu/automaton-legal/internal/domain/documents"
	"github.com/bryanwahyu/automaton-legal/internal/infra/ai/mock"
	"github.com/bryanwahyu/automaton-legal/internal/infra/ai/openai"
	"github.com/bryanwahyu/automaton-legal/internal/infra/ai/prompt"
	"github.com/bryanwahyu/automaton-legal/internal/infra/db/mysql"
	"github.com/bryanwahyu/automaton-legal/internal/infra/db/postgres"
	"github.com/bryanwahyu/automaton-legal/internal/infra/extract"
	"github.com/bryanwahyu/automaton-legal/internal/infra/httpserver"
	"github.com/bryanwahyu/automaton-legal/internal/infra/markup"
	"github.com/bryanwahyu/automaton-legal/internal/infra/memory"
	"github.com/bryanwahyu/automaton-legal/internal/infra/storage"
	"github.com/bryanwahyu/automaton-legal/internal/middleware"
	"github.com/bryanwahyu/automaton-legal/internal/pkg/logger"
)

// ErrMissingAPIKey is returned when the openai provider has no key.
var ErrMissingAPIKey = errors.New("ai.apiKey (or OPENAI_API_KEY / API_KEY) is required for the openai provider")

// App holds the wired services. Close releases the database, if any.
type App struct {
	Documents *appdocs.Service
	Analysis  *appanalysis.Service
	Metrics   *middleware.Metrics
	Checkers  map[string]middleware.HealthChecker

	cfg *config.Config
	db  *sql.DB
}

// schemaEnsurer is implemented by the SQL stage run repositories.
type schemaEnsurer interface {
	audit.Repository
	EnsureSchema(ctx context.Context) error
}

// New builds the application from cfg. Stores live in memory; the audit
// trail and the original archive are enabled only when configured.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	gen, err := NewGenerator(cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Metrics:  middleware.NewMetrics(),
		Checkers: map[string]middleware.HealthChecker{},
		cfg:      cfg,
	}

	auditRepo, err := app.openAudit(ctx)
	if err != nil {
		return nil, err
	}

	var archive documents.ArchiveStore
	if cfg.Minio.Endpoint != "" {
		store, err := storage.New(ctx,
			cfg.Minio.Endpoint,
			cfg.Minio.Region,
			cfg.Minio.BucketName,
			cfg.Minio.AccessKey,
			cfg.Minio.SecretKey,
			cfg.Minio.UseSSL,
		)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("minio init: %w", err)
		}
		archive = store
		logger.Info(ctx, "original archive enabled", "bucket", cfg.Minio.BucketName)
	}

	docs := memory.NewDocumentStore(nil)
	cache := memory.NewAnalysisCache()
	app.Checkers["document_store"] = middleware.CheckerFunc(func(ctx context.Context) error {
		_, err := docs.List(ctx)
		return err
	})

	app.Documents = &appdocs.Service{Repo: docs, Extractor: extract.Extractor{}, Archive: archive}
	app.Analysis = appanalysis.NewService(appanalysis.Deps{
		Docs:      docs,
		Cache:     cache,
		Generator: gen,
		Prompts:   prompt.Builder{},
		Renderer:  markup.NewRenderer(),
		Audit:     auditRepo,
		Observer:  app.Metrics,
		Clock:     application.SystemClock{},
		Limits: appanalysis.Limits{
			ClauseContent:    cfg.Pipeline.ClauseContentLimit,
			RemediationInput: cfg.Pipeline.RemediationInputLimit,
		},
		DefaultRegulations: cfg.Pipeline.DefaultRegulations,
	})
	return app, nil
}

// NewGenerator picks the text generator for cfg.AI.Provider.
func NewGenerator(cfg *config.Config) (ai.Generator, error) {
	switch cfg.AI.Provider {
	case "mock":
		return mock.Generator{}, nil
	case "openai", "":
		if cfg.AI.APIKey == "" {
			return nil, ErrMissingAPIKey
		}
		return openai.NewClient(cfg.AI.APIKey, cfg.AI.Model, cfg.AI.BaseURL, cfg.AI.MaxTokens), nil
	default:
		return nil, fmt.Errorf("unknown ai provider %q", cfg.AI.Provider)
	}
}

func (a *App) openAudit(ctx context.Context) (audit.Repository, error) {
	var (
		repo schemaEnsurer
		err  error
	)
	switch a.cfg.Database.Driver {
	case "":
		return nil, nil
	case "mysql":
		a.db, err = mysql.Connect(ctx, a.cfg.MySQLDSN())
		if err == nil {
			repo = mysql.NewStageRunRepository(a.db)
		}
	case "postgres":
		a.db, err = postgres.Connect(ctx, a.cfg.PostgresDSN())
		if err == nil {
			repo = postgres.NewStageRunRepository(a.db)
		}
	default:
		return nil, fmt.Errorf("unknown database driver %q", a.cfg.Database.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("%s connect: %w", a.cfg.Database.Driver, err)
	}
	if err := repo.EnsureSchema(ctx); err != nil {
		a.Close()
		return nil, fmt.Errorf("ensure audit schema: %w", err)
	}
	a.Checkers["database"] = &middleware.DatabaseHealthChecker{DB: a.db}
	logger.Info(ctx, "stage audit enabled", "driver", a.cfg.Database.Driver)
	return repo, nil
}

// Handler builds the HTTP router.
func (a *App) Handler() http.Handler {
	return httpserver.NewRouter(a.Documents, a.Analysis, httpserver.Options{
		MaxUploadBytes:    a.cfg.Server.MaxUploadBytes,
		CORSOrigins:       a.cfg.Server.CORSOrigins,
		RateLimitCapacity: a.cfg.RateLimit.Capacity,
		RateLimitRefill:   a.cfg.RateLimit.RefillPerSecond,
		Metrics:           a.Metrics,
		HealthCheckers:    a.Checkers,
		AIProvider:        a.cfg.AI.Provider,
	})
}

func (a *App) Close() {
	if a.db != nil {
		_ = a.db.Close()
		a.db = nil
	}
}

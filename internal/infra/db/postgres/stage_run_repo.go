package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	domain "github.com/bryanwahyu/automaton-legal/internal/domain/audit"
)

const schema = `
CREATE TABLE IF NOT EXISTS legal_stage_runs (
  id           UUID        PRIMARY KEY,
  document_id  TEXT        NOT NULL,
  stage        TEXT        NOT NULL,
  status       TEXT        NOT NULL,
  error_kind   TEXT        NOT NULL DEFAULT '',
  message      TEXT        NOT NULL DEFAULT '',
  raw_response TEXT        NOT NULL DEFAULT '',
  duration_ms  BIGINT      NOT NULL DEFAULT 0,
  created_at   TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_stage_runs_doc ON legal_stage_runs (document_id, created_at DESC);`

type StageRunRepository struct {
	db *sql.DB
}

func NewStageRunRepository(db *sql.DB) *StageRunRepository {
	return &StageRunRepository{db: db}
}

// EnsureSchema creates the table and index when missing.
func (r *StageRunRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, schema)
	return err
}

// Save inserts a stage run; re-saving the same id updates it.
func (r *StageRunRepository) Save(ctx context.Context, run *domain.StageRun) error {
	const q = `
INSERT INTO legal_stage_runs
  (id, document_id, stage, status, error_kind, message, raw_response, duration_ms, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
ON CONFLICT (id) DO UPDATE SET
  status=EXCLUDED.status,
  error_kind=EXCLUDED.error_kind,
  message=EXCLUDED.message,
  raw_response=EXCLUDED.raw_response,
  duration_ms=EXCLUDED.duration_ms;`
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, q,
		run.ID,
		stringOrDash(run.DocumentID),
		stringOrDash(run.Stage),
		stringOrDash(string(run.Status)),
		run.ErrorKind,
		run.Message,
		run.RawResponse,
		run.DurationMS,
		run.CreatedAt,
	)
	return err
}

// ListByDocument returns the newest runs first.
func (r *StageRunRepository) ListByDocument(ctx context.Context, documentID string, limit int) ([]*domain.StageRun, error) {
	if limit <= 0 {
		limit = 20
	}
	const q = `
SELECT id, document_id, stage, status, error_kind, message, raw_response, duration_ms, created_at
FROM legal_stage_runs
WHERE document_id=$1
ORDER BY created_at DESC, id DESC
LIMIT $2;`
	rows, err := r.db.QueryContext(ctx, q, documentID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.StageRun
	for rows.Next() {
		var run domain.StageRun
		if err := rows.Scan(&run.ID, &run.DocumentID, &run.Stage, &run.Status, &run.ErrorKind,
			&run.Message, &run.RawResponse, &run.DurationMS, &run.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &run)
	}
	return out, rows.Err()
}

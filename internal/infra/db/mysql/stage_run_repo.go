package mysql

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	domain "github.com/bryanwahyu/automaton-legal/internal/domain/audit"
)

const schema = `
CREATE TABLE IF NOT EXISTS legal_stage_runs (
  id           CHAR(36)     NOT NULL PRIMARY KEY,
  document_id  VARCHAR(64)  NOT NULL,
  stage        VARCHAR(32)  NOT NULL,
  status       VARCHAR(16)  NOT NULL,
  error_kind   VARCHAR(64)  NOT NULL DEFAULT '',
  message      TEXT         NOT NULL,
  raw_response MEDIUMTEXT   NOT NULL,
  duration_ms  BIGINT       NOT NULL DEFAULT 0,
  created_at   DATETIME(3)  NOT NULL,
  INDEX idx_stage_runs_doc (document_id, created_at)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;`

// StageRunRepository stores audit.StageRun rows in MySQL.
type StageRunRepository struct {
	db *sql.DB
}

func NewStageRunRepository(db *sql.DB) *StageRunRepository { return &StageRunRepository{db: db} }

// EnsureSchema creates the table when missing.
func (r *StageRunRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, schema)
	return err
}

func (r *StageRunRepository) Save(ctx context.Context, run *domain.StageRun) error {
	const q = `
INSERT INTO legal_stage_runs
  (id, document_id, stage, status, error_kind, message, raw_response, duration_ms, created_at)
VALUES (?,?,?,?,?,?,?,?,?)`
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
WHERE document_id = ?
ORDER BY created_at DESC, id DESC
LIMIT ?`
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

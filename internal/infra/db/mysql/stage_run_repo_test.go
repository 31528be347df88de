package mysql_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/automaton-legal/internal/domain/audit"
	"github.com/bryanwahyu/automaton-legal/internal/infra/db/mysql"
)

func TestStageRunRepository_SaveFillsDefaults(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO legal_stage_runs")).
		WithArgs(sqlmock.AnyArg(), "doc_1_20240101000000", "clauses", "failed", "malformed_response", "bad json", "{oops", int64(12), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	run := &audit.StageRun{
		DocumentID:  "doc_1_20240101000000",
		Stage:       "clauses",
		Status:      audit.StatusFailed,
		ErrorKind:   "malformed_response",
		Message:     "bad json",
		RawResponse: "{oops",
		DurationMS:  12,
	}
	repo := mysql.NewStageRunRepository(db)
	require.NoError(t, repo.Save(context.Background(), run))

	assert.NotEmpty(t, run.ID)
	assert.False(t, run.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStageRunRepository_ListByDocument(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	created := time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "document_id", "stage", "status", "error_kind", "message", "raw_response", "duration_ms", "created_at"}).
		AddRow("r2", "doc_1", "compliance", "success", "", "", "", int64(40), created.Add(time.Minute)).
		AddRow("r1", "doc_1", "clauses", "success", "", "", "", int64(30), created)
	mock.ExpectQuery(regexp.QuoteMeta("FROM legal_stage_runs")).
		WithArgs("doc_1", 20).
		WillReturnRows(rows)

	repo := mysql.NewStageRunRepository(db)
	runs, err := repo.ListByDocument(context.Background(), "doc_1", 0)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "r2", runs[0].ID)
	assert.Equal(t, audit.StatusSuccess, runs[0].Status)
	assert.Equal(t, int64(30), runs[1].DurationMS)
	assert.Equal(t, created, runs[1].CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStageRunRepository_EnsureSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS legal_stage_runs")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, mysql.NewStageRunRepository(db).EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

package audit

import "context"

// Repository port for persisting and querying stage runs
type Repository interface {
	Save(ctx context.Context, r *StageRun) error
	ListByDocument(ctx context.Context, documentID string, limit int) ([]*StageRun, error)
}

package documents

import "context"

// Repository port. Get returns an error matching analysiserrors.ErrNotFound
// for unknown ids; MarkProcessed is idempotent and ignores unknown ids.
type Repository interface {
	Create(ctx context.Context, d NewDocument) (Document, error)
	Get(ctx context.Context, id string) (Document, error)
	List(ctx context.Context) ([]Summary, error)
	MarkProcessed(ctx context.Context, id string) error
}

// Extractor turns uploaded bytes into plain text based on the file extension.
type Extractor interface {
	Extract(data []byte, ext string) (string, error)
}

// ArchiveStore keeps the original uploaded bytes.
type ArchiveStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

package documents

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	domain "github.com/bryanwahyu/automaton-legal/internal/domain/documents"
	"github.com/bryanwahyu/automaton-legal/internal/pkg/logger"
)

// ErrFilenameRequired is returned for uploads without a file name.
var ErrFilenameRequired = errors.New("no file selected")

// Service implements upload and listing use-cases.
// Archive is optional; when nil the original bytes are not kept.
type Service struct {
	Repo      domain.Repository
	Extractor domain.Extractor
	Archive   domain.ArchiveStore
}

type UploadCommand struct {
	Filename string
	DocType  string
	Data     []byte
}

// Upload extracts the text of an uploaded file and registers the document.
func (s *Service) Upload(ctx context.Context, cmd UploadCommand) (domain.Document, error) {
	name := strings.TrimSpace(cmd.Filename)
	if name == "" {
		return domain.Document{}, ErrFilenameRequired
	}
	ext := strings.ToLower(filepath.Ext(name))

	text, err := s.Extractor.Extract(cmd.Data, ext)
	if err != nil {
		return domain.Document{}, err
	}

	docType := domain.DocType(strings.TrimSpace(cmd.DocType))
	if docType == "" {
		docType = domain.DocTypeContract
	}

	archiveURL := ""
	if s.Archive != nil {
		key := fmt.Sprintf("uploads/%s/%s", uuid.New().String(), filepath.Base(name))
		url, aerr := s.Archive.Put(ctx, key, cmd.Data, contentTypeFor(ext))
		if aerr != nil {
			// upload tetap jalan walau archive gagal
			logger.Warn(ctx, "archive upload failed", "filename", name, "error", aerr)
		} else {
			archiveURL = url
		}
	}

	doc, err := s.Repo.Create(ctx, domain.NewDocument{
		Filename:   name,
		DocType:    docType,
		Content:    text,
		ArchiveURL: archiveURL,
	})
	if err != nil {
		return domain.Document{}, err
	}
	logger.Info(ctx, "document uploaded",
		"doc_id", doc.ID,
		"filename", doc.Filename,
		"doc_type", doc.DocType,
		"chars", len([]rune(text)),
	)
	return doc, nil
}

func (s *Service) Get(ctx context.Context, id string) (domain.Document, error) {
	return s.Repo.Get(ctx, id)
}

// List returns document summaries in upload order.
func (s *Service) List(ctx context.Context) ([]domain.Summary, error) {
	return s.Repo.List(ctx)
}

func contentTypeFor(ext string) string {
	switch ext {
	case ".pdf":
		return "application/pdf"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".txt":
		return "text/plain; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}

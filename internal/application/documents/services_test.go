package documents_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appdocs "github.com/bryanwahyu/automaton-legal/internal/application/documents"
	"github.com/bryanwahyu/automaton-legal/internal/domain/analysiserrors"
	"github.com/bryanwahyu/automaton-legal/internal/domain/documents"
	"github.com/bryanwahyu/automaton-legal/internal/infra/memory"
)

type textExtractor struct{ gotExt string }

func (e *textExtractor) Extract(data []byte, ext string) (string, error) {
	e.gotExt = ext
	if ext != ".txt" {
		return "", &analysiserrors.ExtractionError{Extension: ext, Unsupported: true}
	}
	return string(data), nil
}

type fakeArchive struct {
	keys []string
	ct   string
	err  error
}

func (a *fakeArchive) Put(_ context.Context, key string, _ []byte, contentType string) (string, error) {
	if a.err != nil {
		return "", a.err
	}
	a.keys = append(a.keys, key)
	a.ct = contentType
	return "http://archive/" + key, nil
}

func newService(archive documents.ArchiveStore) (*appdocs.Service, *textExtractor) {
	ex := &textExtractor{}
	now := func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }
	return &appdocs.Service{
		Repo:      memory.NewDocumentStore(now),
		Extractor: ex,
		Archive:   archive,
	}, ex
}

func TestUpload_DefaultsAndExtraction(t *testing.T) {
	svc, ex := newService(nil)
	doc, err := svc.Upload(context.Background(), appdocs.UploadCommand{
		Filename: "Policy.TXT",
		Data:     []byte("We keep data forever."),
	})
	require.NoError(t, err)

	assert.Equal(t, ".txt", ex.gotExt)
	assert.Equal(t, documents.DocTypeContract, doc.DocType)
	assert.Equal(t, "We keep data forever.", doc.Content)
	assert.False(t, doc.Processed)
	assert.Empty(t, doc.ArchiveURL)
	assert.True(t, strings.HasPrefix(doc.ID, "doc_1_"))
}

func TestUpload_RejectsEmptyFilename(t *testing.T) {
	svc, _ := newService(nil)
	_, err := svc.Upload(context.Background(), appdocs.UploadCommand{Filename: "  ", Data: []byte("x")})
	assert.ErrorIs(t, err, appdocs.ErrFilenameRequired)
}

func TestUpload_UnsupportedFormatIsNotStored(t *testing.T) {
	svc, _ := newService(nil)
	_, err := svc.Upload(context.Background(), appdocs.UploadCommand{Filename: "sheet.xlsx", Data: []byte("x")})
	assert.ErrorIs(t, err, analysiserrors.ErrExtraction)

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestUpload_ArchivesOriginal(t *testing.T) {
	arch := &fakeArchive{}
	svc, _ := newService(arch)
	doc, err := svc.Upload(context.Background(), appdocs.UploadCommand{
		Filename: "msa.txt",
		DocType:  "agreement",
		Data:     []byte("terms"),
	})
	require.NoError(t, err)

	require.Len(t, arch.keys, 1)
	assert.True(t, strings.HasPrefix(arch.keys[0], "uploads/"))
	assert.True(t, strings.HasSuffix(arch.keys[0], "/msa.txt"))
	assert.Equal(t, "text/plain; charset=utf-8", arch.ct)
	assert.Equal(t, "http://archive/"+arch.keys[0], doc.ArchiveURL)
	assert.Equal(t, documents.DocTypeAgreement, doc.DocType)
}

func TestUpload_ArchiveFailureDoesNotFailUpload(t *testing.T) {
	svc, _ := newService(&fakeArchive{err: errors.New("bucket gone")})
	doc, err := svc.Upload(context.Background(), appdocs.UploadCommand{Filename: "a.txt", Data: []byte("x")})
	require.NoError(t, err)
	assert.Empty(t, doc.ArchiveURL)

	got, err := svc.Get(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.Equal(t, doc.ID, got.ID)
}

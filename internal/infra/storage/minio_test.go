package storage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bryanwahyu/automaton-legal/internal/infra/storage"
)

func TestObjectURL(t *testing.T) {
	assert.Equal(t, "https://s3.local:9000/legal/uploads/abc/msa.pdf",
		storage.ObjectURL("https", "s3.local:9000", "legal", "uploads/abc/msa.pdf"))
	assert.Equal(t, "http://minio/legal/k", storage.ObjectURL("", "minio", "legal", "k"))
}

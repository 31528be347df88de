package extract_test

import (
	"archive/zip"
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/automaton-legal/internal/domain/analysiserrors"
	"github.com/bryanwahyu/automaton-legal/internal/infra/extract"
)

func buildDocx(t *testing.T, body string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` + body + `</w:body></w:document>`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestExtract_Text(t *testing.T) {
	out, err := extract.Extractor{}.Extract([]byte("  Clause 1.\x00 Data is kept.\n"), ".TXT")
	require.NoError(t, err)
	assert.Equal(t, "Clause 1. Data is kept.", out)
}

func TestExtract_TextInvalidUTF8(t *testing.T) {
	_, err := extract.Extractor{}.Extract([]byte{0xff, 0xfe, 0x41}, ".txt")
	assert.ErrorIs(t, err, analysiserrors.ErrExtraction)
}

func TestExtract_Unsupported(t *testing.T) {
	_, err := extract.Extractor{}.Extract([]byte("x"), ".xlsx")
	require.Error(t, err)

	var ee *analysiserrors.ExtractionError
	require.True(t, errors.As(err, &ee))
	assert.True(t, ee.Unsupported)
	assert.Equal(t, ".xlsx", ee.Extension)
}

func TestExtract_Docx(t *testing.T) {
	data := buildDocx(t, `<w:p><w:r><w:t>1. Retention</w:t></w:r></w:p>`+
		`<w:p><w:r><w:t xml:space="preserve">Data is kept </w:t></w:r><w:r><w:t>forever.</w:t></w:r></w:p>`+
		`<w:p><w:r><w:t>Term</w:t><w:tab/><w:t>12 months</w:t></w:r></w:p>`)

	out, err := extract.Extractor{}.Extract(data, ".docx")
	require.NoError(t, err)
	assert.Equal(t, "1. Retention\nData is kept forever.\nTerm\t12 months", out)
}

func TestExtract_DocxWithoutBody(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	_, err := zw.Create("word/styles.xml")
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = extract.Extractor{}.Extract(buf.Bytes(), ".docx")
	assert.ErrorIs(t, err, analysiserrors.ErrExtraction)
}

func TestExtract_CorruptPDF(t *testing.T) {
	_, err := extract.Extractor{}.Extract([]byte("definitely not a pdf"), ".pdf")
	assert.ErrorIs(t, err, analysiserrors.ErrExtraction)
}

func TestExtract_EmptyText(t *testing.T) {
	_, err := extract.Extractor{}.Extract([]byte(" \n\t "), ".txt")
	assert.ErrorIs(t, err, extract.ErrNoText)
}

func TestSupported(t *testing.T) {
	assert.True(t, extract.Supported(".PDF"))
	assert.True(t, extract.Supported(".docx"))
	assert.False(t, extract.Supported(".doc"))
}

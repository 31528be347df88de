package documents

import (
	"time"
)

// DocType is free text; contract, policy and agreement are the usual values.
type DocType string

const (
	DocTypeContract  DocType = "contract"
	DocTypePolicy    DocType = "policy"
	DocTypeAgreement DocType = "agreement"
)

// Document is an uploaded file and its extracted text. Content never changes
// after upload.
type Document struct {
	ID         string    `json:"id"`
	Filename   string    `json:"filename"`
	DocType    DocType   `json:"doc_type"`
	Content    string    `json:"content"`
	UploadTime time.Time `json:"upload_time"`
	Processed  bool      `json:"processed"`
	ArchiveURL string    `json:"archive_url,omitempty"`
}

// Summary is a Document without its content.
type Summary struct {
	ID         string    `json:"id"`
	Filename   string    `json:"filename"`
	DocType    DocType   `json:"doc_type"`
	UploadTime time.Time `json:"upload_time"`
	Processed  bool      `json:"processed"`
	ArchiveURL string    `json:"archive_url,omitempty"`
}

func (d Document) Summary() Summary {
	return Summary{
		ID:         d.ID,
		Filename:   d.Filename,
		DocType:    d.DocType,
		UploadTime: d.UploadTime,
		Processed:  d.Processed,
		ArchiveURL: d.ArchiveURL,
	}
}

// NewDocument carries the fields a caller supplies on upload.
type NewDocument struct {
	Filename   string
	DocType    DocType
	Content    string
	ArchiveURL string
}

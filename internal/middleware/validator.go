package middleware

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Input validation and sanitization utilities

const (
	maxRegulations      = 10
	maxRegulationLength = 64
	maxIssueIDLength    = 128
)

var docIDPattern = regexp.MustCompile(`^doc_[0-9]+_[0-9]{14}$`)

// ValidateDocID checks the doc_<seq>_<timestamp> format
func ValidateDocID(id string) error {
	if id == "" {
		return fmt.Errorf("doc_id cannot be empty")
	}
	if !docIDPattern.MatchString(id) {
		return fmt.Errorf("invalid doc_id format")
	}
	return nil
}

// SanitizeIssueID strips control characters and checks the length only.
// Issue ids come from the model, so whether one exists is left to the lookup.
func SanitizeIssueID(id string) (string, error) {
	id = SanitizeString(id)
	if id == "" {
		return "", fmt.Errorf("issue_id cannot be empty")
	}
	if utf8.RuneCountInString(id) > maxIssueIDLength {
		return "", fmt.Errorf("issue_id too long (max %d)", maxIssueIDLength)
	}
	return id, nil
}

// SanitizeRegulations strips control characters from each name. Unknown
// names pass through; only the count and length are limited.
func SanitizeRegulations(names []string) ([]string, error) {
	if len(names) > maxRegulations {
		return nil, fmt.Errorf("too many regulations (max %d)", maxRegulations)
	}
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = SanitizeString(n)
		if utf8.RuneCountInString(n) > maxRegulationLength {
			return nil, fmt.Errorf("regulation name too long: %.20s...", n)
		}
		out = append(out, n)
	}
	return out, nil
}

// ValidateExtension checks the upload extension against the allowed list
func ValidateExtension(filename string) error {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf", ".docx", ".txt":
		return nil
	}
	return fmt.Errorf("unsupported file format (allowed: .pdf, .docx, .txt)")
}

// SanitizeString removes dangerous characters from strings
func SanitizeString(input string) string {
	input = strings.ReplaceAll(input, "\x00", "")

	var result strings.Builder
	for _, r := range input {
		if r >= 32 || r == '\t' || r == '\n' {
			result.WriteRune(r)
		}
	}
	return strings.TrimSpace(result.String())
}

// SanitizeFilename drops any directory part and control characters
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = SanitizeString(filepath.Base(name))
	if name == "." || name == "/" {
		return ""
	}
	return name
}

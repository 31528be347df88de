package analysis

// Cache holds the latest result of each stage per document. Put overwrites.
type Cache interface {
	Put(documentID string, stage Stage, result any)
	Get(documentID string, stage Stage) (any, bool)
	Has(documentID string, stage Stage) bool
}

// Renderer turns markdown into HTML.
type Renderer interface {
	Render(markdown string) (string, error)
}

// PromptBuilder owns the wording sent to the generator. Inputs arrive
// already truncated.
type PromptBuilder interface {
	Clauses(docType, content string) string
	Compliance(filename string, clauses ClauseExtractionResult, regulations []string) string
	Explanation(issue ComplianceIssue, audience Audience) string
	Remediation(complianceJSON string) string
}

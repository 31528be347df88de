package prompt_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bryanwahyu/automaton-legal/internal/domain/analysis"
	"github.com/bryanwahyu/automaton-legal/internal/infra/ai/prompt"
)

func TestClausesPrompt(t *testing.T) {
	p := prompt.Builder{}.Clauses("policy", "We keep data forever.")
	assert.True(t, strings.HasPrefix(p, prompt.MarkerClauses))
	assert.Contains(t, p, "Document type: policy")
	assert.Contains(t, p, "We keep data forever.")
}

func TestCompliancePrompt_DescribesRegulations(t *testing.T) {
	clauses := analysis.ClauseExtractionResult{Clauses: []analysis.Clause{{ClauseID: "C1", Text: "forever"}}}
	p := prompt.Builder{}.Compliance("msa.pdf", clauses, []string{"GDPR", "Local Data Act"})

	assert.True(t, strings.HasPrefix(p, prompt.MarkerCompliance))
	assert.Contains(t, p, "Document: msa.pdf")
	assert.Contains(t, p, `"clause_id": "C1"`)
	assert.Contains(t, p, analysis.DescribeRegulation("GDPR"))
	assert.Contains(t, p, `"Local Data Act": "Local Data Act"`)
}

func TestCompliancePrompt_KeepsAmpersandsLiteral(t *testing.T) {
	clauses := analysis.ClauseExtractionResult{Clauses: []analysis.Clause{{ClauseID: "C1", Text: "fees < 5% & taxes"}}}
	p := prompt.Builder{}.Compliance("msa.pdf", clauses, []string{"SOX & GLBA"})

	assert.Contains(t, p, `"SOX & GLBA": "SOX & GLBA"`)
	assert.Contains(t, p, `"text": "fees < 5% & taxes"`)
	assert.NotContains(t, p, `\u0026`)
}

func TestExplanationPrompt_AudienceInstructions(t *testing.T) {
	issue := analysis.ComplianceIssue{IssueID: "I1", Regulation: "GDPR"}
	exec := prompt.Builder{}.Explanation(issue, analysis.AudienceExecutive)
	eng := prompt.Builder{}.Explanation(issue, analysis.AudienceEngineer)

	assert.Contains(t, exec, "executive audience")
	assert.Contains(t, exec, "business leaders")
	assert.Contains(t, eng, "engineers")
	assert.NotEqual(t, exec, eng)
}

func TestRemediationPrompt(t *testing.T) {
	p := prompt.Builder{}.Remediation(`{"compliance_score": 40}`)
	assert.True(t, strings.HasPrefix(p, prompt.MarkerRemediation))
	assert.Contains(t, p, `{"compliance_score": 40}`)
	assert.Contains(t, p, "immediate_actions")
}

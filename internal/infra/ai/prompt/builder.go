package prompt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bryanwahyu/automaton-legal/internal/domain/analysis"
)

// Builder renders the stage prompts. The zero value is ready to use.
type Builder struct{}

var _ analysis.PromptBuilder = Builder{}

// Stage markers open every prompt so offline generators can tell stages apart.
const (
	MarkerClauses     = "[stage:clauses]"
	MarkerCompliance  = "[stage:compliance]"
	MarkerExplanation = "[stage:explanation]"
	MarkerRemediation = "[stage:remediation]"
)

var audienceInstructions = map[analysis.Audience]string{
	analysis.AudienceExecutive: "Write for business leaders. Focus on financial and reputational impact, skip legal jargon and keep every point actionable.",
	analysis.AudienceEngineer:  "Write for engineers. Focus on the system changes and implementation work needed, and be specific about what to build or modify.",
	analysis.AudienceLegal:     "Write for counsel. Give a full legal analysis with regulatory interpretation, relevant case law and detailed compliance requirements.",
}

func (Builder) Clauses(docType, content string) string {
	var b strings.Builder
	b.WriteString(MarkerClauses + "\n")
	b.WriteString("Extract every distinct clause from the legal document below.\n\n")
	fmt.Fprintf(&b, "Document type: %s\nDocument content:\n%s\n\n", docType, content)
	b.WriteString(`For each clause give its type (for example Data Retention, Liability, Termination, Consent, Jurisdiction, Payment, Indemnification, Confidentiality), the clause text or a faithful summary, its risk potential, the obligations it creates and the assumptions it leaves unstated.

Answer with JSON shaped like:
{
  "clauses": [
    {
      "clause_id": "C1",
      "clause_type": "Data Retention",
      "text": "...",
      "risk_potential": "High",
      "key_obligations": ["..."],
      "implicit_assumptions": ["..."],
      "location": "Section 4.2"
    }
  ],
  "summary": "short overview of the document structure"
}`)
	return b.String()
}

func (Builder) Compliance(filename string, clauses analysis.ClauseExtractionResult, regulations []string) string {
	regs := make(map[string]string, len(regulations))
	for _, r := range regulations {
		regs[r] = analysis.DescribeRegulation(r)
	}

	var b strings.Builder
	b.WriteString(MarkerCompliance + "\n")
	b.WriteString("Check the extracted clauses of this document against the listed regulations.\n\n")
	fmt.Fprintf(&b, "Document: %s\nExtracted clauses:\n%s\n\nRegulations:\n%s\n\n", filename, indentJSON(clauses), indentJSON(regs))
	b.WriteString(`Look for direct violations, partial compliance, required clauses that are missing and obligations that contradict each other. Map clauses to the relevant regulation articles.

For each issue give issue_type (violation, gap, conflict or partial), severity, the affected clause id and text, the regulation and article, the legal reasoning, the penalty exposure and a concrete remediation.

Answer with JSON shaped like:
{
  "compliance_score": 0,
  "total_issues": 0,
  "issues": [
    {
      "issue_id": "I1",
      "issue_type": "violation",
      "severity": "Critical",
      "affected_clause_id": "C1",
      "clause_text": "...",
      "regulation": "GDPR Article 17",
      "legal_reasoning": "...",
      "penalty_exposure": "...",
      "remediation": "..."
    }
  ],
  "regulation_coverage": {},
  "risk_summary": "executive summary"
}`)
	return b.String()
}

func (Builder) Explanation(issue analysis.ComplianceIssue, audience analysis.Audience) string {
	var b strings.Builder
	b.WriteString(MarkerExplanation + "\n")
	fmt.Fprintf(&b, "Explain this compliance issue to a %s audience.\n\nIssue:\n%s\n\n", audience, indentJSON(issue))
	if inst, ok := audienceInstructions[audience]; ok {
		b.WriteString(inst + "\n\n")
	}
	b.WriteString(`Cover what the problem is, why it matters, what happens if it is not fixed and how to fix it.
Answer in markdown using bold for emphasis and bullet lists. Sound like a trusted advisor.`)
	return b.String()
}

func (Builder) Remediation(complianceJSON string) string {
	var b strings.Builder
	b.WriteString(MarkerRemediation + "\n")
	fmt.Fprintf(&b, "Build a prioritised remediation roadmap from this compliance analysis:\n%s\n\n", complianceJSON)
	b.WriteString(`Group actions by urgency: immediate_actions for Critical issues (within 7 days), short_term for High (within 30 days), medium_term for Medium (within 90 days) and long_term for Low.

Each action needs action_title, detailed_steps, responsible_party, estimated_effort, dependencies and success_criteria.

Answer with JSON shaped like:
{
  "plan_summary": "...",
  "immediate_actions": [],
  "short_term": [],
  "medium_term": [],
  "long_term": [],
  "estimated_timeline": "X weeks",
  "total_actions": 0
}`)
	return b.String()
}

// indentJSON keeps &, < and > literal; the model reads this, not a browser.
func indentJSON(v any) string {
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Sprintf("%v", v)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

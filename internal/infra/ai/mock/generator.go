package mock

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/bryanwahyu/automaton-legal/internal/domain/ai"
	"github.com/bryanwahyu/automaton-legal/internal/domain/analysis"
	"github.com/bryanwahyu/automaton-legal/internal/infra/ai/prompt"
)

// Generator answers stage prompts with fixed, schema-valid content so the
// service runs without an API key.
type Generator struct{}

var _ ai.Generator = Generator{}

func (Generator) Generate(ctx context.Context, p string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	switch {
	case strings.HasPrefix(p, prompt.MarkerClauses):
		return encode(clauses())
	case strings.HasPrefix(p, prompt.MarkerCompliance):
		return encode(compliance())
	case strings.HasPrefix(p, prompt.MarkerRemediation):
		return encode(remediation())
	case strings.HasPrefix(p, prompt.MarkerExplanation):
		return explanation, nil
	default:
		return "", errors.New("mock generator: unrecognised prompt")
	}
}

func encode(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	// dibungkus fence seperti jawaban model asli
	return "```json\n" + string(b) + "\n```", nil
}

func clauses() analysis.ClauseExtractionResult {
	return analysis.ClauseExtractionResult{
		Summary: "Service agreement with data handling and liability terms.",
		Clauses: []analysis.Clause{
			{
				ClauseID:            "C1",
				ClauseType:          "Data Retention",
				Text:                "Customer data may be retained for as long as the provider deems necessary.",
				RiskPotential:       analysis.SeverityHigh,
				KeyObligations:      analysis.StringList{"Store customer data securely"},
				ImplicitAssumptions: analysis.StringList{"No fixed deletion schedule exists"},
				Location:            "Section 4.2",
			},
			{
				ClauseID:            "C2",
				ClauseType:          "Liability",
				Text:                "Provider liability is capped at fees paid in the prior month.",
				RiskPotential:       analysis.SeverityMedium,
				KeyObligations:      analysis.StringList{"Pay fees monthly"},
				ImplicitAssumptions: analysis.StringList{},
				Location:            "Section 9.1",
			},
		},
	}
}

func compliance() analysis.ComplianceAnalysisResult {
	return analysis.ComplianceAnalysisResult{
		ComplianceScore: 62,
		TotalIssues:     2,
		Issues: []analysis.ComplianceIssue{
			{
				IssueID:          "I1",
				IssueType:        analysis.IssueViolation,
				Severity:         analysis.SeverityCritical,
				AffectedClauseID: "C1",
				ClauseText:       "Customer data may be retained for as long as the provider deems necessary.",
				Regulation:       "GDPR Article 5(1)(e)",
				LegalReasoning:   "Open-ended retention conflicts with the storage limitation principle.",
				PenaltyExposure:  "Up to 4% of annual global turnover",
				Remediation:      "Define a maximum retention period and a deletion process.",
			},
			{
				IssueID:          "I2",
				IssueType:        analysis.IssueGap,
				Severity:         analysis.SeverityMedium,
				AffectedClauseID: "C2",
				ClauseText:       "Provider liability is capped at fees paid in the prior month.",
				Regulation:       "CCPA",
				LegalReasoning:   "The cap does not carve out statutory consumer privacy damages.",
				PenaltyExposure:  "Statutory damages per consumer per incident",
				Remediation:      "Exclude privacy breaches from the liability cap.",
			},
		},
		RegulationCoverage: map[string]any{"GDPR": "partial", "CCPA": "partial"},
		RiskSummary:        "Retention and liability terms expose the customer to privacy penalties.",
	}
}

func remediation() analysis.RemediationPlan {
	return analysis.RemediationPlan{
		PlanSummary: "Fix data retention first, then renegotiate the liability cap.",
		ImmediateActions: []analysis.RemediationAction{{
			Title:            "Set a retention limit",
			Steps:            analysis.StringList{"Agree a 24 month maximum", "Amend Section 4.2"},
			ResponsibleParty: "Legal",
			EstimatedEffort:  "2 days",
			Dependencies:     analysis.StringList{},
			SuccessCriteria:  analysis.StringList{"Signed amendment"},
			RelatedIssues:    analysis.StringList{"I1"},
		}},
		ShortTerm: []analysis.RemediationAction{},
		MediumTerm: []analysis.RemediationAction{{
			Title:            "Carve privacy breaches out of the cap",
			Steps:            analysis.StringList{"Draft carve-out language", "Negotiate with provider"},
			ResponsibleParty: "Legal",
			EstimatedEffort:  "2 weeks",
			Dependencies:     analysis.StringList{"Set a retention limit"},
			SuccessCriteria:  analysis.StringList{"Updated Section 9.1"},
			RelatedIssues:    analysis.StringList{"I2"},
		}},
		LongTerm:          []analysis.RemediationAction{},
		EstimatedTimeline: "6 weeks",
		TotalActions:      2,
	}
}

const explanation = `## What's the problem?

The contract lets the provider keep **customer data indefinitely**.

## Why does it matter?

- Regulators expect a defined retention period.
- Unlimited retention increases breach impact.

## How to fix it

1. Agree a maximum retention period.
2. Add a deletion obligation at contract end.
`

package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	domain "github.com/bryanwahyu/automaton-legal/internal/domain/analysis"
	"github.com/bryanwahyu/automaton-legal/internal/domain/analysiserrors"
	"github.com/bryanwahyu/automaton-legal/internal/domain/documents"
)

// ClauseExtraction turns document text into clauses and caches them under
// StageClauses. A successful run marks the document processed.
type ClauseExtraction struct{ p *pipeline }

func (ClauseExtraction) Name() domain.Stage       { return domain.StageClauses }
func (ClauseExtraction) Requires() []domain.Stage { return nil }
func (ClauseExtraction) NeedsDocument() bool      { return true }

func (s ClauseExtraction) Run(ctx context.Context, doc documents.Document) (domain.ClauseExtractionResult, error) {
	content := truncateRunes(doc.Content, s.p.Limits.ClauseContent)
	prompt := s.p.Prompts.Clauses(string(doc.DocType), content)

	var out domain.ClauseExtractionResult
	if err := s.p.generateJSON(ctx, doc.ID, domain.StageClauses, prompt, &out); err != nil {
		return domain.ClauseExtractionResult{}, err
	}
	s.p.Cache.Put(doc.ID, domain.StageClauses, out)
	if err := s.p.Docs.MarkProcessed(ctx, doc.ID); err != nil {
		return domain.ClauseExtractionResult{}, fmt.Errorf("mark processed: %w", err)
	}
	return out, nil
}

// ComplianceAnalysis checks cached clauses against regulations and caches the
// result under StageCompliance.
type ComplianceAnalysis struct{ p *pipeline }

func (ComplianceAnalysis) Name() domain.Stage { return domain.StageCompliance }
func (ComplianceAnalysis) Requires() []domain.Stage {
	return []domain.Stage{domain.StageClauses}
}
func (ComplianceAnalysis) NeedsDocument() bool { return true }

func (s ComplianceAnalysis) Run(ctx context.Context, doc documents.Document, regulations []string) (domain.ComplianceAnalysisResult, error) {
	clauses, ok := cached[domain.ClauseExtractionResult](s.p.Cache, doc.ID, domain.StageClauses)
	if !ok {
		return domain.ComplianceAnalysisResult{}, &analysiserrors.PrerequisiteMissingError{
			DocumentID: doc.ID, Stage: string(domain.StageCompliance), Missing: string(domain.StageClauses),
		}
	}
	prompt := s.p.Prompts.Compliance(doc.Filename, clauses, s.p.regulations(regulations))

	var out domain.ComplianceAnalysisResult
	if err := s.p.generateJSON(ctx, doc.ID, domain.StageCompliance, prompt, &out); err != nil {
		return domain.ComplianceAnalysisResult{}, err
	}
	s.p.Cache.Put(doc.ID, domain.StageCompliance, out)
	return out, nil
}

// RiskHeatmap aggregates the cached compliance issues. Nothing is cached.
type RiskHeatmap struct{ p *pipeline }

func (RiskHeatmap) Name() domain.Stage { return domain.StageHeatmap }
func (RiskHeatmap) Requires() []domain.Stage {
	return []domain.Stage{domain.StageCompliance}
}
func (RiskHeatmap) NeedsDocument() bool { return false }

func (s RiskHeatmap) Run(docID string) (domain.Heatmap, error) {
	res, err := s.p.compliance(docID, domain.StageHeatmap)
	if err != nil {
		return domain.Heatmap{}, err
	}
	return domain.BuildHeatmap(res.Issues), nil
}

// RiskExplanation narrates one issue for an audience and renders it to HTML.
type RiskExplanation struct{ p *pipeline }

func (RiskExplanation) Name() domain.Stage { return domain.StageExplanation }
func (RiskExplanation) Requires() []domain.Stage {
	return []domain.Stage{domain.StageCompliance}
}
func (RiskExplanation) NeedsDocument() bool { return false }

func (s RiskExplanation) Run(ctx context.Context, docID, issueID string, audience domain.Audience) (domain.Explanation, error) {
	res, err := s.p.compliance(docID, domain.StageExplanation)
	if err != nil {
		return domain.Explanation{}, err
	}
	issue, ok := res.FindIssue(issueID)
	if !ok {
		return domain.Explanation{}, &analysiserrors.NotFoundError{Resource: "issue", ID: issueID}
	}

	md, err := s.p.generate(ctx, docID, domain.StageExplanation, s.p.Prompts.Explanation(issue, audience))
	if err != nil {
		return domain.Explanation{}, err
	}
	html, err := s.p.Renderer.Render(md)
	if err != nil {
		return domain.Explanation{}, fmt.Errorf("render explanation: %w", err)
	}
	return domain.Explanation{Issue: issue, Audience: audience, Markdown: md, HTML: html}, nil
}

// RemediationPlanner builds a phased plan from the cached compliance result.
type RemediationPlanner struct{ p *pipeline }

func (RemediationPlanner) Name() domain.Stage { return domain.StageRemediation }
func (RemediationPlanner) Requires() []domain.Stage {
	return []domain.Stage{domain.StageCompliance}
}
func (RemediationPlanner) NeedsDocument() bool { return false }

func (s RemediationPlanner) Run(ctx context.Context, docID string) (domain.RemediationPlan, error) {
	res, err := s.p.compliance(docID, domain.StageRemediation)
	if err != nil {
		return domain.RemediationPlan{}, err
	}
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return domain.RemediationPlan{}, fmt.Errorf("encode compliance result: %w", err)
	}
	input := truncateRunes(strings.TrimSuffix(b.String(), "\n"), s.p.Limits.RemediationInput)

	var plan domain.RemediationPlan
	if err := s.p.generateJSON(ctx, docID, domain.StageRemediation, s.p.Prompts.Remediation(input), &plan); err != nil {
		return domain.RemediationPlan{}, err
	}
	return plan, nil
}

func (r *pipeline) compliance(docID string, stage domain.Stage) (domain.ComplianceAnalysisResult, error) {
	res, ok := cached[domain.ComplianceAnalysisResult](r.Cache, docID, domain.StageCompliance)
	if !ok {
		return domain.ComplianceAnalysisResult{}, &analysiserrors.PrerequisiteMissingError{
			DocumentID: docID, Stage: string(stage), Missing: string(domain.StageCompliance),
		}
	}
	return res, nil
}

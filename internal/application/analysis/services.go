package analysis

import (
	"context"

	domain "github.com/bryanwahyu/automaton-legal/internal/domain/analysis"
	"github.com/bryanwahyu/automaton-legal/internal/domain/audit"
)

const runHistoryLimit = 50

// Service is the pipeline facade used by the HTTP router and the CLI.
// Safe for concurrent use; the stores do their own locking.
type Service struct {
	orch        Orchestrator
	p           *pipeline
	clauses     ClauseExtraction
	compliance  ComplianceAnalysis
	heatmap     RiskHeatmap
	explanation RiskExplanation
	remediation RemediationPlanner
}

func NewService(d Deps) *Service {
	p := newPipeline(d)
	return &Service{
		orch:        Orchestrator{Docs: p.Docs, Cache: p.Cache},
		p:           p,
		clauses:     ClauseExtraction{p: p},
		compliance:  ComplianceAnalysis{p: p},
		heatmap:     RiskHeatmap{p: p},
		explanation: RiskExplanation{p: p},
		remediation: RemediationPlanner{p: p},
	}
}

// Stages returns the pipeline steps in execution order.
func (s *Service) Stages() []Stage {
	return []Stage{s.clauses, s.compliance, s.heatmap, s.explanation, s.remediation}
}

func (s *Service) RunClauseExtraction(ctx context.Context, docID string) (domain.ClauseExtractionResult, error) {
	doc, err := s.orch.Ready(ctx, docID, s.clauses)
	if err != nil {
		return domain.ClauseExtractionResult{}, err
	}
	return s.clauses.Run(ctx, doc)
}

// RunComplianceAnalysis checks the latest extracted clauses. An empty
// regulations list falls back to the configured defaults.
func (s *Service) RunComplianceAnalysis(ctx context.Context, docID string, regulations []string) (domain.ComplianceAnalysisResult, error) {
	doc, err := s.orch.Ready(ctx, docID, s.compliance)
	if err != nil {
		return domain.ComplianceAnalysisResult{}, err
	}
	return s.compliance.Run(ctx, doc, regulations)
}

func (s *Service) RiskHeatmap(ctx context.Context, docID string) (domain.Heatmap, error) {
	if _, err := s.orch.Ready(ctx, docID, s.heatmap); err != nil {
		return domain.Heatmap{}, err
	}
	return s.heatmap.Run(docID)
}

func (s *Service) ExplainIssue(ctx context.Context, docID, issueID string, audience domain.Audience) (domain.Explanation, error) {
	if _, err := s.orch.Ready(ctx, docID, s.explanation); err != nil {
		return domain.Explanation{}, err
	}
	return s.explanation.Run(ctx, docID, issueID, domain.ParseAudience(string(audience)))
}

func (s *Service) RemediationPlan(ctx context.Context, docID string) (domain.RemediationPlan, error) {
	if _, err := s.orch.Ready(ctx, docID, s.remediation); err != nil {
		return domain.RemediationPlan{}, err
	}
	return s.remediation.Run(ctx, docID)
}

// ListRuns returns recorded stage runs, newest first. Without an audit
// repository the list is empty.
func (s *Service) ListRuns(ctx context.Context, docID string) ([]*audit.StageRun, error) {
	if s.p.Audit == nil {
		return []*audit.StageRun{}, nil
	}
	runs, err := s.p.Audit.ListByDocument(ctx, docID, runHistoryLimit)
	if err != nil {
		return nil, err
	}
	if runs == nil {
		runs = []*audit.StageRun{}
	}
	return runs, nil
}

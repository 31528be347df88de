package analysis_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/automaton-legal/internal/domain/analysis"
)

func TestBuildHeatmap_WorkedExample(t *testing.T) {
	issues := []analysis.ComplianceIssue{
		{IssueID: "I1", IssueType: analysis.IssueViolation, Severity: analysis.SeverityCritical, AffectedClauseID: "C1", Regulation: "GDPR Article X"},
		{IssueID: "I2", IssueType: analysis.IssueGap, Severity: analysis.SeverityMedium, AffectedClauseID: "C3", Regulation: "GDPR Article Y"},
	}

	h := analysis.BuildHeatmap(issues)

	assert.Equal(t, map[analysis.Severity]int{
		analysis.SeverityCritical: 1,
		analysis.SeverityHigh:     0,
		analysis.SeverityMedium:   1,
		analysis.SeverityLow:      0,
	}, h.SeverityDistribution)
	assert.Equal(t, map[string]int{"GDPR Article X": 1, "GDPR Article Y": 1}, h.RegulationRisks)
	require.Len(t, h.ClauseRisks, 2)
	assert.Equal(t, []analysis.ClauseRisk{{Severity: analysis.SeverityCritical, IssueType: analysis.IssueViolation}}, h.ClauseRisks["C1"])
	assert.Equal(t, []analysis.ClauseRisk{{Severity: analysis.SeverityMedium, IssueType: analysis.IssueGap}}, h.ClauseRisks["C3"])
	assert.Equal(t, 2, h.TotalIssues)
}

func TestBuildHeatmap_EmptyHasAllBuckets(t *testing.T) {
	h := analysis.BuildHeatmap(nil)
	require.Len(t, h.SeverityDistribution, 4)
	for _, s := range analysis.Severities {
		v, ok := h.SeverityDistribution[s]
		assert.True(t, ok, "bucket %s missing", s)
		assert.Zero(t, v)
	}
	assert.Empty(t, h.RegulationRisks)
	assert.Empty(t, h.ClauseRisks)
	assert.Zero(t, h.TotalIssues)
}

func TestBuildHeatmap_DanglingAndDuplicateRefs(t *testing.T) {
	issues := []analysis.ComplianceIssue{
		{Severity: "high", AffectedClauseID: "C9", Regulation: "HIPAA"},
		{Severity: "High", AffectedClauseID: "C9", Regulation: "HIPAA", IssueType: "conflict"},
		{Severity: "", AffectedClauseID: "", Regulation: ""},
		{Severity: "catastrophic", AffectedClauseID: "C2", Regulation: "CCPA"},
	}
	h := analysis.BuildHeatmap(issues)

	sum := 0
	for _, n := range h.SeverityDistribution {
		sum += n
	}
	assert.Equal(t, len(issues), sum)
	assert.Len(t, h.SeverityDistribution, 4)
	assert.Equal(t, 2, h.SeverityDistribution[analysis.SeverityHigh])
	assert.Equal(t, 2, h.SeverityDistribution[analysis.SeverityMedium])

	assert.Len(t, h.ClauseRisks["C9"], 2, "duplicates are preserved")
	assert.Len(t, h.ClauseRisks[analysis.Unknown], 1)
	assert.Equal(t, analysis.IssueUnknown, h.ClauseRisks[analysis.Unknown][0].IssueType)
	assert.Equal(t, 1, h.RegulationRisks[analysis.Unknown])
	assert.Equal(t, 2, h.RegulationRisks["HIPAA"])
}

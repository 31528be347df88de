package mock_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/automaton-legal/internal/domain/ai"
	"github.com/bryanwahyu/automaton-legal/internal/domain/analysis"
	"github.com/bryanwahyu/automaton-legal/internal/infra/ai/mock"
	"github.com/bryanwahyu/automaton-legal/internal/infra/ai/prompt"
)

func TestGenerator_AnswersEveryStage(t *testing.T) {
	g := mock.Generator{}
	b := prompt.Builder{}
	ctx := context.Background()

	raw, err := g.Generate(ctx, b.Clauses("contract", "text"))
	require.NoError(t, err)
	var cl analysis.ClauseExtractionResult
	require.NoError(t, ai.DecodeResponse(raw, &cl))
	assert.Len(t, cl.Clauses, 2)

	raw, err = g.Generate(ctx, b.Compliance("a.txt", cl, analysis.DefaultRegulations))
	require.NoError(t, err)
	var comp analysis.ComplianceAnalysisResult
	require.NoError(t, ai.DecodeResponse(raw, &comp))
	assert.Equal(t, analysis.Int(2), comp.TotalIssues)

	raw, err = g.Generate(ctx, b.Remediation("{}"))
	require.NoError(t, err)
	var plan analysis.RemediationPlan
	require.NoError(t, ai.DecodeResponse(raw, &plan))
	assert.Equal(t, analysis.Int(2), plan.TotalActions)

	md, err := g.Generate(ctx, b.Explanation(comp.Issues[0], analysis.AudienceLegal))
	require.NoError(t, err)
	assert.Contains(t, md, "## What's the problem?")
}

func TestGenerator_UnknownPrompt(t *testing.T) {
	_, err := mock.Generator{}.Generate(context.Background(), "hello")
	assert.Error(t, err)
}

func TestGenerator_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := mock.Generator{}.Generate(ctx, prompt.Builder{}.Clauses("contract", "x"))
	assert.ErrorIs(t, err, context.Canceled)
}

package nodes

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BennyGoh252/Health-Insights-AI-Assistance/internal/core"
	"github.com/BennyGoh252/Health-Insights-AI-Assistance/internal/prompts"
	"github.com/BennyGoh252/Health-Insights-AI-Assistance/internal/session"
)

func TestOrchestratorClassification(t *testing.T) {
	orch := NewOrchestrator(zerolog.Nop())

	tests := []struct {
		name  string
		state *core.State
		want  core.Directive
	}{
		{"text only", &core.State{InputText: "hi"}, core.DirectiveQnA},
		{"file only", &core.State{FileBytes: []byte("%PDF")}, core.DirectiveDocPipeline},
		{"file and text", &core.State{InputText: "hi", FileBytes: []byte("%PDF")}, core.DirectiveDocThenQnA},
		{"neither", &core.State{}, core.DirectiveNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, directive := orch.Run(context.Background(), tt.state)
			assert.Equal(t, tt.want, directive)
		})
	}
}

func TestDocumentParserRedactsPatientName(t *testing.T) {
	parser := NewDocumentParser(zerolog.Nop())

	delta, directive := parser.Run(context.Background(), &core.State{FileBytes: []byte("%PDF data")})
	assert.Equal(t, core.DirectiveNone, directive)
	assert.Contains(t, delta.CleanedText, "[REDACTED]")
	assert.NotContains(t, delta.CleanedText, "John Doe")
}

func TestClinicalAnalysisMedicalContent(t *testing.T) {
	clinical := NewClinicalAnalysis(zerolog.Nop())

	delta, directive := clinical.Run(context.Background(), &core.State{
		CleanedText: "Findings: Elevated cholesterol...",
	})
	assert.Equal(t, core.DirectiveMedicalRelated, directive)
	assert.NotEmpty(t, delta.ClinicalAnalysis)
}

func TestClinicalAnalysisOffTopicContent(t *testing.T) {
	clinical := NewClinicalAnalysis(zerolog.Nop())

	_, directive := clinical.Run(context.Background(), &core.State{
		CleanedText: "Quarterly revenue grew by 12 percent.",
	})
	assert.Equal(t, core.DirectiveOffTopic, directive)
}

func TestInsightsSummaryDirectiveDependsOnInputText(t *testing.T) {
	insights := NewInsightsSummary(zerolog.Nop())

	state := &core.State{
		ClinicalAnalysis: "Summary: Elevated cholesterol.",
		RiskAssessment:   []string{"High cholesterol"},
	}

	delta, directive := insights.Run(context.Background(), state)
	assert.Equal(t, core.DirectiveNone, directive, "file-only requests finish after insights")
	assert.Contains(t, delta.InsightSummary, "Risks: High cholesterol")

	state.InputText = "what does this mean?"
	_, directive = insights.Run(context.Background(), state)
	assert.Equal(t, core.DirectiveDocThenQnA, directive, "file+text requests continue to qna")
}

func TestComplianceUsesPreComplianceResponse(t *testing.T) {
	compliance := NewCompliance(zerolog.Nop())

	delta, _ := compliance.Run(context.Background(), &core.State{
		PreComplianceResponse: "answer text",
	})
	assert.Contains(t, delta.FinalResponse, "answer text")
	assert.Contains(t, delta.FinalResponse, "educational only")
}

func TestComplianceFallsBackToInsightSummary(t *testing.T) {
	compliance := NewCompliance(zerolog.Nop())

	delta, _ := compliance.Run(context.Background(), &core.State{
		InsightSummary: "Summary; Risks: High cholesterol",
	})
	assert.Contains(t, delta.FinalResponse, "Risks: High cholesterol")
}

func TestComplianceAlwaysProducesResponse(t *testing.T) {
	compliance := NewCompliance(zerolog.Nop())

	delta, _ := compliance.Run(context.Background(), &core.State{})
	assert.NotEmpty(t, delta.FinalResponse)
}

type cannedResponder struct {
	prompt string
}

func (c *cannedResponder) Invoke(_ context.Context, prompt string) string {
	c.prompt = prompt
	return "canned answer"
}

func TestQnAPromptGrounding(t *testing.T) {
	responder := &cannedResponder{}
	loader := prompts.NewLoader(t.TempDir())
	qna := NewQnA(responder, loader, "v1.0", zerolog.Nop())

	state := &core.State{
		InputText:      "is this serious?",
		InsightSummary: "Summary; Risks: High cholesterol",
		History: []session.ConversationEntry{
			{InputSnippet: "earlier question", ResponseSnippet: "earlier answer"},
		},
	}

	delta, directive := qna.Run(context.Background(), state)
	require.Equal(t, core.DirectiveNone, directive)
	assert.Equal(t, "canned answer", delta.QnAAnswer)
	assert.Equal(t, "canned answer", delta.PreComplianceResponse)

	assert.Contains(t, responder.prompt, "Summary; Risks: High cholesterol")
	assert.Contains(t, responder.prompt, "earlier question")
	assert.Contains(t, responder.prompt, "is this serious?")
}

func TestQnAUsesPriorAnalysisWhenNoFreshSummary(t *testing.T) {
	responder := &cannedResponder{}
	loader := prompts.NewLoader(t.TempDir())
	qna := NewQnA(responder, loader, "v1.0", zerolog.Nop())

	state := &core.State{
		InputText: "remind me about my results",
		PriorAnalysis: &session.AnalysisSnapshot{
			InsightSummary: "snapshot summary",
		},
	}

	qna.Run(context.Background(), state)
	assert.Contains(t, responder.prompt, "snapshot summary")
}

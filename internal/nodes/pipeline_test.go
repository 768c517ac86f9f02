package nodes

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BennyGoh252/Health-Insights-AI-Assistance/internal/core"
	"github.com/BennyGoh252/Health-Insights-AI-Assistance/internal/llm"
	"github.com/BennyGoh252/Health-Insights-AI-Assistance/internal/prompts"
)

// newPipeline wires the real steps with the offline responder, the same
// shape the service runs with USE_LOCAL_RESPONDER=true.
func newPipeline(t *testing.T) *core.Graph {
	t.Helper()

	log := zerolog.Nop()
	gateway := llm.NewGateway(nil, 0, log)
	loader := prompts.NewLoader(t.TempDir())

	graph, err := core.NewGraph(log,
		NewOrchestrator(log),
		NewDocumentParser(log),
		NewClinicalAnalysis(log),
		NewRiskAssessment(log),
		NewInsightsSummary(log),
		NewQnA(gateway, loader, "v1.0", log),
		NewCompliance(log),
	)
	require.NoError(t, err)
	return graph
}

func TestPipelineTextOnly(t *testing.T) {
	graph := newPipeline(t)

	state := &core.State{SessionID: "s1", InputText: "what does cholesterol mean?"}
	path, err := graph.Run(context.Background(), state)
	require.NoError(t, err)

	assert.Equal(t, []string{core.NodeOrchestrator, core.NodeQnA, core.NodeCompliance}, path)
	assert.Contains(t, state.FinalResponse, "Cholesterol is a waxy substance")
	assert.Contains(t, state.FinalResponse, "educational only")
}

func TestPipelineFileOnly(t *testing.T) {
	graph := newPipeline(t)

	state := &core.State{SessionID: "s1", FileBytes: []byte("%PDF fake report")}
	path, err := graph.Run(context.Background(), state)
	require.NoError(t, err)

	assert.Equal(t, []string{
		core.NodeOrchestrator, core.NodeDocumentParser, core.NodeClinicalAnalysis,
		core.NodeRiskAssessment, core.NodeInsightsSummary, core.NodeCompliance,
	}, path)
	assert.NotEmpty(t, state.CleanedText)
	assert.NotEmpty(t, state.ClinicalAnalysis)
	assert.NotEmpty(t, state.RiskAssessment)
	assert.Contains(t, state.FinalResponse, "Risks: High cholesterol")
	assert.Empty(t, state.QnAAnswer)
}

func TestPipelineFileAndText(t *testing.T) {
	graph := newPipeline(t)

	state := &core.State{
		SessionID: "s1",
		InputText: "should I worry about my cholesterol?",
		FileBytes: []byte("%PDF fake report"),
	}
	path, err := graph.Run(context.Background(), state)
	require.NoError(t, err)

	assert.Equal(t, []string{
		core.NodeOrchestrator, core.NodeDocumentParser, core.NodeClinicalAnalysis,
		core.NodeRiskAssessment, core.NodeInsightsSummary, core.NodeQnA, core.NodeCompliance,
	}, path)
	assert.NotEmpty(t, state.QnAAnswer)
	assert.Equal(t, state.QnAAnswer, state.PreComplianceResponse)
	assert.Contains(t, state.FinalResponse, state.QnAAnswer)
}

func TestPipelineAlwaysTerminatesWithFinalResponse(t *testing.T) {
	graph := newPipeline(t)

	states := []*core.State{
		{SessionID: "s1"},
		{SessionID: "s2", InputText: "hello"},
		{SessionID: "s3", FileBytes: []byte("%PDF x")},
	}
	for _, state := range states {
		path, err := graph.Run(context.Background(), state)
		require.NoError(t, err)
		assert.Equal(t, core.NodeCompliance, path[len(path)-1])
		assert.NotEmpty(t, state.FinalResponse)
	}
}

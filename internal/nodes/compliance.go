package nodes

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/BennyGoh252/Health-Insights-AI-Assistance/internal/core"
)

// complianceFooter closes every response delivered to the user.
const complianceFooter = "\n\nThis information is educational only and not a substitute for professional medical advice. Please consult your healthcare provider for personalized guidance."

// offTopicResponse is returned when the pipeline produced nothing to
// deliver, e.g. an off-topic document or an unroutable request.
const offTopicResponse = "I can only help with questions about medical documents and general health topics. Please upload a medical report or ask a health-related question."

// Compliance finalizes every request. It is always the last step before
// termination, and it always produces a final response: the pre-compliance
// answer when one exists, otherwise the insight summary, otherwise a safe
// redirection.
type Compliance struct {
	log zerolog.Logger
}

// NewCompliance creates the terminal step.
func NewCompliance(log zerolog.Logger) *Compliance {
	return &Compliance{log: log.With().Str("node", core.NodeCompliance).Logger()}
}

func (c *Compliance) Name() string { return core.NodeCompliance }

func (c *Compliance) Run(_ context.Context, state *core.State) (core.Delta, core.Directive) {
	response := state.PreComplianceResponse
	if response == "" {
		response = state.InsightSummary
	}
	if response == "" {
		response = offTopicResponse
	}

	c.log.Info().Str("session_id", state.SessionID).Msg("response finalized")
	return core.Delta{FinalResponse: response + complianceFooter}, core.DirectiveNone
}

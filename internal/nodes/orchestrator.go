package nodes

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/BennyGoh252/Health-Insights-AI-Assistance/internal/core"
)

// Orchestrator classifies the incoming request and emits the initial
// routing directive:
//
//   - file + text -> doc_then_qna (full document pipeline, then Q&A)
//   - file only   -> doc_pipeline
//   - text only   -> qna
//
// A request with neither is rejected at input validation before the graph
// runs; if one slips through, the empty directive resolves to compliance.
type Orchestrator struct {
	log zerolog.Logger
}

// NewOrchestrator creates the entry step.
func NewOrchestrator(log zerolog.Logger) *Orchestrator {
	return &Orchestrator{log: log.With().Str("node", core.NodeOrchestrator).Logger()}
}

func (o *Orchestrator) Name() string { return core.NodeOrchestrator }

func (o *Orchestrator) Run(_ context.Context, state *core.State) (core.Delta, core.Directive) {
	hasFile := len(state.FileBytes) > 0
	hasText := state.InputText != ""

	var directive core.Directive
	switch {
	case hasFile && hasText:
		directive = core.DirectiveDocThenQnA
	case hasFile:
		directive = core.DirectiveDocPipeline
	case hasText:
		directive = core.DirectiveQnA
	default:
		directive = core.DirectiveNone
	}

	o.log.Info().
		Str("session_id", state.SessionID).
		Bool("has_file", hasFile).
		Bool("has_text", hasText).
		Str("directive", string(directive)).
		Msg("request classified")
	return core.Delta{}, directive
}

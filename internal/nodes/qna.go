package nodes

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/BennyGoh252/Health-Insights-AI-Assistance/internal/core"
	"github.com/BennyGoh252/Health-Insights-AI-Assistance/internal/prompts"
)

// Responder is the safety-gateway surface the Q&A step generates through.
// It always returns text; backend failures are absorbed behind it.
type Responder interface {
	Invoke(ctx context.Context, prompt string) string
}

const maxHistoryTurns = 10

var defaultQnAPrompt = prompts.Prompt{
	Template: `Medical Report Summary:
{{summary}}

Previous Conversation:
{{history}}

User Question:
{{question}}

Provide a clear, simple explanation:`,
}

// QnA answers the user's question through the safety gateway, grounding the
// prompt in the latest analysis summary and recent conversation turns.
type QnA struct {
	responder Responder
	loader    *prompts.Loader
	version   string
	log       zerolog.Logger
}

// NewQnA creates the question-answering step.
func NewQnA(responder Responder, loader *prompts.Loader, version string, log zerolog.Logger) *QnA {
	return &QnA{
		responder: responder,
		loader:    loader,
		version:   version,
		log:       log.With().Str("node", core.NodeQnA).Logger(),
	}
}

func (q *QnA) Name() string { return core.NodeQnA }

func (q *QnA) Run(ctx context.Context, state *core.State) (core.Delta, core.Directive) {
	prompt := q.buildPrompt(state)
	answer := q.responder.Invoke(ctx, prompt)

	q.log.Info().
		Str("session_id", state.SessionID).
		Int("answer_length", len(answer)).
		Msg("answer generated")
	return core.Delta{
		QnAAnswer:             answer,
		PreComplianceResponse: answer,
	}, core.DirectiveNone
}

func (q *QnA) buildPrompt(state *core.State) string {
	tmpl := q.loader.LoadOrDefault("qna", q.version, "followup", defaultQnAPrompt)

	prompt := strings.ReplaceAll(tmpl.Template, "{{summary}}", q.summary(state))
	prompt = strings.ReplaceAll(prompt, "{{history}}", q.history(state))
	prompt = strings.ReplaceAll(prompt, "{{question}}", state.InputText)
	return prompt
}

// summary prefers the analysis produced in this request, then the snapshot
// carried over from the session.
func (q *QnA) summary(state *core.State) string {
	if state.InsightSummary != "" {
		return state.InsightSummary
	}
	if state.PriorAnalysis != nil {
		return state.PriorAnalysis.InsightSummary
	}
	return "No document analysis available."
}

func (q *QnA) history(state *core.State) string {
	entries := state.History
	if len(entries) > maxHistoryTurns {
		entries = entries[len(entries)-maxHistoryTurns:]
	}
	if len(entries) == 0 {
		return "(none)"
	}

	var b strings.Builder
	for _, entry := range entries {
		fmt.Fprintf(&b, "user: %s\nassistant: %s\n", entry.InputSnippet, entry.ResponseSnippet)
	}
	return b.String()
}

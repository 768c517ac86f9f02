package llm

import (
	"context"
	"errors"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog"

	"github.com/BennyGoh252/Health-Insights-AI-Assistance/internal/metrics"
)

// Outcome classifies what happened on a primary backend call.
type Outcome string

const (
	OutcomeSuccess      Outcome = "success"
	OutcomeTimeout      Outcome = "timeout"
	OutcomeBackendError Outcome = "backend_error"
)

// ChatModel is the narrow generative interface the gateway needs. Both
// eino-ext chat model components satisfy it.
type ChatModel interface {
	Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error)
}

// Gateway mediates every call to a generative backend. It prepends the
// safety preamble, bounds latency, falls back to the deterministic local
// responder on any failure, and post-validates output against disallowed
// phrases. Invoke never returns an error to its caller.
type Gateway struct {
	primary ChatModel // nil forces the local responder
	timeout time.Duration
	local   *LocalResponder
	log     zerolog.Logger
}

// NewGateway wraps a backend with the safety layer. Pass a nil primary to
// run fully offline on the local responder.
func NewGateway(primary ChatModel, timeout time.Duration, log zerolog.Logger) *Gateway {
	return &Gateway{
		primary: primary,
		timeout: timeout,
		local:   NewLocalResponder(),
		log:     log.With().Str("component", "safety_gateway").Logger(),
	}
}

// Invoke sends the prompt through the safety layer and always returns text,
// sourced from either the primary backend or the deterministic fallback.
func (g *Gateway) Invoke(ctx context.Context, prompt string) string {
	text, outcome := g.invokePrimary(ctx, prompt)
	if outcome != OutcomeSuccess {
		if g.primary != nil {
			g.log.Warn().Str("outcome", string(outcome)).Msg("primary backend unavailable, using local responder")
		}
		metrics.FallbackResponses.Inc()
		text = g.local.Respond(prompt)
	}
	return g.enforce(text)
}

func (g *Gateway) invokePrimary(ctx context.Context, prompt string) (string, Outcome) {
	if g.primary == nil {
		return "", OutcomeBackendError
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	messages := []*schema.Message{
		schema.SystemMessage(SafetyPreamble),
		schema.UserMessage(prompt),
	}

	out, err := g.primary.Generate(ctx, messages)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
			return "", OutcomeTimeout
		}
		g.log.Warn().Err(err).Msg("backend call failed")
		return "", OutcomeBackendError
	}
	if out == nil || out.Content == "" {
		return "", OutcomeBackendError
	}
	return out.Content, OutcomeSuccess
}

// enforce runs the post-hoc phrase validation. A violating response is not
// discarded: the disclaimer is appended and the violation recorded.
func (g *Gateway) enforce(text string) string {
	violations := ValidateResponse(text)
	if len(violations) == 0 {
		return text
	}

	for _, v := range violations {
		g.log.Warn().
			Str("category", v.Category).
			Str("phrase", v.Phrase).
			Msg("safety validation flagged response")
		metrics.SafetyViolations.WithLabelValues(v.Category).Inc()
	}
	return text + Disclaimer
}

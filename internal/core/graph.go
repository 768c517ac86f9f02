package core

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// transition maps a node's emitted directive to the next node. Unrecognized
// directives fall through to compliance so the walk always terminates with a
// final response.
type transition func(d Directive) string

// Graph sequences pipeline steps as a directed acyclic routing state
// machine. It holds no cross-request state: Run may be called concurrently
// for independent requests.
type Graph struct {
	steps       map[string]Step
	transitions map[string]transition
	log         zerolog.Logger
}

// NewGraph builds the routing graph over the given steps. Every step named
// in the transition table must be registered.
func NewGraph(log zerolog.Logger, steps ...Step) (*Graph, error) {
	g := &Graph{
		steps: make(map[string]Step, len(steps)),
		log:   log.With().Str("component", "graph").Logger(),
	}
	for _, s := range steps {
		if s.Name() == "" {
			return nil, fmt.Errorf("step with empty name")
		}
		g.steps[s.Name()] = s
	}

	g.transitions = map[string]transition{
		NodeOrchestrator: func(d Directive) string {
			switch d {
			case DirectiveDocPipeline, DirectiveDocThenQnA:
				return NodeDocumentParser
			case DirectiveQnA:
				return NodeQnA
			default:
				return NodeCompliance
			}
		},
		NodeDocumentParser: func(Directive) string { return NodeClinicalAnalysis },
		NodeClinicalAnalysis: func(d Directive) string {
			if d == DirectiveMedicalRelated {
				return NodeRiskAssessment
			}
			return NodeCompliance
		},
		NodeRiskAssessment: func(Directive) string { return NodeInsightsSummary },
		NodeInsightsSummary: func(d Directive) string {
			if d == DirectiveDocThenQnA {
				return NodeQnA
			}
			return NodeCompliance
		},
		NodeQnA:        func(Directive) string { return NodeCompliance },
		NodeCompliance: func(Directive) string { return NodeEnd },
	}

	for name := range g.transitions {
		if _, ok := g.steps[name]; !ok {
			return nil, fmt.Errorf("missing step for node %q", name)
		}
	}
	return g, nil
}

// Run walks the graph from the orchestrator until the terminal node,
// merging each step's delta into the state. It returns the visited node
// sequence alongside the final state. The walk is strictly sequential and
// revisiting a node aborts the request rather than looping.
func (g *Graph) Run(ctx context.Context, state *State) ([]string, error) {
	start := time.Now()
	visited := make(map[string]bool, len(g.steps))
	var path []string

	current := NodeOrchestrator
	for current != NodeEnd {
		if visited[current] {
			return path, fmt.Errorf("routing cycle at node %q", current)
		}
		visited[current] = true
		path = append(path, current)

		step := g.steps[current]
		delta, directive := step.Run(ctx, state)
		state.apply(delta)

		next := g.transitions[current](directive)
		g.log.Debug().
			Str("node", current).
			Str("directive", string(directive)).
			Str("next", next).
			Msg("node executed")
		current = next
	}

	g.log.Info().
		Str("session_id", state.SessionID).
		Strs("path", path).
		Dur("elapsed", time.Since(start)).
		Msg("pipeline completed")
	return path, nil
}

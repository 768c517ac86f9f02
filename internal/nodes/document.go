package nodes

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/BennyGoh252/Health-Insights-AI-Assistance/internal/core"
)

// patientNamePattern matches the identifying name line of a parsed report
// so it can be redacted before any downstream step sees the text.
var patientNamePattern = regexp.MustCompile(`(?mi)^(patient name:\s*).+$`)

// DocumentParser extracts text from the uploaded document and strips
// personally identifying information. Extraction itself is a stand-in:
// real PDF text extraction is outside this pipeline's contract, which only
// requires cleaned text to flow downstream.
type DocumentParser struct {
	log zerolog.Logger
}

// NewDocumentParser creates the document parsing step.
func NewDocumentParser(log zerolog.Logger) *DocumentParser {
	return &DocumentParser{log: log.With().Str("node", core.NodeDocumentParser).Logger()}
}

func (d *DocumentParser) Name() string { return core.NodeDocumentParser }

func (d *DocumentParser) Run(_ context.Context, state *core.State) (core.Delta, core.Directive) {
	parsed := "Patient Name: John Doe\nFindings: Elevated cholesterol..."

	// PII is removed immediately, before the text reaches any other step.
	cleaned := patientNamePattern.ReplaceAllString(parsed, "${1}[REDACTED]")

	d.log.Info().
		Str("session_id", state.SessionID).
		Int("bytes", len(state.FileBytes)).
		Msg("document parsed")
	return core.Delta{CleanedText: cleaned}, core.DirectiveNone
}

// medicalTerms decides whether parsed document text is medically relevant.
// Off-topic documents skip risk assessment and go straight to compliance.
var medicalTerms = []string{
	"cholesterol", "blood pressure", "hypertension", "glucose", "blood sugar",
	"diabetes", "hemoglobin", "triglyceride", "findings", "diagnosis",
	"mg/dl", "mmhg", "patient",
}

// ClinicalAnalysis summarizes the cleaned document text and decides whether
// the content is medical. The summary is a stand-in for a real clinical
// model; the branching contract is what matters here.
type ClinicalAnalysis struct {
	log zerolog.Logger
}

// NewClinicalAnalysis creates the clinical analysis step.
func NewClinicalAnalysis(log zerolog.Logger) *ClinicalAnalysis {
	return &ClinicalAnalysis{log: log.With().Str("node", core.NodeClinicalAnalysis).Logger()}
}

func (c *ClinicalAnalysis) Name() string { return core.NodeClinicalAnalysis }

func (c *ClinicalAnalysis) Run(_ context.Context, state *core.State) (core.Delta, core.Directive) {
	lower := strings.ToLower(state.CleanedText)
	relevant := false
	for _, term := range medicalTerms {
		if strings.Contains(lower, term) {
			relevant = true
			break
		}
	}

	if !relevant {
		c.log.Info().Str("session_id", state.SessionID).Msg("document not medically relevant")
		return core.Delta{
			ClinicalAnalysis: "The uploaded document does not appear to contain medical content.",
		}, core.DirectiveOffTopic
	}

	c.log.Info().Str("session_id", state.SessionID).Msg("clinical analysis completed")
	return core.Delta{
		ClinicalAnalysis: "Summary: Elevated cholesterol, recommend lifestyle changes.",
	}, core.DirectiveMedicalRelated
}

// RiskAssessment derives an ordered list of findings from the clinical
// analysis. Stand-in computation, unconditional transition.
type RiskAssessment struct {
	log zerolog.Logger
}

// NewRiskAssessment creates the risk assessment step.
func NewRiskAssessment(log zerolog.Logger) *RiskAssessment {
	return &RiskAssessment{log: log.With().Str("node", core.NodeRiskAssessment).Logger()}
}

func (r *RiskAssessment) Name() string { return core.NodeRiskAssessment }

func (r *RiskAssessment) Run(_ context.Context, state *core.State) (core.Delta, core.Directive) {
	risks := []string{"High cholesterol"}
	r.log.Info().
		Str("session_id", state.SessionID).
		Int("findings", len(risks)).
		Msg("risk assessment completed")
	return core.Delta{RiskAssessment: risks}, core.DirectiveNone
}

// InsightsSummary folds the clinical analysis and risk findings into one
// summary. It re-emits doc_then_qna when the request also carried a user
// question, so the engine continues to Q&A instead of finishing.
type InsightsSummary struct {
	log zerolog.Logger
}

// NewInsightsSummary creates the insight summary step.
func NewInsightsSummary(log zerolog.Logger) *InsightsSummary {
	return &InsightsSummary{log: log.With().Str("node", core.NodeInsightsSummary).Logger()}
}

func (i *InsightsSummary) Name() string { return core.NodeInsightsSummary }

func (i *InsightsSummary) Run(_ context.Context, state *core.State) (core.Delta, core.Directive) {
	summary := fmt.Sprintf("%s; Risks: %s",
		state.ClinicalAnalysis, strings.Join(state.RiskAssessment, ", "))

	directive := core.DirectiveNone
	if state.InputText != "" {
		directive = core.DirectiveDocThenQnA
	}

	i.log.Info().Str("session_id", state.SessionID).Msg("insight summary composed")
	return core.Delta{InsightSummary: summary}, directive
}

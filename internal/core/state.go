package core

import (
	"context"

	"github.com/BennyGoh252/Health-Insights-AI-Assistance/internal/session"
)

// Directive is the closed set of routing tokens a step may emit to tell the
// graph engine which state to enter next. Anything outside this set resolves
// to the compliance terminal.
type Directive string

const (
	DirectiveNone           Directive = ""
	DirectiveDocPipeline    Directive = "doc_pipeline"
	DirectiveDocThenQnA     Directive = "doc_then_qna"
	DirectiveQnA            Directive = "qna"
	DirectiveMedicalRelated Directive = "medical_related"
	DirectiveOffTopic       Directive = "off_topic"
)

// Node names used by the graph engine.
const (
	NodeOrchestrator     = "orchestrator"
	NodeDocumentParser   = "document_parser"
	NodeClinicalAnalysis = "clinical_analysis"
	NodeRiskAssessment   = "risk_assessment"
	NodeInsightsSummary  = "insights_summary"
	NodeQnA              = "qna"
	NodeCompliance       = "compliance"
	NodeEnd              = "end"
)

// FileMeta describes an uploaded document.
type FileMeta struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Size        int    `json:"size"`
}

// State is the request-scoped record walked through the pipeline. It is
// created per request, owned by the graph engine, and discarded once the
// response is produced. Steps never mutate it directly; they return a Delta
// the engine merges.
type State struct {
	SessionID string
	InputText string
	FileMeta  *FileMeta
	FileBytes []byte

	// Context seeded from the session record before the walk starts.
	PriorAnalysis *session.AnalysisSnapshot
	History       []session.ConversationEntry

	// Accumulated step outputs. Each field is written by exactly one step.
	CleanedText           string
	ClinicalAnalysis      string
	RiskAssessment        []string
	InsightSummary        string
	QnAAnswer             string
	PreComplianceResponse string
	FinalResponse         string
}

// Delta is the immutable-per-step result a node hands back to the engine.
// Zero fields are left untouched on merge; RiskAssessment replaces rather
// than appends since only one step owns it.
type Delta struct {
	CleanedText           string
	ClinicalAnalysis      string
	RiskAssessment        []string
	InsightSummary        string
	QnAAnswer             string
	PreComplianceResponse string
	FinalResponse         string
}

// Step is a single processing unit in the pipeline. A step reads the current
// state and returns the delta to merge plus the directive for the next hop.
// Steps report failures through the directive/delta contract, not errors:
// the engine treats every step as total.
type Step interface {
	Run(ctx context.Context, state *State) (Delta, Directive)
	Name() string
}

func (s *State) apply(d Delta) {
	if d.CleanedText != "" {
		s.CleanedText = d.CleanedText
	}
	if d.ClinicalAnalysis != "" {
		s.ClinicalAnalysis = d.ClinicalAnalysis
	}
	if len(d.RiskAssessment) > 0 {
		s.RiskAssessment = d.RiskAssessment
	}
	if d.InsightSummary != "" {
		s.InsightSummary = d.InsightSummary
	}
	if d.QnAAnswer != "" {
		s.QnAAnswer = d.QnAAnswer
	}
	if d.PreComplianceResponse != "" {
		s.PreComplianceResponse = d.PreComplianceResponse
	}
	if d.FinalResponse != "" {
		s.FinalResponse = d.FinalResponse
	}
}

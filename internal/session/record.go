package session

import "time"

// UploadEntry records one document upload within a session.
type UploadEntry struct {
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	Size        int       `json:"size"`
	CreatedAt   time.Time `json:"created_at"`
}

// ConversationEntry records one request/response exchange, truncated to
// snippets for storage.
type ConversationEntry struct {
	Timestamp       time.Time `json:"timestamp"`
	InputSnippet    string    `json:"input_text_snippet"`
	ResponseSnippet string    `json:"response_snippet"`
}

// AnalysisSnapshot is the latest document-analysis result for a session.
// A new analysis fully replaces the previous snapshot.
type AnalysisSnapshot struct {
	ClinicalAnalysis string    `json:"clinical_analysis"`
	RiskAssessment   []string  `json:"risk_assessment"`
	InsightSummary   string    `json:"insight_summary"`
	LastAnalyzedAt   time.Time `json:"last_analyzed_at"`
}

// Record is the persisted per-conversation state, keyed by session id and
// bounded by the store TTL.
type Record struct {
	SessionID           string              `json:"session_id"`
	CreatedAt           time.Time           `json:"created_at"`
	LastActive          time.Time           `json:"last_active"`
	MessageCount        int                 `json:"message_count"`
	UploadCount         int                 `json:"upload_count"`
	UploadHistory       []UploadEntry       `json:"upload_history"`
	ConversationHistory []ConversationEntry `json:"conversation_history"`
	Analysis            *AnalysisSnapshot   `json:"analysis,omitempty"`
	HasActiveAnalysis   bool                `json:"has_active_analysis"`
}

// NewRecord returns an empty record for a freshly allocated session id.
func NewRecord(id string) *Record {
	now := time.Now().UTC()
	return &Record{
		SessionID:           id,
		CreatedAt:           now,
		LastActive:          now,
		UploadHistory:       []UploadEntry{},
		ConversationHistory: []ConversationEntry{},
	}
}

const (
	inputSnippetLimit    = 200
	responseSnippetLimit = 400
)

// AppendExchange records one completed request/response pair.
func (r *Record) AppendExchange(at time.Time, input, response string) {
	r.ConversationHistory = append(r.ConversationHistory, ConversationEntry{
		Timestamp:       at,
		InputSnippet:    truncate(input, inputSnippetLimit),
		ResponseSnippet: truncate(response, responseSnippetLimit),
	})
}

// SetAnalysis overwrites the analysis snapshot and marks the session as
// having an active analysis.
func (r *Record) SetAnalysis(at time.Time, clinical string, risks []string, summary string) {
	r.Analysis = &AnalysisSnapshot{
		ClinicalAnalysis: clinical,
		RiskAssessment:   risks,
		InsightSummary:   summary,
		LastAnalyzedAt:   at,
	}
	r.HasActiveAnalysis = true
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

package server

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BennyGoh252/Health-Insights-AI-Assistance/internal/core"
	"github.com/BennyGoh252/Health-Insights-AI-Assistance/internal/metrics"
	"github.com/BennyGoh252/Health-Insights-AI-Assistance/internal/session"
)

const sessionHeader = "X-Session-ID"

// ChatResponse is the chat endpoint's reply payload.
type ChatResponse struct {
	Message           string `json:"message"`
	HasActiveAnalysis bool   `json:"has_active_analysis"`
}

func handleChat(deps Deps) gin.HandlerFunc {
	log := deps.Log.With().Str("handler", "chat").Logger()

	return func(c *gin.Context) {
		ctx := c.Request.Context()

		message := c.PostForm("message")
		fileMeta, fileBytes, ok := readUpload(c)
		if !ok {
			metrics.ChatRequests.WithLabelValues("bad_request").Inc()
			return
		}

		if message == "" && fileMeta == nil {
			metrics.ChatRequests.WithLabelValues("bad_request").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": "Must provide either a message or a file"})
			return
		}

		record, err := deps.Sessions.GetOrCreate(ctx, c.GetHeader(sessionHeader))
		if err != nil {
			log.Error().Err(err).Msg("session lookup failed")
			metrics.ChatRequests.WithLabelValues("error").Inc()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
			return
		}
		c.Header(sessionHeader, record.SessionID)

		state := &core.State{
			SessionID:     record.SessionID,
			InputText:     message,
			FileMeta:      fileMeta,
			FileBytes:     fileBytes,
			PriorAnalysis: record.Analysis,
			History:       record.ConversationHistory,
		}

		if _, err := deps.Graph.Run(ctx, state); err != nil {
			log.Error().Err(err).Str("session_id", record.SessionID).Msg("pipeline failed")
			metrics.ChatRequests.WithLabelValues("error").Inc()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
			return
		}

		updated, err := deps.Sessions.Update(ctx, record.SessionID, func(r *session.Record) {
			at := now()
			if message != "" {
				r.MessageCount++
			}
			if fileMeta != nil {
				r.UploadCount++
				r.UploadHistory = append(r.UploadHistory, session.UploadEntry{
					Filename:    fileMeta.Filename,
					ContentType: fileMeta.ContentType,
					Size:        fileMeta.Size,
					CreatedAt:   at,
				})
			}
			if state.ClinicalAnalysis != "" {
				r.SetAnalysis(at, state.ClinicalAnalysis, state.RiskAssessment, state.InsightSummary)
			}
			r.AppendExchange(at, message, state.FinalResponse)
		})
		if err != nil {
			log.Error().Err(err).Str("session_id", record.SessionID).Msg("session update failed")
			metrics.ChatRequests.WithLabelValues("error").Inc()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
			return
		}

		metrics.ChatRequests.WithLabelValues("ok").Inc()
		c.JSON(http.StatusOK, ChatResponse{
			Message:           state.FinalResponse,
			HasActiveAnalysis: updated.HasActiveAnalysis,
		})
	}
}

// readUpload extracts and validates the optional file upload. It writes the
// client error response itself and reports ok=false when the request must
// not proceed.
func readUpload(c *gin.Context) (*core.FileMeta, []byte, bool) {
	header, err := c.FormFile("file")
	if err != nil {
		// No file attached.
		return nil, nil, true
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unable to read uploaded file"})
		return nil, nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unable to read uploaded file"})
		return nil, nil, false
	}

	if err := validatePDF(data, header.Filename); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, nil, false
	}

	meta := &core.FileMeta{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        len(data),
	}
	return meta, data, true
}

func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "Health Insights AI"})
}

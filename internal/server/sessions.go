package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// handleListSessions returns the ids of all unexpired sessions.
func handleListSessions(deps Deps) gin.HandlerFunc {
	log := deps.Log.With().Str("handler", "sessions").Logger()

	return func(c *gin.Context) {
		ids, err := deps.Sessions.ActiveSessions(c.Request.Context())
		if err != nil {
			log.Error().Err(err).Msg("session listing failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"sessions": ids, "count": len(ids)})
	}
}

// handleDeleteSession removes one session record and all state under it.
func handleDeleteSession(deps Deps) gin.HandlerFunc {
	log := deps.Log.With().Str("handler", "sessions").Logger()

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		id := c.Param("id")

		exists, err := deps.Sessions.Exists(ctx, id)
		if err != nil {
			log.Error().Err(err).Str("session_id", id).Msg("session lookup failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
			return
		}
		if !exists {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}

		if err := deps.Sessions.Delete(ctx, id); err != nil {
			log.Error().Err(err).Str("session_id", id).Msg("session delete failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
			return
		}

		log.Info().Str("session_id", id).Msg("session deleted")
		c.JSON(http.StatusOK, gin.H{"status": "success", "deleted_session_id": id})
	}
}

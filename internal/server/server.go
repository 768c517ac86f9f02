package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/BennyGoh252/Health-Insights-AI-Assistance/internal/config"
	"github.com/BennyGoh252/Health-Insights-AI-Assistance/internal/core"
	"github.com/BennyGoh252/Health-Insights-AI-Assistance/internal/session"
)

// Deps is the explicit dependency object constructed once at startup and
// handed to the request handlers. No process-wide singletons.
type Deps struct {
	Graph    *core.Graph
	Sessions *session.Manager
	Log      zerolog.Logger
}

// Server wraps the HTTP transport around the pipeline.
type Server struct {
	http *http.Server
	log  zerolog.Logger
}

// New builds the gin engine, middleware, and routes.
func New(cfg config.ServerConfig, deps Deps) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(recovery(deps.Log))
	engine.Use(cors(cfg.CORSOrigins))

	api := engine.Group("/api")
	api.POST("/chat", handleChat(deps))
	api.GET("/health", handleHealth)
	api.GET("/sessions", handleListSessions(deps))
	api.DELETE("/sessions/:id", handleDeleteSession(deps))
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return &Server{
		http: &http.Server{
			Addr:    cfg.Addr,
			Handler: engine,
		},
		log: deps.Log.With().Str("component", "server").Logger(),
	}
}

// Run serves until the listener fails or Shutdown is called.
func (s *Server) Run() error {
	s.log.Info().Str("addr", s.http.Addr).Msg("http server listening")
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// Handler exposes the underlying handler for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// recovery is the outermost fault boundary. Internal detail is logged but
// never echoed to the caller.
func recovery(log zerolog.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, err any) {
		log.Error().Interface("panic", err).Str("path", c.Request.URL.Path).Msg("unhandled fault")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
	})
}

func cors(origins []string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(origins))
	for _, origin := range origins {
		allowed[origin] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if allowed[origin] {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Content-Type, X-Session-ID")
			c.Header("Access-Control-Expose-Headers", "X-Session-ID")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// now is stubbed in tests.
var now = func() time.Time { return time.Now().UTC() }

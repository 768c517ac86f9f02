package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/BennyGoh252/Health-Insights-AI-Assistance/internal/config"
	"github.com/BennyGoh252/Health-Insights-AI-Assistance/internal/core"
	"github.com/BennyGoh252/Health-Insights-AI-Assistance/internal/llm"
	"github.com/BennyGoh252/Health-Insights-AI-Assistance/internal/logger"
	"github.com/BennyGoh252/Health-Insights-AI-Assistance/internal/nodes"
	"github.com/BennyGoh252/Health-Insights-AI-Assistance/internal/prompts"
	"github.com/BennyGoh252/Health-Insights-AI-Assistance/internal/server"
	"github.com/BennyGoh252/Health-Insights-AI-Assistance/internal/session"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional; environment variables win either way.
	_ = godotenv.Load()

	cfg, err := config.Load("config.yaml")
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	log, err := logger.Init(cfg.Logging)
	if err != nil {
		return fmt.Errorf("error initializing logger: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := newStore(ctx, cfg.Session, log)
	if err != nil {
		return err
	}
	defer store.Close()

	sessions := session.NewManager(store, cfg.Session.TTL(), log)

	backend, timeout := llm.NewBackend(ctx, cfg.LLM, log)
	gateway := llm.NewGateway(backend, timeout, log)

	loader := prompts.NewLoader(cfg.Prompts.Dir)

	graph, err := core.NewGraph(log,
		nodes.NewOrchestrator(log),
		nodes.NewDocumentParser(log),
		nodes.NewClinicalAnalysis(log),
		nodes.NewRiskAssessment(log),
		nodes.NewInsightsSummary(log),
		nodes.NewQnA(gateway, loader, cfg.Prompts.Version("qna"), log),
		nodes.NewCompliance(log),
	)
	if err != nil {
		return fmt.Errorf("error building graph: %w", err)
	}

	srv := server.New(cfg.Server, server.Deps{
		Graph:    graph,
		Sessions: sessions,
		Log:      log,
	})

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Run() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func newStore(ctx context.Context, cfg config.SessionConfig, log zerolog.Logger) (session.Store, error) {
	if cfg.Backend == "redis" {
		store, err := session.NewRedisStore(ctx, cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("error connecting session store: %w", err)
		}
		log.Info().Msg("using redis session store")
		return store, nil
	}

	log.Info().Msg("using in-memory session store")
	return session.NewMemoryStore(), nil
}

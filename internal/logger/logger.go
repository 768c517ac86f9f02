package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/BennyGoh252/Health-Insights-AI-Assistance/internal/config"
)

// Init configures the global zerolog logger from config and returns it.
func Init(cfg config.LogConfig) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		return zerolog.Logger{}, fmt.Errorf("invalid log level '%s': %w", cfg.Level, err)
	}
	zerolog.SetGlobalLevel(level)

	switch strings.ToLower(cfg.TimeFormat) {
	case "unix":
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	case "iso8601":
		zerolog.TimeFieldFormat = "2006-01-02T15:04:05.000Z07:00"
	default:
		zerolog.TimeFieldFormat = time.RFC3339
	}

	var output io.Writer
	switch strings.ToLower(cfg.Output) {
	case "stderr":
		output = os.Stderr
	case "file":
		if err := os.MkdirAll("logs", 0755); err != nil {
			return zerolog.Logger{}, fmt.Errorf("failed to create logs directory: %w", err)
		}
		file, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return zerolog.Logger{}, fmt.Errorf("failed to open log file '%s': %w", cfg.FilePath, err)
		}
		output = file
	default:
		output = os.Stdout
	}

	if strings.ToLower(cfg.Format) == "console" {
		output = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.RFC3339,
		}
	}

	logger := zerolog.New(output).With().
		Timestamp().
		Logger()
	log.Logger = logger

	logger.Info().
		Str("level", cfg.Level).
		Str("format", cfg.Format).
		Str("output", cfg.Output).
		Msg("logger initialized")

	return logger, nil
}

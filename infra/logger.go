package infra

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"go.opentelemetry.io/contrib/bridges/otelslog"

	"github.com/imgdose/imgdose-api/config"
)

const (
	LogLevelDebug  = "debug"
	LogLevelInfo   = "info"
	LogLevelSilent = "silent"
)

// LoggerClient is the process-wide structured logger. Verbosity comes
// from config (debug/info/silent); records go to stdout, or through the
// otelslog bridge when an OTLP endpoint is configured.
type LoggerClient struct {
	logger *slog.Logger
	level  string
}

func InitLoggerClient(cfg *config.EnvConfig) *LoggerClient {
	level := normalizeLogLevel(cfg.LogLevel)

	if level == LogLevelSilent {
		return &LoggerClient{
			logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
			level:  level,
		}
	}

	var handler slog.Handler
	if cfg.Telemetry.OTLPEndpoint != "" {
		loggerProvider, err := setupTelemetry(cfg)
		if err != nil {
			log.Printf("Warning: failed to set up OTLP telemetry: %v, falling back to stdout", err)
		} else {
			handler = otelslog.NewHandler(
				cfg.Telemetry.ServiceName,
				otelslog.WithLoggerProvider(loggerProvider),
			)
		}
	}
	if handler == nil {
		slogLevel := slog.LevelInfo
		if level == LogLevelDebug {
			slogLevel = slog.LevelDebug
		}
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slogLevel})
	}

	return &LoggerClient{
		logger: slog.New(handler),
		level:  level,
	}
}

func normalizeLogLevel(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case LogLevelDebug:
		return LogLevelDebug
	case LogLevelSilent:
		return LogLevelSilent
	default:
		return LogLevelInfo
	}
}

func (l *LoggerClient) DebugWithContextf(ctx context.Context, format string, args ...interface{}) {
	if l.level != LogLevelDebug {
		return
	}
	l.logger.DebugContext(ctx, fmt.Sprintf(format, args...))
}

func (l *LoggerClient) InfoWithContextf(ctx context.Context, format string, args ...interface{}) {
	if l.level == LogLevelSilent {
		return
	}
	l.logger.InfoContext(ctx, fmt.Sprintf(format, args...))
}

func (l *LoggerClient) WarningWithContextf(ctx context.Context, format string, args ...interface{}) {
	if l.level == LogLevelSilent {
		return
	}
	l.logger.WarnContext(ctx, fmt.Sprintf(format, args...))
}

func (l *LoggerClient) ErrorWithContextf(ctx context.Context, err error, format string, args ...interface{}) {
	if l.level == LogLevelSilent {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if err != nil {
		l.logger.ErrorContext(ctx, msg, slog.Any("error", err))
		return
	}
	l.logger.ErrorContext(ctx, msg)
}

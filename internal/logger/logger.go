// Package logger wires the stdlib slog front-end to a zap backend so the
// rest of the codebase only ever touches slog.
package logger

import (
	"log/slog"
	"os"

	slogzap "github.com/samber/slog-zap/v2"
	"go.uber.org/zap"
)

type Env string

const (
	EnvDev  Env = "dev"
	EnvProd Env = "prod"
)

type Backend string

const (
	BackendStd Backend = "std"
	BackendZap Backend = "zap"
)

type Config struct {
	Env       Env
	Service   string
	Version   string
	Backend   Backend
	AddSource bool
	Debug     bool
}

// Init installs the process-wide slog default. Safe to call once at startup.
func Init(cfg Config) {
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}

	var handler slog.Handler
	switch cfg.Backend {
	case BackendZap:
		var zl *zap.Logger
		var err error
		if cfg.Env == EnvProd {
			zl, err = zap.NewProduction()
		} else {
			zl, err = zap.NewDevelopment()
		}
		if err != nil {
			// fall back to text on stderr rather than dying
			handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
			break
		}
		handler = slogzap.Option{
			Level:     level,
			Logger:    zl,
			AddSource: cfg.AddSource,
		}.NewZapHandler()
	default:
		opts := &slog.HandlerOptions{Level: level, AddSource: cfg.AddSource}
		if cfg.Env == EnvProd {
			handler = slog.NewJSONHandler(os.Stdout, opts)
		} else {
			handler = slog.NewTextHandler(os.Stdout, opts)
		}
	}

	log := slog.New(handler).With(
		"service", cfg.Service,
		"version", cfg.Version,
		"env", string(cfg.Env),
	)
	slog.SetDefault(log)
}

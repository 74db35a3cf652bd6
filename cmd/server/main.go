package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/genetic-risk-server/internal/api"
	"github.com/genetic-risk-server/internal/config"
	"github.com/genetic-risk-server/internal/domain"
	"github.com/genetic-risk-server/internal/questionbank"
	"github.com/genetic-risk-server/internal/risk"
	"github.com/genetic-risk-server/internal/session"
	"github.com/genetic-risk-server/internal/store"
)

func main() {
	configManager, err := config.NewManager()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	if err := configManager.Validate(); err != nil {
		logrus.WithError(err).Fatal("Invalid configuration")
	}
	cfg := configManager.GetConfig()

	logger := newLogger(cfg.Logging)

	sessionStore, closeStore, err := newSessionStore(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize session store")
	}
	defer closeStore()

	bank := questionbank.NewBank(logger)
	if report := bank.Validate(); !report.Valid {
		logger.WithField("issues", report.Issues).Fatal("Question bank failed validation")
	}

	engine := risk.NewEngine(logger, bank)
	manager, err := session.NewManager(logger, sessionStore, bank, questionbank.NewSelector(bank), engine, cfg.Store)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize session manager")
	}

	server := api.NewServer(cfg, logger, manager, bank)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx); err != nil {
		logger.WithError(err).Fatal("Server error")
	}
	logger.Info("Server stopped")
}

func newLogger(cfg domain.LoggingConfig) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger
}

// newSessionStore builds the configured backend, wrapped in a circuit breaker
// when enabled.
func newSessionStore(cfg *domain.Config, logger *logrus.Logger) (domain.SessionStore, func(), error) {
	var (
		backend domain.SessionStore
		closer  = func() {}
	)

	switch cfg.Store.Backend {
	case "memory":
		logger.Warn("Using in-memory session store; sessions will not survive restarts")
		backend = store.NewMemoryStore()
	default:
		redisStore, err := store.NewRedisStore(&cfg.Store, logger)
		if err != nil {
			return nil, nil, err
		}
		backend = redisStore
		closer = func() {
			if err := redisStore.Close(); err != nil {
				logger.WithError(err).Warn("Error closing Redis connection")
			}
		}
	}

	if cfg.Store.BreakerEnabled {
		backend = store.NewBreakerStore(backend, logger)
	}
	return backend, closer, nil
}

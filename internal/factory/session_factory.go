package factory

import (
	"github.com/mikey/spamcheck/internal/adapters/session"
	"github.com/mikey/spamcheck/internal/config"
	"github.com/mikey/spamcheck/internal/core"
	"go.uber.org/zap"
)

// SessionFactory creates session stores based on configuration
type SessionFactory struct {
	cfg        *config.Config
	logger     *zap.Logger
	classifier core.Classifier
}

// NewSessionFactory creates a new session factory
func NewSessionFactory(cfg *config.Config, logger *zap.Logger, classifier core.Classifier) *SessionFactory {
	return &SessionFactory{
		cfg:        cfg,
		logger:     logger,
		classifier: classifier,
	}
}

// CreateSessionStore creates a session store whose sessions share the classifier
func (f *SessionFactory) CreateSessionStore() (*session.MemoryStore, error) {
	sessionCfg, err := f.cfg.GetSession()
	if err != nil {
		return nil, err
	}

	newChecker := func() *core.Checker {
		return core.NewChecker(f.classifier, f.logger)
	}

	return session.NewMemoryStore(newChecker, sessionCfg.TTL, f.logger, sessionCfg.CleanupFrequency), nil
}

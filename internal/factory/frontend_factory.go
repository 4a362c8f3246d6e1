package factory

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/mikey/spamcheck/internal/adapters/frontend"
	"github.com/mikey/spamcheck/internal/config"
	"github.com/mikey/spamcheck/internal/core"
	"github.com/mikey/spamcheck/internal/ports"
	"github.com/mikey/spamcheck/internal/utils"
	"go.uber.org/zap"
)

// FrontendFactory creates front-ends based on configuration
type FrontendFactory struct {
	cfg           *config.Config
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
	classifier    core.Classifier
}

// NewFrontendFactory creates a new front-end factory
func NewFrontendFactory(cfg *config.Config, logger *zap.Logger, textProcessor *utils.TextProcessor, classifier core.Classifier) *FrontendFactory {
	return &FrontendFactory{
		cfg:           cfg,
		logger:        logger,
		textProcessor: textProcessor,
		classifier:    classifier,
	}
}

// CreateFrontend creates the front-end selected by frontend.type. Only the
// web front-end uses the session store.
func (f *FrontendFactory) CreateFrontend(sessions ports.SessionStore) (ports.Frontend, error) {
	frontendType := f.cfg.GetString("frontend.type")

	switch frontendType {
	case "web":
		if sessions == nil {
			return nil, errors.New("web front-end needs a session store")
		}
		return f.createWebFrontend(sessions)
	case "cli":
		return frontend.NewCliFrontend(
			core.NewChecker(f.classifier, f.logger),
			f.textProcessor,
			f.logger,
			f.cfg.GetBool("cli.verbose"),
		)
	default:
		return nil, fmt.Errorf("unsupported front-end type: %s", frontendType)
	}
}

func (f *FrontendFactory) createWebFrontend(sessions ports.SessionStore) (*frontend.WebFrontend, error) {
	serverCfg, err := f.cfg.GetServer()
	if err != nil {
		return nil, err
	}
	sessionCfg, err := f.cfg.GetSession()
	if err != nil {
		return nil, err
	}

	switch serverCfg.Mode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
		gin.SetMode(serverCfg.Mode)
	default:
		return nil, fmt.Errorf("unsupported server mode: %s", serverCfg.Mode)
	}

	return frontend.NewWebFrontend(sessions, f.textProcessor, f.logger, frontend.WebOptions{
		ListenAddress:   serverCfg.ListenAddress,
		CookieName:      sessionCfg.CookieName,
		SessionTTL:      sessionCfg.TTL,
		RefreshInterval: serverCfg.RefreshInterval,
		ShutdownTimeout: serverCfg.ShutdownTimeout,
	})
}

package factory

import (
	"fmt"

	"github.com/mikey/spamcheck/internal/adapters/heuristic"
	"github.com/mikey/spamcheck/internal/adapters/predict"
	"github.com/mikey/spamcheck/internal/config"
	"github.com/mikey/spamcheck/internal/core"
	"github.com/mikey/spamcheck/internal/utils"
	"go.uber.org/zap"
)

// ClassifierFactory creates classifiers
type ClassifierFactory struct {
	cfg           *config.Config
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewClassifierFactory creates a new classifier factory
func NewClassifierFactory(cfg *config.Config, logger *zap.Logger, textProcessor *utils.TextProcessor) *ClassifierFactory {
	return &ClassifierFactory{
		cfg:           cfg,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// CreateClassifier creates a new classifier based on the configuration
func (f *ClassifierFactory) CreateClassifier() (core.Classifier, error) {
	classifierCfg, err := f.cfg.GetClassifier()
	if err != nil {
		return nil, err
	}

	switch classifierCfg.Provider {
	case "predict":
		factory := predict.NewFactory(f.cfg, f.logger, f.textProcessor)
		return factory.CreateClient()
	case "heuristic":
		f.logger.Warn("Using the offline keyword classifier, verdicts are not model predictions")
		return heuristic.NewClassifier(classifierCfg.HeuristicKeywords, classifierCfg.HeuristicDelay, f.logger), nil
	default:
		return nil, fmt.Errorf("unsupported classifier provider: %s", classifierCfg.Provider)
	}
}

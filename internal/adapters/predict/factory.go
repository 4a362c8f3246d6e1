package predict

import (
	"github.com/mikey/spamcheck/internal/config"
	"github.com/mikey/spamcheck/internal/utils"
	"go.uber.org/zap"
)

// Factory creates new instances of Client
type Factory struct {
	cfg           *config.Config
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewFactory creates a new factory for Client instances
func NewFactory(cfg *config.Config, logger *zap.Logger, textProcessor *utils.TextProcessor) *Factory {
	return &Factory{
		cfg:           cfg,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// CreateClient creates a new Client from the api settings
func (f *Factory) CreateClient() (*Client, error) {
	apiCfg, err := f.cfg.GetAPI()
	if err != nil {
		return nil, err
	}

	client := NewClient(
		apiCfg.URL,
		apiCfg.Timeout,
		apiCfg.RateLimit,
		f.cfg.GetText().MaxSize,
		f.logger,
		f.textProcessor,
	)

	f.logger.Info("Using classification API", zap.String("endpoint", client.Endpoint()))
	return client, nil
}

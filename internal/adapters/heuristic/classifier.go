package heuristic

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/mikey/spamcheck/internal/core"
	"go.uber.org/zap"
)

// DefaultKeywords mark text as spam when any of them appears
var DefaultKeywords = []string{"free", "winner", "click here"}

// Classifier is an offline core.Classifier that flags spam by keyword.
// It exists for demos and for running the front-end without the API.
type Classifier struct {
	keywords []string
	delay    time.Duration
	logger   *zap.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewClassifier creates a keyword classifier. The delay simulates the latency
// of a remote call so that the pending state is visible.
func NewClassifier(keywords []string, delay time.Duration, logger *zap.Logger) *Classifier {
	normalized := make([]string, 0, len(keywords))
	for _, keyword := range keywords {
		if k := strings.ToLower(strings.TrimSpace(keyword)); k != "" {
			normalized = append(normalized, k)
		}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Classifier{
		keywords: normalized,
		delay:    delay,
		logger:   logger,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Classify labels the text spam when it contains a keyword, ham otherwise.
// Confidence is drawn from [80, 100).
func (c *Classifier) Classify(ctx context.Context, req *core.CheckRequest) (*core.CheckResult, error) {
	if c.delay > 0 {
		select {
		case <-time.After(c.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	verdict := core.VerdictHam
	lower := strings.ToLower(req.Text)
	for _, keyword := range c.keywords {
		if strings.Contains(lower, keyword) {
			c.logger.Debug("Keyword matched", zap.String("keyword", keyword))
			verdict = core.VerdictSpam
			break
		}
	}

	c.mu.Lock()
	confidence := c.rng.Float64()*20 + 80
	c.mu.Unlock()

	return &core.CheckResult{
		Verdict:    verdict,
		Confidence: &confidence,
		CheckedAt:  time.Now(),
	}, nil
}

package core

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Checker is the form controller behind every front-end. It holds the input
// text and the last result, and allows at most one classification in flight.
type Checker struct {
	classifier Classifier
	logger     *zap.Logger

	mu      sync.Mutex
	text    string
	result  *CheckResult
	pending bool
}

// NewChecker creates a new idle checker
func NewChecker(classifier Classifier, logger *zap.Logger) *Checker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Checker{
		classifier: classifier,
		logger:     logger,
	}
}

// SetText replaces the input text. Changing the text discards the current result.
func (c *Checker) SetText(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.setTextLocked(text)
}

// SetTextIfIdle replaces the input text unless a submission is in flight.
// It reports whether the text was accepted.
func (c *Checker) SetTextIfIdle(text string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending {
		return false
	}
	c.setTextLocked(text)
	return true
}

func (c *Checker) setTextLocked(text string) {
	if text == c.text {
		return
	}
	c.text = text
	c.result = nil
}

// Start submits the current text in the background. It returns false without
// issuing a request when the text is blank or a submission is already in
// flight. The returned channel is closed once the result has been applied.
func (c *Checker) Start(ctx context.Context) (<-chan struct{}, bool) {
	c.mu.Lock()
	req, ok := c.beginLocked()
	c.mu.Unlock()
	if !ok {
		return nil, false
	}

	return c.launch(ctx, req), true
}

// SubmitText replaces the text and starts a submission as one step. Neither
// happens while a submission is already in flight, so a result always
// belongs to the text shown next to it.
func (c *Checker) SubmitText(ctx context.Context, text string) (<-chan struct{}, bool) {
	c.mu.Lock()
	if c.pending {
		c.mu.Unlock()
		return nil, false
	}
	c.setTextLocked(text)
	req, ok := c.beginLocked()
	c.mu.Unlock()
	if !ok {
		return nil, false
	}

	return c.launch(ctx, req), true
}

func (c *Checker) beginLocked() (*CheckRequest, bool) {
	if c.pending || strings.TrimSpace(c.text) == "" {
		return nil, false
	}
	c.pending = true
	c.result = nil
	return &CheckRequest{Text: c.text}, true
}

func (c *Checker) launch(ctx context.Context, req *CheckRequest) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		c.classify(ctx, req)
	}()
	return done
}

// Submit submits the current text and waits for the outcome. It reports
// whether a request was issued.
func (c *Checker) Submit(ctx context.Context) bool {
	done, ok := c.Start(ctx)
	if !ok {
		return false
	}
	<-done
	return true
}

func (c *Checker) classify(ctx context.Context, req *CheckRequest) {
	c.logger.Debug("Submitting text for classification", zap.Int("text_length", len(req.Text)))

	result, err := c.classifier.Classify(ctx, req)
	if err != nil {
		// Failures only ever show up as a missing verdict
		c.logger.Warn("Classification failed", zap.Error(err))
		result = nil
	}

	// Reset does not cancel the call, so a late result lands here regardless
	c.mu.Lock()
	c.result = result
	c.pending = false
	c.mu.Unlock()

	if result != nil {
		c.logger.Debug("Classification finished", zap.String("verdict", string(result.Verdict)))
	}
}

// Reset clears the text and the result
func (c *Checker) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.text = ""
	c.result = nil
}

// Snapshot returns a copy of the current state
func (c *Checker) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	state := State{Text: c.text, Phase: PhaseIdle}
	if c.result != nil {
		result := *c.result
		if c.result.Confidence != nil {
			confidence := *c.result.Confidence
			result.Confidence = &confidence
		}
		state.Result = &result
		state.Phase = PhaseResolved
	}
	if c.pending {
		state.Phase = PhasePending
	}

	return state
}

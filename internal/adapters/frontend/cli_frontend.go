package frontend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mikey/spamcheck/internal/core"
	"github.com/mikey/spamcheck/internal/utils"
	"go.uber.org/zap"
)

// ErrBlankText is returned when there is nothing to check
var ErrBlankText = errors.New("no text to check")

const previewLength = 500

// CliFrontend implements a command-line interface for spam checks
type CliFrontend struct {
	checker       *core.Checker
	textProcessor *utils.TextProcessor
	logger        *zap.Logger
	out           io.Writer
	verbose       bool
}

// NewCliFrontend creates a new CLI front-end writing to stdout
func NewCliFrontend(checker *core.Checker, textProcessor *utils.TextProcessor, logger *zap.Logger, verbose bool) (*CliFrontend, error) {
	if checker == nil {
		return nil, errors.New("checker is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if textProcessor == nil {
		textProcessor = utils.NewTextProcessor(logger)
	}

	return &CliFrontend{
		checker:       checker,
		textProcessor: textProcessor,
		logger:        logger,
		out:           os.Stdout,
		verbose:       verbose,
	}, nil
}

// SetOutput redirects the report
func (f *CliFrontend) SetOutput(w io.Writer) {
	f.out = w
}

// CheckText submits the text, waits for the outcome and prints a report
func (f *CliFrontend) CheckText(ctx context.Context, text string) (core.State, error) {
	f.checker.Reset()
	f.checker.SetText(text)
	if f.textProcessor.IsBlank(text) {
		return f.checker.Snapshot(), ErrBlankText
	}

	fmt.Fprintf(f.out, "\n=== Input ===\n")
	fmt.Fprintf(f.out, "Length: %s\n", f.textProcessor.CharacterLabel(text))
	if f.verbose {
		preview := f.textProcessor.TruncateText(text, previewLength)
		fmt.Fprintf(f.out, "\nPreview:\n%s\n", preview)
	}

	fmt.Fprintf(f.out, "\n=== Analysis ===\n")
	fmt.Fprintf(f.out, "Analyzing...\n")
	startTime := time.Now()
	f.checker.Submit(ctx)
	duration := time.Since(startTime)

	state := f.checker.Snapshot()
	f.printResult(state.Result, duration)

	return state, nil
}

func (f *CliFrontend) printResult(result *core.CheckResult, duration time.Duration) {
	fmt.Fprintf(f.out, "\n=== Result ===\n")
	if !result.HasVerdict() {
		fmt.Fprintf(f.out, "No verdict\n")
		fmt.Fprintf(f.out, "Processing time: %v\n", duration.Round(time.Millisecond))
		return
	}

	card := newVerdictCard(result)
	fmt.Fprintf(f.out, "%s\n", card.Title)
	fmt.Fprintf(f.out, "%s\n", card.Description)
	if card.Confidence != "" {
		fmt.Fprintf(f.out, "Confidence: %s\n", card.Confidence)
	}
	fmt.Fprintf(f.out, "Processing time: %v\n", duration.Round(time.Millisecond))
}

// Start is a no-op for the CLI front-end
func (f *CliFrontend) Start() error {
	return nil
}

// Stop is a no-op for the CLI front-end
func (f *CliFrontend) Stop() error {
	return nil
}

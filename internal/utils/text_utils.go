package utils

import (
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// TruncationMarker is appended to text cut down to the configured size
const TruncationMarker = "\n[... Content truncated due to size limits ...]"

// TextProcessor provides utilities for processing submitted text
type TextProcessor struct {
	logger  *zap.Logger
	printer *message.Printer
}

// NewTextProcessor creates a new TextProcessor
func NewTextProcessor(logger *zap.Logger) *TextProcessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TextProcessor{
		logger:  logger,
		printer: message.NewPrinter(language.English),
	}
}

// IsBlank reports whether the text is empty or whitespace only
func (tp *TextProcessor) IsBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}

// CountCharacters returns the number of characters (runes) in the text
func (tp *TextProcessor) CountCharacters(text string) int {
	return utf8.RuneCountInString(text)
}

// CharacterLabel renders the character counter shown under the input
func (tp *TextProcessor) CharacterLabel(text string) string {
	n := tp.CountCharacters(text)
	if n == 1 {
		return "1 character"
	}
	return tp.printer.Sprintf("%d characters", n)
}

// TruncateText safely truncates text to the specified maximum size
// and ensures the result is valid UTF-8
func (tp *TextProcessor) TruncateText(text string, maxSize int) string {
	// If no limit or text is already within limits, return as is
	if maxSize <= 0 || len(text) <= maxSize {
		return text
	}

	truncated := text[:maxSize]

	// Drop a rune cut in half by the byte limit. Only the tail is inspected,
	// invalid bytes further back are left to SanitizeUTF8.
	for i := 0; i < utf8.UTFMax && len(truncated) > 0; i++ {
		r, size := utf8.DecodeLastRuneInString(truncated)
		if r != utf8.RuneError || size != 1 {
			break
		}
		truncated = truncated[:len(truncated)-1]
	}

	tp.logger.Debug("Text truncated",
		zap.Int("original_size", len(text)),
		zap.Int("truncated_size", len(truncated)),
		zap.Int("max_size", maxSize))

	return truncated + TruncationMarker
}

// SanitizeUTF8 drops invalid UTF-8 sequences from the text
func (tp *TextProcessor) SanitizeUTF8(text string) string {
	if utf8.ValidString(text) {
		return text
	}

	sanitized := strings.ToValidUTF8(text, "")

	tp.logger.Debug("Text sanitized",
		zap.Int("original_size", len(text)),
		zap.Int("sanitized_size", len(sanitized)))

	return sanitized
}

// ProcessText sanitizes and then truncates text in one operation
func (tp *TextProcessor) ProcessText(text string, maxSize int) string {
	return tp.TruncateText(tp.SanitizeUTF8(text), maxSize)
}

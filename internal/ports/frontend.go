package ports

import (
	"context"

	"github.com/mikey/spamcheck/internal/core"
)

// Frontend defines the interface for a user-facing front-end over a Checker
type Frontend interface {
	// CheckText runs one submission of the text and returns the resulting state
	CheckText(ctx context.Context, text string) (core.State, error)

	// Start starts the front-end
	Start() error

	// Stop stops the front-end
	Stop() error
}

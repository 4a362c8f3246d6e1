package ports

import (
	"context"

	"github.com/mikey/spamcheck/internal/core"
)

// SessionStore keeps one Checker per browser session
type SessionStore interface {
	// Get retrieves the checker of a session and refreshes its expiry
	Get(ctx context.Context, id string) (*core.Checker, error)

	// Create starts a new session
	Create(ctx context.Context) (string, *core.Checker, error)

	// Delete removes a session
	Delete(ctx context.Context, id string) error

	// Cleanup removes expired sessions
	Cleanup(ctx context.Context) error
}

package core

import (
	"context"
)

// Classifier defines the interface for the remote spam classifier
type Classifier interface {
	// Classify sends the request text for classification
	Classify(ctx context.Context, req *CheckRequest) (*CheckResult, error)
}

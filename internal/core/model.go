package core

import (
	"fmt"
	"time"
)

// Verdict is the classification label of a checked email
type Verdict string

const (
	VerdictSpam    Verdict = "spam"
	VerdictHam     Verdict = "ham"
	VerdictUnknown Verdict = "unknown"
)

// Phase is the position of a Checker in its request lifecycle
type Phase string

const (
	PhaseIdle     Phase = "idle"
	PhasePending  Phase = "pending"
	PhaseResolved Phase = "resolved"
)

// CheckRequest is the text of one submission
type CheckRequest struct {
	Text string
}

// CheckResult represents the interpreted response of the classification API
type CheckResult struct {
	Verdict    Verdict
	Confidence *float64
	CheckedAt  time.Time
}

// HasVerdict reports whether the result carries a spam or ham label
func (r *CheckResult) HasVerdict() bool {
	return r != nil && (r.Verdict == VerdictSpam || r.Verdict == VerdictHam)
}

// State is a point-in-time copy of a Checker
type State struct {
	Text   string
	Phase  Phase
	Result *CheckResult
}

// Pending reports whether a submission is in flight
func (s State) Pending() bool {
	return s.Phase == PhasePending
}

// FormatConfidence renders a confidence percentage with one decimal place
func FormatConfidence(confidence float64) string {
	return fmt.Sprintf("%.1f%%", confidence)
}

package frontend

import (
	"testing"
	"time"

	"github.com/mikey/spamcheck/internal/core"
	"github.com/mikey/spamcheck/internal/utils"
)

func TestNewPageView(t *testing.T) {
	tp := utils.NewTextProcessor(nil)

	tests := []struct {
		name        string
		state       core.State
		wantReset   bool
		wantCard    string
		wantRefresh int
	}{
		{
			name:  "idle and empty",
			state: core.State{Phase: core.PhaseIdle},
		},
		{
			name:      "text without result",
			state:     core.State{Text: "hi", Phase: core.PhaseIdle},
			wantReset: true,
		},
		{
			name:        "pending",
			state:       core.State{Text: "hi", Phase: core.PhasePending},
			wantReset:   true,
			wantRefresh: 2,
		},
		{
			name: "spam",
			state: core.State{Text: "hi", Phase: core.PhaseResolved,
				Result: &core.CheckResult{Verdict: core.VerdictSpam, Confidence: confidence(50)}},
			wantReset: true,
			wantCard:  "Spam Detected",
		},
		{
			name: "unknown",
			state: core.State{Text: "hi", Phase: core.PhaseResolved,
				Result: &core.CheckResult{Verdict: core.VerdictUnknown}},
			wantReset: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := newPageView(tt.state, tp, 1500*time.Millisecond)
			if view.ShowReset != tt.wantReset {
				t.Errorf("ShowReset = %v, want %v", view.ShowReset, tt.wantReset)
			}
			if view.RefreshSeconds != tt.wantRefresh {
				t.Errorf("RefreshSeconds = %d, want %d", view.RefreshSeconds, tt.wantRefresh)
			}
			switch {
			case tt.wantCard == "" && view.Card != nil:
				t.Errorf("unexpected card %+v", view.Card)
			case tt.wantCard != "" && (view.Card == nil || view.Card.Title != tt.wantCard):
				t.Errorf("Card = %+v, want %q", view.Card, tt.wantCard)
			}
		})
	}
}

func TestRefreshHasOneSecondFloor(t *testing.T) {
	view := newPageView(core.State{Text: "x", Phase: core.PhasePending}, utils.NewTextProcessor(nil), 100*time.Millisecond)
	if view.RefreshSeconds != 1 {
		t.Errorf("RefreshSeconds = %d, want 1", view.RefreshSeconds)
	}
}

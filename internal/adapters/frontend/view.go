package frontend

import (
	"math"
	"time"

	"github.com/mikey/spamcheck/internal/core"
	"github.com/mikey/spamcheck/internal/utils"
)

type feature struct {
	Title       string
	Description string
}

var features = []feature{
	{
		Title:       "Real-time Analysis",
		Description: "Every check goes straight to the classification model and comes back in seconds.",
	},
	{
		Title:       "Privacy First",
		Description: "Your email content is never stored. All analysis happens in memory.",
	},
	{
		Title:       "API Ready",
		Description: "The same checks are available as JSON under /api for your own tools.",
	},
	{
		Title:       "Command Line",
		Description: "Pipe a message into the spamcheck CLI to get a verdict without a browser.",
	},
}

type verdictCard struct {
	Spam        bool
	Title       string
	Description string
	Confidence  string
}

type pageView struct {
	Text           string
	CharacterLabel string
	Pending        bool
	ShowReset      bool
	RefreshSeconds int
	Card           *verdictCard
	Features       []feature
}

// newVerdictCard returns nil unless the result is spam or ham
func newVerdictCard(result *core.CheckResult) *verdictCard {
	if !result.HasVerdict() {
		return nil
	}

	card := &verdictCard{Spam: result.Verdict == core.VerdictSpam}
	if card.Spam {
		card.Title = "Spam Detected"
		card.Description = "This email shows characteristics of spam or phishing."
	} else {
		card.Title = "Legitimate Email"
		card.Description = "This email appears to be legitimate and safe."
	}
	if result.Confidence != nil {
		card.Confidence = core.FormatConfidence(*result.Confidence)
	}

	return card
}

func newPageView(state core.State, tp *utils.TextProcessor, refresh time.Duration) pageView {
	view := pageView{
		Text:           state.Text,
		CharacterLabel: tp.CharacterLabel(state.Text),
		Pending:        state.Pending(),
		ShowReset:      state.Text != "" || state.Result != nil,
		Card:           newVerdictCard(state.Result),
		Features:       features,
	}
	if view.Pending {
		view.RefreshSeconds = int(math.Max(1, math.Ceil(refresh.Seconds())))
	}

	return view
}

type stateResponse struct {
	Text              string       `json:"text"`
	Characters        int          `json:"characters"`
	Phase             core.Phase   `json:"phase"`
	Verdict           core.Verdict `json:"verdict,omitempty"`
	Confidence        *float64     `json:"confidence"`
	ConfidenceDisplay string       `json:"confidence_display,omitempty"`
	Started           *bool        `json:"started,omitempty"`
}

func newStateResponse(state core.State, tp *utils.TextProcessor) stateResponse {
	resp := stateResponse{
		Text:       state.Text,
		Characters: tp.CountCharacters(state.Text),
		Phase:      state.Phase,
	}
	if state.Result != nil {
		resp.Verdict = state.Result.Verdict
		resp.Confidence = state.Result.Confidence
		if state.Result.Confidence != nil {
			resp.ConfidenceDisplay = core.FormatConfidence(*state.Result.Confidence)
		}
	}

	return resp
}

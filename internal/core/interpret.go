package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

// InterpretResponse maps a classification API body onto a CheckResult.
// A body that is not JSON is an error; any JSON that does not carry a
// recognisable prediction yields VerdictUnknown.
func InterpretResponse(body []byte) (*CheckResult, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var payload interface{}
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after response body")
	}

	result := &CheckResult{
		Verdict:   VerdictUnknown,
		CheckedAt: time.Now(),
	}

	fields, ok := payload.(map[string]interface{})
	if !ok {
		return result, nil
	}

	result.Verdict = interpretPrediction(fields["prediction"])
	result.Confidence = interpretConfidence(fields["confidence"])

	return result, nil
}

func interpretPrediction(raw interface{}) Verdict {
	switch p := raw.(type) {
	case json.Number:
		// Out of range numbers fail to parse but are still not 1
		if n, err := p.Float64(); err == nil && n == 1 {
			return VerdictSpam
		}
		return VerdictHam
	case string:
		switch strings.ToLower(strings.TrimSpace(p)) {
		case "spam", "1":
			return VerdictSpam
		case "ham", "0":
			return VerdictHam
		}
	}
	return VerdictUnknown
}

func interpretConfidence(raw interface{}) *float64 {
	n, ok := raw.(json.Number)
	if !ok {
		return nil
	}
	f, err := n.Float64()
	if err != nil {
		return nil
	}
	return &f
}

package predict

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"github.com/mikey/spamcheck/internal/core"
	"github.com/mikey/spamcheck/internal/utils"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const predictPath = "/predict"

// maxResponseSize bounds how much of a response body is read
const maxResponseSize = 1 << 20

// ResolveEndpoint turns the configured API address into the predict URL.
// A value already ending in /predict is used verbatim.
func ResolveEndpoint(baseURL string) string {
	if strings.HasSuffix(baseURL, predictPath) {
		return baseURL
	}
	return strings.TrimRight(baseURL, "/") + predictPath
}

// HealthURL returns the health endpoint that sits beside the predict endpoint
func HealthURL(baseURL string) string {
	base := strings.TrimSuffix(ResolveEndpoint(baseURL), predictPath)
	return base + "/health"
}

// Request is the JSON body sent to the predict endpoint
type Request struct {
	Text string `json:"text"`
}

// HealthResponse represents the health endpoint payload
type HealthResponse struct {
	Status string `json:"status"`
}

// Client is an implementation of the core.Classifier interface over HTTP
type Client struct {
	endpoint      string
	healthURL     string
	httpClient    *http.Client
	rateLimiter   *rate.Limiter
	maxTextSize   int
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewClient creates a new predict client. A rateLimit of zero or less
// disables pacing of outbound calls.
func NewClient(
	baseURL string,
	timeout time.Duration,
	rateLimit float64,
	maxTextSize int,
	logger *zap.Logger,
	textProcessor *utils.TextProcessor,
) *Client {
	var limiter *rate.Limiter
	if rateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(rateLimit), 1)
	} else {
		limiter = rate.NewLimiter(rate.Inf, 0) // No rate limit
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if textProcessor == nil {
		textProcessor = utils.NewTextProcessor(logger)
	}

	return &Client{
		endpoint:  ResolveEndpoint(baseURL),
		healthURL: HealthURL(baseURL),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		rateLimiter:   limiter,
		maxTextSize:   maxTextSize,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// Endpoint returns the resolved predict URL
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Classify posts the text to the predict endpoint and interprets the reply.
// The status code is not inspected: whatever JSON comes back is interpreted.
func (c *Client) Classify(ctx context.Context, req *core.CheckRequest) (*core.CheckResult, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit error: %w", err)
	}

	jsonData, err := json.Marshal(Request{
		Text: c.textProcessor.ProcessText(req.Text, c.maxTextSize),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Debug("Predict endpoint returned non-OK status",
			zap.Int("status", resp.StatusCode),
			zap.String("endpoint", c.endpoint))
	}

	result, err := core.InterpretResponse(body)
	if err != nil {
		return nil, fmt.Errorf("predict endpoint returned status %d: %w", resp.StatusCode, err)
	}

	return result, nil
}

// Health checks if the classification API is up
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.healthURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
		return nil, fmt.Errorf("health endpoint returned status %d: %s", resp.StatusCode, string(body))
	}

	var health HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &health, nil
}

// WaitHealthy probes the health endpoint until it answers or the attempts run out.
// It is a start-up diagnostic only; classification never retries.
func (c *Client) WaitHealthy(ctx context.Context, attempts int, delay time.Duration) error {
	if attempts < 1 {
		attempts = 1
	}

	err := retry.Do(
		func() error {
			health, err := c.Health(ctx)
			if err != nil {
				return err
			}
			c.logger.Info("Classification API is reachable",
				zap.String("endpoint", c.endpoint),
				zap.String("status", health.Status))
			return nil
		},
		retry.Attempts(uint(attempts)),
		retry.Delay(delay),
		retry.OnRetry(func(n uint, err error) {
			c.logger.Warn("Classification API not reachable, retrying",
				zap.Uint("attempt", n+1),
				zap.String("url", c.healthURL),
				zap.Error(err))
		}),
	)
	if err != nil {
		return fmt.Errorf("retry.Do: %w", err)
	}

	return nil
}

package config

import (
	"fmt"
	"time"
)

// DefaultAPIURL is the local address of the classification API
const DefaultAPIURL = "http://localhost:8000"

// APIConfig represents the configuration for the classification API
type APIConfig struct {
	URL            string
	Timeout        time.Duration
	RateLimit      float64
	HealthAttempts int
	HealthDelay    time.Duration
}

// ClassifierConfig selects the classifier implementation
type ClassifierConfig struct {
	Provider          string
	HeuristicDelay    time.Duration
	HeuristicKeywords []string
}

// ServerConfig represents the configuration for the web front-end
type ServerConfig struct {
	ListenAddress   string
	Mode            string
	RefreshInterval time.Duration
	ShutdownTimeout time.Duration
}

// SessionConfig represents the configuration for browser sessions
type SessionConfig struct {
	CookieName       string
	TTL              time.Duration
	CleanupFrequency time.Duration
}

// TextConfig limits the text sent for classification
type TextConfig struct {
	MaxSize int
}

// GetAPI returns the classification API configuration
func (c *Config) GetAPI() (APIConfig, error) {
	timeout, err := c.GetDuration("api.timeout")
	if err != nil {
		return APIConfig{}, fmt.Errorf("invalid api timeout: %w", err)
	}
	healthDelay, err := c.GetDuration("api.health_delay")
	if err != nil {
		return APIConfig{}, fmt.Errorf("invalid api health delay: %w", err)
	}

	return APIConfig{
		URL:            c.GetString("api.url"),
		Timeout:        timeout,
		RateLimit:      c.GetFloat64("api.rate_limit"),
		HealthAttempts: c.GetInt("api.health_attempts"),
		HealthDelay:    healthDelay,
	}, nil
}

// GetClassifier returns the classifier configuration
func (c *Config) GetClassifier() (ClassifierConfig, error) {
	delay, err := c.GetDuration("classifier.heuristic.delay")
	if err != nil {
		return ClassifierConfig{}, fmt.Errorf("invalid heuristic delay: %w", err)
	}

	return ClassifierConfig{
		Provider:          c.GetString("classifier.provider"),
		HeuristicDelay:    delay,
		HeuristicKeywords: c.GetStringSlice("classifier.heuristic.keywords"),
	}, nil
}

// GetServer returns the web front-end configuration
func (c *Config) GetServer() (ServerConfig, error) {
	refresh, err := c.GetDuration("server.refresh_interval")
	if err != nil {
		return ServerConfig{}, fmt.Errorf("invalid server refresh interval: %w", err)
	}
	shutdown, err := c.GetDuration("server.shutdown_timeout")
	if err != nil {
		return ServerConfig{}, fmt.Errorf("invalid server shutdown timeout: %w", err)
	}

	return ServerConfig{
		ListenAddress:   c.GetString("server.listen_address"),
		Mode:            c.GetString("server.mode"),
		RefreshInterval: refresh,
		ShutdownTimeout: shutdown,
	}, nil
}

// GetSession returns the session configuration
func (c *Config) GetSession() (SessionConfig, error) {
	ttl, err := c.GetDuration("session.ttl")
	if err != nil {
		return SessionConfig{}, fmt.Errorf("invalid session ttl: %w", err)
	}
	cleanup, err := c.GetDuration("session.cleanup_frequency")
	if err != nil {
		return SessionConfig{}, fmt.Errorf("invalid session cleanup frequency: %w", err)
	}

	return SessionConfig{
		CookieName:       c.GetString("session.cookie_name"),
		TTL:              ttl,
		CleanupFrequency: cleanup,
	}, nil
}

// GetText returns the text limits
func (c *Config) GetText() TextConfig {
	return TextConfig{
		MaxSize: c.GetInt("text.max_size"),
	}
}

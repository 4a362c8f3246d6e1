package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvFile is the optional dotenv file loaded before the environment is bound
const EnvFile = ".env"

// Config represents the application configuration
type Config struct {
	v *viper.Viper
}

// New creates a new configuration instance
func New() (*Config, error) {
	return load("")
}

// NewFromFile creates a new configuration instance from an explicit config file
func NewFromFile(path string) (*Config, error) {
	return load(path)
}

func load(path string) (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, err
	}

	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("/etc/spamcheck/")
		v.AddConfigPath("$HOME/.spamcheck")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	// Set defaults
	setDefaults(v)

	// Environment variables
	bindEnv(v)

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, using defaults
	}

	return &Config{v: v}, nil
}

// NewFromViper creates a new configuration instance from an existing Viper instance
func NewFromViper(v *viper.Viper) *Config {
	return &Config{v: v}
}

// NewEmptyViper creates a new Viper instance with defaults
func NewEmptyViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

// NewEnvViper creates a Viper instance with defaults, the .env file and the
// environment bound but no config file. Callers layer explicit settings on top.
func NewEnvViper() (*viper.Viper, error) {
	if err := loadEnvFile(); err != nil {
		return nil, err
	}

	v := NewEmptyViper()
	bindEnv(v)
	return v, nil
}

// loadEnvFile loads .env without overriding variables already set.
// A missing file is fine, anything else is a broken file.
func loadEnvFile() error {
	if err := godotenv.Load(EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", EnvFile, err)
	}
	return nil
}

func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix("SPAMCHECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// SPAMCHECK_API_URL wins over the bare API_URL
	_ = v.BindEnv("api.url", "SPAMCHECK_API_URL", "API_URL")
}

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	// Classification API defaults
	v.SetDefault("api.url", DefaultAPIURL)
	v.SetDefault("api.timeout", "30s")
	v.SetDefault("api.rate_limit", 0.0)
	v.SetDefault("api.health_attempts", 3)
	v.SetDefault("api.health_delay", "1s")

	// Classifier defaults
	v.SetDefault("classifier.provider", "predict")
	v.SetDefault("classifier.heuristic.delay", "1500ms")
	v.SetDefault("classifier.heuristic.keywords", []string{"free", "winner", "click here"})

	// Server defaults
	v.SetDefault("server.listen_address", "0.0.0.0:3000")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.refresh_interval", "1s")
	v.SetDefault("server.shutdown_timeout", "10s")

	// Front-end defaults
	v.SetDefault("frontend.type", "web")
	v.SetDefault("cli.verbose", false)

	// Session defaults
	v.SetDefault("session.cookie_name", "spamcheck_session")
	v.SetDefault("session.ttl", "30m")
	v.SetDefault("session.cleanup_frequency", "5m")

	v.SetDefault("text.max_size", 0)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// GetString gets a string value from the configuration
func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}

// GetInt gets an integer value from the configuration
func (c *Config) GetInt(key string) int {
	return c.v.GetInt(key)
}

// GetFloat64 gets a float64 value from the configuration
func (c *Config) GetFloat64(key string) float64 {
	return c.v.GetFloat64(key)
}

// GetStringSlice gets a string slice value from the configuration
func (c *Config) GetStringSlice(key string) []string {
	return c.v.GetStringSlice(key)
}

// GetBool gets a boolean value from the configuration
func (c *Config) GetBool(key string) bool {
	return c.v.GetBool(key)
}

// GetDuration gets a duration value from the configuration
func (c *Config) GetDuration(key string) (time.Duration, error) {
	return time.ParseDuration(c.GetString(key))
}

// GetViper returns the underlying Viper instance
func (c *Config) GetViper() *viper.Viper {
	return c.v
}

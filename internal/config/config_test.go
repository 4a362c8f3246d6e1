package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := NewFromViper(NewEmptyViper())

	api, err := cfg.GetAPI()
	if err != nil {
		t.Fatalf("GetAPI() error = %v", err)
	}
	if api.URL != DefaultAPIURL {
		t.Errorf("api.URL = %s, want %s", api.URL, DefaultAPIURL)
	}
	if api.Timeout != 30*time.Second {
		t.Errorf("api.Timeout = %v, want 30s", api.Timeout)
	}
	if api.RateLimit != 0 {
		t.Errorf("api.RateLimit = %v, want 0", api.RateLimit)
	}

	classifier, err := cfg.GetClassifier()
	if err != nil {
		t.Fatalf("GetClassifier() error = %v", err)
	}
	if classifier.Provider != "predict" {
		t.Errorf("classifier.Provider = %s, want predict", classifier.Provider)
	}
	if classifier.HeuristicDelay != 1500*time.Millisecond {
		t.Errorf("classifier.HeuristicDelay = %v, want 1.5s", classifier.HeuristicDelay)
	}
	if len(classifier.HeuristicKeywords) != 3 {
		t.Errorf("classifier.HeuristicKeywords = %v, want 3 keywords", classifier.HeuristicKeywords)
	}

	srv, err := cfg.GetServer()
	if err != nil {
		t.Fatalf("GetServer() error = %v", err)
	}
	if srv.ListenAddress != "0.0.0.0:3000" {
		t.Errorf("server.ListenAddress = %s, want 0.0.0.0:3000", srv.ListenAddress)
	}

	sess, err := cfg.GetSession()
	if err != nil {
		t.Fatalf("GetSession() error = %v", err)
	}
	if sess.TTL != 30*time.Minute {
		t.Errorf("session.TTL = %v, want 30m", sess.TTL)
	}
	if sess.CookieName != "spamcheck_session" {
		t.Errorf("session.CookieName = %s, want spamcheck_session", sess.CookieName)
	}

	if got := cfg.GetText().MaxSize; got != 0 {
		t.Errorf("text.MaxSize = %d, want 0", got)
	}
}

func TestInvalidDuration(t *testing.T) {
	v := NewEmptyViper()
	v.Set("api.timeout", "soon")
	cfg := NewFromViper(v)

	if _, err := cfg.GetAPI(); err == nil {
		t.Error("GetAPI() should fail for an unparseable timeout")
	}
}

func TestEnvironmentOverridesAPIURL(t *testing.T) {
	t.Setenv("SPAMCHECK_API_URL", "http://classifier:9000/")

	v := NewEmptyViper()
	bindEnv(v)
	cfg := NewFromViper(v)

	api, err := cfg.GetAPI()
	if err != nil {
		t.Fatalf("GetAPI() error = %v", err)
	}
	if api.URL != "http://classifier:9000/" {
		t.Errorf("api.URL = %s, want http://classifier:9000/", api.URL)
	}
}

func TestBareAPIURLEnvironment(t *testing.T) {
	t.Setenv("API_URL", "http://fallback:8000")

	v := NewEmptyViper()
	bindEnv(v)
	cfg := NewFromViper(v)

	if got := cfg.GetString("api.url"); got != "http://fallback:8000" {
		t.Errorf("api.url = %s, want http://fallback:8000", got)
	}
}

func TestEnvironmentOverridesNestedKey(t *testing.T) {
	t.Setenv("SPAMCHECK_CLASSIFIER_PROVIDER", "heuristic")

	v := NewEmptyViper()
	bindEnv(v)
	cfg := NewFromViper(v)

	classifier, err := cfg.GetClassifier()
	if err != nil {
		t.Fatalf("GetClassifier() error = %v", err)
	}
	if classifier.Provider != "heuristic" {
		t.Errorf("classifier.Provider = %s, want heuristic", classifier.Provider)
	}
}

func TestNewFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spamcheck.yaml")
	data := "api:\n  url: http://model.internal:9000\n  timeout: 5s\nserver:\n  refresh_interval: 2s\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := NewFromFile(path)
	if err != nil {
		t.Fatalf("NewFromFile() error = %v", err)
	}
	api, err := cfg.GetAPI()
	if err != nil {
		t.Fatalf("GetAPI() error = %v", err)
	}
	if api.URL != "http://model.internal:9000" || api.Timeout != 5*time.Second {
		t.Errorf("unexpected api config: %+v", api)
	}
	srv, err := cfg.GetServer()
	if err != nil {
		t.Fatalf("GetServer() error = %v", err)
	}
	if srv.RefreshInterval != 2*time.Second || srv.ShutdownTimeout != 10*time.Second {
		t.Errorf("unexpected server config: %+v", srv)
	}
}

func TestNewFromFileMissing(t *testing.T) {
	if _, err := NewFromFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}

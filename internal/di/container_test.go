package di

import (
	"flag"
	"testing"
	"time"

	"github.com/mikey/spamcheck/internal/adapters/frontend"
	"github.com/mikey/spamcheck/internal/adapters/heuristic"
	"github.com/mikey/spamcheck/internal/adapters/predict"
	"github.com/mikey/spamcheck/internal/config"
	"github.com/mikey/spamcheck/internal/core"
	"github.com/mikey/spamcheck/internal/ports"
)

func TestParseFlags(t *testing.T) {
	fs := flag.NewFlagSet("spamcheck", flag.ContinueOnError)
	flags := parseFlags(fs, []string{"-provider", "heuristic", "-eml", "-timeout", "5s", "-file", "msg.eml"})

	if flags.Provider != "heuristic" || !flags.EML || flags.InputFile != "msg.eml" {
		t.Errorf("unexpected flags: %+v", flags)
	}
	if flags.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", flags.Timeout)
	}
	if flags.APIURL != "http://localhost:8000" {
		t.Errorf("APIURL = %s", flags.APIURL)
	}
}

func TestBuildCLIContainer(t *testing.T) {
	container, err := BuildCLIContainer(&CLIFlags{
		APIURL:   "http://localhost:8000",
		Timeout:  time.Second,
		Provider: "heuristic",
	})
	if err != nil {
		t.Fatalf("BuildCLIContainer() error = %v", err)
	}

	err = container.Invoke(func(fe ports.Frontend) {
		if _, ok := fe.(*frontend.CliFrontend); !ok {
			t.Errorf("got %T, want *frontend.CliFrontend", fe)
		}
	})
	if err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
}

func TestBuildContainer(t *testing.T) {
	t.Setenv("SPAMCHECK_SERVER_MODE", "test")
	t.Setenv("SPAMCHECK_API_URL", "http://model.test:8000")

	container, err := BuildContainer()
	if err != nil {
		t.Fatalf("BuildContainer() error = %v", err)
	}

	err = container.Invoke(func(fe ports.Frontend, sessions ports.SessionStore, classifier core.Classifier) {
		if _, ok := fe.(*frontend.WebFrontend); !ok {
			t.Errorf("got %T, want *frontend.WebFrontend", fe)
		}
		client, ok := classifier.(*predict.Client)
		if !ok {
			t.Fatalf("got %T, want *predict.Client", classifier)
		}
		if client.Endpoint() != "http://model.test:8000/predict" {
			t.Errorf("Endpoint() = %s", client.Endpoint())
		}
		if sessions == nil {
			t.Error("expected a session store")
		}
	})
	if err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
}

func cliAPIURL(t *testing.T, args []string) string {
	t.Helper()

	fs := flag.NewFlagSet("spamcheck", flag.ContinueOnError)
	container, err := BuildCLIContainer(parseFlags(fs, args))
	if err != nil {
		t.Fatalf("BuildCLIContainer() error = %v", err)
	}

	var url string
	if err := container.Invoke(func(cfg *config.Config) {
		url = cfg.GetString("api.url")
	}); err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	return url
}

func TestCLIReadsAPIURLFromEnvironment(t *testing.T) {
	t.Setenv("SPAMCHECK_API_URL", "http://model.env:9000")

	if got := cliAPIURL(t, nil); got != "http://model.env:9000" {
		t.Errorf("api.url = %s, want the SPAMCHECK_API_URL value", got)
	}
}

func TestCLIReadsBareAPIURL(t *testing.T) {
	t.Setenv("SPAMCHECK_API_URL", "")
	t.Setenv("API_URL", "http://bare.env:9000")

	if got := cliAPIURL(t, nil); got != "http://bare.env:9000" {
		t.Errorf("api.url = %s, want the API_URL value", got)
	}
}

func TestCLIFlagOverridesEnvironment(t *testing.T) {
	t.Setenv("SPAMCHECK_API_URL", "http://model.env:9000")

	if got := cliAPIURL(t, []string{"-api-url", "http://flag:7000"}); got != "http://flag:7000" {
		t.Errorf("api.url = %s, want the -api-url value", got)
	}
}

func TestCLIProviderFromEnvironment(t *testing.T) {
	t.Setenv("SPAMCHECK_CLASSIFIER_PROVIDER", "heuristic")

	fs := flag.NewFlagSet("spamcheck", flag.ContinueOnError)
	container, err := BuildCLIContainer(parseFlags(fs, nil))
	if err != nil {
		t.Fatalf("BuildCLIContainer() error = %v", err)
	}
	if err := container.Invoke(func(classifier core.Classifier) {
		if _, ok := classifier.(*heuristic.Classifier); !ok {
			t.Errorf("got %T, want *heuristic.Classifier", classifier)
		}
	}); err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
}

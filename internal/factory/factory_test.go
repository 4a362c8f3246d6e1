package factory

import (
	"testing"

	"github.com/mikey/spamcheck/internal/adapters/frontend"
	"github.com/mikey/spamcheck/internal/adapters/heuristic"
	"github.com/mikey/spamcheck/internal/adapters/predict"
	"github.com/mikey/spamcheck/internal/config"
	"go.uber.org/zap"
)

func testConfig(settings map[string]any) *config.Config {
	v := config.NewEmptyViper()
	for key, value := range settings {
		v.Set(key, value)
	}
	return config.NewFromViper(v)
}

func TestCreateClassifier(t *testing.T) {
	tests := []struct {
		provider string
		check    func(t *testing.T, got any)
		wantErr  bool
	}{
		{
			provider: "predict",
			check: func(t *testing.T, got any) {
				client, ok := got.(*predict.Client)
				if !ok {
					t.Fatalf("got %T, want *predict.Client", got)
				}
				if client.Endpoint() != "http://api.test/predict" {
					t.Errorf("Endpoint() = %s", client.Endpoint())
				}
			},
		},
		{
			provider: "heuristic",
			check: func(t *testing.T, got any) {
				if _, ok := got.(*heuristic.Classifier); !ok {
					t.Fatalf("got %T, want *heuristic.Classifier", got)
				}
			},
		},
		{provider: "bedrock", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			cfg := testConfig(map[string]any{
				"classifier.provider": tt.provider,
				"api.url":             "http://api.test/",
			})
			f := NewClassifierFactory(cfg, zap.NewNop(), nil)

			got, err := f.CreateClassifier()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("CreateClassifier() error = %v", err)
			}
			tt.check(t, got)
		})
	}
}

func TestCreateFrontend(t *testing.T) {
	classifier := heuristic.NewClassifier(nil, 0, nil)

	cfg := testConfig(map[string]any{"server.mode": "test"})
	store, err := NewSessionFactory(cfg, zap.NewNop(), classifier).CreateSessionStore()
	if err != nil {
		t.Fatalf("CreateSessionStore() error = %v", err)
	}
	defer store.Stop()

	web, err := NewFrontendFactory(cfg, zap.NewNop(), nil, classifier).CreateFrontend(store)
	if err != nil {
		t.Fatalf("CreateFrontend(web) error = %v", err)
	}
	if _, ok := web.(*frontend.WebFrontend); !ok {
		t.Errorf("got %T, want *frontend.WebFrontend", web)
	}

	if _, err := NewFrontendFactory(cfg, zap.NewNop(), nil, classifier).CreateFrontend(nil); err == nil {
		t.Error("web front-end without sessions should fail")
	}

	cliCfg := testConfig(map[string]any{"frontend.type": "cli"})
	cli, err := NewFrontendFactory(cliCfg, zap.NewNop(), nil, classifier).CreateFrontend(nil)
	if err != nil {
		t.Fatalf("CreateFrontend(cli) error = %v", err)
	}
	if _, ok := cli.(*frontend.CliFrontend); !ok {
		t.Errorf("got %T, want *frontend.CliFrontend", cli)
	}

	badMode := testConfig(map[string]any{"server.mode": "loud"})
	if _, err := NewFrontendFactory(badMode, zap.NewNop(), nil, classifier).CreateFrontend(store); err == nil {
		t.Error("unknown gin mode should fail")
	}
}

package di

import (
	"go.uber.org/dig"

	"github.com/mikey/spamcheck/internal/adapters/session"
	"github.com/mikey/spamcheck/internal/config"
	"github.com/mikey/spamcheck/internal/core"
	"github.com/mikey/spamcheck/internal/factory"
	"github.com/mikey/spamcheck/internal/logging"
	"github.com/mikey/spamcheck/internal/ports"
	"github.com/mikey/spamcheck/internal/utils"
)

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	if err := provideCommon(container); err != nil {
		return nil, err
	}

	// Register session store
	if err := container.Provide(factory.NewSessionFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(func(f *factory.SessionFactory) (*session.MemoryStore, error) {
		return f.CreateSessionStore()
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func(store *session.MemoryStore) ports.SessionStore {
		return store
	}); err != nil {
		return nil, err
	}

	// Register front-end
	if err := container.Provide(func(f *factory.FrontendFactory, sessions ports.SessionStore) (ports.Frontend, error) {
		return f.CreateFrontend(sessions)
	}); err != nil {
		return nil, err
	}

	return container, nil
}

// provideCommon registers what the web daemon and the CLI share. Config and
// logger must already be provided.
func provideCommon(container *dig.Container) error {
	// Register text processor
	if err := container.Provide(utils.NewTextProcessor); err != nil {
		return err
	}

	// Register factories
	if err := container.Provide(factory.NewClassifierFactory); err != nil {
		return err
	}
	if err := container.Provide(factory.NewFrontendFactory); err != nil {
		return err
	}

	// Register classifier
	if err := container.Provide(func(f *factory.ClassifierFactory) (core.Classifier, error) {
		return f.CreateClassifier()
	}); err != nil {
		return err
	}

	return nil
}

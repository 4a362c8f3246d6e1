package di

import (
	"flag"
	"os"
	"time"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/spamcheck/internal/config"
	"github.com/mikey/spamcheck/internal/factory"
	"github.com/mikey/spamcheck/internal/logging"
	"github.com/mikey/spamcheck/internal/ports"
)

// CLIFlags contains all command line flags for the CLI application
type CLIFlags struct {
	// Classifier flags
	APIURL   string
	Timeout  time.Duration
	Provider string
	MaxSize  int

	// Input flags
	InputFile  string
	EML        bool
	Verbose    bool
	JSONLog    bool
	ConfigFile string

	// explicit holds the flags given on the command line. Nil means every
	// field was set on purpose, as when the struct is built in code.
	explicit map[string]bool
}

// isSet reports whether the named flag should override the environment
func (f *CLIFlags) isSet(name string) bool {
	return f.explicit == nil || f.explicit[name]
}

// ParseFlags parses command line flags and returns a CLIFlags struct
func ParseFlags() *CLIFlags {
	return parseFlags(flag.CommandLine, os.Args[1:])
}

func parseFlags(fs *flag.FlagSet, args []string) *CLIFlags {
	flags := &CLIFlags{}

	// Classifier flags
	fs.StringVar(&flags.APIURL, "api-url", config.DefaultAPIURL, "Base URL of the classification API")
	fs.DurationVar(&flags.Timeout, "timeout", 30*time.Second, "Timeout of the classification request")
	fs.StringVar(&flags.Provider, "provider", "predict", "Classifier provider (predict, heuristic)")
	fs.IntVar(&flags.MaxSize, "max-size", 0, "Maximum text size in bytes sent for classification (0 = unlimited)")

	// Input flags
	fs.StringVar(&flags.InputFile, "file", "", "Input file (use stdin if not specified)")
	fs.BoolVar(&flags.EML, "eml", false, "Parse the input as an email message and check its text parts")
	fs.BoolVar(&flags.Verbose, "verbose", false, "Enable verbose logging and print an input preview")
	fs.BoolVar(&flags.JSONLog, "json-log", false, "Output logs in JSON format")
	fs.StringVar(&flags.ConfigFile, "config", "", "Path to config file (overrides command line flags)")

	// The command line set exits on bad flags
	_ = fs.Parse(args)

	flags.explicit = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		flags.explicit[f.Name] = true
	})
	return flags
}

// BuildCLIContainer creates and configures a dependency injection container for the CLI application
func BuildCLIContainer(flags *CLIFlags) (*dig.Container, error) {
	container := dig.New()

	// Register flags
	if err := container.Provide(func() *CLIFlags { return flags }); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(func(flags *CLIFlags) (*zap.Logger, error) {
		return logging.InitConsoleLogger(flags.Verbose, flags.JSONLog)
	}); err != nil {
		return nil, err
	}

	// Register configuration
	if err := container.Provide(func(flags *CLIFlags, logger *zap.Logger) (*config.Config, error) {
		if flags.ConfigFile != "" {
			cfg, err := config.NewFromFile(flags.ConfigFile)
			if err != nil {
				return nil, err
			}
			logger.Info("Loaded configuration from file", zap.String("file", cfg.GetViper().ConfigFileUsed()))
			cfg.GetViper().Set("frontend.type", "cli")
			return cfg, nil
		}

		// Create config from the environment and command line flags
		return createConfigFromFlags(flags)
	}); err != nil {
		return nil, err
	}

	if err := provideCommon(container); err != nil {
		return nil, err
	}

	// Register front-end, the CLI has no sessions
	if err := container.Provide(func(f *factory.FrontendFactory) (ports.Frontend, error) {
		return f.CreateFrontend(nil)
	}); err != nil {
		return nil, err
	}

	return container, nil
}

// createConfigFromFlags creates a configuration from the environment and
// .env, with flags given on the command line taking precedence
func createConfigFromFlags(flags *CLIFlags) (*config.Config, error) {
	v, err := config.NewEnvViper()
	if err != nil {
		return nil, err
	}

	// Set some cli specific settings
	v.Set("frontend.type", "cli")
	v.Set("cli.verbose", flags.Verbose)

	// Set classifier
	if flags.isSet("provider") {
		v.Set("classifier.provider", flags.Provider)
	}
	if flags.isSet("api-url") {
		v.Set("api.url", flags.APIURL)
	}
	if flags.isSet("timeout") {
		v.Set("api.timeout", flags.Timeout.String())
	}
	if flags.isSet("max-size") {
		v.Set("text.max_size", flags.MaxSize)
	}

	return config.NewFromViper(v), nil
}

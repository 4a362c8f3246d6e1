package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/mikey/spamcheck/internal/adapters/frontend"
	"github.com/mikey/spamcheck/internal/di"
	"github.com/mikey/spamcheck/internal/ports"
	"go.uber.org/zap"
)

func main() {
	flags := di.ParseFlags()

	// Build the dependency injection container
	container, err := di.BuildCLIContainer(flags)
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	// Run the application
	if err := container.Invoke(run); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func run(flags *di.CLIFlags, logger *zap.Logger, cli ports.Frontend) error {
	defer logger.Sync()

	// Read input from file or stdin
	var input io.Reader
	if flags.InputFile != "" {
		file, err := os.Open(flags.InputFile)
		if err != nil {
			return fmt.Errorf("failed to open input file: %w", err)
		}
		defer file.Close()
		input = file
		logger.Debug("Reading input from file", zap.String("file", flags.InputFile))
	} else {
		input = os.Stdin
		logger.Debug("Reading input from stdin")
	}

	text, err := readText(bufio.NewReader(input), flags.EML)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := cli.CheckText(ctx, text); err != nil {
		if errors.Is(err, frontend.ErrBlankText) {
			return errors.New("input is empty")
		}
		return err
	}

	return nil
}

func readText(r io.Reader, eml bool) (string, error) {
	if eml {
		email, err := frontend.ParseEmail(r)
		if err != nil {
			return "", err
		}
		return email.Text(), nil
	}

	raw, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return string(raw), nil
}

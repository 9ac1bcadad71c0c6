package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/korpuslab/taskweave/internal/app"
	"github.com/korpuslab/taskweave/internal/catalog"
	"github.com/korpuslab/taskweave/internal/cli"
)

// main is the entrypoint for the taskweave binary.
func main() {
	// Minimal logger until the configured one takes over.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := run(os.Stdout, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the application logic for easier testing and error
// handling.
func run(outW io.Writer, args []string) error {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	// The annotator catalog is populated by the modules linked into the
	// binary; the engine itself ships none.
	registry := catalog.New()

	a := app.New(appConfig, registry, outW, os.Stderr)
	return a.Run(context.Background())
}

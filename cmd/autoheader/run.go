package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/autoheader/internal/config"
	"github.com/standardbeagle/autoheader/internal/display"
	autoerrors "github.com/standardbeagle/autoheader/internal/errors"
	"github.com/standardbeagle/autoheader/internal/handler"
	"github.com/standardbeagle/autoheader/internal/processing"
)

// buildProcessor wires the handler registry and processor from config.
func buildProcessor(cfg *config.Config) (*processing.Processor, *handler.Registry, error) {
	headerText, err := cfg.ResolveHeaderText()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read header file: %w", err)
	}

	registry, err := handler.NewRegistry(headerText)
	if err != nil {
		return nil, nil, err
	}

	processor, err := processing.NewProcessor(cfg, registry)
	if err != nil {
		return nil, nil, err
	}
	return processor, registry, nil
}

func runCommand(c *cli.Context) error {
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}

	processor, _, err := buildProcessor(cfg)
	if err != nil {
		return err
	}

	summary := display.NewSummaryFormatter(display.FormatterOptions{
		Root:    cfg.Project.Root,
		Verbose: c.Bool("verbose"),
		DryRun:  cfg.Run.DryRun,
	})
	processor.OnResult = summary.Record

	stats, err := processor.Run(context.Background())
	if err != nil {
		// Per-file failures are already in the summary; anything else aborts
		var merr *autoerrors.MultiError
		if !errors.As(err, &merr) {
			return err
		}
	}

	fmt.Print(summary.Format(stats))

	if cfg.Run.Watch {
		return watchLoop(cfg, processor)
	}

	if stats.Failed > 0 {
		return cli.Exit("", 1)
	}
	return nil
}

// watchLoop keeps processing file changes until interrupted.
func watchLoop(cfg *config.Config, processor *processing.Processor) error {
	watcher, err := processing.NewWatcher(cfg, processor)
	if err != nil {
		return err
	}

	// Per-change reporting replaces the batch summary in watch mode
	processor.OnResult = func(res processing.Result) {
		switch {
		case res.Err != nil:
			fmt.Fprintf(os.Stderr, "error: %s: %v\n", res.Path, res.Err)
		case res.Changed:
			fmt.Printf("modified %s\n", res.Path)
		}
	}

	if err := watcher.Start(); err != nil {
		return err
	}
	defer watcher.Stop()

	fmt.Printf("watching %s for changes (ctrl-c to stop)\n", cfg.Project.Root)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	return nil
}

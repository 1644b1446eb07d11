package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/autoheader/internal/display"
	autoerrors "github.com/standardbeagle/autoheader/internal/errors"
)

// checkCommand verifies every eligible file carries the current header.
// No files are written; a non-zero exit signals CI that updates are needed.
func checkCommand(c *cli.Context) error {
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}
	cfg.Run.DryRun = true

	processor, _, err := buildProcessor(cfg)
	if err != nil {
		return err
	}

	summary := display.NewSummaryFormatter(display.FormatterOptions{
		Root:   cfg.Project.Root,
		DryRun: true,
	})
	processor.OnResult = summary.Record

	stats, err := processor.Run(context.Background())
	if err != nil {
		var merr *autoerrors.MultiError
		if !errors.As(err, &merr) {
			return err
		}
	}

	fmt.Print(summary.FormatCheck(stats))

	if summary.HasFindings() {
		return cli.Exit("", 1)
	}
	return nil
}

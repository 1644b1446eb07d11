package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/autoheader/internal/handler"
	"github.com/standardbeagle/autoheader/internal/processing"
)

// listCommand prints the files a run would process, one per line.
func listCommand(c *cli.Context) error {
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}

	headerText, err := cfg.ResolveHeaderText()
	if err != nil {
		return fmt.Errorf("failed to read header file: %w", err)
	}

	registry, err := handler.NewRegistry(headerText)
	if err != nil {
		return err
	}

	scanner, err := processing.NewFileScanner(cfg, registry)
	if err != nil {
		return err
	}

	paths, err := scanner.Scan(context.Background())
	if err != nil {
		return err
	}

	verbose := c.Bool("verbose")
	for _, path := range paths {
		rel, err := filepath.Rel(cfg.Project.Root, path)
		if err != nil {
			rel = path
		}
		if verbose {
			name := filepath.Ext(path)
			if h, ok := registry.HandlerFor(filepath.Ext(path)); ok {
				name = h.Name()
			}
			fmt.Printf("%s (%s)\n", filepath.ToSlash(rel), name)
		} else {
			fmt.Println(filepath.ToSlash(rel))
		}
	}

	if verbose {
		fmt.Printf("%d files\n", len(paths))
	}
	return nil
}

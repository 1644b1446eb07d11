package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/autoheader/internal/config"
	"github.com/standardbeagle/autoheader/internal/debug"
	"github.com/standardbeagle/autoheader/internal/version"
)

var Version = version.Version // Use centralized version management

// loadConfigWithOverrides loads configuration and applies CLI flag overrides
func loadConfigWithOverrides(c *cli.Context) (*config.Config, error) {
	var cfg *config.Config
	var err error

	if configPath := c.String("config"); configPath != "" {
		// Explicit config file bypasses discovery and the global config
		cfg, err = config.LoadKDLFile(configPath)
		if err != nil {
			return nil, err
		}
	} else {
		searchDir := c.String("root")
		if searchDir == "" {
			searchDir = "."
		}
		cfg, err = config.Load(searchDir)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", searchDir, err)
		}
	}

	// Apply CLI flag overrides
	if headerFlag := c.String("header"); headerFlag != "" {
		cfg.Header.Text = headerFlag
		cfg.Header.File = ""
	}
	if headerFileFlag := c.String("header-file"); headerFileFlag != "" {
		cfg.Header.File = headerFileFlag
	}
	if includeFlags := c.StringSlice("include"); len(includeFlags) > 0 {
		cfg.Files.Include = includeFlags
	}
	if excludeFlags := c.StringSlice("exclude"); len(excludeFlags) > 0 {
		cfg.Files.Exclude = append(cfg.Files.Exclude, excludeFlags...)
	}
	if rootFlag := c.String("root"); rootFlag != "" {
		// Convert to absolute path to ensure consistent path handling
		absRoot, err := filepath.Abs(rootFlag)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve root path %q: %w", rootFlag, err)
		}
		cfg.Project.Root = absRoot
	}
	if c.Bool("dry-run") {
		cfg.Run.DryRun = true
	}
	if c.Bool("no-backup") {
		cfg.Run.Backup = false
	}
	if c.Bool("watch") {
		cfg.Run.Watch = true
	}
	if workers := c.Int("workers"); workers > 0 {
		cfg.Run.Workers = workers
	}

	if err := config.ValidateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func main() {
	// The global --verbose flag claims -v; keep only the long form for the
	// built-in version flag so the two don't collide.
	cli.VersionFlag = &cli.BoolFlag{
		Name:  "version",
		Usage: "print the version",
	}

	app := &cli.App{
		Name:                   "autoheader",
		Usage:                  "Insert and maintain copyright headers across source trees",
		Version:                Version,
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Config file path (default: .autoheader.kdl in the project root)",
			},
			&cli.StringFlag{
				Name:    "root",
				Aliases: []string{"r"},
				Usage:   "Project root directory to process (overrides config)",
			},
			&cli.StringFlag{
				Name:  "header",
				Usage: "Copyright header text (overrides config)",
			},
			&cli.StringFlag{
				Name:  "header-file",
				Usage: "File containing the copyright header text",
			},
			&cli.StringSliceFlag{
				Name:  "include",
				Usage: "Include files matching glob patterns (e.g., --include '**/*.py')",
			},
			&cli.StringSliceFlag{
				Name:  "exclude",
				Usage: "Exclude files matching glob patterns (e.g., --exclude '**/generated/**')",
			},
			&cli.BoolFlag{
				Name:    "dry-run",
				Aliases: []string{"n"},
				Usage:   "Report changes without writing files",
			},
			&cli.BoolFlag{
				Name:  "no-backup",
				Usage: "Do not write .bak copies before modifying files",
			},
			&cli.BoolFlag{
				Name:    "watch",
				Aliases: []string{"w"},
				Usage:   "Keep running and process files as they change",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Number of parallel file workers (0 = auto)",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "List every modified file",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "Apply the header to all eligible files (default command)",
				Action: runCommand,
			},
			{
				Name:   "check",
				Usage:  "Verify headers without modifying files; exit 1 when files need updates",
				Action: checkCommand,
			},
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List files that would be processed",
				Action:  listCommand,
			},
			{
				Name:  "config",
				Usage: "Manage configuration",
				Subcommands: []*cli.Command{
					{
						Name:  "init",
						Usage: "Create a starter .autoheader.kdl in the current directory",
						Flags: []cli.Flag{
							&cli.BoolFlag{
								Name:  "force",
								Usage: "Overwrite an existing config file",
							},
						},
						Action: configInitCommand,
					},
					{
						Name:   "show",
						Usage:  "Print the resolved configuration",
						Action: configShowCommand,
					},
				},
			},
		},
		// Bare invocation behaves like "run"
		Action: runCommand,
	}

	if debug.IsDebugEnabled() {
		if logPath, err := debug.InitDebugLogFile(); err == nil {
			defer debug.CloseDebugLog()
			fmt.Fprintf(os.Stderr, "debug log: %s\n", logPath)
		}
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "autoheader: %v\n", err)
		os.Exit(1)
	}
}

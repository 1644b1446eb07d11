package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/autoheader/internal/config"
)

const starterConfig = `// autoheader configuration
// https://github.com/standardbeagle/autoheader

header "Copyright Example Ltd, UK 2025"

// Or load the header text from a file instead:
// header_file "HEADER.txt"

files {
    // include "**/*.py" "**/*.sh"
    exclude "**/generated/**"
    respect_gitignore true
    detect_build_artifacts true
    max_file_size "10MB"
}

run {
    backup true
    // workers 4
    // watch_debounce_ms 300
}
`

func configInitCommand(c *cli.Context) error {
	output := config.ConfigFileName

	if !c.Bool("force") {
		if _, err := os.Stat(output); err == nil {
			return fmt.Errorf("configuration file %s already exists (use --force to overwrite)", output)
		}
	}

	if err := os.WriteFile(output, []byte(starterConfig), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %v", err)
	}

	fmt.Printf("Configuration file created: %s\n", output)
	fmt.Printf("Edit the header line to set your copyright text.\n")
	return nil
}

func configShowCommand(c *cli.Context) error {
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}

	fmt.Print(configToKDL(cfg))
	return nil
}

// configToKDL renders the resolved configuration as a KDL document.
func configToKDL(cfg *config.Config) string {
	var sb strings.Builder

	if cfg.Header.File != "" {
		fmt.Fprintf(&sb, "header_file %q\n", cfg.Header.File)
	} else {
		fmt.Fprintf(&sb, "header %q\n", cfg.Header.Text)
	}
	sb.WriteString("\n")

	fmt.Fprintf(&sb, "project {\n    root %q\n", cfg.Project.Root)
	if cfg.Project.Name != "" {
		fmt.Fprintf(&sb, "    name %q\n", cfg.Project.Name)
	}
	sb.WriteString("}\n\n")

	sb.WriteString("files {\n")
	if len(cfg.Files.Include) > 0 {
		sb.WriteString("    include")
		for _, p := range cfg.Files.Include {
			fmt.Fprintf(&sb, " %q", p)
		}
		sb.WriteString("\n")
	}
	if len(cfg.Files.Exclude) > 0 {
		sb.WriteString("    exclude")
		for _, p := range cfg.Files.Exclude {
			fmt.Fprintf(&sb, " %q", p)
		}
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "    respect_gitignore %t\n", cfg.Files.RespectGitignore)
	fmt.Fprintf(&sb, "    detect_build_artifacts %t\n", cfg.Files.DetectBuildArtifacts)
	fmt.Fprintf(&sb, "    max_file_size %d\n", cfg.Files.MaxFileSize)
	sb.WriteString("}\n\n")

	sb.WriteString("run {\n")
	fmt.Fprintf(&sb, "    backup %t\n", cfg.Run.Backup)
	fmt.Fprintf(&sb, "    dry_run %t\n", cfg.Run.DryRun)
	fmt.Fprintf(&sb, "    workers %d\n", cfg.Run.Workers)
	fmt.Fprintf(&sb, "    watch %t\n", cfg.Run.Watch)
	fmt.Fprintf(&sb, "    watch_debounce_ms %d\n", cfg.Run.WatchDebounceMs)
	sb.WriteString("}\n")

	return sb.String()
}

package config

import (
	"errors"
	"fmt"
	"runtime"

	autoerrors "github.com/standardbeagle/autoheader/internal/errors"
)

// Validator validates configuration and sets smart defaults
type Validator struct{}

// NewValidator creates a new configuration validator
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateAndSetDefaults validates configuration and applies smart defaults.
// Returns an error if validation fails.
func (v *Validator) ValidateAndSetDefaults(cfg *Config) error {
	if err := v.validateProjectConfig(&cfg.Project); err != nil {
		return autoerrors.NewConfigError("project", "", err)
	}

	if err := v.validateHeaderConfig(&cfg.Header); err != nil {
		return autoerrors.NewConfigError("header", "", err)
	}

	if err := v.validateFilesConfig(&cfg.Files); err != nil {
		return autoerrors.NewConfigError("files", "", err)
	}

	if err := v.validateRunConfig(&cfg.Run); err != nil {
		return autoerrors.NewConfigError("run", "", err)
	}

	v.setSmartDefaults(cfg)
	return nil
}

// validateProjectConfig validates project configuration
func (v *Validator) validateProjectConfig(project *Project) error {
	if project.Root == "" {
		return errors.New("project root cannot be empty")
	}
	return nil
}

// validateHeaderConfig checks that a header source is configured. The
// header text itself is validated by the handler registry at startup.
func (v *Validator) validateHeaderConfig(header *Header) error {
	if header.Text == "" && header.File == "" {
		return errors.New("either header text or header_file must be configured")
	}
	return nil
}

// validateFilesConfig validates file selection configuration
func (v *Validator) validateFilesConfig(files *Files) error {
	if files.MaxFileSize < 0 {
		return fmt.Errorf("MaxFileSize cannot be negative, got %d", files.MaxFileSize)
	}

	if files.MaxFileSize > 100*1024*1024 {
		return fmt.Errorf("MaxFileSize should not exceed 100MB, got %d", files.MaxFileSize)
	}

	return nil
}

// validateRunConfig validates processing configuration
func (v *Validator) validateRunConfig(run *Run) error {
	// Workers: 0 means auto-detect (will be set by smart defaults)
	if run.Workers < 0 {
		return fmt.Errorf("Workers cannot be negative, got %d", run.Workers)
	}

	if run.WatchDebounceMs < 0 {
		return fmt.Errorf("WatchDebounceMs cannot be negative, got %d", run.WatchDebounceMs)
	}

	return nil
}

// setSmartDefaults applies smart defaults based on system capabilities
func (v *Validator) setSmartDefaults(cfg *Config) {
	// Use cores-1 to leave headroom for the system, minimum of 1
	if cfg.Run.Workers == 0 {
		numCPU := runtime.NumCPU()
		cfg.Run.Workers = max(1, numCPU-1)
	}

	if cfg.Run.WatchDebounceMs == 0 {
		cfg.Run.WatchDebounceMs = 300
	}

	if cfg.Files.MaxFileSize == 0 {
		cfg.Files.MaxFileSize = 10 * 1024 * 1024
	}
}

// ValidateConfig is a convenience function for quick validation
func ValidateConfig(cfg *Config) error {
	validator := NewValidator()
	return validator.ValidateAndSetDefaults(cfg)
}

// Build artifact detection from project manifests. Generated trees must
// never receive headers, so pyproject.toml, Cargo.toml, package.json and
// friends are parsed for their output directories.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// BuildArtifactDetector finds build output directories to exclude
type BuildArtifactDetector struct {
	projectRoot string
}

// NewBuildArtifactDetector creates a new build artifact detector
func NewBuildArtifactDetector(projectRoot string) *BuildArtifactDetector {
	return &BuildArtifactDetector{projectRoot: projectRoot}
}

// DetectOutputDirectories scans for build configuration files and returns
// glob patterns to exclude (e.g., "**/dist/**", "**/.terraform/**")
func (bad *BuildArtifactDetector) DetectOutputDirectories() []string {
	var patterns []string

	patterns = append(patterns, bad.detectPythonOutputs()...)
	patterns = append(patterns, bad.detectTerraformOutputs()...)
	patterns = append(patterns, bad.detectNodeOutputs()...)
	patterns = append(patterns, bad.detectRustOutputs()...)

	return DeduplicatePatterns(patterns)
}

// detectPythonOutputs finds Python packaging outputs
func (bad *BuildArtifactDetector) detectPythonOutputs() []string {
	var patterns []string

	pyprojectTOML := filepath.Join(bad.projectRoot, "pyproject.toml")
	data, err := os.ReadFile(pyprojectTOML)
	if err != nil {
		// setup.py projects build into the same directories
		if _, serr := os.Stat(filepath.Join(bad.projectRoot, "setup.py")); serr != nil {
			return nil
		}
		return []string{"**/build/**", "**/dist/**", "**/*.egg-info/**"}
	}

	var pyproject map[string]interface{}
	if toml.Unmarshal(data, &pyproject) != nil {
		return nil
	}

	patterns = append(patterns, "**/build/**", "**/dist/**", "**/*.egg-info/**")

	if tool, ok := pyproject["tool"].(map[string]interface{}); ok {
		if poetry, ok := tool["poetry"].(map[string]interface{}); ok {
			if build, ok := poetry["build"].(map[string]interface{}); ok {
				if targetDir, ok := build["target-dir"].(string); ok {
					patterns = append(patterns, "**/"+targetDir+"/**")
				}
			}
		}
		// tox creates per-environment trees under its work_dir
		if tox, ok := tool["tox"].(map[string]interface{}); ok {
			if workDir, ok := tox["work_dir"].(string); ok {
				patterns = append(patterns, "**/"+workDir+"/**")
			}
		}
	}

	return patterns
}

// detectTerraformOutputs finds Terraform provider and module caches
func (bad *BuildArtifactDetector) detectTerraformOutputs() []string {
	// .terraform/ holds downloaded providers and module copies with their
	// own license headers; touching those would corrupt the lock state.
	if _, err := os.Stat(filepath.Join(bad.projectRoot, ".terraform")); err == nil {
		return []string{"**/.terraform/**"}
	}
	if _, err := os.Stat(filepath.Join(bad.projectRoot, ".terraform.lock.hcl")); err == nil {
		return []string{"**/.terraform/**"}
	}
	return nil
}

// detectNodeOutputs finds JS/TS build outputs from package.json and
// tsconfig.json. YAML and Markdown trees frequently live inside Node repos.
func (bad *BuildArtifactDetector) detectNodeOutputs() []string {
	var patterns []string

	packageJSON := filepath.Join(bad.projectRoot, "package.json")
	if data, err := os.ReadFile(packageJSON); err == nil {
		var pkg map[string]interface{}
		if json.Unmarshal(data, &pkg) == nil {
			patterns = append(patterns, "**/node_modules/**")
			if buildConfig, ok := pkg["build"].(map[string]interface{}); ok {
				if outDir, ok := buildConfig["outDir"].(string); ok {
					patterns = append(patterns, "**/"+outDir+"/**")
				}
			}
		}
	}

	tsconfigJSON := filepath.Join(bad.projectRoot, "tsconfig.json")
	if data, err := os.ReadFile(tsconfigJSON); err == nil {
		var tsconfig map[string]interface{}
		if json.Unmarshal(data, &tsconfig) == nil {
			if compilerOptions, ok := tsconfig["compilerOptions"].(map[string]interface{}); ok {
				if outDir, ok := compilerOptions["outDir"].(string); ok {
					patterns = append(patterns, "**/"+outDir+"/**")
				}
			}
		}
	}

	return patterns
}

// detectRustOutputs finds Rust build outputs (Cargo.toml)
func (bad *BuildArtifactDetector) detectRustOutputs() []string {
	var patterns []string

	cargoTOML := filepath.Join(bad.projectRoot, "Cargo.toml")
	if data, err := os.ReadFile(cargoTOML); err == nil {
		var cargo map[string]interface{}
		if toml.Unmarshal(data, &cargo) == nil {
			patterns = append(patterns, "**/target/**")
			if profile, ok := cargo["profile"].(map[string]interface{}); ok {
				if release, ok := profile["release"].(map[string]interface{}); ok {
					if targetDir, ok := release["target-dir"].(string); ok {
						patterns = append(patterns, "**/"+targetDir+"/**")
					}
				}
			}
		}
	}

	return patterns
}

// DeduplicatePatterns removes duplicate exclusion patterns
func DeduplicatePatterns(patterns []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(patterns))

	for _, pattern := range patterns {
		if !seen[pattern] {
			seen[pattern] = true
			result = append(result, pattern)
		}
	}

	return result
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 1, cfg.Version)
	assert.NotEmpty(t, cfg.Project.Root)
	assert.True(t, cfg.Files.RespectGitignore)
	assert.True(t, cfg.Run.Backup)
	assert.Contains(t, cfg.Files.Exclude, "**/.terraform/**")
	assert.Contains(t, cfg.Files.Exclude, "**/node_modules/**")
}

func TestMerge_ProjectWinsOverGlobal(t *testing.T) {
	base := Default()
	base.Header.Text = "Copyright Global Corp 2020"
	base.Project.Name = "global"

	project := Default()
	project.Header.Text = "Copyright Example Ltd, UK 2025"
	project.Project.Name = "local"

	merged := merge(base, project)

	assert.Equal(t, "Copyright Example Ltd, UK 2025", merged.Header.Text)
	assert.Equal(t, "local", merged.Project.Name)
}

func TestMerge_GlobalFillsGaps(t *testing.T) {
	base := Default()
	base.Header.Text = "Copyright Global Corp 2020"
	base.Project.Name = "global"
	base.Files.Exclude = append(base.Files.Exclude, "**/secrets/**")

	project := Default()
	project.Header.Text = ""
	project.Project.Name = ""

	merged := merge(base, project)

	assert.Equal(t, "Copyright Global Corp 2020", merged.Header.Text)
	assert.Equal(t, "global", merged.Project.Name)
	assert.Contains(t, merged.Files.Exclude, "**/secrets/**")
}

func TestMerge_NoDuplicateExcludes(t *testing.T) {
	base := Default()
	project := Default()

	merged := merge(base, project)

	seen := make(map[string]int)
	for _, p := range merged.Files.Exclude {
		seen[p]++
	}
	for p, n := range seen {
		assert.Equal(t, 1, n, "pattern %q duplicated", p)
	}
}

func TestLoad_NoConfigFile(t *testing.T) {
	// Home may carry a real ~/.autoheader.kdl; point HOME somewhere empty
	t.Setenv("HOME", t.TempDir())

	dir := t.TempDir()
	cfg, err := Load(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	abs, err := filepath.Abs(dir)
	require.NoError(t, err)
	assert.Equal(t, abs, cfg.Project.Root)
	assert.Empty(t, cfg.Header.Text)
}

func TestLoad_GlobalThenProject(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	globalContent := `
header "Copyright Global Corp 2020"
exclude "**/secrets/**"
`
	require.NoError(t, os.WriteFile(filepath.Join(home, ConfigFileName), []byte(globalContent), 0644))

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(`header "Copyright Example Ltd, UK 2025"`), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "Copyright Example Ltd, UK 2025", cfg.Header.Text)
	assert.Contains(t, cfg.Files.Exclude, "**/secrets/**")
}

func TestResolveHeaderText_Inline(t *testing.T) {
	cfg := Default()
	cfg.Header.Text = "Copyright Example Ltd, UK 2025"

	text, err := cfg.ResolveHeaderText()
	require.NoError(t, err)
	assert.Equal(t, "Copyright Example Ltd, UK 2025", text)
}

func TestResolveHeaderText_FromFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "HEADER.txt"), []byte("Copyright Example Ltd, UK 2025\nAll rights reserved."), 0644))

	cfg := Default()
	cfg.Project.Root = dir
	cfg.Header.File = "HEADER.txt"

	text, err := cfg.ResolveHeaderText()
	require.NoError(t, err)
	assert.Equal(t, "Copyright Example Ltd, UK 2025\nAll rights reserved.", text)
}

func TestResolveHeaderText_FileMissing(t *testing.T) {
	cfg := Default()
	cfg.Project.Root = t.TempDir()
	cfg.Header.File = "nope.txt"

	_, err := cfg.ResolveHeaderText()
	assert.Error(t, err)
}

func TestResolveHeaderText_FileWinsOverText(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "HEADER.txt"), []byte("Copyright From File 2025"), 0644))

	cfg := Default()
	cfg.Project.Root = dir
	cfg.Header.Text = "Copyright Inline 2025"
	cfg.Header.File = "HEADER.txt"

	text, err := cfg.ResolveHeaderText()
	require.NoError(t, err)
	assert.Equal(t, "Copyright From File 2025", text)
}

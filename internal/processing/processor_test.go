package processing

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	autoerrors "github.com/standardbeagle/autoheader/internal/errors"
)

func newTestProcessor(t *testing.T, root string) *Processor {
	t.Helper()
	p, err := NewProcessor(newTestConfig(t, root), newTestRegistry(t))
	require.NoError(t, err)
	return p
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestProcessFile_InsertsHeader(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"app.py": "x = 1\n"})

	p := newTestProcessor(t, root)
	res := p.ProcessFile(filepath.Join(root, "app.py"))

	require.NoError(t, res.Err)
	assert.True(t, res.Changed)
	assert.Equal(t, "# Copyright Example Ltd, UK 2025\n\nx = 1\n", readFile(t, filepath.Join(root, "app.py")))
}

func TestProcessFile_IdempotentSecondPass(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"app.py": "x = 1\n"})

	p := newTestProcessor(t, root)
	path := filepath.Join(root, "app.py")

	res := p.ProcessFile(path)
	require.NoError(t, res.Err)
	require.True(t, res.Changed)

	after := readFile(t, path)
	res = p.ProcessFile(path)
	require.NoError(t, res.Err)
	assert.False(t, res.Changed)
	assert.Equal(t, after, readFile(t, path))
}

func TestProcessFile_WritesBackup(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"run.sh": "#!/bin/bash\necho hi\n"})

	p := newTestProcessor(t, root)
	path := filepath.Join(root, "run.sh")

	res := p.ProcessFile(path)
	require.NoError(t, res.Err)
	require.True(t, res.Changed)

	assert.Equal(t, "#!/bin/bash\necho hi\n", readFile(t, path+".bak"))
}

func TestProcessFile_NoBackupWhenDisabled(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"app.py": "x = 1\n"})

	cfg := newTestConfig(t, root)
	cfg.Run.Backup = false
	p, err := NewProcessor(cfg, newTestRegistry(t))
	require.NoError(t, err)

	path := filepath.Join(root, "app.py")
	res := p.ProcessFile(path)
	require.NoError(t, res.Err)
	require.True(t, res.Changed)

	_, err = os.Stat(path + ".bak")
	assert.True(t, os.IsNotExist(err))
}

func TestProcessFile_DryRun(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"app.py": "x = 1\n"})

	cfg := newTestConfig(t, root)
	cfg.Run.DryRun = true
	p, err := NewProcessor(cfg, newTestRegistry(t))
	require.NoError(t, err)

	path := filepath.Join(root, "app.py")
	res := p.ProcessFile(path)
	require.NoError(t, res.Err)
	assert.True(t, res.Changed)

	// File untouched and no backup written
	assert.Equal(t, "x = 1\n", readFile(t, path))
	_, err = os.Stat(path + ".bak")
	assert.True(t, os.IsNotExist(err))
}

func TestProcessFile_PreservesMode(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "run.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/bash\necho hi\n"), 0755))

	p := newTestProcessor(t, root)
	res := p.ProcessFile(path)
	require.NoError(t, res.Err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())
}

func TestProcessFile_MissingFile(t *testing.T) {
	root := t.TempDir()
	p := newTestProcessor(t, root)

	res := p.ProcessFile(filepath.Join(root, "missing.py"))
	require.Error(t, res.Err)

	var ferr *autoerrors.FileError
	assert.ErrorAs(t, res.Err, &ferr)
}

func TestRun_Stats(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"app.py":  "x = 1\n",
		"run.sh":  "echo hi\n",
		"done.py": "# Copyright Example Ltd, UK 2025\n\nx = 1\n",
	})

	p := newTestProcessor(t, root)
	stats, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Scanned)
	assert.Equal(t, 3, stats.Processed)
	assert.Equal(t, 2, stats.Modified)
	assert.Equal(t, 1, stats.Unchanged)
	assert.Equal(t, 0, stats.Failed)
}

func TestRun_SecondRunAllUnchanged(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"app.py":     "x = 1\n",
		"deploy.yml": "kind: Deployment\n",
	})

	p := newTestProcessor(t, root)
	_, err := p.Run(context.Background())
	require.NoError(t, err)

	// Backups from the first run must not count as new work
	stats, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Scanned)
	assert.Equal(t, 0, stats.Modified)
	assert.Equal(t, 2, stats.Unchanged)
}

func TestRun_EmptyProject(t *testing.T) {
	p := newTestProcessor(t, t.TempDir())
	stats, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Scanned)
}

func TestRun_OnResultCallback(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.py": "1\n",
		"b.py": "2\n",
	})

	p := newTestProcessor(t, root)

	var mu sync.Mutex
	var seen []string
	p.OnResult = func(res Result) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, filepath.Base(res.Path))
	}

	_, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"a.py", "b.py"}, seen)
}

func TestRun_CancelledContext(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"app.py": "x = 1\n"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := newTestProcessor(t, root)
	_, err := p.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

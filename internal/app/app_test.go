package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"readmegen/internal/config"
	"readmegen/internal/history"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestGenerateEndToEnd(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "main.py"), `"""A small sample project."""

def run(path) -> int:
    """Runs the thing."""
    return 0
`)
	writeFile(t, filepath.Join(root, "test_main.py"), "def test_run():\n    pass\n")
	writeFile(t, filepath.Join(root, "broken.py"), "def broken(:\n")
	writeFile(t, filepath.Join(root, "requirements.txt"), "flask\n# dev only\npytest\n")
	writeFile(t, filepath.Join(root, "__pycache__", "junk.pyc"), "\x00")

	cfg := config.Default()
	cfg.History.Path = filepath.Join(t.TempDir(), "runs.db")

	a, err := New(cfg, root)
	require.NoError(t, err)
	defer a.Close()

	require.NoError(t, a.Generate(context.Background()))

	out, err := os.ReadFile(filepath.Join(root, "README.md"))
	require.NoError(t, err)
	readme := string(out)

	assert.True(t, strings.HasPrefix(readme, "# "+filepath.Base(root)))
	assert.Contains(t, readme, "## Description\n\nA small sample project.")
	assert.Contains(t, readme, "* flask\n* pytest")
	assert.Contains(t, readme, "#### run(path) -> int")
	assert.Contains(t, readme, "## Testing")
	assert.NotContains(t, readme, "broken.py\n\n") // no API subsection for the failed file
	assert.Contains(t, readme, "    - broken.py")  // but it is still listed in the structure
	assert.NotContains(t, readme, "__pycache__")

	store, err := history.Open(cfg.History.Path)
	require.NoError(t, err)
	defer store.Close()

	runs, err := store.LoadRuns(filepath.Base(root), time.Time{})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, 2, runs[0].FileCount) // broken.py and main.py
	assert.Equal(t, 1, runs[0].TestCount)
	assert.Equal(t, 1, runs[0].FailureCount)
}

func TestGenerateAlwaysProducesADocument(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "only_broken.py"), "def broken(:\n")

	a, err := New(config.Default(), root)
	require.NoError(t, err)
	defer a.Close()

	require.NoError(t, a.Generate(context.Background()))

	out, err := os.ReadFile(filepath.Join(root, "README.md"))
	require.NoError(t, err)
	readme := string(out)

	// No parseable files: optional sections vanish, the document remains.
	assert.NotContains(t, readme, "## Description")
	assert.NotContains(t, readme, "## API Documentation")
	assert.Contains(t, readme, "## Contributing")
	assert.Contains(t, readme, "## License")
}

func TestGenerateCustomOutputFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "m.py"), "x = 1\n")

	cfg := config.Default()
	cfg.OutputFile = "DOCS.md"

	a, err := New(cfg, root)
	require.NoError(t, err)
	defer a.Close()

	require.NoError(t, a.Generate(context.Background()))

	_, err = os.Stat(filepath.Join(root, "DOCS.md"))
	assert.NoError(t, err)
}

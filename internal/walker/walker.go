package walker

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"readmegen/internal/parser"
)

const indentUnit = "    "

// DefaultExcludeDirs are directory basenames never descended into:
// version control metadata, caches, virtual environments and build
// artifacts. Excluded directories are skipped entirely, so they emit no
// structure line of their own.
var DefaultExcludeDirs = []string{
	".git", "__pycache__", "venv", "env", "node_modules", ".pytest_cache", "build", "dist",
}

// Result accumulates everything one traversal discovers. It is threaded
// through the walk explicitly so repeated walks share no state.
type Result struct {
	Structure   []string               // indented structure tree lines
	SourceFiles []string               // analyzable source file paths
	TestFiles   []string               // test file paths
	Analyses    []*parser.FileAnalysis // successful analyses in traversal order
	Failures    []*parser.FileAnalysis // failure records, excluded from documentation
}

type Walker struct {
	parser       *parser.Parser
	excludeDirs  []glob.Glob
	excludeFiles []glob.Glob
}

// New compiles the exclusion sets. Entries are glob patterns matched
// against basenames; plain names match themselves.
func New(p *parser.Parser, excludeDirs, excludeFiles []string) (*Walker, error) {
	w := &Walker{parser: p}

	for _, pattern := range excludeDirs {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude dir pattern %q: %w", pattern, err)
		}
		w.excludeDirs = append(w.excludeDirs, g)
	}

	for _, pattern := range excludeFiles {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude file pattern %q: %w", pattern, err)
		}
		w.excludeFiles = append(w.excludeFiles, g)
	}

	return w, nil
}

// Walk traverses root depth-first, parent before children, building the
// structure tree and parsing every supported source file it meets. A file
// that fails to parse is recorded and the walk continues.
func (w *Walker) Walk(root string) (*Result, error) {
	result := &Result{}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			slog.Warn("skipping unreadable path", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}

		base := filepath.Base(path)

		if d.IsDir() {
			if rel == "." {
				return nil
			}
			for _, g := range w.excludeDirs {
				if g.Match(base) {
					return filepath.SkipDir
				}
			}
			level := strings.Count(rel, string(filepath.Separator))
			result.Structure = append(result.Structure, strings.Repeat(indentUnit, level)+"- "+base+"/")
			return nil
		}

		for _, g := range w.excludeFiles {
			if g.Match(base) {
				return nil
			}
		}

		// Files sit one indent unit below their containing directory.
		indent := strings.Count(rel, string(filepath.Separator))
		if indent < 1 {
			indent = 1
		}
		result.Structure = append(result.Structure, strings.Repeat(indentUnit, indent)+"- "+base)

		if !w.parser.IsSupportedPath(path) {
			return nil
		}

		if strings.Contains(strings.ToLower(base), "test") {
			result.TestFiles = append(result.TestFiles, path)
		} else {
			result.SourceFiles = append(result.SourceFiles, path)
		}

		w.analyzeFile(path, result)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (w *Walker) analyzeFile(path string, result *Result) {
	content, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("failed to read file", "path", path, "error", err)
		result.Failures = append(result.Failures, &parser.FileAnalysis{
			Name: filepath.Base(path),
			Err:  fmt.Sprintf("error analyzing %s: %v", path, err),
		})
		return
	}

	analysis := w.parser.ParseFile(path, content)
	if analysis.Failed() {
		slog.Warn("failed to parse file", "path", path, "error", analysis.Err)
		result.Failures = append(result.Failures, analysis)
		return
	}
	result.Analyses = append(result.Analyses, analysis)
}

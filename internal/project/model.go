package project

import (
	"path/filepath"

	"readmegen/internal/metadata"
	"readmegen/internal/parser"
	"readmegen/internal/walker"
)

// Model is the aggregate of one traversal plus project metadata. It is
// built once per invocation and treated as read-only by the renderer.
type Model struct {
	Name          string
	Structure     []string
	SourceFiles   []string
	TestFiles     []string
	Documentation []*parser.FileAnalysis // successful analyses in traversal order
	Imports       []string               // all imported modules across files, deduplicated
	Requirements  []string
	License       string
	HasGit        bool
	RemoteURL     string
	FailureCount  int
}

// Build composes walker output and metadata into one model. The project
// name derives from the root directory's basename.
func Build(root string, scan *walker.Result, meta *metadata.Metadata) (*Model, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	m := &Model{
		Name:          filepath.Base(abs),
		Structure:     scan.Structure,
		SourceFiles:   scan.SourceFiles,
		TestFiles:     scan.TestFiles,
		Documentation: scan.Analyses,
		Requirements:  meta.Requirements,
		License:       meta.License,
		HasGit:        meta.HasGit,
		RemoteURL:     meta.RemoteURL,
		FailureCount:  len(scan.Failures),
	}

	seen := make(map[string]bool)
	for _, analysis := range scan.Analyses {
		for _, module := range analysis.Imports {
			if seen[module] {
				continue
			}
			seen[module] = true
			m.Imports = append(m.Imports, module)
		}
	}

	return m, nil
}

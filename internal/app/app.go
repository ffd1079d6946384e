package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"

	"readmegen/internal/config"
	"readmegen/internal/history"
	"readmegen/internal/metadata"
	"readmegen/internal/parser"
	"readmegen/internal/project"
	"readmegen/internal/render"
	"readmegen/internal/shared/observability"
	"readmegen/internal/walker"
	"readmegen/internal/watcher"
)

// App wires the analysis pipeline together: walk the tree, collect
// metadata, build the model, render the document, write it out.
type App struct {
	Config *config.Config

	root     string
	walker   *walker.Walker
	renderer *render.Generator
	history  *history.Store
	watcher  *watcher.Watcher
}

func New(cfg *config.Config, root string) (*App, error) {
	p := parser.NewParser(parser.NewGrammarLoader())

	excludeDirs := append(slices.Clone(walker.DefaultExcludeDirs), cfg.Exclude.Dirs...)
	w, err := walker.New(p, excludeDirs, cfg.Exclude.Files)
	if err != nil {
		return nil, err
	}

	a := &App{
		Config:   cfg,
		root:     root,
		walker:   w,
		renderer: render.NewGenerator(),
	}

	if cfg.History.Path != "" {
		store, err := history.Open(cfg.History.Path)
		if err != nil {
			return nil, fmt.Errorf("open run history: %w", err)
		}
		a.history = store
	}

	return a, nil
}

// Generate runs one full pipeline pass and writes the document into the
// project root. A run always produces a document; files that fail to
// parse only lose their documentation sections.
func (a *App) Generate(ctx context.Context) error {
	ctx, span := observability.Tracer.Start(ctx, "app.Generate")
	defer span.End()

	start := time.Now()

	scan, err := a.walker.Walk(a.root)
	if err != nil {
		return fmt.Errorf("walk project: %w", err)
	}

	meta := metadata.Collect(a.root)

	model, err := project.Build(a.root, scan, meta)
	if err != nil {
		return fmt.Errorf("build project model: %w", err)
	}

	renderStart := time.Now()
	content := a.renderer.Generate(model, render.Options{})
	observability.RenderDuration.Observe(time.Since(renderStart).Seconds())

	outPath := filepath.Join(a.root, a.Config.OutputFile)
	if err := os.WriteFile(outPath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}

	observability.FilesAnalyzed.Set(float64(len(model.Documentation)))
	observability.GenerationRunsTotal.Inc()

	if a.history != nil {
		run := history.Run{
			ProjectKey:   model.Name,
			Timestamp:    time.Now().UTC(),
			FileCount:    len(model.SourceFiles),
			TestCount:    len(model.TestFiles),
			FailureCount: model.FailureCount,
			OutputBytes:  len(content),
			OutputPath:   outPath,
			Duration:     time.Since(start),
		}
		if err := a.history.SaveRun(run); err != nil {
			slog.Warn("failed to record run history", "error", err)
		}
	}

	slog.Info("document generated",
		"path", outPath,
		"files", len(model.SourceFiles),
		"tests", len(model.TestFiles),
		"failures", model.FailureCount,
		"duration", time.Since(start))

	return nil
}

// StartWatcher regenerates the document whenever source files change. The
// output file itself is excluded so a write never retriggers a run.
func (a *App) StartWatcher() error {
	excludeDirs := append(slices.Clone(walker.DefaultExcludeDirs), a.Config.Exclude.Dirs...)
	excludeFiles := append(slices.Clone(a.Config.Exclude.Files), a.Config.OutputFile)

	w, err := watcher.New(a.Config.Watch.Debounce, excludeDirs, excludeFiles, func(paths []string) {
		slog.Info("detected changes", "count", len(paths))
		if err := a.Generate(context.Background()); err != nil {
			slog.Error("regeneration failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	if err := w.Watch(a.root); err != nil {
		w.Close()
		return err
	}

	a.watcher = w
	return nil
}

func (a *App) Close() error {
	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			return err
		}
	}
	return a.history.Close()
}

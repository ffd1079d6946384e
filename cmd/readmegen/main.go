package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"readmegen/internal/app"
	"readmegen/internal/config"
	"readmegen/internal/reclassify"
	"readmegen/internal/server"
	"readmegen/internal/shared/util"
)

var (
	configPath = flag.String("config", "./readmegen.toml", "Path to config file")
	output     = flag.String("output", "", "Output filename, overrides the config")
	watch      = flag.Bool("watch", false, "Keep running and regenerate on file changes")
	serve      = flag.Bool("serve", false, "Run the text generation service")
	reclass    = flag.String("reclassify", "", "Convert a plain text file to markdown and print it")
	verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	version    = flag.Bool("version", false, "Print version and exit")
)

const VERSION = "1.0.0"

func main() {
	flag.Parse()

	if *version {
		fmt.Printf("readmegen v%s\n", VERSION)
		os.Exit(0)
	}

	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		// A missing config file at the default location is fine; anything
		// else is a real configuration problem.
		if *configPath == "./readmegen.toml" && errors.Is(err, os.ErrNotExist) {
			cfg = config.Default()
		} else {
			slog.Error("failed to load config", "error", err)
			os.Exit(1)
		}
	}
	if *output != "" {
		cfg.OutputFile = *output
	}

	if *reclass != "" {
		data, err := os.ReadFile(*reclass)
		if err != nil {
			slog.Error("failed to read input", "path", *reclass, "error", err)
			os.Exit(1)
		}
		fmt.Println(reclassify.Reclassify(string(data)))
		os.Exit(0)
	}

	if *serve {
		runServer(cfg)
		return
	}

	root := "."
	if flag.NArg() > 0 {
		root = flag.Arg(0)
	}

	application, err := app.New(cfg, root)
	if err != nil {
		slog.Error("failed to initialize", "error", err)
		os.Exit(1)
	}
	defer application.Close()

	if err := application.Generate(context.Background()); err != nil {
		slog.Error("generation failed", "error", err)
		os.Exit(1)
	}

	if !*watch {
		return
	}

	if err := application.StartWatcher(); err != nil {
		slog.Error("failed to start watcher", "error", err)
		os.Exit(1)
	}

	// Block forever
	select {}
}

func runServer(cfg *config.Config) {
	generator, err := server.NewOllamaGenerator(cfg.Server.OllamaHost, cfg.Server.OllamaModel)
	if err != nil {
		slog.Error("failed to initialize generator", "error", err)
		os.Exit(1)
	}

	limiter := util.NewLimiter(cfg.Server.RequestsPerSecond, cfg.Server.Burst)
	srv := server.New(cfg.Server.Addr, generator, limiter)
	if err := srv.Start(context.Background()); err != nil {
		slog.Error("failed to start server", "error", err)
		os.Exit(1)
	}

	select {}
}

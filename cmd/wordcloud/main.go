package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/AnechkaShv/wordcloud-generator/internal/config"
	"github.com/AnechkaShv/wordcloud-generator/internal/engine"
	"github.com/AnechkaShv/wordcloud-generator/internal/generator"
	"github.com/AnechkaShv/wordcloud-generator/internal/logger"
	"github.com/AnechkaShv/wordcloud-generator/internal/params"
	"github.com/AnechkaShv/wordcloud-generator/internal/web"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "word cloud service: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	config.LoadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eng, cleanup, err := engine.New(cfg.Engine, engine.Options{
		FontFile:      cfg.FontFile,
		FontMinSize:   cfg.FontMinSize,
		FontMaxSize:   cfg.FontMaxSize,
		MinWordLength: cfg.MinWordLength,
		RemoteURL:     cfg.WordCloudAPIURL,
		RemoteTimeout: cfg.WordCloudAPITimeout,
	}, log)
	if err != nil {
		return fmt.Errorf("initialize layout engine: %w", err)
	}
	defer cleanup()

	base := params.BaseStopwords()
	gen := generator.New(base, eng, log)

	server := web.New(cfg, log, gen, base)
	if err := server.Run(ctx); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		return err
	}

	log.Info().Msg("word cloud service exited cleanly")
	return nil
}

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/northbeam-studio/studio-admin/internal/cli"
	"github.com/northbeam-studio/studio-admin/internal/studio"
	"github.com/northbeam-studio/studio-admin/pkg/config"
	"github.com/northbeam-studio/studio-admin/pkg/logger"
	"github.com/northbeam-studio/studio-admin/pkg/recordstore"
	"github.com/rs/zerolog"
)

func main() {
	_ = godotenv.Load()

	root := cli.NewRootCmd(openServices, os.Stdout)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.New(color.FgRed).Sprint("✗"), err)
		os.Exit(1)
	}
}

// openServices wires the services against the store named in the
// environment. Store logs go to stderr so tables on stdout stay clean.
func openServices(ctx context.Context) (*studio.Services, func() error, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	level := logger.ParseLevel(cfg.App.LogLevel)
	if level < zerolog.WarnLevel {
		level = zerolog.WarnLevel
	}
	logg := logger.New(logger.Options{
		ServiceName: "studioctl",
		Level:       level,
		Output:      os.Stderr,
	})

	store, err := recordstore.Open(ctx, recordstore.OpenParams{
		Store:  cfg.Store,
		DB:     cfg.DB,
		Redis:  cfg.Redis,
		Logger: logg,
	})
	if err != nil {
		return nil, nil, err
	}

	svcs, err := studio.New(studio.Options{Store: store, Logger: logg})
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}
	return svcs, store.Close, nil
}

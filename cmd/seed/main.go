// Command seed loads article documents and concept tables from a directory
// into the configured store.
//
// The directory holds one subdirectory per dictionary (bm, nn, no) with
// <id>.json article documents and an optional concepts.json.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ordbok-backend/infrastructure/config"
	"ordbok-backend/infrastructure/di"
	"ordbok-backend/infrastructure/persistence/seed"
)

var errMemoryStore = errors.New("seeding the memory store has no effect; set STORE_BACKEND=dynamodb")

func newSeedCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "seed --dir <path>",
		Short: "Load article documents into the configured store",
		Long: `Load article documents and concept tables into the configured store.

Layout:
  <dir>/bm/<id>.json
  <dir>/nn/<id>.json
  <dir>/nn/concepts.json

Examples:
  seed --dir ./data
  STORE_BACKEND=dynamodb TABLE_NAME=ordbok-entries seed --dir ./data`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSeed(cmd.Context(), dir)
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "", "directory to load documents from")
	_ = cmd.MarkFlagRequired("dir")
	return cmd
}

func runSeed(ctx context.Context, dir string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.StoreBackend == config.StoreMemory {
		return errMemoryStore
	}

	logger, err := di.ProvideLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	store, err := di.ProvideDocumentStore(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create store: %w", err)
	}

	result, err := seed.LoadDirectory(ctx, dir, store, logger)
	if err != nil {
		logger.Error("Seeding failed",
			zap.Int("entries", result.Entries),
			zap.Int("conceptTables", result.ConceptTables),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newSeedCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

// Command inventory-import copies a text inventory file into the PostgreSQL
// product table, replacing its contents.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"wecare/internal/config"
	"wecare/internal/database"
	"wecare/internal/repository"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	source := flag.String("file", cfg.Inventory.File, "inventory file to import")
	flag.Parse()

	if err := cfg.Database.Validate(); err != nil {
		return fmt.Errorf("invalid database configuration: %w", err)
	}

	// Progress goes to stderr; this is a one-shot tool.
	cfg.Logger.File = "-"
	logOut, err := config.OpenLogOutput(cfg.Logger)
	if err != nil {
		return fmt.Errorf("failed to open log output: %w", err)
	}
	defer logOut.Close()
	logger := config.NewLogger(cfg.Logger, logOut)

	ctx := context.Background()

	if _, err := os.Stat(*source); err != nil {
		return fmt.Errorf("failed to open inventory file: %w", err)
	}

	inv, err := repository.NewFileRepository(*source, logger).Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", *source, err)
	}

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool, logger); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := repository.NewPostgresRepository(pool, logger).Save(ctx, inv); err != nil {
		return fmt.Errorf("failed to import inventory: %w", err)
	}

	fmt.Printf("Imported %d products from %s into database %s\n", inv.Len(), *source, cfg.Database.Database)
	return nil
}

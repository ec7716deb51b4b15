package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"wecare/internal/config"
	"wecare/internal/console"
	"wecare/internal/database"
	"wecare/internal/document"
	"wecare/internal/repository"
	"wecare/internal/service"
	"wecare/internal/validator"

	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logOut, err := config.OpenLogOutput(cfg.Logger)
	if err != nil {
		return fmt.Errorf("failed to open log output: %w", err)
	}
	defer logOut.Close()

	logger := config.NewLogger(cfg.Logger, logOut)
	logger.Info().
		Str("backend", cfg.Inventory.Backend).
		Str("document_dir", cfg.Documents.Dir).
		Msg("starting wecare")

	// Cancel on interrupt so blocked prompts return
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize repository
	repo, closeRepo, err := openRepository(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize inventory store: %w", err)
	}
	defer closeRepo()

	inv, err := repo.Load(ctx)
	if err != nil {
		fmt.Println("Fatal error starting the program")
		fmt.Println("System will now exit")
		return fmt.Errorf("failed to load inventory: %w", err)
	}

	// Initialize document writer with optional S3 archive
	renderer := document.NewRenderer(cfg.Documents.Header, cfg.Store.Address)
	writer := document.NewFileWriter(cfg.Documents.Dir, renderer, os.Stdout, logger,
		document.WithArchiver(newArchiver(ctx, cfg.S3, logger)),
	)

	// Initialize services
	v := validator.NewDefaultValidator()
	restockService := service.NewRestockService(repo, writer, v, logger)
	saleService := service.NewSaleService(repo, writer, v, logger)

	app := console.NewApp(
		console.NewPrompter(os.Stdin, os.Stdout),
		inv,
		restockService,
		saleService,
		console.StoreInfo{Name: cfg.Store.Name, Address: cfg.Store.Address},
		logger,
	)

	if err := app.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info().Msg("shutdown signal received")
			fmt.Println()
			return nil
		}
		return err
	}

	logger.Info().Msg("wecare stopped")
	return nil
}

// openRepository returns the configured product repository and a cleanup func.
func openRepository(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (repository.ProductRepository, func(), error) {
	if cfg.Inventory.Backend != config.BackendPostgres {
		return repository.NewFileRepository(cfg.Inventory.File, logger), func() {}, nil
	}

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := database.Migrate(ctx, pool, logger); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return repository.NewPostgresRepository(pool, logger), pool.Close, nil
}

// newArchiver returns an S3 archiver when enabled, falling back to keeping
// documents on the local file system only.
func newArchiver(ctx context.Context, cfg config.S3Config, logger zerolog.Logger) document.Archiver {
	if !cfg.Enabled {
		logger.Info().Msg("using local file system for documents (S3 disabled)")
		return document.NewNopArchiver()
	}

	archiver, err := document.NewS3Archiver(ctx, cfg.Bucket, cfg.Region, cfg.Prefix, logger)
	if err != nil {
		logger.Warn().
			Err(err).
			Msg("failed to initialise S3 archiver, falling back to local file system only")
		return document.NewNopArchiver()
	}

	return archiver
}

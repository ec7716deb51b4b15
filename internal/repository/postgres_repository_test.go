package repository

import (
	"context"
	"testing"
	"time"

	"wecare/internal/database"
	"wecare/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDB creates a PostgreSQL testcontainer and returns a migrated connection pool.
func setupTestDB(t *testing.T) (*pgxpool.Pool, func()) {
	if testing.Short() {
		t.Skip("skipping PostgreSQL container test in short mode")
	}

	ctx := context.Background()

	// Start PostgreSQL container
	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)

	// Get connection string
	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	// Create connection pool
	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)

	// Create schema
	require.NoError(t, database.Migrate(ctx, pool, zerolog.Nop()))

	// Cleanup function
	cleanup := func() {
		pool.Close()
		_ = pgContainer.Terminate(ctx)
	}

	return pool, cleanup
}

func TestPostgresRepository_Load_SeedsEmptyTable(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewPostgresRepository(pool, zerolog.Nop())
	ctx := context.Background()

	inv, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, inv.Len())

	for i, want := range DefaultProducts() {
		got, err := inv.Get(i + 1)
		require.NoError(t, err)
		assert.Equal(t, want.Name, got.Name)
		assert.Equal(t, want.StockQuantity, got.StockQuantity)
		assert.True(t, want.CostPrice.Equal(got.CostPrice))
	}

	var count int
	require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&count))
	assert.Equal(t, 3, count)
}

func TestPostgresRepository_SaveAndReload(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewPostgresRepository(pool, zerolog.Nop())
	ctx := context.Background()

	inv, err := repo.Load(ctx)
	require.NoError(t, err)

	p, err := inv.Get(1)
	require.NoError(t, err)
	p.StockQuantity = 192

	p, err = inv.Get(2)
	require.NoError(t, err)
	p.CostPrice = decimal.RequireFromString("300.75")

	require.NoError(t, repo.Save(ctx, inv))

	reloaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, reloaded.Len())

	p, err = reloaded.Get(1)
	require.NoError(t, err)
	assert.Equal(t, 192, p.StockQuantity)

	p, err = reloaded.Get(2)
	require.NoError(t, err)
	assert.Equal(t, "300.75", p.CostPrice.String())
}

func TestPostgresRepository_Save_RejectsNegativeStock(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewPostgresRepository(pool, zerolog.Nop())
	ctx := context.Background()

	inv, err := repo.Load(ctx)
	require.NoError(t, err)

	p, err := inv.Get(3)
	require.NoError(t, err)
	p.StockQuantity = -1

	err = repo.Save(ctx, inv)
	require.Error(t, err)
	assert.Equal(t, model.KindIO, model.KindOf(err))

	// The failed transaction leaves the previous rows in place.
	reloaded, err := repo.Load(ctx)
	require.NoError(t, err)
	p, err = reloaded.Get(3)
	require.NoError(t, err)
	assert.Equal(t, 200, p.StockQuantity)
}

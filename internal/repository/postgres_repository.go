package repository

import (
	"context"
	"fmt"

	"wecare/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// postgresRepository implements the ProductRepository interface using PostgreSQL.
// The products table keeps the 1-based inventory index in its position column.
type postgresRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPostgresRepository creates a new PostgreSQL-backed product repository.
func NewPostgresRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &postgresRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "postgres").Logger(),
	}
}

// Load reads all products ordered by position, seeding the defaults into an empty table.
func (r *postgresRepository) Load(ctx context.Context) (*model.Inventory, error) {
	products, err := r.query(ctx)
	if err != nil {
		return nil, err
	}

	if len(products) == 0 {
		r.logger.Info().Msg("products table is empty, seeding sample data")

		if err := r.replace(ctx, DefaultProducts()); err != nil {
			return nil, err
		}

		products, err = r.query(ctx)
		if err != nil {
			return nil, err
		}
	}

	r.logger.Debug().Int("product_count", len(products)).Msg("inventory loaded")

	return model.NewInventory(products), nil
}

// Save replaces every row of the products table in one transaction.
func (r *postgresRepository) Save(ctx context.Context, inv *model.Inventory) error {
	if err := r.replace(ctx, inv.Products()); err != nil {
		return err
	}

	r.logger.Info().Int("product_count", inv.Len()).Msg("inventory table updated")

	return nil
}

func (r *postgresRepository) query(ctx context.Context) ([]model.Product, error) {
	query := `
		SELECT name, brand, stock_quantity, cost_price::text, origin
		FROM products
		ORDER BY position
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query products")
		return nil, model.NewIOError(model.ErrCodeStoreRead, "failed to query products", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var (
			p    model.Product
			cost string
		)
		if err := rows.Scan(&p.Name, &p.Brand, &p.StockQuantity, &cost, &p.Origin); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, model.NewIOError(model.ErrCodeStoreRead, "failed to scan product", err)
		}

		p.CostPrice, err = decimal.NewFromString(cost)
		if err != nil {
			return nil, &model.DomainError{
				Kind:    model.KindIO,
				Code:    model.ErrCodeCorruptRecord,
				Message: fmt.Sprintf("invalid cost price for %s", p.Name),
				Err:     err,
			}
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, model.NewIOError(model.ErrCodeStoreRead, "error iterating products", err)
	}

	return products, nil
}

func (r *postgresRepository) replace(ctx context.Context, products []model.Product) (err error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return model.NewIOError(model.ErrCodeStoreWrite, "failed to begin transaction", err)
	}

	// Ensure transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && rbErr != pgx.ErrTxClosed {
				r.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if _, err = tx.Exec(ctx, `DELETE FROM products`); err != nil {
		r.logger.Error().Err(err).Msg("failed to clear products")
		return model.NewIOError(model.ErrCodeStoreWrite, "failed to clear products", err)
	}

	if err = r.insert(ctx, tx, products); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		r.logger.Error().Err(err).Msg("failed to commit transaction")
		return model.NewIOError(model.ErrCodeStoreWrite, "failed to commit products", err)
	}

	return nil
}

func (r *postgresRepository) insert(ctx context.Context, tx pgx.Tx, products []model.Product) error {
	if len(products) == 0 {
		return nil
	}

	query := `
		INSERT INTO products (position, name, brand, stock_quantity, cost_price, origin)
		VALUES ($1, $2, $3, $4, $5::numeric, $6)
	`

	batch := &pgx.Batch{}
	for i, p := range products {
		batch.Queue(query, i+1, p.Name, p.Brand, p.StockQuantity, model.FormatDecimal(p.CostPrice), p.Origin)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < len(products); i++ {
		if _, err := results.Exec(); err != nil {
			r.logger.Error().
				Err(err).
				Int("position", i+1).
				Str("product", products[i].Name).
				Msg("failed to insert product")
			return model.NewIOError(model.ErrCodeStoreWrite, "failed to insert product", err)
		}
	}

	return nil
}

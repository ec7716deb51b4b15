package repository

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"wecare/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const (
	fieldDelimiter = ","
	recordFields   = 5
)

// fileRepository implements ProductRepository on a flat delimited text file:
//
//	name, brand, stock_quantity, cost_price, origin
//
// Fields are not escaped, so a field containing the delimiter cannot be stored.
type fileRepository struct {
	path   string
	logger zerolog.Logger
}

// NewFileRepository creates a new file-backed product repository.
func NewFileRepository(path string, logger zerolog.Logger) ProductRepository {
	return &fileRepository{
		path:   path,
		logger: logger.With().Str("repository", "file").Str("file", path).Logger(),
	}
}

// Load reads the inventory file, creating it with the default products first
// if it does not exist.
func (r *fileRepository) Load(ctx context.Context) (*model.Inventory, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		r.logger.Info().Msg("inventory file not found, creating new file with sample data")

		if err := r.write(DefaultProducts()); err != nil {
			return nil, err
		}

		data, err = os.ReadFile(r.path)
	}
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to read inventory file")
		return nil, model.NewIOError(model.ErrCodeStoreRead, "failed to read inventory file "+r.path, err)
	}

	products, err := parseRecords(data)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to parse inventory file")
		return nil, err
	}

	r.logger.Debug().Int("product_count", len(products)).Msg("inventory loaded")

	return model.NewInventory(products), nil
}

// Save overwrites the inventory file in full.
func (r *fileRepository) Save(ctx context.Context, inv *model.Inventory) error {
	if err := r.write(inv.Products()); err != nil {
		return err
	}

	r.logger.Info().Int("product_count", inv.Len()).Msg("inventory file updated")

	return nil
}

// write truncates and rewrites the file. The write is not atomic: a crash
// part way through leaves a truncated file.
func (r *fileRepository) write(products []model.Product) error {
	var buf bytes.Buffer
	for _, p := range products {
		buf.WriteString(formatRecord(p))
		buf.WriteByte('\n')
	}

	if err := os.WriteFile(r.path, buf.Bytes(), 0o644); err != nil {
		r.logger.Error().Err(err).Msg("failed to write inventory file")
		return model.NewIOError(model.ErrCodeStoreWrite, "failed to write inventory file "+r.path, err)
	}

	return nil
}

func formatRecord(p model.Product) string {
	return strings.Join([]string{
		p.Name,
		p.Brand,
		strconv.Itoa(p.StockQuantity),
		model.FormatDecimal(p.CostPrice),
		p.Origin,
	}, fieldDelimiter+" ")
}

func parseRecords(data []byte) ([]model.Product, error) {
	var products []model.Product

	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for scanner.Scan() {
		lineNo++

		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		p, err := parseRecord(line)
		if err != nil {
			return nil, &model.DomainError{
				Kind:    model.KindIO,
				Code:    model.ErrCodeCorruptRecord,
				Message: fmt.Sprintf("invalid inventory record on line %d", lineNo),
				Err:     err,
			}
		}
		products = append(products, p)
	}

	if err := scanner.Err(); err != nil {
		return nil, model.NewIOError(model.ErrCodeStoreRead, "failed to scan inventory file", err)
	}

	return products, nil
}

func parseRecord(line string) (model.Product, error) {
	fields := strings.Split(line, fieldDelimiter)
	if len(fields) != recordFields {
		return model.Product{}, fmt.Errorf("expected %d fields, got %d", recordFields, len(fields))
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	qty, err := strconv.Atoi(fields[2])
	if err != nil {
		return model.Product{}, fmt.Errorf("invalid stock quantity %q: %w", fields[2], err)
	}
	if qty < 0 {
		return model.Product{}, fmt.Errorf("negative stock quantity %d", qty)
	}
	if qty > model.MaxStockQuantity {
		return model.Product{}, fmt.Errorf("stock quantity %d exceeds maximum %d", qty, model.MaxStockQuantity)
	}

	cost, err := decimal.NewFromString(fields[3])
	if err != nil {
		return model.Product{}, fmt.Errorf("invalid cost price %q: %w", fields[3], err)
	}
	if cost.IsNegative() {
		return model.Product{}, fmt.Errorf("negative cost price %s", cost)
	}

	return model.Product{
		Name:          fields[0],
		Brand:         fields[1],
		StockQuantity: qty,
		CostPrice:     cost,
		Origin:        fields[4],
	}, nil
}

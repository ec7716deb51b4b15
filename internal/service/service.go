package service

import (
	"context"
	"fmt"

	"wecare/internal/document"
	"wecare/internal/model"
	"wecare/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// RestockService defines operations for receiving stock from suppliers.
type RestockService interface {
	// ValidateLine checks a single restock line against the inventory.
	ValidateLine(inv *model.Inventory, line model.RestockLine) error

	// Restock applies the batch to the inventory, writes a purchase form and
	// persists the inventory.
	Restock(ctx context.Context, inv *model.Inventory, batch model.RestockBatch) (*Receipt, error)
}

// SaleService defines operations for selling to customers.
type SaleService interface {
	// Available returns the stock of a product minus the units claimed by
	// the pending lines of the same batch.
	Available(inv *model.Inventory, pending []model.SaleLine, index int) (int, error)

	// ValidateLine checks a sale line against the stock left after the
	// pending lines of the same batch.
	ValidateLine(inv *model.Inventory, pending []model.SaleLine, line model.SaleLine) (*model.SaleCheck, error)

	// Sell applies the batch to the inventory, writes an invoice and persists
	// the inventory.
	Sell(ctx context.Context, inv *model.Inventory, batch model.SaleBatch) (*Receipt, error)
}

// Receipt describes a committed batch.
type Receipt struct {
	Reference uuid.UUID
	Path      string
	Document  *document.Document
}

// recorder writes the document for a committed batch and then saves the inventory.
type recorder struct {
	repo   repository.ProductRepository
	writer document.Writer
}

// record runs after the inventory has been mutated. Failures here do not
// roll the mutation back: if the document cannot be written nothing is saved,
// and if the save fails the receipt is still returned alongside the error.
func (r *recorder) record(ctx context.Context, inv *model.Inventory, doc *document.Document, logger zerolog.Logger) (*Receipt, error) {
	path, err := r.writer.Write(ctx, doc)
	if err != nil {
		logger.Error().
			Err(err).
			Str("reference", doc.ID.String()).
			Msg("failed to write document, inventory changes were not saved")
		return nil, fmt.Errorf("failed to write %s: %w", doc.Kind, err)
	}

	receipt := &Receipt{
		Reference: doc.ID,
		Path:      path,
		Document:  doc,
	}

	if err := r.repo.Save(ctx, inv); err != nil {
		logger.Error().
			Err(err).
			Str("reference", doc.ID.String()).
			Str("file", path).
			Msg("document written but inventory could not be saved")
		return receipt, fmt.Errorf("failed to save inventory: %w", err)
	}

	return receipt, nil
}

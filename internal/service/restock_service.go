package service

import (
	"context"
	"fmt"

	"wecare/internal/document"
	"wecare/internal/model"
	"wecare/internal/repository"
	"wecare/internal/validator"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// restockService implements RestockService.
type restockService struct {
	recorder
	validator validator.Validator
	logger    zerolog.Logger
}

// NewRestockService creates a new restock service.
func NewRestockService(
	repo repository.ProductRepository,
	writer document.Writer,
	v validator.Validator,
	logger zerolog.Logger,
) RestockService {
	return &restockService{
		recorder:  recorder{repo: repo, writer: writer},
		validator: v,
		logger:    logger.With().Str("service", "restock").Logger(),
	}
}

// ValidateLine checks a single restock line against the inventory.
func (s *restockService) ValidateLine(inv *model.Inventory, line model.RestockLine) error {
	return s.validateLine(inv, nil, line)
}

// validateLine checks line after the units that pending lines already add
// to the same product.
func (s *restockService) validateLine(inv *model.Inventory, pending []model.RestockLine, line model.RestockLine) error {
	p, err := inv.Get(line.Index)
	if err != nil {
		return err
	}

	if line.Quantity < 1 {
		return model.ErrInvalidQuantity
	}

	headroom := model.MaxStockQuantity - p.StockQuantity
	for _, pl := range pending {
		if pl.Index == line.Index {
			headroom -= pl.Quantity
		}
	}
	if line.Quantity > headroom {
		return model.ErrStockLimit
	}

	if line.NewCost != nil && !line.NewCost.IsPositive() {
		return model.ErrInvalidCost
	}

	return nil
}

// Restock applies the batch to the inventory, writes a purchase form and
// persists the inventory.
func (s *restockService) Restock(ctx context.Context, inv *model.Inventory, batch model.RestockBatch) (*Receipt, error) {
	if len(batch.Lines) == 0 {
		s.logger.Debug().Str("supplier", batch.Supplier).Msg("empty restock batch")
		return nil, model.ErrEmptyBatch
	}

	if err := s.validator.Validate(batch); err != nil {
		s.logger.Warn().Err(err).Msg("invalid restock batch")
		return nil, err
	}

	for i, line := range batch.Lines {
		if err := s.validateLine(inv, batch.Lines[:i], line); err != nil {
			s.logger.Warn().
				Int("line", i+1).
				Int("product_index", line.Index).
				Err(err).
				Msg("invalid restock line")
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
	}

	doc := document.New(document.PurchaseForm, batch.Supplier)

	for _, line := range batch.Lines {
		p, _ := inv.Get(line.Index)

		// A new cost replaces the stored cost outright.
		if line.NewCost != nil {
			p.CostPrice = *line.NewCost
		}

		doc.AddLine(document.Line{
			Name:     p.Name,
			Brand:    p.Brand,
			Quantity: line.Quantity,
			Price:    p.CostPrice,
			Amount:   p.CostPrice.Mul(decimal.NewFromInt(int64(line.Quantity))),
		})

		p.StockQuantity += line.Quantity

		s.logger.Debug().
			Int("product_index", line.Index).
			Int("added", line.Quantity).
			Int("stock", p.StockQuantity).
			Str("cost_price", model.FormatDecimal(p.CostPrice)).
			Msg("stock received")
	}

	receipt, err := s.record(ctx, inv, doc, s.logger)
	if err != nil {
		return receipt, err
	}

	s.logger.Info().
		Str("reference", receipt.Reference.String()).
		Str("supplier", batch.Supplier).
		Int("line_count", len(batch.Lines)).
		Str("total", doc.Total().StringFixed(2)).
		Str("file", receipt.Path).
		Msg("restock recorded successfully")

	return receipt, nil
}

package service

import (
	"context"
	"fmt"

	"wecare/internal/document"
	"wecare/internal/model"
	"wecare/internal/pricing"
	"wecare/internal/repository"
	"wecare/internal/validator"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// saleService implements SaleService.
type saleService struct {
	recorder
	validator validator.Validator
	logger    zerolog.Logger
}

// NewSaleService creates a new sale service.
func NewSaleService(
	repo repository.ProductRepository,
	writer document.Writer,
	v validator.Validator,
	logger zerolog.Logger,
) SaleService {
	return &saleService{
		recorder:  recorder{repo: repo, writer: writer},
		validator: v,
		logger:    logger.With().Str("service", "sale").Logger(),
	}
}

// Available returns the units of a product not yet claimed by pending lines.
func (s *saleService) Available(inv *model.Inventory, pending []model.SaleLine, index int) (int, error) {
	p, err := inv.Get(index)
	if err != nil {
		return 0, err
	}
	return p.StockQuantity - reserved(pending, index), nil
}

// ValidateLine checks that the paid quantity plus its free units fit in the
// product's stock. Units already claimed by pending lines for the same
// product are subtracted first, so a batch can never oversell.
func (s *saleService) ValidateLine(inv *model.Inventory, pending []model.SaleLine, line model.SaleLine) (*model.SaleCheck, error) {
	p, err := inv.Get(line.Index)
	if err != nil {
		return nil, err
	}

	if line.Quantity < 1 {
		return nil, model.ErrInvalidQuantity
	}

	check := &model.SaleCheck{
		Paid:      line.Quantity,
		Free:      pricing.FreeUnits(line.Quantity),
		Required:  pricing.TotalUnitsConsumed(line.Quantity),
		Available: p.StockQuantity - reserved(pending, line.Index),
	}

	if check.Required > check.Available {
		return check, &model.InsufficientStockError{
			Index:     line.Index,
			Paid:      check.Paid,
			Free:      check.Free,
			Required:  check.Required,
			Available: check.Available,
		}
	}

	return check, nil
}

// Sell applies the batch to the inventory, writes an invoice and persists
// the inventory. Every line is validated before any stock is touched.
func (s *saleService) Sell(ctx context.Context, inv *model.Inventory, batch model.SaleBatch) (*Receipt, error) {
	if len(batch.Lines) == 0 {
		s.logger.Debug().Str("customer", batch.CustomerName).Msg("empty sale batch")
		return nil, model.ErrEmptyBatch
	}

	if err := s.validator.Validate(batch); err != nil {
		s.logger.Warn().Err(err).Msg("invalid sale batch")
		return nil, err
	}

	for i, line := range batch.Lines {
		if _, err := s.ValidateLine(inv, batch.Lines[:i], line); err != nil {
			s.logger.Warn().
				Int("line", i+1).
				Int("product_index", line.Index).
				Int("quantity", line.Quantity).
				Err(err).
				Msg("invalid sale line")
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
	}

	doc := document.New(document.Invoice, batch.CustomerName)
	doc.Phone = batch.Phone

	for _, line := range batch.Lines {
		p, _ := inv.Get(line.Index)

		price := pricing.SellingPrice(p.CostPrice)
		free := pricing.FreeUnits(line.Quantity)

		doc.AddLine(document.Line{
			Name:     p.Name,
			Brand:    p.Brand,
			Quantity: line.Quantity,
			Free:     free,
			Price:    price,
			Amount:   price.Mul(decimal.NewFromInt(int64(line.Quantity))),
		})

		p.StockQuantity -= pricing.TotalUnitsConsumed(line.Quantity)

		s.logger.Debug().
			Int("product_index", line.Index).
			Int("paid", line.Quantity).
			Int("free", free).
			Int("stock", p.StockQuantity).
			Msg("stock sold")
	}

	if batch.Shipping {
		doc.ShippingFee = pricing.ShippingFee
	}

	receipt, err := s.record(ctx, inv, doc, s.logger)
	if err != nil {
		return receipt, err
	}

	s.logger.Info().
		Str("reference", receipt.Reference.String()).
		Int("line_count", len(batch.Lines)).
		Bool("shipping", batch.Shipping).
		Str("total", doc.Total().StringFixed(2)).
		Str("file", receipt.Path).
		Msg("sale recorded successfully")

	return receipt, nil
}

// reserved sums the paid and free units that pending lines take from a product.
func reserved(pending []model.SaleLine, index int) int {
	n := 0
	for _, pl := range pending {
		if pl.Index == index {
			n += pricing.TotalUnitsConsumed(pl.Quantity)
		}
	}
	return n
}

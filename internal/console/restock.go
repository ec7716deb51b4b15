package console

import (
	"context"
	"errors"

	"wecare/internal/model"

	"github.com/shopspring/decimal"
)

var minCost = decimal.RequireFromString("0.01")

// runRestock collects a supplier batch and commits it.
func (a *App) runRestock(ctx context.Context) error {
	a.printSection("ADD NEW STOCK")

	supplier, err := a.prompter.Text(ctx, "Enter supplier name: ")
	if err != nil {
		return err
	}

	batch := model.RestockBatch{Supplier: supplier}

	for {
		a.prompter.Println("\nCurrent products:")
		for i, p := range a.inv.Products() {
			a.prompter.Printf("%d. %s (%s) - Stock: %d - Cost: %s\n",
				i+1, p.Name, p.Brand, p.StockQuantity, model.FormatDecimal(p.CostPrice))
		}

		line, err := a.readRestockLine(ctx)
		if err != nil {
			return err
		}

		if err := a.restock.ValidateLine(a.inv, line); err != nil {
			a.prompter.Println(err.Error())
			continue
		}
		batch.Lines = append(batch.Lines, line)

		more, err := a.prompter.Confirm(ctx, "Add more items? (y/n): ")
		if err != nil {
			return err
		}
		if !more {
			break
		}
	}

	receipt, err := a.restock.Restock(ctx, a.inv, batch)
	if errors.Is(err, model.ErrEmptyBatch) {
		a.prompter.Println("No items were added to stock.")
		return nil
	}
	if err != nil {
		if receipt != nil {
			a.prompter.Printf("Purchase form saved to %s, but the inventory was not updated on disk.\n", receipt.Path)
		}
		return err
	}

	a.prompter.Println("Stock update completed successfully!")
	return nil
}

func (a *App) readRestockLine(ctx context.Context) (model.RestockLine, error) {
	var line model.RestockLine

	index, err := a.prompter.IntRange(ctx, "\nEnter product ID to restock: ", 1, a.inv.Len())
	if err != nil {
		return line, err
	}
	line.Index = index

	quantity, err := a.prompter.IntAtLeast(ctx, "Enter quantity to add: ", 1)
	if err != nil {
		return line, err
	}
	line.Quantity = quantity

	update, err := a.prompter.Confirm(ctx, "Update cost price? (y/n): ")
	if err != nil {
		return line, err
	}
	if update {
		cost, err := a.prompter.Decimal(ctx, "Enter new cost price: ", minCost)
		if err != nil {
			return line, err
		}
		line.NewCost = &cost
	}

	return line, nil
}

package console

import (
	"context"
	"errors"
	"strings"

	"wecare/internal/model"
	"wecare/internal/pricing"
)

// runSale collects a customer batch, asks about shipping and commits it.
func (a *App) runSale(ctx context.Context) error {
	a.printSection("PROCESS SALE")

	customer, err := a.prompter.Text(ctx, "Enter customer name: ")
	if err != nil {
		return err
	}
	phone, err := a.prompter.Text(ctx, "Enter phone number: ")
	if err != nil {
		return err
	}

	batch := model.SaleBatch{CustomerName: customer, Phone: phone}

	for {
		a.prompter.Println("\nProducts available:")
		for i, p := range a.inv.Products() {
			a.prompter.Printf("%d. %s (%s) - Price: $%s - Stock: %d\n",
				i+1, p.Name, p.Brand, pricing.SellingPrice(p.CostPrice).StringFixed(2), p.StockQuantity)
		}

		index, err := a.prompter.IntRange(ctx, "\nEnter product ID to sell: ", 1, a.inv.Len())
		if err != nil {
			return err
		}

		available, err := a.sale.Available(a.inv, batch.Lines, index)
		if err != nil {
			a.prompter.Println(err.Error())
			continue
		}
		a.prompter.Printf("Available stock: %d\n", available)

		quantity, err := a.prompter.IntAtLeast(ctx, "Enter quantity to sell: ", 1)
		if err != nil {
			return err
		}

		line := model.SaleLine{Index: index, Quantity: quantity}
		check, err := a.sale.ValidateLine(a.inv, batch.Lines, line)
		if errors.Is(err, model.ErrInsufficientStock) {
			a.prompter.Println(err.Error())
			a.prompter.Println("Please select a different quantity or product.")
			continue
		}
		if err != nil {
			a.prompter.Println(err.Error())
			continue
		}

		batch.Lines = append(batch.Lines, line)
		a.prompter.Printf("Customer gets %d free items with this purchase!\n", check.Free)

		more, err := a.prompter.Confirm(ctx, "Add more items? (y/n): ")
		if err != nil {
			return err
		}
		if !more {
			break
		}
	}

	shipping, err := a.prompter.Line(ctx, "\nDo you want your products to be shipped? (Y/N): ")
	if err != nil {
		return err
	}
	batch.Shipping = strings.EqualFold(strings.TrimSpace(shipping), "Y")

	receipt, err := a.sale.Sell(ctx, a.inv, batch)
	if errors.Is(err, model.ErrEmptyBatch) {
		a.prompter.Println("No items were sold.")
		return nil
	}
	if err != nil {
		if receipt != nil {
			a.prompter.Printf("Invoice saved to %s, but the inventory was not updated on disk.\n", receipt.Path)
		}
		return err
	}

	a.prompter.Println("Sale completed successfully!")
	return nil
}

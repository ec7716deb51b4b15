package console

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"wecare/internal/document"
	"wecare/internal/model"
	"wecare/internal/pricing"
)

func (a *App) printBanner() {
	now := a.now()

	a.prompter.Printf("\n\n\n")
	a.prompter.Println(strings.Repeat("\t", 5) + a.store.Name)
	a.prompter.Printf("\n\n")
	a.prompter.Println(strings.Repeat("\t", 3) + a.store.Address)
	a.prompter.Printf("\n\n")
	a.prompter.Println(strings.Repeat("-", 80))
	a.prompter.Printf("%sWelcome to the system! %s %d:%d:%d\n",
		strings.Repeat("\t", 3), document.FormatDate(now), now.Hour(), now.Minute(), now.Second())
	a.prompter.Println(strings.Repeat("-", 80))
	a.prompter.Printf("\n\n")
	a.prompter.Println("Buy 3 Get 1 Free on all products!")
	a.prompter.Printf("\n\n")
}

// printInventory lists every product with its cost and selling price.
func (a *App) printInventory() {
	a.prompter.Println(strings.Repeat("#", 80))

	tw := tabwriter.NewWriter(a.prompter.out, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tName\tBrand\tQty\tCost Price\tSelling Price\tOrigin")
	for i, p := range a.inv.Products() {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\t%s\t%s\n",
			i+1, p.Name, p.Brand, p.StockQuantity,
			model.FormatDecimal(p.CostPrice), pricing.SellingPrice(p.CostPrice).StringFixed(2), p.Origin)
	}
	tw.Flush()

	a.prompter.Println(strings.Repeat("#", 80))
}

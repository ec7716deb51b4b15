// Package console runs the interactive menu for restocking and selling.
package console

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"wecare/internal/middleware"
	"wecare/internal/model"
	"wecare/internal/service"

	"github.com/rs/zerolog"
)

// StoreInfo identifies the shop in the startup banner.
type StoreInfo struct {
	Name    string
	Address string
}

type menuItem struct {
	name  string // used in logs
	label string // used in error reports
	op    middleware.Operation
}

// App is the interactive menu loop over a loaded inventory.
type App struct {
	prompter *Prompter
	inv      *model.Inventory
	restock  service.RestockService
	sale     service.SaleService
	store    StoreInfo
	now      func() time.Time
	logger   zerolog.Logger
	items    map[int]menuItem
}

// NewApp creates the console application.
func NewApp(
	prompter *Prompter,
	inv *model.Inventory,
	restock service.RestockService,
	sale service.SaleService,
	store StoreInfo,
	logger zerolog.Logger,
) *App {
	a := &App{
		prompter: prompter,
		inv:      inv,
		restock:  restock,
		sale:     sale,
		store:    store,
		now:      time.Now,
		logger:   logger.With().Str("component", "console").Logger(),
	}

	mws := []middleware.Middleware{
		middleware.Logging(a.logger),
		middleware.Recovery(a.logger),
	}

	a.items = map[int]menuItem{
		1: {name: "restock", label: "restocking process", op: middleware.Chain("restock", a.runRestock, mws...)},
		2: {name: "sale", label: "sales process", op: middleware.Chain("sale", a.runSale, mws...)},
	}

	return a
}

// Run shows the banner and inventory, then serves the menu until the user
// exits, input ends or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	a.printBanner()
	a.printInventory()

	for {
		a.printMenu()

		raw, err := a.prompter.Line(ctx, "Enter option number: ")
		if errors.Is(err, model.ErrInputClosed) {
			a.logger.Info().Msg("input closed, leaving menu")
			return nil
		}
		if err != nil {
			return err
		}

		option, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			a.prompter.Println("Invalid selection. Please try again.")
			continue
		}

		if option == 3 {
			a.prompter.Println("Thank you for using WeCare Beauty Products Management")
			return nil
		}

		item, ok := a.items[option]
		if !ok {
			a.prompter.Println("Please select a valid option (1-3)")
			continue
		}

		if err := item.op(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			a.report(item, err)
		}
	}
}

// report tells the user why an operation stopped.
func (a *App) report(item menuItem, err error) {
	switch {
	case errors.Is(err, middleware.ErrPanic):
		a.prompter.Println("An error occurred while processing your request")
		a.prompter.Println("Please try again")
	case errors.Is(err, model.ErrInputClosed):
		a.prompter.Printf("\nInput closed, %s abandoned.\n", item.label)
	default:
		a.prompter.Printf("Error during %s: %v\n", item.label, err)
	}
}

func (a *App) printMenu() {
	a.prompter.Println("\n" + strings.Repeat("=", 30))
	a.prompter.Println("MAIN MENU")
	a.prompter.Println(strings.Repeat("=", 30))
	a.prompter.Println("1. Add New Stock")
	a.prompter.Println("2. Process Sale")
	a.prompter.Println("3. Exit Program")
}

func (a *App) printSection(title string) {
	a.prompter.Println("\n" + strings.Repeat("=", 40))
	a.prompter.Println(title)
	a.prompter.Println(strings.Repeat("=", 40))
}

// Package document builds, renders and writes invoices and purchase forms.
package document

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind identifies the type of document.
type Kind int

const (
	// Invoice is issued to a customer for a sale.
	Invoice Kind = iota
	// PurchaseForm records stock received from a supplier.
	PurchaseForm
)

// Prefix returns the document number and file name prefix.
func (k Kind) Prefix() string {
	if k == PurchaseForm {
		return "PO"
	}
	return "INV"
}

func (k Kind) String() string {
	if k == PurchaseForm {
		return "purchase_form"
	}
	return "invoice"
}

// Line is one rendered row of a document.
type Line struct {
	Name     string
	Brand    string
	Quantity int
	Free     int             // invoices only
	Price    decimal.Decimal // selling price for invoices, cost price for purchase forms
	Amount   decimal.Decimal
}

// Document is a committed transaction ready to be rendered.
type Document struct {
	ID           uuid.UUID
	Kind         Kind
	Number       string // assigned by the Writer
	Counterparty string
	Phone        string
	IssuedAt     time.Time
	Lines        []Line
	ShippingFee  decimal.Decimal
}

// New creates an empty document of the given kind.
func New(kind Kind, counterparty string) *Document {
	return &Document{
		ID:           uuid.New(),
		Kind:         kind,
		Counterparty: counterparty,
	}
}

// AddLine appends a row.
func (d *Document) AddLine(line Line) {
	d.Lines = append(d.Lines, line)
}

// Subtotal returns the sum of line amounts.
func (d *Document) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range d.Lines {
		total = total.Add(l.Amount)
	}
	return total
}

// Total returns the subtotal plus any shipping fee.
func (d *Document) Total() decimal.Decimal {
	return d.Subtotal().Add(d.ShippingFee)
}

// HasShipping reports whether a shipping fee was charged.
func (d *Document) HasShipping() bool {
	return d.ShippingFee.IsPositive()
}

var nameReplacer = strings.NewReplacer(" ", "_", "/", "_", "\\", "_")

// FileName returns <NUMBER>_<counterparty>_<Y-M-D>_<HMS>.txt with spaces and
// path separators in the counterparty replaced by underscores and unpadded
// date and time parts.
func FileName(d *Document) string {
	t := d.IssuedAt
	return fmt.Sprintf("%s_%s_%s_%d%d%d.txt",
		d.Number,
		nameReplacer.Replace(d.Counterparty),
		FormatDate(t),
		t.Hour(), t.Minute(), t.Second(),
	)
}

// FormatDate formats t as an unpadded Y-M-D date.
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%d-%d-%d", t.Year(), int(t.Month()), t.Day())
}

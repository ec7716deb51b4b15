package document

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	ruleWidth = 80

	invoiceRowFormat  = "%-15s %-15s %-5s %-5s %-10s %-10s\n"
	purchaseRowFormat = "%-15s %-15s %-5s %-10s %-10s\n"
	summaryRowFormat  = "%-45s %s\n"
)

// Renderer turns documents into the fixed-width text layout.
type Renderer struct {
	Header       string
	StoreAddress string
}

// NewRenderer creates a renderer that prints header verbatim at the top of
// every document.
func NewRenderer(header, storeAddress string) *Renderer {
	return &Renderer{
		Header:       header,
		StoreAddress: storeAddress,
	}
}

// Render returns the document text as written to disk and shown on screen.
func (r *Renderer) Render(d *Document) []byte {
	var b bytes.Buffer

	heavy := strings.Repeat("=", ruleWidth)
	light := strings.Repeat("-", ruleWidth)

	b.WriteString("\t \t \t \t " + r.Header + "\n")
	if d.Kind == PurchaseForm {
		b.WriteString("\t \t \t \t PURCHASE FORM\n")
	} else {
		b.WriteString("\t \t " + r.StoreAddress + "\n")
	}
	b.WriteString(heavy + "\n\n")

	if d.Kind == PurchaseForm {
		b.WriteString("Form Number: " + d.Number + "\n")
		b.WriteString("Date: " + FormatDate(d.IssuedAt) + "\n")
		b.WriteString("Supplier: " + d.Counterparty + "\n\n")
	} else {
		b.WriteString("Invoice Number: " + d.Number + "\n")
		b.WriteString("Date: " + FormatDate(d.IssuedAt) + "\n")
		b.WriteString("Customer Name: " + d.Counterparty + "\n")
		b.WriteString("Phone Number: " + d.Phone + "\n\n")
	}

	b.WriteString(light + "\n")
	if d.Kind == PurchaseForm {
		fmt.Fprintf(&b, purchaseRowFormat, "Product", "Brand", "Qty", "Cost Price", "Amount")
	} else {
		fmt.Fprintf(&b, invoiceRowFormat, "Product", "Brand", "Qty", "Free", "Price", "Amount")
	}
	b.WriteString(light + "\n")

	for _, l := range d.Lines {
		if d.Kind == PurchaseForm {
			fmt.Fprintf(&b, purchaseRowFormat,
				l.Name, l.Brand, strconv.Itoa(l.Quantity), money(l.Price), money(l.Amount))
		} else {
			fmt.Fprintf(&b, invoiceRowFormat,
				l.Name, l.Brand, strconv.Itoa(l.Quantity), strconv.Itoa(l.Free), money(l.Price), money(l.Amount))
		}
	}

	if d.HasShipping() {
		fmt.Fprintf(&b, summaryRowFormat, "Shipping Cost:", money(d.ShippingFee))
	}

	b.WriteString(light + "\n")
	fmt.Fprintf(&b, summaryRowFormat, "Total Amount:", money(d.Total()))
	b.WriteString(heavy + "\n")

	if d.Kind == Invoice {
		b.WriteString("\nThank you for shopping with us!\n")
		b.WriteString("Buy 3 Get 1 Free on all products!\n")
	}

	return b.Bytes()
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

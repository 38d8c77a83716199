package pdf

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"ledger-assistant/internal/core"
)

// DefaultStoreName heads invoices of stores without a configured name.
const DefaultStoreName = "My Shop"

// Sheet is the printable view of an invoice. Every amount is already
// rounded half-up to two places and formatted.
type Sheet struct {
	Number     string
	Date       string
	StoreName  string
	StoreLine  string
	Customer   string
	Rows       []SheetRow
	Subtotal   string
	GSTTotal   string
	GrandTotal string
	Terms      string
}

// SheetRow is one printed line item.
type SheetRow struct {
	Index       int
	Description string
	Price       string
	GSTPercent  string
	GSTAmount   string
	LineTotal   string
}

// InvoiceNumber derives the invoice number from the issue time.
func InvoiceNumber(now time.Time) string {
	return now.Format("INV20060102-150405")
}

// BuildSheet validates req and lays it out for printing at now.
func BuildSheet(req core.InvoiceRequest, now time.Time) (Sheet, error) {
	customer := strings.TrimSpace(req.Customer.Name)
	if customer == "" {
		return Sheet{}, fmt.Errorf("customer name required: %w", core.ErrInvalidInput)
	}
	if len(req.Items) == 0 {
		return Sheet{}, fmt.Errorf("at least one item required: %w", core.ErrInvalidInput)
	}

	s := Sheet{
		Number:    InvoiceNumber(now),
		Date:      now.Format("2006-01-02"),
		StoreName: strings.TrimSpace(req.Business.StoreName),
		StoreLine: storeLine(req.Business),
		Customer:  customer,
		Terms:     strings.TrimSpace(req.PaymentTerms),
	}
	if s.StoreName == "" {
		s.StoreName = DefaultStoreName
	}

	for i, it := range req.Items {
		desc := strings.TrimSpace(it.Description)
		if desc == "" {
			desc = "-"
		}
		s.Rows = append(s.Rows, SheetRow{
			Index:       i + 1,
			Description: desc,
			Price:       rs(it.Price),
			GSTPercent:  it.GSTPercent.Round(2).StringFixed(2) + "%",
			GSTAmount:   rs(it.Tax()),
			LineTotal:   rs(it.LineTotal()),
		})
	}

	totals := core.ComputeTotals(req.Items)
	s.Subtotal = rs(totals.Subtotal)
	s.GSTTotal = rs(totals.GST)
	s.GrandTotal = rs(totals.GrandTotal)
	return s, nil
}

func storeLine(b core.Settings) string {
	var parts []string
	if v := strings.TrimSpace(b.StoreAddress); v != "" {
		parts = append(parts, v)
	}
	if v := strings.TrimSpace(b.StoreGST); v != "" {
		parts = append(parts, "GSTIN: "+v)
	}
	if v := strings.TrimSpace(b.StoreContact); v != "" {
		parts = append(parts, "Contact: "+v)
	}
	return strings.Join(parts, "  |  ")
}

// rs rounds half away from zero, which is half-up for the non-negative
// amounts printed on invoices.
func rs(d decimal.Decimal) string {
	return "Rs. " + d.Round(2).StringFixed(2)
}

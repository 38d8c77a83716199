package core

import (
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// InvoiceItem is one billed line.
type InvoiceItem struct {
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	GSTPercent  decimal.Decimal `json:"gstPercent"`
}

// Tax is the GST amount on the line.
func (it InvoiceItem) Tax() decimal.Decimal {
	return it.Price.Mul(it.GSTPercent).Div(hundred)
}

// LineTotal is price plus tax.
func (it InvoiceItem) LineTotal() decimal.Decimal {
	return it.Price.Add(it.Tax())
}

// InvoiceTotals are the unrounded sums over a set of items.
type InvoiceTotals struct {
	Subtotal   decimal.Decimal
	GST        decimal.Decimal
	GrandTotal decimal.Decimal
}

// ComputeTotals sums prices and taxes.
func ComputeTotals(items []InvoiceItem) InvoiceTotals {
	var t InvoiceTotals
	for _, it := range items {
		t.Subtotal = t.Subtotal.Add(it.Price)
		t.GST = t.GST.Add(it.Tax())
	}
	t.GrandTotal = t.Subtotal.Add(t.GST)
	return t
}

// InvoiceCustomer is the billed party.
type InvoiceCustomer struct {
	Name string `json:"name" validate:"required"`
}

// InvoiceRequest is the payload sent to the document generator.
type InvoiceRequest struct {
	Customer     InvoiceCustomer `json:"customer"`
	Items        []InvoiceItem   `json:"items" validate:"required,min=1"`
	PaymentTerms string          `json:"paymentTerms"`
	Business     Settings        `json:"business"`
}

// Document is a generated or uploaded binary file.
type Document struct {
	Filename    string
	ContentType string
	Data        []byte
}

// InvoiceFilename is the client-side name for a generated invoice.
func InvoiceFilename(now time.Time) string {
	return "invoice_" + now.Format("2006-01-02") + ".pdf"
}

// IngestResult summarizes an uploaded bill turned into payables.
type IngestResult struct {
	Vendor      string          `json:"vendor"`
	Inserted    int             `json:"inserted"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

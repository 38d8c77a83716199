package ingest

import (
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"github.com/shopspring/decimal"

	"ledger-assistant/internal/core"
)

// ExpensePrefix marks ledger products that came from a vendor bill.
const ExpensePrefix = "Expense: "

// Bill is what a vendor invoice says the shop owes.
type Bill struct {
	Vendor string
	Total  decimal.Decimal
	Lines  []BillLine
}

// BillLine is one purchased item.
type BillLine struct {
	Description string
	Amount      decimal.Decimal
}

// ReadBill pulls the vendor, total and line items out of a processed document.
func ReadBill(doc *documentaipb.Document) Bill {
	var b Bill
	for _, entity := range doc.GetEntities() {
		value := strings.TrimSpace(entity.GetMentionText())
		switch entity.GetType() {
		case "supplier_name", "vendor_name":
			if b.Vendor == "" {
				b.Vendor = value
			}
		case "total_amount", "gross_amount":
			if amount, err := moneyValue(entity); err == nil {
				b.Total = amount
			}
		case "line_item":
			if line, ok := readLine(entity); ok {
				b.Lines = append(b.Lines, line)
			}
		}
	}
	return b
}

func readLine(entity *documentaipb.Document_Entity) (BillLine, bool) {
	var line BillLine
	for _, prop := range entity.GetProperties() {
		switch prop.GetType() {
		case "line_item/description":
			line.Description = strings.Join(strings.Fields(prop.GetMentionText()), " ")
		case "line_item/amount":
			if amount, err := moneyValue(prop); err == nil {
				line.Amount = amount
			}
		}
	}
	if line.Description == "" {
		line.Description = strings.Join(strings.Fields(entity.GetMentionText()), " ")
	}
	return line, line.Amount.IsPositive()
}

// moneyValue prefers the normalized money value and falls back to the
// printed text.
func moneyValue(entity *documentaipb.Document_Entity) (decimal.Decimal, error) {
	if m := entity.GetNormalizedValue().GetMoneyValue(); m != nil {
		return decimal.New(m.GetUnits(), 0).Add(decimal.New(int64(m.GetNanos()), -9)), nil
	}
	return parseAmount(entity.GetMentionText())
}

var amountNoise = strings.NewReplacer(" ", "", ",", "", "₹", "", "Rs.", "", "Rs", "", "INR", "", "rs", "")

func parseAmount(s string) (decimal.Decimal, error) {
	cleaned := amountNoise.Replace(strings.TrimSpace(s))
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("empty amount value")
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("unable to parse amount %q: %w", s, err)
	}
	return d, nil
}

// Payables turns a bill into expense-payable entries owed to the vendor,
// one per line item, or one for the whole total when no lines were read.
func (b Bill) Payables(now time.Time) []core.LedgerEntry {
	entry := func(desc string, amount decimal.Decimal) core.LedgerEntry {
		return core.LedgerEntry{
			Product:  ExpensePrefix + desc,
			Revenue:  amount.Round(2).Neg(),
			Credit:   true,
			Creditor: b.Vendor,
			Date:     now,
		}
	}

	var out []core.LedgerEntry
	for _, line := range b.Lines {
		desc := line.Description
		if desc == "" {
			desc = "Item"
		}
		out = append(out, entry(desc, line.Amount))
	}
	if len(out) == 0 && b.Total.IsPositive() {
		desc := "Invoice"
		if b.Vendor != "" {
			desc = "Invoice from " + b.Vendor
		}
		out = append(out, entry(desc, b.Total))
	}
	return out
}

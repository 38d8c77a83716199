package reports

import (
	"strconv"
	"strings"

	"ledger-assistant/internal/core"
	"ledger-assistant/internal/textparse"
)

// InvoicePreview renders the non-committing invoice summary shown on "preview".
func InvoicePreview(items []core.InvoiceItem, customer string, s core.Settings) string {
	if customer == "" {
		customer = "-"
	}
	lines := []string{"🧾 Invoice Preview", "Store: " + orDash(s.StoreName)}
	var extra []string
	if s.StoreAddress != "" {
		extra = append(extra, "Address: "+s.StoreAddress)
	}
	if s.StoreGST != "" {
		extra = append(extra, "GSTIN: "+s.StoreGST)
	}
	if s.StoreContact != "" {
		extra = append(extra, "Contact: "+s.StoreContact)
	}
	if len(extra) > 0 {
		lines = append(lines, strings.Join(extra, " | "))
	}
	lines = append(lines, "", "Customer: "+customer, "", "Items:")
	if len(items) == 0 {
		lines = append(lines, "(none yet)")
	}
	for i, it := range items {
		lines = append(lines, strconv.Itoa(i+1)+") "+it.Description+
			" — "+textparse.INR(it.Price)+
			" | GST "+it.GSTPercent.String()+"% ("+textparse.INR(it.Tax())+")"+
			" | Line "+textparse.INR(it.LineTotal()))
	}
	t := core.ComputeTotals(items)
	lines = append(lines, "",
		"Subtotal: "+textparse.INR(t.Subtotal),
		"GST: "+textparse.INR(t.GST),
		"Grand Total: "+textparse.INR(t.GrandTotal))
	return strings.Join(lines, "\n")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

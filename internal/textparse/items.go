package textparse

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"ledger-assistant/internal/core"
)

var invoiceItem = regexp.MustCompile(`(?i)^(.+?)[\-\|,]\s*([0-9]+(?:\.[0-9]+)?)\s*[\-\|,]\s*([0-9]+(?:\.[0-9]+)?)%?$`)

// ParseInvoiceItem reads "description - price - gst%". The separators -, |
// and , are interchangeable and the trailing % is optional.
func ParseInvoiceItem(line string) (core.InvoiceItem, bool) {
	m := invoiceItem.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return core.InvoiceItem{}, false
	}
	desc := strings.TrimSpace(m[1])
	if desc == "" {
		return core.InvoiceItem{}, false
	}
	price, err := decimal.NewFromString(m[2])
	if err != nil {
		return core.InvoiceItem{}, false
	}
	gst, err := decimal.NewFromString(m[3])
	if err != nil {
		return core.InvoiceItem{}, false
	}
	return core.InvoiceItem{Description: desc, Price: price, GSTPercent: gst}, true
}

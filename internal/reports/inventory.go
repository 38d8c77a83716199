package reports

import (
	"sort"
	"strings"
	"time"

	"ledger-assistant/internal/core"
	"ledger-assistant/internal/i18n"
	"ledger-assistant/internal/textparse"
)

// ProductUnits is the unit count sold for one product.
type ProductUnits struct {
	Product string
	Units   int
}

// MonthInventory is the month-to-date units-per-product view.
type MonthInventory struct {
	HasEntries bool
	Rows       []ProductUnits
}

// BuildMonthInventory sums units of this month's sales per product, sorted by name.
func BuildMonthInventory(entries []core.LedgerEntry, now time.Time, loc *time.Location) MonthInventory {
	inv := MonthInventory{HasEntries: len(entries) > 0}
	inv.Rows = sumUnits(monthToDate(entries, now, loc), nil, loc)
	sortByName(inv.Rows, func(r ProductUnits) string { return r.Product })
	return inv
}

// Render formats the report; the two empty states are distinct messages.
func (m MonthInventory) Render(l *i18n.Labels) string {
	if !m.HasEntries {
		return l.NoEntries
	}
	if len(m.Rows) == 0 {
		return l.NoSalesThisMonth
	}
	var b strings.Builder
	b.WriteString(l.InventoryTitle + "\n")
	for _, r := range m.Rows {
		b.WriteString("- " + i18n.F(l.UnitsLine, r.Product, r.Units) + "\n")
	}
	b.WriteString("\n" + l.InventoryHint)
	return b.String()
}

// BuildPeriodInventory sums units sold within r, most units first then by name.
func BuildPeriodInventory(entries []core.LedgerEntry, r textparse.DateRange, loc *time.Location) []ProductUnits {
	rows := sumUnits(entries, &r, loc)
	sortByName(rows, func(p ProductUnits) string { return p.Product })
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Units > rows[j].Units })
	return rows
}

func sumUnits(entries []core.LedgerEntry, within *textparse.DateRange, loc *time.Location) []ProductUnits {
	totals := make(map[string]int)
	var order []string
	for _, e := range entries {
		if !e.Revenue.IsPositive() {
			continue
		}
		if within != nil && !within.Contains(e.Date, loc) {
			continue
		}
		key := productKey(e, "Unknown")
		if _, seen := totals[key]; !seen {
			order = append(order, key)
		}
		totals[key] += e.UnitCount()
	}
	rows := make([]ProductUnits, 0, len(order))
	for _, k := range order {
		rows = append(rows, ProductUnits{Product: k, Units: totals[k]})
	}
	return rows
}

// InventoryRows renders period rows for a drill-down view.
func InventoryRows(rows []ProductUnits, l *i18n.Labels) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = i18n.F(l.UnitsLine, r.Product, r.Units)
	}
	return out
}

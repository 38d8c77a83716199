package reports

import (
	"strconv"
	"strings"

	"ledger-assistant/internal/i18n"
	"ledger-assistant/internal/textparse"
)

// DefaultPageSize is the drill-down page size when none is configured.
const DefaultPageSize = 20

// DrillContext identifies which report a drill-down belongs to.
type DrillContext int

const (
	InventoryPeriod DrillContext = iota + 1
	SummaryDay
)

// DrillDown is a materialized row set with a page cursor. Paging never
// re-queries; a new date query builds a new DrillDown.
type DrillDown struct {
	Context  DrillContext
	Range    textparse.DateRange
	Page     int
	PageSize int
	Rows     []string
}

// NewDrillDown pins rows into a view at page 1.
func NewDrillDown(ctx DrillContext, r textparse.DateRange, rows []string, pageSize int) DrillDown {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return DrillDown{Context: ctx, Range: r, Page: 1, PageSize: pageSize, Rows: rows}
}

// TotalPages is ceil(rows/pageSize), never less than one.
func (d DrillDown) TotalPages() int {
	if len(d.Rows) == 0 {
		return 1
	}
	return (len(d.Rows) + d.PageSize - 1) / d.PageSize
}

// Goto moves to page n clamped to [1, TotalPages].
func (d DrillDown) Goto(n int) DrillDown {
	d.Page = min(max(n, 1), d.TotalPages())
	return d
}

func (d DrillDown) Next() DrillDown { return d.Goto(d.Page + 1) }
func (d DrillDown) Prev() DrillDown { return d.Goto(d.Page - 1) }

// PageRows returns the rows on the current page.
func (d DrillDown) PageRows() []string {
	start := (d.Page - 1) * d.PageSize
	if start >= len(d.Rows) {
		return nil
	}
	return d.Rows[start:min(start+d.PageSize, len(d.Rows))]
}

// Render prints the header, the numbered rows of the current page and the
// pager hint when more than one page exists.
func (d DrillDown) Render(l *i18n.Labels) string {
	emoji, title, empty := "📦", l.Inventory, l.NoSalesInPeriod
	if d.Context == SummaryDay {
		emoji, title, empty = "📜", l.Ledger, l.NoTxOnDate
	}
	var b strings.Builder
	b.WriteString(i18n.F(l.DrillDownHeader, emoji, title, d.Range.String(), d.Page, d.TotalPages(), d.PageSize) + "\n")
	rows := d.PageRows()
	if len(d.Rows) == 0 {
		b.WriteString(empty)
	}
	start := (d.Page - 1) * d.PageSize
	for i, row := range rows {
		b.WriteString(strconv.Itoa(start+i+1) + ") " + row + "\n")
	}
	if d.TotalPages() > 1 {
		b.WriteString(l.PagerHint)
	}
	return strings.TrimRight(b.String(), "\n")
}

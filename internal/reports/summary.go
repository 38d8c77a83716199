package reports

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"ledger-assistant/internal/core"
	"ledger-assistant/internal/i18n"
	"ledger-assistant/internal/textparse"
)

// Totals accumulates amounts per bookkeeping bucket. Expenses are absolute.
type Totals struct {
	CashIn         decimal.Decimal
	CreditIn       decimal.Decimal
	ExpensePaid    decimal.Decimal
	ExpensePayable decimal.Decimal
}

// Add books one entry into its bucket.
func (t *Totals) Add(e core.LedgerEntry) {
	switch e.Kind() {
	case core.KindCashSale:
		t.CashIn = t.CashIn.Add(e.Revenue)
	case core.KindCreditSale:
		t.CreditIn = t.CreditIn.Add(e.Revenue)
	case core.KindExpensePaid:
		t.ExpensePaid = t.ExpensePaid.Add(e.Revenue.Abs())
	case core.KindExpensePayable:
		t.ExpensePayable = t.ExpensePayable.Add(e.Revenue.Abs())
	}
}

func (t Totals) Income() decimal.Decimal  { return t.CashIn.Add(t.CreditIn) }
func (t Totals) Expense() decimal.Decimal { return t.ExpensePaid.Add(t.ExpensePayable) }
func (t Totals) Net() decimal.Decimal     { return t.Income().Sub(t.Expense()) }

// DayTotals is one row of the day-wise breakdown.
type DayTotals struct {
	Day string
	Tx  int
	Totals
}

// MonthSummary is the month-to-date cash/credit/expense view.
type MonthSummary struct {
	Month      time.Month
	HasEntries bool
	Totals
	Days []DayTotals
}

// BuildMonthSummary classifies this month's entries and groups them by day,
// newest day first.
func BuildMonthSummary(entries []core.LedgerEntry, now time.Time, loc *time.Location) MonthSummary {
	s := MonthSummary{Month: now.In(loc).Month(), HasEntries: len(entries) > 0}
	byDay := make(map[string]*DayTotals)
	for _, e := range monthToDate(entries, now, loc) {
		day := textparse.YMD(e.Date, loc)
		d, ok := byDay[day]
		if !ok {
			d = &DayTotals{Day: day}
			byDay[day] = d
		}
		d.Tx++
		d.Add(e)
		s.Add(e)
	}
	for _, d := range byDay {
		s.Days = append(s.Days, *d)
	}
	sort.Slice(s.Days, func(i, j int) bool { return s.Days[i].Day > s.Days[j].Day })
	return s
}

// Render formats the summary with its day-wise section.
func (s MonthSummary) Render(l *i18n.Labels) string {
	if !s.HasEntries {
		return l.NoEntries
	}
	r := textparse.Rupees
	var b strings.Builder
	b.WriteString(i18n.F(l.SummaryTitle, l.Month(s.Month)) + "\n")
	b.WriteString(l.TotalRevenue + " : " + r(s.Income()) + "\n")
	b.WriteString(l.TotalExpense + " : " + r(s.Expense()) + "\n")
	b.WriteString(l.NetProfit + " : " + r(s.Net()) + "\n")
	b.WriteString("————————\n")
	b.WriteString(l.RevenueCash + " : " + r(s.CashIn) + "\n")
	b.WriteString(l.RevenueCredit + " : " + r(s.CreditIn) + "\n")
	b.WriteString("————————\n")
	b.WriteString(l.ExpenseCash + " : " + r(s.ExpensePaid) + "\n")
	b.WriteString(l.ExpensePayable + " : " + r(s.ExpensePayable) + "\n")
	b.WriteString("\n— — — — — — — —\n" + l.DayWise + "\n")
	for _, d := range s.Days {
		b.WriteString(i18n.F(l.DayLine, d.Day, d.Tx, r(d.CashIn), r(d.CreditIn), r(d.ExpensePaid), r(d.ExpensePayable), r(d.Net())) + "\n")
	}
	b.WriteString("\n" + l.SummaryHint)
	return b.String()
}

// BuildDayRows lists every entry on day in time order as
// "HH:MM [units× ]product amount (tag)".
func BuildDayRows(entries []core.LedgerEntry, day string, loc *time.Location, l *i18n.Labels) []string {
	var onDay []core.LedgerEntry
	for _, e := range entries {
		if textparse.YMD(e.Date, loc) == day {
			onDay = append(onDay, e)
		}
	}
	sort.SliceStable(onDay, func(i, j int) bool { return onDay[i].Date.Before(onDay[j].Date) })

	rows := make([]string, len(onDay))
	for i, e := range onDay {
		var b strings.Builder
		b.WriteString(textparse.HM(e.Date, loc) + " ")
		if n := e.UnitCount(); n > 0 {
			b.WriteString(strconv.Itoa(n) + "× ")
		}
		b.WriteString(productKey(e, l.DefaultSaleLabel) + " ")
		b.WriteString(textparse.SignedRupees(e.Revenue))
		b.WriteString(" (" + dayTag(e) + ")")
		rows[i] = b.String()
	}
	return rows
}

func dayTag(e core.LedgerEntry) string {
	withParty := func(tag string) string {
		if e.Creditor != "" {
			return tag + ":" + e.Creditor
		}
		return tag
	}
	switch e.Kind() {
	case core.KindExpensePaid:
		return "Expense Paid"
	case core.KindExpensePayable:
		return withParty("Expense Payable")
	case core.KindCreditSale:
		return withParty("Credit")
	default:
		return "Cash"
	}
}

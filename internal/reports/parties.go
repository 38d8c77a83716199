package reports

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"ledger-assistant/internal/core"
	"ledger-assistant/internal/i18n"
	"ledger-assistant/internal/textparse"
)

// PartyKind selects receivables (customers) or payables (vendors).
type PartyKind int

const (
	Receivables PartyKind = iota
	Payables
)

func (k PartyKind) matches(e core.LedgerEntry) bool {
	if k == Payables {
		return e.IsPayable()
	}
	return e.IsReceivable()
}

// PartyTotal is the outstanding amount for one customer or vendor.
type PartyTotal struct {
	Name  string
	Total decimal.Decimal
}

// PartyReport groups month-to-date outstanding amounts by party.
type PartyReport struct {
	Kind    PartyKind
	Total   decimal.Decimal
	Parties []PartyTotal
}

func partyKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// BuildPartyReport groups entries by trimmed, case-insensitive party name.
// The first-seen spelling is displayed; amounts are absolute.
func BuildPartyReport(kind PartyKind, entries []core.LedgerEntry, now time.Time, loc *time.Location, l *i18n.Labels) PartyReport {
	fallback := l.UnknownCustomer
	if kind == Payables {
		fallback = l.UnknownVendor
	}
	rep := PartyReport{Kind: kind}
	index := make(map[string]int)
	for _, e := range monthToDate(entries, now, loc) {
		if !kind.matches(e) {
			continue
		}
		name := strings.TrimSpace(e.Creditor)
		if name == "" {
			name = fallback
		}
		amount := e.Revenue.Abs()
		rep.Total = rep.Total.Add(amount)
		key := partyKey(name)
		if i, ok := index[key]; ok {
			rep.Parties[i].Total = rep.Parties[i].Total.Add(amount)
			continue
		}
		index[key] = len(rep.Parties)
		rep.Parties = append(rep.Parties, PartyTotal{Name: name, Total: amount})
	}
	sortByName(rep.Parties, func(p PartyTotal) string { return p.Name })
	return rep
}

// Render formats the grouped report.
func (p PartyReport) Render(l *i18n.Labels) string {
	title, totalLabel, groupLabel, empty, hint := l.CreditorsTitle, l.TotalReceivables, l.CustomerWise, l.CreditorsEmpty, l.CreditorsHint
	if p.Kind == Payables {
		title, totalLabel, groupLabel, empty, hint = l.PayablesTitle, l.TotalPayables, l.VendorWise, l.PayablesEmpty, l.PayablesHint
	}
	if len(p.Parties) == 0 {
		return empty
	}
	var b strings.Builder
	b.WriteString(title + "\n")
	b.WriteString(totalLabel + ": " + textparse.Rupees(p.Total) + "\n\n")
	b.WriteString(groupLabel + "\n")
	for _, party := range p.Parties {
		b.WriteString("- " + party.Name + ": " + textparse.Rupees(party.Total) + "\n")
	}
	b.WriteString("\n" + hint)
	return b.String()
}

// PartyDetails lists one party's month-to-date entries oldest first, each
// with the number of days it has been pending.
func PartyDetails(kind PartyKind, entries []core.LedgerEntry, name string, now time.Time, loc *time.Location, l *i18n.Labels) string {
	q := partyKey(name)
	var rows []core.LedgerEntry
	for _, e := range monthToDate(entries, now, loc) {
		if kind.matches(e) && partyKey(e.Creditor) == q {
			rows = append(rows, e)
		}
	}
	if len(rows) == 0 {
		return i18n.F(l.NoPartyEntries, name)
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Date.Before(rows[j].Date) })

	header, more := l.CreditorDetails, l.CreditorMore
	if kind == Payables {
		header, more = l.PayableDetails, l.PayableMore
	}
	var b strings.Builder
	b.WriteString(header + "\n")
	total := decimal.Zero
	for _, e := range rows {
		amount := e.Revenue.Abs()
		total = total.Add(amount)
		day := textparse.YMD(e.Date, loc)
		days := textparse.DaysPassed(e.Date, now)
		if kind == Payables {
			b.WriteString(i18n.F(l.PayableLine, day, textparse.Rupees(amount), payableHead(e, l), days) + "\n")
		} else {
			b.WriteString(i18n.F(l.CreditorLine, day, textparse.Rupees(amount), productKey(e, l.DefaultSaleLabel), days) + "\n")
		}
	}
	b.WriteString("\n" + l.Subtotal + ": " + textparse.Rupees(total) + "\n" + more)
	return b.String()
}

func payableHead(e core.LedgerEntry, l *i18n.Labels) string {
	if head, ok := strings.CutPrefix(e.Product, "Expense: "); ok {
		return strings.TrimSpace(head)
	}
	return productKey(e, l.DefaultExpense)
}

package core

import (
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
)

// Identity is a registered shopkeeper, keyed by mobile number.
type Identity struct {
	Mobile string `json:"mobile"`
	Name   string `json:"name"`
}

// LedgerEntry is one immutable transaction as stored by the backend.
// An empty Product stands for "no product". Units is nil for pure money entries.
type LedgerEntry struct {
	ID       int64           `json:"id,omitempty"`
	Product  string          `json:"product"`
	Units    *int            `json:"units"`
	Revenue  decimal.Decimal `json:"revenue"`
	Credit   bool            `json:"credit"`
	Creditor string          `json:"creditor"`
	Date     time.Time       `json:"date"`
}

// EntryKind is the bookkeeping bucket an entry falls into.
type EntryKind int

const (
	KindNone EntryKind = iota
	KindCashSale
	KindCreditSale
	KindExpensePaid
	KindExpensePayable
)

func (k EntryKind) String() string {
	switch k {
	case KindCashSale:
		return "cash-in"
	case KindCreditSale:
		return "credit-in"
	case KindExpensePaid:
		return "expense-paid"
	case KindExpensePayable:
		return "expense-payable"
	default:
		return "none"
	}
}

// Kind classifies the entry. An expense counts as paid when its product
// mentions "paid" or it is not on credit; otherwise it is payable.
func (e LedgerEntry) Kind() EntryKind {
	switch {
	case e.Revenue.IsPositive() && e.Credit:
		return KindCreditSale
	case e.Revenue.IsPositive():
		return KindCashSale
	case e.Revenue.IsNegative():
		if !e.Credit || strings.Contains(strings.ToLower(e.Product), "paid") {
			return KindExpensePaid
		}
		return KindExpensePayable
	default:
		return KindNone
	}
}

// IsReceivable reports whether the entry is a sale still owed by a customer.
func (e LedgerEntry) IsReceivable() bool { return e.Kind() == KindCreditSale }

// IsPayable reports whether the entry is an expense still owed to a vendor.
func (e LedgerEntry) IsPayable() bool { return e.Kind() == KindExpensePayable }

// UnitCount returns the unit count, zero for money-only entries.
func (e LedgerEntry) UnitCount() int {
	if e.Units == nil {
		return 0
	}
	return *e.Units
}

// Candidate is an entry proposed by the parsing service before normalization.
type Candidate struct {
	Product  string          `json:"product"`
	Units    int             `json:"units"`
	Revenue  decimal.Decimal `json:"revenue"`
	Credit   bool            `json:"credit"`
	Creditor string          `json:"creditor"`
}

// NormalizeCandidates turns parser output into entries stamped with now.
// A candidate is a unit sale only when it has both a product and a positive
// unit count. Zero-amount candidates are dropped.
func NormalizeCandidates(items []Candidate, now time.Time) []LedgerEntry {
	out := make([]LedgerEntry, 0, len(items))
	for _, it := range items {
		revenue := it.Revenue.Round(2)
		if revenue.IsZero() {
			continue
		}
		e := LedgerEntry{
			Product: strings.TrimSpace(it.Product),
			Revenue: revenue,
			Credit:  it.Credit,
			Date:    now,
		}
		if it.Credit {
			e.Creditor = strings.TrimSpace(it.Creditor)
		}
		if e.Product != "" && it.Units > 0 {
			units := it.Units
			e.Units = &units
		}
		out = append(out, e)
	}
	return out
}

// DropZeroRevenue rounds revenue to paise and filters out entries that
// must never be persisted.
func DropZeroRevenue(entries []LedgerEntry) []LedgerEntry {
	out := entries[:0:0]
	for _, e := range entries {
		e.Revenue = e.Revenue.Round(2)
		if !e.Revenue.IsZero() {
			out = append(out, e)
		}
	}
	return out
}

// NormalizeMobile strips everything but digits.
func NormalizeMobile(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsDigits reports whether s is a non-empty run of ASCII digits.
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// Package reports builds the month-to-date views over a user's entries.
// Every builder is pure: callers reload entries first and pass the clock in.
package reports

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"ledger-assistant/internal/core"
	"ledger-assistant/internal/textparse"
)

// monthToDate keeps entries dated on or after the first of now's month.
func monthToDate(entries []core.LedgerEntry, now time.Time, loc *time.Location) []core.LedgerEntry {
	som := textparse.StartOfMonth(now, loc)
	out := make([]core.LedgerEntry, 0, len(entries))
	for _, e := range entries {
		if !e.Date.Before(som) {
			out = append(out, e)
		}
	}
	return out
}

// sortByName orders names alphabetically, ignoring case the way a human would.
func sortByName[T any](rows []T, name func(T) string) {
	c := collate.New(language.English, collate.IgnoreCase)
	sort.SliceStable(rows, func(i, j int) bool {
		return c.CompareString(name(rows[i]), name(rows[j])) < 0
	})
}

func productKey(e core.LedgerEntry, fallback string) string {
	if p := strings.TrimSpace(e.Product); p != "" {
		return p
	}
	return fallback
}

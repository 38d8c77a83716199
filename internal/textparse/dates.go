// Package textparse holds the small tokenizers and formatters the chat
// layer uses on raw user text.
package textparse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateRange is an inclusive span of ISO (YYYY-MM-DD) days.
type DateRange struct {
	From string
	To   string
}

// Single reports whether the range covers one day.
func (r DateRange) Single() bool { return r.From == r.To }

// String renders "from" or "from to to".
func (r DateRange) String() string {
	if r.Single() {
		return r.From
	}
	return r.From + " to " + r.To
}

var (
	numericDate = regexp.MustCompile(`^(\d{1,2})\s*/\s*(\d{1,2})$`)
	namedDate   = regexp.MustCompile(`^(\d{1,2})\s*/\s*([A-Za-z]{3,9})$`)
	isoDate     = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
	spaces      = regexp.MustCompile(`\s+`)
)

var monthsByPrefix = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "sept": 9, "oct": 10, "nov": 11, "dec": 12,
}

// ParseDateToken parses one loose date: D/M, D/MonthName or YYYY-MM-DD.
// The current year of now is assumed for the short forms.
func ParseDateToken(tok string, now time.Time) (string, bool) {
	tok = strings.TrimSpace(tok)
	if m := numericDate.FindStringSubmatch(tok); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		return isoDay(now.Year(), month, day)
	}
	if m := namedDate.FindStringSubmatch(tok); m != nil {
		day, _ := strconv.Atoi(m[1])
		name := strings.ToLower(m[2])
		key := name[:3]
		if strings.HasPrefix(name, "sept") {
			key = "sept"
		}
		month, ok := monthsByPrefix[key]
		if !ok {
			return "", false
		}
		return isoDay(now.Year(), month, day)
	}
	if m := isoDate.FindStringSubmatch(tok); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		return isoDay(year, month, day)
	}
	return "", false
}

func isoDay(year, month, day int) (string, bool) {
	if day < 1 || day > 31 || month < 1 || month > 12 {
		return "", false
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day), true
}

// ParseDateOrRange parses a single loose date or a range joined by ".." or
// " to ". The second result is false whenever the text is not a date query.
func ParseDateOrRange(text string, now time.Time) (DateRange, bool) {
	norm := spaces.ReplaceAllString(strings.ToLower(strings.TrimSpace(text)), " ")
	parts := strings.Split(norm, "..")
	if len(parts) == 1 {
		parts = strings.Split(norm, " to ")
	}
	switch len(parts) {
	case 1:
		d, ok := ParseDateToken(norm, now)
		if !ok {
			return DateRange{}, false
		}
		return DateRange{From: d, To: d}, true
	case 2:
		from, ok1 := ParseDateToken(parts[0], now)
		to, ok2 := ParseDateToken(parts[1], now)
		if !ok1 || !ok2 {
			return DateRange{}, false
		}
		return DateRange{From: from, To: to}, true
	}
	return DateRange{}, false
}

// Contains reports whether t falls on a day inside the range, evaluated in loc.
func (r DateRange) Contains(t time.Time, loc *time.Location) bool {
	day := YMD(t, loc)
	return day >= r.From && day <= r.To
}

// YMD formats t as an ISO day in loc.
func YMD(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}

// HM formats t as 24h hours and minutes in loc.
func HM(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return "--:--"
	}
	return t.In(loc).Format("15:04")
}

// DaysPassed is the number of whole days between then and now.
func DaysPassed(then, now time.Time) int {
	if then.IsZero() || now.Before(then) {
		return 0
	}
	return int(now.Sub(then) / (24 * time.Hour))
}

// StartOfMonth returns midnight on the first day of now's month in loc.
func StartOfMonth(now time.Time, loc *time.Location) time.Time {
	n := now.In(loc)
	return time.Date(n.Year(), n.Month(), 1, 0, 0, 0, 0, loc)
}

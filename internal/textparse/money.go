package textparse

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var inrPrinter = message.NewPrinter(language.MustParse("en-IN"))

// Rupees renders an amount the way chat reports show it: "₹250", "₹-40".
func Rupees(d decimal.Decimal) string {
	return "₹" + d.String()
}

// SignedRupees puts the sign before the symbol: "-₹250".
func SignedRupees(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-₹" + d.Abs().String()
	}
	return "₹" + d.String()
}

// INR renders a currency amount with two decimals and Indian digit
// grouping, as on the invoice preview.
func INR(d decimal.Decimal) string {
	f := d.Round(2).InexactFloat64()
	return "₹" + inrPrinter.Sprint(number.Decimal(f, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

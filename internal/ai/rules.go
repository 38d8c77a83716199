package ai

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"ledger-assistant/internal/core"
)

// RepaymentProduct is the product recorded for settled dues.
const RepaymentProduct = "Repayment"

var titleCaser = cases.Title(language.English)

// MatchRepayment recognizes the two repayment phrasings without a model call:
//
//	"<name> paid <amount>"          customer repayment (cash in, reduces receivable)
//	"paid <vendor words> <amount>"  vendor repayment (reduces payable)
//
// The amount must be a whole number.
func MatchRepayment(message string) ([]core.Candidate, bool) {
	tokens := strings.Fields(strings.ToLower(message))
	if len(tokens) < 2 || !isDigits(tokens[len(tokens)-1]) {
		return nil, false
	}
	amount, err := decimal.NewFromString(tokens[len(tokens)-1])
	if err != nil {
		return nil, false
	}

	switch {
	case len(tokens) >= 3 && tokens[1] == "paid":
		return []core.Candidate{{
			Product:  RepaymentProduct,
			Revenue:  amount,
			Credit:   false,
			Creditor: titleCaser.String(tokens[0]),
		}}, true
	case tokens[0] == "paid":
		return []core.Candidate{{
			Product:  RepaymentProduct,
			Revenue:  amount,
			Credit:   true,
			Creditor: titleCaser.String(strings.Join(tokens[1:len(tokens)-1], " ")),
		}}, true
	}
	return nil, false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

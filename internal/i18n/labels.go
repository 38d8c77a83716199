// Package i18n is the English/Hindi message catalog. It holds data only;
// format verbs in a template are documented next to the field.
package i18n

import (
	"fmt"
	"time"
)

// Lang is a supported UI language.
type Lang string

const (
	English Lang = "en"
	Hindi   Lang = "hi"
)

// Valid reports whether l has a catalog.
func (l Lang) Valid() bool { return l == English || l == Hindi }

// Labels is one language's message table.
type Labels struct {
	Lang Lang

	Ledger, Summary, Inventory, Creditors, Payables, Settings, Invoice string

	GreetingBilingual string
	OTPPrompt         string // mobile, otp, mobile, otp
	OTPVerified       string
	OTPInvalid        string
	InvalidMobile     string
	InvalidName       string
	RegisterFailed    string
	LookupFailed      string
	LanguagePrompt    string
	Welcome           string // name
	RegisterWelcome   string // name
	Instructions      string
	BackToLedger      string
	Synced            string // command list
	LoginFirst        string
	LoginFirstUpload  string

	ParseFailed  string
	NothingSaved string
	SaveFailed   string
	Saved        string // count, command list

	NoEntries         string
	LoadFailed        string
	InventoryTitle    string
	NoSalesThisMonth  string
	InventoryHint     string
	NoSalesInPeriod   string
	PagerHint         string
	DrillDownHeader   string // emoji, title, range, page, pages, page size
	UnitsLine         string // product, units
	SummaryTitle      string // month
	TotalRevenue      string
	TotalExpense      string
	NetProfit         string
	RevenueCash       string
	RevenueCredit     string
	ExpenseCash       string
	ExpensePayable    string
	DayWise           string
	DayLine           string // day, tx, cash, credit, paid, payable, net
	SummaryHint       string
	NoTxOnDate        string
	DrillDownUnknown  string
	CreditorsTitle    string
	TotalReceivables  string
	CustomerWise      string
	CreditorsEmpty    string
	CreditorsHint     string
	CreditorDetails   string
	CreditorLine      string // day, amount, product, days
	CreditorMore      string
	PayablesTitle     string
	TotalPayables     string
	VendorWise        string
	PayablesEmpty     string
	PayablesHint      string
	PayableDetails    string
	PayableLine       string // day, amount, head, days
	PayableMore       string
	NoPartyEntries    string // name
	Subtotal          string
	UnknownCustomer   string
	UnknownVendor     string
	DefaultSaleLabel  string
	DefaultExpense    string
	MonthNames        [12]string
	SettingsPanel     string // name, address, gst, contact
	SettingsSaved     string
	SettingsFail      string
	SettingsLoadFail  string
	ConfirmField      string // label, value
	EnterInvoice      string
	EnterItemsHelp    string
	EnterTerms        string
	Generating        string
	InvoiceFail       string
	InvoiceReady      string // customer, filename
	EmptyStoreWarning string
	Cancelled         string
	AddedItem         string // index, description, price, gst
	RemovedItem       string // index
	ConfirmCustomer   string // name
	ConfirmItem       string // description, price, gst
	ConfirmTerms      string // terms
	NoTerms           string
	PromptCustomer    string
	PromptItem        string
	PromptTerms       string
	InvalidCustomer   string
	NeedOneItem       string
	NoSuchItem        string
	ItemParseFailed   string
	IngestDone        string // vendor, count, total
	IngestFailed      string // error
	Busy              string
}

// F formats a template field.
func F(template string, args ...any) string {
	return fmt.Sprintf(template, args...)
}

// Commands lists the ledger commands for "Try: ..." hints.
func (l *Labels) Commands() string {
	return fmt.Sprintf("%s / %s / %s / %s / %s / %s", l.Summary, l.Inventory, l.Creditors, l.Payables, l.Settings, l.Invoice)
}

// Month returns the localized month name.
func (l *Labels) Month(m time.Month) string {
	return l.MonthNames[m-1]
}

// For returns the catalog for lang, defaulting to English.
func For(lang Lang) *Labels {
	if lang == Hindi {
		return &hindi
	}
	return &english
}

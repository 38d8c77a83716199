package chat

import (
	"ledger-assistant/internal/core"
	"ledger-assistant/internal/i18n"
	"ledger-assistant/internal/reports"
)

// State is the whole conversation state of one session. It is a value:
// Dispatch receives one and returns the next.
type State struct {
	Lang i18n.Lang
	Mode Mode
}

// NewState is the state of a fresh session waiting for a mobile number.
func NewState() State {
	return State{Lang: i18n.English, Mode: AwaitMobile{}}
}

// Mode is one conversation phase. Each phase carries only the fields that
// are meaningful while it is active.
type Mode interface {
	Name() string
	mode()
}

// AwaitMobile waits for the user's mobile number.
type AwaitMobile struct{}

// AwaitOTP waits for the mock one-time code. Known is set when the mobile
// belongs to a registered identity.
type AwaitOTP struct {
	Mobile string
	Code   string
	Known  *core.Identity
}

// AwaitName waits for a new user's display name.
type AwaitName struct {
	Mobile string
}

// ChooseLang waits for the first language choice of an identity.
type ChooseLang struct {
	Identity   core.Identity
	Registered bool
}

// InLedger is the steady state after login. Entries and Settings mirror the
// backend and are replaced wholesale on reload.
type InLedger struct {
	Identity core.Identity
	Entries  []core.LedgerEntry
	Settings core.Settings
	View     View
}

func (AwaitMobile) Name() string { return "mobile" }
func (AwaitOTP) Name() string    { return "otp" }
func (AwaitName) Name() string   { return "name" }
func (ChooseLang) Name() string  { return "chooseLang" }
func (InLedger) Name() string    { return "ledger" }

func (AwaitMobile) mode() {}
func (AwaitOTP) mode()    {}
func (AwaitName) mode()   {}
func (ChooseLang) mode()  {}
func (InLedger) mode()    {}

// View is the ledger sub-mode together with its wizard or cursor state.
type View interface {
	Name() string
	view()
}

// Home accepts commands and free-text entries.
type Home struct{}

// InventoryView shows month-to-date units; Detail holds the last period query.
type InventoryView struct {
	Detail *reports.DrillDown
}

// SummaryView shows the month summary; Detail holds the last day query.
type SummaryView struct {
	Detail *reports.DrillDown
}

// CreditorsView shows receivables; any text asks for one customer's details.
type CreditorsView struct{}

// PayablesView shows payables; any text asks for one vendor's details.
type PayablesView struct{}

// SettingsView edits one store field at a time.
type SettingsView struct {
	Pending *PendingSetting
}

// PendingSetting is a field value awaiting yes/no.
type PendingSetting struct {
	Key   core.SettingKey
	Value string
}

// InvoiceView runs the invoice wizard.
type InvoiceView struct {
	Draft InvoiceDraft
}

func (Home) Name() string          { return "ledger" }
func (InventoryView) Name() string { return "inventory" }
func (SummaryView) Name() string   { return "summary" }
func (CreditorsView) Name() string { return "creditors" }
func (PayablesView) Name() string  { return "payables" }
func (SettingsView) Name() string  { return "settings" }
func (InvoiceView) Name() string   { return "invoice" }

func (Home) view()          {}
func (InventoryView) view() {}
func (SummaryView) view()   {}
func (CreditorsView) view() {}
func (PayablesView) view()  {}
func (SettingsView) view()  {}
func (InvoiceView) view()   {}

// InvoiceStep is the wizard position.
type InvoiceStep int

const (
	StepCustomer InvoiceStep = iota + 1
	StepItems
	StepTerms
)

// InvoiceDraft is the in-progress invoice. Items holds committed lines only.
type InvoiceDraft struct {
	Step     InvoiceStep
	Customer string
	Items    []core.InvoiceItem
	Terms    string
	Pending  *Confirmation
}

// ConfirmKind names the field a confirmation is for.
type ConfirmKind int

const (
	ConfirmCustomer ConfirmKind = iota + 1
	ConfirmItem
	ConfirmTerms
)

// Confirmation is a value typed at some step and not yet committed.
type Confirmation struct {
	Kind ConfirmKind
	Text string
	Item core.InvoiceItem
}

// Describe returns "mode" or "mode/view" for logs.
func (s State) Describe() string {
	if l, ok := s.Mode.(InLedger); ok && l.View != nil {
		return l.Name() + "/" + l.View.Name()
	}
	if s.Mode == nil {
		return "none"
	}
	return s.Mode.Name()
}

package chat

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"ledger-assistant/internal/core"
	"ledger-assistant/internal/i18n"
)

var en = i18n.For(i18n.English)

func TestRegistrationFlow_ChoosesHindi(t *testing.T) {
	gw, prefs := newStubGateway(), newMemPrefs()
	d := &driver{e: newTestEngine(gw, prefs), st: NewState()}

	if got := d.last("99999 99999"); !strings.Contains(got, "(Mock OTP is 4321)") || !strings.Contains(got, "9999999999") {
		t.Fatalf("otp prompt = %q", got)
	}
	otp, ok := d.st.Mode.(AwaitOTP)
	if !ok || otp.Known != nil || otp.Mobile != "9999999999" {
		t.Fatalf("state after mobile = %#v", d.st.Mode)
	}

	if got := d.last("4321"); got != en.OTPVerified {
		t.Fatalf("after otp = %q", got)
	}
	if got := d.last("Asha"); got != en.LanguagePrompt {
		t.Fatalf("after name = %q", got)
	}
	if gw.users["9999999999"].Name != "Asha" {
		t.Error("identity not registered")
	}

	hi := i18n.For(i18n.Hindi)
	want := i18n.F(hi.RegisterWelcome, "Asha") + "\n\n" + hi.Instructions
	if got := d.last("hi"); got != want {
		t.Errorf("welcome = %q", got)
	}
	m, ok := d.st.Mode.(InLedger)
	if !ok {
		t.Fatalf("mode = %s", d.st.Describe())
	}
	if _, home := m.View.(Home); !home || d.st.Lang != i18n.Hindi {
		t.Errorf("state = %s lang=%s", d.st.Describe(), d.st.Lang)
	}
	if prefs.langs["9999999999"] != i18n.Hindi {
		t.Error("language not persisted")
	}
}

func TestLogin_ExistingUserWithSavedLanguage(t *testing.T) {
	gw, prefs := newStubGateway(), newMemPrefs()
	gw.users["9000000001"] = core.Identity{Mobile: "9000000001", Name: "Ravi"}
	prefs.langs["9000000001"] = i18n.Hindi
	d := &driver{e: newTestEngine(gw, prefs), st: NewState()}

	d.send("9000000001")
	if d.st.Lang != i18n.Hindi {
		t.Error("saved language not applied at mobile entry")
	}
	hi := i18n.For(i18n.Hindi)
	if got := d.last("4321"); got != i18n.F(hi.Welcome, "Ravi")+"\n\n"+hi.Instructions {
		t.Errorf("welcome = %q", got)
	}
	if d.st.Describe() != "ledger/ledger" {
		t.Errorf("state = %s", d.st.Describe())
	}
	if gw.listCalls != 1 {
		t.Errorf("entries loaded %d times on login", gw.listCalls)
	}
}

func TestLogin_ExistingUserChoosesLanguage(t *testing.T) {
	gw, prefs := newStubGateway(), newMemPrefs()
	gw.users["9000000001"] = core.Identity{Mobile: "9000000001"}
	prefs.fail = true
	d := &driver{e: newTestEngine(gw, prefs), st: NewState()}

	d.send("9000000001")
	if got := d.last("4321"); got != en.LanguagePrompt {
		t.Fatalf("got %q", got)
	}
	if got := d.last("french"); got != en.LanguagePrompt {
		t.Errorf("unknown language reply = %q", got)
	}
	if _, ok := d.st.Mode.(ChooseLang); !ok {
		t.Fatalf("mode = %s", d.st.Describe())
	}
	if got := d.last("English"); !strings.HasPrefix(got, "Welcome back, User 9000000001!") {
		t.Errorf("welcome = %q", got)
	}
	if d.st.Describe() != "ledger/ledger" {
		t.Errorf("preference write failure must not block login, state = %s", d.st.Describe())
	}
}

func TestLogin_ErrorPaths(t *testing.T) {
	gw, prefs := newStubGateway(), newMemPrefs()
	d := &driver{e: newTestEngine(gw, prefs), st: NewState()}

	if got := d.last("abc"); got != en.InvalidMobile {
		t.Errorf("non-digit mobile = %q", got)
	}
	if out := d.send("   "); len(out) != 0 {
		t.Errorf("blank input produced %v", out)
	}

	gw.failLookup = true
	if got := d.last("9000000002"); got != en.LookupFailed {
		t.Errorf("lookup failure = %q", got)
	}
	if _, ok := d.st.Mode.(AwaitMobile); !ok {
		t.Errorf("mode after lookup failure = %s", d.st.Describe())
	}
	gw.failLookup = false

	d.send("9000000002")
	if got := d.last("0000"); got != en.OTPInvalid {
		t.Errorf("wrong otp = %q", got)
	}
	if m, ok := d.st.Mode.(AwaitOTP); !ok || m.Code != "4321" || m.Mobile != "9000000002" {
		t.Errorf("otp state not retained: %#v", d.st.Mode)
	}

	d.send("4321")
	gw.failRegister = true
	if got := d.last("Meena"); got != en.RegisterFailed {
		t.Errorf("register failure = %q", got)
	}
	if _, ok := d.st.Mode.(AwaitName); !ok {
		t.Errorf("mode after register failure = %s", d.st.Describe())
	}
}

func TestUploadBeforeLogin(t *testing.T) {
	d := &driver{e: newTestEngine(newStubGateway(), newMemPrefs()), st: NewState()}
	_, out := d.e.Dispatch(context.Background(), d.st, Input{Upload: &core.Document{Filename: "bill.pdf"}})
	if len(out) != 1 || out[0].Text != en.LoginFirstUpload {
		t.Errorf("out = %v", out)
	}
}

func TestFreeTextEntry_PayableShowsInPayables(t *testing.T) {
	gw, prefs := newStubGateway(), newMemPrefs()
	gw.parsed["-250 Ramesh"] = []core.Candidate{{Revenue: decimal.NewFromInt(-250), Credit: true, Creditor: "Ramesh"}}
	d := loggedIn(gw, prefs)

	got := d.last("-250 Ramesh")
	if got != i18n.F(en.Saved, 1, en.Commands()) {
		t.Fatalf("save reply = %q", got)
	}
	saved := gw.entries["9000000001"]
	if len(saved) != 1 || !saved[0].IsPayable() || saved[0].Units != nil {
		t.Fatalf("saved = %+v", saved)
	}
	if len(d.ledger().Entries) != 1 {
		t.Error("entries not reloaded after save")
	}

	if got := d.last("payables"); !strings.Contains(got, "Ramesh: ₹250") {
		t.Errorf("payables = %q", got)
	}
	if d.st.Describe() != "ledger/payables" {
		t.Errorf("state = %s", d.st.Describe())
	}
	if got := d.last("ramesh"); !strings.Contains(got, "Payable head: Expense") {
		t.Errorf("vendor details = %q", got)
	}
	if got := d.last("बही खाता"); got != en.BackToLedger || d.st.Describe() != "ledger/ledger" {
		t.Errorf("exit = %q state = %s", got, d.st.Describe())
	}
}

func TestFreeTextEntry_Failures(t *testing.T) {
	gw, prefs := newStubGateway(), newMemPrefs()
	gw.parsed["0 tea"] = []core.Candidate{{Product: "tea", Revenue: decimal.Zero}}
	gw.parsed["100 tea"] = []core.Candidate{{Product: "tea", Units: 1, Revenue: decimal.NewFromInt(100)}}
	d := loggedIn(gw, prefs)

	if got := d.last("gibberish"); got != en.ParseFailed {
		t.Errorf("unparsed = %q", got)
	}
	if got := d.last("0 tea"); got != en.NothingSaved {
		t.Errorf("zero = %q", got)
	}
	if gw.appendCalls != 0 {
		t.Errorf("append called %d times for nothing to save", gw.appendCalls)
	}
	gw.failAppend = true
	if got := d.last("100 tea"); got != en.SaveFailed {
		t.Errorf("append failure = %q", got)
	}
	if len(d.ledger().Entries) != 0 {
		t.Error("local entries changed after failed save")
	}
}

func TestInvoiceWizard_HappyPath(t *testing.T) {
	gw, prefs := newStubGateway(), newMemPrefs()
	gw.settings["9000000001"] = core.Settings{StoreName: "Ravi Stores"}
	d := loggedIn(gw, prefs)

	steps := []struct{ in, want string }{
		{"invoice", en.EnterInvoice},
		{"Acme", i18n.F(en.ConfirmCustomer, "Acme")},
		{"yes", en.EnterItemsHelp},
		{"5kg Atta - 450 - 5", "Add this item?\n5kg Atta — ₹450 • GST 5%\n\nType 'yes' to confirm or 'no' to re-enter."},
		{"yes", "✅ #1) 5kg Atta — ₹450 • GST 5%"},
		{"done", en.EnterTerms},
		{"skip", i18n.F(en.ConfirmTerms, en.NoTerms)},
	}
	for _, s := range steps {
		if got := d.last(s.in); got != s.want {
			t.Fatalf("%q: got %q, want %q", s.in, got, s.want)
		}
	}

	out := d.send("yes")
	if len(out) != 2 || out[0].Text != en.Generating {
		t.Fatalf("generate replies = %v", out)
	}
	ready := out[1]
	if ready.Attachment == nil || ready.Attachment.Filename != "invoice_2025-08-15.pdf" {
		t.Fatalf("attachment = %+v", ready.Attachment)
	}
	if ready.Text != i18n.F(en.InvoiceReady, "Acme", "invoice_2025-08-15.pdf") {
		t.Errorf("ready text = %q", ready.Text)
	}
	if d.st.Describe() != "ledger/ledger" {
		t.Errorf("state = %s", d.st.Describe())
	}

	req := gw.lastInvoice
	if req.Customer.Name != "Acme" || len(req.Items) != 1 || req.PaymentTerms != "" || req.Business.StoreName != "Ravi Stores" {
		t.Errorf("request = %+v", req)
	}
}

func TestInvoiceWizard_Confirmations(t *testing.T) {
	gw, prefs := newStubGateway(), newMemPrefs()
	d := loggedIn(gw, prefs)
	d.send("bill")

	d.send("Acme")
	if got := d.last("maybe"); got != i18n.F(en.ConfirmCustomer, "Acme") {
		t.Errorf("non yes/no = %q", got)
	}
	if got := d.last("no"); got != en.PromptCustomer {
		t.Errorf("no = %q", got)
	}
	d.send("Acme Traders")
	d.send("haan")
	if got := d.ledger().View.(InvoiceView).Draft.Customer; got != "Acme Traders" {
		t.Errorf("customer = %q", got)
	}

	if got := d.last("done"); got != en.NeedOneItem {
		t.Errorf("done without items = %q", got)
	}
	if got := d.last("atta 450"); got != en.ItemParseFailed {
		t.Errorf("bad item = %q", got)
	}
	d.send("Rice | 100 | 5%")
	if got := d.last("n"); got != en.PromptItem {
		t.Errorf("reject item = %q", got)
	}
	if n := len(d.ledger().View.(InvoiceView).Draft.Items); n != 0 {
		t.Errorf("rejected item committed, %d items", n)
	}
	d.send("Rice | 100 | 5%")
	d.send("ok")
	d.send("Dal, 200, 12")
	d.send("yes")

	before := d.ledger().View.(InvoiceView).Draft
	preview := d.last("preview")
	if !strings.Contains(preview, "Customer: Acme Traders") || !strings.Contains(preview, "Grand Total: ₹329.00") {
		t.Errorf("preview = %q", preview)
	}
	if after := d.ledger().View.(InvoiceView).Draft; len(after.Items) != len(before.Items) || after.Step != before.Step {
		t.Error("preview changed the draft")
	}

	if got := d.last("remove 3"); got != en.NoSuchItem {
		t.Errorf("remove out of range = %q", got)
	}
	if got := d.last("remove 1"); got != i18n.F(en.RemovedItem, 1) {
		t.Errorf("remove = %q", got)
	}
	items := d.ledger().View.(InvoiceView).Draft.Items
	if len(items) != 1 || items[0].Description != "Dal" {
		t.Errorf("items after remove = %+v", items)
	}

	d.send("done")
	d.send("skip")
	if got := d.last("skip"); got != en.PromptTerms {
		t.Errorf("skip on empty terms confirmation = %q", got)
	}
	d.send("Net 15")
	if got := d.last("skip"); got != i18n.F(en.ConfirmTerms, "Net 15") {
		t.Errorf("skip on non-empty terms = %q", got)
	}
	if got := d.last("cancel"); got != en.Cancelled || d.st.Describe() != "ledger/ledger" {
		t.Errorf("cancel while pending = %q state %s", got, d.st.Describe())
	}
	if gw.lastInvoice != nil {
		t.Error("cancelled wizard generated a document")
	}
}

func TestInvoiceWizard_EmptyStoreAndFailure(t *testing.T) {
	gw, prefs := newStubGateway(), newMemPrefs()
	gw.failGenerate = true
	d := loggedIn(gw, prefs)
	for _, in := range []string{"create invoice", "Acme", "yes", "Tea - 10 - 0", "yes", "done", "Due in 7 days"} {
		d.send(in)
	}
	out := d.send("yes")
	texts := make([]string, len(out))
	for i, m := range out {
		texts[i] = m.Text
	}
	want := []string{en.EmptyStoreWarning, en.Generating, en.InvoiceFail}
	if strings.Join(texts, "|") != strings.Join(want, "|") {
		t.Errorf("replies = %q", texts)
	}
	if d.st.Describe() != "ledger/ledger" {
		t.Errorf("state after failure = %s", d.st.Describe())
	}
	if gw.lastInvoice.PaymentTerms != "Due in 7 days" {
		t.Errorf("terms = %q", gw.lastInvoice.PaymentTerms)
	}
}

func TestSettings_ConfirmThenCommit(t *testing.T) {
	gw, prefs := newStubGateway(), newMemPrefs()
	d := loggedIn(gw, prefs)

	panel := d.last("settings")
	if panel != settingsPanel(en, core.Settings{}) || !strings.Contains(panel, "• Store Name: -") {
		t.Fatalf("panel = %q", panel)
	}

	if got := d.last("gst: 27ABCDE1234Z1Z5"); got != i18n.F(en.ConfirmField, "GST Number", "27ABCDE1234Z1Z5") {
		t.Errorf("confirm = %q", got)
	}
	if got := d.last("no"); got != panel {
		t.Errorf("no = %q", got)
	}
	if gw.updateCalls != 0 {
		t.Fatalf("update called %d times after no", gw.updateCalls)
	}

	d.send("Store Name - Ravi Stores")
	if got := d.last("what"); got != i18n.F(en.ConfirmField, "Store Name", "Ravi Stores") {
		t.Errorf("re-ask = %q", got)
	}
	if got := d.last("yes"); got != en.SettingsSaved {
		t.Errorf("yes = %q", got)
	}
	if gw.settings["9000000001"].StoreName != "Ravi Stores" || d.ledger().Settings.StoreName != "Ravi Stores" {
		t.Error("setting not committed")
	}
	if got := d.last("show"); !strings.Contains(got, "• Store Name: Ravi Stores") {
		t.Errorf("show = %q", got)
	}
	if got := d.last("hello"); !strings.HasPrefix(got, "⚙️ Settings:") {
		t.Errorf("unknown input = %q", got)
	}

	gw.failUpdate = true
	d.send("contact: 98765")
	if got := d.last("y"); got != en.SettingsFail {
		t.Errorf("update failure = %q", got)
	}
	if v := d.ledger().View.(SettingsView); v.Pending != nil {
		t.Error("pending setting kept after failed update")
	}
	if d.st.Describe() != "ledger/settings" {
		t.Errorf("state = %s", d.st.Describe())
	}
}

func TestSettings_ReloadedAfterSave(t *testing.T) {
	gw, prefs := newStubGateway(), newMemPrefs()
	gw.storeValue = strings.ToUpper
	d := loggedIn(gw, prefs)

	d.send("settings")
	d.send("gst: 27abcde")
	if got := d.last("yes"); got != en.SettingsSaved {
		t.Fatalf("yes = %q", got)
	}
	if got := d.ledger().Settings.StoreGST; got != "27ABCDE" {
		t.Errorf("cached gst = %q, want the stored 27ABCDE", got)
	}

	gw.failSettings = true
	d.send("name: ravi")
	if got := d.last("yes"); got != en.SettingsSaved {
		t.Fatalf("yes = %q", got)
	}
	if got := d.ledger().Settings; got.StoreGST != "27ABCDE" || got.StoreName != "" {
		t.Errorf("settings after failed reload = %+v, want previous cache", got)
	}
}

func TestSentinelsLogged(t *testing.T) {
	gw, prefs := newStubGateway(), newMemPrefs()
	var buf bytes.Buffer
	d := &driver{e: newTestEngine(gw, prefs), st: NewState()}
	d.e.log = zerolog.New(&buf).Level(zerolog.DebugLevel)

	d.send("9876543210")
	d.send("0000")
	d.send("4321")
	gw.failRegister = true
	d.send("Ravi")

	logs := buf.String()
	for _, want := range []string{core.ErrAuthFailure.Error(), core.ErrRegistrationFailed.Error()} {
		if !strings.Contains(logs, want) {
			t.Errorf("logs missing %q: %s", want, logs)
		}
	}

	buf.Reset()
	d = loggedIn(gw, prefs)
	d.e.log = zerolog.New(&buf).Level(zerolog.DebugLevel)
	gw.parsed["free tea"] = []core.Candidate{{Product: "Tea", Revenue: decimal.RequireFromString("0.001")}}
	if got := d.last("free tea"); got != en.NothingSaved {
		t.Errorf("reply = %q", got)
	}
	if !strings.Contains(buf.String(), core.ErrNothingToSave.Error()) {
		t.Errorf("logs missing nothing-to-save: %s", buf.String())
	}
}

func TestSummaryDrillDown(t *testing.T) {
	gw, prefs := newStubGateway(), newMemPrefs()
	var seeded []core.LedgerEntry
	for i := range 25 {
		seeded = append(seeded, core.LedgerEntry{
			Product: fmt.Sprintf("item %02d", i),
			Revenue: decimal.NewFromInt(10),
			Date:    time.Date(2025, time.August, 10, 8, i, 0, 0, ist),
		})
	}
	gw.entries["9000000001"] = seeded
	d := loggedIn(gw, prefs)

	if got := d.last("summary"); !strings.Contains(got, "Total Revenue : ₹250") {
		t.Fatalf("summary = %q", got)
	}
	if got := d.last("next"); got != en.DrillDownUnknown {
		t.Errorf("next before a query = %q", got)
	}
	if got := d.last("10/08..12/08"); got != en.DrillDownUnknown {
		t.Errorf("range in summary = %q", got)
	}

	got := d.last("10/aug")
	if !strings.HasPrefix(got, "📜 Ledger — 2025-08-10 (Page 1/2, 20/page)") || !strings.Contains(got, "1) 08:00 item 00 ₹10 (Cash)") {
		t.Fatalf("day view = %q", got)
	}
	if got := d.last("next"); !strings.Contains(got, "21) 08:20 item 20") {
		t.Errorf("page 2 = %q", got)
	}
	d.send("next")
	if p := d.ledger().View.(SummaryView).Detail.Page; p != 2 {
		t.Errorf("next past last page moved to %d", p)
	}
	d.send("page 1")
	if p := d.ledger().View.(SummaryView).Detail.Page; p != 1 {
		t.Errorf("page 1 -> %d", p)
	}
	calls := gw.listCalls
	d.send("prev")
	if gw.listCalls != calls {
		t.Error("paging re-queried the backend")
	}
}

func TestEmptyMonthStaysHome(t *testing.T) {
	gw, prefs := newStubGateway(), newMemPrefs()
	d := loggedIn(gw, prefs)

	for _, cmd := range []string{"inventory", "summary"} {
		d.send(cmd)
		if _, ok := d.ledger().View.(Home); !ok {
			t.Errorf("%s with no entries moved to %s", cmd, d.st.Describe())
		}
	}
}

func TestInventory(t *testing.T) {
	gw, prefs := newStubGateway(), newMemPrefs()
	units := 3
	gw.entries["9000000001"] = []core.LedgerEntry{
		{Product: "Maggi", Units: &units, Revenue: decimal.NewFromInt(60), Date: time.Date(2025, time.August, 2, 9, 0, 0, 0, ist)},
	}
	d := loggedIn(gw, prefs)

	if got := d.last("inventory"); !strings.Contains(got, "- Maggi: 3 units") {
		t.Fatalf("inventory = %q", got)
	}
	if got := d.last("01/08 to 03/08"); !strings.Contains(got, "1) Maggi: 3 units") || !strings.Contains(got, "2025-08-01 to 2025-08-03") {
		t.Errorf("period = %q", got)
	}
	if got := d.last("05/08"); !strings.Contains(got, en.NoSalesInPeriod) {
		t.Errorf("empty period = %q", got)
	}
	if got := d.last("ledger"); got != en.BackToLedger {
		t.Errorf("exit = %q", got)
	}

	gw.entries["9000000001"] = nil
	if got := d.last("inventory"); got != en.NoEntries || d.st.Describe() != "ledger/ledger" {
		t.Errorf("no entries = %q state %s", got, d.st.Describe())
	}
	gw.failList = true
	if got := d.last("creditors"); got != en.LoadFailed {
		t.Errorf("load failure = %q", got)
	}
}

func TestRefreshAndUpload(t *testing.T) {
	gw, prefs := newStubGateway(), newMemPrefs()
	d := loggedIn(gw, prefs)

	if got := d.last("refresh"); got != i18n.F(en.Synced, en.Commands()) {
		t.Errorf("refresh = %q", got)
	}

	gw.ingestResult = core.IngestResult{Vendor: "Dal Traders", Inserted: 2, TotalAmount: decimal.NewFromInt(1250)}
	var out []Message
	d.st, out = d.e.Dispatch(context.Background(), d.st, Input{Upload: &core.Document{Filename: "bill.png"}})
	want := i18n.F(en.IngestDone, "Dal Traders", 2, "₹1250")
	if len(out) != 1 || out[0].Text != want {
		t.Errorf("ingest = %v", out)
	}

	gw.ingestErr = core.NewGatewayError("ingestInvoice", 422, "No line items found", nil)
	_, out = d.e.Dispatch(context.Background(), d.st, Input{Upload: &core.Document{Filename: "bill.png"}})
	if len(out) != 1 || out[0].Text != "❌ Invoice parsing failed: No line items found" {
		t.Errorf("ingest failure = %v", out)
	}
}

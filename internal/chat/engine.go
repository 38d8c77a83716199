// Package chat is the conversation state machine. Dispatch reads one line
// of text (or one uploaded file) against the current State, performs the
// remote calls the line requires and returns the next State together with
// the bot replies.
package chat

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"ledger-assistant/internal/core"
	"ledger-assistant/internal/i18n"
	"ledger-assistant/internal/reports"
	"ledger-assistant/internal/textparse"
)

// Gateway is the remote data, parsing and document service.
type Gateway interface {
	// LookupUser returns core.ErrNotFound for an unknown mobile.
	LookupUser(ctx context.Context, mobile string) (core.Identity, error)
	RegisterUser(ctx context.Context, mobile, name string) error
	ListEntries(ctx context.Context, mobile string) ([]core.LedgerEntry, error)
	AppendEntries(ctx context.Context, mobile string, entries []core.LedgerEntry) error
	ParseFreeText(ctx context.Context, text string) ([]core.Candidate, error)
	IngestInvoiceDocument(ctx context.Context, mobile string, doc core.Document) (core.IngestResult, error)
	// GetSettings returns core.ErrNotFound when no settings were saved.
	GetSettings(ctx context.Context, mobile string) (core.Settings, error)
	UpdateSettings(ctx context.Context, mobile string, update core.SettingsUpdate) error
	GenerateInvoiceDocument(ctx context.Context, req core.InvoiceRequest) (core.Document, error)
}

// Prefs persists the language choice per mobile. Language returns
// core.ErrNotFound when nothing was saved.
type Prefs interface {
	Language(ctx context.Context, mobile string) (i18n.Lang, error)
	SetLanguage(ctx context.Context, mobile string, lang i18n.Lang) error
}

// Input is one user action: a line of text or a file.
type Input struct {
	Text   string
	Upload *core.Document
}

// Options tunes an Engine. Zero values get defaults.
type Options struct {
	Location *time.Location
	PageSize int
	Now      func() time.Time
	OTP      func() string
	Logger   zerolog.Logger
}

// Engine holds the collaborators of the state machine. It keeps no
// conversation state of its own.
type Engine struct {
	gw       Gateway
	prefs    Prefs
	loc      *time.Location
	pageSize int
	now      func() time.Time
	otp      func() string
	log      zerolog.Logger
}

// NewEngine builds an Engine.
func NewEngine(gw Gateway, prefs Prefs, opts Options) *Engine {
	e := &Engine{
		gw:       gw,
		prefs:    prefs,
		loc:      opts.Location,
		pageSize: opts.PageSize,
		now:      opts.Now,
		otp:      opts.OTP,
		log:      opts.Logger,
	}
	if e.loc == nil {
		e.loc = time.Local
	}
	if e.pageSize <= 0 {
		e.pageSize = reports.DefaultPageSize
	}
	if e.now == nil {
		e.now = time.Now
	}
	if e.otp == nil {
		e.otp = mockOTP
	}
	return e
}

func mockOTP() string {
	return fmt.Sprintf("%04d", 1000+rand.IntN(9000))
}

// turn accumulates replies for one Dispatch call.
type turn struct {
	e   *Engine
	ctx context.Context
	st  State
	out []Message
}

func (t *turn) labels() *i18n.Labels { return i18n.For(t.st.Lang) }

func (t *turn) say(text string) {
	t.out = append(t.out, t.e.botMessage(text, nil))
}

func (t *turn) attach(text string, doc *core.Document) {
	t.out = append(t.out, t.e.botMessage(text, doc))
}

func (e *Engine) botMessage(text string, doc *core.Document) Message {
	return Message{Sender: SenderBot, Text: text, Time: e.now(), Attachment: doc}
}

// Greeting is the bilingual message that opens every session.
func (e *Engine) Greeting() Message {
	return e.botMessage(i18n.For(i18n.English).GreetingBilingual, nil)
}

// Dispatch applies one input to st.
func (e *Engine) Dispatch(ctx context.Context, st State, in Input) (State, []Message) {
	if st.Mode == nil {
		st = NewState()
	}
	t := &turn{e: e, ctx: ctx, st: st}
	before := st.Describe()

	switch {
	case in.Upload != nil:
		t.upload(*in.Upload)
	case strings.TrimSpace(in.Text) == "":
		return st, nil
	default:
		t.text(strings.TrimSpace(in.Text))
	}

	if after := t.st.Describe(); after != before {
		e.log.Debug().Str("from", before).Str("to", after).Msg("state transition")
	}
	return t.st, t.out
}

func (t *turn) text(text string) {
	switch m := t.st.Mode.(type) {
	case AwaitMobile:
		t.onMobile(text)
	case AwaitOTP:
		t.onOTP(m, text)
	case AwaitName:
		t.onName(m, text)
	case ChooseLang:
		t.onLanguage(m, text)
	case InLedger:
		t.st.Mode = t.onLedger(m, text)
	}
}

func (t *turn) warn(err error, op string) {
	t.e.log.Warn().Err(err).Str("op", op).Str("state", t.st.Describe()).Msg("gateway call failed")
}

func (t *turn) onMobile(text string) {
	mobile := core.NormalizeMobile(text)
	if mobile == "" {
		t.say(t.labels().InvalidMobile)
		return
	}
	if lang, ok := t.savedLanguage(mobile); ok {
		t.st.Lang = lang
	}

	var known *core.Identity
	id, err := t.e.gw.LookupUser(t.ctx, mobile)
	switch {
	case err == nil:
		known = &id
	case errors.Is(err, core.ErrNotFound):
	default:
		t.warn(err, "lookupUser")
		t.say(t.labels().LookupFailed)
		return
	}

	code := t.e.otp()
	t.st.Mode = AwaitOTP{Mobile: mobile, Code: code, Known: known}
	t.say(i18n.F(t.labels().OTPPrompt, mobile, code, mobile, code))
}

func (t *turn) onOTP(m AwaitOTP, text string) {
	if text != m.Code {
		t.e.log.Debug().Err(core.ErrAuthFailure).Str("mobile", m.Mobile).Msg("otp rejected")
		t.say(t.labels().OTPInvalid)
		return
	}
	if m.Known == nil {
		t.st.Mode = AwaitName{Mobile: m.Mobile}
		t.say(t.labels().OTPVerified)
		return
	}
	id := *m.Known
	id.Mobile = m.Mobile
	if strings.TrimSpace(id.Name) == "" {
		id.Name = "User " + m.Mobile
	}
	t.afterIdentity(id, false)
}

func (t *turn) onName(m AwaitName, text string) {
	name := strings.TrimSpace(text)
	if name == "" {
		t.say(t.labels().InvalidName)
		return
	}
	if err := t.e.gw.RegisterUser(t.ctx, m.Mobile, name); err != nil {
		t.warn(fmt.Errorf("%w: %w", core.ErrRegistrationFailed, err), "registerUser")
		t.say(t.labels().RegisterFailed)
		return
	}
	t.afterIdentity(core.Identity{Mobile: m.Mobile, Name: name}, true)
}

// afterIdentity goes straight to the ledger when a language is saved and
// asks for one otherwise.
func (t *turn) afterIdentity(id core.Identity, registered bool) {
	lang, ok := t.savedLanguage(id.Mobile)
	if !ok {
		t.st.Mode = ChooseLang{Identity: id, Registered: registered}
		t.say(t.labels().LanguagePrompt)
		return
	}
	t.st.Lang = lang
	t.enterLedger(id, registered)
}

func (t *turn) onLanguage(m ChooseLang, text string) {
	lang, ok := LanguageOf(Classify(ScopeLanguage, text).Intent)
	if !ok {
		t.say(t.labels().LanguagePrompt)
		return
	}
	if err := t.e.prefs.SetLanguage(t.ctx, m.Identity.Mobile, lang); err != nil {
		t.e.log.Warn().Err(err).Str("mobile", m.Identity.Mobile).Msg("saving language preference failed")
	}
	t.st.Lang = lang
	t.enterLedger(m.Identity, m.Registered)
}

func (t *turn) enterLedger(id core.Identity, registered bool) {
	entries, err := t.e.gw.ListEntries(t.ctx, id.Mobile)
	if err != nil {
		t.warn(err, "listEntries")
	}
	t.st.Mode = InLedger{Identity: id, Entries: entries, View: Home{}}

	l := t.labels()
	welcome := l.Welcome
	if registered {
		welcome = l.RegisterWelcome
	}
	t.say(i18n.F(welcome, id.Name) + "\n\n" + l.Instructions)
}

func (t *turn) savedLanguage(mobile string) (i18n.Lang, bool) {
	lang, err := t.e.prefs.Language(t.ctx, mobile)
	if err != nil {
		if !errors.Is(err, core.ErrNotFound) {
			t.e.log.Warn().Err(err).Str("mobile", mobile).Msg("reading language preference failed")
		}
		return "", false
	}
	return lang, lang.Valid()
}

func (t *turn) upload(doc core.Document) {
	m, ok := t.st.Mode.(InLedger)
	if !ok {
		t.say(t.labels().LoginFirstUpload)
		return
	}
	l := t.labels()
	res, err := t.e.gw.IngestInvoiceDocument(t.ctx, m.Identity.Mobile, doc)
	if err != nil {
		t.warn(err, "ingestInvoiceDocument")
		t.say(i18n.F(l.IngestFailed, core.UserMessage(err)))
		return
	}
	m = t.reload(m)
	t.st.Mode = m
	vendor := res.Vendor
	if vendor == "" {
		vendor = "Vendor"
	}
	t.say(i18n.F(l.IngestDone, vendor, res.Inserted, textparse.Rupees(res.TotalAmount)))
}

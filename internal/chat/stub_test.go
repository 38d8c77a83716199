package chat

import (
	"context"
	"errors"
	"sync"
	"time"

	"ledger-assistant/internal/core"
	"ledger-assistant/internal/i18n"
)

// stubGateway is an in-memory backend with failure switches.
type stubGateway struct {
	mu       sync.Mutex
	users    map[string]core.Identity
	entries  map[string][]core.LedgerEntry
	settings map[string]core.Settings
	parsed   map[string][]core.Candidate

	failLookup, failRegister, failList, failAppend bool
	failSettings, failUpdate, failGenerate         bool
	ingestErr                                      error
	storeValue                                     func(string) string
	ingestResult                                   core.IngestResult

	appendCalls, updateCalls, listCalls int
	lastInvoice                         *core.InvoiceRequest
	block, entered                      chan struct{}
}

var errDown = errors.New("backend down")

func newStubGateway() *stubGateway {
	return &stubGateway{
		users:    map[string]core.Identity{},
		entries:  map[string][]core.LedgerEntry{},
		settings: map[string]core.Settings{},
		parsed:   map[string][]core.Candidate{},
	}
}

func (g *stubGateway) LookupUser(ctx context.Context, mobile string) (core.Identity, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failLookup {
		return core.Identity{}, core.NewGatewayError("lookupUser", 500, "", errDown)
	}
	id, ok := g.users[mobile]
	if !ok {
		return core.Identity{}, core.ErrNotFound
	}
	return id, nil
}

func (g *stubGateway) RegisterUser(ctx context.Context, mobile, name string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failRegister {
		return core.NewGatewayError("registerUser", 500, "", errDown)
	}
	g.users[mobile] = core.Identity{Mobile: mobile, Name: name}
	return nil
}

func (g *stubGateway) ListEntries(ctx context.Context, mobile string) ([]core.LedgerEntry, error) {
	if g.block != nil {
		select {
		case g.entered <- struct{}{}:
		default:
		}
		<-g.block
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.listCalls++
	if g.failList {
		return nil, core.NewGatewayError("listEntries", 500, "", errDown)
	}
	return append([]core.LedgerEntry(nil), g.entries[mobile]...), nil
}

func (g *stubGateway) AppendEntries(ctx context.Context, mobile string, entries []core.LedgerEntry) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.appendCalls++
	if g.failAppend {
		return core.NewGatewayError("appendEntries", 500, "", errDown)
	}
	g.entries[mobile] = append(g.entries[mobile], core.DropZeroRevenue(entries)...)
	return nil
}

func (g *stubGateway) ParseFreeText(ctx context.Context, text string) ([]core.Candidate, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.parsed[text], nil
}

func (g *stubGateway) IngestInvoiceDocument(ctx context.Context, mobile string, doc core.Document) (core.IngestResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.ingestErr != nil {
		return core.IngestResult{}, g.ingestErr
	}
	return g.ingestResult, nil
}

func (g *stubGateway) GetSettings(ctx context.Context, mobile string) (core.Settings, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failSettings {
		return core.Settings{}, core.NewGatewayError("getSettings", 500, "", errDown)
	}
	s, ok := g.settings[mobile]
	if !ok {
		return core.Settings{}, core.ErrNotFound
	}
	return s, nil
}

func (g *stubGateway) UpdateSettings(ctx context.Context, mobile string, update core.SettingsUpdate) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.updateCalls++
	if g.failUpdate {
		return core.NewGatewayError("updateSettings", 500, "", errDown)
	}
	if g.storeValue != nil {
		stored := core.SettingsUpdate{}
		for k, v := range update {
			stored[k] = g.storeValue(v)
		}
		update = stored
	}
	g.settings[mobile] = g.settings[mobile].Apply(update)
	return nil
}

func (g *stubGateway) GenerateInvoiceDocument(ctx context.Context, req core.InvoiceRequest) (core.Document, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.lastInvoice = &req
	if g.failGenerate {
		return core.Document{}, core.NewGatewayError("generateInvoice", 500, "", errDown)
	}
	return core.Document{ContentType: "application/pdf", Data: []byte("%PDF-1.7")}, nil
}

// memPrefs is a map-backed language store.
type memPrefs struct {
	mu    sync.Mutex
	langs map[string]i18n.Lang
	fail  bool
}

func newMemPrefs() *memPrefs { return &memPrefs{langs: map[string]i18n.Lang{}} }

func (p *memPrefs) Language(ctx context.Context, mobile string) (i18n.Lang, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	l, ok := p.langs[mobile]
	if !ok {
		return "", core.ErrNotFound
	}
	return l, nil
}

func (p *memPrefs) SetLanguage(ctx context.Context, mobile string, lang i18n.Lang) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail {
		return errors.New("disk full")
	}
	p.langs[mobile] = lang
	return nil
}

var ist = time.FixedZone("IST", 5*3600+1800)

// fixedNow is mid-August so month-to-date reports include the fixtures.
var fixedNow = time.Date(2025, time.August, 15, 12, 0, 0, 0, ist)

func newTestEngine(gw *stubGateway, prefs *memPrefs) *Engine {
	return NewEngine(gw, prefs, Options{
		Location: ist,
		PageSize: 20,
		Now:      func() time.Time { return fixedNow },
		OTP:      func() string { return "4321" },
	})
}

// driver feeds lines through Dispatch and keeps the state.
type driver struct {
	e  *Engine
	st State
}

func (d *driver) send(text string) []Message {
	var out []Message
	d.st, out = d.e.Dispatch(context.Background(), d.st, Input{Text: text})
	return out
}

func (d *driver) last(text string) string {
	out := d.send(text)
	if len(out) == 0 {
		return ""
	}
	return out[len(out)-1].Text
}

func (d *driver) ledger() InLedger {
	m, _ := d.st.Mode.(InLedger)
	return m
}

// loggedIn returns a driver already in the ledger home for mobile 9000000001.
func loggedIn(gw *stubGateway, prefs *memPrefs) *driver {
	gw.users["9000000001"] = core.Identity{Mobile: "9000000001", Name: "Ravi"}
	prefs.langs["9000000001"] = i18n.English
	d := &driver{e: newTestEngine(gw, prefs), st: NewState()}
	d.send("9000000001")
	d.send("4321")
	return d
}

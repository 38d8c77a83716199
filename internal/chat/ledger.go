package chat

import (
	"errors"

	"ledger-assistant/internal/core"
	"ledger-assistant/internal/i18n"
	"ledger-assistant/internal/reports"
	"ledger-assistant/internal/textparse"
)

func (t *turn) onLedger(m InLedger, text string) InLedger {
	if _, home := m.View.(Home); !home && m.View != nil {
		if Classify(ScopeView, text).Intent == IntentExit {
			m.View = Home{}
			t.say(t.labels().BackToLedger)
			return m
		}
	}

	switch v := m.View.(type) {
	case InventoryView:
		return t.onInventory(m, v, text)
	case SummaryView:
		return t.onSummary(m, v, text)
	case CreditorsView:
		t.say(reports.PartyDetails(reports.Receivables, m.Entries, text, t.e.now(), t.e.loc, t.labels()))
		return m
	case PayablesView:
		t.say(reports.PartyDetails(reports.Payables, m.Entries, text, t.e.now(), t.e.loc, t.labels()))
		return m
	case SettingsView:
		return t.onSettings(m, v, text)
	case InvoiceView:
		return t.onInvoice(m, v, text)
	default:
		m.View = Home{}
		return t.onHome(m, text)
	}
}

// reload replaces the cached entries. On failure the old cache is kept.
func (t *turn) reload(m InLedger) InLedger {
	m, _ = t.tryReload(m)
	return m
}

func (t *turn) tryReload(m InLedger) (InLedger, bool) {
	entries, err := t.e.gw.ListEntries(t.ctx, m.Identity.Mobile)
	if err != nil {
		t.warn(err, "listEntries")
		return m, false
	}
	m.Entries = entries
	return m, true
}

func (t *turn) onHome(m InLedger, text string) InLedger {
	l := t.labels()
	now := t.e.now()

	intent := Classify(ScopeHome, text).Intent
	switch intent {
	case IntentExit:
		t.say(l.BackToLedger)
		return m

	case IntentInventory:
		m, ok := t.tryReload(m)
		if !ok {
			t.say(l.LoadFailed)
			return m
		}
		inv := reports.BuildMonthInventory(m.Entries, now, t.e.loc)
		t.say(inv.Render(l))
		// An empty month keeps the user at home; there is nothing to query.
		if len(inv.Rows) > 0 {
			m.View = InventoryView{}
		}
		return m

	case IntentSummary:
		m, ok := t.tryReload(m)
		if !ok {
			t.say(l.LoadFailed)
			return m
		}
		sum := reports.BuildMonthSummary(m.Entries, now, t.e.loc)
		t.say(sum.Render(l))
		// Same as inventory: no summary view without entries this month.
		if sum.HasEntries {
			m.View = SummaryView{}
		}
		return m

	case IntentCreditors, IntentPayables:
		kind, view := reports.Receivables, View(CreditorsView{})
		if intent == IntentPayables {
			kind, view = reports.Payables, PayablesView{}
		}
		m, ok := t.tryReload(m)
		if !ok {
			t.say(l.LoadFailed)
			return m
		}
		t.say(reports.BuildPartyReport(kind, m.Entries, now, t.e.loc, l).Render(l))
		m.View = view
		return m

	case IntentSettings:
		s, ok := t.loadSettings(m)
		if !ok {
			t.say(l.SettingsLoadFail)
			return m
		}
		m.Settings = s
		m.View = SettingsView{}
		t.say(settingsPanel(l, s))
		return m

	case IntentInvoice:
		m.View = InvoiceView{Draft: InvoiceDraft{Step: StepCustomer}}
		t.say(l.EnterInvoice)
		return m

	case IntentRefresh:
		m, ok := t.tryReload(m)
		if !ok {
			t.say(l.LoadFailed)
			return m
		}
		t.say(i18n.F(l.Synced, l.Commands()))
		return m
	}

	return t.recordEntries(m, text)
}

// recordEntries sends free text to the parser and saves what comes back
// as one batch.
func (t *turn) recordEntries(m InLedger, text string) InLedger {
	l := t.labels()
	candidates, err := t.e.gw.ParseFreeText(t.ctx, text)
	if err != nil {
		t.warn(err, "parseFreeText")
	}
	if len(candidates) == 0 {
		t.say(l.ParseFailed)
		return m
	}
	entries := core.NormalizeCandidates(candidates, t.e.now())
	if len(entries) == 0 {
		t.e.log.Debug().Err(core.ErrNothingToSave).Int("candidates", len(candidates)).Msg("only zero amounts parsed")
		t.say(l.NothingSaved)
		return m
	}
	if err := t.e.gw.AppendEntries(t.ctx, m.Identity.Mobile, entries); err != nil {
		t.warn(err, "appendEntries")
		t.say(l.SaveFailed)
		return m
	}
	m = t.reload(m)
	t.say(i18n.F(l.Saved, len(entries), l.Commands()))
	return m
}

func (t *turn) loadSettings(m InLedger) (core.Settings, bool) {
	s, err := t.e.gw.GetSettings(t.ctx, m.Identity.Mobile)
	switch {
	case err == nil:
		return s, true
	case errors.Is(err, core.ErrNotFound):
		return core.Settings{}, true
	default:
		t.warn(err, "getSettings")
		return m.Settings, false
	}
}

func (t *turn) onInventory(m InLedger, v InventoryView, text string) InLedger {
	l := t.labels()
	if r, ok := textparse.ParseDateOrRange(text, t.e.now().In(t.e.loc)); ok {
		if len(m.Entries) == 0 {
			t.say(l.NoEntries)
			return m
		}
		rows := reports.InventoryRows(reports.BuildPeriodInventory(m.Entries, r, t.e.loc), l)
		d := reports.NewDrillDown(reports.InventoryPeriod, r, rows, t.e.pageSize)
		v.Detail = &d
		m.View = v
		t.say(d.Render(l))
		return m
	}
	if d, ok := t.page(v.Detail, text); ok {
		v.Detail = &d
		m.View = v
		return m
	}
	t.say(l.DrillDownUnknown)
	return m
}

func (t *turn) onSummary(m InLedger, v SummaryView, text string) InLedger {
	l := t.labels()
	if r, ok := textparse.ParseDateOrRange(text, t.e.now().In(t.e.loc)); ok && r.Single() {
		if len(m.Entries) == 0 {
			t.say(l.NoEntries)
			return m
		}
		rows := reports.BuildDayRows(m.Entries, r.From, t.e.loc, l)
		d := reports.NewDrillDown(reports.SummaryDay, r, rows, t.e.pageSize)
		v.Detail = &d
		m.View = v
		t.say(d.Render(l))
		return m
	}
	if d, ok := t.page(v.Detail, text); ok {
		v.Detail = &d
		m.View = v
		return m
	}
	t.say(l.DrillDownUnknown)
	return m
}

// page moves the cursor of an existing drill-down. It never re-queries.
func (t *turn) page(d *reports.DrillDown, text string) (reports.DrillDown, bool) {
	if d == nil {
		return reports.DrillDown{}, false
	}
	var next reports.DrillDown
	switch cmd := Classify(ScopeDrillDown, text); cmd.Intent {
	case IntentNext:
		next = d.Next()
	case IntentPrev:
		next = d.Prev()
	case IntentPage:
		next = d.Goto(cmd.N)
	default:
		return reports.DrillDown{}, false
	}
	t.say(next.Render(t.labels()))
	return next, true
}

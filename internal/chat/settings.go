package chat

import (
	"ledger-assistant/internal/core"
	"ledger-assistant/internal/i18n"
)

func settingsPanel(l *i18n.Labels, s core.Settings) string {
	return i18n.F(l.SettingsPanel, orDash(s.StoreName), orDash(s.StoreAddress), orDash(s.StoreGST), orDash(s.StoreContact))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func (t *turn) onSettings(m InLedger, v SettingsView, text string) InLedger {
	l := t.labels()

	if p := v.Pending; p != nil {
		switch Classify(ScopeSettingsConfirm, text).Intent {
		case IntentYes:
			update := core.SettingsUpdate{p.Key: p.Value}
			v.Pending = nil
			m.View = v
			if err := t.e.gw.UpdateSettings(t.ctx, m.Identity.Mobile, update); err != nil {
				t.warn(err, "updateSettings")
				t.say(l.SettingsFail)
				return m
			}
			// The store may normalize what it saved, so the cache is refetched.
			if s, ok := t.loadSettings(m); ok {
				m.Settings = s
			}
			t.say(l.SettingsSaved)
		case IntentNo:
			v.Pending = nil
			m.View = v
			t.say(settingsPanel(l, m.Settings))
		default:
			t.say(i18n.F(l.ConfirmField, p.Key.Label(), p.Value))
		}
		return m
	}

	if Classify(ScopeSettings, text).Intent == IntentShow {
		s, ok := t.loadSettings(m)
		if !ok {
			t.say(l.SettingsLoadFail)
			return m
		}
		m.Settings = s
		t.say(settingsPanel(l, s))
		return m
	}

	if key, value, ok := ParseSettingField(text); ok {
		m.View = SettingsView{Pending: &PendingSetting{Key: key, Value: value}}
		t.say(i18n.F(l.ConfirmField, key.Label(), value))
		return m
	}

	t.say(settingsPanel(l, m.Settings))
	return m
}

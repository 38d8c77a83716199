package app

import "ledger-assistant/internal/core"

// UserResult is returned by GetUser.
type UserResult struct {
	core.Identity
	core.Settings
}

// SettingsUpdateResult is returned by UpdateSettings.
type SettingsUpdateResult struct {
	Updated []core.SettingKey
}

// AppendResult is returned by AppendEntries.
type AppendResult struct {
	Inserted int
}

// HealthResult is returned by Health. Components maps a dependency name to
// "ok" or the error it reported.
type HealthResult struct {
	OK         bool
	Components map[string]string
}

package app

import (
	"context"

	"ledger-assistant/internal/core"
)

// ApplicationService is the single interface the HTTP adapter calls.
// Implementations hold no transport or display logic.
type ApplicationService interface {
	// GetUser returns the identity and store header registered under mobile,
	// or core.ErrNotFound.
	GetUser(ctx context.Context, mobile string) (*UserResult, error)

	// RegisterUser creates an identity or renames an existing one.
	RegisterUser(ctx context.Context, req RegisterRequest) (*core.Identity, error)

	// GetSettings returns the store header of mobile, or core.ErrNotFound.
	GetSettings(ctx context.Context, mobile string) (core.Settings, error)

	// UpdateSettings applies a partial settings change and reports the keys written.
	UpdateSettings(ctx context.Context, mobile string, update core.SettingsUpdate) (*SettingsUpdateResult, error)

	// ListEntries returns every entry of mobile, newest first.
	ListEntries(ctx context.Context, mobile string) ([]core.LedgerEntry, error)

	// AppendEntries stores a batch atomically. Zero-revenue entries are dropped
	// and core.ErrNoValidItems is returned when nothing is left.
	AppendEntries(ctx context.Context, mobile string, entries []core.LedgerEntry) (*AppendResult, error)

	// ParseMessage turns free text into candidate entries.
	ParseMessage(ctx context.Context, message string) ([]core.Candidate, error)

	// GenerateInvoice renders an invoice document.
	GenerateInvoice(ctx context.Context, req core.InvoiceRequest) (*core.Document, error)

	// IngestInvoice reads an uploaded vendor bill and stores its payables.
	IngestInvoice(ctx context.Context, req IngestRequest) (*core.IngestResult, error)

	// Health reports the state of each backing dependency.
	Health(ctx context.Context) *HealthResult
}

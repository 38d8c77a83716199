package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"ledger-assistant/internal/ai"
	"ledger-assistant/internal/core"
	"ledger-assistant/internal/ingest"
	"ledger-assistant/internal/store"
)

// Repository is the persistence the service needs; *store.Store satisfies it.
type Repository interface {
	Ping(ctx context.Context) error
	GetAccount(ctx context.Context, mobile string) (*store.Account, error)
	Register(ctx context.Context, id core.Identity) error
	GetSettings(ctx context.Context, mobile string) (core.Settings, error)
	UpdateSettings(ctx context.Context, mobile string, update core.SettingsUpdate) ([]core.SettingKey, error)
	ListEntries(ctx context.Context, mobile string) ([]core.LedgerEntry, error)
	InsertEntries(ctx context.Context, mobile string, entries []core.LedgerEntry) (int, error)
}

// InvoiceRenderer prints an invoice; *pdf.Renderer satisfies it.
type InvoiceRenderer interface {
	Render(ctx context.Context, req core.InvoiceRequest) (*core.Document, error)
}

// BillReader extracts payables from an uploaded bill; *ingest.Service satisfies it.
type BillReader interface {
	Read(ctx context.Context, doc core.Document) (ingest.Bill, []core.LedgerEntry, error)
}

// Pinger is an optional health probe for a dependency.
type Pinger interface {
	Ping(ctx context.Context) error
}

type appService struct {
	repo     Repository
	parser   ai.EntryParser
	renderer InvoiceRenderer
	bills    BillReader
	probes   map[string]Pinger
	log      zerolog.Logger
}

// NewAppService constructs an appService that satisfies ApplicationService.
// probes are checked by Health in addition to the repository.
func NewAppService(
	repo Repository,
	parser ai.EntryParser,
	renderer InvoiceRenderer,
	bills BillReader,
	probes map[string]Pinger,
	log zerolog.Logger,
) ApplicationService {
	return &appService{
		repo:     repo,
		parser:   parser,
		renderer: renderer,
		bills:    bills,
		probes:   probes,
		log:      log,
	}
}

func validMobile(mobile string) error {
	if !core.IsDigits(mobile) {
		return fmt.Errorf("mobile %q must be digits: %w", mobile, core.ErrInvalidInput)
	}
	return nil
}

// GetUser returns the identity and store header registered under mobile.
func (s *appService) GetUser(ctx context.Context, mobile string) (*UserResult, error) {
	if err := validMobile(mobile); err != nil {
		return nil, err
	}
	a, err := s.repo.GetAccount(ctx, mobile)
	if err != nil {
		return nil, err
	}
	return &UserResult{Identity: a.Identity, Settings: a.Settings}, nil
}

// RegisterUser creates an identity or renames an existing one.
func (s *appService) RegisterUser(ctx context.Context, req RegisterRequest) (*core.Identity, error) {
	id := core.Identity{Mobile: strings.TrimSpace(req.Mobile), Name: strings.TrimSpace(req.Name)}
	if id.Mobile == "" || id.Name == "" {
		return nil, fmt.Errorf("mobile and name required: %w", core.ErrInvalidInput)
	}
	if err := validMobile(id.Mobile); err != nil {
		return nil, err
	}
	if err := s.repo.Register(ctx, id); err != nil {
		return nil, fmt.Errorf("register %s: %w: %w", id.Mobile, core.ErrRegistrationFailed, err)
	}
	return &id, nil
}

// GetSettings returns the store header of mobile.
func (s *appService) GetSettings(ctx context.Context, mobile string) (core.Settings, error) {
	if err := validMobile(mobile); err != nil {
		return core.Settings{}, err
	}
	return s.repo.GetSettings(ctx, mobile)
}

// UpdateSettings keeps only known keys and rejects an empty change.
func (s *appService) UpdateSettings(ctx context.Context, mobile string, update core.SettingsUpdate) (*SettingsUpdateResult, error) {
	if err := validMobile(mobile); err != nil {
		return nil, err
	}
	known := core.SettingsUpdate{}
	for k, v := range update {
		if k.Valid() {
			known[k] = strings.TrimSpace(v)
		}
	}
	if len(known) == 0 {
		return nil, fmt.Errorf("no valid fields in payload: %w", core.ErrInvalidInput)
	}
	keys, err := s.repo.UpdateSettings(ctx, mobile, known)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("mobile", mobile).Int("fields", len(keys)).Msg("settings updated")
	return &SettingsUpdateResult{Updated: keys}, nil
}

// ListEntries returns every entry of mobile, newest first.
func (s *appService) ListEntries(ctx context.Context, mobile string) ([]core.LedgerEntry, error) {
	if err := validMobile(mobile); err != nil {
		return nil, err
	}
	return s.repo.ListEntries(ctx, mobile)
}

// AppendEntries stores a batch atomically.
func (s *appService) AppendEntries(ctx context.Context, mobile string, entries []core.LedgerEntry) (*AppendResult, error) {
	if err := validMobile(mobile); err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("items array required: %w", core.ErrInvalidInput)
	}
	n, err := s.repo.InsertEntries(ctx, mobile, entries)
	if err != nil {
		return nil, err
	}
	return &AppendResult{Inserted: n}, nil
}

// ParseMessage turns free text into candidate entries.
func (s *appService) ParseMessage(ctx context.Context, message string) ([]core.Candidate, error) {
	items, err := s.parser.Parse(ctx, message)
	if err != nil {
		return nil, err
	}
	s.log.Debug().Int("items", len(items)).Msg("message parsed")
	return items, nil
}

// GenerateInvoice renders an invoice document.
func (s *appService) GenerateInvoice(ctx context.Context, req core.InvoiceRequest) (*core.Document, error) {
	return s.renderer.Render(ctx, req)
}

// IngestInvoice reads an uploaded vendor bill and stores its payables in one batch.
func (s *appService) IngestInvoice(ctx context.Context, req IngestRequest) (*core.IngestResult, error) {
	if err := validMobile(req.Mobile); err != nil {
		return nil, err
	}
	bill, entries, err := s.bills.Read(ctx, req.Document)
	if err != nil {
		return nil, err
	}
	n, err := s.repo.InsertEntries(ctx, req.Mobile, entries)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, e := range entries {
		total = total.Sub(e.Revenue)
	}
	s.log.Info().Str("mobile", req.Mobile).Str("vendor", bill.Vendor).Int("inserted", n).Msg("bill ingested")
	return &core.IngestResult{Vendor: bill.Vendor, Inserted: n, TotalAmount: total}, nil
}

// Health pings the repository and every registered probe.
func (s *appService) Health(ctx context.Context) *HealthResult {
	res := &HealthResult{OK: true, Components: map[string]string{}}
	check := func(name string, p Pinger) {
		if err := p.Ping(ctx); err != nil {
			res.OK = false
			res.Components[name] = err.Error()
			return
		}
		res.Components[name] = "ok"
	}
	check("database", s.repo)
	for name, p := range s.probes {
		check(name, p)
	}
	return res
}

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"ledger-assistant/internal/core"
)

// Account is a registered identity together with its store header.
type Account struct {
	core.Identity
	core.Settings
}

// Store persists identities, store settings and ledger entries in PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
	log  zerolog.Logger
	now  func() time.Time
}

// New wraps an open pool.
func New(pool *pgxpool.Pool, log zerolog.Logger) *Store {
	return &Store{pool: pool, log: log, now: time.Now}
}

// Ping checks the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// GetAccount returns the identity registered under mobile.
func (s *Store) GetAccount(ctx context.Context, mobile string) (*Account, error) {
	a := &Account{}
	err := s.pool.QueryRow(ctx, `
		SELECT mobile, name, store_name, store_address, store_gst, store_contact
		FROM users
		WHERE mobile = $1`,
		mobile,
	).Scan(&a.Mobile, &a.Name, &a.StoreName, &a.StoreAddress, &a.StoreGST, &a.StoreContact)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user %s: %w", mobile, core.ErrNotFound)
		}
		return nil, fmt.Errorf("query user %s: %w", mobile, err)
	}
	return a, nil
}

// Register creates the identity or renames an existing one.
func (s *Store) Register(ctx context.Context, id core.Identity) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO users (mobile, name) VALUES ($1, $2)
		ON CONFLICT (mobile) DO UPDATE SET name = EXCLUDED.name`,
		id.Mobile, id.Name,
	)
	if err != nil {
		return fmt.Errorf("register %s: %w", id.Mobile, err)
	}
	s.log.Info().Str("mobile", id.Mobile).Msg("user registered")
	return nil
}

// GetSettings returns the store header of mobile.
func (s *Store) GetSettings(ctx context.Context, mobile string) (core.Settings, error) {
	a, err := s.GetAccount(ctx, mobile)
	if err != nil {
		return core.Settings{}, err
	}
	return a.Settings, nil
}

var settingColumns = map[core.SettingKey]string{
	core.SettingStoreName:    "store_name",
	core.SettingStoreAddress: "store_address",
	core.SettingStoreGST:     "store_gst",
	core.SettingStoreContact: "store_contact",
}

// UpdateSettings changes only the provided fields, creating a placeholder
// identity when mobile is unknown. It returns the keys written.
func (s *Store) UpdateSettings(ctx context.Context, mobile string, update core.SettingsUpdate) ([]core.SettingKey, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := ensureUser(ctx, tx, mobile); err != nil {
		return nil, err
	}

	var updated []core.SettingKey
	for _, key := range core.SettingKeys {
		value, ok := update[key]
		if !ok {
			continue
		}
		// Column names come from a fixed table, never from input.
		query := fmt.Sprintf("UPDATE users SET %s = $1 WHERE mobile = $2", settingColumns[key])
		if _, err := tx.Exec(ctx, query, value, mobile); err != nil {
			return nil, fmt.Errorf("update %s: %w", key, err)
		}
		updated = append(updated, key)
	}
	if len(updated) == 0 {
		return nil, fmt.Errorf("no valid fields in payload: %w", core.ErrInvalidInput)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit settings: %w", err)
	}
	return updated, nil
}

// ListEntries returns every entry of mobile, newest first.
func (s *Store) ListEntries(ctx context.Context, mobile string) ([]core.LedgerEntry, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, product, units, revenue::text, credit, creditor, date
		FROM entries
		WHERE mobile = $1
		ORDER BY date DESC, id DESC`,
		mobile,
	)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	entries := []core.LedgerEntry{}
	for rows.Next() {
		var (
			e       core.LedgerEntry
			revenue string
		)
		if err := rows.Scan(&e.ID, &e.Product, &e.Units, &revenue, &e.Credit, &e.Creditor, &e.Date); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		e.Revenue, err = decimal.NewFromString(revenue)
		if err != nil {
			return nil, fmt.Errorf("entry %d revenue %q: %w", e.ID, revenue, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows failed: %w", err)
	}
	return entries, nil
}

// InsertEntries appends entries for mobile in one transaction. Zero-revenue
// entries are dropped; ErrNoValidItems is returned when nothing remains.
// An entry without a date is stamped with the current time.
func (s *Store) InsertEntries(ctx context.Context, mobile string, entries []core.LedgerEntry) (int, error) {
	entries = core.DropZeroRevenue(entries)
	if len(entries) == 0 {
		return 0, core.ErrNoValidItems
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := ensureUser(ctx, tx, mobile); err != nil {
		return 0, err
	}

	now := s.now()
	batch := &pgx.Batch{}
	for _, e := range entries {
		date := e.Date
		if date.IsZero() {
			date = now
		}
		var units *int
		if e.Units != nil && e.Product != "" {
			units = e.Units
		}
		batch.Queue(`
			INSERT INTO entries (mobile, product, units, revenue, credit, creditor, date)
			VALUES ($1, $2, $3, $4::numeric, $5, $6, $7)`,
			mobile, e.Product, units, e.Revenue.StringFixed(2), e.Credit, e.Creditor, date,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return 0, fmt.Errorf("insert entries: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit entries: %w", err)
	}
	s.log.Debug().Str("mobile", mobile).Int("inserted", len(entries)).Msg("entries stored")
	return len(entries), nil
}

func ensureUser(ctx context.Context, tx pgx.Tx, mobile string) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO users (mobile, name) VALUES ($1, $2)
		ON CONFLICT (mobile) DO NOTHING`,
		mobile, "User "+mobile,
	)
	if err != nil {
		return fmt.Errorf("ensure user %s: %w", mobile, err)
	}
	return nil
}

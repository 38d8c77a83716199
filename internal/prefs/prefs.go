// Package prefs stores the UI language chosen per mobile number. It is the
// only client-side state that survives a session.
package prefs

import (
	"context"
	"fmt"
	"sync"

	"ledger-assistant/internal/core"
	"ledger-assistant/internal/i18n"
)

// Store reads and writes language preferences. Language returns
// core.ErrNotFound when nothing was saved for the mobile.
type Store interface {
	Language(ctx context.Context, mobile string) (i18n.Lang, error)
	SetLanguage(ctx context.Context, mobile string, lang i18n.Lang) error
}

func key(mobile string) string {
	return "lang:" + mobile
}

func decode(mobile, raw string) (i18n.Lang, error) {
	lang := i18n.Lang(raw)
	if !lang.Valid() {
		return "", fmt.Errorf("prefs: stored language %q for %s: %w", raw, mobile, core.ErrNotFound)
	}
	return lang, nil
}

// MemoryStore keeps preferences for the lifetime of the process.
type MemoryStore struct {
	mu    sync.RWMutex
	langs map[string]i18n.Lang
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{langs: make(map[string]i18n.Lang)}
}

func (m *MemoryStore) Language(_ context.Context, mobile string) (i18n.Lang, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	lang, ok := m.langs[key(mobile)]
	if !ok {
		return "", core.ErrNotFound
	}
	return lang, nil
}

func (m *MemoryStore) SetLanguage(_ context.Context, mobile string, lang i18n.Lang) error {
	if !lang.Valid() {
		return fmt.Errorf("prefs: unsupported language %q: %w", lang, core.ErrInvalidInput)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.langs[key(mobile)] = lang
	return nil
}

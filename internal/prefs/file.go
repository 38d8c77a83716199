package prefs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"ledger-assistant/internal/core"
	"ledger-assistant/internal/i18n"
)

// FileStore keeps preferences in one JSON object on disk, keyed like the
// Redis store. Every write rewrites the file through a temp file.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore uses path; the file is created on first write.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) load() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("prefs: read %s: %w", f.path, err)
	}
	m := map[string]string{}
	if len(data) == 0 {
		return m, nil
	}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("prefs: decode %s: %w", f.path, err)
	}
	return m, nil
}

func (f *FileStore) Language(_ context.Context, mobile string) (i18n.Lang, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, err := f.load()
	if err != nil {
		return "", err
	}
	raw, ok := m[key(mobile)]
	if !ok {
		return "", core.ErrNotFound
	}
	return decode(mobile, raw)
}

func (f *FileStore) SetLanguage(_ context.Context, mobile string, lang i18n.Lang) error {
	if !lang.Valid() {
		return fmt.Errorf("prefs: unsupported language %q: %w", lang, core.ErrInvalidInput)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	m, err := f.load()
	if err != nil {
		return err
	}
	m[key(mobile)] = string(lang)

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("prefs: encode: %w", err)
	}
	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("prefs: create %s: %w", dir, err)
		}
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("prefs: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("prefs: replace %s: %w", f.path, err)
	}
	return nil
}

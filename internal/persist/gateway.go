package persist

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Gateway is the storage boundary the session autosaves through. Load
// reports ok=false when no save exists; a decode failure is returned as
// an error so callers can fall back to a fresh session.
type Gateway interface {
	Save(s State) error
	Load() (State, bool, error)
	Clear() error
}

// FileStore keeps the session in a single JSON file. Writes go through a
// temp file and rename so a crash mid-save never leaves a torn document.
type FileStore struct {
	Path string
}

func NewFileStore(path string) *FileStore { return &FileStore{Path: path} }

func (f *FileStore) Save(s State) error {
	s.Version = CurrentVersion
	if s.SavedAt.IsZero() {
		s.SavedAt = time.Now().UTC()
	}
	raw, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("persist: encode state: %w", err)
	}

	dir := filepath.Dir(f.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("persist: mkdir %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".session-*.json")
	if err != nil {
		return fmt.Errorf("persist: temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("persist: write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("persist: close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, f.Path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("persist: rename to %s: %w", f.Path, err)
	}
	return nil
}

func (f *FileStore) Load() (State, bool, error) {
	raw, err := os.ReadFile(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return State{}, false, nil
	}
	if err != nil {
		return State{}, false, fmt.Errorf("persist: read %s: %w", f.Path, err)
	}

	var s State
	if err := json.Unmarshal(raw, &s); err != nil {
		return State{}, false, fmt.Errorf("persist: decode %s: %w", f.Path, err)
	}
	if s.Version > CurrentVersion {
		return State{}, false, fmt.Errorf("persist: %s is version %d, engine supports %d", f.Path, s.Version, CurrentVersion)
	}
	return s, true, nil
}

func (f *FileStore) Clear() error {
	err := os.Remove(f.Path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("persist: remove %s: %w", f.Path, err)
	}
	return nil
}

// MemoryStore keeps the session in memory. Used by tests and by embedders
// that manage durability themselves.
type MemoryStore struct {
	mu    sync.Mutex
	state State
	saved bool
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (m *MemoryStore) Save(s State) error {
	s.Version = CurrentVersion
	if s.SavedAt.IsZero() {
		s.SavedAt = time.Now().UTC()
	}
	// Copy the items slice so later caller mutations don't leak in.
	s.Items = append([]SavedItem(nil), s.Items...)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = s
	m.saved = true
	return nil
}

func (m *MemoryStore) Load() (State, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.saved {
		return State{}, false, nil
	}
	out := m.state
	out.Items = append([]SavedItem(nil), m.state.Items...)
	return out, true, nil
}

func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = State{}
	m.saved = false
	return nil
}

package data

import (
	"log/slog"
	"sync"
	"time"
)

// Store holds the currently loaded table. The table itself is immutable; a
// reload swaps the pointer.
type Store struct {
	path  string
	sheet string

	mu       sync.RWMutex
	table    *Table
	gen      uint64
	loadedAt time.Time

	listeners []func(gen uint64)
}

// Open loads the dataset at path and returns a store serving it.
func Open(path, sheet string) (*Store, error) {
	s := &Store{path: path, sheet: sheet}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewStaticStore serves a prebuilt table. Reload is a no-op when path is empty.
func NewStaticStore(t *Table) *Store {
	return &Store{table: t, gen: 1, loadedAt: time.Now()}
}

func (s *Store) Path() string { return s.path }

// Table returns the current table and its generation.
func (s *Store) Table() (*Table, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table, s.gen
}

func (s *Store) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

// OnReload registers fn to run after every successful reload.
func (s *Store) OnReload(fn func(gen uint64)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Reload re-reads the dataset file. On error the previous table stays in place.
func (s *Store) Reload() error {
	if s.path == "" {
		return nil
	}
	start := time.Now()
	t, stats, err := Load(s.path, s.sheet)
	if err != nil {
		slog.Error("dataset load failed", "path", s.path, "err", err)
		return err
	}

	s.mu.Lock()
	s.table = t
	s.gen++
	s.loadedAt = time.Now()
	gen := s.gen
	listeners := append([]func(uint64){}, s.listeners...)
	s.mu.Unlock()

	slog.Info("dataset loaded",
		"path", s.path,
		"rows_read", stats.RowsRead,
		"rows_kept", stats.RowsKept,
		"rows_dropped", stats.RowsDropped,
		"generation", gen,
		"took", time.Since(start),
	)
	for _, fn := range listeners {
		fn(gen)
	}
	return nil
}

package cooldown

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// tsLayout is second-precision UTC with a literal Z suffix, matching the
// format the state file has always carried.
const tsLayout = "2006-01-02T15:04:05Z"

// Record names the last notified market and when the notification fired.
type Record struct {
	Symbol string `json:"symbol"`
	TS     string `json:"ts"`
}

// NewRecord builds a record stamped at the given instant, truncated to
// second precision in UTC.
func NewRecord(symbol string, at time.Time) Record {
	return Record{Symbol: symbol, TS: at.UTC().Format(tsLayout)}
}

// Timestamp parses the recorded instant. ok is false when the stored value
// does not parse, which callers treat as an already-expired cooldown.
func (r Record) Timestamp() (time.Time, bool) {
	ts, err := time.Parse(time.RFC3339, r.TS)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

// state is the persisted file shape: {"last": {...}}.
type state struct {
	Last *Record `json:"last,omitempty"`
}

// Store persists the single cooldown record.
type Store interface {
	// Load returns the last record, or nil when none exists. Absent or
	// unreadable state is empty state, never an error.
	Load(ctx context.Context) (*Record, error)
	// Save overwrites the record wholesale.
	Save(ctx context.Context, rec Record) error
}

// FileStore keeps the record in a small JSON file.
type FileStore struct {
	path   string
	logger zerolog.Logger
}

// NewFileStore constructs a file-backed store.
func NewFileStore(path string, logger zerolog.Logger) *FileStore {
	return &FileStore{
		path:   path,
		logger: logger.With().Str("component", "cooldown_store").Logger(),
	}
}

// Load reads the state file. A missing, unreadable, or corrupt file yields
// no prior record.
func (f *FileStore) Load(ctx context.Context) (*Record, error) {
	payload, err := os.ReadFile(f.path)
	if err != nil {
		if !os.IsNotExist(err) {
			f.logger.Warn().Err(err).Str("path", f.path).Msg("state file unreadable; treating as empty")
		}
		return nil, nil
	}

	var st state
	if err := json.Unmarshal(payload, &st); err != nil {
		f.logger.Warn().Err(err).Str("path", f.path).Msg("state file corrupt; treating as empty")
		return nil, nil
	}

	return st.Last, nil
}

// Save overwrites the state file with the given record.
func (f *FileStore) Save(ctx context.Context, rec Record) error {
	payload, err := json.MarshalIndent(state{Last: &rec}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal cooldown state: %w", err)
	}
	if err := os.WriteFile(f.path, payload, 0o644); err != nil {
		return fmt.Errorf("write cooldown state: %w", err)
	}
	return nil
}

// MemoryStore is an in-memory Store used by tests and the simulate command.
type MemoryStore struct {
	mu  sync.Mutex
	rec *Record
}

// NewMemoryStore constructs an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns the held record.
func (m *MemoryStore) Load(ctx context.Context) (*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.rec == nil {
		return nil, nil
	}
	rec := *m.rec
	return &rec, nil
}

// Save replaces the held record.
func (m *MemoryStore) Save(ctx context.Context, rec Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rec = &rec
	return nil
}

var _ Store = (*FileStore)(nil)
var _ Store = (*MemoryStore)(nil)

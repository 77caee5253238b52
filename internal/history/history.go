package history

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// TimeLayout is the timestamp format used in the persisted document.
const TimeLayout = "2006-01-02 15:04:05"

// Entry is one recorded rewrite: the submitted text and the generated
// counterpart. CharCount is the rune count of Original, stored redundantly
// so aggregate stats never need to rescan the texts.
type Entry struct {
	Timestamp string `json:"timestamp"`
	Original  string `json:"original"`
	Rewritten string `json:"rewritten"`
	CharCount int    `json:"char_count"`
}

// Store abstracts persistence of rewrite events. Entries are append-only
// and returned in insertion (chronological) order.
type Store interface {
	Append(original, rewritten string) (Entry, error)
	List() []Entry
	Clear() error
}

// FileStore keeps the full history in memory and rewrites one indented
// JSON array on every mutation. Safe for concurrent use.
type FileStore struct {
	path    string
	mu      sync.Mutex
	entries []Entry
	now     func() time.Time
}

func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure dir: %w", err)
	}
	s := &FileStore{path: path, now: time.Now}
	s.load()
	return s, nil
}

// load reads the persisted document. A missing or malformed file starts
// the store empty rather than failing startup.
func (s *FileStore) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("failed to read history file %s: %v", s.path, err)
		}
		s.entries = nil
		return
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		log.Printf("history file %s is malformed, starting empty: %v", s.path, err)
		s.entries = nil
		return
	}
	s.entries = entries
}

// Append records a rewrite event stamped with the current local time and
// persists the full document. On a persistence failure the in-memory state
// already holds the entry; the error is reported to the caller.
func (s *FileStore) Append(original, rewritten string) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := Entry{
		Timestamp: s.now().Format(TimeLayout),
		Original:  original,
		Rewritten: rewritten,
		CharCount: len([]rune(original)),
	}
	s.entries = append(s.entries, e)
	if err := s.saveUnlocked(); err != nil {
		return e, fmt.Errorf("persist history: %w", err)
	}
	return e, nil
}

// List returns a copy of all entries in insertion order.
func (s *FileStore) List() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Clear discards all entries and persists the empty document.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	if err := s.saveUnlocked(); err != nil {
		return fmt.Errorf("persist history: %w", err)
	}
	return nil
}

func (s *FileStore) saveUnlocked() error {
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func(f *os.File) {
		err := f.Close()
		if err != nil {
		}
	}(f)
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if s.entries == nil {
		return enc.Encode([]Entry{})
	}
	return enc.Encode(s.entries)
}

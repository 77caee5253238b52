package history

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileStore_AppendAndList(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "user_history.json")
	s, err := NewFileStore(p)
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	s.now = func() time.Time { return time.Date(2025, 3, 14, 15, 9, 26, 0, time.Local) }

	e, err := s.Append("hello world", "Hi there, world!")
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if e.CharCount != 11 {
		t.Fatalf("want char_count 11, got %d", e.CharCount)
	}
	if e.Timestamp != "2025-03-14 15:09:26" {
		t.Fatalf("unexpected timestamp: %s", e.Timestamp)
	}

	if _, err := s.Append("second", "दूसरा"); err != nil {
		t.Fatalf("append2: %v", err)
	}

	entries := s.List()
	if len(entries) != 2 {
		t.Fatalf("want 2 entries, got %d", len(entries))
	}
	if entries[0].Original != "hello world" || entries[1].Original != "second" {
		t.Fatalf("order mismatch: %+v", entries)
	}

	st, err := os.Stat(p)
	if err != nil || st.Size() == 0 {
		t.Fatalf("file not written")
	}
}

func TestFileStore_CharCountRunes(t *testing.T) {
	s, err := NewFileStore(filepath.Join(t.TempDir(), "h.json"))
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	e, err := s.Append("नमस्ते", "hello")
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if e.CharCount != 6 {
		t.Fatalf("want rune count 6, got %d", e.CharCount)
	}
}

func TestFileStore_Reload(t *testing.T) {
	p := filepath.Join(t.TempDir(), "h.json")
	s, err := NewFileStore(p)
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	if _, err := s.Append("one", "ek"); err != nil {
		t.Fatalf("append: %v", err)
	}
	if _, err := s.Append("two", "do"); err != nil {
		t.Fatalf("append: %v", err)
	}

	s2, err := NewFileStore(p)
	if err != nil {
		t.Fatalf("reload store: %v", err)
	}
	a, b := s.List(), s2.List()
	if len(a) != len(b) {
		t.Fatalf("reload length mismatch: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("entry %d mismatch: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestFileStore_Clear(t *testing.T) {
	p := filepath.Join(t.TempDir(), "h.json")
	s, err := NewFileStore(p)
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	if _, err := s.Append("one", "ek"); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if len(s.List()) != 0 {
		t.Fatalf("list not empty after clear")
	}

	// Cleared state survives a reload
	s2, err := NewFileStore(p)
	if err != nil {
		t.Fatalf("reload store: %v", err)
	}
	if len(s2.List()) != 0 {
		t.Fatalf("cleared state did not persist")
	}
}

func TestFileStore_MalformedFileStartsEmpty(t *testing.T) {
	p := filepath.Join(t.TempDir(), "h.json")
	if err := os.WriteFile(p, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	s, err := NewFileStore(p)
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	if len(s.List()) != 0 {
		t.Fatalf("want empty store on malformed file")
	}
	// Store remains usable
	if _, err := s.Append("x", "y"); err != nil {
		t.Fatalf("append after malformed load: %v", err)
	}
}

func TestFileStore_MissingFileStartsEmpty(t *testing.T) {
	s, err := NewFileStore(filepath.Join(t.TempDir(), "absent", "h.json"))
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	if len(s.List()) != 0 {
		t.Fatalf("want empty store on missing file")
	}
}

func TestFileStore_ListReturnsCopy(t *testing.T) {
	s, err := NewFileStore(filepath.Join(t.TempDir(), "h.json"))
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	if _, err := s.Append("one", "ek"); err != nil {
		t.Fatalf("append: %v", err)
	}
	got := s.List()
	got[0].Original = "mutated"
	if s.List()[0].Original != "one" {
		t.Fatalf("List exposed internal state")
	}
}

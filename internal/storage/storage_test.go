package storage

import (
	"errors"
	"path/filepath"
	"testing"
)

func exerciseStore(t *testing.T, s Store) {
	t.Helper()

	if _, err := s.Get("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get(missing) error = %v, want ErrNotFound", err)
	}

	if err := s.Set("student_session", []byte(`{"code":"A"}`)); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := s.Set("student_session", []byte(`{"code":"B"}`)); err != nil {
		t.Fatalf("Set() overwrite error = %v", err)
	}

	got, err := s.Get("student_session")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(got) != `{"code":"B"}` {
		t.Errorf("Get() = %s, want overwritten value", got)
	}

	if err := s.Delete("student_session"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := s.Get("student_session"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrNotFound", err)
	}
	if err := s.Delete("student_session"); err != nil {
		t.Errorf("Delete() of absent key error = %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	s := NewMemoryStore()
	value := []byte("abc")
	_ = s.Set("k", value)
	value[0] = 'z'
	got, _ := s.Get("k")
	if string(got) != "abc" {
		t.Errorf("stored value aliased caller slice: %s", got)
	}
}

func TestSQLiteStore(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping SQLite store test in short mode")
	}

	path := filepath.Join(t.TempDir(), "local.db")
	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}

	exerciseStore(t, s)

	// Reopening must not fail on the existing table and must keep data
	if err := s.Set("we-will-shine-progress", []byte("{}")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	s.Close()

	s2, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer s2.Close()
	if got, err := s2.Get("we-will-shine-progress"); err != nil || string(got) != "{}" {
		t.Errorf("Get() after reopen = %s, %v", got, err)
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	if _, err := Open("redis", ""); err == nil {
		t.Error("Open(redis) expected error")
	}
	s, err := Open("memory", "")
	if err != nil {
		t.Fatalf("Open(memory) error = %v", err)
	}
	if _, ok := s.(*MemoryStore); !ok {
		t.Errorf("Open(memory) = %T", s)
	}
}

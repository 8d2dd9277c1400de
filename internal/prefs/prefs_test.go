package prefs

import (
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestDefaultsSeeded(t *testing.T) {
	s := newTestStore(t)

	tests := []struct {
		key, want string
	}{
		{KeySortKey, "name"},
		{KeySortDesc, "false"},
		{KeyChartDays, "7"},
		{KeyExportDir, ""},
	}
	for _, tt := range tests {
		got, err := s.Get(tt.key)
		if err != nil {
			t.Fatalf("Get(%q): %v", tt.key, err)
		}
		if got != tt.want {
			t.Errorf("Get(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestSetAndGet(t *testing.T) {
	s := newTestStore(t)

	if err := s.Set(KeySortKey, "next_watering"); err != nil {
		t.Fatal(err)
	}
	got, err := s.Get(KeySortKey)
	if err != nil {
		t.Fatal(err)
	}
	if got != "next_watering" {
		t.Fatalf("Get = %q", got)
	}
}

func TestSetUpsertsNewKey(t *testing.T) {
	s := newTestStore(t)

	if err := s.Set("custom_key", "v1"); err != nil {
		t.Fatal(err)
	}
	if err := s.Set("custom_key", "v2"); err != nil {
		t.Fatal(err)
	}
	got, err := s.Get("custom_key")
	if err != nil {
		t.Fatal(err)
	}
	if got != "v2" {
		t.Fatalf("Get = %q, want v2", got)
	}
}

func TestGetMissingKey(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Get("nope"); err == nil {
		t.Fatal("missing key should error")
	}
}

func TestGetDefault(t *testing.T) {
	s := newTestStore(t)

	if got := s.GetDefault("nope", "fallback"); got != "fallback" {
		t.Fatalf("GetDefault = %q", got)
	}
	if got := s.GetDefault(KeyChartDays, "30"); got != "7" {
		t.Fatalf("GetDefault = %q, want the stored value", got)
	}
}

func TestAll(t *testing.T) {
	s := newTestStore(t)
	s.Set(KeyChartDays, "14")

	all, err := s.All()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) < 4 {
		t.Fatalf("All returned %d entries, want at least the seeded 4", len(all))
	}
	if all[KeyChartDays] != "14" {
		t.Fatalf("All()[%q] = %q", KeyChartDays, all[KeyChartDays])
	}
}

func TestPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.db")

	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Set(KeySortDesc, "true"); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()

	got, err := s2.Get(KeySortDesc)
	if err != nil {
		t.Fatal(err)
	}
	if got != "true" {
		t.Fatalf("Get after reopen = %q, want true", got)
	}
}

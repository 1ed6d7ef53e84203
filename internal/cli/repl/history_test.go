package repl

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestNewHistory_Defaults(t *testing.T) {
	h := NewHistory("", 0)
	if h.maxSize != DefaultHistorySize {
		t.Errorf("maxSize = %d, want %d", h.maxSize, DefaultHistorySize)
	}
	if len(h.Entries()) != 0 {
		t.Errorf("Len() = %d, want 0", len(h.Entries()))
	}
}

func TestHistory_AddAndGet(t *testing.T) {
	h := NewHistory("", 10)
	h.Add("get a")
	h.Add("get b")
	h.Add("get b")

	if len(h.Entries()) != 2 {
		t.Errorf("Len() = %d, want 2 (consecutive duplicate dropped)", len(h.Entries()))
	}
	tests := []struct {
		index int
		want  string
	}{
		{0, "get b"},
		{1, "get a"},
		{2, ""},
		{-1, ""},
	}
	for _, tt := range tests {
		if got := h.Get(tt.index); got != tt.want {
			t.Errorf("Get(%d) = %q, want %q", tt.index, got, tt.want)
		}
	}
}

func TestHistory_MaxSize(t *testing.T) {
	h := NewHistory("", 3)
	for _, c := range []string{"1", "2", "3", "4", "5"} {
		h.Add(c)
	}
	if got := h.Entries(); !reflect.DeepEqual(got, []string{"3", "4", "5"}) {
		t.Errorf("Entries() = %v, want [3 4 5]", got)
	}
}

func TestHistory_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "history")

	h := NewHistory(path, 10)
	h.Add("set k v")
	h.Add("get k")
	if err := h.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("mode = %o, want 600", perm)
	}

	loaded := NewHistory(path, 10)
	if err := loaded.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := loaded.Entries(); !reflect.DeepEqual(got, []string{"set k v", "get k"}) {
		t.Errorf("Entries() = %v", got)
	}
}

func TestHistory_LoadMissingFile(t *testing.T) {
	h := NewHistory(filepath.Join(t.TempDir(), "none"), 10)
	if err := h.Load(); err != nil {
		t.Errorf("Load() error = %v, want nil", err)
	}
}

func TestHistory_InMemory(t *testing.T) {
	h := NewHistory("", 10)
	h.Add("x")
	if err := h.Save(); err != nil {
		t.Errorf("Save() error = %v", err)
	}
	if err := h.Load(); err != nil {
		t.Errorf("Load() error = %v", err)
	}
}

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tidwall/gjson"
)

func storeAt(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "config.json"))
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	s := storeAt(t)

	got, err := s.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != Defaults() {
		t.Errorf("expected defaults, got %+v", got)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := storeAt(t)

	want := Settings{
		Theme:           "monokai",
		TabWidth:        2,
		AutoIndent:      false,
		ShowLineNumbers: false,
		MaxUndoEntries:  500,
		Interpreter:     "python3.12",
		RunTimeoutSecs:  5,
		PolicyScript:    "/etc/pyedit/policy.lua",
	}
	if err := s.Save(want); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestLoadPartialFile(t *testing.T) {
	s := storeAt(t)
	if err := os.WriteFile(s.Path(), []byte(`{"theme":"monokai"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Theme != "monokai" {
		t.Errorf("expected theme monokai, got %s", got.Theme)
	}
	if got.TabWidth != DefaultTabWidth {
		t.Errorf("expected default tab width, got %d", got.TabWidth)
	}
}

func TestLoadMistypedFieldFallsBack(t *testing.T) {
	s := storeAt(t)
	if err := os.WriteFile(s.Path(), []byte(`{"tab_width":"wide","auto_indent":false}`), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.TabWidth != DefaultTabWidth {
		t.Errorf("expected default tab width for mistyped field, got %d", got.TabWidth)
	}
	if got.AutoIndent {
		t.Error("expected auto_indent false to load")
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	s := storeAt(t)
	if err := os.WriteFile(s.Path(), []byte("{nope"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := s.Load()
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
	if got != Defaults() {
		t.Errorf("expected defaults alongside error, got %+v", got)
	}
}

func TestLoadClampsOutOfRange(t *testing.T) {
	s := storeAt(t)
	if err := os.WriteFile(s.Path(), []byte(`{"tab_width":99,"max_undo_entries":-5,"run_timeout_secs":-1}`), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.TabWidth != maxTabWidth {
		t.Errorf("expected tab width clamped to %d, got %d", maxTabWidth, got.TabWidth)
	}
	if got.MaxUndoEntries != 0 {
		t.Errorf("expected negative undo cap clamped to 0, got %d", got.MaxUndoEntries)
	}
	if got.RunTimeoutSecs != 0 {
		t.Errorf("expected negative timeout clamped to 0, got %d", got.RunTimeoutSecs)
	}
}

func TestSavePreservesUnknownKeys(t *testing.T) {
	s := storeAt(t)
	if err := os.WriteFile(s.Path(), []byte(`{"theme":"default","custom_plugin":{"enabled":true}}`), 0o644); err != nil {
		t.Fatal(err)
	}

	settings := Defaults()
	settings.Theme = "monokai"
	if err := s.Save(settings); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatal(err)
	}
	doc := string(data)
	if !gjson.Get(doc, "custom_plugin.enabled").Bool() {
		t.Errorf("expected unknown key preserved, got %s", doc)
	}
	if gjson.Get(doc, "theme").String() != "monokai" {
		t.Errorf("expected theme updated, got %s", doc)
	}
}

func TestSaveCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "nested", "config.json")
	s := NewStore(path)

	if err := s.Save(Defaults()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected config file to exist: %v", err)
	}
}

func TestDefaultPathFallback(t *testing.T) {
	if p := DefaultPath(); !strings.HasSuffix(p, ".json") {
		t.Errorf("expected json path, got %s", p)
	}
}

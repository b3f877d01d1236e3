package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Defaults applied when a field is absent or out of range.
const (
	DefaultTheme          = "default"
	DefaultTabWidth       = 4
	DefaultMaxUndo        = 0 // unlimited
	DefaultInterpreter    = "python3"
	DefaultRunTimeoutSecs = 30

	minTabWidth = 1
	maxTabWidth = 16
)

// ErrInvalidConfig is returned when the config file exists but is not
// valid JSON.
var ErrInvalidConfig = errors.New("config: invalid JSON")

// Settings holds the editor configuration.
type Settings struct {
	Theme           string
	TabWidth        int
	AutoIndent      bool
	ShowLineNumbers bool
	MaxUndoEntries  int
	Interpreter     string
	RunTimeoutSecs  int
	PolicyScript    string
}

// Defaults returns the built-in settings.
func Defaults() Settings {
	return Settings{
		Theme:           DefaultTheme,
		TabWidth:        DefaultTabWidth,
		AutoIndent:      true,
		ShowLineNumbers: true,
		MaxUndoEntries:  DefaultMaxUndo,
		Interpreter:     DefaultInterpreter,
		RunTimeoutSecs:  DefaultRunTimeoutSecs,
	}
}

// Store loads and saves settings at a fixed path. Saving preserves
// unknown keys already present in the file, so hand-edited extras
// survive round trips.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore creates a store for the given path. An empty path resolves
// to DefaultPath().
func NewStore(path string) *Store {
	if path == "" {
		path = DefaultPath()
	}
	return &Store{path: path}
}

// DefaultPath returns the per-user config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", "pyedit.json")
	}
	return filepath.Join(dir, "pyedit", "config.json")
}

// Path returns the file path the store reads and writes.
func (s *Store) Path() string {
	return s.path
}

// Load reads settings from disk. A missing file yields the defaults;
// missing or mistyped fields fall back individually, so one bad entry
// does not discard the rest of the file.
func (s *Store) Load() (Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings := Defaults()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return settings, nil
	}
	if err != nil {
		return settings, fmt.Errorf("config: reading %s: %w", s.path, err)
	}
	if !gjson.ValidBytes(data) {
		return settings, fmt.Errorf("%w: %s", ErrInvalidConfig, s.path)
	}

	doc := string(data)
	if v := gjson.Get(doc, "theme"); v.Type == gjson.String {
		settings.Theme = v.String()
	}
	if v := gjson.Get(doc, "tab_width"); v.Type == gjson.Number {
		settings.TabWidth = int(v.Int())
	}
	if v := gjson.Get(doc, "auto_indent"); isBool(v) {
		settings.AutoIndent = v.Bool()
	}
	if v := gjson.Get(doc, "show_line_numbers"); isBool(v) {
		settings.ShowLineNumbers = v.Bool()
	}
	if v := gjson.Get(doc, "max_undo_entries"); v.Type == gjson.Number {
		settings.MaxUndoEntries = int(v.Int())
	}
	if v := gjson.Get(doc, "interpreter"); v.Type == gjson.String && v.String() != "" {
		settings.Interpreter = v.String()
	}
	if v := gjson.Get(doc, "run_timeout_secs"); v.Type == gjson.Number {
		settings.RunTimeoutSecs = int(v.Int())
	}
	if v := gjson.Get(doc, "policy_script"); v.Type == gjson.String {
		settings.PolicyScript = v.String()
	}

	settings.clamp()
	return settings, nil
}

// Save writes settings to disk, creating parent directories and
// keeping any unrecognized keys the file already carries.
func (s *Store) Save(settings Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings.clamp()

	doc := "{}"
	if data, err := os.ReadFile(s.path); err == nil && gjson.ValidBytes(data) {
		doc = string(data)
	}

	var err error
	for _, field := range []struct {
		key   string
		value any
	}{
		{"theme", settings.Theme},
		{"tab_width", settings.TabWidth},
		{"auto_indent", settings.AutoIndent},
		{"show_line_numbers", settings.ShowLineNumbers},
		{"max_undo_entries", settings.MaxUndoEntries},
		{"interpreter", settings.Interpreter},
		{"run_timeout_secs", settings.RunTimeoutSecs},
		{"policy_script", settings.PolicyScript},
	} {
		doc, err = sjson.Set(doc, field.key, field.value)
		if err != nil {
			return fmt.Errorf("config: encoding %s: %w", field.key, err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("config: creating config dir: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(doc+"\n"), 0o644); err != nil {
		return fmt.Errorf("config: writing %s: %w", s.path, err)
	}
	return nil
}

func isBool(v gjson.Result) bool {
	return v.Type == gjson.True || v.Type == gjson.False
}

// clamp forces out-of-range values back to usable ones.
func (s *Settings) clamp() {
	if s.TabWidth < minTabWidth {
		s.TabWidth = minTabWidth
	}
	if s.TabWidth > maxTabWidth {
		s.TabWidth = maxTabWidth
	}
	if s.MaxUndoEntries < 0 {
		s.MaxUndoEntries = 0
	}
	if s.RunTimeoutSecs < 0 {
		s.RunTimeoutSecs = 0
	}
	if s.Interpreter == "" {
		s.Interpreter = DefaultInterpreter
	}
	if s.Theme == "" {
		s.Theme = DefaultTheme
	}
}

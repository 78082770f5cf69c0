package dashboard

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Theme is the dashboard color scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ThemeStore is the process-wide theme state. Initialization order: the
// stored preference, else the system preference, else light. Mutation goes
// through Set, which persists the choice for the next run.
type ThemeStore struct {
	mu      sync.Mutex
	path    string
	current Theme
}

// LoadTheme initializes the theme state. path is the preference file;
// systemDark reports whether the environment prefers a dark scheme and may
// be nil.
func LoadTheme(path string, systemDark func() bool) *ThemeStore {
	s := &ThemeStore{path: path, current: ThemeLight}

	if data, err := os.ReadFile(path); err == nil {
		switch Theme(strings.TrimSpace(string(data))) {
		case ThemeDark:
			s.current = ThemeDark
			return s
		case ThemeLight:
			return s
		}
	}

	if systemDark != nil && systemDark() {
		s.current = ThemeDark
	}

	return s
}

// Current returns the active theme.
func (s *ThemeStore) Current() Theme {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.current
}

// Set switches the active theme and stores the preference.
func (s *ThemeStore) Set(t Theme) error {
	if t != ThemeLight && t != ThemeDark {
		return fmt.Errorf("unknown theme: %s", t)
	}

	s.mu.Lock()
	s.current = t
	s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating preference directory: %w", err)
	}

	if err := os.WriteFile(s.path, []byte(t+"\n"), 0o644); err != nil {
		return fmt.Errorf("storing theme preference: %w", err)
	}

	return nil
}

// ToggleTheme flips between light and dark.
func (s *ThemeStore) ToggleTheme() error {
	if s.Current() == ThemeDark {
		return s.Set(ThemeLight)
	}

	return s.Set(ThemeDark)
}

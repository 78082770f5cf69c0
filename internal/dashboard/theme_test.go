package dashboard_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rangehq/rangefin/internal/dashboard"
)

func TestLoadTheme_StoredPreferenceWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme")
	require.NoError(t, os.WriteFile(path, []byte("dark\n"), 0o644))

	s := dashboard.LoadTheme(path, func() bool { return false })
	assert.Equal(t, dashboard.ThemeDark, s.Current())
}

func TestLoadTheme_SystemPreferenceFallback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme")

	s := dashboard.LoadTheme(path, func() bool { return true })
	assert.Equal(t, dashboard.ThemeDark, s.Current())
}

func TestLoadTheme_DefaultsToLight(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme")

	s := dashboard.LoadTheme(path, nil)
	assert.Equal(t, dashboard.ThemeLight, s.Current())

	// Garbage in the preference file falls through to the default chain.
	require.NoError(t, os.WriteFile(path, []byte("solarized"), 0o644))
	s = dashboard.LoadTheme(path, nil)
	assert.Equal(t, dashboard.ThemeLight, s.Current())
}

func TestThemeStore_SetPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs", "theme")

	s := dashboard.LoadTheme(path, nil)
	require.NoError(t, s.Set(dashboard.ThemeDark))

	reloaded := dashboard.LoadTheme(path, func() bool { return false })
	assert.Equal(t, dashboard.ThemeDark, reloaded.Current())

	assert.Error(t, s.Set(dashboard.Theme("sepia")))
}

func TestThemeStore_Toggle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme")

	s := dashboard.LoadTheme(path, nil)
	require.NoError(t, s.ToggleTheme())
	assert.Equal(t, dashboard.ThemeDark, s.Current())

	require.NoError(t, s.ToggleTheme())
	assert.Equal(t, dashboard.ThemeLight, s.Current())
}

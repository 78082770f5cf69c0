package view

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/rangehq/rangefin/internal/dashboard"
)

// Palette holds the handful of colors that differ between the light and
// dark themes.
type Palette struct {
	Accent lipgloss.Color
	Muted  lipgloss.Color
	Border lipgloss.Color
	Bar    lipgloss.Color
	Credit lipgloss.Color
	Debit  lipgloss.Color
}

func NewPalette(theme dashboard.Theme) Palette {
	if theme == dashboard.ThemeDark {
		return Palette{
			Accent: lipgloss.Color("205"),
			Muted:  lipgloss.Color("243"),
			Border: lipgloss.Color("240"),
			Bar:    lipgloss.Color("63"),
			Credit: lipgloss.Color("78"),
			Debit:  lipgloss.Color("203"),
		}
	}

	return Palette{
		Accent: lipgloss.Color("162"),
		Muted:  lipgloss.Color("245"),
		Border: lipgloss.Color("250"),
		Bar:    lipgloss.Color("27"),
		Credit: lipgloss.Color("28"),
		Debit:  lipgloss.Color("124"),
	}
}

func (p Palette) Active(s string) string {
	return lipgloss.NewStyle().Foreground(p.Accent).Render(s)
}

func (p Palette) Faint(s string) string {
	return lipgloss.NewStyle().Foreground(p.Muted).Render(s)
}

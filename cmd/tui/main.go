package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/rangehq/rangefin/cmd/tui/internal/view"
	"github.com/rangehq/rangefin/internal/client"
	"github.com/rangehq/rangefin/internal/config"
	"github.com/rangehq/rangefin/internal/dashboard"
)

type model struct {
	api    *client.Client
	themes *dashboard.ThemeStore

	currentView View

	dashboardView view.DashboardModel
	uploadView    view.UploadModel
}

type View int

const (
	ViewMenu      View = 0
	ViewDashboard View = 1
	ViewUpload    View = 2
)

func themePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}

	return filepath.Join(dir, "rangefin", "theme")
}

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	api := client.New(cfg.Backend.URL)
	themes := dashboard.LoadTheme(themePath(), lipgloss.HasDarkBackground)

	return model{
		api:           api,
		themes:        themes,
		currentView:   ViewMenu,
		dashboardView: view.NewDashboardModel(api, themes),
		uploadView:    view.NewUploadModel(api, themes),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewDashboard
				m.dashboardView = view.NewDashboardModel(m.api, m.themes)

				return m, m.dashboardView.Init()
			case "2":
				m.currentView = ViewUpload
				m.uploadView = view.NewUploadModel(m.api, m.themes)

				return m, m.uploadView.Init()
			case "t":
				if err := m.themes.ToggleTheme(); err != nil {
					slog.Error("failed to persist theme", "error", err)
				}

				return m, nil
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewDashboard:
		var newModel tea.Model
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
	case ViewUpload:
		var newModel tea.Model
		newModel, cmd = m.uploadView.Update(msg)
		m.uploadView = newModel.(view.UploadModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Rangefin\n\n" +
				"1. Dashboard\n" +
				"2. Upload CSV\n\n" +
				fmt.Sprintf("t. Toggle theme (current: %s)\n", m.themes.Current()) +
				"q. Quit",
		)
	case ViewDashboard:
		return m.dashboardView.View()
	case ViewUpload:
		return m.uploadView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}

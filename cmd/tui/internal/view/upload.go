package view

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/rangehq/rangefin/internal/client"
	"github.com/rangehq/rangefin/internal/dashboard"
)

type uploadState int

const (
	uploadStatePick uploadState = iota
	uploadStateConfirm
	uploadStateUploading
	uploadStateResult
)

type UploadModel struct {
	CommonModel
	api    *client.Client
	themes *dashboard.ThemeStore

	state      uploadState
	filePicker filepicker.Model
	form       *huh.Form

	selectedPath string
	confirmed    bool

	result *client.UploadResult
	status string
	err    error
}

func NewUploadModel(api *client.Client, themes *dashboard.ThemeStore) UploadModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return UploadModel{
		api:        api,
		themes:     themes,
		filePicker: fp,
	}
}

func (m UploadModel) Title() string { return "Upload CSV" }

func (m UploadModel) ShortHelp() string {
	switch m.state {
	case uploadStateConfirm:
		return "Confirm upload | Esc: cancel"
	case uploadStateUploading:
		return "Uploading..."
	case uploadStateResult:
		return "Enter: upload another | Esc: back"
	}

	return "Esc: back | Enter: select file"
}

func (m UploadModel) Init() tea.Cmd {
	return m.filePicker.Init()
}

func (m UploadModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// One upload at a time; key input is ignored until the response lands.
	if m.state == uploadStateUploading {
		if msg, ok := msg.(uploadDoneMsg); ok {
			m.state = uploadStateResult
			m.result = msg.result
			m.err = msg.err
		}

		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEsc:
			if m.state == uploadStateConfirm {
				m.state = uploadStatePick
				m.form = nil

				return m, nil
			}

			return m, Back
		case tea.KeyEnter:
			if m.state == uploadStateResult {
				m.state = uploadStatePick
				m.result = nil
				m.err = nil
				m.status = ""

				return m, m.filePicker.Init()
			}
		}
	}

	if m.state == uploadStateConfirm {
		return m.updateConfirm(msg)
	}

	if m.state != uploadStatePick {
		return m, nil
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if ok, path := m.filePicker.DidSelectFile(msg); ok {
		contentType := mime.TypeByExtension(filepath.Ext(path))
		if err := client.ValidateCSVFile(filepath.Base(path), contentType); err != nil {
			m.status = err.Error()
			return m, cmd
		}

		m.selectedPath = path
		m.confirmed = true
		m.status = ""
		m.form = huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Upload %s?", filepath.Base(path))).
					Affirmative("Upload").
					Negative("Cancel").
					Value(&m.confirmed),
			),
		).WithWidth(45).WithShowHelp(false)
		m.state = uploadStateConfirm

		return m, m.form.Init()
	}

	return m, cmd
}

func (m UploadModel) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.form = nil
	if !m.confirmed {
		m.state = uploadStatePick
		return m, nil
	}

	m.state = uploadStateUploading

	return m, m.uploadCmd(m.selectedPath)
}

func (m UploadModel) View() string {
	p := NewPalette(m.themes.Current())

	switch m.state {
	case uploadStateConfirm:
		return lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Render(m.form.View())

	case uploadStateUploading:
		return lipgloss.NewStyle().Padding(2).Render("Uploading...")

	case uploadStateResult:
		return lipgloss.NewStyle().Padding(2).Render(m.resultView(p))
	}

	content := "Select a Chase CSV file to upload:\n\n" + m.filePicker.View()
	if m.status != "" {
		content += "\n" + lipgloss.NewStyle().Foreground(p.Debit).Render(m.status)
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(content)
}

func (m UploadModel) resultView(p Palette) string {
	if m.err != nil {
		return lipgloss.NewStyle().Foreground(p.Debit).Render(
			fmt.Sprintf("Upload failed: %v", m.err),
		)
	}

	out := lipgloss.NewStyle().Foreground(p.Credit).Render(m.result.Message)
	out += fmt.Sprintf("\n\nImported %d transactions.", len(m.result.Transactions))

	if s := m.result.Summary; s != nil {
		out += fmt.Sprintf(
			"\nSpent: %s | Income: %s | Net: %s",
			FormatAmount(s.TotalSpent),
			FormatAmount(s.TotalIncome),
			FormatAmount(s.NetAmount),
		)
	}

	return out
}

// Messages

type uploadDoneMsg struct {
	result *client.UploadResult
	err    error
}

func (m UploadModel) uploadCmd(path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return uploadDoneMsg{err: err}
		}
		defer f.Close()

		ctx, cancel := APICtx()
		defer cancel()

		result, err := m.api.Upload(ctx, filepath.Base(path), f)

		return uploadDoneMsg{result: result, err: err}
	}
}

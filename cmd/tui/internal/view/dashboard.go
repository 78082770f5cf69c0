package view

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rangehq/rangefin/internal/analytics"
	"github.com/rangehq/rangefin/internal/client"
	"github.com/rangehq/rangefin/internal/dashboard"
	"github.com/rangehq/rangefin/internal/transaction"
)

type dashboardState int

const (
	dashboardStateBrowse dashboardState = iota
	dashboardStateSearch
)

// typeFilters is the cycle order for the type filter key.
var typeFilters = []transaction.Type{"", transaction.TypeDebit, transaction.TypeCredit}

type DashboardModel struct {
	CommonModel
	api    *client.Client
	themes *dashboard.ThemeStore

	state dashboardState
	table table.Model
	input textinput.Model

	// txs is the full dataset; every render derives a page from it.
	txs   []*transaction.Transaction
	query dashboard.Query
	page  dashboard.Page

	summary    *analytics.Summary
	byCategory []analytics.CategorySpending
	timeline   []analytics.TimelinePoint

	categories  []string
	categoryIdx int
	typeIdx     int

	loading bool
	err     error
}

func NewDashboardModel(api *client.Client, themes *dashboard.ThemeStore) DashboardModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Description", Width: 36},
		{Title: "Category", Width: 16},
		{Title: "Type", Width: 8},
		{Title: "Amount", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	input := textinput.New()
	input.Placeholder = "description or category"
	input.CharLimit = 80

	return DashboardModel{
		api:    api,
		themes: themes,
		table:  t,
		input:  input,
		query: dashboard.Query{
			SortBy: dashboard.SortByDate,
			Order:  dashboard.OrderDesc,
			Page:   1,
		},
		loading: true,
	}
}

func (m DashboardModel) Title() string { return "Dashboard" }

func (m DashboardModel) ShortHelp() string {
	if m.state == dashboardStateSearch {
		return "Enter: apply | Esc: cancel"
	}

	return "Esc: back | /: search | c: category | t: type | 1-4: sort | n/p: page | r: refresh"
}

func (m DashboardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.txs = msg.txs
		m.summary = msg.summary
		m.byCategory = msg.byCategory
		m.timeline = msg.timeline
		m.categories = distinctCategories(msg.txs)
		m.refresh()

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 16)
		return m, nil
	}

	if m.state == dashboardStateSearch {
		return m.updateSearch(msg)
	}

	return m.updateBrowse(msg)
}

func (m DashboardModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "/":
			m.state = dashboardStateSearch
			m.input.SetValue(m.query.Search)
			m.input.Focus()
			m.table.Blur()

			return m, textinput.Blink
		case "c":
			m.categoryIdx = (m.categoryIdx + 1) % (len(m.categories) + 1)
			if m.categoryIdx == 0 {
				m.query.Category = ""
			} else {
				m.query.Category = m.categories[m.categoryIdx-1]
			}
			m.query.Page = 1
			m.refresh()
		case "t":
			m.typeIdx = (m.typeIdx + 1) % len(typeFilters)
			m.query.Type = typeFilters[m.typeIdx]
			m.query.Page = 1
			m.refresh()
		case "1":
			m.toggleSort(dashboard.SortByDate)
		case "2":
			m.toggleSort(dashboard.SortByDescription)
		case "3":
			m.toggleSort(dashboard.SortByAmount)
		case "4":
			m.toggleSort(dashboard.SortByCategory)
		case "n":
			if m.query.Page < m.page.TotalPages {
				m.query.Page++
				m.refresh()
			}
		case "p":
			if m.query.Page > 1 {
				m.query.Page--
				m.refresh()
			}
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m DashboardModel) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEsc:
			m.state = dashboardStateBrowse
			m.input.Blur()
			m.table.Focus()

			return m, nil
		case tea.KeyEnter:
			m.query.Search = m.input.Value()
			m.query.Page = 1
			m.state = dashboardStateBrowse
			m.input.Blur()
			m.table.Focus()
			m.refresh()

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m *DashboardModel) toggleSort(field dashboard.SortField) {
	m.query = dashboard.Toggle(m.query, field)
	m.refresh()
}

// refresh re-derives the visible page from the in-memory dataset.
func (m *DashboardModel) refresh() {
	m.page = dashboard.Apply(m.txs, m.query)
	m.query.Page = m.page.Page

	rows := make([]table.Row, 0, len(m.page.Rows))
	for _, tx := range m.page.Rows {
		rows = append(rows, table.Row{
			FormatDate(tx.Date),
			tx.Description,
			tx.CategoryLabel(),
			string(tx.Type),
			FormatAmount(tx.Amount),
		})
	}
	m.table.SetRows(rows)
	m.table.SetCursor(0)
}

func (m DashboardModel) View() string {
	p := NewPalette(m.themes.Current())

	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading dashboard...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	sections := []string{
		m.summaryStrip(p),
		m.filterStrip(p),
		lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(p.Border).
			Render(m.table.View()),
		m.pageStrip(p),
	}

	if panel := m.analyticsPanel(p); panel != "" {
		sections = append(sections, panel)
	}

	if m.state == dashboardStateSearch {
		sections = append(sections, "Search: "+m.input.View())
	}

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left, sections...),
	)
}

func (m DashboardModel) summaryStrip(p Palette) string {
	if m.summary == nil {
		return ""
	}

	net := FormatAmount(m.summary.NetAmount)
	if m.summary.NetAmount >= 0 {
		net = lipgloss.NewStyle().Foreground(p.Credit).Render(net)
	} else {
		net = lipgloss.NewStyle().Foreground(p.Debit).Render(net)
	}

	return lipgloss.NewStyle().PaddingBottom(1).Render(fmt.Sprintf(
		"Spent: %s | Income: %s | Net: %s | Transactions: %d | Avg: %s",
		lipgloss.NewStyle().Foreground(p.Debit).Render(FormatAmount(m.summary.TotalSpent)),
		lipgloss.NewStyle().Foreground(p.Credit).Render(FormatAmount(m.summary.TotalIncome)),
		net,
		m.summary.TransactionCount,
		FormatAmount(m.summary.AvgTransactionAmount),
	))
}

func (m DashboardModel) filterStrip(p Palette) string {
	category := "All"
	if m.query.Category != "" {
		category = m.query.Category
	}

	typ := "All"
	if m.query.Type != "" {
		typ = string(m.query.Type)
	}

	search := "-"
	if m.query.Search != "" {
		search = m.query.Search
	}

	return fmt.Sprintf(
		"[c] Category: %s | [t] Type: %s | [/] Search: %s | Sort: %s %s",
		p.Active(category),
		p.Active(typ),
		p.Active(search),
		p.Active(string(m.query.SortBy)),
		p.Faint(string(m.query.Order)),
	)
}

func (m DashboardModel) pageStrip(p Palette) string {
	if m.page.TotalPages <= 1 {
		return p.Faint(fmt.Sprintf("%d transactions", m.page.Total))
	}

	return p.Faint(fmt.Sprintf(
		"Page %d/%d | %d transactions | n: next, p: previous",
		m.page.Page, m.page.TotalPages, m.page.Total,
	))
}

const categoryBarWidth = 24

func (m DashboardModel) analyticsPanel(p Palette) string {
	var b strings.Builder

	if len(m.byCategory) > 0 {
		b.WriteString("Spending by Category\n")
		for i, c := range m.byCategory {
			if i >= 6 {
				break
			}

			filled := int(c.Percentage / 100 * categoryBarWidth)
			if filled > categoryBarWidth {
				filled = categoryBarWidth
			}

			bar := lipgloss.NewStyle().Foreground(p.Bar).Render(strings.Repeat("█", filled)) +
				p.Faint(strings.Repeat("░", categoryBarWidth-filled))

			label := c.Category
			if label == "" {
				label = transaction.DisplayCategory
			}

			b.WriteString(fmt.Sprintf("%-16s %s %6.1f%% %s\n",
				label, bar, c.Percentage, FormatAmount(c.Amount)))
		}
	}

	// A single month is not a trend; the timeline only renders with two or
	// more points.
	if len(m.timeline) >= 2 {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString("Monthly Net\n")
		for _, pt := range m.timeline {
			b.WriteString(fmt.Sprintf("%-10s %12s  (running %s)\n",
				pt.Date, FormatAmount(pt.Amount), FormatAmount(pt.Cumulative)))
		}
	}

	if b.Len() == 0 {
		return ""
	}

	return lipgloss.NewStyle().
		Padding(1, 2).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Render(strings.TrimRight(b.String(), "\n"))
}

func distinctCategories(txs []*transaction.Transaction) []string {
	seen := make(map[string]bool)
	var categories []string
	for _, tx := range txs {
		if tx.Category == "" || seen[tx.Category] {
			continue
		}
		seen[tx.Category] = true
		categories = append(categories, tx.Category)
	}
	sort.Strings(categories)

	return categories
}

// Messages

type dashboardDataMsg struct {
	txs        []*transaction.Transaction
	summary    *analytics.Summary
	byCategory []analytics.CategorySpending
	timeline   []analytics.TimelinePoint
	err        error
}

func (m DashboardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		list, err := m.api.ListTransactions(ctx, client.ListOptions{Limit: 10000})
		if err != nil {
			return dashboardDataMsg{err: err}
		}

		summary, err := m.api.Summary(ctx)
		if err != nil {
			return dashboardDataMsg{err: err}
		}

		byCategory, err := m.api.ByCategory(ctx)
		if err != nil {
			return dashboardDataMsg{err: err}
		}

		timeline, err := m.api.Timeline(ctx)
		if err != nil {
			return dashboardDataMsg{err: err}
		}

		return dashboardDataMsg{
			txs:        client.ToDomainList(list.Transactions),
			summary:    summary,
			byCategory: byCategory,
			timeline:   timeline,
		}
	}
}

package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/taskhive/taskhive/cmd/tui/client"
)

type statsSuccessMsg struct {
	stats *client.Stats
}

type statsErrorMsg struct {
	err error
}

type StatsModel struct {
	stats   *client.Stats
	loading bool
	err     error
	client  *client.Client
	loaded  bool
}

func NewStatsModel(c *client.Client) *StatsModel {
	return &StatsModel{client: c}
}

func (m *StatsModel) Init() tea.Cmd {
	return nil
}

func fetchStatsCmd(c *client.Client) tea.Cmd {
	return func() tea.Msg {
		stats, err := c.Stats()
		if err != nil {
			return statsErrorMsg{err: err}
		}
		return statsSuccessMsg{stats: stats}
	}
}

func (m *StatsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case statsSuccessMsg:
		m.loading = false
		m.stats = msg.stats
		m.err = nil
		m.loaded = true
		return m, nil

	case statsErrorMsg:
		m.loading = false
		m.err = msg.err
		m.loaded = true
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "r" && !m.loading {
			m.loading = true
			m.err = nil
			return m, fetchStatsCmd(m.client)
		}
	}

	if !m.loaded && !m.loading && m.client != nil {
		m.loading = true
		return m, fetchStatsCmd(m.client)
	}

	return m, nil
}

func statRow(label string, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Left,
		LabelStyle.Render(label),
		StatsStyle.Render(value),
	)
}

func (m *StatsModel) View() string {
	var b strings.Builder

	header := TitleStyle.Render("📊 DASHBOARD")
	b.WriteString(lipgloss.NewStyle().
		Width(80).
		Align(lipgloss.Center).
		MarginTop(2).
		MarginBottom(2).
		Render(header))
	b.WriteString("\n\n")

	if m.loading {
		loading := lipgloss.NewStyle().
			Foreground(Accent).
			Render("⏳ Loading stats...")
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).MarginTop(2).Render(loading))
		b.WriteString("\n")
	} else if m.err != nil {
		errMsg := ErrorStyle.Render("❌ " + m.err.Error())
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).MarginTop(2).Render(errMsg))
		b.WriteString("\n")
	} else if m.stats != nil {
		rows := lipgloss.JoinVertical(lipgloss.Left,
			statRow("Total tasks:", fmt.Sprintf("%d", m.stats.Total)),
			statRow("Active:", fmt.Sprintf("%d", m.stats.Active)),
			statRow("Completed:", fmt.Sprintf("%d", m.stats.Completed)),
			statRow("Overdue:", fmt.Sprintf("%d", m.stats.Overdue)),
			statRow("Urgent:", fmt.Sprintf("%d", m.stats.Urgent)),
			statRow("High priority:", fmt.Sprintf("%d", m.stats.HighPriority)),
			"",
			statRow("Completion:", fmt.Sprintf("%.1f%%", m.stats.CompletionRate)),
		)

		box := BoxStyle.Width(50).Render(rows)
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(box))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	help := InfoStyle.Render("r refresh  •  q back")
	b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(help))

	return BoxStyle.Width(76).Render(b.String())
}

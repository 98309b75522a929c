package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/taskhive/taskhive/cmd/tui/client"
	taskmodel "github.com/taskhive/taskhive/internal/models/task"
)

type listTasksSuccessMsg struct {
	tasks []taskmodel.Task
}

type listTasksErrorMsg struct {
	err error
}

type taskActionMsg struct {
	err error
}

type ListModel struct {
	tasks   []taskmodel.Task
	cursor  int
	loading bool
	err     error
	client  *client.Client
	loaded  bool
}

func (m *ListModel) Init() tea.Cmd {
	return nil
}

func NewListModel(c *client.Client) *ListModel {
	return &ListModel{client: c}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func listTasksCmd(c *client.Client) tea.Cmd {
	return func() tea.Msg {
		tasks, err := c.ListTasks(100, 0)
		if err != nil {
			return listTasksErrorMsg{err: err}
		}
		return listTasksSuccessMsg{tasks: tasks}
	}
}

func completeTaskCmd(c *client.Client, id string) tea.Cmd {
	return func() tea.Msg {
		if _, err := c.CompleteTask(id); err != nil {
			return taskActionMsg{err: err}
		}
		return taskActionMsg{}
	}
}

func deleteTaskCmd(c *client.Client, id string) tea.Cmd {
	return func() tea.Msg {
		if err := c.DeleteTask(id); err != nil {
			return taskActionMsg{err: err}
		}
		return taskActionMsg{}
	}
}

func (m *ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case listTasksSuccessMsg:
		m.loading = false
		m.tasks = msg.tasks
		m.err = nil
		m.loaded = true
		if m.cursor >= len(m.tasks) && len(m.tasks) > 0 {
			m.cursor = len(m.tasks) - 1
		}
		return m, nil

	case listTasksErrorMsg:
		m.loading = false
		m.err = msg.err
		m.loaded = true
		return m, nil

	case taskActionMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		// Reload after completing or deleting.
		m.loading = true
		return m, listTasksCmd(m.client)

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.tasks)-1 {
				m.cursor++
			}
		case "c":
			if !m.loading && m.cursor < len(m.tasks) {
				return m, completeTaskCmd(m.client, m.tasks[m.cursor].ID)
			}
		case "d":
			if !m.loading && m.cursor < len(m.tasks) {
				return m, deleteTaskCmd(m.client, m.tasks[m.cursor].ID)
			}
		case "r":
			if !m.loading {
				m.loading = true
				m.err = nil
				return m, listTasksCmd(m.client)
			}
		}
	}

	if !m.loaded && !m.loading && m.client != nil {
		m.loading = true
		return m, listTasksCmd(m.client)
	}

	return m, nil
}

func priorityBadge(p taskmodel.Priority) string {
	switch p {
	case taskmodel.PriorityUrgent:
		return ErrorStyle.Render("⚡ urgent")
	case taskmodel.PriorityHigh:
		return lipgloss.NewStyle().Foreground(Warning).Render("▲ high")
	case taskmodel.PriorityLow:
		return lipgloss.NewStyle().Foreground(Muted).Render("▽ low")
	default:
		return lipgloss.NewStyle().Foreground(Secondary).Render("■ medium")
	}
}

func (m *ListModel) View() string {
	var b strings.Builder

	header := TitleStyle.Render("YOUR TASKS")
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
			Render("⏳ Loading tasks...")
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).MarginTop(2).Render(loading))
		b.WriteString("\n")
	} else if m.err != nil {
		errMsg := ErrorStyle.Render("❌ " + m.err.Error())
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).MarginTop(2).Render(errMsg))
		b.WriteString("\n")
	} else if len(m.tasks) == 0 {
		empty := lipgloss.NewStyle().
			Foreground(Muted).
			Render("📝 No tasks yet. Create one first!")
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).MarginTop(2).Render(empty))
		b.WriteString("\n")
	} else {
		for i, t := range m.tasks {
			borderColor := Muted
			if i == m.cursor {
				borderColor = Accent
			}
			cardStyle := lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(borderColor).
				Padding(0, 2).
				Width(70).
				MarginBottom(1)

			check := "☐"
			titleStyle := lipgloss.NewStyle().Foreground(Text).Bold(true)
			if t.Status == taskmodel.StatusCompleted {
				check = "☑"
				titleStyle = lipgloss.NewStyle().Foreground(Muted).Strikethrough(true)
			}
			titleLine := check + " " + titleStyle.Render(truncate(t.Title, 55))

			metaParts := []string{priorityBadge(t.Priority)}
			if t.Category != "" {
				metaParts = append(metaParts, lipgloss.NewStyle().Foreground(Secondary).Render("🏷 "+t.Category))
			}
			if t.DueDate != nil {
				dueStyle := lipgloss.NewStyle().Foreground(Muted)
				if t.Status == taskmodel.StatusActive && t.DueDate.Before(time.Now()) {
					dueStyle = ErrorStyle
				}
				metaParts = append(metaParts, dueStyle.Render("📅 "+t.DueDate.Format("2006-01-02")))
			}
			metaLine := strings.Join(metaParts, "  ")

			lines := []string{titleLine, metaLine}
			if t.Description != "" {
				descLine := lipgloss.NewStyle().Foreground(Muted).Render(truncate(t.Description, 60))
				lines = []string{titleLine, descLine, metaLine}
			}

			card := cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
			b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(card))
		}

		count := InfoStyle.Render(fmt.Sprintf("%d task(s)", len(m.tasks)))
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(count))
	}

	b.WriteString("\n")
	help := InfoStyle.Render("↑/↓ navigate  •  c complete  •  d delete  •  r refresh  •  q back")
	b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(help))

	return BoxStyle.Width(76).Render(b.String())
}

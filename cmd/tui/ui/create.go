package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/taskhive/taskhive/cmd/tui/client"
)

var priorities = []string{"low", "medium", "high", "urgent"}

type createTaskSuccessMsg struct {
	title string
}

type createTaskErrorMsg struct {
	err error
}

type CreateModel struct {
	titleInput       string
	descriptionInput string
	categoryInput    string
	priorityCursor   int
	focusedInput     int
	loading          bool
	result           string
	err              error
	client           *client.Client
}

func (m *CreateModel) Init() tea.Cmd {
	return nil
}

func NewCreateModel(c *client.Client) *CreateModel {
	return &CreateModel{
		priorityCursor: 1, // medium
		client:         c,
	}
}

func createTaskCmd(c *client.Client, title, description, priority, category string) tea.Cmd {
	return func() tea.Msg {
		task, err := c.CreateTask(title, description, priority, category)
		if err != nil {
			return createTaskErrorMsg{err: err}
		}

		return createTaskSuccessMsg{title: task.Title}
	}
}

func (m *CreateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case createTaskSuccessMsg:
		m.loading = false
		m.result = msg.title
		m.err = nil
		m.titleInput = ""
		m.descriptionInput = ""
		m.categoryInput = ""
		return m, nil

	case createTaskErrorMsg:
		m.loading = false
		m.err = msg.err
		m.result = ""
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}

		switch msg.String() {
		case "tab":
			m.focusedInput = (m.focusedInput + 1) % 4
		case "shift+tab":
			m.focusedInput = (m.focusedInput + 3) % 4
		case "left":
			if m.focusedInput == 3 && m.priorityCursor > 0 {
				m.priorityCursor--
			}
		case "right":
			if m.focusedInput == 3 && m.priorityCursor < len(priorities)-1 {
				m.priorityCursor++
			}
		case "enter":
			if strings.TrimSpace(m.titleInput) == "" {
				m.err = fmt.Errorf("title cannot be empty")
				return m, nil
			}

			m.loading = true
			m.err = nil
			m.result = ""
			return m, createTaskCmd(m.client, m.titleInput, m.descriptionInput,
				priorities[m.priorityCursor], m.categoryInput)
		case "backspace":
			switch m.focusedInput {
			case 0:
				if len(m.titleInput) > 0 {
					m.titleInput = m.titleInput[:len(m.titleInput)-1]
				}
			case 1:
				if len(m.descriptionInput) > 0 {
					m.descriptionInput = m.descriptionInput[:len(m.descriptionInput)-1]
				}
			case 2:
				if len(m.categoryInput) > 0 {
					m.categoryInput = m.categoryInput[:len(m.categoryInput)-1]
				}
			}
		case "ctrl+l":
			m.titleInput = ""
			m.descriptionInput = ""
			m.categoryInput = ""
			m.priorityCursor = 1
			m.result = ""
			m.err = nil
		default:
			if len(msg.String()) == 1 {
				switch m.focusedInput {
				case 0:
					m.titleInput += msg.String()
				case 1:
					m.descriptionInput += msg.String()
				case 2:
					m.categoryInput += msg.String()
				}
			}
		}
	}
	return m, nil
}

func (m *CreateModel) View() string {
	var b strings.Builder

	header := TitleStyle.Render("📝 CREATE TASK")
	b.WriteString(lipgloss.NewStyle().
		Width(80).
		Align(lipgloss.Center).
		MarginTop(2).
		MarginBottom(2).
		Render(header))
	b.WriteString("\n\n")

	fields := []struct {
		label string
		value string
	}{
		{"Title:", m.titleInput},
		{"Description:", m.descriptionInput},
		{"Category:", m.categoryInput},
	}

	for i, f := range fields {
		label := LabelStyle.Width(15).Render(f.label)
		inputStyle := InputStyle
		if m.focusedInput == i {
			inputStyle = FocusedInputStyle
		}
		field := lipgloss.JoinHorizontal(lipgloss.Left, label, inputStyle.Width(50).Render(f.value))
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(field))
		b.WriteString("\n\n")
	}

	priorityLabel := LabelStyle.Width(15).Render("Priority:")
	var options []string
	for i, p := range priorities {
		style := ItemStyle
		marker := "  "
		if i == m.priorityCursor {
			style = SelectedItemStyle
			marker = "● "
		}
		if m.focusedInput == 3 {
			options = append(options, style.Render(marker+p))
		} else {
			options = append(options, ItemStyle.Render(marker+p))
		}
	}
	priorityField := lipgloss.JoinHorizontal(lipgloss.Left, priorityLabel,
		lipgloss.JoinHorizontal(lipgloss.Left, options...))
	b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(priorityField))
	b.WriteString("\n\n")

	if m.loading {
		loading := InfoStyle.Render("Creating task...")
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(loading))
		b.WriteString("\n")
	}

	if m.result != "" {
		result := SuccessStyle.Render("✓ Task created: " + m.result)
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(result))
		b.WriteString("\n")
	}

	if m.err != nil {
		errMsg := ErrorStyle.Render("❌ " + m.err.Error())
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(errMsg))
		b.WriteString("\n")
	}

	help := InfoStyle.Render("tab switch  •  ←/→ priority  •  enter submit  •  ctrl+l clear  •  q back")
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(help))

	return BoxStyle.Width(76).Render(b.String())
}

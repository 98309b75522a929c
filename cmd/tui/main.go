package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/taskhive/taskhive/cmd/tui/client"
	"github.com/taskhive/taskhive/cmd/tui/ui"
)

func main() {
	addr := os.Getenv("TASKHIVE_ADDR")
	if addr == "" {
		addr = "http://localhost:8000"
	}

	apiClient := client.New(addr)

	p := tea.NewProgram(
		ui.NewModel(apiClient),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

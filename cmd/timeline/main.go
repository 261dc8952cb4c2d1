package main

import (
	"flag"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mkarlsen/songrank/internal/client"
	"github.com/mkarlsen/songrank/internal/tui"
)

// Default configuration constants.
const (
	defaultTimeout = 10 * time.Second
)

func main() {
	var (
		baseURL = flag.String("url", "http://localhost:9090", "Base URL of the ledger service")
		timeout = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
	)
	flag.Parse()

	c := client.New(*baseURL, client.WithTimeout(*timeout))
	program := tea.NewProgram(tui.NewModel(c), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		os.Stderr.WriteString("timeline failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}

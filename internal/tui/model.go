// Package tui is the terminal timeline browser. It loads the full
// ledger once, derives the playback view, and steps through match
// history with the two-phase reorder/stats display.
package tui

import (
	"context"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mkarlsen/songrank/internal/client"
	"github.com/mkarlsen/songrank/internal/domain/timeline"
)

const loadTimeout = 30 * time.Second

// loadedMsg delivers the derived view after the initial fetch sequence.
type loadedMsg struct {
	view *timeline.View
}

// errMsg delivers a fetch or invariant failure to the message loop.
type errMsg struct {
	err error
}

// Model is the bubbletea model for the timeline browser.
type Model struct {
	client   *client.Client
	playback *timeline.Playback
	jump     textinput.Model

	loading bool
	err     error
	width   int
}

// NewModel creates a timeline browser backed by the given API client.
func NewModel(c *client.Client) Model {
	jump := textinput.New()
	jump.Placeholder = "match #"
	jump.CharLimit = 10
	jump.Width = 10
	return Model{
		client:  c,
		jump:    jump,
		loading: true,
	}
}

// Init starts the initial ledger fetch.
func (m Model) Init() tea.Cmd {
	return m.load()
}

// load fetches the three ledger collections and builds the view.
func (m Model) load() tea.Cmd {
	c := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		songs, err := c.Songs(ctx)
		if err != nil {
			return errMsg{err}
		}
		stats, err := c.Stats(ctx)
		if err != nil {
			return errMsg{err}
		}
		matches, err := c.Matches(ctx)
		if err != nil {
			return errMsg{err}
		}
		return loadedMsg{view: timeline.NewView(songs, stats, matches)}
	}
}

// Update routes messages to the playback state machine. Navigation keys
// are ignored while the jump input has focus.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case loadedMsg:
		pb, err := timeline.NewPlayback(msg.view)
		if err != nil {
			m.err = err
			m.loading = false
			return m, nil
		}
		m.playback = pb
		m.err = nil
		m.loading = false
		return m, nil

	case errMsg:
		m.err = msg.err
		m.loading = false
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Quit always works, focus or not.
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.jump.Focused() {
		switch msg.Type {
		case tea.KeyEnter:
			target, err := strconv.ParseInt(m.jump.Value(), 10, 64)
			m.jump.Blur()
			m.jump.SetValue("")
			if err == nil && m.playback != nil {
				if jerr := m.playback.Jump(target); jerr != nil {
					m.err = jerr
				}
			}
			return m, nil
		case tea.KeyEsc:
			m.jump.Blur()
			m.jump.SetValue("")
			return m, nil
		}
		var cmd tea.Cmd
		m.jump, cmd = m.jump.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "r":
		m.loading = true
		m.err = nil
		return m, m.load()
	case "g":
		m.jump.Focus()
		return m, textinput.Blink
	case "right", "l":
		if m.playback != nil {
			if err := m.playback.Forward(); err != nil {
				m.err = err
			}
		}
		return m, nil
	case "left", "h":
		if m.playback != nil {
			if err := m.playback.Back(); err != nil {
				m.err = err
			}
		}
		return m, nil
	}
	return m, nil
}

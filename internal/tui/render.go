package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mkarlsen/songrank/internal/domain/timeline"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	winnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	loserStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	upStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	downStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

// View renders the playback list with the current phase's annotations.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("songrank timeline"))
	b.WriteString("\n")

	switch {
	case m.loading:
		b.WriteString(statusStyle.Render("loading ledger..."))
		b.WriteString("\n")
	case m.err != nil:
		b.WriteString(errorStyle.Render("error: " + m.err.Error()))
		b.WriteString("\n")
	case m.playback != nil:
		m.renderPlayback(&b)
	}

	b.WriteString("\n")
	if m.jump.Focused() {
		b.WriteString("jump to ")
		b.WriteString(m.jump.View())
		b.WriteString(helpStyle.Render("  enter: go · esc: cancel"))
	} else {
		b.WriteString(helpStyle.Render("←/→: step · g: jump · r: reload · q: quit"))
	}
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderPlayback(b *strings.Builder) {
	pb := m.playback

	if pb.Index() == 0 && pb.Phase() == timeline.PhaseReorder {
		b.WriteString(statusStyle.Render("Pre-Match baseline"))
	} else {
		b.WriteString(statusStyle.Render(fmt.Sprintf("Match %d/%d · %s", pb.Index(), pb.MaxIndex(), pb.Phase())))
	}
	b.WriteString("\n\n")

	rows, err := pb.Rows()
	if err != nil {
		b.WriteString(errorStyle.Render("error: " + err.Error()))
		b.WriteString("\n")
		return
	}

	for _, row := range rows {
		line := fmt.Sprintf("%2d. %-32s %8.1f", row.Rank, truncate(row.Song.Title, 32), row.Rating)
		if pb.Phase() == timeline.PhaseStats && pb.Index() > 0 {
			line += "  " + deltaChips(row)
		}
		switch row.Kind {
		case timeline.RowWinner:
			line = winnerStyle.Render(line)
		case timeline.RowLoser:
			line = loserStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
}

// deltaChips formats the rating and rank movement of one row.
func deltaChips(row timeline.Row) string {
	var parts []string
	switch {
	case row.RatingDelta > 0:
		parts = append(parts, upStyle.Render(fmt.Sprintf("+%.1f", row.RatingDelta)))
	case row.RatingDelta < 0:
		parts = append(parts, downStyle.Render(fmt.Sprintf("%.1f", row.RatingDelta)))
	}
	switch {
	case row.RankDelta > 0:
		parts = append(parts, upStyle.Render(fmt.Sprintf("^%d", row.RankDelta)))
	case row.RankDelta < 0:
		parts = append(parts, downStyle.Render(fmt.Sprintf("v%d", -row.RankDelta)))
	}
	return strings.Join(parts, " ")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}

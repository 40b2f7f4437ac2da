package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/dmitrijs2005/coinbank/internal/client/view"
)

var (
	sentStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5c5c")).Bold(true)
	receivedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#43b581")).Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8f8f8f"))
)

// renderHistory prints the history rows, or the placeholder message when
// there are none to show.
func renderHistory(w io.Writer, snap view.Snapshot) {
	if snap.HistoryMessage != "" {
		fmt.Fprintln(w, mutedStyle.Render(snap.HistoryMessage))
		return
	}
	if len(snap.History) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("Loading..."))
		return
	}

	for _, row := range snap.History {
		style, arrow := receivedStyle, "<-"
		if row.Sent {
			style, arrow = sentStyle, "->"
		}

		fmt.Fprintf(w, "%s  %s\n", style.Render(fmt.Sprintf("%s %-8s", arrow, row.Direction())), style.Render(row.Amount))
		fmt.Fprintf(w, "   %s: %s\n", row.CounterpartyLabel(), row.Counterparty)
		fmt.Fprintf(w, "   %s  %s\n", mutedStyle.Render(row.Date), mutedStyle.Render(row.ID))
	}
}

// Package output formats command-line output: status lines, trees and tables.
package output

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/marcus/bookmodal/internal/models"
)

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
)

// Error prints an error line to stderr.
func Error(format string, args ...any) {
	fmt.Fprintln(os.Stderr, errorStyle.Render("Error:")+" "+fmt.Sprintf(format, args...))
}

// Warning prints a warning line to stderr.
func Warning(format string, args ...any) {
	fmt.Fprintln(os.Stderr, warningStyle.Render("Warning:")+" "+fmt.Sprintf(format, args...))
}

// Success prints a confirmation line to stdout.
func Success(format string, args ...any) {
	fmt.Println(successStyle.Render(fmt.Sprintf(format, args...)))
}

// Contact returns the preferred contact for a booking: email, then phone.
func Contact(p models.Payload) string {
	switch {
	case p.Email != "" && p.Phone != "":
		return p.Email + " / " + p.Phone
	case p.Email != "":
		return p.Email
	case p.Phone != "":
		return p.Phone
	default:
		return models.Placeholder
	}
}

// ShortID trims a uuid to its first block.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// BookingsTable writes recorded bookings as a table, newest first as given.
func BookingsTable(w io.Writer, rows []models.Payload, now time.Time) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers("ID", "REQUESTED", "NAME", "CONTACT", "TREATMENT", "TIME")

	for _, p := range rows {
		t.Row(
			ShortID(p.ID),
			humanize.RelTime(p.SubmittedAt, now, "ago", "from now"),
			p.Name,
			Contact(p),
			p.TreatmentLabel,
			p.TimeSlotLabel,
		)
	}
	fmt.Fprintln(w, t.Render())
}

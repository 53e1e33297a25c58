package monitor

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/marcus/bookmodal/internal/models"
)

// copyToClipboard copies text to the system clipboard
// (pbcopy on macOS, xclip/xsel/wl-copy on Linux, the Win32 API on Windows).
func copyToClipboard(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("no clipboard tool found (install xclip, xsel or wl-clipboard)")
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	return nil
}

// formatBookingAsMarkdown formats a confirmed booking as a markdown summary.
// The same text is rendered on the success step and copied with 'c'.
func formatBookingAsMarkdown(sub models.Submission) string {
	var sb strings.Builder

	sb.WriteString("## Booking summary\n\n")
	for _, row := range sub.Snapshot.Rows() {
		value := row.Value
		if row.Field == models.FieldNotes && strings.Contains(value, "\n") {
			// Keep multi-line notes inside one list item
			value = strings.ReplaceAll(value, "\n", " ")
		}
		sb.WriteString(fmt.Sprintf("- **%s:** %s\n", row.Label, escapeMarkdown(value)))
	}

	if sub.ID != "" {
		sb.WriteString(fmt.Sprintf("\nReference: `%s`\n", sub.ID))
	}
	if !sub.SubmittedAt.IsZero() {
		sb.WriteString(fmt.Sprintf("Requested: %s\n", sub.SubmittedAt.Format("2006-01-02 15:04")))
	}
	return sb.String()
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"[", `\[`,
	"]", `\]`,
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

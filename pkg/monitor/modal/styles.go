package modal

import "github.com/charmbracelet/lipgloss"

// Palette shared by every modal section.
var (
	Primary      = lipgloss.Color("212")
	Error        = lipgloss.Color("196")
	Success      = lipgloss.Color("42")
	Warning      = lipgloss.Color("214")
	Muted        = lipgloss.Color("241")
	BorderNormal = lipgloss.Color("240")
)

// Button styles
var (
	Button = lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")).
		Background(lipgloss.Color("238")).
		Padding(0, 2)

	ButtonFocused = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(Primary).
			Bold(true).
			Padding(0, 2)

	ButtonHover = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("245")).
			Padding(0, 2)

	ButtonDanger = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("238")).
			Padding(0, 2)

	ButtonDangerFocused = lipgloss.NewStyle().
				Foreground(lipgloss.Color("255")).
				Background(Error).
				Bold(true).
				Padding(0, 2)
)

// Text styles
var (
	ModalTitle   = lipgloss.NewStyle().Bold(true).Foreground(Primary)
	MutedText    = lipgloss.NewStyle().Foreground(Muted)
	Body         = lipgloss.NewStyle()
	FieldLabel   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	FieldFocused = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	FieldInvalid = lipgloss.NewStyle().Foreground(Error).Bold(true)
	ErrorText    = lipgloss.NewStyle().Foreground(Error)
	SuccessText  = lipgloss.NewStyle().Foreground(Success).Bold(true)
)

// List styles for list sections
var (
	ListItemNormal = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	ListItemSelected = lipgloss.NewStyle().
				Background(lipgloss.Color("237")).
				Foreground(lipgloss.Color("255"))

	ListItemFocused = lipgloss.NewStyle().
			Background(lipgloss.Color("237")).
			Foreground(lipgloss.Color("255")).
			Bold(true)

	ListCursor = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)
)

// frame returns the border style for a variant.
func frame(v Variant) lipgloss.Style {
	border := Primary
	switch v {
	case VariantDanger:
		border = Error
	case VariantWarning:
		border = Warning
	case VariantSuccess:
		border = Success
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(1, 2)
}

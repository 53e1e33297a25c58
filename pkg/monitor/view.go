package monitor

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/marcus/bookmodal/internal/models"
	"github.com/marcus/bookmodal/pkg/monitor/modal"
	"github.com/marcus/bookmodal/pkg/monitor/mouse"
)

const (
	modalWidth      = 64
	confirmLabelW   = 16
	listMaxVisible  = 4
	notesHeight     = 2
	backdropPadLeft = 2
)

// stepModals holds one modal per step.
type stepModals struct {
	input   *modal.Modal
	confirm *modal.Modal
	success *modal.Modal
}

func (s *stepModals) forStep(step models.Step) *modal.Modal {
	switch step {
	case models.StepConfirm:
		return s.confirm
	case models.StepSuccess:
		return s.success
	default:
		return s.input
	}
}

func (s *stepModals) all() []*modal.Modal {
	return []*modal.Modal{s.input, s.confirm, s.success}
}

// widthText is a section whose content depends on the available width.
type widthText func(width int) string

func (w widthText) Render(contentWidth int, focusID, hoverID string) modal.RenderedSection {
	return modal.RenderedSection{Content: w(contentWidth)}
}
func (w widthText) Update(tea.Msg, string) (string, tea.Cmd) { return "", nil }
func (w widthText) FocusIDs() []string                        { return nil }

func buildModals(fields *formFields, ctrl *Controller, catalog models.Catalog, success *successView, status *statusLine) *stepModals {
	common := []modal.Option{
		modal.WithWidth(modalWidth),
		modal.WithCloseAction(ActionCloseModal),
		modal.WithCloseOnBackdropClick(true),
	}

	errFn := func(f models.Field) func() string {
		return func() string { return fields.Error(f) }
	}
	text := func(f models.Field, label string) modal.Section {
		return modal.Labeled(label, modal.Input(string(f), fields.inputs[f]), errFn(f), f.ErrorID())
	}
	list := func(f models.Field, label string) modal.Section {
		opts := catalog.Options(f)
		items := make([]modal.ListItem, len(opts))
		for i, o := range opts {
			items[i] = modal.ListItem{ID: o.ID, Label: o.Label}
		}
		l := modal.List(string(f), items, fields.choices[f], modal.WithMaxVisible(listMaxVisible))
		return modal.Labeled(label, l, errFn(f), f.ErrorID())
	}

	input := modal.New("Book an appointment", append(common,
		modal.WithPrimaryAction(ActionSubmitBooking),
		modal.WithHints(false),
	)...).
		AddSection(text(models.FieldName, "Full name")).
		AddSection(text(models.FieldPhone, "Phone")).
		AddSection(text(models.FieldEmail, "Email")).
		AddSection(list(models.FieldTreatment, "Treatment")).
		AddSection(list(models.FieldTime, "Preferred time")).
		AddSection(modal.Labeled("Notes (optional)", modal.Textarea(string(models.FieldNotes), fields.notes, notesHeight), nil, "")).
		AddSection(modal.Spacer()).
		AddSection(modal.Buttons(
			modal.Btn(" Continue ", ActionSubmitBooking, modal.BtnPrimary()),
			modal.Btn(" Cancel ", ActionCloseModal),
		))

	confirm := modal.New("Review your booking", common...).
		AddSection(widthText(func(width int) string {
			snap, ok := ctrl.Snapshot()
			if !ok {
				return ""
			}
			return confirmRows(snap, width)
		})).
		AddSection(modal.Spacer()).
		AddSection(modal.Buttons(
			modal.Btn(" Edit ", ActionEditBooking),
			modal.Btn(" Confirm booking ", ActionConfirmBooking, modal.BtnPrimary()),
		))

	done := modal.New("Booking requested", append(common, modal.WithVariant(modal.VariantSuccess))...).
		AddSection(widthText(func(width int) string {
			sub, ok := ctrl.Submission()
			if !ok {
				return ""
			}
			return success.render(sub, width)
		})).
		AddSection(modal.StyledText(func() string {
			if text, _ := status.current(); text != "" {
				return text
			}
			return submitStatusLine(ctrl)
		}, modal.MutedText)).
		AddSection(modal.Spacer()).
		AddSection(modal.Buttons(modal.Btn(" Close ", ActionCloseModal)))

	return &stepModals{input: input, confirm: confirm, success: done}
}

// confirmRows renders the review table, one field per line.
func confirmRows(snap models.ConfirmationSnapshot, width int) string {
	valueW := max(1, width-confirmLabelW)
	var lines []string
	for _, row := range snap.Rows() {
		label := modal.MutedText.Render(fmt.Sprintf("%-*s", confirmLabelW, row.Label))
		value := strings.ReplaceAll(row.Value, "\n", " ")
		lines = append(lines, label+modal.Body.Render(ansi.Truncate(value, valueW, "…")))
	}
	return strings.Join(lines, "\n")
}

func submitStatusLine(ctrl *Controller) string {
	done, err := ctrl.SubmitStatus()
	switch {
	case !done:
		return "Sending your request…"
	case err != nil:
		return "We could not record your request automatically; please call us to confirm."
	default:
		return "c copy summary"
	}
}

// successView renders the success message and booking summary with glamour,
// caching the output per booking and width.
type successView struct {
	message string
	key     string
	out     string
}

func (s *successView) render(sub models.Submission, width int) string {
	key := fmt.Sprintf("%s/%d", sub.ID, width)
	if key == s.key {
		return s.out
	}

	md := s.message + "\n\n" + formatBookingAsMarkdown(sub)
	out := md
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(max(10, width-4)),
	)
	if err == nil {
		if rendered, err := r.Render(md); err == nil {
			out = strings.Trim(rendered, "\n")
		}
	}
	s.key, s.out = key, out
	return out
}

var (
	backdropTitle  = lipgloss.NewStyle().Bold(true).Foreground(modal.Primary)
	backdropButton = modal.ButtonFocused
	statusOK       = lipgloss.NewStyle().Foreground(modal.Success)
	statusErr      = lipgloss.NewStyle().Foreground(modal.Error)
)

// renderBackdrop draws the page behind the modal and registers the open
// trigger. While the modal is visible the page is dimmed.
func (m Model) renderBackdrop(w, h int) string {
	lines := []string{
		"",
		backdropTitle.Render("Book an appointment"),
		"",
		modal.MutedText.Render("Pick a treatment and a time that suits you; we will confirm by phone or email."),
		"",
	}
	buttonRow := len(lines)
	button := backdropButton.Render(" Book now ")
	lines = append(lines, button, "", modal.MutedText.Render("b book · q quit"))

	if text, isErr := m.status.current(); text != "" {
		style := statusOK
		if isErr {
			style = statusErr
		}
		lines = append(lines, "", style.Render(text))
	}

	if m.mouse != nil {
		m.mouse.HitMap.AddRect(ActionOpenBooking, backdropPadLeft, buttonRow, lipgloss.Width(button), 1, nil)
	}

	pad := strings.Repeat(" ", backdropPadLeft)
	for i, line := range lines {
		if line != "" {
			lines[i] = ansi.Truncate(pad+line, w, "…")
		}
	}
	for len(lines) < h {
		lines = append(lines, "")
	}
	lines = lines[:h]

	if m.ctrl.Visible() {
		for i, line := range lines {
			lines[i] = modal.MutedText.Render(ansi.Strip(line))
		}
	}
	return strings.Join(lines, "\n")
}

// View renders the page and, while visible, the current step's modal.
func (m Model) View() string {
	w, h := m.Width, m.Height
	if w <= 0 {
		w = 80
	}
	if h <= 0 {
		h = 24
	}

	var handler *mouse.Handler
	if m.mouse != nil {
		m.mouse.Clear()
		handler = m.mouse
	}

	bg := m.renderBackdrop(w, h)
	if !m.ctrl.Visible() {
		return bg
	}
	return m.steps.forStep(m.ctrl.Step()).View(bg, w, h, handler)
}

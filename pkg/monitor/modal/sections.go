package modal

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// textSection renders wrapped text.
type textSection struct {
	fn    func() string
	style lipgloss.Style
}

// Text creates a static text section.
func Text(s string) Section {
	return &textSection{fn: func() string { return s }, style: Body}
}

// TextFunc creates a text section evaluated on every render.
func TextFunc(fn func() string) Section {
	return &textSection{fn: fn, style: Body}
}

// StyledText creates a text section evaluated on every render with a style.
func StyledText(fn func() string, style lipgloss.Style) Section {
	return &textSection{fn: fn, style: style}
}

func (s *textSection) Render(contentWidth int, focusID, hoverID string) RenderedSection {
	text := s.fn()
	if text == "" {
		return RenderedSection{}
	}
	return RenderedSection{Content: s.style.Width(contentWidth).Render(text)}
}

func (s *textSection) Update(msg tea.Msg, focusID string) (string, tea.Cmd) { return "", nil }
func (s *textSection) FocusIDs() []string                                 { return nil }

type spacerSection struct{}

// Spacer creates a blank line.
func Spacer() Section {
	return spacerSection{}
}

func (spacerSection) Render(int, string, string) RenderedSection {
	return RenderedSection{Content: " "}
}
func (spacerSection) Update(tea.Msg, string) (string, tea.Cmd) { return "", nil }
func (spacerSection) FocusIDs() []string                       { return nil }

// whenSection renders its inner section only while cond holds.
type whenSection struct {
	cond  func() bool
	inner Section
}

// When creates a conditional section.
func When(cond func() bool, s Section) Section {
	return &whenSection{cond: cond, inner: s}
}

func (s *whenSection) Render(contentWidth int, focusID, hoverID string) RenderedSection {
	if !s.cond() {
		return RenderedSection{}
	}
	return s.inner.Render(contentWidth, focusID, hoverID)
}

func (s *whenSection) Update(msg tea.Msg, focusID string) (string, tea.Cmd) {
	if !s.cond() {
		return "", nil
	}
	return s.inner.Update(msg, focusID)
}

func (s *whenSection) FocusIDs() []string {
	if !s.cond() {
		return nil
	}
	return s.inner.FocusIDs()
}

func (s *whenSection) Click(regionID string) (string, bool) {
	if c, ok := s.inner.(clicker); ok && s.cond() {
		return c.Click(regionID)
	}
	return "", false
}

// inputSection wraps a single-line text input.
type inputSection struct {
	id    string
	model *textinput.Model
}

// Input creates a text input section bound to model.
func Input(id string, model *textinput.Model) Section {
	return &inputSection{id: id, model: model}
}

func (s *inputSection) Render(contentWidth int, focusID, hoverID string) RenderedSection {
	// Leave room for the prompt
	s.model.Width = max(1, contentWidth-lipgloss.Width(s.model.Prompt)-1)
	return RenderedSection{
		Content:    s.model.View(),
		Focusables: []FocusableInfo{{ID: s.id, Width: contentWidth, Height: 1}},
	}
}

func (s *inputSection) Update(msg tea.Msg, focusID string) (string, tea.Cmd) {
	if focusID != s.id {
		return "", nil
	}
	var cmd tea.Cmd
	*s.model, cmd = s.model.Update(msg)
	return "", cmd
}

func (s *inputSection) FocusIDs() []string           { return []string{s.id} }
func (s *inputSection) Focus(id string) tea.Cmd      { return s.model.Focus() }
func (s *inputSection) Blur(id string)               { s.model.Blur() }
func (s *inputSection) SubmitsOnEnter(id string) bool { return true }

// textareaSection wraps a multi-line text area. Enter inserts a newline.
type textareaSection struct {
	id     string
	model  *textarea.Model
	height int
}

// Textarea creates a multi-line input section bound to model.
func Textarea(id string, model *textarea.Model, height int) Section {
	return &textareaSection{id: id, model: model, height: height}
}

func (s *textareaSection) Render(contentWidth int, focusID, hoverID string) RenderedSection {
	s.model.SetWidth(contentWidth)
	s.model.SetHeight(s.height)
	content := s.model.View()
	return RenderedSection{
		Content:    content,
		Focusables: []FocusableInfo{{ID: s.id, Width: contentWidth, Height: lipgloss.Height(content)}},
	}
}

func (s *textareaSection) Update(msg tea.Msg, focusID string) (string, tea.Cmd) {
	if focusID != s.id {
		return "", nil
	}
	var cmd tea.Cmd
	*s.model, cmd = s.model.Update(msg)
	return "", cmd
}

func (s *textareaSection) FocusIDs() []string      { return []string{s.id} }
func (s *textareaSection) Focus(id string) tea.Cmd { return s.model.Focus() }
func (s *textareaSection) Blur(id string)          { s.model.Blur() }

// labeledSection puts a title line above a section and an error slot below it.
type labeledSection struct {
	label string
	inner Section
	errFn func() string
	errID string
}

// Labeled wraps inner with a label and an error message slot. errFn returns
// the current error (empty when valid); errID identifies the slot.
func Labeled(label string, inner Section, errFn func() string, errID string) Section {
	return &labeledSection{label: label, inner: inner, errFn: errFn, errID: errID}
}

func (s *labeledSection) errText() string {
	if s.errFn == nil {
		return ""
	}
	return s.errFn()
}

func (s *labeledSection) Render(contentWidth int, focusID, hoverID string) RenderedSection {
	errText := s.errText()
	focused := false
	for _, id := range s.inner.FocusIDs() {
		if id == focusID {
			focused = true
		}
	}

	style := FieldLabel
	switch {
	case errText != "":
		style = FieldInvalid
	case focused:
		style = FieldFocused
	}
	label := s.label
	if errText != "" {
		// Keep the invalid state readable without color
		label += " *"
	}

	inner := s.inner.Render(contentWidth, focusID, hoverID)
	lines := []string{style.Render(label), inner.Content}
	if errText != "" {
		lines = append(lines, ErrorText.Render(ansi.Truncate("✗ "+errText, contentWidth, "…")))
	}

	return RenderedSection{
		Content:    strings.Join(lines, "\n"),
		Focusables: shift(inner.Focusables, 1),
		Hits:       shift(inner.Hits, 1),
	}
}

func shift(infos []FocusableInfo, dy int) []FocusableInfo {
	out := make([]FocusableInfo, len(infos))
	for i, f := range infos {
		f.OffsetY += dy
		out[i] = f
	}
	return out
}

// ErrorID returns the identity of the error slot, or "" while valid.
func (s *labeledSection) ErrorID() string {
	if s.errText() == "" {
		return ""
	}
	return s.errID
}

func (s *labeledSection) Update(msg tea.Msg, focusID string) (string, tea.Cmd) {
	return s.inner.Update(msg, focusID)
}

func (s *labeledSection) FocusIDs() []string {
	return s.inner.FocusIDs()
}

func (s *labeledSection) Focus(id string) tea.Cmd {
	if f, ok := s.inner.(focuser); ok {
		return f.Focus(id)
	}
	return nil
}

func (s *labeledSection) Blur(id string) {
	if f, ok := s.inner.(focuser); ok {
		f.Blur(id)
	}
}

func (s *labeledSection) Click(regionID string) (string, bool) {
	if c, ok := s.inner.(clicker); ok {
		return c.Click(regionID)
	}
	return "", false
}

func (s *labeledSection) Scroll(delta int) {
	if sc, ok := s.inner.(scroller); ok {
		sc.Scroll(delta)
	}
}

func (s *labeledSection) SubmitsOnEnter(id string) bool {
	if sub, ok := s.inner.(submitter); ok {
		return sub.SubmitsOnEnter(id)
	}
	return false
}

// ButtonDef describes one button.
type ButtonDef struct {
	Label   string
	ID      string
	Danger  bool
	Primary bool
}

// ButtonOption configures a button.
type ButtonOption func(*ButtonDef)

// BtnDanger styles the button as destructive.
func BtnDanger() ButtonOption {
	return func(b *ButtonDef) { b.Danger = true }
}

// BtnPrimary marks the button as the main action.
func BtnPrimary() ButtonOption {
	return func(b *ButtonDef) { b.Primary = true }
}

// Btn creates a button definition; id is the action it yields.
func Btn(label, id string, opts ...ButtonOption) ButtonDef {
	b := ButtonDef{Label: label, ID: id}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

type buttonsSection struct {
	buttons []ButtonDef
}

// Buttons creates a row of buttons.
func Buttons(btns ...ButtonDef) Section {
	return &buttonsSection{buttons: btns}
}

func (s *buttonsSection) Render(contentWidth int, focusID, hoverID string) RenderedSection {
	const gap = 2
	var rendered []string
	var focusables []FocusableInfo
	x := 0
	for i, b := range s.buttons {
		style := Button
		switch {
		case b.ID == focusID && b.Danger:
			style = ButtonDangerFocused
		case b.ID == focusID:
			style = ButtonFocused
		case b.ID == hoverID:
			style = ButtonHover
		case b.Danger:
			style = ButtonDanger
		}
		out := style.Render(b.Label)
		w := lipgloss.Width(out)
		if i > 0 {
			rendered = append(rendered, strings.Repeat(" ", gap))
			x += gap
		}
		rendered = append(rendered, out)
		focusables = append(focusables, FocusableInfo{ID: b.ID, OffsetX: x, Width: w, Height: 1})
		x += w
	}
	return RenderedSection{
		Content:    lipgloss.JoinHorizontal(lipgloss.Top, rendered...),
		Focusables: focusables,
	}
}

func (s *buttonsSection) Update(msg tea.Msg, focusID string) (string, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return "", nil
	}
	idx := -1
	for i, b := range s.buttons {
		if b.ID == focusID {
			idx = i
		}
	}
	if idx < 0 {
		return "", nil
	}
	switch keyMsg.String() {
	case "enter", " ":
		return s.buttons[idx].ID, nil
	}
	return "", nil
}

func (s *buttonsSection) FocusIDs() []string {
	ids := make([]string, len(s.buttons))
	for i, b := range s.buttons {
		ids[i] = b.ID
	}
	return ids
}

func (s *buttonsSection) Click(regionID string) (string, bool) {
	for _, b := range s.buttons {
		if b.ID == regionID {
			return b.ID, true
		}
	}
	return "", false
}

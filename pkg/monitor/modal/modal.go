package modal

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/marcus/bookmodal/pkg/monitor/mouse"
)

// BodyRegionID is the hit region covering the whole modal box. It sits above
// the backdrop so clicks inside the box never count as backdrop clicks.
const BodyRegionID = "modal-body"

// Variant selects the frame color.
type Variant int

const (
	VariantDefault Variant = iota
	VariantDanger
	VariantWarning
	VariantSuccess
)

// FocusableInfo describes a focusable or clickable area relative to the
// top-left of its section's content.
type FocusableInfo struct {
	ID      string
	OffsetX int
	OffsetY int
	Width   int
	Height  int
}

// RenderedSection is a section's output for one frame.
type RenderedSection struct {
	Content    string
	Focusables []FocusableInfo
	// Hits are clickable areas that do not take part in Tab focus.
	Hits []FocusableInfo
}

// Section is one block of modal content.
type Section interface {
	Render(contentWidth int, focusID, hoverID string) RenderedSection
	Update(msg tea.Msg, focusID string) (string, tea.Cmd)
	FocusIDs() []string
}

// focuser is implemented by sections that wrap a bubbles input whose cursor
// must follow modal focus.
type focuser interface {
	Focus(id string) tea.Cmd
	Blur(id string)
}

// clicker is implemented by sections with clickable areas. It returns the
// resulting action, and whether the region belonged to the section.
type clicker interface {
	Click(regionID string) (string, bool)
}

// submitter is implemented by sections where Enter means "submit the form".
type submitter interface {
	SubmitsOnEnter(id string) bool
}

// scroller is implemented by sections that react to the mouse wheel.
type scroller interface {
	Scroll(delta int)
}

// Option configures a Modal.
type Option func(*Modal)

// WithWidth sets the modal width including its border (default: 60).
func WithWidth(w int) Option {
	return func(m *Modal) {
		if w > 0 {
			m.width = w
		}
	}
}

// WithVariant sets the frame style.
func WithVariant(v Variant) Option {
	return func(m *Modal) { m.variant = v }
}

// WithHints shows or hides keyboard hints at the bottom.
func WithHints(show bool) Option {
	return func(m *Modal) { m.hints = show }
}

// WithPrimaryAction sets the action for an implicit Enter submit.
func WithPrimaryAction(actionID string) Option {
	return func(m *Modal) { m.primaryAction = actionID }
}

// WithCloseAction sets the action returned for Esc and backdrop clicks.
func WithCloseAction(actionID string) Option {
	return func(m *Modal) { m.closeAction = actionID }
}

// WithCloseOnBackdropClick makes clicks outside the box yield the close action.
func WithCloseOnBackdropClick(close bool) Option {
	return func(m *Modal) { m.closeOnBackdrop = close }
}

// Modal is a titled box of sections with keyboard focus management.
type Modal struct {
	title           string
	width           int
	variant         Variant
	hints           bool
	primaryAction   string
	closeAction     string
	closeOnBackdrop bool

	sections []Section
	focusID  string
	hoverID  string

	// Box position from the last render
	box mouse.Rect
}

// New creates a modal.
func New(title string, opts ...Option) *Modal {
	m := &Modal{
		title:       title,
		width:       60,
		hints:       true,
		closeAction: "cancel",
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// AddSection appends a section.
func (m *Modal) AddSection(s Section) *Modal {
	m.sections = append(m.sections, s)
	return m
}

// Title returns the modal title.
func (m *Modal) Title() string {
	return m.title
}

// FocusIDs returns every currently focusable ID in order.
func (m *Modal) FocusIDs() []string {
	var ids []string
	for _, s := range m.sections {
		ids = append(ids, s.FocusIDs()...)
	}
	return ids
}

// FocusedID returns the focused control, defaulting to the first focusable.
func (m *Modal) FocusedID() string {
	ids := m.FocusIDs()
	for _, id := range ids {
		if id == m.focusID {
			return id
		}
	}
	if len(ids) > 0 {
		return ids[0]
	}
	return ""
}

// SetFocus moves focus to id. Unknown ids are ignored.
func (m *Modal) SetFocus(id string) tea.Cmd {
	found := false
	for _, fid := range m.FocusIDs() {
		if fid == id {
			found = true
			break
		}
	}
	if !found {
		return nil
	}

	prev := m.FocusedID()
	if s := m.sectionFor(prev); s != nil {
		if f, ok := s.(focuser); ok {
			f.Blur(prev)
		}
	}
	m.focusID = id
	if s := m.sectionFor(id); s != nil {
		if f, ok := s.(focuser); ok {
			return f.Focus(id)
		}
	}
	return nil
}

// FocusNext moves focus forward, wrapping.
func (m *Modal) FocusNext() tea.Cmd {
	return m.moveFocus(1)
}

// FocusPrev moves focus backward, wrapping.
func (m *Modal) FocusPrev() tea.Cmd {
	return m.moveFocus(-1)
}

func (m *Modal) moveFocus(delta int) tea.Cmd {
	ids := m.FocusIDs()
	if len(ids) == 0 {
		return nil
	}
	cur := m.FocusedID()
	idx := 0
	for i, id := range ids {
		if id == cur {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(ids)) % len(ids)
	return m.SetFocus(ids[idx])
}

// SetHover records the hovered region for styling.
func (m *Modal) SetHover(id string) {
	m.hoverID = id
}

// Reset clears focus and hover so the next render starts at the first control.
func (m *Modal) Reset() {
	if s := m.sectionFor(m.focusID); s != nil {
		if f, ok := s.(focuser); ok {
			f.Blur(m.focusID)
		}
	}
	m.focusID = ""
	m.hoverID = ""
}

func (m *Modal) sectionFor(id string) Section {
	if id == "" {
		return nil
	}
	for _, s := range m.sections {
		for _, fid := range s.FocusIDs() {
			if fid == id {
				return s
			}
		}
	}
	return nil
}

// HandleKey processes a key press. It returns a non-empty action when the
// key activated something: a button, the primary action, or close.
func (m *Modal) HandleKey(msg tea.KeyMsg) (string, tea.Cmd) {
	switch msg.String() {
	case "tab":
		return "", m.FocusNext()
	case "shift+tab":
		return "", m.FocusPrev()
	case "esc":
		return m.closeAction, nil
	}

	focusID := m.FocusedID()
	s := m.sectionFor(focusID)
	if s == nil {
		return "", nil
	}

	action, cmd := s.Update(msg, focusID)
	if action != "" {
		return action, cmd
	}

	if msg.String() == "enter" && m.primaryAction != "" {
		if sub, ok := s.(submitter); ok && sub.SubmitsOnEnter(focusID) {
			return m.primaryAction, cmd
		}
	}
	return "", cmd
}

// Update forwards non-key messages (cursor blink and the like) to the
// focused section.
func (m *Modal) Update(msg tea.Msg) tea.Cmd {
	focusID := m.FocusedID()
	s := m.sectionFor(focusID)
	if s == nil {
		return nil
	}
	_, cmd := s.Update(msg, focusID)
	return cmd
}

// HandleClick resolves a hit region ID produced by this modal's last
// render. Clicking a focusable focuses it; buttons and list items also
// return their action.
func (m *Modal) HandleClick(regionID string) (string, tea.Cmd) {
	if regionID == m.closeAction && m.closeOnBackdrop {
		return m.closeAction, nil
	}
	var cmd tea.Cmd
	focused := false
	if s := m.sectionFor(regionID); s != nil {
		cmd = m.SetFocus(regionID)
		focused = true
	}
	for _, s := range m.sections {
		if c, ok := s.(clicker); ok {
			if action, handled := c.Click(regionID); handled {
				if owner := m.ownerOfHit(s); owner != "" && !focused {
					cmd = m.SetFocus(owner)
				}
				return action, cmd
			}
		}
	}
	return "", cmd
}

// ownerOfHit returns the first focus ID of a section, used to focus a list
// when one of its items is clicked.
func (m *Modal) ownerOfHit(s Section) string {
	ids := s.FocusIDs()
	if len(ids) == 0 {
		return ""
	}
	return ids[0]
}

// Scroll forwards a wheel movement to the section owning regionID, which may
// be a focus ID or one of the section's item regions. Reports whether a
// section took it.
func (m *Modal) Scroll(regionID string, delta int) bool {
	for _, s := range m.sections {
		sc, ok := s.(scroller)
		if !ok {
			continue
		}
		for _, id := range s.FocusIDs() {
			if regionID == id || strings.HasPrefix(regionID, id+":") {
				sc.Scroll(delta)
				return true
			}
		}
	}
	return false
}

// Box returns the screen rectangle of the last render.
func (m *Modal) Box() mouse.Rect {
	return m.box
}

// Render draws the box and, when h is non-nil, registers hit regions for
// the backdrop, the box and every focusable/clickable area. Returns the box
// and its top-left screen position.
func (m *Modal) Render(screenW, screenH int, h *mouse.Handler) (string, int, int) {
	width := m.width
	if screenW > 0 && width > screenW-2 {
		width = screenW - 2
	}
	if width < 24 {
		width = 24
	}
	// border (2) + horizontal padding (4)
	contentWidth := width - 6

	type placed struct {
		y  int
		rs RenderedSection
	}
	var placements []placed

	parts := []string{ModalTitle.Render(m.title), ""}
	y := 2
	focusID := m.FocusedID()
	for _, s := range m.sections {
		rs := s.Render(contentWidth, focusID, m.hoverID)
		if rs.Content == "" && len(rs.Focusables) == 0 {
			continue
		}
		parts = append(parts, rs.Content)
		placements = append(placements, placed{y: y, rs: rs})
		y += lipgloss.Height(rs.Content)
	}
	if m.hints {
		parts = append(parts, "", MutedText.Render(ansi.Truncate("tab next · shift+tab back · enter select · esc close", contentWidth, "…")))
	}

	body := strings.Join(parts, "\n")
	box := frame(m.variant).Width(width - 2).Render(body)

	boxW, boxH := lipgloss.Width(box), lipgloss.Height(box)
	x0 := max(0, (screenW-boxW)/2)
	y0 := max(0, (screenH-boxH)/2)
	m.box = mouse.Rect{X: x0, Y: y0, W: boxW, H: boxH}

	if h != nil {
		if m.closeOnBackdrop {
			h.HitMap.AddRect(m.closeAction, 0, 0, screenW, screenH, nil)
		}
		h.HitMap.AddRect(BodyRegionID, x0, y0, boxW, boxH, nil)

		// Content origin: border + padding
		cx, cy := x0+1+2, y0+1+1
		for _, p := range placements {
			for _, f := range p.rs.Focusables {
				h.HitMap.AddRect(f.ID, cx+f.OffsetX, cy+p.y+f.OffsetY, f.Width, f.Height, nil)
			}
			for _, f := range p.rs.Hits {
				h.HitMap.AddRect(f.ID, cx+f.OffsetX, cy+p.y+f.OffsetY, f.Width, f.Height, nil)
			}
		}
	}

	return box, x0, y0
}

// View renders the modal over a background of screenW x screenH cells.
func (m *Modal) View(background string, screenW, screenH int, h *mouse.Handler) string {
	box, x, y := m.Render(screenW, screenH, h)
	return Overlay(background, box, x, y, screenW, screenH)
}

// Overlay draws fg on top of bg with fg's top-left corner at (x, y).
func Overlay(bg, fg string, x, y, screenW, screenH int) string {
	bgLines := strings.Split(bg, "\n")
	for len(bgLines) < screenH {
		bgLines = append(bgLines, "")
	}
	fgLines := strings.Split(fg, "\n")

	for i, line := range fgLines {
		row := y + i
		if row < 0 || row >= len(bgLines) {
			continue
		}
		base := bgLines[row]
		if w := ansi.StringWidth(base); w < screenW {
			base += strings.Repeat(" ", screenW-w)
		}
		left := ansi.Truncate(base, x, "")
		right := ansi.TruncateLeft(base, x+ansi.StringWidth(line), "")
		bgLines[row] = left + line + right
	}
	return strings.Join(bgLines, "\n")
}

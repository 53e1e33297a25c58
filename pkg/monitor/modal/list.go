package modal

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"
)

// ListItem represents an item in a list section.
type ListItem struct {
	ID    string // Unique identifier for this item
	Label string // Display text
}

// ListOption is a functional option for List sections.
type ListOption func(*listSection)

// listSection renders a filterable list where one item can be chosen.
// The cursor moves with up/down; enter or space chooses the item under it.
// Typing narrows the list with fuzzy matching.
type listSection struct {
	id           string
	items        []ListItem
	selectedID   *string // Chosen item, owned by the caller
	cursor       int     // Index into the visible items
	filter       string
	maxVisible   int
	scrollOffset int
}

// List creates a list section. selectedID points at the chosen item ID ("" for none).
func List(id string, items []ListItem, selectedID *string, opts ...ListOption) Section {
	s := &listSection{
		id:         id,
		items:      items,
		selectedID: selectedID,
		maxVisible: 5, // Default
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithMaxVisible sets the maximum number of visible items.
func WithMaxVisible(n int) ListOption {
	return func(s *listSection) {
		if n > 0 {
			s.maxVisible = n
		}
	}
}

// ItemRegionID is the hit region ID of one list item.
func ItemRegionID(listID, itemID string) string {
	return listID + ":" + itemID
}

// visible returns the items matching the current filter, best match first.
func (s *listSection) visible() []ListItem {
	if s.filter == "" {
		return s.items
	}
	labels := make([]string, len(s.items))
	for i, it := range s.items {
		labels[i] = it.Label
	}
	matches := fuzzy.Find(s.filter, labels)
	out := make([]ListItem, 0, len(matches))
	for _, m := range matches {
		out = append(out, s.items[m.Index])
	}
	return out
}

func (s *listSection) Render(contentWidth int, focusID, hoverID string) RenderedSection {
	items := s.visible()
	listIsFocused := focusID == s.id

	var header string
	if s.filter != "" {
		header = MutedText.Render("filter: " + s.filter)
	}

	if len(items) == 0 {
		content := MutedText.Render("(no matches)")
		if header != "" {
			content = header + "\n" + content
		}
		return RenderedSection{
			Content:    content,
			Focusables: []FocusableInfo{{ID: s.id, Width: contentWidth, Height: 1}},
		}
	}

	s.cursor = clamp(s.cursor, 0, len(items)-1)
	visibleCount := min(s.maxVisible, len(items))

	// Adjust scroll to keep the cursor visible
	if s.cursor < s.scrollOffset {
		s.scrollOffset = s.cursor
	} else if s.cursor >= s.scrollOffset+visibleCount {
		s.scrollOffset = s.cursor - visibleCount + 1
	}
	s.scrollOffset = clamp(s.scrollOffset, 0, max(0, len(items)-visibleCount))

	var lines []string
	var hits []FocusableInfo
	top := 0
	if header != "" {
		lines = append(lines, header)
		top++
	}
	if s.scrollOffset > 0 {
		lines = append(lines, MutedText.Render("↑ more above"))
		top++
	}

	for i := 0; i < visibleCount; i++ {
		idx := s.scrollOffset + i
		item := items[idx]
		chosen := s.selectedID != nil && *s.selectedID == item.ID
		underCursor := listIsFocused && idx == s.cursor
		regionID := ItemRegionID(s.id, item.ID)

		style := ListItemNormal
		switch {
		case underCursor:
			style = ListItemFocused
		case chosen, regionID == hoverID:
			style = ListItemSelected
		}

		mark := "( ) "
		if chosen {
			mark = "(•) "
		}
		cursor := "  "
		if underCursor {
			cursor = ListCursor.Render("> ")
		}

		lines = append(lines, cursor+style.Render(mark+item.Label))
		hits = append(hits, FocusableInfo{ID: regionID, OffsetY: top + i, Width: contentWidth, Height: 1})
	}

	if s.scrollOffset+visibleCount < len(items) {
		lines = append(lines, MutedText.Render("↓ more below"))
	}

	// The list is one Tab stop; items are reachable by click via Hits
	return RenderedSection{
		Content:    strings.Join(lines, "\n"),
		Focusables: []FocusableInfo{{ID: s.id, Width: contentWidth, Height: len(lines)}},
		Hits:       hits,
	}
}

func (s *listSection) Update(msg tea.Msg, focusID string) (string, tea.Cmd) {
	if focusID != s.id {
		return "", nil
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return "", nil
	}

	items := s.visible()
	switch keyMsg.Type {
	case tea.KeyUp:
		if s.cursor > 0 {
			s.cursor--
		}
	case tea.KeyDown:
		if s.cursor < len(items)-1 {
			s.cursor++
		}
	case tea.KeyHome:
		s.cursor = 0
	case tea.KeyEnd:
		s.cursor = max(0, len(items)-1)
	case tea.KeyEnter, tea.KeySpace:
		if s.cursor >= 0 && s.cursor < len(items) && s.selectedID != nil {
			*s.selectedID = items[s.cursor].ID
		}
	case tea.KeyBackspace:
		if s.filter != "" {
			r := []rune(s.filter)
			s.filter = string(r[:len(r)-1])
			s.cursor = 0
		}
	case tea.KeyRunes:
		s.filter += string(keyMsg.Runes)
		s.cursor = 0
	}
	return "", nil
}

func (s *listSection) FocusIDs() []string { return []string{s.id} }

// Focus places the cursor on the chosen item.
func (s *listSection) Focus(id string) tea.Cmd {
	s.filter = ""
	s.cursor = 0
	if s.selectedID != nil {
		for i, it := range s.items {
			if it.ID == *s.selectedID {
				s.cursor = i
			}
		}
	}
	return nil
}

func (s *listSection) Blur(id string) {
	s.filter = ""
}

// Click chooses the clicked item.
func (s *listSection) Click(regionID string) (string, bool) {
	for i, it := range s.visible() {
		if ItemRegionID(s.id, it.ID) == regionID {
			s.cursor = i
			if s.selectedID != nil {
				*s.selectedID = it.ID
			}
			return "", true
		}
	}
	return "", false
}

// Scroll moves the cursor by delta, used for mouse wheel.
func (s *listSection) Scroll(delta int) {
	items := s.visible()
	if len(items) == 0 {
		return
	}
	s.cursor = clamp(s.cursor+delta, 0, len(items)-1)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

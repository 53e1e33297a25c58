package modal

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/marcus/bookmodal/pkg/monitor/mouse"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newForm(errText *string) (*Modal, *textinput.Model, *string) {
	ti := textinput.New()
	choice := ""
	items := []ListItem{
		{ID: "cleaning", Label: "Cleaning"},
		{ID: "whitening", Label: "Whitening"},
		{ID: "checkup", Label: "Check-up"},
	}
	m := New("Form",
		WithPrimaryAction("submit"),
		WithCloseAction("close"),
		WithCloseOnBackdropClick(true),
	).
		AddSection(Labeled("Name", Input("name", &ti), func() string { return *errText }, "name-error")).
		AddSection(List("pick", items, &choice)).
		AddSection(Buttons(Btn(" OK ", "submit", BtnPrimary()), Btn(" Cancel ", "close")))
	return m, &ti, &choice
}

func TestFocusCycling(t *testing.T) {
	empty := ""
	m, _, _ := newForm(&empty)

	want := []string{"name", "pick", "submit", "close"}
	if got := m.FocusIDs(); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("FocusIDs() = %v, want %v", got, want)
	}
	if m.FocusedID() != "name" {
		t.Errorf("default focus = %q, want first control", m.FocusedID())
	}

	for _, id := range want[1:] {
		m.HandleKey(tea.KeyMsg{Type: tea.KeyTab})
		if m.FocusedID() != id {
			t.Errorf("after tab focus = %q, want %q", m.FocusedID(), id)
		}
	}
	m.HandleKey(tea.KeyMsg{Type: tea.KeyTab})
	if m.FocusedID() != "name" {
		t.Errorf("tab should wrap to the first control, got %q", m.FocusedID())
	}
	m.HandleKey(tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.FocusedID() != "close" {
		t.Errorf("shift+tab should wrap backwards, got %q", m.FocusedID())
	}
}

func TestSetFocusIgnoresUnknown(t *testing.T) {
	empty := ""
	m, _, _ := newForm(&empty)
	m.SetFocus("pick")
	m.SetFocus("nope")
	if m.FocusedID() != "pick" {
		t.Errorf("unknown id moved focus to %q", m.FocusedID())
	}
}

func TestHandleKeyActions(t *testing.T) {
	empty := ""
	m, ti, _ := newForm(&empty)
	m.SetFocus("name")

	m.HandleKey(runes("J"))
	if ti.Value() != "J" {
		t.Errorf("typing should reach the focused input, got %q", ti.Value())
	}

	if action, _ := m.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}); action != "submit" {
		t.Errorf("enter in an input = %q, want primary action", action)
	}
	if action, _ := m.HandleKey(tea.KeyMsg{Type: tea.KeyEsc}); action != "close" {
		t.Errorf("esc = %q, want close action", action)
	}

	m.SetFocus("close")
	if action, _ := m.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}); action != "close" {
		t.Errorf("enter on a button = %q, want its id", action)
	}
}

func TestListKeyboardAndFilter(t *testing.T) {
	empty := ""
	m, _, choice := newForm(&empty)
	m.SetFocus("pick")

	m.HandleKey(tea.KeyMsg{Type: tea.KeyDown})
	if action, _ := m.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}); action != "" {
		t.Errorf("enter on a list should choose, not submit; got %q", action)
	}
	if *choice != "whitening" {
		t.Errorf("choice = %q, want whitening", *choice)
	}

	m.HandleKey(runes("chk"))
	m.HandleKey(tea.KeyMsg{Type: tea.KeySpace})
	if *choice != "checkup" {
		t.Errorf("fuzzy filter then space chose %q, want checkup", *choice)
	}

	box, _, _ := m.Render(80, 30, nil)
	if !strings.Contains(ansi.Strip(box), "filter: chk") {
		t.Error("active filter should be shown")
	}

	// Leaving the list clears the filter
	m.FocusNext()
	box, _, _ = m.Render(80, 30, nil)
	if strings.Contains(ansi.Strip(box), "filter:") {
		t.Error("filter should clear on blur")
	}
}

func TestLabeledError(t *testing.T) {
	errText := ""
	m, _, _ := newForm(&errText)

	box, _, _ := m.Render(80, 30, nil)
	if strings.Contains(ansi.Strip(box), "✗") {
		t.Error("valid field should not render an error line")
	}

	errText = "Please enter your full name"
	box, _, _ = m.Render(80, 30, nil)
	plain := ansi.Strip(box)
	if !strings.Contains(plain, "Name *") || !strings.Contains(plain, "✗ Please enter your full name") {
		t.Errorf("invalid field should be marked without color:\n%s", plain)
	}

	l := m.sections[0].(*labeledSection)
	if l.ErrorID() != "name-error" {
		t.Errorf("ErrorID() = %q", l.ErrorID())
	}
	errText = ""
	if l.ErrorID() != "" {
		t.Error("ErrorID() should be empty while valid")
	}
}

func TestRenderRegistersHitRegions(t *testing.T) {
	empty := ""
	m, _, _ := newForm(&empty)
	h := mouse.NewHandler()

	m.Render(100, 40, h)

	ids := map[string]mouse.Rect{}
	for _, r := range h.HitMap.Regions() {
		ids[r.ID] = r.Rect
	}
	for _, want := range []string{"close", BodyRegionID, "name", "pick", "submit", ItemRegionID("pick", "whitening")} {
		if _, ok := ids[want]; !ok {
			t.Errorf("missing region %q", want)
		}
	}

	box := m.Box()
	if r := h.HitMap.Test(box.X+1, box.Y+1); r == nil || r.ID != BodyRegionID {
		t.Errorf("inside the box should hit the body, got %+v", r)
	}
	if r := h.HitMap.Test(0, 0); r == nil || r.ID != "close" {
		t.Errorf("outside the box should hit the backdrop, got %+v", r)
	}
	submit := ids["submit"]
	if r := h.HitMap.Test(submit.X, submit.Y); r == nil || r.ID != "submit" {
		t.Errorf("button region should win over the body, got %+v", r)
	}
}

func TestHandleClick(t *testing.T) {
	empty := ""
	m, _, choice := newForm(&empty)

	if action, _ := m.HandleClick("close"); action != "close" {
		t.Errorf("backdrop click = %q, want close", action)
	}
	if action, _ := m.HandleClick(BodyRegionID); action != "" {
		t.Errorf("body click = %q, want nothing", action)
	}

	if action, _ := m.HandleClick(ItemRegionID("pick", "checkup")); action != "" {
		t.Errorf("item click = %q, want no action", action)
	}
	if *choice != "checkup" || m.FocusedID() != "pick" {
		t.Errorf("item click: choice=%q focus=%q", *choice, m.FocusedID())
	}

	if action, _ := m.HandleClick("submit"); action != "submit" {
		t.Errorf("button click = %q, want submit", action)
	}
	if m.FocusedID() != "submit" {
		t.Errorf("clicked button should take focus, got %q", m.FocusedID())
	}
}

func TestScrollMovesListCursor(t *testing.T) {
	empty := ""
	m, _, choice := newForm(&empty)
	m.SetFocus("pick")

	if !m.Scroll(ItemRegionID("pick", "cleaning"), 2) {
		t.Fatal("scroll over a list item should be handled")
	}
	m.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})
	if *choice != "checkup" {
		t.Errorf("choice = %q, want checkup after scrolling down 2", *choice)
	}
	if m.Scroll("submit", 1) {
		t.Error("buttons do not scroll")
	}
}

func TestOverlay(t *testing.T) {
	bg := "aaaaaa\nbbbbbb\ncccccc"
	got := Overlay(bg, "XY\nZW", 2, 1, 6, 3)
	want := "aaaaaa\nbbXYbb\nccZWcc"
	if got != want {
		t.Errorf("Overlay() =\n%s\nwant\n%s", got, want)
	}
}

func TestResetClearsFocus(t *testing.T) {
	empty := ""
	m, ti, _ := newForm(&empty)
	m.SetFocus("name")
	if !ti.Focused() {
		t.Fatal("input should be focused")
	}
	m.Reset()
	if ti.Focused() {
		t.Error("Reset should blur the focused input")
	}
	if m.FocusedID() != "name" {
		t.Errorf("focus should fall back to the first control, got %q", m.FocusedID())
	}
}

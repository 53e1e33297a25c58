package mouse

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func TestRectContains(t *testing.T) {
	r := Rect{X: 4, Y: 2, W: 10, H: 3}

	cases := []struct {
		x, y     int
		expected bool
	}{
		{4, 2, true},   // Top-left corner
		{13, 4, true},  // Bottom-right corner
		{8, 3, true},   // Center
		{3, 2, false},  // Just left
		{14, 2, false}, // Just right (exclusive)
		{4, 1, false},  // Just above
		{4, 5, false},  // Just below (exclusive)
	}

	for _, tc := range cases {
		if got := r.Contains(tc.x, tc.y); got != tc.expected {
			t.Errorf("Rect(%+v).Contains(%d, %d) = %v, want %v", r, tc.x, tc.y, got, tc.expected)
		}
	}
}

func TestHitMapLaterRegionWins(t *testing.T) {
	hm := NewHitMap()

	// Backdrop first, then the modal, then a button inside it
	hm.AddRect("close-modal", 0, 0, 80, 24, nil)
	hm.AddRect("modal", 20, 5, 40, 14, nil)
	hm.AddRect("confirm-booking", 30, 15, 12, 1, nil)

	tests := []struct {
		x, y int
		want string
	}{
		{31, 15, "confirm-booking"},
		{25, 8, "modal"},
		{2, 2, "close-modal"},
	}
	for _, tt := range tests {
		r := hm.Test(tt.x, tt.y)
		if r == nil || r.ID != tt.want {
			t.Errorf("Test(%d, %d) = %v, want %s", tt.x, tt.y, r, tt.want)
		}
	}

	if r := hm.Test(100, 100); r != nil {
		t.Errorf("expected miss outside all regions, got %v", r)
	}
}

func TestHitMapClear(t *testing.T) {
	hm := NewHitMap()
	hm.AddRect("a", 0, 0, 1, 1, "data")
	if got := hm.Regions(); len(got) != 1 || got[0].Data != "data" {
		t.Fatalf("Regions() = %v", got)
	}
	hm.Clear()
	if len(hm.Regions()) != 0 {
		t.Errorf("expected 0 regions after clear, got %d", len(hm.Regions()))
	}
}

func TestHandlerDoubleClick(t *testing.T) {
	h := NewHandler()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	h.now = func() time.Time { return now }
	h.HitMap.AddRect("open-booking", 0, 0, 10, 1, nil)

	if res := h.HandleClick(1, 0); res.Region == nil || res.IsDoubleClick {
		t.Fatalf("first click: %+v", res)
	}

	now = now.Add(100 * time.Millisecond)
	if res := h.HandleClick(1, 0); !res.IsDoubleClick {
		t.Error("second quick click should be double-click")
	}

	now = now.Add(100 * time.Millisecond)
	if res := h.HandleClick(1, 0); res.IsDoubleClick {
		t.Error("third click should start over")
	}

	now = now.Add(time.Second)
	if res := h.HandleClick(1, 0); res.IsDoubleClick {
		t.Error("slow click should not be double-click")
	}
}

func TestHandleMouse(t *testing.T) {
	h := NewHandler()
	h.HitMap.AddRect("treatment", 0, 0, 20, 5, nil)

	tests := []struct {
		name string
		msg  tea.MouseMsg
		want ActionType
	}{
		{"click", tea.MouseMsg{X: 1, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}, ActionClick},
		{"hover", tea.MouseMsg{X: 1, Y: 1, Action: tea.MouseActionMotion}, ActionHover},
		{"wheel up", tea.MouseMsg{X: 1, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp}, ActionScrollUp},
		{"wheel down", tea.MouseMsg{X: 1, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown}, ActionScrollDown},
		{"release", tea.MouseMsg{X: 1, Y: 1, Action: tea.MouseActionRelease}, ActionNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := h.HandleMouse(tt.msg)
			if a.Type != tt.want {
				t.Errorf("Type = %v, want %v", a.Type, tt.want)
			}
			if tt.want != ActionNone && (a.Region == nil || a.Region.ID != "treatment") {
				t.Errorf("Region = %v", a.Region)
			}
		})
	}
}

// Package mouse maps terminal mouse events onto named screen regions.
package mouse

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DoubleClickWindow is the maximum gap between two clicks on the same region
// for the second to count as a double click.
const DoubleClickWindow = 400 * time.Millisecond

// Rect is a screen rectangle; W and H are exclusive bounds.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Region is a named hit target.
type Region struct {
	ID   string
	Rect Rect
	Data any
}

// HitMap holds regions; later regions win when they overlap.
type HitMap struct {
	regions []Region
}

// NewHitMap creates an empty hit map.
func NewHitMap() *HitMap {
	return &HitMap{}
}

// AddRect registers a region.
func (h *HitMap) AddRect(id string, x, y, w, h2 int, data any) {
	h.regions = append(h.regions, Region{ID: id, Rect: Rect{X: x, Y: y, W: w, H: h2}, Data: data})
}

// Test returns the topmost region containing (x, y), or nil.
func (h *HitMap) Test(x, y int) *Region {
	for i := len(h.regions) - 1; i >= 0; i-- {
		if h.regions[i].Rect.Contains(x, y) {
			r := h.regions[i]
			return &r
		}
	}
	return nil
}

// Regions returns the registered regions in insertion order.
func (h *HitMap) Regions() []Region {
	return h.regions
}

// Clear removes every region. Called before each render.
func (h *HitMap) Clear() {
	h.regions = h.regions[:0]
}

// ActionType classifies a mouse event.
type ActionType int

const (
	ActionNone ActionType = iota
	ActionClick
	ActionHover
	ActionScrollUp
	ActionScrollDown
)

// Action is the interpreted result of a mouse event.
type Action struct {
	Type          ActionType
	Region        *Region
	IsDoubleClick bool
}

// ClickResult describes a click.
type ClickResult struct {
	Region        *Region
	IsDoubleClick bool
}

// Handler interprets mouse messages against a hit map.
type Handler struct {
	HitMap *HitMap

	lastClickID string
	lastClickAt time.Time
	now         func() time.Time
}

// NewHandler creates a handler with an empty hit map.
func NewHandler() *Handler {
	return &Handler{HitMap: NewHitMap(), now: time.Now}
}

// Clear drops all regions and click history.
func (h *Handler) Clear() {
	h.HitMap.Clear()
}

// HandleClick resolves a left click at (x, y).
func (h *Handler) HandleClick(x, y int) ClickResult {
	region := h.HitMap.Test(x, y)
	if region == nil {
		h.lastClickID = ""
		return ClickResult{}
	}

	now := h.now()
	double := region.ID == h.lastClickID && now.Sub(h.lastClickAt) <= DoubleClickWindow
	if double {
		// A third click starts over
		h.lastClickID = ""
	} else {
		h.lastClickID = region.ID
		h.lastClickAt = now
	}
	return ClickResult{Region: region, IsDoubleClick: double}
}

// HandleMouse interprets a Bubble Tea mouse message.
func (h *Handler) HandleMouse(msg tea.MouseMsg) Action {
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			res := h.HandleClick(msg.X, msg.Y)
			return Action{Type: ActionClick, Region: res.Region, IsDoubleClick: res.IsDoubleClick}
		case tea.MouseButtonWheelUp:
			return Action{Type: ActionScrollUp, Region: h.HitMap.Test(msg.X, msg.Y)}
		case tea.MouseButtonWheelDown:
			return Action{Type: ActionScrollDown, Region: h.HitMap.Test(msg.X, msg.Y)}
		}
	case tea.MouseActionMotion:
		return Action{Type: ActionHover, Region: h.HitMap.Test(msg.X, msg.Y)}
	}
	return Action{Type: ActionNone}
}

// Package modal provides a declarative modal dialog library with automatic
// hit region management for mouse support.
//
// Sections are rendered top to bottom; each reports its focusable controls
// with offsets relative to its own content, and the modal translates those
// into screen rectangles on a mouse.HitMap after rendering (render, then
// measure). Keyboard focus cycles through the focusable IDs with Tab and
// Shift+Tab; Esc yields the close action.
//
// # Quick Start
//
//	m := modal.New("Book an appointment", modal.WithCloseAction("close-modal")).
//	    AddSection(modal.Labeled("Full name", modal.Input("name", &nameInput), nameErr, "booking-name-error")).
//	    AddSection(modal.Buttons(
//	        modal.Btn(" Continue ", "submit-booking", modal.BtnPrimary()),
//	        modal.Btn(" Cancel ", "close-modal"),
//	    ))
//
//	// In View():
//	content := m.View(background, screenW, screenH, mouseHandler)
//
//	// In Update():
//	if action, cmd := m.HandleKey(keyMsg); action != "" {
//	    return dispatch(action)
//	}
//
// # Built-in Sections
//
//   - Text(s string) / TextFunc(fn) - static or computed text, wrapped
//   - Spacer() - blank line
//   - Buttons(btns ...ButtonDef) - button row with focus/hover styling
//   - Input(id string, model *textinput.Model) - single-line text input
//   - Textarea(id string, model *textarea.Model, height int) - multiline
//   - List(id string, items []ListItem, selectedID *string, opts...) - filterable list
//   - Labeled(label, section, errFn, errID) - title line and error slot
//   - When(condition func() bool, section) - conditional rendering
package modal

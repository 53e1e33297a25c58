package output

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/marcus/bookmodal/internal/models"
)

func TestTreeLines_Empty(t *testing.T) {
	if lines := TreeLines(nil, TreeOptions{}); len(lines) != 0 {
		t.Errorf("expected empty lines, got %d", len(lines))
	}
}

func TestTreeLines_WithLeaves(t *testing.T) {
	branches := []Branch{
		{Title: "Treatment", Leaves: []Leaf{
			{ID: "cleaning", Label: "Cleaning"},
			{ID: "checkup", Label: "Check-up"},
		}},
		{Title: "Preferred time", Leaves: []Leaf{
			{ID: "morning", Label: "Morning"},
		}},
	}
	lines := TreeLines(branches, TreeOptions{ShowIDs: true})

	want := []string{
		"├── Treatment",
		"│   ├── cleaning: Cleaning",
		"│   └── checkup: Check-up",
		"└── Preferred time",
		"    └── morning: Morning",
	}
	if strings.Join(lines, "\n") != strings.Join(want, "\n") {
		t.Errorf("got:\n%s\nwant:\n%s", strings.Join(lines, "\n"), strings.Join(want, "\n"))
	}
}

func TestTreeLines_BranchesOnly(t *testing.T) {
	lines := TreeLines(CatalogBranches(models.DefaultCatalog()), TreeOptions{BranchesOnly: true})
	if len(lines) != 2 {
		t.Errorf("expected only the two branches, got %v", lines)
	}
}

func TestTree(t *testing.T) {
	got := Tree([]Branch{{Title: "Only", Leaves: []Leaf{{ID: "a", Label: "A"}}}}, TreeOptions{})
	if got != "└── Only\n    └── A" {
		t.Errorf("Tree() = %q", got)
	}
}

func TestCatalogBranches(t *testing.T) {
	cat := models.DefaultCatalog()
	branches := CatalogBranches(cat)
	if len(branches) != 2 {
		t.Fatalf("expected treatment and time branches, got %d", len(branches))
	}
	if len(branches[0].Leaves) != len(cat.Treatments) || len(branches[1].Leaves) != len(cat.TimeSlots) {
		t.Errorf("branch sizes do not match catalog: %+v", branches)
	}
}

func TestContact(t *testing.T) {
	tests := []struct {
		p    models.Payload
		want string
	}{
		{models.Payload{Email: "a@b.c"}, "a@b.c"},
		{models.Payload{Phone: "555"}, "555"},
		{models.Payload{Email: "a@b.c", Phone: "555"}, "a@b.c / 555"},
		{models.Payload{}, models.Placeholder},
	}
	for _, tt := range tests {
		if got := Contact(tt.p); got != tt.want {
			t.Errorf("Contact(%+v) = %q, want %q", tt.p, got, tt.want)
		}
	}
}

func TestBookingsTable(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	rows := []models.Payload{{
		ID:             "0b7c9e2a-1111-2222-3333-444455556666",
		SubmittedAt:    now.Add(-2 * time.Hour),
		Name:           "Jane Doe",
		Email:          "jane@example.com",
		TreatmentLabel: "Cleaning",
		TimeSlotLabel:  "Morning",
	}}

	var buf bytes.Buffer
	BookingsTable(&buf, rows, now)
	out := ansi.Strip(buf.String())

	for _, want := range []string{"REQUESTED", "0b7c9e2a", "2 hours ago", "Jane Doe", "jane@example.com", "Cleaning", "Morning"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "1111-2222") {
		t.Error("ids should be shortened")
	}
}

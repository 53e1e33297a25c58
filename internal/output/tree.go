package output

import (
	"strings"

	"github.com/marcus/bookmodal/internal/models"
)

// Branch is a titled group of leaves in a printed tree.
type Branch struct {
	Title  string
	Leaves []Leaf
}

// Leaf is a single entry under a branch.
type Leaf struct {
	ID    string
	Label string
}

// TreeOptions controls what Tree prints.
type TreeOptions struct {
	BranchesOnly bool
	ShowIDs      bool // "id: label" instead of the label alone
}

// connector returns the glyph for an entry and the indent its children get.
func connector(last bool) (head, indent string) {
	if last {
		return "└── ", "    "
	}
	return "├── ", "│   "
}

// TreeLines renders the branches one line per entry.
func TreeLines(branches []Branch, opts TreeOptions) []string {
	var lines []string
	for i, b := range branches {
		head, indent := connector(i == len(branches)-1)
		lines = append(lines, head+b.Title)
		if opts.BranchesOnly {
			continue
		}
		for j, leaf := range b.Leaves {
			leafHead, _ := connector(j == len(b.Leaves)-1)
			text := leaf.Label
			if opts.ShowIDs && leaf.ID != "" {
				text = leaf.ID + ": " + leaf.Label
			}
			lines = append(lines, indent+leafHead+text)
		}
	}
	return lines
}

// Tree is TreeLines joined with newlines.
func Tree(branches []Branch, opts TreeOptions) string {
	return strings.Join(TreeLines(branches, opts), "\n")
}

// CatalogBranches lists the treatments and then the time slots.
func CatalogBranches(cat models.Catalog) []Branch {
	fields := []models.Field{models.FieldTreatment, models.FieldTime}
	branches := make([]Branch, 0, len(fields))
	for _, f := range fields {
		b := Branch{Title: f.Label()}
		for _, o := range cat.Options(f) {
			b.Leaves = append(b.Leaves, Leaf{ID: o.ID, Label: o.Label})
		}
		branches = append(branches, b)
	}
	return branches
}

// Package projects implements the project gallery's category filter.
package projects

import "github.com/Zachkp/portfolio/internal/content"

// All is the category sentinel.
const All = content.AllCategory

// Filter returns the entries whose category equals category, in their
// original order. The sentinel returns entries unchanged.
func Filter(entries []content.ProjectEntry, category string) []content.ProjectEntry {
	if category == All {
		return entries
	}

	filtered := make([]content.ProjectEntry, 0, len(entries))
	for _, e := range entries {
		if e.Category == category {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// Gallery holds the selected category over a fixed project list.
type Gallery struct {
	categories []string
	entries    []content.ProjectEntry
	selected   string
}

// NewGallery returns a gallery over the site's projects with the sentinel selected.
func NewGallery(site *content.Site) *Gallery {
	return &Gallery{
		categories: site.Categories,
		entries:    site.Projects,
		selected:   All,
	}
}

// Select changes the selected category. Values outside the category list
// are ignored and leave the selection unchanged.
func (g *Gallery) Select(category string) bool {
	for _, c := range g.categories {
		if c == category {
			g.selected = category
			return true
		}
	}
	return false
}

func (g *Gallery) Selected() string { return g.selected }

func (g *Gallery) Categories() []string { return g.categories }

// Visible returns the projects shown for the current selection.
func (g *Gallery) Visible() []content.ProjectEntry {
	return Filter(g.entries, g.selected)
}

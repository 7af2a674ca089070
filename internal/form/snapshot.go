package form

import (
	"sort"

	"school-admissions/backend/internal/model"
)

// Snapshot returns every column-backed value of app keyed by group.
// Empty columns are included so clients see the full record shape.
func Snapshot(app *model.Application) map[Group]map[string]string {
	out := make(map[Group]map[string]string, len(Groups))
	for _, g := range Groups {
		out[g] = map[string]string{}
	}
	for _, c := range catalogue {
		out[c.group][c.name] = *c.ref(app)
	}
	return out
}

// Section fields sharing a section tag
type Section struct {
	Name   string
	Fields []model.FormField
}

// Sections groups fields by section. Sections are ordered by the smallest
// display order they contain, then by name; fields keep their input order.
func Sections(fields []model.FormField) []Section {
	index := map[string]int{}
	minOrder := map[string]int{}
	var sections []Section

	for _, f := range fields {
		i, ok := index[f.Section]
		if !ok {
			i = len(sections)
			index[f.Section] = i
			minOrder[f.Section] = f.DisplayOrder
			sections = append(sections, Section{Name: f.Section})
		}
		sections[i].Fields = append(sections[i].Fields, f)
		if f.DisplayOrder < minOrder[f.Section] {
			minOrder[f.Section] = f.DisplayOrder
		}
	}

	sort.SliceStable(sections, func(i, j int) bool {
		a, b := sections[i].Name, sections[j].Name
		if minOrder[a] != minOrder[b] {
			return minOrder[a] < minOrder[b]
		}
		return a < b
	})
	return sections
}

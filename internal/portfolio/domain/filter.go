package domain

import (
	"errors"
	"strings"
)

var ErrNotFound = errors.New("not found")

// WorkFilter mirrors the gallery tabs: one work type and a category or All.
type WorkFilter struct {
	Type     WorkType
	Category Category
}

func (f WorkFilter) Match(w WorkItem) bool {
	if f.Type != "" && w.Type != f.Type {
		return false
	}
	return f.Category == "" || f.Category == CategoryAll || w.Category == f.Category
}

// FilterWorks keeps the items matching f, preserving order.
func FilterWorks(items []WorkItem, f WorkFilter) []WorkItem {
	out := make([]WorkItem, 0, len(items))
	for _, w := range items {
		if f.Match(w) {
			out = append(out, w)
		}
	}
	return out
}

// Neighbors returns the item with the given id together with the previous and
// next items. Navigation wraps around at both ends of the list.
func Neighbors(items []WorkItem, id string) (cur, prev, next WorkItem, err error) {
	idx := -1
	for i := range items {
		if items[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return WorkItem{}, WorkItem{}, WorkItem{}, ErrNotFound
	}
	n := len(items)
	return items[idx], items[(idx-1+n)%n], items[(idx+1)%n], nil
}

// FilterSkills keeps items in the given category and, when group is
// non-empty, the given group (case-insensitive).
func FilterSkills(items []SkillItem, category SkillCategory, group string) []SkillItem {
	out := make([]SkillItem, 0, len(items))
	for _, s := range items {
		if category != "" && s.Category != category {
			continue
		}
		if group != "" && !strings.EqualFold(s.Group, group) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// Groups lists the distinct group labels in first-seen order.
func Groups(items []SkillItem) []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range items {
		if s.Group == "" || seen[s.Group] {
			continue
		}
		seen[s.Group] = true
		out = append(out, s.Group)
	}
	return out
}

func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

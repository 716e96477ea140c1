package mapper

import (
	"sort"

	"github.com/twoong-studio/portfolio-backend/internal/portfolio/domain"
	"github.com/twoong-studio/portfolio-backend/internal/portfolio/sheets"
)

const ReasonMissingSkillName = "missing name"

// Skills maps rows of a skills, tools or equipment tab. category is the
// table's own category; a row's category column overrides it only when it
// names a known category.
func Skills(rows []sheets.Row, category domain.SkillCategory, report *Report) []domain.SkillItem {
	items := make([]domain.SkillItem, 0, len(rows))
	for i, row := range rows {
		if isHidden(row["hidden"]) {
			report.drop(i, ReasonHidden)
			continue
		}
		name := row.Get("name", "skill_name", "tool_name", "equipment_name")
		if name == "" {
			report.drop(i, ReasonMissingSkillName)
			continue
		}
		cat := category
		if c, ok := domain.ParseSkillCategory(row.Get("category")); ok {
			cat = c
		}
		if !cat.Valid() {
			report.drop(i, ReasonBadCategory)
			continue
		}

		items = append(items, domain.SkillItem{
			ID:       row.Get("id"),
			Category: cat,
			Group:    row.Get("group", "sub_filter", "proficiency"),
			Name:     name,
			Level:    clamp(parseInt(row["level"], domain.MinLevel), domain.MinLevel, domain.MaxLevel),
			Icon:     row.Get("icon", "icon_url", "logo"),
			Order:    parseInt(row["order"], i),
		})
		report.keep()
	}
	sort.SliceStable(items, func(a, b int) bool { return items[a].Order < items[b].Order })
	return items
}

package mapper

import (
	"sort"
	"strings"

	"github.com/twoong-studio/portfolio-backend/internal/portfolio/domain"
	"github.com/twoong-studio/portfolio-backend/internal/portfolio/sheets"
	"github.com/twoong-studio/portfolio-backend/internal/portfolio/youtube"
)

// Works maps rows of the works tab. report may be nil.
func Works(rows []sheets.Row, report *Report) []domain.WorkItem {
	items := make([]domain.WorkItem, 0, len(rows))
	for i, row := range rows {
		if isHidden(row["hidden"]) {
			report.drop(i, ReasonHidden)
			continue
		}
		id := row.Get("id")
		if id == "" {
			report.drop(i, ReasonMissingID)
			continue
		}
		title := row.Get("title")
		if title == "" {
			report.drop(i, ReasonMissingName)
			continue
		}

		video := row.Get("video_url", "videourl", "video")
		thumb := row.Get("thumbnail", "thumbnail_url", "image")
		if thumb == "" {
			thumb = youtube.Thumbnail(video)
		}

		items = append(items, domain.WorkItem{
			ID:          id,
			Title:       title,
			Thumbnail:   thumb,
			VideoURL:    video,
			EmbedURL:    youtube.EmbedURL(video),
			Category:    ClassifyCategory(row.Get("project_type", "category", "categoryfilter")),
			Type:        ClassifyWorkType(row.Get("participation_level", "productiontype", "type")),
			Role:        row.Get("role"),
			Setup:       row.Get("setup"),
			RunningTime: row.Get("running_time", "runtime"),
			ReleaseDate: row.Get("date", "release_date"),
			Client:      row.Get("client"),
			Description: row.Get("description"),
			Order:       parseInt(row["order"], i),
		})
		report.keep()
	}
	sort.SliceStable(items, func(a, b int) bool { return items[a].Order < items[b].Order })
	return items
}

// ClassifyCategory maps free text to a gallery category by substring match.
// Anything unrecognized lands in MV, the catch-all.
func ClassifyCategory(s string) domain.Category {
	v := strings.ToLower(strings.ReplaceAll(s, "-", " "))
	switch {
	case strings.Contains(v, "dance film"):
		return domain.CategoryDanceFilm
	case strings.Contains(v, "cover"):
		return domain.CategoryDanceCover
	case strings.Contains(v, "music video"), strings.Contains(v, "mv"):
		return domain.CategoryMV
	}
	return domain.CategoryMV
}

// ClassifyWorkType maps the participation column; only an explicit
// participation marker yields Participated.
func ClassifyWorkType(s string) domain.WorkType {
	v := strings.ToLower(s)
	if strings.Contains(v, "particip") || strings.Contains(v, "참여") {
		return domain.WorkTypeParticipated
	}
	return domain.WorkTypeCreated
}

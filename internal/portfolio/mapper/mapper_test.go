package mapper

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twoong-studio/portfolio-backend/internal/portfolio/domain"
	"github.com/twoong-studio/portfolio-backend/internal/portfolio/sheets"
	"github.com/twoong-studio/portfolio-backend/internal/portfolio/youtube"
)

func mustRows(t *testing.T, csv string) []sheets.Row {
	t.Helper()
	rows, err := sheets.ParseRows(csv)
	require.NoError(t, err)
	return rows
}

func TestWorks_DropsRowsMissingIdentity(t *testing.T) {
	rows := mustRows(t, "id,title,project_type\n"+
		"1,Kept,MV\n"+
		",No id,MV\n"+
		"3,,MV\n"+
		"4,Also kept,Dance Film\n")

	var report Report
	items := Works(rows, &report)

	require.Len(t, items, 2)
	assert.Equal(t, "1", items[0].ID)
	assert.Equal(t, "4", items[1].ID)
	assert.Equal(t, 2, report.Kept)
	assert.Equal(t, []Dropped{
		{Line: 3, Reason: ReasonMissingID},
		{Line: 4, Reason: ReasonMissingName},
	}, report.Dropped)
}

func TestWorks_DropsHiddenRows(t *testing.T) {
	rows := mustRows(t, "id,title,hidden\n"+
		"1,Visible,FALSE\n"+
		"2,Upper,TRUE\n"+
		"3,Lower,true\n"+
		"4,Mixed, True \n"+
		"5,Empty,\n")

	items := Works(rows, nil)

	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	assert.Equal(t, []string{"1", "5"}, ids)
}

func TestWorks_Thumbnail(t *testing.T) {
	rows := mustRows(t, "id,title,video_url,thumbnail_url\n"+
		"1,Derived,https://www.youtube.com/watch?v=Sj60-By_T50,\n"+
		"2,Stock,https://player.vimeo.com/video/137804996,\n"+
		"3,Given,https://youtu.be/Sj60-By_T50,https://cdn.example.com/t.jpg\n")

	items := Works(rows, nil)
	require.Len(t, items, 3)

	assert.Equal(t, "https://img.youtube.com/vi/Sj60-By_T50/maxresdefault.jpg", items[0].Thumbnail)
	assert.Equal(t, "https://www.youtube.com/embed/Sj60-By_T50?autoplay=1", items[0].EmbedURL)
	assert.Equal(t, youtube.StockThumbnail, items[1].Thumbnail)
	assert.Equal(t, "https://player.vimeo.com/video/137804996", items[1].EmbedURL)
	assert.Equal(t, "https://cdn.example.com/t.jpg", items[2].Thumbnail)
}

func TestWorks_FieldMapping(t *testing.T) {
	rows := mustRows(t, "id,date,hidden,participation_level,project_type,title,role,running_time,video_url,description,setup,client\n"+
		"7,2025-03-01,,참여 (Participated),Dance Cover Series,Cover,촬영,3:30,https://youtu.be/F9L9yCf-YxU,desc,FX3,Studio\n")

	items := Works(rows, nil)
	require.Len(t, items, 1)
	w := items[0]

	assert.Equal(t, domain.WorkItem{
		ID:          "7",
		Title:       "Cover",
		Thumbnail:   "https://img.youtube.com/vi/F9L9yCf-YxU/maxresdefault.jpg",
		VideoURL:    "https://youtu.be/F9L9yCf-YxU",
		EmbedURL:    "https://www.youtube.com/embed/F9L9yCf-YxU?autoplay=1",
		Category:    domain.CategoryDanceCover,
		Type:        domain.WorkTypeParticipated,
		Role:        "촬영",
		Setup:       "FX3",
		RunningTime: "3:30",
		ReleaseDate: "2025-03-01",
		Client:      "Studio",
		Description: "desc",
		Order:       0,
	}, w)
}

func TestWorks_OrderColumn(t *testing.T) {
	rows := mustRows(t, "id,title,order\n"+
		"a,A,3\n"+
		"b,B,oops\n"+
		"c,C,0\n")

	items := Works(rows, nil)
	require.Len(t, items, 3)
	// b falls back to its row position (1)
	assert.Equal(t, []string{"c", "b", "a"}, []string{items[0].ID, items[1].ID, items[2].ID})
}

func TestClassifyCategory(t *testing.T) {
	cases := map[string]domain.Category{
		"MV":                      domain.CategoryMV,
		"Music Video":             domain.CategoryMV,
		"DANCE FILM":              domain.CategoryDanceFilm,
		"dance-film":              domain.CategoryDanceFilm,
		"Contemporary Dance Film": domain.CategoryDanceFilm,
		"Dance Cover":             domain.CategoryDanceCover,
		"cover-dance":             domain.CategoryDanceCover,
		"Commercial":              domain.CategoryMV,
		"":                        domain.CategoryMV,
	}
	for in, want := range cases {
		assert.Equal(t, want, ClassifyCategory(in), in)
	}
}

func TestClassifyWorkType(t *testing.T) {
	assert.Equal(t, domain.WorkTypeParticipated, ClassifyWorkType("participated"))
	assert.Equal(t, domain.WorkTypeParticipated, ClassifyWorkType("참여"))
	assert.Equal(t, domain.WorkTypeCreated, ClassifyWorkType("produced"))
	assert.Equal(t, domain.WorkTypeCreated, ClassifyWorkType(""))
}

func TestSkills(t *testing.T) {
	rows := mustRows(t, "id,hidden,group,name,skill_name,level,category\n"+
		"1,,Editing,DaVinci Resolve,,5,\n"+
		"2,,Editing,,Premiere Pro,abc,\n"+
		"3,TRUE,Editing,Hidden,,3,\n"+
		"4,,,,,4,\n"+
		"5,,Camera,Sony FX3,,9,equipment\n"+
		"6,,Motion,Nuke,,-2,\n")

	var report Report
	items := Skills(rows, domain.SkillTools, &report)
	require.Len(t, items, 4)

	assert.Equal(t, "DaVinci Resolve", items[0].Name)
	assert.Equal(t, 5, items[0].Level)
	assert.Equal(t, domain.SkillTools, items[0].Category)

	assert.Equal(t, "Premiere Pro", items[1].Name)
	assert.Equal(t, 0, items[1].Level, "unparseable level defaults to 0")

	assert.Equal(t, domain.SkillEquipment, items[2].Category)
	assert.Equal(t, domain.MaxLevel, items[2].Level)
	assert.Equal(t, domain.MinLevel, items[3].Level)

	assert.Equal(t, 4, report.Kept)
	assert.Equal(t, []Dropped{
		{Line: 4, Reason: ReasonHidden},
		{Line: 5, Reason: ReasonMissingSkillName},
	}, report.Dropped)
}

func TestSkills_UnknownTableCategory(t *testing.T) {
	rows := mustRows(t, "name\nOrphan\n")
	var report Report
	items := Skills(rows, domain.SkillCategory(""), &report)
	assert.Empty(t, items)
	assert.Equal(t, ReasonBadCategory, report.Dropped[0].Reason)
}

func TestParseInt(t *testing.T) {
	assert.Equal(t, 3, parseInt(" 3 ", 0))
	assert.Equal(t, 4, parseInt("4.7", 0))
	assert.Equal(t, 0, parseInt("", 0))
	assert.Equal(t, 9, parseInt("n/a", 9))
	assert.Equal(t, 1, parseInt("NaN", 1))
}

func TestParseInt_Saturates(t *testing.T) {
	assert.Equal(t, math.MaxInt, parseInt("1e300", 0))
	assert.Equal(t, math.MinInt, parseInt("-1e300", 0))
	assert.Equal(t, math.MaxInt, parseInt("99999999999999999999", 0))
	assert.Equal(t, 0, parseInt("Inf", 0))
}

func TestSiteTexts(t *testing.T) {
	rows := mustRows(t, "key,value,hidden\n"+
		"homeButtonText,See Work,\n"+
		"aboutTitle,Hidden Title,TRUE\n"+
		",orphan,\n"+
		"customSlot,Extra,\n"+
		"contactEmail,,\n")

	var report Report
	texts := ResolveSiteTexts(rows, &report)
	defaults := domain.DefaultSiteTexts()

	assert.Equal(t, "See Work", texts["homeButtonText"])
	assert.Equal(t, defaults["aboutTitle"], texts["aboutTitle"])
	assert.Equal(t, defaults["contactEmail"], texts["contactEmail"], "empty values keep the default")
	assert.Equal(t, "Extra", texts["customSlot"])
	assert.Equal(t, 3, report.Kept)
	assert.Len(t, report.Dropped, 2)
}

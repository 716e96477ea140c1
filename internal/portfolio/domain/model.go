package domain

// Category is the gallery filter a work item belongs to.
type Category string

const (
	CategoryAll        Category = "All"
	CategoryMV         Category = "MV"
	CategoryDanceFilm  Category = "Dance Film"
	CategoryDanceCover Category = "Dance Cover"
)

// Categories lists the filterable categories in display order.
var Categories = []Category{CategoryMV, CategoryDanceFilm, CategoryDanceCover}

// WorkType separates projects the owner produced from ones they joined.
type WorkType string

const (
	WorkTypeCreated      WorkType = "Created"
	WorkTypeParticipated WorkType = "Participated"
)

// SkillCategory is the about-section panel a skill is listed in.
type SkillCategory string

const (
	SkillCapabilities SkillCategory = "Capabilities"
	SkillTools        SkillCategory = "Tools"
	SkillEquipment    SkillCategory = "Equipment"
)

var SkillCategories = []SkillCategory{SkillCapabilities, SkillTools, SkillEquipment}

// Level bounds for SkillItem.Level.
const (
	MinLevel = 0
	MaxLevel = 5
)

// WorkItem is one portfolio project, built from a single sheet row.
type WorkItem struct {
	ID          string   `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Thumbnail   string   `json:"thumbnail" yaml:"thumbnail"`
	VideoURL    string   `json:"video_url" yaml:"video_url"`
	EmbedURL    string   `json:"embed_url" yaml:"embed_url"`
	Category    Category `json:"category" yaml:"category"`
	Type        WorkType `json:"type" yaml:"type"`
	Role        string   `json:"role,omitempty" yaml:"role"`
	Setup       string   `json:"setup,omitempty" yaml:"setup"`
	RunningTime string   `json:"running_time,omitempty" yaml:"running_time"`
	ReleaseDate string   `json:"release_date,omitempty" yaml:"release_date"`
	Client      string   `json:"client,omitempty" yaml:"client"`
	Description string   `json:"description,omitempty" yaml:"description"`
	Order       int      `json:"order" yaml:"order"`
}

// SkillItem is one entry of the capabilities, tools or equipment panels.
type SkillItem struct {
	ID       string        `json:"id,omitempty" yaml:"id"`
	Category SkillCategory `json:"category" yaml:"category"`
	Group    string        `json:"group,omitempty" yaml:"group"`
	Name     string        `json:"name" yaml:"name"`
	Level    int           `json:"level" yaml:"level"`
	Icon     string        `json:"icon,omitempty" yaml:"icon"`
	Order    int           `json:"order" yaml:"order"`
}

// ParseCategory matches a filter value exactly (case-insensitive).
// "all" and the empty string map to CategoryAll.
func ParseCategory(s string) (Category, bool) {
	switch normalize(s) {
	case "", "all":
		return CategoryAll, true
	case "mv":
		return CategoryMV, true
	case "dance film":
		return CategoryDanceFilm, true
	case "dance cover":
		return CategoryDanceCover, true
	}
	return "", false
}

func ParseWorkType(s string) (WorkType, bool) {
	switch normalize(s) {
	case "", "created":
		return WorkTypeCreated, true
	case "participated":
		return WorkTypeParticipated, true
	}
	return "", false
}

func ParseSkillCategory(s string) (SkillCategory, bool) {
	switch normalize(s) {
	case "capabilities", "capability", "skills", "skill":
		return SkillCapabilities, true
	case "tools", "tool":
		return SkillTools, true
	case "equipment", "equipments":
		return SkillEquipment, true
	}
	return "", false
}

// Valid reports whether the category is one of the closed set (All excluded).
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

func (c SkillCategory) Valid() bool {
	for _, known := range SkillCategories {
		if c == known {
			return true
		}
	}
	return false
}

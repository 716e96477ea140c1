// Package fallback holds the placeholder content served when the sheet is
// unreachable or yields no usable rows.
package fallback

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/twoong-studio/portfolio-backend/internal/portfolio/domain"
	"github.com/twoong-studio/portfolio-backend/internal/portfolio/youtube"
)

//go:embed fallback.yaml
var raw []byte

type dataset struct {
	Works  []domain.WorkItem  `yaml:"works"`
	Skills []domain.SkillItem `yaml:"skills"`
}

var (
	once    sync.Once
	data    dataset
	loadErr error
)

func load() (dataset, error) {
	once.Do(func() {
		data, loadErr = decode(raw)
	})
	return data, loadErr
}

func decode(b []byte) (dataset, error) {
	var d dataset
	if err := yaml.Unmarshal(b, &d); err != nil {
		return dataset{}, fmt.Errorf("decode fallback dataset: %w", err)
	}
	for i := range d.Works {
		w := &d.Works[i]
		if w.Thumbnail == "" {
			w.Thumbnail = youtube.Thumbnail(w.VideoURL)
		}
		if w.EmbedURL == "" {
			w.EmbedURL = youtube.EmbedURL(w.VideoURL)
		}
		w.Order = i
	}
	for i := range d.Skills {
		d.Skills[i].Order = i
	}
	return d, nil
}

// Works returns a fresh copy of the fallback work items.
func Works() []domain.WorkItem {
	d, err := load()
	if err != nil {
		return nil
	}
	return append([]domain.WorkItem(nil), d.Works...)
}

// Skills returns the fallback entries of one category.
func Skills(category domain.SkillCategory) []domain.SkillItem {
	d, err := load()
	if err != nil {
		return nil
	}
	return domain.FilterSkills(d.Skills, category, "")
}

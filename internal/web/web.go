// Package web renders the public portfolio page.
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/twoong-studio/portfolio-backend/internal/portfolio/domain"
	"github.com/twoong-studio/portfolio-backend/internal/portfolio/service"
	"github.com/twoong-studio/portfolio-backend/internal/portfolio/texts"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

const indexTemplate = "index.html"

// Gallery is one filter tab of the works grid.
type Gallery struct {
	Category domain.Category
	Works    []domain.WorkItem
}

// SkillPanel is one about-section panel.
type SkillPanel struct {
	Category domain.SkillCategory
	Groups   []string
	Skills   []domain.SkillItem
}

type pageData struct {
	Texts        domain.SiteTexts
	Created      []Gallery
	Participated []domain.WorkItem
	Skills       []SkillPanel
	Source       service.Source
	LoadFailed   bool
}

type Page struct {
	content *service.ContentService
	editor  *texts.Editor
	log     *zap.Logger
}

func NewPage(content *service.ContentService, editor *texts.Editor, log *zap.Logger) *Page {
	if log == nil {
		log = zap.NewNop()
	}
	return &Page{content: content, editor: editor, log: log}
}

// Templates parses the embedded page templates.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"text": func(t domain.SiteTexts, key string) string { return t[key] },
		"stars": func(level int) []bool {
			out := make([]bool, domain.MaxLevel)
			for i := range out {
				out[i] = i < level
			}
			return out
		},
	}).ParseFS(templateFS, "templates/*.html")
}

// Register installs the templates, the static assets and the index route.
func (p *Page) Register(r *gin.Engine) error {
	tmpl, err := Templates()
	if err != nil {
		return err
	}
	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		return err
	}

	r.SetHTMLTemplate(tmpl)
	r.StaticFS("/static", http.FS(static))
	r.GET("/", p.index)
	return nil
}

func (p *Page) index(c *gin.Context) {
	ctx := c.Request.Context()

	works, err := p.content.Works(ctx)
	if err != nil {
		p.log.Warn("render page without works", zap.Error(err))
		works.Items = nil
	}
	skills, err := p.content.AllSkills(ctx)
	if err != nil {
		p.log.Warn("render page without skills", zap.Error(err))
	}

	data := pageData{
		Texts:        p.editor.Texts(ctx),
		Created:      galleries(works.Items),
		Participated: domain.FilterWorks(works.Items, domain.WorkFilter{Type: domain.WorkTypeParticipated}),
		Skills:       panels(skills.Items),
		Source:       works.Source,
	}
	status := http.StatusOK
	if len(works.Items) == 0 {
		data.LoadFailed = true
		status = http.StatusServiceUnavailable
	}
	c.HTML(status, indexTemplate, data)
}

func galleries(items []domain.WorkItem) []Gallery {
	out := make([]Gallery, 0, len(domain.Categories)+1)
	for _, cat := range append([]domain.Category{domain.CategoryAll}, domain.Categories...) {
		out = append(out, Gallery{
			Category: cat,
			Works:    domain.FilterWorks(items, domain.WorkFilter{Type: domain.WorkTypeCreated, Category: cat}),
		})
	}
	return out
}

func panels(items []domain.SkillItem) []SkillPanel {
	out := make([]SkillPanel, 0, len(domain.SkillCategories))
	for _, cat := range domain.SkillCategories {
		in := domain.FilterSkills(items, cat, "")
		out = append(out, SkillPanel{Category: cat, Groups: domain.Groups(in), Skills: in})
	}
	return out
}

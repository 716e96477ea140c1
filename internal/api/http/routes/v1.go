package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	portfoliohttp "github.com/twoong-studio/portfolio-backend/internal/portfolio/http"
	"github.com/twoong-studio/portfolio-backend/internal/portfolio/service"
	"github.com/twoong-studio/portfolio-backend/internal/portfolio/texts"
	"github.com/twoong-studio/portfolio-backend/internal/web"
)

type V1Deps struct {
	Content       *service.ContentService
	Editor        *texts.Editor
	Hub           *texts.Hub
	AdminPassword string
	Log           *zap.Logger
}

// RegisterV1 mounts the JSON API under /api/v1 and the page at /.
func RegisterV1(r *gin.Engine, dep V1Deps) error {
	api := r.Group("/api/v1")

	portfoliohttp.NewHandler(portfoliohttp.Deps{
		Content:       dep.Content,
		Editor:        dep.Editor,
		Hub:           dep.Hub,
		AdminPassword: dep.AdminPassword,
		Log:           dep.Log,
	}).Register(api)

	return web.NewPage(dep.Content, dep.Editor, dep.Log).Register(r)
}

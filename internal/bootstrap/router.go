package bootstrap

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	httpapi "github.com/twoong-studio/portfolio-backend/internal/api/http"
	"github.com/twoong-studio/portfolio-backend/internal/api/http/middleware"
	"github.com/twoong-studio/portfolio-backend/internal/api/http/routes"
	"github.com/twoong-studio/portfolio-backend/internal/portfolio/service"
	"github.com/twoong-studio/portfolio-backend/internal/portfolio/texts"
)

type RouterDeps struct {
	ServiceName   string
	Version       string
	CORSOrigins   []string
	AdminPassword string
	Checks        []httpapi.Check
	Content       *service.ContentService
	Editor        *texts.Editor
	Hub           *texts.Hub
	Log           *zap.Logger
}

func BuildRouter(dep RouterDeps) (*gin.Engine, error) {
	log := dep.Log
	if log == nil {
		log = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID(log.Named("access")))
	r.Use(cors.New(CORSConfig(dep.CORSOrigins)))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Checks...)
	healthHandler.RegisterRoutes(r)

	if err := routes.RegisterV1(r, routes.V1Deps{
		Content:       dep.Content,
		Editor:        dep.Editor,
		Hub:           dep.Hub,
		AdminPassword: dep.AdminPassword,
		Log:           log.Named("http"),
	}); err != nil {
		return nil, err
	}
	return r, nil
}

// CORSConfig allows every origin for an empty list or a lone "*".
func CORSConfig(origins []string) cors.Config {
	cc := cors.DefaultConfig()
	cc.AllowMethods = []string{"GET", "POST", "PUT", "OPTIONS"}
	cc.AllowHeaders = append(cc.AllowHeaders, middleware.HeaderAdminPassword, middleware.HeaderRequestID)
	cc.ExposeHeaders = []string{middleware.HeaderRequestID}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cc.AllowAllOrigins = true
	} else {
		cc.AllowOrigins = origins
	}
	return cc
}

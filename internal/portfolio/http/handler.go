package http

import (
	"go.uber.org/zap"

	"github.com/twoong-studio/portfolio-backend/internal/portfolio/service"
	"github.com/twoong-studio/portfolio-backend/internal/portfolio/texts"
)

// Handler serves portfolio content and the site text editor.
type Handler struct {
	content       *service.ContentService
	editor        *texts.Editor
	hub           *texts.Hub
	adminPassword string
	log           *zap.Logger
}

type Deps struct {
	Content       *service.ContentService
	Editor        *texts.Editor
	Hub           *texts.Hub
	AdminPassword string
	Log           *zap.Logger
}

func NewHandler(d Deps) *Handler {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		content:       d.Content,
		editor:        d.Editor,
		hub:           d.Hub,
		adminPassword: d.AdminPassword,
		log:           log,
	}
}

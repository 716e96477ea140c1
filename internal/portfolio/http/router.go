package http

import (
	"github.com/gin-gonic/gin"

	"github.com/twoong-studio/portfolio-backend/internal/api/http/middleware"
)

// Register attaches portfolio routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/works", h.listWorks)
	rg.GET("/works/:id", h.getWork)
	rg.GET("/skills", h.listSkills)
	rg.GET("/site-texts", h.getTexts)
	rg.GET("/site-texts/events", h.textEvents)

	admin := rg.Group("/admin")
	admin.POST("/login", h.login)

	gated := admin.Group("", middleware.AdminPassword(h.adminPassword))
	gated.PUT("/site-texts", h.saveTexts)
	gated.GET("/status", h.status)
}

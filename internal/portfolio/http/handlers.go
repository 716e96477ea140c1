package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/twoong-studio/portfolio-backend/internal/api/http/middleware"
	"github.com/twoong-studio/portfolio-backend/internal/portfolio/domain"
	"github.com/twoong-studio/portfolio-backend/internal/portfolio/texts"
)

func (h *Handler) listWorks(c *gin.Context) {
	typ, ok := domain.ParseWorkType(c.Query("type"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid type"})
		return
	}
	cat, ok := domain.ParseCategory(c.Query("category"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid category"})
		return
	}

	res, err := h.content.Works(c.Request.Context())
	if err != nil || len(res.Items) == 0 {
		h.unavailable(c, "projects", err)
		return
	}

	filter := domain.WorkFilter{Type: typ, Category: cat}
	c.JSON(http.StatusOK, gin.H{
		"ok":         true,
		"source":     res.Source,
		"type":       typ,
		"category":   cat,
		"categories": append([]domain.Category{domain.CategoryAll}, domain.Categories...),
		"works":      domain.FilterWorks(res.Items, filter),
	})
}

// getWork returns one item with its gallery neighbours. Navigation follows
// the same type/category filter as the list; prev/next wrap around.
func (h *Handler) getWork(c *gin.Context) {
	res, err := h.content.Works(c.Request.Context())
	if err != nil || len(res.Items) == 0 {
		h.unavailable(c, "projects", err)
		return
	}

	items := res.Items
	if c.Query("type") != "" || c.Query("category") != "" {
		typ, okType := domain.ParseWorkType(c.Query("type"))
		cat, okCat := domain.ParseCategory(c.Query("category"))
		if !okType || !okCat {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid filter"})
			return
		}
		items = domain.FilterWorks(items, domain.WorkFilter{Type: typ, Category: cat})
	}

	cur, prev, next, err := domain.Neighbors(items, c.Param("id"))
	if errors.Is(err, domain.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"source":  res.Source,
		"work":    cur,
		"prev_id": prev.ID,
		"next_id": next.ID,
	})
}

func (h *Handler) listSkills(c *gin.Context) {
	ctx := c.Request.Context()
	group := strings.TrimSpace(c.Query("group"))

	if q := c.Query("category"); q != "" {
		cat, ok := domain.ParseSkillCategory(q)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid category"})
			return
		}
		res, err := h.content.Skills(ctx, cat)
		if err != nil || len(res.Items) == 0 {
			h.unavailable(c, "skills", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"ok":       true,
			"source":   res.Source,
			"category": cat,
			"groups":   domain.Groups(res.Items),
			"skills":   domain.FilterSkills(res.Items, cat, group),
		})
		return
	}

	res, err := h.content.AllSkills(ctx)
	if err != nil || len(res.Items) == 0 {
		h.unavailable(c, "skills", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"ok":     true,
		"source": res.Source,
		"skills": domain.FilterSkills(res.Items, "", group),
	})
}

func (h *Handler) getTexts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "texts": h.editor.Texts(c.Request.Context())})
}

type loginReq struct {
	Password string `json:"password"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	if !middleware.CheckPassword(h.adminPassword, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid admin password"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type saveTextsReq struct {
	Texts map[string]string `json:"texts"`
}

func (h *Handler) saveTexts(c *gin.Context) {
	var req saveTextsReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Texts == nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	saved, err := h.editor.Save(c.Request.Context(), req.Texts)
	if err != nil {
		h.log.Error("save site texts", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to save site texts"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "texts": saved})
}

func (h *Handler) status(c *gin.Context) {
	subs := 0
	if h.hub != nil {
		subs = h.hub.Subscribers()
	}
	c.JSON(http.StatusOK, gin.H{
		"ok":          true,
		"cached":      h.content.Cached(),
		"subscribers": subs,
	})
}

// textEvents streams site-texts-updated events as server-sent events. A
// "ready" event is sent once the subscription is live.
func (h *Handler) textEvents(c *gin.Context) {
	if h.hub == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"ok": false, "error": "events disabled"})
		return
	}
	events, cancel := h.hub.Subscribe()
	defer cancel()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	c.SSEvent("ready", gin.H{"ok": true})
	c.Writer.Flush()

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			c.SSEvent(texts.UpdatedChannel, ev)
			c.Writer.Flush()
		}
	}
}

func (h *Handler) unavailable(c *gin.Context, what string, err error) {
	if err != nil {
		h.log.Warn("content unavailable", zap.String("what", what), zap.Error(err))
	}
	c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "error": "failed to load " + what})
}

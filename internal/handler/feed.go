package handler

import (
	"errors"
	"net/http"
	"strconv"

	"ascend/internal/logger"
	"ascend/internal/model"
	"ascend/internal/service"

	"github.com/gin-gonic/gin"
)

type FeedHandler struct{ svc *service.FeedService }

func NewFeedHandler(svc *service.FeedService) *FeedHandler { return &FeedHandler{svc: svc} }

// GET /api/feed?limit=50
func (h *FeedHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	posts, err := h.svc.ListPosts(c.Request.Context(), limit)
	if err != nil {
		logger.Error("feed.list failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "load feed failed"})
		return
	}
	if posts == nil {
		posts = []model.Post{}
	}
	c.JSON(http.StatusOK, posts)
}

// POST /api/feed
func (h *FeedHandler) Create(c *gin.Context) {
	var req model.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	uid := c.GetInt("user_id")
	name := c.GetString("user_name")
	post, err := h.svc.CreatePost(c.Request.Context(), uid, name, req.Pillar, req.Content)
	if err != nil {
		logger.Error("feed.create failed", "uid", uid, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create post failed"})
		return
	}
	c.JSON(http.StatusOK, post)
}

// POST /api/feed/:id/like
func (h *FeedHandler) Like(c *gin.Context) {
	if err := h.svc.LikePost(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
			return
		}
		logger.Error("feed.like failed", "id", c.Param("id"), "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "like failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

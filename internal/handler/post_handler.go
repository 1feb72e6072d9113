package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"autohub/internal/middleware"
	"autohub/internal/model"
	"autohub/internal/repository"
)

type PostHandler struct {
	Repo *repository.PostRepository
	Log  *zap.Logger
}

func (h *PostHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.GET("/posts", h.List)
	public.GET("/posts/:id", h.GetByID)

	protected.POST("/posts", h.Create)
	protected.PUT("/posts/:id", h.Update)
	protected.DELETE("/posts/:id", h.Delete)
	protected.POST("/posts/:id/like", h.Like)
	protected.POST("/posts/:id/unlike", h.Unlike)
}

// GET /api/posts?limit=...&offset=...
func (h *PostHandler) List(c *gin.Context) {
	limit, offset := listParams(c)

	posts, err := h.Repo.List(c.Request.Context(), limit, offset)
	if err != nil {
		h.Log.Error("post list failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to fetch posts")
		return
	}
	if posts == nil {
		posts = []model.Post{}
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// GET /api/posts/:id
func (h *PostHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid post id")
		return
	}
	post, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(c, http.StatusNotFound, "post not found")
			return
		}
		h.Log.Error("post fetch failed", zap.Int64("id", id), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to fetch post")
		return
	}
	c.JSON(http.StatusOK, post)
}

type postDTO struct {
	Content  string `json:"content" binding:"required"`
	ImageURL string `json:"imageUrl"`
}

// POST /api/posts
func (h *PostHandler) Create(c *gin.Context) {
	var req postDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	post := &model.Post{
		OwnerID:  middleware.UserID(c),
		Content:  req.Content,
		ImageURL: req.ImageURL,
	}
	if err := h.Repo.Create(c.Request.Context(), post); err != nil {
		h.Log.Error("post create failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to create post")
		return
	}
	c.JSON(http.StatusCreated, post)
}

// PUT /api/posts/:id
func (h *PostHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid post id")
		return
	}
	var req postDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	current, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(c, http.StatusNotFound, "post not found")
			return
		}
		h.Log.Error("post fetch failed", zap.Int64("id", id), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to fetch post")
		return
	}
	if current.OwnerID != middleware.UserID(c) {
		respondError(c, http.StatusForbidden, "not the post owner")
		return
	}

	current.Content = req.Content
	current.ImageURL = req.ImageURL

	if _, err := h.Repo.Update(c.Request.Context(), current); err != nil {
		h.Log.Error("post update failed", zap.Int64("id", id), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to update post")
		return
	}
	c.JSON(http.StatusOK, current)
}

// DELETE /api/posts/:id
func (h *PostHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid post id")
		return
	}

	current, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(c, http.StatusNotFound, "post not found")
			return
		}
		h.Log.Error("post fetch failed", zap.Int64("id", id), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to fetch post")
		return
	}
	if current.OwnerID != middleware.UserID(c) && !middleware.IsAdmin(c) {
		respondError(c, http.StatusForbidden, "not the post owner")
		return
	}

	if _, err := h.Repo.Delete(c.Request.Context(), id); err != nil {
		h.Log.Error("post delete failed", zap.Int64("id", id), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to delete post")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "deleted"})
}

// POST /api/posts/:id/like
func (h *PostHandler) Like(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid post id")
		return
	}

	if err := h.Repo.Like(c.Request.Context(), id, middleware.UserID(c)); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			respondError(c, http.StatusConflict, "already liked")
			return
		}
		h.Log.Error("post like failed", zap.Int64("id", id), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to like post")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true})
}

// POST /api/posts/:id/unlike
func (h *PostHandler) Unlike(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid post id")
		return
	}

	removed, err := h.Repo.Unlike(c.Request.Context(), id, middleware.UserID(c))
	if err != nil {
		h.Log.Error("post unlike failed", zap.Int64("id", id), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to unlike post")
		return
	}
	if !removed {
		respondError(c, http.StatusNotFound, "like not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

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

type NotificationHandler struct {
	Repo *repository.NotificationRepository
	Log  *zap.Logger
}

func (h *NotificationHandler) RegisterRoutes(protected *gin.RouterGroup) {
	protected.GET("/notifications", h.List)
	protected.GET("/notifications/unread-count", h.UnreadCount)
	protected.PUT("/notifications/:id/read", h.MarkRead)
	protected.DELETE("/notifications/:id", h.Delete)
}

// GET /api/notifications?limit=...&offset=...
// Without limit the full list is returned.
func (h *NotificationHandler) List(c *gin.Context) {
	limit, offset := listParams(c)

	notifs, err := h.Repo.FindByUser(c.Request.Context(), middleware.UserID(c), limit, offset)
	if err != nil {
		h.Log.Error("notification list failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to fetch notifications")
		return
	}
	if notifs == nil {
		notifs = []model.Notification{}
	}
	c.JSON(http.StatusOK, gin.H{"notifications": notifs})
}

// GET /api/notifications/unread-count
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	count, err := h.Repo.UnreadCount(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.Log.Error("unread count failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to fetch unread count")
		return
	}
	c.JSON(http.StatusOK, gin.H{"unreadCount": count})
}

// PUT /api/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, ok := h.authorize(c)
	if !ok {
		return
	}

	updated, err := h.Repo.MarkAsRead(c.Request.Context(), id)
	if err != nil {
		h.Log.Error("mark read failed", zap.Int64("id", id), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to update notification")
		return
	}
	if !updated {
		respondError(c, http.StatusNotFound, "notification not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DELETE /api/notifications/:id
func (h *NotificationHandler) Delete(c *gin.Context) {
	id, ok := h.authorize(c)
	if !ok {
		return
	}

	removed, err := h.Repo.Delete(c.Request.Context(), id)
	if err != nil {
		h.Log.Error("notification delete failed", zap.Int64("id", id), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to delete notification")
		return
	}
	if !removed {
		respondError(c, http.StatusNotFound, "notification not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// authorize parses the id and verifies the acting user is the recipient
// before any mutation.
func (h *NotificationHandler) authorize(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid notification id")
		return 0, false
	}

	n, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(c, http.StatusNotFound, "notification not found")
			return 0, false
		}
		h.Log.Error("notification fetch failed", zap.Int64("id", id), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to fetch notification")
		return 0, false
	}
	if n.RecipientID != middleware.UserID(c) {
		respondError(c, http.StatusForbidden, "not your notification")
		return 0, false
	}
	return id, true
}

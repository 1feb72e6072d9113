package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"autohub/internal/middleware"
	"autohub/internal/model"
	"autohub/internal/service"
)

// FollowHandler exposes the social graph over HTTP. The follower id
// always comes from the authenticated identity, never the body.
type FollowHandler struct {
	Svc *service.FollowService
	Log *zap.Logger
}

func (h *FollowHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	protected.POST("/follows/follow", h.Follow)
	protected.POST("/follows/unfollow", h.Unfollow)
	protected.GET("/follows/:id/status", h.Status)

	public.GET("/follows/:id/followers", h.Followers)
	public.GET("/follows/:id/following", h.Following)
}

type followDTO struct {
	FolloweeID int64 `json:"followeeId" binding:"required"`
}

// POST /api/follows/follow
func (h *FollowHandler) Follow(c *gin.Context) {
	var req followDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "followeeId is required")
		return
	}

	err := h.Svc.Follow(c.Request.Context(), middleware.UserID(c), req.FolloweeID)
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, gin.H{"success": true})
	case errors.Is(err, service.ErrInvalidID), errors.Is(err, service.ErrSelfFollow):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrAlreadyFollowing):
		respondError(c, http.StatusConflict, "already following this user")
	default:
		h.Log.Error("follow failed", zap.Int64("followee_id", req.FolloweeID), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to follow user")
	}
}

// POST /api/follows/unfollow
func (h *FollowHandler) Unfollow(c *gin.Context) {
	var req followDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "followeeId is required")
		return
	}

	err := h.Svc.Unfollow(c.Request.Context(), middleware.UserID(c), req.FolloweeID)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"success": true})
	case errors.Is(err, service.ErrInvalidID):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNotFollowing):
		respondError(c, http.StatusNotFound, "not following this user")
	default:
		h.Log.Error("unfollow failed", zap.Int64("followee_id", req.FolloweeID), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to unfollow user")
	}
}

// GET /api/follows/:id/status
func (h *FollowHandler) Status(c *gin.Context) {
	followeeID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid user id")
		return
	}

	following, err := h.Svc.IsFollowing(c.Request.Context(), middleware.UserID(c), followeeID)
	if err != nil {
		h.Log.Error("follow status failed", zap.Int64("followee_id", followeeID), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to check follow status")
		return
	}
	c.JSON(http.StatusOK, gin.H{"following": following})
}

// GET /api/follows/:id/followers?limit=...&offset=...
// Without limit the full list is returned.
func (h *FollowHandler) Followers(c *gin.Context) {
	h.listEndpoint(c, h.Svc.Followers)
}

// GET /api/follows/:id/following?limit=...&offset=...
func (h *FollowHandler) Following(c *gin.Context) {
	h.listEndpoint(c, h.Svc.Following)
}

func (h *FollowHandler) listEndpoint(c *gin.Context, fetch func(ctx context.Context, userID int64, limit, offset int) ([]model.FollowUser, error)) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid user id")
		return
	}
	limit, offset := listParams(c)

	users, err := fetch(c.Request.Context(), userID, limit, offset)
	if err != nil {
		h.Log.Error("follow list failed", zap.Int64("user_id", userID), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to fetch users")
		return
	}
	if users == nil {
		users = []model.FollowUser{}
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

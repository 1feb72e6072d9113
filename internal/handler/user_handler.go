package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"autohub/internal/middleware"
	"autohub/internal/repository"
)

type UserHandler struct {
	Users *repository.UserRepository
	Log   *zap.Logger
}

func (h *UserHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.GET("/users/:id", h.GetByID)
	protected.PUT("/users/:id", h.UpdateProfile)
}

// GET /api/users/:id
func (h *UserHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid user id")
		return
	}

	user, err := h.Users.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(c, http.StatusNotFound, "user not found")
			return
		}
		h.Log.Error("user fetch failed", zap.Int64("id", id), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to fetch user")
		return
	}
	// Public profile view: hide the email.
	user.Email = ""
	c.JSON(http.StatusOK, user)
}

type updateProfileDTO struct {
	DisplayName  string `json:"displayName"`
	Bio          string `json:"bio"`
	Location     string `json:"location"`
	ProfileImage string `json:"profileImage"`
}

// PUT /api/users/:id
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid user id")
		return
	}
	if id != middleware.UserID(c) {
		respondError(c, http.StatusForbidden, "can only update your own profile")
		return
	}

	var req updateProfileDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	user, err := h.Users.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(c, http.StatusNotFound, "user not found")
			return
		}
		h.Log.Error("user fetch failed", zap.Int64("id", id), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to fetch user")
		return
	}

	user.DisplayName = req.DisplayName
	user.Bio = req.Bio
	user.Location = req.Location
	user.ProfileImage = req.ProfileImage

	if _, err := h.Users.UpdateProfile(c.Request.Context(), user); err != nil {
		h.Log.Error("profile update failed", zap.Int64("id", id), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to update profile")
		return
	}
	c.JSON(http.StatusOK, user)
}

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

type EventHandler struct {
	Repo *repository.EventRepository
	Log  *zap.Logger
}

func (h *EventHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.GET("/events", h.List)
	public.GET("/events/:id", h.GetByID)
	public.GET("/users/:id/events", h.ListByOwner)

	protected.POST("/events", h.Create)
	protected.PUT("/events/:id", h.Update)
	protected.DELETE("/events/:id", h.Delete)
}

// GET /api/events?limit=...&offset=...
func (h *EventHandler) List(c *gin.Context) {
	limit, offset := listParams(c)

	events, err := h.Repo.List(c.Request.Context(), limit, offset)
	if err != nil {
		h.Log.Error("event list failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to fetch events")
		return
	}
	if events == nil {
		events = []model.Event{}
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

// GET /api/users/:id/events
func (h *EventHandler) ListByOwner(c *gin.Context) {
	ownerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid user id")
		return
	}

	events, err := h.Repo.ListByOwner(c.Request.Context(), ownerID)
	if err != nil {
		h.Log.Error("event list by owner failed", zap.Int64("owner_id", ownerID), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to fetch events")
		return
	}
	if events == nil {
		events = []model.Event{}
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

// GET /api/events/:id
func (h *EventHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid event id")
		return
	}
	event, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(c, http.StatusNotFound, "event not found")
			return
		}
		h.Log.Error("event fetch failed", zap.Int64("id", id), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to fetch event")
		return
	}
	c.JSON(http.StatusOK, event)
}

type eventDTO struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Date        string `json:"date" binding:"required"`
	Time        string `json:"time"`
	Location    string `json:"location"`
	ImageURL    string `json:"imageUrl"`
}

// POST /api/events
func (h *EventHandler) Create(c *gin.Context) {
	var req eventDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	event := &model.Event{
		OwnerID:     middleware.UserID(c),
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Time:        req.Time,
		Location:    req.Location,
		ImageURL:    req.ImageURL,
	}
	if err := h.Repo.Create(c.Request.Context(), event); err != nil {
		h.Log.Error("event create failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to create event")
		return
	}
	c.JSON(http.StatusCreated, event)
}

// PUT /api/events/:id
func (h *EventHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid event id")
		return
	}
	var req eventDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	current, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(c, http.StatusNotFound, "event not found")
			return
		}
		h.Log.Error("event fetch failed", zap.Int64("id", id), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to fetch event")
		return
	}
	if current.OwnerID != middleware.UserID(c) {
		respondError(c, http.StatusForbidden, "not the event owner")
		return
	}

	current.Title = req.Title
	current.Description = req.Description
	current.Date = req.Date
	current.Time = req.Time
	current.Location = req.Location
	current.ImageURL = req.ImageURL

	if _, err := h.Repo.Update(c.Request.Context(), current); err != nil {
		h.Log.Error("event update failed", zap.Int64("id", id), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to update event")
		return
	}
	c.JSON(http.StatusOK, current)
}

// DELETE /api/events/:id
func (h *EventHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid event id")
		return
	}

	current, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(c, http.StatusNotFound, "event not found")
			return
		}
		h.Log.Error("event fetch failed", zap.Int64("id", id), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to fetch event")
		return
	}
	if current.OwnerID != middleware.UserID(c) && !middleware.IsAdmin(c) {
		respondError(c, http.StatusForbidden, "not the event owner")
		return
	}

	if _, err := h.Repo.Delete(c.Request.Context(), id); err != nil {
		h.Log.Error("event delete failed", zap.Int64("id", id), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to delete event")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "deleted"})
}

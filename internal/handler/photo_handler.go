package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"autohub/internal/repository"
)

type PhotoHandler struct {
	Repo *repository.PhotoRepository
	Log  *zap.Logger
}

func (h *PhotoHandler) RegisterRoutes(public *gin.RouterGroup) {
	public.GET("/photos/:id", h.Download)
}

// GET /api/photos/:id
func (h *PhotoHandler) Download(c *gin.Context) {
	data, err := h.Repo.Download(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusNotFound, "photo not found")
		return
	}
	c.Data(http.StatusOK, "image/jpeg", data)
}

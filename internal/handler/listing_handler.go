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

const maxPageSize = 100

// ListingHandler covers listing search, reads and owner-only mutations.
type ListingHandler struct {
	Repo   *repository.ListingRepository
	Photos *repository.PhotoRepository
	Log    *zap.Logger
}

func (h *ListingHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.GET("/listings", h.Search)
	public.GET("/listings/:id", h.GetByID)

	protected.POST("/listings", h.Create)
	protected.PUT("/listings/:id", h.Update)
	protected.DELETE("/listings/:id", h.Delete)
}

// GET /api/listings?q=...&category=...&condition=...&make=...&minPrice=...&maxPrice=...&sort=...&limit=...&offset=...
func (h *ListingHandler) Search(c *gin.Context) {
	filters := repository.SearchFilters{
		Query:     c.Query("q"),
		Category:  c.Query("category"),
		Condition: c.Query("condition"),
		Make:      c.Query("make"),
		Sort:      c.Query("sort"),
	}
	if v := c.Query("minPrice"); v != "" {
		if min, err := strconv.ParseFloat(v, 64); err == nil {
			filters.MinPrice = &min
		}
	}
	if v := c.Query("maxPrice"); v != "" {
		if max, err := strconv.ParseFloat(v, 64); err == nil {
			filters.MaxPrice = &max
		}
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit <= 0 {
		limit = 10
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}
	filters.Limit = limit
	filters.Offset = offset

	listings, total, err := h.Repo.Search(c.Request.Context(), filters)
	if err != nil {
		h.Log.Error("listing search failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to fetch listings")
		return
	}
	if listings == nil {
		listings = []model.Listing{}
	}
	c.JSON(http.StatusOK, gin.H{
		"totalCount": total,
		"limit":      limit,
		"offset":     offset,
		"listings":   listings,
	})
}

// GET /api/listings/:id
func (h *ListingHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid listing id")
		return
	}

	listing, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(c, http.StatusNotFound, "listing not found")
			return
		}
		h.Log.Error("listing fetch failed", zap.Int64("id", id), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to fetch listing")
		return
	}
	c.JSON(http.StatusOK, listing)
}

// POST /api/listings
// Multipart form: text fields plus zero or more "images" files. Uploaded
// files go to the photo store; their URLs are kept in upload order.
func (h *ListingHandler) Create(c *gin.Context) {
	userID := middleware.UserID(c)

	title := c.PostForm("title")
	if title == "" {
		respondError(c, http.StatusBadRequest, "title is required")
		return
	}
	price, err := strconv.ParseFloat(c.DefaultPostForm("price", "0"), 64)
	if err != nil || price < 0 {
		respondError(c, http.StatusBadRequest, "invalid price")
		return
	}
	year, err := strconv.Atoi(c.DefaultPostForm("year", "0"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid year")
		return
	}
	mileage, err := strconv.Atoi(c.DefaultPostForm("mileage", "0"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid mileage")
		return
	}

	listing := &model.Listing{
		OwnerID:     userID,
		Title:       title,
		Description: c.PostForm("description"),
		Price:       price,
		Category:    c.PostForm("category"),
		Condition:   c.PostForm("condition"),
		Make:        c.PostForm("make"),
		Model:       c.PostForm("model"),
		Year:        year,
		Mileage:     mileage,
		Location:    c.PostForm("location"),
		Images:      []string{},
	}

	form, err := c.MultipartForm()
	if err == nil && form != nil {
		for _, fh := range form.File["images"] {
			file, err := fh.Open()
			if err != nil {
				respondError(c, http.StatusBadRequest, "cannot open uploaded file")
				return
			}
			photoID, err := h.Photos.Upload(file, fh.Filename)
			file.Close()
			if err != nil {
				h.Log.Error("image upload failed", zap.String("filename", fh.Filename), zap.Error(err))
				respondError(c, http.StatusInternalServerError, "image upload failed")
				return
			}
			listing.Images = append(listing.Images, "/api/photos/"+photoID)
		}
	}

	if err := h.Repo.Create(c.Request.Context(), listing); err != nil {
		h.Log.Error("listing create failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to create listing")
		return
	}
	c.JSON(http.StatusCreated, listing)
}

type updateListingDTO struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	Condition   string   `json:"condition"`
	Make        string   `json:"make"`
	Model       string   `json:"model"`
	Year        int      `json:"year"`
	Mileage     int      `json:"mileage"`
	Location    string   `json:"location"`
	Images      []string `json:"images"`
}

// PUT /api/listings/:id
func (h *ListingHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid listing id")
		return
	}
	var req updateListingDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	current, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(c, http.StatusNotFound, "listing not found")
			return
		}
		h.Log.Error("listing fetch failed", zap.Int64("id", id), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to fetch listing")
		return
	}
	if current.OwnerID != middleware.UserID(c) {
		respondError(c, http.StatusForbidden, "not the listing owner")
		return
	}

	current.Title = req.Title
	current.Description = req.Description
	current.Price = req.Price
	current.Category = req.Category
	current.Condition = req.Condition
	current.Make = req.Make
	current.Model = req.Model
	current.Year = req.Year
	current.Mileage = req.Mileage
	current.Location = req.Location
	if req.Images != nil {
		current.Images = req.Images
	}

	if _, err := h.Repo.Update(c.Request.Context(), current); err != nil {
		h.Log.Error("listing update failed", zap.Int64("id", id), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to update listing")
		return
	}
	c.JSON(http.StatusOK, current)
}

// DELETE /api/listings/:id
// Image cleanup in the photo store is best-effort; a failed blob delete
// is logged and the listing delete still succeeds.
func (h *ListingHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid listing id")
		return
	}

	current, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(c, http.StatusNotFound, "listing not found")
			return
		}
		h.Log.Error("listing fetch failed", zap.Int64("id", id), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to fetch listing")
		return
	}
	if current.OwnerID != middleware.UserID(c) && !middleware.IsAdmin(c) {
		respondError(c, http.StatusForbidden, "not the listing owner")
		return
	}

	if _, err := h.Repo.Delete(c.Request.Context(), id); err != nil {
		h.Log.Error("listing delete failed", zap.Int64("id", id), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to delete listing")
		return
	}

	for _, url := range current.Images {
		photoID := photoIDFromURL(url)
		if photoID == "" {
			continue
		}
		if err := h.Photos.Delete(photoID); err != nil {
			h.Log.Warn("image cleanup failed", zap.String("photo_id", photoID), zap.Error(err))
		}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "deleted"})
}

func photoIDFromURL(url string) string {
	const prefix = "/api/photos/"
	if len(url) > len(prefix) && url[:len(prefix)] == prefix {
		return url[len(prefix):]
	}
	return ""
}

package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"autohub/internal/repository"
)

func searchRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	h := &ListingHandler{
		Repo: repository.NewListingRepository(sqlx.NewDb(mockDB, "sqlmock")),
		Log:  zap.NewNop(),
	}
	r := gin.New()
	r.GET("/api/listings", h.Search)
	return r, mock
}

var emptyListingRows = []string{
	"id", "owner_id", "title", "description", "price", "category",
	"condition", "make", "model", "year", "mileage", "location",
	"images", "created_at", "owner_username", "owner_display_name",
}

func TestSearchDefaultsLimitAndOffset(t *testing.T) {
	r, mock := searchRouter(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM listings l")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(regexp.QuoteMeta("LIMIT $1 OFFSET $2")).
		WithArgs(10, 0).
		WillReturnRows(sqlmock.NewRows(emptyListingRows))

	req := httptest.NewRequest(http.MethodGet, "/api/listings", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())

	var resp struct {
		TotalCount int               `json:"totalCount"`
		Limit      int               `json:"limit"`
		Offset     int               `json:"offset"`
		Listings   []json.RawMessage `json:"listings"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.TotalCount)
	assert.Equal(t, 10, resp.Limit)
	assert.Equal(t, 0, resp.Offset)
	assert.NotNil(t, resp.Listings)
}

func TestSearchNonNumericPagingCoercedToDefaults(t *testing.T) {
	r, mock := searchRouter(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM listings l")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(regexp.QuoteMeta("LIMIT $1 OFFSET $2")).
		WithArgs(10, 0).
		WillReturnRows(sqlmock.NewRows(emptyListingRows))

	req := httptest.NewRequest(http.MethodGet, "/api/listings?limit=abc&offset=xyz", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchLimitCapped(t *testing.T) {
	r, mock := searchRouter(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM listings l")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(regexp.QuoteMeta("LIMIT $1 OFFSET $2")).
		WithArgs(100, 0).
		WillReturnRows(sqlmock.NewRows(emptyListingRows))

	req := httptest.NewRequest(http.MethodGet, "/api/listings?limit=5000", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchFiltersForwarded(t *testing.T) {
	r, mock := searchRouter(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM listings l WHERE l.category = $1 AND l.price >= $2 AND l.price <= $3")).
		WithArgs("Wheels", 100.0, 1000.0).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY l.price ASC LIMIT $4 OFFSET $5")).
		WithArgs("Wheels", 100.0, 1000.0, 2, 0).
		WillReturnRows(sqlmock.NewRows(emptyListingRows))

	req := httptest.NewRequest(http.MethodGet,
		"/api/listings?category=Wheels&minPrice=100&maxPrice=1000&sort=price_asc&limit=2", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchStorageErrorIsGeneric500(t *testing.T) {
	r, mock := searchRouter(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM listings l")).
		WillReturnError(assert.AnError)

	req := httptest.NewRequest(http.MethodGet, "/api/listings", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "failed to fetch listings", resp["error"])
}

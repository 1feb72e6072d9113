package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func TestBuildSearchWhere(t *testing.T) {
	tests := []struct {
		name      string
		filters   SearchFilters
		wantWhere string
		wantArgs  []interface{}
	}{
		{
			name:      "no filters",
			filters:   SearchFilters{},
			wantWhere: "",
			wantArgs:  nil,
		},
		{
			name:      "free text only",
			filters:   SearchFilters{Query: "turbo"},
			wantWhere: " WHERE (l.title ILIKE $1 OR l.description ILIKE $1)",
			wantArgs:  []interface{}{"%turbo%"},
		},
		{
			name:      "category and price range",
			filters:   SearchFilters{Category: "Wheels", MinPrice: floatPtr(100), MaxPrice: floatPtr(1000)},
			wantWhere: " WHERE l.category = $1 AND l.price >= $2 AND l.price <= $3",
			wantArgs:  []interface{}{"Wheels", 100.0, 1000.0},
		},
		{
			name: "all filters",
			filters: SearchFilters{
				Query:     "v8",
				Category:  "Engines",
				Condition: "used",
				Make:      "Ford",
				MinPrice:  floatPtr(50),
				MaxPrice:  floatPtr(500),
			},
			wantWhere: " WHERE (l.title ILIKE $1 OR l.description ILIKE $1)" +
				" AND l.category = $2 AND l.condition = $3 AND l.make = $4" +
				" AND l.price >= $5 AND l.price <= $6",
			wantArgs: []interface{}{"%v8%", "Engines", "used", "Ford", 50.0, 500.0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := buildSearchWhere(tt.filters)
			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestOrderClause(t *testing.T) {
	tests := []struct {
		sort string
		want string
	}{
		{SortPriceAsc, " ORDER BY l.price ASC"},
		{SortPriceDesc, " ORDER BY l.price DESC"},
		{SortCreatedAtDesc, " ORDER BY l.created_at DESC"},
		{"", " ORDER BY l.created_at DESC"},
		{"bogus", " ORDER BY l.created_at DESC"},
		{"price", " ORDER BY l.created_at DESC"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, orderClause(tt.sort), "sort=%q", tt.sort)
	}
}

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return sqlx.NewDb(mockDB, "sqlmock"), mock
}

var listingRows = []string{
	"id", "owner_id", "title", "description", "price", "category",
	"condition", "make", "model", "year", "mileage", "location",
	"images", "created_at", "owner_username", "owner_display_name",
}

// The count and the page must be driven by the same WHERE clause.
func TestListingSearchCountAndPageShareWhere(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewListingRepository(db)

	where := " WHERE l.category = $1 AND l.price >= $2 AND l.price <= $3"

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM listings l"+where)).
		WithArgs("Wheels", 100.0, 1000.0).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	now := time.Now()
	rows := sqlmock.NewRows(listingRows).
		AddRow(2, 1, "Alloy wheels", "", 150.0, "Wheels", "used", "", "", 0, 0, "", "{}", now, "sam", "Sam").
		AddRow(3, 1, "Steel wheels", "", 300.0, "Wheels", "used", "", "", 0, 0, "", "{}", now, "sam", "Sam")

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY l.price ASC LIMIT $4 OFFSET $5")).
		WithArgs("Wheels", 100.0, 1000.0, 2, 0).
		WillReturnRows(rows)

	min, max := 100.0, 1000.0
	listings, total, err := repo.Search(context.Background(), SearchFilters{
		Category: "Wheels",
		MinPrice: &min,
		MaxPrice: &max,
		Sort:     SortPriceAsc,
		Limit:    2,
		Offset:   0,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, listings, 2)
	assert.Equal(t, 150.0, listings[0].Price)
	assert.Equal(t, 300.0, listings[1].Price)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListingSearchUnknownSortFallsBack(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewListingRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM listings l")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY l.created_at DESC LIMIT $1 OFFSET $2")).
		WithArgs(10, 0).
		WillReturnRows(sqlmock.NewRows(listingRows))

	_, _, err := repo.Search(context.Background(), SearchFilters{Sort: "alphabetical", Limit: 10})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListingSearchStorageError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewListingRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM listings l")).
		WillReturnError(assert.AnError)

	listings, total, err := repo.Search(context.Background(), SearchFilters{Limit: 10})
	assert.Error(t, err)
	assert.Nil(t, listings)
	assert.Zero(t, total)
}

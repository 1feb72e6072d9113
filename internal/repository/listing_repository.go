package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"autohub/internal/model"
)

// SearchFilters is the bag of optional listing search parameters.
// Zero values mean "no predicate"; nil price bounds mean unbounded.
type SearchFilters struct {
	Query     string
	Category  string
	Condition string
	Make      string
	MinPrice  *float64
	MaxPrice  *float64
	Sort      string
	Limit     int
	Offset    int
}

const (
	SortPriceAsc      = "price_asc"
	SortPriceDesc     = "price_desc"
	SortCreatedAtDesc = "created_at_desc"
)

type ListingRepository struct {
	DB *sqlx.DB
}

func NewListingRepository(db *sqlx.DB) *ListingRepository {
	return &ListingRepository{DB: db}
}

const listingColumns = `
	l.id, l.owner_id, l.title, l.description, l.price, l.category,
	l.condition, l.make, l.model, l.year, l.mileage, l.location,
	l.images, l.created_at,
	u.username AS owner_username,
	u.display_name AS owner_display_name`

// buildSearchWhere accumulates one AND-ed predicate per present filter.
// Both the page query and the count query reuse the returned clause, so
// totalCount always agrees with the page contents.
func buildSearchWhere(f SearchFilters) (string, []interface{}) {
	var conds []string
	var args []interface{}
	idx := 1

	if f.Query != "" {
		conds = append(conds, fmt.Sprintf("(l.title ILIKE $%d OR l.description ILIKE $%d)", idx, idx))
		args = append(args, "%"+f.Query+"%")
		idx++
	}
	if f.Category != "" {
		conds = append(conds, fmt.Sprintf("l.category = $%d", idx))
		args = append(args, f.Category)
		idx++
	}
	if f.Condition != "" {
		conds = append(conds, fmt.Sprintf("l.condition = $%d", idx))
		args = append(args, f.Condition)
		idx++
	}
	if f.Make != "" {
		conds = append(conds, fmt.Sprintf("l.make = $%d", idx))
		args = append(args, f.Make)
		idx++
	}
	if f.MinPrice != nil {
		conds = append(conds, fmt.Sprintf("l.price >= $%d", idx))
		args = append(args, *f.MinPrice)
		idx++
	}
	if f.MaxPrice != nil {
		conds = append(conds, fmt.Sprintf("l.price <= $%d", idx))
		args = append(args, *f.MaxPrice)
		idx++
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// orderClause maps the sort enum to exactly one ORDER BY. Anything
// unrecognized falls back to newest-first.
func orderClause(sort string) string {
	switch sort {
	case SortPriceAsc:
		return " ORDER BY l.price ASC"
	case SortPriceDesc:
		return " ORDER BY l.price DESC"
	default:
		return " ORDER BY l.created_at DESC"
	}
}

// Search returns one page of matching listings plus the total count for
// the same predicate set.
func (r *ListingRepository) Search(ctx context.Context, f SearchFilters) ([]model.Listing, int, error) {
	where, args := buildSearchWhere(f)

	countQuery := "SELECT COUNT(*) FROM listings l" + where
	var total int
	if err := r.DB.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("ListingRepository.Search: count: %w", err)
	}

	idx := len(args) + 1
	query := "SELECT" + listingColumns +
		" FROM listings l JOIN users u ON u.id = l.owner_id" +
		where + orderClause(f.Sort) +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", idx, idx+1)
	args = append(args, f.Limit, f.Offset)

	var listings []model.Listing
	if err := r.DB.SelectContext(ctx, &listings, query, args...); err != nil {
		return nil, 0, fmt.Errorf("ListingRepository.Search: select: %w", err)
	}
	return listings, total, nil
}

func (r *ListingRepository) GetByID(ctx context.Context, id int64) (*model.Listing, error) {
	query := "SELECT" + listingColumns +
		" FROM listings l JOIN users u ON u.id = l.owner_id WHERE l.id = $1"
	var l model.Listing
	if err := r.DB.GetContext(ctx, &l, query, id); err != nil {
		return nil, fmt.Errorf("ListingRepository.GetByID: %w", err)
	}
	return &l, nil
}

func (r *ListingRepository) Create(ctx context.Context, l *model.Listing) error {
	const query = `
		INSERT INTO listings
			(owner_id, title, description, price, category, condition,
			 make, model, year, mileage, location, images)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at`
	err := r.DB.QueryRowxContext(ctx, query,
		l.OwnerID, l.Title, l.Description, l.Price, l.Category, l.Condition,
		l.Make, l.Model, l.Year, l.Mileage, l.Location, pq.Array([]string(l.Images)),
	).Scan(&l.ID, &l.CreatedAt)
	if err != nil {
		return fmt.Errorf("ListingRepository.Create: %w", err)
	}
	return nil
}

func (r *ListingRepository) Update(ctx context.Context, l *model.Listing) (bool, error) {
	const query = `
		UPDATE listings SET
			title = $1, description = $2, price = $3, category = $4,
			condition = $5, make = $6, model = $7, year = $8,
			mileage = $9, location = $10, images = $11
		WHERE id = $12`
	res, err := r.DB.ExecContext(ctx, query,
		l.Title, l.Description, l.Price, l.Category, l.Condition,
		l.Make, l.Model, l.Year, l.Mileage, l.Location,
		pq.Array([]string(l.Images)), l.ID)
	if err != nil {
		return false, fmt.Errorf("ListingRepository.Update: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *ListingRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM listings WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("ListingRepository.Delete: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

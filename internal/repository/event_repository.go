package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"autohub/internal/model"
)

type EventRepository struct {
	DB *sqlx.DB
}

func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{DB: db}
}

func (r *EventRepository) Create(ctx context.Context, e *model.Event) error {
	const query = `
		INSERT INTO events (owner_id, title, description, date, time, location, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`
	err := r.DB.QueryRowxContext(ctx, query,
		e.OwnerID, e.Title, e.Description, e.Date, e.Time, e.Location, e.ImageURL,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("EventRepository.Create: %w", err)
	}
	return nil
}

func (r *EventRepository) GetByID(ctx context.Context, id int64) (*model.Event, error) {
	var e model.Event
	err := r.DB.GetContext(ctx, &e, `SELECT * FROM events WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("EventRepository.GetByID: %w", err)
	}
	return &e, nil
}

// List returns events ordered by date ascending (soonest first).
func (r *EventRepository) List(ctx context.Context, limit, offset int) ([]model.Event, error) {
	query := `SELECT * FROM events ORDER BY date ASC, time ASC`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT $1 OFFSET $2"
		args = append(args, limit, offset)
	}
	var events []model.Event
	if err := r.DB.SelectContext(ctx, &events, query, args...); err != nil {
		return nil, fmt.Errorf("EventRepository.List: %w", err)
	}
	return events, nil
}

func (r *EventRepository) ListByOwner(ctx context.Context, ownerID int64) ([]model.Event, error) {
	var events []model.Event
	err := r.DB.SelectContext(ctx, &events,
		`SELECT * FROM events WHERE owner_id = $1 ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("EventRepository.ListByOwner: %w", err)
	}
	return events, nil
}

func (r *EventRepository) Update(ctx context.Context, e *model.Event) (bool, error) {
	const query = `
		UPDATE events SET title = $1, description = $2, date = $3, time = $4,
			location = $5, image_url = $6
		WHERE id = $7`
	res, err := r.DB.ExecContext(ctx, query,
		e.Title, e.Description, e.Date, e.Time, e.Location, e.ImageURL, e.ID)
	if err != nil {
		return false, fmt.Errorf("EventRepository.Update: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *EventRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("EventRepository.Delete: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

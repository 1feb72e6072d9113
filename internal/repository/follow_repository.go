package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"autohub/internal/model"
)

type FollowRepository struct {
	DB *sqlx.DB
}

func NewFollowRepository(db *sqlx.DB) *FollowRepository {
	return &FollowRepository{DB: db}
}

// Create inserts the edge. A unique-constraint violation comes back as
// ErrDuplicate so the service can report Conflict even when two calls
// interleave past the existence pre-check.
func (r *FollowRepository) Create(ctx context.Context, followerID, followeeID int64) error {
	const query = `INSERT INTO follows (follower_id, followee_id) VALUES ($1, $2)`
	if _, err := r.DB.ExecContext(ctx, query, followerID, followeeID); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("FollowRepository.Create: %w", ErrDuplicate)
		}
		return fmt.Errorf("FollowRepository.Create: %w", err)
	}
	return nil
}

// Delete removes the edge and reports whether a row existed.
func (r *FollowRepository) Delete(ctx context.Context, followerID, followeeID int64) (bool, error) {
	const query = `DELETE FROM follows WHERE follower_id = $1 AND followee_id = $2`
	res, err := r.DB.ExecContext(ctx, query, followerID, followeeID)
	if err != nil {
		return false, fmt.Errorf("FollowRepository.Delete: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *FollowRepository) Exists(ctx context.Context, followerID, followeeID int64) (bool, error) {
	const query = `SELECT COUNT(1) FROM follows WHERE follower_id = $1 AND followee_id = $2`
	var count int
	if err := r.DB.GetContext(ctx, &count, query, followerID, followeeID); err != nil {
		return false, fmt.Errorf("FollowRepository.Exists: %w", err)
	}
	return count > 0, nil
}

// Followers returns the users following userID, newest edge first.
// limit <= 0 returns the full list.
func (r *FollowRepository) Followers(ctx context.Context, userID int64, limit, offset int) ([]model.FollowUser, error) {
	query := `
		SELECT u.id, u.username, u.display_name, u.profile_image
		FROM follows f
		JOIN users u ON u.id = f.follower_id
		WHERE f.followee_id = $1
		ORDER BY f.created_at DESC`
	args := []interface{}{userID}
	if limit > 0 {
		query += " LIMIT $2 OFFSET $3"
		args = append(args, limit, offset)
	}

	var users []model.FollowUser
	if err := r.DB.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, fmt.Errorf("FollowRepository.Followers: %w", err)
	}
	return users, nil
}

// Following returns the users userID follows, newest edge first.
func (r *FollowRepository) Following(ctx context.Context, userID int64, limit, offset int) ([]model.FollowUser, error) {
	query := `
		SELECT u.id, u.username, u.display_name, u.profile_image
		FROM follows f
		JOIN users u ON u.id = f.followee_id
		WHERE f.follower_id = $1
		ORDER BY f.created_at DESC`
	args := []interface{}{userID}
	if limit > 0 {
		query += " LIMIT $2 OFFSET $3"
		args = append(args, limit, offset)
	}

	var users []model.FollowUser
	if err := r.DB.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, fmt.Errorf("FollowRepository.Following: %w", err)
	}
	return users, nil
}

package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"autohub/internal/model"
)

type PostRepository struct {
	DB *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) *PostRepository {
	return &PostRepository{DB: db}
}

const postColumns = `
	p.id, p.owner_id, p.content, p.image_url, p.created_at,
	u.username AS owner_username,
	(SELECT COUNT(*) FROM post_likes pl WHERE pl.post_id = p.id) AS like_count`

func (r *PostRepository) Create(ctx context.Context, p *model.Post) error {
	const query = `
		INSERT INTO posts (owner_id, content, image_url)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`
	err := r.DB.QueryRowxContext(ctx, query, p.OwnerID, p.Content, p.ImageURL).
		Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("PostRepository.Create: %w", err)
	}
	return nil
}

func (r *PostRepository) GetByID(ctx context.Context, id int64) (*model.Post, error) {
	query := "SELECT" + postColumns +
		" FROM posts p JOIN users u ON u.id = p.owner_id WHERE p.id = $1"
	var p model.Post
	if err := r.DB.GetContext(ctx, &p, query, id); err != nil {
		return nil, fmt.Errorf("PostRepository.GetByID: %w", err)
	}
	return &p, nil
}

// List returns posts newest first. limit <= 0 returns everything.
func (r *PostRepository) List(ctx context.Context, limit, offset int) ([]model.Post, error) {
	query := "SELECT" + postColumns +
		" FROM posts p JOIN users u ON u.id = p.owner_id ORDER BY p.created_at DESC"
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT $1 OFFSET $2"
		args = append(args, limit, offset)
	}
	var posts []model.Post
	if err := r.DB.SelectContext(ctx, &posts, query, args...); err != nil {
		return nil, fmt.Errorf("PostRepository.List: %w", err)
	}
	return posts, nil
}

func (r *PostRepository) Update(ctx context.Context, p *model.Post) (bool, error) {
	const query = `UPDATE posts SET content = $1, image_url = $2 WHERE id = $3`
	res, err := r.DB.ExecContext(ctx, query, p.Content, p.ImageURL, p.ID)
	if err != nil {
		return false, fmt.Errorf("PostRepository.Update: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *PostRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("PostRepository.Delete: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// Like inserts a like row; ErrDuplicate when the user already liked the post.
func (r *PostRepository) Like(ctx context.Context, postID, userID int64) error {
	const query = `INSERT INTO post_likes (post_id, user_id) VALUES ($1, $2)`
	if _, err := r.DB.ExecContext(ctx, query, postID, userID); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("PostRepository.Like: %w", ErrDuplicate)
		}
		return fmt.Errorf("PostRepository.Like: %w", err)
	}
	return nil
}

func (r *PostRepository) Unlike(ctx context.Context, postID, userID int64) (bool, error) {
	const query = `DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2`
	res, err := r.DB.ExecContext(ctx, query, postID, userID)
	if err != nil {
		return false, fmt.Errorf("PostRepository.Unlike: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"autohub/internal/model"
)

type NotificationRepository struct {
	DB *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) *NotificationRepository {
	return &NotificationRepository{DB: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n *model.Notification) error {
	const query = `
		INSERT INTO notifications (recipient_id, type, message, link)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`
	err := r.DB.QueryRowxContext(ctx, query,
		n.RecipientID, n.Type, n.Message, n.Link,
	).Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		return fmt.Errorf("NotificationRepository.Create: %w", err)
	}
	return nil
}

// FindByUser returns the recipient's notifications, newest first.
// limit <= 0 returns the full list.
func (r *NotificationRepository) FindByUser(ctx context.Context, userID int64, limit, offset int) ([]model.Notification, error) {
	query := `
		SELECT id, recipient_id, type, message, link, is_read, created_at
		FROM notifications
		WHERE recipient_id = $1
		ORDER BY created_at DESC`
	args := []interface{}{userID}
	if limit > 0 {
		query += " LIMIT $2 OFFSET $3"
		args = append(args, limit, offset)
	}

	var notifs []model.Notification
	if err := r.DB.SelectContext(ctx, &notifs, query, args...); err != nil {
		return nil, fmt.Errorf("NotificationRepository.FindByUser: %w", err)
	}
	return notifs, nil
}

func (r *NotificationRepository) GetByID(ctx context.Context, id int64) (*model.Notification, error) {
	const query = `
		SELECT id, recipient_id, type, message, link, is_read, created_at
		FROM notifications WHERE id = $1`
	var n model.Notification
	if err := r.DB.GetContext(ctx, &n, query, id); err != nil {
		return nil, fmt.Errorf("NotificationRepository.GetByID: %w", err)
	}
	return &n, nil
}

// MarkAsRead flips is_read to true. Returns false when the row does not
// exist or was already read; is_read never transitions back.
func (r *NotificationRepository) MarkAsRead(ctx context.Context, id int64) (bool, error) {
	const query = `UPDATE notifications SET is_read = TRUE WHERE id = $1 AND is_read = FALSE`
	res, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("NotificationRepository.MarkAsRead: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *NotificationRepository) UnreadCount(ctx context.Context, userID int64) (int, error) {
	const query = `SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND is_read = FALSE`
	var count int
	if err := r.DB.GetContext(ctx, &count, query, userID); err != nil {
		return 0, fmt.Errorf("NotificationRepository.UnreadCount: %w", err)
	}
	return count, nil
}

func (r *NotificationRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM notifications WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("NotificationRepository.Delete: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

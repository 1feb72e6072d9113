package model

import "time"

const NotificationTypeNewFollower = "new_follower"

type Notification struct {
	ID          int64     `db:"id" json:"id"`
	RecipientID int64     `db:"recipient_id" json:"recipientId"`
	Type        string    `db:"type" json:"type"`
	Message     string    `db:"message" json:"message"`
	Link        string    `db:"link" json:"link"`
	IsRead      bool      `db:"is_read" json:"isRead"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

package model

import "time"

type Post struct {
	ID        int64     `db:"id" json:"id"`
	OwnerID   int64     `db:"owner_id" json:"ownerId"`
	Content   string    `db:"content" json:"content"`
	ImageURL  string    `db:"image_url" json:"imageUrl"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`

	OwnerUsername string `db:"owner_username" json:"ownerUsername,omitempty"`
	LikeCount     int    `db:"like_count" json:"likeCount"`
}

package model

import "time"

type User struct {
	ID           int64     `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	Email        string    `db:"email" json:"email,omitempty"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         string    `db:"role" json:"role"`
	DisplayName  string    `db:"display_name" json:"displayName"`
	Bio          string    `db:"bio" json:"bio"`
	Location     string    `db:"location" json:"location"`
	ProfileImage string    `db:"profile_image" json:"profileImage"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

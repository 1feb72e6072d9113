package model

import "time"

// Follow is a directed edge: follower subscribes to followee.
// At most one row per ordered pair, enforced by a unique constraint.
type Follow struct {
	FollowerID int64     `db:"follower_id" json:"followerId"`
	FolloweeID int64     `db:"followee_id" json:"followeeId"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}

// FollowUser is one endpoint of a follow edge joined with its user row.
type FollowUser struct {
	ID           int64  `db:"id" json:"id"`
	Username     string `db:"username" json:"username"`
	DisplayName  string `db:"display_name" json:"displayName"`
	ProfileImage string `db:"profile_image" json:"profileImage"`
}

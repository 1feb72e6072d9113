package model

import (
	"time"

	"github.com/lib/pq"
)

// Listing is a vehicle/parts listing. Images keep their upload order;
// the first URL is the cover image.
type Listing struct {
	ID          int64          `db:"id" json:"id"`
	OwnerID     int64          `db:"owner_id" json:"ownerId"`
	Title       string         `db:"title" json:"title"`
	Description string         `db:"description" json:"description"`
	Price       float64        `db:"price" json:"price"`
	Category    string         `db:"category" json:"category"`
	Condition   string         `db:"condition" json:"condition"`
	Make        string         `db:"make" json:"make"`
	Model       string         `db:"model" json:"model"`
	Year        int            `db:"year" json:"year"`
	Mileage     int            `db:"mileage" json:"mileage"`
	Location    string         `db:"location" json:"location"`
	Images      pq.StringArray `db:"images" json:"images"`
	CreatedAt   time.Time      `db:"created_at" json:"createdAt"`

	// Joined owner columns, present on search and single-listing reads.
	OwnerUsername    string `db:"owner_username" json:"ownerUsername,omitempty"`
	OwnerDisplayName string `db:"owner_display_name" json:"ownerDisplayName,omitempty"`
}

package models

import "time"

// Store represents a rateable store. AverageRating and TotalRatings are a
// cached projection of the rating ledger: they are recomputed from the rating
// records after every rating write and are never updated independently.
type Store struct {
	ID            string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name          string    `json:"name" gorm:"type:varchar(100)" validate:"required,min=3,max=100"`
	Email         string    `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Address       string    `json:"address" gorm:"type:varchar(400)" validate:"required,max=400"`
	OwnerID       *string   `json:"ownerId" gorm:"type:varchar(36);index"` // nullable; a store may exist without an owner
	AverageRating float64   `json:"averageRating" gorm:"default:0"`
	TotalRatings  int64     `json:"totalRatings" gorm:"default:0"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

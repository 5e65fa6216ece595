package models

import "time"

// Rating is a single user's 1-5 star rating of a store. The composite unique
// index keeps at most one rating per (user, store) pair; re-rating the same
// store overwrites Value instead of inserting a second record.
type Rating struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	UserID    string    `json:"userId" gorm:"type:varchar(36);uniqueIndex:idx_ratings_user_store" validate:"required"`
	StoreID   string    `json:"storeId" gorm:"type:varchar(36);uniqueIndex:idx_ratings_user_store" validate:"required"`
	Value     int       `json:"rating" gorm:"column:value" validate:"required,min=1,max=5"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

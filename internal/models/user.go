package models

import "time"

// Roles a user can hold. Route access is decided against these values.
const (
	RoleSystemAdmin = "system_admin"
	RoleNormalUser  = "normal_user"
	RoleStoreOwner  = "store_owner"
)

// User represents an account in the system: an administrator, a normal
// (rating-submitting) user, or a store owner.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name      string    `json:"name" gorm:"type:varchar(60)" validate:"required,min=3,max=60"`
	Email     string    `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password  string    `json:"-" gorm:"type:varchar(255)" validate:"required,min=6"` // bcrypt hash, never serialized
	Address   string    `json:"address" gorm:"type:varchar(400)" validate:"required,max=400"`
	Role      string    `json:"role" gorm:"type:varchar(20);default:normal_user" validate:"omitempty,oneof=system_admin normal_user store_owner"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

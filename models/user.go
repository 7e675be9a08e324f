package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles. Artisans are service providers; customers book them.
const (
	RoleCustomer = "customer"
	RoleArtisan  = "artisan"
)

// User represents an account in the system (customer or artisan).
// The phone number is the login key.
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Name         string         `gorm:"not null" json:"name"`
	Phone        string         `gorm:"uniqueIndex;not null" json:"phone"`
	Email        *string        `json:"email,omitempty"`
	Role         string         `gorm:"not null;default:'customer'" json:"role"`
	PasswordHash string         `gorm:"not null" json:"-"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

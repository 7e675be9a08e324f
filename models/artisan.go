package models

import (
	"time"

	"gorm.io/gorm"
)

// Defaults applied when registration or onboarding omits profile fields.
const (
	DefaultCategory = "general"
	DefaultCity     = "Lokoja"
)

// Artisan is the provider profile extending an artisan-role User.
// A minimal row is created at registration and enriched during onboarding.
// Only verified artisans are visible in the directory.
type Artisan struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	UserID       uint           `gorm:"uniqueIndex;not null" json:"user_id"` // foreign key to users table
	User         User           `gorm:"foreignKey:UserID" json:"-"`
	Category     string         `gorm:"default:'general';index" json:"category"`
	City         string         `gorm:"default:'Lokoja';index" json:"city"`
	Verified     bool           `gorm:"not null;default:false" json:"verified"` // set by admin action, out of scope here
	PriceFrom    *float64       `json:"price_from"`
	AvgRating    float64        `gorm:"not null;default:0" json:"avg_rating"`
	Bio          *string        `json:"bio,omitempty"`
	ProfilePhoto *string        `json:"profile_photo,omitempty"` // storage key of the uploaded photo
	IDDocument   *string        `json:"id_document,omitempty"`   // storage key of the identity document
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Artisan model
func (Artisan) TableName() string {
	return "artisans"
}

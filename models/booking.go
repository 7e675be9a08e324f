package models

import (
	"time"

	"gorm.io/gorm"
)

// Booking statuses. A booking starts pending and becomes paid only through
// webhook reconciliation. There is no cancellation or expiry transition.
const (
	BookingStatusPending = "pending"
	BookingStatusPaid    = "paid"
)

// Booking represents a service request from a customer to an artisan.
type Booking struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	UserID          uint           `gorm:"not null;index" json:"user_id"` // foreign key to users table
	User            User           `gorm:"foreignKey:UserID" json:"-"`
	ArtisanID       uint           `gorm:"not null;index" json:"artisan_id"` // foreign key to artisans table
	Artisan         Artisan        `gorm:"foreignKey:ArtisanID" json:"-"`
	ServiceCategory string         `gorm:"not null;default:'general'" json:"service_category"`
	ScheduledAt     *time.Time     `json:"scheduled_at"`
	Amount          float64        `gorm:"not null;check:amount > 0" json:"amount"`
	Status          string         `gorm:"not null;default:'pending'" json:"status"`
	PaymentRef      *string        `json:"payment_ref,omitempty"` // provider ref stamped on successful payment
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Booking model
func (Booking) TableName() string {
	return "bookings"
}

package models

import (
	"time"

	"gorm.io/gorm"
)

// Payment statuses. A payment is created initiated; the webhook may move it to
// any of the other values. successful and paid both promote the booking.
const (
	PaymentStatusInitiated  = "initiated"
	PaymentStatusSuccessful = "successful"
	PaymentStatusPaid       = "paid"
	PaymentStatusFailed     = "failed"
	PaymentStatusCancelled  = "cancelled"
)

// PaymentProvider is the external provider whose hosted checkout handles the
// actual charge. The backend never calls the provider directly.
const PaymentProvider = "flutterwave"

// Payment is the payment intent correlated with a booking. ProviderRef is
// generated locally before any provider interaction and echoed back by the
// provider's webhook.
type Payment struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	BookingID   uint           `gorm:"not null;index" json:"booking_id"` // foreign key to bookings table
	Booking     Booking        `gorm:"foreignKey:BookingID" json:"-"`
	Provider    string         `gorm:"not null" json:"provider"`
	ProviderRef string         `gorm:"uniqueIndex;not null" json:"provider_ref"`
	Amount      float64        `gorm:"not null" json:"amount"`
	Status      string         `gorm:"not null;default:'initiated'" json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}

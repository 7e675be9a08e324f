package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/craftlink/craftlink-api/models"
)

// Booking/payment lifecycle.
//
// A booking starts pending with a correlated payment in initiated status. The
// external provider's webhook is the only thing that moves state forward:
//
//	booking: pending --(webhook: successful|paid)--> paid
//	payment: initiated --(webhook)--> successful | paid | failed | cancelled
//
// failed and cancelled leave the booking pending; there is deliberately no
// cancellation or expiry transition for stale pending bookings.

var (
	// ErrPaymentNotFound indicates no payment matches the provider ref.
	ErrPaymentNotFound = errors.New("payment not found")
	// ErrUnknownStatus indicates the webhook carried a status outside the accepted set.
	ErrUnknownStatus = errors.New("unknown payment status")
)

// acceptedWebhookStatuses is the full set of status values the provider may
// report. Anything else is rejected rather than written through.
var acceptedWebhookStatuses = map[string]bool{
	models.PaymentStatusSuccessful: true,
	models.PaymentStatusPaid:       true,
	models.PaymentStatusFailed:     true,
	models.PaymentStatusCancelled:  true,
}

// IsSuccessStatus reports whether a webhook status promotes the booking to paid.
func IsSuccessStatus(status string) bool {
	return status == models.PaymentStatusSuccessful || status == models.PaymentStatusPaid
}

// CreateBookingInput captures the data needed to open a booking with its
// payment intent.
type CreateBookingInput struct {
	UserID          uint
	ArtisanID       uint
	ServiceCategory string
	ScheduledAt     *time.Time
	Amount          float64
}

// CreateBookingResult describes a freshly created booking/payment pair.
type CreateBookingResult struct {
	Booking models.Booking
	Payment models.Payment
}

// CreateBookingWithPayment creates a pending booking and its initiated payment
// as one transaction. The provider ref is generated before any provider
// interaction; the provider only ever sees refs that are already committed.
func CreateBookingWithPayment(db *gorm.DB, input CreateBookingInput) (*CreateBookingResult, error) {
	if input.UserID == 0 || input.ArtisanID == 0 || input.Amount <= 0 {
		return nil, fmt.Errorf("user_id, artisan_id and a positive amount are required")
	}

	category := input.ServiceCategory
	if category == "" {
		category = models.DefaultCategory
	}

	booking := models.Booking{
		UserID:          input.UserID,
		ArtisanID:       input.ArtisanID,
		ServiceCategory: category,
		ScheduledAt:     input.ScheduledAt,
		Amount:          input.Amount,
		Status:          models.BookingStatusPending,
	}
	payment := models.Payment{
		Provider:    models.PaymentProvider,
		ProviderRef: uuid.New().String(),
		Amount:      input.Amount,
		Status:      models.PaymentStatusInitiated,
	}

	// Both rows commit together or not at all: a booking must never be left
	// pending without a recoverable payment intent.
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&booking).Error; err != nil {
			return err
		}
		payment.BookingID = booking.ID
		return tx.Create(&payment).Error
	})
	if err != nil {
		return nil, err
	}

	return &CreateBookingResult{Booking: booking, Payment: payment}, nil
}

// PaymentURL builds the hosted-checkout redirect URL for a provider ref. No
// network call to the provider happens here; the hosted page drives the flow.
func PaymentURL(frontendURL, providerRef string) string {
	return fmt.Sprintf("%s/pay?ref=%s", frontendURL, providerRef)
}

// ReconcilePayment applies a provider webhook callback to the payment matching
// providerRef. A success-equivalent status also promotes the associated booking
// to paid and stamps the provider ref on it. Replaying the same success
// callback re-executes the same updates and lands in the same state.
func ReconcilePayment(db *gorm.DB, providerRef, status string) (*models.Payment, error) {
	if !acceptedWebhookStatuses[status] {
		return nil, ErrUnknownStatus
	}

	var payment models.Payment
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("provider_ref = ?", providerRef).First(&payment).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPaymentNotFound
			}
			return err
		}

		if err := tx.Model(&payment).Update("status", status).Error; err != nil {
			return err
		}

		if IsSuccessStatus(status) {
			updates := map[string]interface{}{
				"status":      models.BookingStatusPaid,
				"payment_ref": providerRef,
			}
			if err := tx.Model(&models.Booking{}).Where("id = ?", payment.BookingID).Updates(updates).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	payment.Status = status
	return &payment, nil
}

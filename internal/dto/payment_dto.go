package dto

import (
	"time"

	"github.com/google/uuid"
)

type CheckoutResponse struct {
	PaymentIntentID string  `json:"payment_intent_id"`
	ClientSecret    string  `json:"client_secret"`
	Amount          float64 `json:"amount"`
	Currency        string  `json:"currency"`
}

type RecordPaymentInput struct {
	PaymentMethod string `json:"payment_method" binding:"required,oneof=stripe cash bank_transfer demo"`
	// PaymentIntentID is required for the stripe method and ignored otherwise.
	PaymentIntentID string `json:"payment_intent_id" binding:"omitempty"`
}

type PaymentResponse struct {
	ID             uuid.UUID  `json:"id"`
	EnrollmentID   uuid.UUID  `json:"enrollment_id"`
	Amount         float64    `json:"amount"`
	PaymentMethod  string     `json:"payment_method"`
	TransactionID  string     `json:"transaction_id"`
	Status         string     `json:"status"`
	PaidAt         time.Time  `json:"payment_date"`
	NextPaymentDue *time.Time `json:"next_payment_due,omitempty"`
}

package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PaymentMethodStripe       = "stripe"
	PaymentMethodCash         = "cash"
	PaymentMethodBankTransfer = "bank_transfer"
	PaymentMethodDemo         = "demo"

	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
	PaymentRefunded  = "refunded"
)

// Payment is an append-only ledger entry. Rows are never mutated after they
// reach the completed status; the unique transaction ID doubles as the
// idempotency anchor for replayed gateway confirmations.
type Payment struct {
	ID                  uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	EnrollmentID        uuid.UUID   `gorm:"type:uuid;not null;index" json:"enrollment_id"`
	Enrollment          *Enrollment `gorm:"foreignKey:EnrollmentID" json:"-"`
	Amount              float64     `gorm:"not null" json:"amount"`
	PaymentMethod       string      `gorm:"size:50;not null" json:"payment_method"`
	TransactionID       string      `gorm:"size:100;uniqueIndex;not null" json:"transaction_id"`
	StripePaymentIntent *string     `gorm:"size:200" json:"stripe_payment_intent,omitempty"`
	StripeCustomerID    *string     `gorm:"size:200" json:"stripe_customer_id,omitempty"`
	Status              string      `gorm:"size:20;not null;default:'pending'" json:"status"`
	PaidAt              time.Time   `gorm:"autoCreateTime" json:"payment_date"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/raindropsacademy/tuition-backend/internal/billing"
)

type EnrollInput struct {
	CourseID string `json:"course_id" binding:"required,uuid"`
}

type EnrollmentResponse struct {
	ID             uuid.UUID              `json:"id"`
	Course         *CourseResponse        `json:"course,omitempty"`
	Status         string                 `json:"status"`
	PaymentStatus  string                 `json:"payment_status"`
	EnrolledAt     time.Time              `json:"enrolled_at"`
	NextPaymentDue *time.Time             `json:"next_payment_due,omitempty"`
	LastPaymentAt  *time.Time             `json:"last_payment_date,omitempty"`
	Billing        billing.Classification `json:"billing"`
}

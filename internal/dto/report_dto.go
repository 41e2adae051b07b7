package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/raindropsacademy/tuition-backend/internal/billing"
)

type ReportEntryResponse struct {
	EnrollmentID   uuid.UUID              `json:"enrollment_id"`
	StudentName    string                 `json:"student_name"`
	StudentEmail   string                 `json:"student_email"`
	CourseName     string                 `json:"course_name"`
	MonthlyFee     float64                `json:"monthly_fee"`
	NextPaymentDue *time.Time             `json:"next_payment_due,omitempty"`
	LastPaymentAt  *time.Time             `json:"last_payment_date,omitempty"`
	Billing        billing.Classification `json:"billing"`
}

type ReminderResponse struct {
	EnrollmentID uuid.UUID `json:"enrollment_id"`
	Recipient    string    `json:"recipient"`
	Sent         bool      `json:"sent"`
}

package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	EnrollmentPending   = "pending"
	EnrollmentActive    = "active"
	EnrollmentCompleted = "completed"

	PaymentStatusUnpaid = "unpaid"
	PaymentStatusPaid   = "paid"
)

// Enrollment links one student to one course and carries the billing-cycle
// state. The (user, course) pair is unique at the storage layer.
type Enrollment struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_student_course" json:"user_id"`
	CourseID       uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_student_course" json:"course_id"`
	User           *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Course         *Course    `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	Status         string     `gorm:"size:20;not null;default:'pending'" json:"status"`
	PaymentStatus  string     `gorm:"size:20;not null;default:'unpaid'" json:"payment_status"`
	EnrolledAt     time.Time  `gorm:"autoCreateTime" json:"enrolled_at"`
	NextPaymentDue *time.Time `json:"next_payment_due,omitempty"`
	LastPaymentAt  *time.Time `json:"last_payment_date,omitempty"`
	Payments       []Payment  `gorm:"foreignKey:EnrollmentID" json:"payments,omitempty"`
}

func (e *Enrollment) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// Package billing holds the billing-cycle rules: when the first payment is
// due, how the due date advances after a payment, and how an enrollment's
// payment state is classified for display and reminders. Everything here is
// pure; overdue detection happens lazily at read time, never via a sweep.
package billing

import (
	"math"
	"time"
)

const (
	// FirstPaymentGrace is the window a new enrollment has to make its first
	// payment.
	FirstPaymentGrace = 7 * 24 * time.Hour
	// Cycle is the interval between successive due dates after a payment.
	Cycle = 30 * 24 * time.Hour
	// DueSoonWindowDays is the warning tier: due within this many days.
	DueSoonWindowDays = 7
)

type Status string

const (
	// StatusPending means no due date has been scheduled yet.
	StatusPending  Status = "pending"
	StatusOverdue  Status = "overdue"
	StatusDueToday Status = "due_today"
	StatusDueSoon  Status = "due_soon"
	StatusCurrent  Status = "current"
)

// Classification is the computed payment state of one enrollment.
type Classification struct {
	Status Status `json:"status"`
	// DaysUntilDue is the signed whole-day delta between the due date and now,
	// floored. Negative when overdue. Zero when Status is pending.
	DaysUntilDue int `json:"days_until_due"`
	// OverdueDays is the magnitude of DaysUntilDue when overdue, else zero.
	OverdueDays int `json:"overdue_days"`
}

// Classify derives the payment state from the next due date and the current
// time. A nil due date classifies as pending.
func Classify(nextDue *time.Time, now time.Time) Classification {
	if nextDue == nil {
		return Classification{Status: StatusPending}
	}

	days := int(math.Floor(nextDue.Sub(now).Hours() / 24))

	c := Classification{DaysUntilDue: days}
	switch {
	case days < 0:
		c.Status = StatusOverdue
		c.OverdueDays = -days
	case days == 0:
		c.Status = StatusDueToday
	case days <= DueSoonWindowDays:
		c.Status = StatusDueSoon
	default:
		c.Status = StatusCurrent
	}

	return c
}

// FirstDueDate schedules the initial payment deadline for a new enrollment.
func FirstDueDate(enrolledAt time.Time) time.Time {
	return enrolledAt.Add(FirstPaymentGrace)
}

// NextDueDate advances the billing cycle after a successful payment.
func NextDueDate(paidAt time.Time) time.Time {
	return paidAt.Add(Cycle)
}

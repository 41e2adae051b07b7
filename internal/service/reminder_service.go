package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/raindropsacademy/tuition-backend/internal/billing"
	"github.com/raindropsacademy/tuition-backend/internal/dto"
	"github.com/raindropsacademy/tuition-backend/internal/model"
	"github.com/raindropsacademy/tuition-backend/internal/repository"
	"github.com/raindropsacademy/tuition-backend/pkg/apperror"
	"github.com/raindropsacademy/tuition-backend/pkg/mailer"
	"gorm.io/gorm"
)

type ReminderService interface {
	// SendPaymentReminder composes a reminder referencing the enrollment's
	// current payment state and hands it to the mail transport. Fire and
	// report: no retry, no queueing.
	SendPaymentReminder(ctx context.Context, enrollmentID string) (*dto.ReminderResponse, error)
}

type reminderService struct {
	enrollments repository.EnrollmentRepository
	mail        mailer.Mailer
	now         func() time.Time
}

func NewReminderService(enrollments repository.EnrollmentRepository, mail mailer.Mailer) ReminderService {
	return &reminderService{
		enrollments: enrollments,
		mail:        mail,
		now:         time.Now,
	}
}

func (s *reminderService) SendPaymentReminder(ctx context.Context, enrollmentID string) (*dto.ReminderResponse, error) {
	enrollment, err := s.enrollments.FindByID(ctx, enrollmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: enrollment", apperror.ErrNotFound)
		}
		return nil, err
	}
	if enrollment.User == nil || enrollment.Course == nil {
		return nil, fmt.Errorf("%w: enrollment relations", apperror.ErrNotFound)
	}

	subject, body := composeReminder(enrollment, s.now().UTC())

	resp := &dto.ReminderResponse{
		EnrollmentID: enrollment.ID,
		Recipient:    enrollment.User.Email,
	}

	if err := s.mail.Send(enrollment.User.Email, subject, body); err != nil {
		return resp, fmt.Errorf("%w: %v", apperror.ErrExternalService, err)
	}

	resp.Sent = true
	return resp, nil
}

// composeReminder builds the reminder subject and HTML body from the current
// enrollment state. Pure; exercised directly by tests.
func composeReminder(e *model.Enrollment, now time.Time) (subject, body string) {
	course := e.Course
	student := e.User

	subject = fmt.Sprintf("Payment Reminder - %s", course.Name)

	dueDate := "Not set"
	statusText := "pending"
	if e.NextPaymentDue != nil {
		dueDate = e.NextPaymentDue.Format("January 2, 2006")
		c := billing.Classify(e.NextPaymentDue, now)
		switch c.Status {
		case billing.StatusOverdue:
			statusText = fmt.Sprintf("<strong style=\"color: #dc3545;\">OVERDUE by %d days</strong>", c.OverdueDays)
		case billing.StatusDueToday:
			statusText = "<strong style=\"color: #ffc107;\">DUE TODAY</strong>"
		default:
			statusText = fmt.Sprintf("due in %d days", c.DaysUntilDue)
		}
	}

	lastPayment := "No payment recorded"
	if e.LastPaymentAt != nil {
		lastPayment = e.LastPaymentAt.Format("January 2, 2006")
	}

	var b strings.Builder
	b.WriteString("<html><body>")
	b.WriteString("<h1>Raindrops Academy</h1><p>Payment Reminder</p>")
	fmt.Fprintf(&b, "<p>Dear %s,</p>", student.FullName)
	fmt.Fprintf(&b, "<p>This is a friendly reminder about your monthly tuition payment for <strong>%s</strong>.</p>", course.Name)
	b.WriteString("<div>")
	fmt.Fprintf(&b, "<p><strong>Course:</strong> %s</p>", course.Name)
	fmt.Fprintf(&b, "<p><strong>Monthly Fee:</strong> $%.2f</p>", course.TuitionFee)
	fmt.Fprintf(&b, "<p><strong>Next Payment Due:</strong> %s (%s)</p>", dueDate, statusText)
	fmt.Fprintf(&b, "<p><strong>Last Payment:</strong> %s</p>", lastPayment)
	b.WriteString("</div>")
	b.WriteString("<p>Please ensure your payment is submitted on time to continue enjoying uninterrupted access to your course.</p>")
	b.WriteString("<p>If you have already made the payment, please disregard this reminder.</p>")
	b.WriteString("</body></html>")

	return subject, b.String()
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/raindropsacademy/tuition-backend/internal/billing"
	"github.com/raindropsacademy/tuition-backend/internal/dto"
	"github.com/raindropsacademy/tuition-backend/internal/model"
	"github.com/raindropsacademy/tuition-backend/internal/repository"
	"github.com/raindropsacademy/tuition-backend/pkg/apperror"
	"github.com/raindropsacademy/tuition-backend/pkg/gateway"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const paymentCurrency = "usd"

type PaymentService interface {
	// Checkout registers a card payment attempt with the gateway and stores a
	// pending payment row holding the intent/customer correlation pair.
	Checkout(ctx context.Context, actorID, enrollmentID string) (*dto.CheckoutResponse, error)
	// Record settles the current billing cycle: verifies ownership and the
	// AlreadyPaid guard, confirms the gateway intent for the stripe method,
	// then appends the payment and advances the due date in one transaction.
	Record(ctx context.Context, actorID, enrollmentID string, input dto.RecordPaymentInput) (*dto.PaymentResponse, error)
}

type paymentService struct {
	enrollments repository.EnrollmentRepository
	payments    repository.PaymentRepository
	gateway     gateway.PaymentGateway
	redisClient *redis.Client
	now         func() time.Time
}

func NewPaymentService(
	enrollments repository.EnrollmentRepository,
	payments repository.PaymentRepository,
	gw gateway.PaymentGateway,
	redisClient *redis.Client,
) PaymentService {
	return &paymentService{
		enrollments: enrollments,
		payments:    payments,
		gateway:     gw,
		redisClient: redisClient,
		now:         time.Now,
	}
}

func (s *paymentService) Checkout(ctx context.Context, actorID, enrollmentID string) (*dto.CheckoutResponse, error) {
	enrollment, err := s.loadOwned(ctx, actorID, enrollmentID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	if cycleAlreadyPaid(enrollment, now) {
		return nil, apperror.ErrAlreadyPaid
	}

	if s.gateway == nil {
		return nil, fmt.Errorf("%w: card payments are not configured", apperror.ErrExternalService)
	}
	if enrollment.Course == nil || enrollment.User == nil {
		return nil, fmt.Errorf("%w: enrollment relations", apperror.ErrNotFound)
	}

	fee := enrollment.Course.TuitionFee
	cents := int64(math.Round(fee * 100))

	intent, err := s.gateway.CreateIntent(
		ctx,
		cents,
		paymentCurrency,
		enrollment.User.Email,
		enrollment.User.FullName,
		fmt.Sprintf("Monthly tuition - %s", enrollment.Course.Name),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrExternalService, err)
	}

	payment := &model.Payment{
		EnrollmentID:        enrollment.ID,
		Amount:              fee,
		PaymentMethod:       model.PaymentMethodStripe,
		TransactionID:       intent.ID,
		StripePaymentIntent: &intent.ID,
		Status:              model.PaymentPending,
	}
	if intent.CustomerID != "" {
		customerID := intent.CustomerID
		payment.StripeCustomerID = &customerID
	}

	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, err
	}

	return &dto.CheckoutResponse{
		PaymentIntentID: intent.ID,
		ClientSecret:    intent.ClientSecret,
		Amount:          fee,
		Currency:        intent.Currency,
	}, nil
}

func (s *paymentService) Record(ctx context.Context, actorID, enrollmentID string, input dto.RecordPaymentInput) (*dto.PaymentResponse, error) {
	enrollment, err := s.loadOwned(ctx, actorID, enrollmentID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()

	// The stripe path runs its replay check before the already-paid guard, so
	// confirming the same intent twice returns the recorded payment instead of
	// a conflict.
	if input.PaymentMethod == model.PaymentMethodStripe {
		return s.confirmGatewayPayment(ctx, enrollment, input.PaymentIntentID, now)
	}

	if cycleAlreadyPaid(enrollment, now) {
		return nil, apperror.ErrAlreadyPaid
	}

	return s.recordManualPayment(ctx, enrollment, input.PaymentMethod, now)
}

func (s *paymentService) confirmGatewayPayment(ctx context.Context, enrollment *model.Enrollment, intentID string, now time.Time) (*dto.PaymentResponse, error) {
	if intentID == "" {
		return nil, fmt.Errorf("%w: payment_intent_id is required for stripe payments", apperror.ErrInvalidInput)
	}

	payment, err := s.payments.FindByIntentID(ctx, intentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: payment intent", apperror.ErrNotFound)
		}
		return nil, err
	}
	if payment.EnrollmentID != enrollment.ID {
		return nil, fmt.Errorf("%w: payment intent does not belong to this enrollment", apperror.ErrUnauthorized)
	}

	// Replayed confirmation: return the recorded payment, do not advance the
	// due date a second time.
	if payment.Status == model.PaymentCompleted {
		return toPaymentResponse(payment, enrollment), nil
	}

	if cycleAlreadyPaid(enrollment, now) {
		return nil, apperror.ErrAlreadyPaid
	}

	claimed, err := ClaimPaymentConfirmation(ctx, s.redisClient, intentID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrExternalService, err)
	}
	if !claimed {
		return nil, fmt.Errorf("%w: confirmation for this payment is already in progress", apperror.ErrDuplicateEntity)
	}

	intent, err := s.gateway.RetrieveIntent(ctx, intentID)
	if err != nil {
		s.releaseClaim(ctx, intentID)
		return nil, fmt.Errorf("%w: %v", apperror.ErrExternalService, err)
	}
	if !intent.Succeeded {
		// Any non-terminal gateway status: take no action, let the payer retry.
		s.releaseClaim(ctx, intentID)
		return nil, apperror.ErrPaymentNotConfirmed
	}

	payment.Status = model.PaymentCompleted
	payment.PaidAt = now
	if payment.StripeCustomerID == nil && intent.CustomerID != "" {
		customerID := intent.CustomerID
		payment.StripeCustomerID = &customerID
	}

	advanceCycle(enrollment, now)

	if err := s.payments.CompleteWithEnrollment(ctx, payment, enrollment); err != nil {
		s.releaseClaim(ctx, intentID)
		return nil, err
	}

	return toPaymentResponse(payment, enrollment), nil
}

func (s *paymentService) recordManualPayment(ctx context.Context, enrollment *model.Enrollment, method string, now time.Time) (*dto.PaymentResponse, error) {
	if enrollment.Course == nil {
		return nil, fmt.Errorf("%w: enrollment course", apperror.ErrNotFound)
	}

	payment := &model.Payment{
		EnrollmentID:  enrollment.ID,
		Amount:        enrollment.Course.TuitionFee,
		PaymentMethod: method,
		TransactionID: fmt.Sprintf("TXN%s%s", now.Format("20060102150405"), enrollment.ID.String()[:8]),
		Status:        model.PaymentCompleted,
		PaidAt:        now,
	}

	advanceCycle(enrollment, now)

	if err := s.payments.CompleteWithEnrollment(ctx, payment, enrollment); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: payment already recorded", apperror.ErrDuplicateEntity)
		}
		return nil, err
	}

	return toPaymentResponse(payment, enrollment), nil
}

func (s *paymentService) loadOwned(ctx context.Context, actorID, enrollmentID string) (*model.Enrollment, error) {
	enrollment, err := s.enrollments.FindByID(ctx, enrollmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: enrollment", apperror.ErrNotFound)
		}
		return nil, err
	}

	if enrollment.UserID.String() != actorID {
		return nil, fmt.Errorf("%w: enrollment belongs to another student", apperror.ErrUnauthorized)
	}

	return enrollment, nil
}

func (s *paymentService) releaseClaim(ctx context.Context, intentID string) {
	if err := ReleasePaymentConfirmation(ctx, s.redisClient, intentID); err != nil {
		log.Printf("failed to release payment confirmation claim %s: %v", intentID, err)
	}
}

// cycleAlreadyPaid reports whether the current billing cycle is settled: paid
// and the next due date still outside the due-soon window. Inside the window a
// new payment is accepted and advances the cycle.
func cycleAlreadyPaid(e *model.Enrollment, now time.Time) bool {
	if e.PaymentStatus != model.PaymentStatusPaid {
		return false
	}
	return billing.Classify(e.NextPaymentDue, now).Status == billing.StatusCurrent
}

// advanceCycle applies the payment transition: paid, active, last payment now,
// next due one cycle out.
func advanceCycle(e *model.Enrollment, now time.Time) {
	nextDue := billing.NextDueDate(now)
	e.PaymentStatus = model.PaymentStatusPaid
	e.Status = model.EnrollmentActive
	e.LastPaymentAt = &now
	e.NextPaymentDue = &nextDue
}

func toPaymentResponse(p *model.Payment, e *model.Enrollment) *dto.PaymentResponse {
	return &dto.PaymentResponse{
		ID:             p.ID,
		EnrollmentID:   p.EnrollmentID,
		Amount:         p.Amount,
		PaymentMethod:  p.PaymentMethod,
		TransactionID:  p.TransactionID,
		Status:         p.Status,
		PaidAt:         p.PaidAt,
		NextPaymentDue: e.NextPaymentDue,
	}
}

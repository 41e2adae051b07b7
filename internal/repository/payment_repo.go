package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/raindropsacademy/tuition-backend/internal/model"
	"gorm.io/gorm"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *model.Payment) error
	// CompleteWithEnrollment stores the payment row and the advanced enrollment
	// in one transaction, so a crash cannot record money without moving the due
	// date (or the reverse).
	CompleteWithEnrollment(ctx context.Context, payment *model.Payment, enrollment *model.Enrollment) error
	FindByTransactionID(ctx context.Context, transactionID string) (*model.Payment, error)
	FindByIntentID(ctx context.Context, intentID string) (*model.Payment, error)
	FindByEnrollment(ctx context.Context, enrollmentID string) ([]model.Payment, error)
	Update(ctx context.Context, payment *model.Payment) error
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *model.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *paymentRepository) CompleteWithEnrollment(ctx context.Context, payment *model.Payment, enrollment *model.Enrollment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if payment.ID == uuid.Nil {
			if err := tx.Create(payment).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Save(payment).Error; err != nil {
				return err
			}
		}

		return tx.Save(enrollment).Error
	})
}

func (r *paymentRepository) FindByTransactionID(ctx context.Context, transactionID string) (*model.Payment, error) {
	var payment model.Payment
	if err := r.db.WithContext(ctx).
		Where("transaction_id = ?", transactionID).
		First(&payment).Error; err != nil {
		return nil, err
	}

	return &payment, nil
}

func (r *paymentRepository) FindByIntentID(ctx context.Context, intentID string) (*model.Payment, error) {
	var payment model.Payment
	if err := r.db.WithContext(ctx).
		Where("stripe_payment_intent = ?", intentID).
		First(&payment).Error; err != nil {
		return nil, err
	}

	return &payment, nil
}

func (r *paymentRepository) FindByEnrollment(ctx context.Context, enrollmentID string) ([]model.Payment, error) {
	var payments []model.Payment
	if err := r.db.WithContext(ctx).
		Where("enrollment_id = ?", enrollmentID).
		Order("paid_at DESC").
		Find(&payments).Error; err != nil {
		return nil, err
	}

	return payments, nil
}

func (r *paymentRepository) Update(ctx context.Context, payment *model.Payment) error {
	return r.db.WithContext(ctx).Save(payment).Error
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/raindropsacademy/tuition-backend/internal/billing"
	"github.com/raindropsacademy/tuition-backend/internal/dto"
	"github.com/raindropsacademy/tuition-backend/internal/model"
	"github.com/raindropsacademy/tuition-backend/internal/repository"
	"github.com/raindropsacademy/tuition-backend/pkg/apperror"
	"gorm.io/gorm"
)

type EnrollmentService interface {
	// Enroll creates the (student, course) link in its initial state: pending,
	// unpaid, first payment due after the grace period.
	Enroll(ctx context.Context, studentID string, input dto.EnrollInput) (*dto.EnrollmentResponse, error)
	GetMine(ctx context.Context, studentID string) ([]*dto.EnrollmentResponse, error)
	// MarkCompleted sets the terminal status. Admin only; never reached by
	// billing logic.
	MarkCompleted(ctx context.Context, enrollmentID string) (*dto.EnrollmentResponse, error)
}

type enrollmentService struct {
	enrollments repository.EnrollmentRepository
	courses     repository.CourseRepository
	now         func() time.Time
}

func NewEnrollmentService(enrollments repository.EnrollmentRepository, courses repository.CourseRepository) EnrollmentService {
	return &enrollmentService{
		enrollments: enrollments,
		courses:     courses,
		now:         time.Now,
	}
}

func (s *enrollmentService) Enroll(ctx context.Context, studentID string, input dto.EnrollInput) (*dto.EnrollmentResponse, error) {
	course, err := s.courses.FindByID(ctx, input.CourseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: course", apperror.ErrNotFound)
		}
		return nil, err
	}

	if _, err := s.enrollments.FindByStudentAndCourse(ctx, studentID, input.CourseID); err == nil {
		return nil, fmt.Errorf("%w: already enrolled in %s", apperror.ErrDuplicateEntity, course.Name)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	studentUUID, err := uuid.Parse(studentID)
	if err != nil {
		return nil, fmt.Errorf("%w: student id", apperror.ErrInvalidInput)
	}

	now := s.now().UTC()
	firstDue := billing.FirstDueDate(now)

	enrollment := &model.Enrollment{
		UserID:         studentUUID,
		CourseID:       course.ID,
		Status:         model.EnrollmentPending,
		PaymentStatus:  model.PaymentStatusUnpaid,
		NextPaymentDue: &firstDue,
	}

	// The unique (user_id, course_id) index backstops the duplicate check above
	// against concurrent submissions.
	if err := s.enrollments.Create(ctx, enrollment); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: already enrolled in %s", apperror.ErrDuplicateEntity, course.Name)
		}
		return nil, err
	}

	enrollment.Course = course

	return toEnrollmentResponse(enrollment, now), nil
}

func (s *enrollmentService) GetMine(ctx context.Context, studentID string) ([]*dto.EnrollmentResponse, error) {
	enrollments, err := s.enrollments.FindByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	response := make([]*dto.EnrollmentResponse, 0, len(enrollments))
	for i := range enrollments {
		response = append(response, toEnrollmentResponse(&enrollments[i], now))
	}

	return response, nil
}

func (s *enrollmentService) MarkCompleted(ctx context.Context, enrollmentID string) (*dto.EnrollmentResponse, error) {
	enrollment, err := s.enrollments.FindByID(ctx, enrollmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: enrollment", apperror.ErrNotFound)
		}
		return nil, err
	}

	enrollment.Status = model.EnrollmentCompleted
	if err := s.enrollments.Update(ctx, enrollment); err != nil {
		return nil, err
	}

	return toEnrollmentResponse(enrollment, s.now().UTC()), nil
}

func toEnrollmentResponse(e *model.Enrollment, now time.Time) *dto.EnrollmentResponse {
	resp := &dto.EnrollmentResponse{
		ID:             e.ID,
		Status:         e.Status,
		PaymentStatus:  e.PaymentStatus,
		EnrolledAt:     e.EnrolledAt,
		NextPaymentDue: e.NextPaymentDue,
		LastPaymentAt:  e.LastPaymentAt,
		Billing:        billing.Classify(e.NextPaymentDue, now),
	}
	if e.Course != nil {
		resp.Course = toCourseResponse(e.Course)
	}
	return resp
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/raindropsacademy/tuition-backend/internal/billing"
	"github.com/raindropsacademy/tuition-backend/internal/dto"
	"github.com/raindropsacademy/tuition-backend/internal/model"
	"github.com/raindropsacademy/tuition-backend/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func newTestEnrollmentService(t *testing.T) (*enrollmentService, *fakeEnrollmentRepo, *fakeCourseRepo) {
	t.Helper()

	enrollments := newFakeEnrollmentRepo()
	courses := newFakeCourseRepo()

	svc := NewEnrollmentService(enrollments, courses).(*enrollmentService)
	svc.now = func() time.Time { return testNow }

	return svc, enrollments, courses
}

func seedCourse(t *testing.T, courses *fakeCourseRepo, name string, fee float64) *model.Course {
	t.Helper()

	course := &model.Course{
		ID:         uuid.New(),
		Name:       name,
		TuitionFee: fee,
	}
	require.NoError(t, courses.Create(context.Background(), course))

	return course
}

func TestEnrollInitialState(t *testing.T) {
	svc, _, courses := newTestEnrollmentService(t)
	course := seedCourse(t, courses, "Learning Quran", 150)
	studentID := uuid.New().String()

	resp, err := svc.Enroll(context.Background(), studentID, dto.EnrollInput{CourseID: course.ID.String()})
	require.NoError(t, err)

	assert.Equal(t, model.EnrollmentPending, resp.Status)
	assert.Equal(t, model.PaymentStatusUnpaid, resp.PaymentStatus)
	require.NotNil(t, resp.NextPaymentDue)
	assert.Equal(t, testNow.Add(7*24*time.Hour), *resp.NextPaymentDue)
	assert.Nil(t, resp.LastPaymentAt)

	// A fresh enrollment sits exactly at the edge of the warning window.
	assert.Equal(t, billing.StatusDueSoon, resp.Billing.Status)
	assert.Equal(t, 7, resp.Billing.DaysUntilDue)
}

func TestEnrollDuplicate(t *testing.T) {
	svc, _, courses := newTestEnrollmentService(t)
	course := seedCourse(t, courses, "Tajweed Mastery", 120)
	studentID := uuid.New().String()

	_, err := svc.Enroll(context.Background(), studentID, dto.EnrollInput{CourseID: course.ID.String()})
	require.NoError(t, err)

	_, err = svc.Enroll(context.Background(), studentID, dto.EnrollInput{CourseID: course.ID.String()})
	assert.ErrorIs(t, err, apperror.ErrDuplicateEntity)
}

func TestEnrollSameCourseDifferentStudents(t *testing.T) {
	svc, _, courses := newTestEnrollmentService(t)
	course := seedCourse(t, courses, "Islamic Studies", 180)

	_, err := svc.Enroll(context.Background(), uuid.New().String(), dto.EnrollInput{CourseID: course.ID.String()})
	require.NoError(t, err)

	_, err = svc.Enroll(context.Background(), uuid.New().String(), dto.EnrollInput{CourseID: course.ID.String()})
	assert.NoError(t, err)
}

func TestEnrollCourseNotFound(t *testing.T) {
	svc, _, _ := newTestEnrollmentService(t)

	_, err := svc.Enroll(context.Background(), uuid.New().String(), dto.EnrollInput{CourseID: uuid.New().String()})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestGetMineClassifiesEachEnrollment(t *testing.T) {
	svc, enrollments, courses := newTestEnrollmentService(t)
	course := seedCourse(t, courses, "Memorizing Quran", 200)
	studentID := uuid.New()

	overdue := testNow.Add(-3 * 24 * time.Hour)
	require.NoError(t, enrollments.Create(context.Background(), &model.Enrollment{
		UserID:         studentID,
		CourseID:       course.ID,
		Course:         course,
		Status:         model.EnrollmentActive,
		PaymentStatus:  model.PaymentStatusPaid,
		NextPaymentDue: &overdue,
	}))

	mine, err := svc.GetMine(context.Background(), studentID.String())
	require.NoError(t, err)
	require.Len(t, mine, 1)

	assert.Equal(t, billing.StatusOverdue, mine[0].Billing.Status)
	assert.Equal(t, 3, mine[0].Billing.OverdueDays)
}

func TestMarkCompleted(t *testing.T) {
	svc, enrollments, courses := newTestEnrollmentService(t)
	course := seedCourse(t, courses, "Learning Quran", 150)

	enrollment := &model.Enrollment{
		UserID:        uuid.New(),
		CourseID:      course.ID,
		Course:        course,
		Status:        model.EnrollmentActive,
		PaymentStatus: model.PaymentStatusPaid,
	}
	require.NoError(t, enrollments.Create(context.Background(), enrollment))

	resp, err := svc.MarkCompleted(context.Background(), enrollment.ID.String())
	require.NoError(t, err)

	assert.Equal(t, model.EnrollmentCompleted, resp.Status)

	stored, err := enrollments.FindByID(context.Background(), enrollment.ID.String())
	require.NoError(t, err)
	assert.Equal(t, model.EnrollmentCompleted, stored.Status)
}

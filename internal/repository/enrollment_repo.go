package repository

import (
	"context"

	"github.com/raindropsacademy/tuition-backend/internal/model"
	"gorm.io/gorm"
)

type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *model.Enrollment) error
	FindByID(ctx context.Context, id string) (*model.Enrollment, error)
	FindByStudentAndCourse(ctx context.Context, userID, courseID string) (*model.Enrollment, error)
	FindByStudent(ctx context.Context, userID string) ([]model.Enrollment, error)
	FindActive(ctx context.Context) ([]model.Enrollment, error)
	FindActiveByTeacher(ctx context.Context, teacherID string) ([]model.Enrollment, error)
	CountByCourse(ctx context.Context, courseID string) (int64, error)
	CountByStudent(ctx context.Context, userID string) (int64, error)
	Update(ctx context.Context, enrollment *model.Enrollment) error
}

type enrollmentRepository struct {
	db *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) EnrollmentRepository {
	return &enrollmentRepository{db: db}
}

func (r *enrollmentRepository) Create(ctx context.Context, enrollment *model.Enrollment) error {
	return r.db.WithContext(ctx).Create(enrollment).Error
}

func (r *enrollmentRepository) FindByID(ctx context.Context, id string) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("User.Role").
		Preload("Course").
		Where("id = ?", id).
		First(&enrollment).Error; err != nil {
		return nil, err
	}

	return &enrollment, nil
}

func (r *enrollmentRepository) FindByStudentAndCourse(ctx context.Context, userID, courseID string) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&enrollment).Error; err != nil {
		return nil, err
	}

	return &enrollment, nil
}

func (r *enrollmentRepository) FindByStudent(ctx context.Context, userID string) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	if err := r.db.WithContext(ctx).
		Preload("Course").
		Where("user_id = ?", userID).
		Order("enrolled_at DESC").
		Find(&enrollments).Error; err != nil {
		return nil, err
	}

	return enrollments, nil
}

func (r *enrollmentRepository) FindActive(ctx context.Context) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("User.Role").
		Preload("Course").
		Where("status = ?", model.EnrollmentActive).
		Order("enrolled_at ASC").
		Find(&enrollments).Error; err != nil {
		return nil, err
	}

	return enrollments, nil
}

func (r *enrollmentRepository) FindActiveByTeacher(ctx context.Context, teacherID string) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("User.Role").
		Preload("Course").
		Joins("JOIN courses ON courses.id = enrollments.course_id").
		Where("enrollments.status = ? AND courses.teacher_id = ?", model.EnrollmentActive, teacherID).
		Order("enrollments.enrolled_at ASC").
		Find(&enrollments).Error; err != nil {
		return nil, err
	}

	return enrollments, nil
}

func (r *enrollmentRepository) CountByCourse(ctx context.Context, courseID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&model.Enrollment{}).
		Where("course_id = ?", courseID).
		Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

// CountByStudent counts every enrollment row of the user regardless of
// status; each one holds a foreign key that blocks account deletion.
func (r *enrollmentRepository) CountByStudent(ctx context.Context, userID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&model.Enrollment{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (r *enrollmentRepository) Update(ctx context.Context, enrollment *model.Enrollment) error {
	return r.db.WithContext(ctx).Save(enrollment).Error
}

package repository

import (
	"context"

	"github.com/raindropsacademy/tuition-backend/internal/model"
	"gorm.io/gorm"
)

type CourseRepository interface {
	Create(ctx context.Context, course *model.Course) error
	FindByID(ctx context.Context, id string) (*model.Course, error)
	FindAll(ctx context.Context) ([]*model.Course, error)
	FindByTeacher(ctx context.Context, teacherID string) ([]*model.Course, error)
	CountByTeacher(ctx context.Context, teacherID string) (int64, error)
	Update(ctx context.Context, course *model.Course) error
	Delete(ctx context.Context, id string) error
}

type courseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) Create(ctx context.Context, course *model.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

func (r *courseRepository) FindByID(ctx context.Context, id string) (*model.Course, error) {
	var course model.Course
	if err := r.db.WithContext(ctx).
		Preload("Teacher").
		Preload("Teacher.Role").
		Preload("Teacher.Profile").
		Where("id = ?", id).
		First(&course).Error; err != nil {
		return nil, err
	}

	return &course, nil
}

func (r *courseRepository) FindAll(ctx context.Context) ([]*model.Course, error) {
	var courses []*model.Course
	if err := r.db.WithContext(ctx).
		Preload("Teacher").
		Order("created_at DESC").
		Find(&courses).Error; err != nil {
		return nil, err
	}

	return courses, nil
}

func (r *courseRepository) FindByTeacher(ctx context.Context, teacherID string) ([]*model.Course, error) {
	var courses []*model.Course
	if err := r.db.WithContext(ctx).
		Where("teacher_id = ?", teacherID).
		Order("created_at DESC").
		Find(&courses).Error; err != nil {
		return nil, err
	}

	return courses, nil
}

func (r *courseRepository) CountByTeacher(ctx context.Context, teacherID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&model.Course{}).
		Where("teacher_id = ?", teacherID).
		Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (r *courseRepository) Update(ctx context.Context, course *model.Course) error {
	return r.db.WithContext(ctx).Save(course).Error
}

func (r *courseRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.Course{}, "id = ?", id).Error
}

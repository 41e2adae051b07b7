package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/raindropsacademy/tuition-backend/internal/dto"
	"github.com/raindropsacademy/tuition-backend/internal/model"
	"github.com/raindropsacademy/tuition-backend/internal/repository"
	"github.com/raindropsacademy/tuition-backend/pkg/apperror"
	"github.com/raindropsacademy/tuition-backend/pkg/storage"
	"gorm.io/gorm"
)

type CourseService interface {
	GetAll(ctx context.Context) ([]*dto.CourseResponse, error)
	GetByID(ctx context.Context, id string) (*dto.CourseResponse, error)
	GetByTeacher(ctx context.Context, teacherID string) ([]*dto.CourseResponse, error)
	Search(ctx context.Context, filter dto.CourseSearchFilter) ([]*dto.CourseResponse, error)
	Create(ctx context.Context, input dto.CreateCourseInput, image *dto.ImageFile) (*dto.CourseResponse, error)
	Update(ctx context.Context, id string, input dto.UpdateCourseInput, image *dto.ImageFile) (*dto.CourseResponse, error)
	Delete(ctx context.Context, id string) error
}

type courseService struct {
	courses      repository.CourseRepository
	enrollments  repository.EnrollmentRepository
	users        repository.UserRepository
	imageStorage storage.ImageStorage
	search       CourseSearchService
}

func NewCourseService(
	courses repository.CourseRepository,
	enrollments repository.EnrollmentRepository,
	users repository.UserRepository,
	imageStorage storage.ImageStorage,
	search CourseSearchService,
) CourseService {
	return &courseService{
		courses:      courses,
		enrollments:  enrollments,
		users:        users,
		imageStorage: imageStorage,
		search:       search,
	}
}

func (s *courseService) GetAll(ctx context.Context) ([]*dto.CourseResponse, error) {
	courses, err := s.courses.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	return toCourseResponses(courses), nil
}

func (s *courseService) GetByID(ctx context.Context, id string) (*dto.CourseResponse, error) {
	course, err := s.courses.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: course", apperror.ErrNotFound)
		}
		return nil, err
	}

	return toCourseResponse(course), nil
}

func (s *courseService) GetByTeacher(ctx context.Context, teacherID string) ([]*dto.CourseResponse, error) {
	courses, err := s.courses.FindByTeacher(ctx, teacherID)
	if err != nil {
		return nil, err
	}

	return toCourseResponses(courses), nil
}

func (s *courseService) Search(ctx context.Context, filter dto.CourseSearchFilter) ([]*dto.CourseResponse, error) {
	if s.search == nil {
		return nil, fmt.Errorf("%w: search is not configured", apperror.ErrExternalService)
	}

	ids, err := s.search.Search(filter.Query, filter.Limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrExternalService, err)
	}

	// The index can lag behind the catalog; resolve hits against the store and
	// drop the ones that no longer exist.
	var response []*dto.CourseResponse
	for _, id := range ids {
		course, err := s.courses.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}
		response = append(response, toCourseResponse(course))
	}

	return response, nil
}

// Create validates the uploaded image before any row mutation, then uploads it
// and commits the course. A course image is required.
func (s *courseService) Create(ctx context.Context, input dto.CreateCourseInput, image *dto.ImageFile) (*dto.CourseResponse, error) {
	if image == nil || image.Reader == nil {
		return nil, fmt.Errorf("%w: course image is required", apperror.ErrInvalidUpload)
	}
	if err := storage.ValidateImage(image.FileName, image.Size); err != nil {
		return nil, err
	}

	course := &model.Course{
		Name:        input.Name,
		Description: input.Description,
		Duration:    input.Duration,
		TuitionFee:  input.TuitionFee,
	}
	course.SetFeatures(strings.Split(input.Features, "\n"))

	if input.TeacherID != "" {
		teacher, err := s.resolveTeacher(ctx, input.TeacherID)
		if err != nil {
			return nil, err
		}
		course.TeacherID = &teacher.ID
	}

	iconURL, err := s.imageStorage.UploadImage(ctx, image.Reader, "course-icons", image.FileName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrExternalService, err)
	}
	course.IconURL = iconURL

	if err := s.courses.Create(ctx, course); err != nil {
		return nil, err
	}

	created, err := s.courses.FindByID(ctx, course.ID.String())
	if err != nil {
		return nil, err
	}

	s.reindex(created)

	return toCourseResponse(created), nil
}

// Update replaces course fields and, when a new image is supplied, swaps the
// stored asset: validate first, upload, commit the row, and only then delete
// the previous image.
func (s *courseService) Update(ctx context.Context, id string, input dto.UpdateCourseInput, image *dto.ImageFile) (*dto.CourseResponse, error) {
	course, err := s.courses.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: course", apperror.ErrNotFound)
		}
		return nil, err
	}

	oldIconURL := ""
	if image != nil && image.Reader != nil {
		if err := storage.ValidateImage(image.FileName, image.Size); err != nil {
			return nil, err
		}

		iconURL, err := s.imageStorage.UploadImage(ctx, image.Reader, "course-icons", image.FileName)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperror.ErrExternalService, err)
		}
		oldIconURL = course.IconURL
		course.IconURL = iconURL
	}

	if input.Name != "" {
		course.Name = input.Name
	}
	if input.Description != "" {
		course.Description = input.Description
	}
	if input.Duration != "" {
		course.Duration = input.Duration
	}
	if input.TuitionFee != nil {
		course.TuitionFee = *input.TuitionFee
	}
	if input.Features != nil {
		course.SetFeatures(strings.Split(*input.Features, "\n"))
	}
	if input.TeacherID != nil {
		if *input.TeacherID == "" {
			course.TeacherID = nil
			course.Teacher = nil
		} else {
			teacher, err := s.resolveTeacher(ctx, *input.TeacherID)
			if err != nil {
				return nil, err
			}
			course.TeacherID = &teacher.ID
			course.Teacher = nil
		}
	}

	if err := s.courses.Update(ctx, course); err != nil {
		return nil, err
	}

	// Row is committed; the old asset is now an orphan and safe to drop.
	if oldIconURL != "" {
		if err := s.imageStorage.DeleteImage(ctx, oldIconURL); err != nil {
			log.Printf("failed to delete replaced course image %s: %v", oldIconURL, err)
		}
	}

	updated, err := s.courses.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.reindex(updated)

	return toCourseResponse(updated), nil
}

// Delete refuses while any enrollment references the course. On success the
// search entry and the stored image are removed after the row delete commits.
func (s *courseService) Delete(ctx context.Context, id string) error {
	course, err := s.courses.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: course", apperror.ErrNotFound)
		}
		return err
	}

	count, err := s.enrollments.CountByCourse(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: course has %d enrollment(s)", apperror.ErrHasDependents, count)
	}

	if err := s.courses.Delete(ctx, id); err != nil {
		return err
	}

	if s.search != nil {
		if err := s.search.DeleteCourse(id); err != nil {
			log.Printf("failed to deindex course %s: %v", id, err)
		}
	}
	if course.IconURL != "" {
		if err := s.imageStorage.DeleteImage(ctx, course.IconURL); err != nil {
			log.Printf("failed to delete course image %s: %v", course.IconURL, err)
		}
	}

	return nil
}

func (s *courseService) resolveTeacher(ctx context.Context, teacherID string) (*model.User, error) {
	teacher, err := s.users.FindByID(ctx, teacherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: teacher", apperror.ErrNotFound)
		}
		return nil, err
	}
	if !teacher.IsTeacher() {
		return nil, fmt.Errorf("%w: user %s is not a teacher", apperror.ErrInvalidInput, teacher.Username)
	}

	return teacher, nil
}

func (s *courseService) reindex(course *model.Course) {
	if s.search == nil {
		return
	}
	if err := s.search.IndexCourse(course); err != nil {
		log.Printf("failed to index course %s: %v", course.ID, err)
	}
}

func toCourseResponse(course *model.Course) *dto.CourseResponse {
	resp := &dto.CourseResponse{
		ID:          course.ID,
		Name:        course.Name,
		Description: course.Description,
		Duration:    course.Duration,
		TuitionFee:  course.TuitionFee,
		IconURL:     course.IconURL,
		Features:    course.FeatureList(),
		CreatedAt:   course.CreatedAt,
	}
	if course.Teacher != nil && course.Teacher.ID != uuid.Nil {
		resp.Teacher = &dto.TeacherSummary{
			ID:       course.Teacher.ID,
			FullName: course.Teacher.FullName,
		}
	}
	return resp
}

func toCourseResponses(courses []*model.Course) []*dto.CourseResponse {
	response := make([]*dto.CourseResponse, 0, len(courses))
	for _, c := range courses {
		response = append(response, toCourseResponse(c))
	}
	return response
}

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/raindropsacademy/tuition-backend/internal/dto"
	"github.com/raindropsacademy/tuition-backend/internal/model"
	"github.com/raindropsacademy/tuition-backend/internal/repository"
	"github.com/raindropsacademy/tuition-backend/pkg/apperror"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AdminService interface {
	CreateUser(ctx context.Context, input dto.CreateUserInput) (*dto.UserResponse, error)
	GetAllUsers(ctx context.Context) ([]*dto.UserResponse, error)
	UpdateUser(ctx context.Context, id string, input dto.UpdateUserInput) (*dto.UserResponse, error)
	DeleteUser(ctx context.Context, id string) error
}

type adminService struct {
	users       repository.UserRepository
	courses     repository.CourseRepository
	enrollments repository.EnrollmentRepository
}

func NewAdminService(users repository.UserRepository, courses repository.CourseRepository, enrollments repository.EnrollmentRepository) AdminService {
	return &adminService{
		users:       users,
		courses:     courses,
		enrollments: enrollments,
	}
}

func (s *adminService) CreateUser(ctx context.Context, input dto.CreateUserInput) (*dto.UserResponse, error) {
	if _, err := s.users.FindByEmail(ctx, input.Email); err == nil {
		return nil, fmt.Errorf("%w: email already registered", apperror.ErrDuplicateEntity)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if _, err := s.users.FindByUsername(ctx, input.Username); err == nil {
		return nil, fmt.Errorf("%w: username already taken", apperror.ErrDuplicateEntity)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	role, err := s.users.FindRoleByName(ctx, input.Role)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: role %s", apperror.ErrNotFound, input.Role)
		}
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	roleID := role.ID
	user := &model.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		FullName:     input.FullName,
		Phone:        normalizeOptional(&input.Phone),
		RoleID:       &roleID,
	}

	var profile *model.TeacherProfile
	if input.Role == model.RoleTeacher {
		profile = &model.TeacherProfile{
			Biography:       input.Biography,
			Qualifications:  input.Qualifications,
			YearsExperience: input.YearsExperience,
			Languages:       input.Languages,
			Certifications:  input.Certifications,
		}
	}

	if err := s.users.Create(ctx, user, profile); err != nil {
		return nil, err
	}

	created, err := s.users.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	created.PasswordHash = ""

	return &dto.UserResponse{
		User:    created,
		Role:    &created.Role,
		Profile: created.Profile,
	}, nil
}

func (s *adminService) GetAllUsers(ctx context.Context) ([]*dto.UserResponse, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	var response []*dto.UserResponse
	for _, u := range users {
		u.PasswordHash = ""
		response = append(response, &dto.UserResponse{
			User:    u,
			Role:    &u.Role,
			Profile: u.Profile,
		})
	}

	return response, nil
}

func (s *adminService) UpdateUser(ctx context.Context, id string, input dto.UpdateUserInput) (*dto.UserResponse, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user", apperror.ErrNotFound)
		}
		return nil, err
	}

	if input.Username != "" && input.Username != user.Username {
		if _, err := s.users.FindByUsername(ctx, input.Username); err == nil {
			return nil, fmt.Errorf("%w: username already taken", apperror.ErrDuplicateEntity)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user.Username = input.Username
	}

	if input.Email != "" && input.Email != user.Email {
		if _, err := s.users.FindByEmail(ctx, input.Email); err == nil {
			return nil, fmt.Errorf("%w: email already registered", apperror.ErrDuplicateEntity)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user.Email = input.Email
	}

	if input.Password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = string(hashedPassword)
	}

	if input.FullName != "" {
		user.FullName = input.FullName
	}
	if input.Phone != nil {
		user.Phone = normalizeOptional(input.Phone)
	}

	if input.Role != "" && user.Role.Name != input.Role {
		role, err := s.users.FindRoleByName(ctx, input.Role)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: role %s", apperror.ErrNotFound, input.Role)
			}
			return nil, err
		}
		user.RoleID = &role.ID
		user.Role = *role
	}

	var profile *model.TeacherProfile
	if user.Role.Name == model.RoleTeacher {
		profile = user.Profile
		if profile == nil {
			profile = &model.TeacherProfile{UserID: user.ID}
		}
		if input.Biography != nil {
			profile.Biography = normalizeOptional(input.Biography)
		}
		if input.Qualifications != nil {
			profile.Qualifications = normalizeOptional(input.Qualifications)
		}
		if input.YearsExperience != nil {
			profile.YearsExperience = *input.YearsExperience
		}
		if input.Languages != nil {
			profile.Languages = normalizeOptional(input.Languages)
		}
		if input.Certifications != nil {
			profile.Certifications = normalizeOptional(input.Certifications)
		}
	}

	if err := s.users.Update(ctx, user, profile); err != nil {
		return nil, err
	}

	updated, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	updated.PasswordHash = ""

	return &dto.UserResponse{
		User:    updated,
		Role:    &updated.Role,
		Profile: updated.Profile,
	}, nil
}

// DeleteUser refuses to remove an account that still owns enrollments (any
// status keeps a reference) or is assigned as teacher on any course.
func (s *adminService) DeleteUser(ctx context.Context, id string) error {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: user", apperror.ErrNotFound)
		}
		return err
	}

	enrolled, err := s.enrollments.CountByStudent(ctx, id)
	if err != nil {
		return err
	}
	if enrolled > 0 {
		return fmt.Errorf("%w: user has %d enrollment(s)", apperror.ErrHasDependents, enrolled)
	}

	if user.IsTeacher() {
		assigned, err := s.courses.CountByTeacher(ctx, id)
		if err != nil {
			return err
		}
		if assigned > 0 {
			return fmt.Errorf("%w: teacher is assigned to %d course(s)", apperror.ErrHasDependents, assigned)
		}
	}

	return s.users.Delete(ctx, id)
}

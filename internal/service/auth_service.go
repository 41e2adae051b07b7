package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/raindropsacademy/tuition-backend/internal/dto"
	"github.com/raindropsacademy/tuition-backend/internal/model"
	"github.com/raindropsacademy/tuition-backend/internal/repository"
	"github.com/raindropsacademy/tuition-backend/pkg/apperror"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	Register(ctx context.Context, input dto.RegisterInput) (*model.User, error)
	Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error)
	Me(ctx context.Context, userID string) (*model.User, error)
	// UpdateTeacherProfile lets a teacher edit their own public profile.
	UpdateTeacherProfile(ctx context.Context, userID string, input dto.TeacherProfileInput) (*model.User, error)
}

type authService struct {
	repo   repository.UserRepository
	secret string
}

func NewAuthService(repo repository.UserRepository) AuthService {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "12345"
	}

	return &authService{
		repo:   repo,
		secret: secret,
	}
}

// Register creates a student account. Teacher and admin accounts are created
// by an administrator only.
func (s *authService) Register(ctx context.Context, input dto.RegisterInput) (*model.User, error) {
	if _, err := s.repo.FindByEmail(ctx, input.Email); err == nil {
		return nil, fmt.Errorf("%w: email already registered", apperror.ErrDuplicateEntity)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if _, err := s.repo.FindByUsername(ctx, input.Username); err == nil {
		return nil, fmt.Errorf("%w: username already taken", apperror.ErrDuplicateEntity)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	role, err := s.repo.FindRoleByName(ctx, model.RoleStudent)
	if err != nil {
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

	if err := s.repo.Create(ctx, user, nil); err != nil {
		return nil, err
	}

	created, err := s.repo.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	created.PasswordHash = ""

	return created, nil
}

func (s *authService) Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error) {
	user, err := s.repo.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: invalid username or password", apperror.ErrUnauthorized)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, fmt.Errorf("%w: invalid username or password", apperror.ErrUnauthorized)
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(72 * time.Hour)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.secret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	user.PasswordHash = ""

	return &dto.AuthResponse{Token: token, User: user}, nil
}

func (s *authService) Me(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user", apperror.ErrNotFound)
		}
		return nil, err
	}
	user.PasswordHash = ""

	return user, nil
}

func (s *authService) UpdateTeacherProfile(ctx context.Context, userID string, input dto.TeacherProfileInput) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user", apperror.ErrNotFound)
		}
		return nil, err
	}
	if !user.IsTeacher() {
		return nil, fmt.Errorf("%w: only teacher accounts carry a profile", apperror.ErrForbidden)
	}

	profile := user.Profile
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

	if err := s.repo.Update(ctx, user, profile); err != nil {
		return nil, err
	}

	updated, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	updated.PasswordHash = ""

	return updated, nil
}

func normalizeOptional(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

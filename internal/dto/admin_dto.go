package dto

import "github.com/raindropsacademy/tuition-backend/internal/model"

type CreateUserInput struct {
	Username string `json:"username" form:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required,min=8"`
	FullName string `json:"full_name" form:"full_name" binding:"required,max=120"`
	Phone    string `json:"phone" form:"phone" binding:"omitempty,max=20"`
	Role     string `json:"role" form:"role" binding:"required,oneof=student teacher admin"`

	// Teacher profile fields, only applied when Role is teacher.
	Biography       *string `json:"biography" form:"biography"`
	Qualifications  *string `json:"qualifications" form:"qualifications"`
	YearsExperience int     `json:"years_experience" form:"years_experience" binding:"omitempty,min=0"`
	Languages       *string `json:"languages" form:"languages"`
	Certifications  *string `json:"certifications" form:"certifications"`
}

type UpdateUserInput struct {
	Username string  `json:"username" binding:"omitempty,min=3,max=50"`
	Email    string  `json:"email" binding:"omitempty,email"`
	Password string  `json:"password" binding:"omitempty,min=8"`
	FullName string  `json:"full_name" binding:"omitempty,max=120"`
	Phone    *string `json:"phone"`
	Role     string  `json:"role" binding:"omitempty,oneof=student teacher admin"`

	Biography       *string `json:"biography"`
	Qualifications  *string `json:"qualifications"`
	YearsExperience *int    `json:"years_experience" binding:"omitempty,min=0"`
	Languages       *string `json:"languages"`
	Certifications  *string `json:"certifications"`
}

type UserResponse struct {
	User    *model.User           `json:"user"`
	Role    *model.Role           `json:"role"`
	Profile *model.TeacherProfile `json:"profile,omitempty"`
}

package dto

import "github.com/raindropsacademy/tuition-backend/internal/model"

type RegisterInput struct {
	Username string `json:"username" form:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required,min=8"`
	FullName string `json:"full_name" form:"full_name" binding:"required,max=120"`
	Phone    string `json:"phone" form:"phone" binding:"omitempty,max=20"`
}

type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// TeacherProfileInput is a partial update; nil fields keep their stored value.
type TeacherProfileInput struct {
	Biography       *string `json:"biography"`
	Qualifications  *string `json:"qualifications"`
	YearsExperience *int    `json:"years_experience" binding:"omitempty,min=0"`
	Languages       *string `json:"languages"`
	Certifications  *string `json:"certifications"`
}

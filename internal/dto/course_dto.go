package dto

import (
	"io"
	"time"

	"github.com/google/uuid"
)

type CreateCourseInput struct {
	Name        string  `form:"name" binding:"required,max=100"`
	Description string  `form:"description" binding:"required"`
	Duration    string  `form:"duration" binding:"omitempty,max=50"`
	TuitionFee  float64 `form:"tuition_fee" binding:"required,gt=0"`
	// Features is one entry per line, as typed into the admin form.
	Features  string `form:"features"`
	TeacherID string `form:"teacher_id" binding:"omitempty,uuid"`
}

type UpdateCourseInput struct {
	Name        string   `form:"name" binding:"omitempty,max=100"`
	Description string   `form:"description"`
	Duration    string   `form:"duration" binding:"omitempty,max=50"`
	TuitionFee  *float64 `form:"tuition_fee" binding:"omitempty,gt=0"`
	Features    *string  `form:"features"`
	TeacherID   *string  `form:"teacher_id" binding:"omitempty,uuid"`
}

// ImageFile is an uploaded course image before validation.
type ImageFile struct {
	Reader   io.Reader
	FileName string
	Size     int64
}

type TeacherSummary struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"full_name"`
}

type CourseResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Duration    string          `json:"duration"`
	TuitionFee  float64         `json:"tuition_fee"`
	IconURL     string          `json:"icon_url"`
	Features    []string        `json:"features"`
	Teacher     *TeacherSummary `json:"teacher,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

type CourseSearchFilter struct {
	Query string `form:"q" binding:"required"`
	Limit int64  `form:"limit" binding:"omitempty,min=1,max=50"`
}

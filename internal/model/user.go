package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role names form a closed set seeded at boot. Capability checks dispatch on
// the role name, never on per-user boolean flags.
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
)

type Role struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:50;uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type User struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Username     string          `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email        string          `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string          `gorm:"size:255;not null" json:"-"`
	FullName     string          `gorm:"size:120;not null" json:"full_name"`
	Phone        *string         `gorm:"size:20" json:"phone,omitempty"`
	RoleID       *uint           `json:"role_id"`
	Role         Role            `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"role"`
	CreatedAt    time.Time       `gorm:"autoCreateTime" json:"created_at"`
	Profile      *TeacherProfile `gorm:"constraint:OnDelete:CASCADE" json:"profile,omitempty"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (u *User) IsAdmin() bool {
	return u.Role.Name == RoleAdmin
}

func (u *User) IsTeacher() bool {
	return u.Role.Name == RoleTeacher
}

// TeacherProfile carries the public profile of teacher accounts.
type TeacherProfile struct {
	UserID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	Biography       *string   `gorm:"type:text" json:"biography,omitempty"`
	Qualifications  *string   `gorm:"type:text" json:"qualifications,omitempty"`
	YearsExperience int       `gorm:"default:0" json:"years_experience"`
	Languages       *string   `gorm:"size:255" json:"languages,omitempty"`
	Certifications  *string   `gorm:"type:text" json:"certifications,omitempty"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
}

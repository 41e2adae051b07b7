package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Course struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string     `gorm:"size:100;not null" json:"name"`
	Description string     `gorm:"type:text;not null" json:"description"`
	Duration    string     `gorm:"size:50" json:"duration"`
	TuitionFee  float64    `gorm:"not null" json:"tuition_fee"`
	IconURL     string     `gorm:"type:text" json:"icon_url"`
	Features    string     `gorm:"type:text" json:"-"`
	TeacherID   *uuid.UUID `gorm:"type:uuid;index" json:"teacher_id,omitempty"`
	Teacher     *User      `gorm:"foreignKey:TeacherID;constraint:OnDelete:SET NULL" json:"teacher,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// FeatureList splits the pipe-joined feature column into its ordered entries.
func (c *Course) FeatureList() []string {
	if c.Features == "" {
		return nil
	}
	return strings.Split(c.Features, "|")
}

// SetFeatures stores the ordered feature entries, dropping blank lines.
func (c *Course) SetFeatures(features []string) {
	var kept []string
	for _, f := range features {
		if f = strings.TrimSpace(f); f != "" {
			kept = append(kept, f)
		}
	}
	c.Features = strings.Join(kept, "|")
}

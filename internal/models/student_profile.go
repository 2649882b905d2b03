package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

type StudentProfile struct {
	BaseModel
	UserID     string `gorm:"uniqueIndex;not null"`
	Name       string `gorm:"not null"`
	Location   string
	ResumeText string         `gorm:"type:text"`
	Skills     datatypes.JSON `gorm:"type:jsonb"` // ["python", "django"]

	// Cached profile embedding and the time it was generated.
	EmbeddingCache     datatypes.JSON `gorm:"type:jsonb"`
	EmbeddingUpdatedAt *time.Time
}

// GetSkills returns the profile skills as a slice of strings.
func (p *StudentProfile) GetSkills() []string {
	var skills []string
	if len(p.Skills) > 0 {
		_ = json.Unmarshal(p.Skills, &skills)
	}
	return skills
}

// SetSkills stores the profile skills.
func (p *StudentProfile) SetSkills(skills []string) {
	data, _ := json.Marshal(skills)
	p.Skills = datatypes.JSON(data)
}

type EmployerProfile struct {
	BaseModel
	UserID      string `gorm:"uniqueIndex;not null"`
	CompanyName string `gorm:"not null"`
	Website     string
	City        string
	Description string
	IsVerified  bool `gorm:"default:false"`

	// Relations
	Jobs []Job `gorm:"foreignKey:EmployerID"`
}

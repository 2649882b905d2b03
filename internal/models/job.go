package models

import (
	"encoding/json"

	"gorm.io/datatypes"
)

type Job struct {
	BaseModel
	EmployerID  string  `gorm:"not null;index"`
	Title       string  `gorm:"not null"`
	Description string  `gorm:"type:text"`
	Location    string  `gorm:"index"`
	JobType     JobType `gorm:"type:varchar(20)"`
	SalaryRange string
	IsActive    bool           `gorm:"default:true;index"`
	Skills      datatypes.JSON `gorm:"type:jsonb"` // ["python", "sql"]

	// The embedding vector(384) column also lives on this table, but it is
	// owned entirely by internal/vectorindex (raw SQL reads and writes) and
	// created by the migration. Mapping it here would make GORM serialize a
	// zero pgvector.Vector as '[]' on every insert, which Postgres rejects.

	// Relations
	Employer *EmployerProfile `gorm:"foreignKey:EmployerID"`
}

// GetSkills returns the required skills as a slice of strings.
func (j *Job) GetSkills() []string {
	var skills []string
	if len(j.Skills) > 0 {
		_ = json.Unmarshal(j.Skills, &skills)
	}
	return skills
}

// SetSkills stores the required skills.
func (j *Job) SetSkills(skills []string) {
	data, _ := json.Marshal(skills)
	j.Skills = datatypes.JSON(data)
}

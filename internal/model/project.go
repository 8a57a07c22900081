package model

import (
	"time"

	"github.com/google/uuid"
)

type Project struct {
	ID                   uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	TeamID               uuid.UUID `gorm:"type:uuid;not null;index"`
	Name                 string    `gorm:"not null"`
	InheritsGoalPriority bool      `gorm:"not null;default:false"`
	CreatedAt            time.Time `gorm:"autoCreateTime"`

	Team  Team   `gorm:"foreignKey:TeamID"`
	Goals []Goal `gorm:"many2many:goal_projects"`
}

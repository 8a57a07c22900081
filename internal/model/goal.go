package model

import (
	"time"

	"github.com/google/uuid"
)

type Goal struct {
	ID            uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	TeamID        uuid.UUID `gorm:"type:uuid;not null;index"`
	Title         string    `gorm:"not null"`
	Priority      string    `gorm:"not null;default:'medium'"`
	PriorityScore float64   `gorm:"not null;default:0.5"`
	Status        string    `gorm:"not null;default:'active';check:status IN ('active', 'completed')"`
	TargetDate    *time.Time
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`

	Team     Team      `gorm:"foreignKey:TeamID"`
	Tasks    []Task    `gorm:"many2many:goal_tasks"`
	Projects []Project `gorm:"many2many:goal_projects"`
}

// Статусы цели
const (
	GoalStatusActive    = "active"
	GoalStatusCompleted = "completed"
)

package model

import (
	"time"

	"github.com/google/uuid"
)

type Task struct {
	ID            uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	TeamID        uuid.UUID `gorm:"type:uuid;not null;index"`
	Title         string    `gorm:"not null"`
	Priority      string    `gorm:"not null;default:'medium'"`
	PriorityScore float64   `gorm:"not null;default:0.5"`
	Status        string    `gorm:"not null;default:'todo';check:status IN ('todo', 'in_progress', 'blocked', 'done', 'archived')"`
	DueDate       *time.Time
	AssignedTo    *uuid.UUID `gorm:"type:uuid"`
	ProjectID     *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt     time.Time  `gorm:"autoCreateTime"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime"`

	// Денормализованный кеш движка приоритетов: пересчитывается
	// распространением, никогда не задается напрямую
	EffectiveScore    *float64
	EffectivePriority *string
	PriorityConflict  bool   `gorm:"not null;default:false"`
	PrioritySource    string `gorm:"not null;default:'manual';check:priority_source IN ('manual', 'goal', 'project')"`

	Team    Team     `gorm:"foreignKey:TeamID"`
	Project *Project `gorm:"foreignKey:ProjectID"`
	Goals   []Goal   `gorm:"many2many:goal_tasks"`
}

// Статусы задачи; done и archived — терминальные
const (
	TaskStatusTodo       = "todo"
	TaskStatusInProgress = "in_progress"
	TaskStatusBlocked    = "blocked"
	TaskStatusDone       = "done"
	TaskStatusArchived   = "archived"
)

// Источники эффективного приоритета задачи
const (
	PrioritySourceManual  = "manual"
	PrioritySourceGoal    = "goal"
	PrioritySourceProject = "project"
)

// IsTerminal reports whether the task is in a finished state and therefore
// excluded from propagation, conflict detection and the priority queue.
func (t *Task) IsTerminal() bool {
	return t.Status == TaskStatusDone || t.Status == TaskStatusArchived
}

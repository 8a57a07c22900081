package priority

import (
	"context"

	"github.com/google/uuid"

	"github.com/FullUproar/ravenloomai-sub001/internal/model"
)

// DerivedFields is the denormalized result of resolving one task. The store
// must persist all four fields in a single atomic update so readers never
// observe a half-applied resolution.
type DerivedFields struct {
	EffectiveScore    float64
	EffectivePriority string
	Conflict          bool
	Source            string
}

// TaskStore is the slice of the task repository the engine needs.
type TaskStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error)
	ListOpenByTeam(ctx context.Context, teamID uuid.UUID) ([]model.Task, error)
	ListOpenReachingGoal(ctx context.Context, goalID uuid.UUID) ([]model.Task, error)
	UpdateDerived(ctx context.Context, id uuid.UUID, fields DerivedFields) error
	SetOwnPriority(ctx context.Context, id uuid.UUID, label string, score float64) error
}

// GoalStore resolves goal records and their links to tasks and projects.
type GoalStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Goal, error)
	GetByTaskID(ctx context.Context, taskID uuid.UUID) ([]model.Goal, error)
	GetByProjectID(ctx context.Context, projectID uuid.UUID) ([]model.Goal, error)
	UpdatePriority(ctx context.Context, id uuid.UUID, label string, score float64) error
}

// ProjectStore resolves project records for inheritance checks.
type ProjectStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Project, error)
}

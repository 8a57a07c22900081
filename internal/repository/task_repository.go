package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/FullUproar/ravenloomai-sub001/internal/model"
	"github.com/FullUproar/ravenloomai-sub001/internal/priority"
)

var (
	ErrTaskNotFound = errors.New("task not found")
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create adds a new task to the database
func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// GetByID retrieves a task by its ID
func (r *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	var task model.Task
	result := r.db.WithContext(ctx).First(&task, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, result.Error
	}
	return &task, nil
}

// ListOpenByTeam retrieves all non-terminal tasks of a team
func (r *TaskRepository) ListOpenByTeam(ctx context.Context, teamID uuid.UUID) ([]model.Task, error) {
	var tasks []model.Task
	result := r.db.WithContext(ctx).
		Where("team_id = ? AND status NOT IN ?", teamID, []string{model.TaskStatusDone, model.TaskStatusArchived}).
		Order("created_at").
		Find(&tasks)
	if result.Error != nil {
		return nil, result.Error
	}
	return tasks, nil
}

// ListByTeam retrieves a team's tasks for the reporting view, ordered by
// effective score with unresolved scores last. Terminal tasks are
// included only when includeCompleted is set.
func (r *TaskRepository) ListByTeam(ctx context.Context, teamID uuid.UUID, includeCompleted bool, limit int) ([]model.Task, error) {
	query := r.db.WithContext(ctx).Where("team_id = ?", teamID)
	if !includeCompleted {
		query = query.Where("status NOT IN ?", []string{model.TaskStatusDone, model.TaskStatusArchived})
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var tasks []model.Task
	result := query.Order("effective_score DESC NULLS LAST, created_at").Find(&tasks)
	if result.Error != nil {
		return nil, result.Error
	}
	return tasks, nil
}

// ListOpenReachingGoal retrieves the non-terminal tasks a goal reaches:
// tasks linked directly through goal_tasks, plus tasks whose project is
// linked through goal_projects and inherits goal priority.
func (r *TaskRepository) ListOpenReachingGoal(ctx context.Context, goalID uuid.UUID) ([]model.Task, error) {
	var tasks []model.Task
	result := r.db.WithContext(ctx).Raw(`
		SELECT t.* FROM tasks t
		WHERE t.status NOT IN ('done', 'archived')
		  AND (
		    t.id IN (SELECT task_id FROM goal_tasks WHERE goal_id = ?)
		    OR t.project_id IN (
		      SELECT gp.project_id FROM goal_projects gp
		      JOIN projects p ON p.id = gp.project_id
		      WHERE gp.goal_id = ? AND p.inherits_goal_priority
		    )
		  )
		ORDER BY t.created_at`,
		goalID, goalID,
	).Scan(&tasks)
	if result.Error != nil {
		return nil, result.Error
	}
	return tasks, nil
}

// UpdateDerived persists the four cached resolution fields of a task in a
// single UPDATE so readers never see a partially applied resolution
func (r *TaskRepository) UpdateDerived(ctx context.Context, id uuid.UUID, fields priority.DerivedFields) error {
	result := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"effective_score":    fields.EffectiveScore,
			"effective_priority": fields.EffectivePriority,
			"priority_conflict":  fields.Conflict,
			"priority_source":    fields.Source,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// SetOwnPriority updates a task's own label and derived own score together
func (r *TaskRepository) SetOwnPriority(ctx context.Context, id uuid.UUID, label string, score float64) error {
	result := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"priority":       label,
			"priority_score": score,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// AddGoalLink links a goal to a task
func (r *TaskRepository) AddGoalLink(ctx context.Context, taskID, goalID uuid.UUID) error {
	return r.db.WithContext(ctx).Exec(
		"INSERT INTO goal_tasks (task_id, goal_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
		taskID, goalID,
	).Error
}

// RemoveGoalLink unlinks a goal from a task
func (r *TaskRepository) RemoveGoalLink(ctx context.Context, taskID, goalID uuid.UUID) error {
	return r.db.WithContext(ctx).Exec(
		"DELETE FROM goal_tasks WHERE task_id = ? AND goal_id = ?",
		taskID, goalID,
	).Error
}

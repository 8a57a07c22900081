package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/FullUproar/ravenloomai-sub001/internal/model"
)

type GoalRepository struct {
	db *gorm.DB
}

func NewGoalRepository(db *gorm.DB) *GoalRepository {
	return &GoalRepository{db: db}
}

// Create adds a new goal to the database
func (r *GoalRepository) Create(ctx context.Context, goal *model.Goal) error {
	return r.db.WithContext(ctx).Create(goal).Error
}

// GetByID retrieves a goal by its ID
func (r *GoalRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Goal, error) {
	var goal model.Goal
	result := r.db.WithContext(ctx).First(&goal, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrGoalNotFound
		}
		return nil, result.Error
	}
	return &goal, nil
}

// GetByTaskID retrieves the goals linked directly to a task
func (r *GoalRepository) GetByTaskID(ctx context.Context, taskID uuid.UUID) ([]model.Goal, error) {
	var goals []model.Goal
	result := r.db.WithContext(ctx).Raw(`
		SELECT g.* FROM goals g
		JOIN goal_tasks gt ON gt.goal_id = g.id
		WHERE gt.task_id = ?
		ORDER BY g.created_at`,
		taskID,
	).Scan(&goals)
	if result.Error != nil {
		return nil, result.Error
	}
	return goals, nil
}

// GetByProjectID retrieves the goals linked to a project
func (r *GoalRepository) GetByProjectID(ctx context.Context, projectID uuid.UUID) ([]model.Goal, error) {
	var goals []model.Goal
	result := r.db.WithContext(ctx).Raw(`
		SELECT g.* FROM goals g
		JOIN goal_projects gp ON gp.goal_id = g.id
		WHERE gp.project_id = ?
		ORDER BY g.created_at`,
		projectID,
	).Scan(&goals)
	if result.Error != nil {
		return nil, result.Error
	}
	return goals, nil
}

// ListByTeam retrieves all goals of a team
func (r *GoalRepository) ListByTeam(ctx context.Context, teamID uuid.UUID) ([]model.Goal, error) {
	var goals []model.Goal
	result := r.db.WithContext(ctx).Where("team_id = ?", teamID).Order("created_at").Find(&goals)
	if result.Error != nil {
		return nil, result.Error
	}
	return goals, nil
}

// UpdatePriority updates a goal's label and derived score together so the
// two never go out of sync
func (r *GoalRepository) UpdatePriority(ctx context.Context, id uuid.UUID, label string, score float64) error {
	result := r.db.WithContext(ctx).Model(&model.Goal{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"priority":       label,
			"priority_score": score,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrGoalNotFound
	}
	return nil
}

// AddProjectLink links a goal to a project for inheritance purposes
func (r *GoalRepository) AddProjectLink(ctx context.Context, goalID, projectID uuid.UUID) error {
	return r.db.WithContext(ctx).Exec(
		"INSERT INTO goal_projects (goal_id, project_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
		goalID, projectID,
	).Error
}

// RemoveProjectLink unlinks a goal from a project
func (r *GoalRepository) RemoveProjectLink(ctx context.Context, goalID, projectID uuid.UUID) error {
	return r.db.WithContext(ctx).Exec(
		"DELETE FROM goal_projects WHERE goal_id = ? AND project_id = ?",
		goalID, projectID,
	).Error
}

package priority

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Действия, которые предлагает генератор рекомендаций
const (
	ActionRaiseTaskPriority = "raise_task_priority"
	ActionLinkToGoal        = "link_to_goal"
)

// Suggestion is one actionable recommendation for a team: either raise a
// conflicted task's priority or link a high-priority orphan to a goal.
type Suggestion struct {
	TaskID          uuid.UUID
	TaskTitle       string
	Action          string
	CurrentPriority string
	GoalID          *uuid.UUID
	GoalPriority    string
	Reason          string
}

// Suggester turns conflicts and high-priority orphan tasks into
// recommendations.
type Suggester struct {
	tasks    TaskStore
	goals    GoalStore
	detector *Detector
}

func NewSuggester(tasks TaskStore, goals GoalStore, detector *Detector) *Suggester {
	return &Suggester{tasks: tasks, goals: goals, detector: detector}
}

// Suggest returns the team's recommendations: one per detected conflict
// first, then one per orphan task. An orphan is an open task with a
// high-or-above own label, no project, and no linked goal at all. Beyond
// conflicts-before-orphans the list carries no ordering guarantee.
func (s *Suggester) Suggest(ctx context.Context, teamID uuid.UUID) ([]Suggestion, error) {
	conflicts, err := s.detector.Detect(ctx, teamID)
	if err != nil {
		return nil, err
	}

	suggestions := []Suggestion{}
	for _, c := range conflicts {
		goalID := c.Goal.ID
		suggestions = append(suggestions, Suggestion{
			TaskID:          c.Task.ID,
			TaskTitle:       c.Task.Title,
			Action:          ActionRaiseTaskPriority,
			CurrentPriority: c.Task.Priority,
			GoalID:          &goalID,
			GoalPriority:    c.Goal.Priority,
			Reason:          fmt.Sprintf("Task is linked to %s priority goal %q", c.Goal.Priority, c.Goal.Title),
		})
	}

	tasks, err := s.tasks.ListOpenByTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	for i := range tasks {
		task := &tasks[i]
		if !IsHighOrAbove(task.Priority) || task.ProjectID != nil {
			continue
		}
		linked, err := s.goals.GetByTaskID(ctx, task.ID)
		if err != nil {
			return nil, err
		}
		if len(linked) > 0 {
			continue
		}
		suggestions = append(suggestions, Suggestion{
			TaskID:          task.ID,
			TaskTitle:       task.Title,
			Action:          ActionLinkToGoal,
			CurrentPriority: task.Priority,
			Reason:          "High priority task not linked to any goal",
		})
	}

	return suggestions, nil
}

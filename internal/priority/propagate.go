package priority

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/FullUproar/ravenloomai-sub001/internal/model"
)

// Orchestrator drives recomputation of the cached derived fields when
// goal priorities change, and on explicit repair requests.
type Orchestrator struct {
	tasks    TaskStore
	goals    GoalStore
	resolver *Resolver
}

func NewOrchestrator(tasks TaskStore, goals GoalStore, resolver *Resolver) *Orchestrator {
	return &Orchestrator{tasks: tasks, goals: goals, resolver: resolver}
}

// SetGoalPriority updates a goal's label and derived score, then
// propagates the change to every open task the goal reaches. Returns the
// new score and the number of tasks recomputed.
func (o *Orchestrator) SetGoalPriority(ctx context.Context, goalID uuid.UUID, label string) (float64, int, error) {
	goal, err := o.goals.GetByID(ctx, goalID)
	if err != nil {
		return 0, 0, err
	}

	score := Encode(label)
	if err := o.goals.UpdatePriority(ctx, goal.ID, label, score); err != nil {
		return 0, 0, err
	}

	affected, err := o.PropagateGoal(ctx, goal.ID)
	if err != nil {
		return 0, 0, err
	}
	return score, affected, nil
}

// SetTaskPriority updates a task's own label and score, then re-resolves
// and persists that task's derived fields. Only the one task is touched:
// a task's own label never influences other tasks.
func (o *Orchestrator) SetTaskPriority(ctx context.Context, taskID uuid.UUID, label string) (*Resolution, error) {
	task, err := o.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	score := Encode(label)
	if err := o.tasks.SetOwnPriority(ctx, task.ID, label, score); err != nil {
		return nil, err
	}

	task.Priority = label
	task.PriorityScore = score
	res, err := o.resolver.ResolveTask(ctx, task)
	if err != nil {
		return nil, err
	}
	if err := o.tasks.UpdateDerived(ctx, task.ID, res.Derived()); err != nil {
		return nil, err
	}
	return res, nil
}

// PropagateGoal recomputes and persists the derived fields of every open
// task the goal reaches, directly or through an inheriting project. The
// loop is fail-fast: the first task that cannot be recomputed aborts the
// batch and its error is returned with no partial-completion report.
func (o *Orchestrator) PropagateGoal(ctx context.Context, goalID uuid.UUID) (int, error) {
	tasks, err := o.tasks.ListOpenReachingGoal(ctx, goalID)
	if err != nil {
		return 0, err
	}

	for i := range tasks {
		if err := o.recompute(ctx, &tasks[i]); err != nil {
			return 0, err
		}
	}
	return len(tasks), nil
}

// RecomputeTeam recomputes the derived fields of every open task in the
// team regardless of recent changes. It is a repair operation: running it
// twice with no intervening mutation writes identical values both times,
// and the returned count (rows examined) is stable across reruns.
func (o *Orchestrator) RecomputeTeam(ctx context.Context, teamID uuid.UUID) (int, error) {
	tasks, err := o.tasks.ListOpenByTeam(ctx, teamID)
	if err != nil {
		return 0, err
	}

	for i := range tasks {
		if err := o.recompute(ctx, &tasks[i]); err != nil {
			return 0, err
		}
	}
	return len(tasks), nil
}

func (o *Orchestrator) recompute(ctx context.Context, task *model.Task) error {
	res, err := o.resolver.ResolveTask(ctx, task)
	if err != nil {
		return fmt.Errorf("resolve task %s: %w", task.ID, err)
	}
	if err := o.tasks.UpdateDerived(ctx, task.ID, res.Derived()); err != nil {
		return fmt.Errorf("persist task %s: %w", task.ID, err)
	}
	return nil
}

package priority

import (
	"context"

	"github.com/google/uuid"

	"github.com/FullUproar/ravenloomai-sub001/internal/model"
)

// Resolution is the outcome of computing a task's effective priority from
// its own score and every goal reaching it.
type Resolution struct {
	TaskID            uuid.UUID
	OwnScore          float64
	EffectiveScore    float64
	EffectivePriority string
	Conflict          bool
	Source            string

	// TopGoal is a reaching goal with the maximal score, or nil when no
	// goal reaches the task. When several goals tie at the maximum, any
	// one of them may be reported; directly linked goals are scanned
	// before inherited ones, so a tied direct goal wins.
	TopGoal *model.Goal
}

// Derived packs the resolution into the persistable cache fields.
func (res *Resolution) Derived() DerivedFields {
	return DerivedFields{
		EffectiveScore:    res.EffectiveScore,
		EffectivePriority: res.EffectivePriority,
		Conflict:          res.Conflict,
		Source:            res.Source,
	}
}

// Resolver computes effective priorities. It is a pure read over the
// current goal/project/link state; persisting the result is the caller's
// decision.
type Resolver struct {
	tasks    TaskStore
	goals    GoalStore
	projects ProjectStore
}

func NewResolver(tasks TaskStore, goals GoalStore, projects ProjectStore) *Resolver {
	return &Resolver{tasks: tasks, goals: goals, projects: projects}
}

// Resolve computes the effective priority of the task with the given ID.
// A missing task surfaces the repository's not-found error as-is.
func (r *Resolver) Resolve(ctx context.Context, taskID uuid.UUID) (*Resolution, error) {
	task, err := r.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	return r.ResolveTask(ctx, task)
}

// ResolveTask computes the effective priority of an already loaded task.
// Batch callers use this to avoid refetching each row.
//
// effective = max(own score, max score of reaching goals), where a goal
// reaches the task through a direct link or through the task's project
// when that project inherits goal priority. The priority source follows
// goal > project > manual precedence among the contributors that attain
// the maximum; conflict requires the effective score to strictly exceed
// the own score.
func (r *Resolver) ResolveTask(ctx context.Context, task *model.Task) (*Resolution, error) {
	res := &Resolution{
		TaskID:         task.ID,
		OwnScore:       task.PriorityScore,
		EffectiveScore: task.PriorityScore,
		Source:         model.PrioritySourceManual,
	}

	direct, err := r.goals.GetByTaskID(ctx, task.ID)
	if err != nil {
		return nil, err
	}

	var inherited []model.Goal
	if task.ProjectID != nil {
		project, err := r.projects.GetByID(ctx, *task.ProjectID)
		if err != nil {
			return nil, err
		}
		if project.InheritsGoalPriority {
			inherited, err = r.goals.GetByProjectID(ctx, project.ID)
			if err != nil {
				return nil, err
			}
		}
	}

	maxDirect, topDirect := maxGoalScore(direct)
	maxInherited, topInherited := maxGoalScore(inherited)

	switch {
	case topDirect != nil && maxDirect >= res.EffectiveScore && maxDirect >= maxInherited:
		res.EffectiveScore = maxDirect
		res.Source = model.PrioritySourceGoal
		res.TopGoal = topDirect
	case topInherited != nil && maxInherited >= res.EffectiveScore:
		res.EffectiveScore = maxInherited
		res.Source = model.PrioritySourceProject
		res.TopGoal = topInherited
	default:
		// Own score strictly exceeds every reaching goal; still report
		// the best goal for callers that want attribution.
		if topDirect != nil && maxDirect >= maxInherited {
			res.TopGoal = topDirect
		} else if topInherited != nil {
			res.TopGoal = topInherited
		}
	}

	res.EffectivePriority = Decode(res.EffectiveScore)
	res.Conflict = res.EffectiveScore > res.OwnScore

	return res, nil
}

// maxGoalScore returns the highest score among the goals and the first
// goal attaining it. The second return is nil for an empty slice.
func maxGoalScore(goals []model.Goal) (float64, *model.Goal) {
	var top *model.Goal
	max := 0.0
	for i := range goals {
		if top == nil || goals[i].PriorityScore > max {
			top = &goals[i]
			max = goals[i].PriorityScore
		}
	}
	return max, top
}

package priority

import (
	"context"

	"github.com/google/uuid"

	"github.com/FullUproar/ravenloomai-sub001/internal/model"
)

// TaskConflict pairs a task whose own priority understates its effective
// priority with the goal responsible for the gap.
type TaskConflict struct {
	Task           model.Task
	OwnScore       float64
	EffectiveScore float64
	Goal           model.Goal
}

// ConflictSummary aggregates a team's conflicts for remediation triage,
// splitting off those caused by critical/urgent goals.
type ConflictSummary struct {
	HasConflicts bool
	Total        int
	Critical     int
	Other        int
	Conflicts    []TaskConflict
}

// Detector enumerates priority conflicts across a team's open tasks.
type Detector struct {
	tasks    TaskStore
	resolver *Resolver
}

func NewDetector(tasks TaskStore, resolver *Resolver) *Detector {
	return &Detector{tasks: tasks, resolver: resolver}
}

// Detect re-resolves every open task in the team and returns those whose
// effective score strictly exceeds their own score, each paired with a
// maximal reaching goal. On ties between reaching goals any one of the
// tied goals is reported.
func (d *Detector) Detect(ctx context.Context, teamID uuid.UUID) ([]TaskConflict, error) {
	tasks, err := d.tasks.ListOpenByTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}

	conflicts := []TaskConflict{}
	for i := range tasks {
		res, err := d.resolver.ResolveTask(ctx, &tasks[i])
		if err != nil {
			return nil, err
		}
		if !res.Conflict || res.TopGoal == nil {
			continue
		}
		conflicts = append(conflicts, TaskConflict{
			Task:           tasks[i],
			OwnScore:       res.OwnScore,
			EffectiveScore: res.EffectiveScore,
			Goal:           *res.TopGoal,
		})
	}
	return conflicts, nil
}

// Summary runs Detect and counts conflicts caused by critical/urgent
// goals separately from the rest.
func (d *Detector) Summary(ctx context.Context, teamID uuid.UUID) (*ConflictSummary, error) {
	conflicts, err := d.Detect(ctx, teamID)
	if err != nil {
		return nil, err
	}

	summary := &ConflictSummary{
		HasConflicts: len(conflicts) > 0,
		Total:        len(conflicts),
		Conflicts:    conflicts,
	}
	for _, c := range conflicts {
		if c.Goal.PriorityScore >= 0.90 {
			summary.Critical++
		} else {
			summary.Other++
		}
	}
	return summary, nil
}

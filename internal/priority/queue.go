package priority

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/FullUproar/ravenloomai-sub001/internal/model"
)

// QueueOptions filters and sizes the ranked queue.
type QueueOptions struct {
	AssigneeID     *uuid.UUID
	ExcludeBlocked bool
	Limit          int
}

// QueueItem is one entry of the ranked "what to work on next" queue.
// Rank is 1-based and reflects the final sort position of this call; it
// is never stored.
type QueueItem struct {
	Rank int
	Task model.Task
}

// Ranker orders a team's open tasks by effective priority.
type Ranker struct {
	tasks TaskStore
}

func NewRanker(tasks TaskStore) *Ranker {
	return &Ranker{tasks: tasks}
}

// Queue returns the team's open tasks ordered by: effective score
// descending with unresolved (null) scores last, then due date ascending
// with undated tasks after all dated ones, then creation time ascending.
// Terminal tasks are always excluded; blocked tasks only when requested.
func (r *Ranker) Queue(ctx context.Context, teamID uuid.UUID, opts QueueOptions) ([]QueueItem, error) {
	tasks, err := r.tasks.ListOpenByTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}

	filtered := tasks[:0]
	for _, task := range tasks {
		if opts.ExcludeBlocked && task.Status == model.TaskStatusBlocked {
			continue
		}
		if opts.AssigneeID != nil && (task.AssignedTo == nil || *task.AssignedTo != *opts.AssigneeID) {
			continue
		}
		filtered = append(filtered, task)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return queueLess(&filtered[i], &filtered[j])
	})

	if opts.Limit > 0 && len(filtered) > opts.Limit {
		filtered = filtered[:opts.Limit]
	}

	items := make([]QueueItem, len(filtered))
	for i, task := range filtered {
		items[i] = QueueItem{Rank: i + 1, Task: task}
	}
	return items, nil
}

func queueLess(a, b *model.Task) bool {
	as, bs := a.EffectiveScore, b.EffectiveScore
	switch {
	case as != nil && bs == nil:
		return true
	case as == nil && bs != nil:
		return false
	case as != nil && bs != nil && *as != *bs:
		return *as > *bs
	}

	ad, bd := a.DueDate, b.DueDate
	switch {
	case ad != nil && bd == nil:
		return true
	case ad == nil && bd != nil:
		return false
	case ad != nil && bd != nil && !ad.Equal(*bd):
		return ad.Before(*bd)
	}

	return a.CreatedAt.Before(b.CreatedAt)
}

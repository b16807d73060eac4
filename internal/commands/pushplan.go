package commands

import (
	"mdtodo/internal/service"
	"mdtodo/internal/task"
)

type pushPlan struct {
	create   []string // titles to create, oldest first
	complete []string // remote task IDs to complete
}

// planPush matches local tasks to open remote tasks by exact text. Each
// remote task is matched at most once, so duplicate texts stay balanced.
func planPush(pending, done []task.Task, remote []service.RemoteTask) pushPlan {
	open := make(map[string][]string, len(remote)) // title -> remote IDs
	for _, r := range remote {
		open[r.Title] = append(open[r.Title], r.ID)
	}

	take := func(title string) (string, bool) {
		ids := open[title]
		if len(ids) == 0 {
			return "", false
		}
		open[title] = ids[1:]
		return ids[0], true
	}

	var plan pushPlan

	// Pending is newest first; create oldest first so the remote order
	// matches insertion order.
	for i := len(pending) - 1; i >= 0; i-- {
		if _, ok := take(pending[i].Text); !ok {
			plan.create = append(plan.create, pending[i].Text)
		}
	}

	for _, t := range done {
		if id, ok := take(t.Text); ok {
			plan.complete = append(plan.complete, id)
		}
	}
	return plan
}

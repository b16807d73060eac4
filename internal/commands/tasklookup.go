package commands

import (
	"context"
	"fmt"

	"mdtodo/internal/service"
	"mdtodo/internal/task"
)

// errOutOfRange reports a reference past the end of its list.
type errOutOfRange struct {
	ref TaskRef
}

func (e *errOutOfRange) Error() string {
	return fmt.Sprintf("task number out of range: %s", e.ref)
}

// resolveRefs maps references to tasks using one snapshot of both lists, so
// that positions do not shift while several tasks are moved.
func resolveRefs(ctx context.Context, svc service.Service, refs []TaskRef) ([]task.Task, error) {
	pending, err := svc.Pending(ctx)
	if err != nil {
		return nil, err
	}
	done, err := svc.Done(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]task.Task, 0, len(refs))
	seen := make(map[string]bool, len(refs))
	for _, ref := range refs {
		list := pending
		if ref.Done {
			list = done
		}
		if ref.Num < 1 || ref.Num > len(list) {
			return nil, &errOutOfRange{ref: ref}
		}
		t := list[ref.Num-1]
		if seen[t.ID] {
			continue
		}
		seen[t.ID] = true
		result = append(result, t)
	}
	return result, nil
}

package commands

import (
	"errors"
	"fmt"
	"strconv"
	"unicode"
)

// TaskRef is a parsed task reference as printed by the list command:
// "3" is the third pending task and "d3" the third done task.
type TaskRef struct {
	Done bool // true for a d-prefixed reference
	Num  int  // 1-based position in the list
}

func (r TaskRef) String() string {
	if r.Done {
		return fmt.Sprintf("d%d", r.Num)
	}
	return strconv.Itoa(r.Num)
}

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// ParseTaskRef parses a single task reference.
//
// Parsing rules:
// 1. All digits → pending reference
// 2. "d" or "D" followed by digits → done reference
// 3. Otherwise → error: invalid task reference: <ref>
func ParseTaskRef(arg string) (TaskRef, error) {
	if arg == "" {
		return TaskRef{}, ErrTaskRefRequired
	}

	ref := TaskRef{}
	digits := arg
	if arg[0] == 'd' || arg[0] == 'D' {
		ref.Done = true
		digits = arg[1:]
	}

	if !isAllDigits(digits) {
		return TaskRef{}, fmt.Errorf("invalid task reference: %s", arg)
	}
	num, err := strconv.Atoi(digits)
	if err != nil {
		return TaskRef{}, fmt.Errorf("invalid task reference: %s", arg)
	}
	ref.Num = num
	return ref, nil
}

// ParseTaskRefs parses every argument as a task reference.
func ParseTaskRefs(args []string) ([]TaskRef, error) {
	if len(args) == 0 {
		return nil, ErrTaskRefRequired
	}
	refs := make([]TaskRef, 0, len(args))
	for _, arg := range args {
		ref, err := ParseTaskRef(arg)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

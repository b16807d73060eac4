package commands

import (
	"errors"
	"fmt"
	"io"

	"mdtodo/internal/exitcode"
	"mdtodo/internal/service"
)

// reportError prints a service error and returns the matching exit code.
func reportError(errOut io.Writer, err error) int {
	var perr *service.PersistError
	var rangeErr *errOutOfRange

	switch {
	case errors.As(err, &perr):
		fmt.Fprintf(errOut, "error: %v\n", perr)
		return exitcode.BackendError
	case errors.As(err, &rangeErr):
		fmt.Fprintf(errOut, "error: %v\n", rangeErr)
		return exitcode.UserError
	case errors.Is(err, service.ErrEmptyText):
		fmt.Fprintln(errOut, "error: task text required")
		return exitcode.UserError
	case errors.Is(err, service.ErrNotFound):
		fmt.Fprintln(errOut, "error: task not found")
		return exitcode.UserError
	default:
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}
}

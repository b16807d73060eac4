// Package exitcode holds the process exit statuses of mdtodo. Commands return
// one of these from Run and main passes it to os.Exit unchanged.
package exitcode

const (
	Success = 0

	// UserError covers bad flags or arguments, unknown commands and task
	// references that match nothing in the task files.
	UserError = 1

	// AuthError is returned by login, logout and push when the Google
	// credentials are missing, unreadable or rejected.
	AuthError = 2

	// BackendError means the task files could not be saved
	// (service.PersistError) or a push call to Google Tasks failed.
	BackendError = 3
)

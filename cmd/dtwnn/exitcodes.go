package main

// Exit codes.
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (bad config file, env or flag values)
	ExitDataError   = 3 // Data error (unreadable or malformed dataset)
)

// exitError carries an exit code through cobra's error return.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }

func (e *exitError) Unwrap() error { return e.err }

func configError(err error) error { return &exitError{code: ExitConfigError, err: err} }

func dataError(err error) error { return &exitError{code: ExitDataError, err: err} }

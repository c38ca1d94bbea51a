package rerrors

import "fmt"

// ProcessError wraps a subprocess (git, rclone) that exited for a reason
// the calling resolver or fetcher did not recognize as a documented
// DoesNotExist signal, or that could not be started at all.
type ProcessError struct {
	*Error
	Command  []string
	ExitCode int
	Stdout   string
	Stderr   string
}

// NewProcessError reports a subprocess that ran and exited nonzero for an
// unrecognized reason.
func NewProcessError(command []string, exitCode int, stdout, stderr string) *ProcessError {
	return &ProcessError{
		Error: &Error{
			Category: CategoryProcess,
			Code:     CodeProcessFailed,
			Message:  fmt.Sprintf("%s exited %d", command[0], exitCode),
		},
		Command:  command,
		ExitCode: exitCode,
		Stdout:   stdout,
		Stderr:   stderr,
	}
}

// NewProcessMissingError reports that the named executable could not be
// found on PATH.
func NewProcessMissingError(name string, cause error) *ProcessError {
	return &ProcessError{
		Error: &Error{
			Category: CategoryProcess,
			Code:     CodeProcessMissing,
			Message:  fmt.Sprintf("%s not found on PATH", name),
			Cause:    cause,
		},
		Command: []string{name},
	}
}

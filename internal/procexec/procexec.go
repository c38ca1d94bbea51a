// Package procexec runs external commands (git, rclone) without a shell,
// capturing their decoded stdout/stderr and exit code, per spec §4.7
// "Subprocess exec".
package procexec

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os/exec"

	"github.com/reporef/reporef/internal/rerrors"
)

// Result carries a finished subprocess's captured output.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Run executes name with args, never through a shell, and returns its
// exit code plus decoded stdout/stderr. A nonzero exit code is reported
// through Result, not err: callers (resolvers) need to inspect stderr
// text to decide between a recognized DoesNotExist signal and a genuine
// failure. err is only non-nil when the command could not be started at
// all (e.g. not found on PATH).
func Run(ctx context.Context, name string, args ...string) (*Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	slog.Debug("exec", "command", name, "args", args)

	err := cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &Result{
				ExitCode: exitErr.ExitCode(),
				Stdout:   stdout.String(),
				Stderr:   stderr.String(),
			}, nil
		}
		return nil, rerrors.NewProcessMissingError(name, err)
	}

	return &Result{ExitCode: 0, Stdout: stdout.String(), Stderr: stderr.String()}, nil
}

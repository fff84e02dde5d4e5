// Package runner executes external toolchain commands with a hard per-stage
// timeout. Only the deployment orchestrators call into it.
package runner

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

// outputTailBytes bounds how much captured output an error message carries.
const outputTailBytes = 600

// ProcessError reports a command that exited non-zero or hit its timeout.
// Output holds whatever combined output was captured before the failure.
type ProcessError struct {
	Output string
	Err    error
}

func (e *ProcessError) Error() string {
	tail := strings.TrimSpace(e.Output)
	if len(tail) > outputTailBytes {
		tail = "..." + tail[len(tail)-outputTailBytes:]
	}
	if tail == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%v\n%s", e.Err, tail)
}

func (e *ProcessError) Unwrap() error { return e.Err }

// Runner runs a shell command string and returns its combined output.
type Runner interface {
	Run(ctx context.Context, command string, timeout time.Duration) (string, error)
}

// ShellRunner executes commands through /bin/sh on the host.
type ShellRunner struct{}

// Run executes command under sh -c. On timeout the process is killed and the
// stage is failed; partial output is preserved on the returned error. There
// are no retries at this layer or above.
func (ShellRunner) Run(ctx context.Context, command string, timeout time.Duration) (string, error) {
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	cmd := exec.CommandContext(runCtx, "/bin/sh", "-c", command)
	out, err := cmd.CombinedOutput()
	elapsed := time.Since(start)

	if err != nil {
		if runCtx.Err() == context.DeadlineExceeded {
			err = fmt.Errorf("command timed out after %s", timeout)
		} else {
			err = fmt.Errorf("command failed: %w", err)
		}
		slog.Error("External command failed", "error", err, "elapsed", elapsed)
		return string(out), &ProcessError{Output: string(out), Err: err}
	}

	slog.Info("External command finished", "elapsed", elapsed)
	return string(out), nil
}

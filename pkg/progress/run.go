// pkg/progress/run.go - subprocess execution with a spinner and bounded timeout.

package progress

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// Run executes argv[0] with the remaining arguments, showing a spinner for the
// duration. A zero timeout means no limit. The subprocess inherits nothing
// from stdin; stdout and stderr are captured and folded into the returned
// error on failure.
func Run(ctx context.Context, description, cwd string, argv []string, timeout time.Duration) error {
	if len(argv) == 0 {
		return fmt.Errorf("empty command for %s", description)
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = cwd
	hideWindow(cmd)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	spinner := NewSpinner(description)
	err := cmd.Run()
	spinner.Stop()

	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("%s timed out after %s: %w", description, timeout, ctx.Err())
		}
		return fmt.Errorf("%s failed: %w | stderr: %s", description, err, stderr.String())
	}
	return nil
}

package toolchain

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/rocky-star/audiveris-packager/internal/logger"
)

// DefaultTimeout bounds a single external tool invocation.
// Packaging tools can be slow on large runtimes, so the bound is generous.
const DefaultTimeout = 15 * time.Minute

// Runner abstracts external native tools behind a narrow capability interface
// so the pipeline's orchestration logic is testable without real executables.
type Runner interface {
	// Run executes the tool with the provided arguments and returns its
	// captured standard output. A non-zero exit or launch failure is
	// returned as a *ToolError.
	Run(ctx context.Context, tool string, args ...string) (string, error)
}

// RunnerFunc adapts a plain function to the Runner interface, mirroring http.HandlerFunc.
type RunnerFunc func(ctx context.Context, tool string, args ...string) (string, error)

// Run calls the wrapped function.
func (f RunnerFunc) Run(ctx context.Context, tool string, args ...string) (string, error) {
	return f(ctx, tool, args...)
}

// ToolError reports a failed external tool invocation: the process exited
// non-zero, could not be launched, or overran its timeout.
type ToolError struct {
	// Tool is the executable name or path that was invoked.
	Tool string
	// Args are the arguments the tool was invoked with.
	Args []string
	// Output is the captured standard error of the failed invocation, trimmed.
	Output string
	// Err is the underlying launch or exit error.
	Err error
}

// Error renders the tool, its exit error and any captured diagnostics.
func (e *ToolError) Error() string {
	if e.Output == "" {
		return fmt.Sprintf("%s: %v", e.Tool, e.Err)
	}

	return fmt.Sprintf("%s: %v: %s", e.Tool, e.Err, e.Output)
}

// Unwrap exposes the underlying error for errors.Is/As chains.
func (e *ToolError) Unwrap() error {
	return e.Err
}

// ExecRunner runs tools as real child processes via os/exec.
type ExecRunner struct {
	// timeout bounds each invocation; zero disables the bound.
	timeout time.Duration
}

// NewExecRunner creates a runner with the provided per-invocation timeout.
// A non-positive timeout falls back to DefaultTimeout.
func NewExecRunner(timeout time.Duration) *ExecRunner {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &ExecRunner{timeout: timeout}
}

// Run executes the tool, capturing stdout and stderr separately.
func (r *ExecRunner) Run(ctx context.Context, tool string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	logger.DebugKV(ctx, "Running external tool", "tool", tool, "args", strings.Join(args, " "))

	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, tool, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return stdout.String(), &ToolError{
			Tool:   tool,
			Args:   args,
			Output: strings.TrimSpace(stderr.String()),
			Err:    err,
		}
	}

	return stdout.String(), nil
}

package toolkit

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// Result captures a finished command invocation.
type Result struct {
	ExitCode int
	Stderr   string
}

// Executor abstracts external command execution for testability. It carries no
// retry or business logic; callers own timeouts via the context.
type Executor interface {
	Run(ctx context.Context, binary string, args []string, dir string) (Result, error)
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string, dir string) (Result, error) {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	cmd.Dir = dir
	cmd.Stdout = io.Discard
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := Result{Stderr: stderrTail(stderr.String())}
	if err == nil {
		return result, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return result, ctxErr
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	}
	return result, fmt.Errorf("run %s: %w", binary, err)
}

// stderrTail keeps diagnostics bounded; tool stderr can run to megabytes of
// progress output.
func stderrTail(s string) string {
	s = strings.TrimSpace(s)
	const limit = 400
	if len(s) <= limit {
		return s
	}
	return "..." + s[len(s)-limit:]
}

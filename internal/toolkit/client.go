package toolkit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/retrypolicy"

	"seqfetch/internal/accession"
	"seqfetch/internal/logging"
	"seqfetch/internal/services"
)

// RetryPolicy parameterizes external tool invocation: attempts per step, the
// fixed delay between attempts, and the per-attempt timeout.
type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration
	Timeout     time.Duration
}

// DefaultRetryPolicy mirrors the documented SRA Toolkit invocation defaults.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, Delay: 5 * time.Second, Timeout: 300 * time.Second}
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// Client wraps prefetch and fasterq-dump invocations.
type Client struct {
	paths  Paths
	policy RetryPolicy
	exec   Executor
	logger *slog.Logger
}

// New constructs a toolkit client, verifying both executables up front.
func New(root string, policy RetryPolicy, logger *slog.Logger, opts ...Option) (*Client, error) {
	paths, err := Locate(root)
	if err != nil {
		return nil, err
	}
	if policy.MaxAttempts <= 0 {
		policy.MaxAttempts = 1
	}
	client := &Client{
		paths:  paths,
		policy: policy,
		exec:   commandExecutor{},
		logger: logging.NewComponentLogger(logger, "toolkit"),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Fetch downloads the run's archive into outDir via prefetch.
func (c *Client) Fetch(ctx context.Context, run accession.Run, outDir string) error {
	args := []string{string(run), "--output-directory", outDir, "--progress"}
	return c.runTool(ctx, c.paths.Prefetch, "prefetch", args, outDir, run)
}

// Decode converts the fetched archive into FASTQ via fasterq-dump.
func (c *Client) Decode(ctx context.Context, run accession.Run, outDir string, split bool) error {
	args := []string{string(run), "--outdir", outDir, "--progress"}
	if split {
		args = append(args, "--split-files")
	}
	return c.runTool(ctx, c.paths.Dump, "fasterq-dump", args, outDir, run)
}

func (c *Client) runTool(ctx context.Context, binary, tool string, args []string, dir string, run accession.Run) error {
	logger := c.logger.With(
		logging.String(logging.FieldRun, string(run)),
		logging.String("tool", tool))

	retry := retrypolicy.NewBuilder[any]().
		WithMaxAttempts(c.policy.MaxAttempts).
		WithDelay(c.policy.Delay).
		OnRetry(func(e failsafe.ExecutionEvent[any]) {
			logger.Warn("tool attempt failed, retrying",
				logging.Int("attempt", e.Attempts()),
				logging.Error(e.LastError()))
		}).
		Build()

	var attempted bool
	var attemptErr error
	err := failsafe.With[any](retry).WithContext(ctx).Run(func() error {
		attempted = true
		attemptErr = c.attempt(ctx, binary, tool, args, dir, run)
		return attemptErr
	})
	if err != nil && attempted && attemptErr == nil {
		// The caller was cancelled while the detached attempt was still
		// running and the tool finished cleanly. The work is done; report
		// success rather than the cancellation.
		logger.Info("tool finished during shutdown")
		return nil
	}
	if err != nil {
		logger.Debug("tool exhausted attempts", logging.Error(err))
	}
	return err
}

// attempt runs one invocation. The attempt context is detached from the
// caller's cancellation so an in-flight tool finishes (or times out) naturally
// on interrupt; the retry loop itself observes the caller's context.
func (c *Client) attempt(ctx context.Context, binary, tool string, args []string, dir string, run accession.Run) error {
	attemptCtx := context.WithoutCancel(ctx)
	if c.policy.Timeout > 0 {
		var cancel context.CancelFunc
		attemptCtx, cancel = context.WithTimeout(attemptCtx, c.policy.Timeout)
		defer cancel()
	}

	result, err := c.exec.Run(attemptCtx, binary, args, dir)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return services.Wrap(services.ErrTimeout, "toolkit", tool,
				fmt.Sprintf("%s exceeded %s", run, c.policy.Timeout), nil)
		}
		return services.Wrap(services.ErrExternalTool, "toolkit", tool, string(run), err)
	}
	if result.ExitCode != 0 {
		message := fmt.Sprintf("%s exited %d", run, result.ExitCode)
		if result.Stderr != "" {
			message += ": " + result.Stderr
		}
		return services.Wrap(services.ErrExternalTool, "toolkit", tool, message, nil)
	}
	return nil
}

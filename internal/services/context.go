package services

import "context"

type contextKey string

const (
	runKey       contextKey = "run"
	stepKey      contextKey = "step"
	sessionIDKey contextKey = "session_id"
)

// WithRun annotates context with the run accession being processed.
func WithRun(ctx context.Context, run string) context.Context {
	if run == "" {
		return ctx
	}
	return context.WithValue(ctx, runKey, run)
}

// RunFromContext returns the run accession if present.
func RunFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(runKey)
	if str, ok := v.(string); ok && str != "" {
		return str, true
	}
	return "", false
}

// WithStep annotates context with the pipeline step name (fetch/decode/cleanup).
func WithStep(ctx context.Context, step string) context.Context {
	if step == "" {
		return ctx
	}
	return context.WithValue(ctx, stepKey, step)
}

// StepFromContext returns the pipeline step name if present.
func StepFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(stepKey)
	if str, ok := v.(string); ok && str != "" {
		return str, true
	}
	return "", false
}

// WithSessionID annotates context with the download session identifier.
func WithSessionID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, sessionIDKey, id)
}

// SessionIDFromContext returns the download session identifier if present.
func SessionIDFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(sessionIDKey)
	if str, ok := v.(string); ok && str != "" {
		return str, true
	}
	return "", false
}

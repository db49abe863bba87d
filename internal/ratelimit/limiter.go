// Package ratelimit provides sliding-window admission control for complaint
// submissions, keyed by client IP. The window state lives in a pluggable
// store: in process memory for single-instance deployments, or Redis when the
// limit must be shared across instances.
package ratelimit

import "context"

// Limiter decides whether a submission from the given key is admitted within
// the configured window. Allow records the attempt when it is admitted.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

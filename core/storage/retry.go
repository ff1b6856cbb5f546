package storage

import (
	"context"
	"errors"
	"net/http"

	"github.com/cenkalti/backoff/v4"
	"github.com/minio/minio-go/v7"
)

// newBackOff builds an exponential backoff bounded by the configured error count.
func (r RetryConfig) newBackOff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.initialBackoff()
	b.MaxInterval = r.maxBackoff()
	b.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(r.MaxAttempts()-1)), ctx)
}

// retries reports whether an operation may be retried under the policy.
// Object writes and deletes without preconditions are not idempotent.
func (r RetryConfig) retries(idempotent bool) bool {
	switch r.Policy {
	case RetryNever:
		return false
	case RetryIdempotent:
		return idempotent
	default:
		return true
	}
}

// retryS3 runs op until it succeeds, fails permanently, or exhausts the
// tolerated error count. Operations the policy excludes run once.
func retryS3(ctx context.Context, r RetryConfig, idempotent bool, op func() error) error {
	if !r.retries(idempotent) {
		return op()
	}
	operation := func() error {
		err := op()
		if err != nil && !isRetryableS3(err) {
			return backoff.Permanent(err)
		}
		return err
	}
	return backoff.Retry(operation, r.newBackOff(ctx))
}

var retryableS3Codes = map[string]bool{
	"SlowDown":           true,
	"InternalError":      true,
	"RequestTimeout":     true,
	"ServiceUnavailable": true,
}

func isRetryableS3(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	resp := minio.ToErrorResponse(err)
	if resp.Code == "" && resp.StatusCode == 0 {
		// Not a service response: connection refused, reset, timeout.
		return true
	}
	if retryableS3Codes[resp.Code] {
		return true
	}
	return resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError
}

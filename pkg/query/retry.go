/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package query

import (
	"context"
	"time"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/retrypolicy"

	"sigs.k8s.io/controller-runtime/pkg/log"
)

// DefaultMaxRetries is the number of retries after the initial attempt.
const DefaultMaxRetries = 6

// RetryOptions configures Retry.
type RetryOptions struct {
	// MaxRetries is the number of retries after the first attempt.
	MaxRetries int

	// BaseDelay is the initial backoff delay.
	BaseDelay time.Duration

	// MaxDelay caps the exponential backoff.
	MaxDelay time.Duration

	// OnRetry is called before every retry.
	OnRetry func(ctx context.Context, attempt int, err error)
}

// DefaultRetryOptions returns six retries with exponential backoff.
func DefaultRetryOptions() RetryOptions {
	return RetryOptions{
		MaxRetries: DefaultMaxRetries,
		BaseDelay:  100 * time.Millisecond,
		MaxDelay:   5 * time.Second,
	}
}

func normalizeRetryOptions(options RetryOptions) RetryOptions {
	if options.MaxRetries < 0 {
		options.MaxRetries = 0
	}

	if options.BaseDelay <= 0 {
		options.BaseDelay = 100 * time.Millisecond
	}

	if options.MaxDelay <= 0 {
		options.MaxDelay = 5 * time.Second
	}

	if options.MaxDelay < options.BaseDelay {
		options.MaxDelay = options.BaseDelay
	}

	return options
}

type retryQuery struct {
	base    BaseQuery
	options RetryOptions
}

// Retry wraps a base query so that transient failures are retried.
func Retry(base BaseQuery, options RetryOptions) BaseQuery {
	return &retryQuery{
		base:    base,
		options: normalizeRetryOptions(options),
	}
}

// policy builds a retry policy, the retry count may be overridden per endpoint.
func (r *retryQuery) policy(ctx context.Context, maxRetries int) retrypolicy.RetryPolicy[*Result] {
	log := log.FromContext(ctx)

	return retrypolicy.NewBuilder[*Result]().
		HandleIf(func(_ *Result, err error) bool {
			return IsRetryable(err)
		}).
		WithMaxRetries(maxRetries).
		WithBackoff(r.options.BaseDelay, r.options.MaxDelay).
		WithJitterFactor(0.1).
		ReturnLastFailure().
		OnRetry(func(event failsafe.ExecutionEvent[*Result]) {
			log.V(1).Info("retrying request", "attempt", event.Attempts(), "maxRetries", maxRetries, "error", event.LastError())

			if r.options.OnRetry != nil {
				r.options.OnRetry(ctx, event.Attempts(), event.LastError())
			}
		}).
		Build()
}

func (r *retryQuery) Query(ctx context.Context, args *FetchArgs, extra *ExtraOptions) (*Result, error) {
	maxRetries := r.options.MaxRetries

	if extra != nil && extra.MaxRetries != nil {
		maxRetries = max(*extra.MaxRetries, 0)
	}

	executor := failsafe.With(r.policy(ctx, maxRetries)).WithContext(ctx)

	return executor.GetWithExecution(func(exec failsafe.Execution[*Result]) (*Result, error) {
		if attempt := exec.Attempts(); attempt > 1 && extra != nil && extra.Backoff != nil {
			if err := extra.Backoff(ctx, attempt-1, maxRetries); err != nil {
				return nil, Fail(err)
			}
		}

		return r.base.Query(ctx, args, extra)
	})
}

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

// Package querytest provides fault injection for exercising error paths.
package querytest

import (
	"context"
	"sync/atomic"

	"github.com/unikorn-cloud/posts/pkg/query"
)

type failFirst struct {
	base   query.BaseQuery
	err    error
	failed atomic.Bool
}

func (f *failFirst) Query(ctx context.Context, args *query.FetchArgs, extra *query.ExtraOptions) (*query.Result, error) {
	if f.failed.CompareAndSwap(false, true) {
		return nil, query.Fail(f.err)
	}

	return f.base.Query(ctx, args, extra)
}

// FailFirstAttempt returns middleware that fails the first request it sees
// with a non-retryable error, all later requests pass through.  Each
// application of the middleware has its own first attempt.
func FailFirstAttempt(err error) query.Middleware {
	return func(base query.BaseQuery) query.BaseQuery {
		return &failFirst{
			base: base,
			err:  err,
		}
	}
}

// Counter records how many requests passed through it.
type Counter struct {
	calls atomic.Int64
}

// Calls returns the number of requests seen.
func (c *Counter) Calls() int {
	return int(c.calls.Load())
}

// Middleware returns middleware that counts requests.
func (c *Counter) Middleware() query.Middleware {
	return func(base query.BaseQuery) query.BaseQuery {
		return query.BaseQueryFunc(func(ctx context.Context, args *query.FetchArgs, extra *query.ExtraOptions) (*query.Result, error) {
			c.calls.Add(1)

			return base.Query(ctx, args, extra)
		})
	}
}

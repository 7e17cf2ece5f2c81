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

//go:generate mockgen -source=interfaces.go -destination=mock/interfaces.go -package=mock

package query

import (
	"context"
	"net/http"
	"net/url"
)

// FetchArgs describes a single request relative to the base query's URL.
type FetchArgs struct {
	// URL is relative to the base URL e.g. "posts/1".
	URL string

	// Method defaults to GET.
	Method string

	// Params are encoded into the query string.
	Params url.Values

	// Body, if set, is JSON encoded.
	Body any

	// Headers are added to the request after PrepareHeaders has run.
	Headers http.Header
}

// Result is a successful raw response.
type Result struct {
	StatusCode int
	Header     http.Header
	Data       []byte
}

// ExtraOptions are passed through to the base query per endpoint.
type ExtraOptions struct {
	// MaxRetries overrides the retry count of a retrying base query.
	MaxRetries *int

	// Backoff is consulted before every retry, a non-nil error aborts
	// retrying and is returned to the caller.
	Backoff func(ctx context.Context, attempt, maxRetries int) error
}

// BaseQuery performs requests on behalf of every endpoint in an API.
type BaseQuery interface {
	Query(ctx context.Context, args *FetchArgs, extra *ExtraOptions) (*Result, error)
}

// BaseQueryFunc adapts a function to a BaseQuery.
type BaseQueryFunc func(ctx context.Context, args *FetchArgs, extra *ExtraOptions) (*Result, error)

func (f BaseQueryFunc) Query(ctx context.Context, args *FetchArgs, extra *ExtraOptions) (*Result, error) {
	return f(ctx, args, extra)
}

// Middleware decorates a base query for a single endpoint.
type Middleware func(BaseQuery) BaseQuery

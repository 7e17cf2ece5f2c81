/*
Copyright 2024-2025 the Unikorn Authors.
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
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"sigs.k8s.io/controller-runtime/pkg/log"
)

// PrepareHeadersFunc may modify the headers of every outgoing request.
type PrepareHeadersFunc func(ctx context.Context, headers http.Header) http.Header

// FetchBaseQueryOptions configures NewFetchBaseQuery.
type FetchBaseQueryOptions struct {
	// BaseURL is prepended to every relative URL, defaults to "/".
	BaseURL string

	// HTTPClient defaults to a client with a 30s timeout.
	HTTPClient *http.Client

	// PrepareHeaders is called before every request.
	PrepareHeaders PrepareHeadersFunc
}

type fetchBaseQuery struct {
	baseURL        string
	client         *http.Client
	prepareHeaders PrepareHeadersFunc
}

// NewFetchBaseQuery returns a base query that speaks JSON over HTTP.
func NewFetchBaseQuery(options FetchBaseQueryOptions) BaseQuery {
	q := &fetchBaseQuery{
		baseURL:        options.BaseURL,
		client:         options.HTTPClient,
		prepareHeaders: options.PrepareHeaders,
	}

	if q.baseURL == "" {
		q.baseURL = "/"
	}

	if q.client == nil {
		q.client = &http.Client{
			Timeout: 30 * time.Second,
		}
	}

	return q
}

// resolve joins a relative URL onto the base URL.
func (q *fetchBaseQuery) resolve(args *FetchArgs) string {
	u := args.URL

	if !strings.Contains(u, "://") {
		u = strings.TrimSuffix(q.baseURL, "/") + "/" + strings.TrimPrefix(u, "/")
	}

	if len(args.Params) != 0 {
		u += "?" + args.Params.Encode()
	}

	return u
}

// generateTraceID creates a new W3C trace ID.
func generateTraceID() string {
	bytes := make([]byte, 16)
	_, _ = rand.Read(bytes)

	return hex.EncodeToString(bytes)
}

// generateSpanID creates a new W3C span ID.
func generateSpanID() string {
	bytes := make([]byte, 8)
	_, _ = rand.Read(bytes)

	return hex.EncodeToString(bytes)
}

// createTraceParent creates a W3C traceparent header value, so a failed
// request can be found in the server's logs.
func createTraceParent() string {
	return fmt.Sprintf("00-%s-%s-01", generateTraceID(), generateSpanID())
}

func (q *fetchBaseQuery) Query(ctx context.Context, args *FetchArgs, _ *ExtraOptions) (*Result, error) {
	log := log.FromContext(ctx)

	method := args.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader

	if args.Body != nil {
		data, err := json.Marshal(args.Body)
		if err != nil {
			return nil, Fail(fmt.Errorf("marshaling request body: %w", err))
		}

		body = bytes.NewReader(data)
	}

	url := q.resolve(args)

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, Fail(fmt.Errorf("creating request: %w", err))
	}

	traceParent := createTraceParent()

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Traceparent", traceParent)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if q.prepareHeaders != nil {
		if headers := q.prepareHeaders(ctx, req.Header); headers != nil {
			req.Header = headers
		}
	}

	for k, v := range args.Headers {
		req.Header[k] = v
	}

	start := time.Now()
	resp, err := q.client.Do(req)
	duration := time.Since(start)

	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		log.V(1).Info("request failed", "method", method, "url", url, "duration", duration, "traceparent", traceParent, "error", err)

		return nil, &FetchError{Err: err}
	}

	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Err: fmt.Errorf("reading response body: %w", err)}
	}

	log.V(1).Info("request complete", "method", method, "url", url, "status", resp.StatusCode, "duration", duration, "traceparent", traceParent)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &HTTPError{
			StatusCode: resp.StatusCode,
			Data:       data,
		}
	}

	result := &Result{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Data:       data,
	}

	return result, nil
}

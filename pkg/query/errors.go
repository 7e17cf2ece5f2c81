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
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnknownTagType is raised when a tag's type was not declared by the API.
	ErrUnknownTagType = errors.New("unknown tag type")

	// ErrDuplicateEndpoint is raised when two endpoints share a name.
	ErrDuplicateEndpoint = errors.New("duplicate endpoint")

	// ErrInvalidEndpoint is raised when an endpoint definition is incomplete.
	ErrInvalidEndpoint = errors.New("invalid endpoint")
)

// HTTPError is returned when the server responds with a non-2xx status.
type HTTPError struct {
	StatusCode int
	Data       []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("unexpected status code %d: %s", e.StatusCode, string(e.Data))
}

// FetchError is returned when no response was received at all.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch failed: %v", e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// FailError marks an error as fatal, it will never be retried.
type FailError struct {
	Err error
}

func (e *FailError) Error() string {
	return e.Err.Error()
}

func (e *FailError) Unwrap() error {
	return e.Err
}

// Fail marks an error as fatal, breaking out of any retry loop.
func Fail(err error) error {
	return &FailError{
		Err: err,
	}
}

// IsFatal returns true if the error was marked with Fail.
func IsFatal(err error) bool {
	var target *FailError

	return errors.As(err, &target)
}

// IsHTTPStatus returns true if the error is an HTTPError with the given status.
func IsHTTPStatus(err error, status int) bool {
	var target *HTTPError
	if !errors.As(err, &target) {
		return false
	}

	return target.StatusCode == status
}

// IsRetryable decides whether an error is transient.  Transport failures,
// timeouts, rate limiting and server errors are, everything else, and
// anything marked with Fail, is not.
func IsRetryable(err error) bool {
	if err == nil || IsFatal(err) {
		return false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		return true
	}

	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		return false
	}

	switch httpErr.StatusCode {
	case http.StatusRequestTimeout, http.StatusTooManyRequests:
		return true
	}

	return httpErr.StatusCode >= http.StatusInternalServerError
}

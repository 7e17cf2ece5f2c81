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
	"slices"
)

// TagsFunc computes tags from an endpoint's result, error and argument.
// On error the result is the zero value.
type TagsFunc[A, R any] func(result R, err error, arg A) []Tag

// QueryDefinition declares a read endpoint.  Definitions are values, the
// With methods return modified copies and never alter the receiver.
type QueryDefinition[A, R any] struct {
	// Name uniquely identifies the endpoint within an API.
	Name string

	// Query builds the request for an argument.
	Query func(arg A) *FetchArgs

	// Provides lists the tags the cached result depends on.
	Provides TagsFunc[A, R]

	// ExtraOptions are passed to the base query.
	ExtraOptions *ExtraOptions

	// Middleware decorates the base query for this endpoint only.
	Middleware []Middleware
}

// WithProvides replaces the provided tags.
func (d QueryDefinition[A, R]) WithProvides(f TagsFunc[A, R]) QueryDefinition[A, R] {
	d.Provides = f

	return d
}

// WithExtraOptions replaces the extra options.
func (d QueryDefinition[A, R]) WithExtraOptions(options *ExtraOptions) QueryDefinition[A, R] {
	d.ExtraOptions = options

	return d
}

// WithMiddleware appends middleware, the last added runs outermost.
func (d QueryDefinition[A, R]) WithMiddleware(m ...Middleware) QueryDefinition[A, R] {
	d.Middleware = append(slices.Clone(d.Middleware), m...)

	return d
}

func (d *QueryDefinition[A, R]) provides(result R, err error, arg A) []Tag {
	if d.Provides == nil {
		return nil
	}

	return d.Provides(result, err, arg)
}

// MutationDefinition declares a write endpoint.
type MutationDefinition[A, R any] struct {
	// Name uniquely identifies the endpoint within an API.
	Name string

	// Query builds the request for an argument.
	Query func(arg A) *FetchArgs

	// Invalidates lists the tags made stale by the mutation.
	Invalidates TagsFunc[A, R]

	// ExtraOptions are passed to the base query.
	ExtraOptions *ExtraOptions

	// Middleware decorates the base query for this endpoint only.
	Middleware []Middleware
}

// WithInvalidates replaces the invalidated tags.
func (d MutationDefinition[A, R]) WithInvalidates(f TagsFunc[A, R]) MutationDefinition[A, R] {
	d.Invalidates = f

	return d
}

// WithExtraOptions replaces the extra options.
func (d MutationDefinition[A, R]) WithExtraOptions(options *ExtraOptions) MutationDefinition[A, R] {
	d.ExtraOptions = options

	return d
}

// WithMiddleware appends middleware, the last added runs outermost.
func (d MutationDefinition[A, R]) WithMiddleware(m ...Middleware) MutationDefinition[A, R] {
	d.Middleware = append(slices.Clone(d.Middleware), m...)

	return d
}

func (d *MutationDefinition[A, R]) invalidates(result R, err error, arg A) []Tag {
	if d.Invalidates == nil {
		return nil
	}

	return d.Invalidates(result, err, arg)
}

// chain applies endpoint middleware to a base query.
func chain(base BaseQuery, middleware []Middleware) BaseQuery {
	for _, m := range middleware {
		base = m(base)
	}

	return base
}

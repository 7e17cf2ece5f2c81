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
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"sigs.k8s.io/controller-runtime/pkg/log"
)

// execute runs a request through the endpoint's base query and decodes the
// response.  On error the zero result is returned.
func execute[R any](ctx context.Context, api *API, base BaseQuery, name string, args *FetchArgs, extra *ExtraOptions) (R, error) {
	var result R

	if args == nil {
		return result, fmt.Errorf("%w: %s built no request", ErrInvalidEndpoint, name)
	}

	log.FromContext(ctx).V(1).Info("executing endpoint", "api", api.reducerPath, "endpoint", name, "method", args.Method, "url", args.URL)

	res, err := base.Query(ctx, args, extra)
	if err != nil {
		return result, fmt.Errorf("%s: %w", name, err)
	}

	if res == nil || len(bytes.TrimSpace(res.Data)) == 0 {
		return result, nil
	}

	var decoded R

	if err := json.Unmarshal(res.Data, &decoded); err != nil {
		return result, fmt.Errorf("%s: decoding response: %w", name, err)
	}

	return decoded, nil
}

// Query is a registered read endpoint.
type Query[A, R any] struct {
	api        *API
	base       BaseQuery
	definition QueryDefinition[A, R]
}

// DefineQuery registers a query endpoint with an API.
func DefineQuery[A, R any](api *API, definition QueryDefinition[A, R]) (*Query[A, R], error) {
	if definition.Query == nil {
		return nil, fmt.Errorf("%w: %s has no query", ErrInvalidEndpoint, definition.Name)
	}

	if err := api.register(definition.Name); err != nil {
		return nil, err
	}

	q := &Query[A, R]{
		api:        api,
		base:       chain(api.baseQuery, definition.Middleware),
		definition: definition,
	}

	return q, nil
}

// Name returns the endpoint name.
func (q *Query[A, R]) Name() string {
	return q.definition.Name
}

// Definition returns a copy of the endpoint definition.
func (q *Query[A, R]) Definition() QueryDefinition[A, R] {
	return q.definition
}

// Do returns the cached result if it is fresh, otherwise fetches it.
// Concurrent calls with equal arguments share a single request.
func (q *Query[A, R]) Do(ctx context.Context, arg A) (R, error) {
	key, err := cacheKey(q.definition.Name, arg)
	if err != nil {
		var zero R

		return zero, err
	}

	if value, ok := q.api.lookup(key); ok {
		q.api.hooks.hit(q.definition.Name)

		log.FromContext(ctx).V(1).Info("cache hit", "api", q.api.reducerPath, "key", key)

		//nolint:forcetypeassert
		return value.(R), nil
	}

	q.api.hooks.miss(q.definition.Name)

	return q.fetch(ctx, key, arg)
}

// Refetch ignores the cache and always performs a request.
func (q *Query[A, R]) Refetch(ctx context.Context, arg A) (R, error) {
	key, err := cacheKey(q.definition.Name, arg)
	if err != nil {
		var zero R

		return zero, err
	}

	q.api.hooks.miss(q.definition.Name)

	return q.fetch(ctx, key, arg)
}

// Select returns the cached result and its state without fetching.
func (q *Query[A, R]) Select(arg A) (R, State, error) {
	var result R

	key, err := cacheKey(q.definition.Name, arg)
	if err != nil {
		return result, State{}, err
	}

	value, state := q.api.state(key)

	if typed, ok := value.(R); ok {
		result = typed
	}

	return result, state, nil
}

// Subscribe registers interest in an argument's cache entry, keeping it
// alive and receiving invalidation notifications.
func (q *Query[A, R]) Subscribe(arg A) (*Subscription, error) {
	key, err := cacheKey(q.definition.Name, arg)
	if err != nil {
		return nil, err
	}

	return q.api.subscribe(q.definition.Name, key), nil
}

// fetch performs a request shared by every concurrent caller of the key.  The
// request outlives a cancelled caller, each caller only waits on its own
// context.
func (q *Query[A, R]) fetch(ctx context.Context, key string, arg A) (R, error) {
	var zero R

	flight := q.api.flights.DoChan(key, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), q.api.fetchTimeout)
		defer cancel()

		generation := q.api.begin()

		result, err := execute[R](fetchCtx, q.api, q.base, q.definition.Name, q.definition.Query(arg), q.definition.ExtraOptions)

		tags := q.definition.provides(result, err, arg)

		if tagErr := q.api.validateTags(tags); tagErr != nil {
			q.api.abort()

			return nil, fmt.Errorf("%s: %w", q.definition.Name, tagErr)
		}

		q.api.store(q.definition.Name, key, result, err, tags, generation)

		if err != nil {
			return nil, err
		}

		return result, nil
	})

	select {
	case <-ctx.Done():
		err := fmt.Errorf("%s: %w", q.definition.Name, ctx.Err())

		q.api.hooks.error(q.definition.Name, err)

		return zero, err
	case res := <-flight:
		if res.Shared {
			log.FromContext(ctx).V(1).Info("shared in-flight request", "api", q.api.reducerPath, "key", key)
		}

		if res.Err != nil {
			q.api.hooks.error(q.definition.Name, res.Err)

			return zero, res.Err
		}

		//nolint:forcetypeassert
		return res.Val.(R), nil
	}
}

// Mutation is a registered write endpoint.
type Mutation[A, R any] struct {
	api        *API
	base       BaseQuery
	definition MutationDefinition[A, R]
}

// DefineMutation registers a mutation endpoint with an API.
func DefineMutation[A, R any](api *API, definition MutationDefinition[A, R]) (*Mutation[A, R], error) {
	if definition.Query == nil {
		return nil, fmt.Errorf("%w: %s has no query", ErrInvalidEndpoint, definition.Name)
	}

	if err := api.register(definition.Name); err != nil {
		return nil, err
	}

	m := &Mutation[A, R]{
		api:        api,
		base:       chain(api.baseQuery, definition.Middleware),
		definition: definition,
	}

	return m, nil
}

// Name returns the endpoint name.
func (m *Mutation[A, R]) Name() string {
	return m.definition.Name
}

// Definition returns a copy of the endpoint definition.
func (m *Mutation[A, R]) Definition() MutationDefinition[A, R] {
	return m.definition
}

// Do performs the mutation then invalidates its tags, whether or not the
// mutation succeeded.
func (m *Mutation[A, R]) Do(ctx context.Context, arg A) (R, error) {
	result, err := execute[R](ctx, m.api, m.base, m.definition.Name, m.definition.Query(arg), m.definition.ExtraOptions)

	if invalidateErr := m.api.InvalidateTags(ctx, m.definition.invalidates(result, err, arg)...); invalidateErr != nil && err == nil {
		err = fmt.Errorf("%s: %w", m.definition.Name, invalidateErr)
	}

	if err != nil {
		m.api.hooks.error(m.definition.Name, err)

		return result, err
	}

	return result, nil
}

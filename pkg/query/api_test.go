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

package query_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/unikorn-cloud/posts/pkg/query"
	"github.com/unikorn-cloud/posts/pkg/query/mock"
	"github.com/unikorn-cloud/posts/pkg/query/querytest"
)

type item struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func jsonResult(t *testing.T, v any) *query.Result {
	t.Helper()

	data, err := json.Marshal(v)
	require.NoError(t, err)

	return &query.Result{
		StatusCode: http.StatusOK,
		Data:       data,
	}
}

func newAPI(t *testing.T, base query.BaseQuery, hooks query.Hooks) *query.API {
	t.Helper()

	api, err := query.New(query.Options{
		ReducerPath: "testApi",
		BaseQuery:   base,
		TagTypes:    []query.TagType{tagPosts},
		Hooks:       hooks,
	})
	require.NoError(t, err)

	return api
}

func listDefinition() query.QueryDefinition[struct{}, []item] {
	return query.QueryDefinition[struct{}, []item]{
		Name: "getItems",
		Query: func(struct{}) *query.FetchArgs {
			return &query.FetchArgs{URL: "items"}
		},
		Provides: func(result []item, _ error, _ struct{}) []query.Tag {
			tags := []query.Tag{query.NewTag(tagPosts, query.ListID)}

			for _, i := range result {
				tags = append(tags, query.NewTag(tagPosts, query.ID(i.ID)))
			}

			return tags
		},
	}
}

func getDefinition() query.QueryDefinition[int64, item] {
	return query.QueryDefinition[int64, item]{
		Name: "getItem",
		Query: func(id int64) *query.FetchArgs {
			return &query.FetchArgs{URL: fmt.Sprintf("items/%d", id)}
		},
		Provides: func(_ item, _ error, id int64) []query.Tag {
			return []query.Tag{query.NewTag(tagPosts, query.ID(id))}
		},
	}
}

func addDefinition() query.MutationDefinition[item, item] {
	return query.MutationDefinition[item, item]{
		Name: "addItem",
		Query: func(i item) *query.FetchArgs {
			return &query.FetchArgs{URL: "items", Method: http.MethodPost, Body: i}
		},
		Invalidates: func(item, error, item) []query.Tag {
			return []query.Tag{query.NewTag(tagPosts, query.ListID)}
		},
	}
}

func TestNewRequiresBaseQuery(t *testing.T) {
	t.Parallel()

	_, err := query.New(query.Options{})
	require.ErrorIs(t, err, query.ErrMissingBaseQuery)
}

func TestDuplicateEndpoint(t *testing.T) {
	t.Parallel()

	api := newAPI(t, mock.NewMockBaseQuery(gomock.NewController(t)), query.Hooks{})

	_, err := query.DefineQuery(api, getDefinition())
	require.NoError(t, err)

	_, err = query.DefineQuery(api, getDefinition())
	require.ErrorIs(t, err, query.ErrDuplicateEndpoint)

	_, err = query.DefineQuery(api, query.QueryDefinition[int64, item]{Name: "noQuery"})
	require.ErrorIs(t, err, query.ErrInvalidEndpoint)

	require.Equal(t, []string{"getItem"}, api.Endpoints())
}

func TestQueryCached(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	ctrl := gomock.NewController(t)

	var hits, misses int

	base := mock.NewMockBaseQuery(ctrl)
	base.EXPECT().Query(gomock.Any(), gomock.Any(), gomock.Any()).Return(jsonResult(t, item{ID: 1, Name: "a"}), nil).Times(1)

	api := newAPI(t, base, query.Hooks{
		OnHit:  func(string) { hits++ },
		OnMiss: func(string) { misses++ },
	})

	get, err := query.DefineQuery(api, getDefinition())
	require.NoError(t, err)

	first, err := get.Do(ctx, 1)
	require.NoError(t, err)

	second, err := get.Do(ctx, 1)
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.Equal(t, 1, hits)
	require.Equal(t, 1, misses)

	result, state, err := get.Select(1)
	require.NoError(t, err)
	require.Equal(t, first, result)
	require.Equal(t, query.StatusFulfilled, state.Status)
	require.False(t, state.Stale)
	require.Equal(t, []query.Tag{query.NewTag(tagPosts, query.ID(1))}, state.Tags)
}

func TestQueryDistinctArguments(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	ctrl := gomock.NewController(t)

	base := mock.NewMockBaseQuery(ctrl)
	base.EXPECT().Query(gomock.Any(), &query.FetchArgs{URL: "items/1"}, gomock.Nil()).Return(jsonResult(t, item{ID: 1}), nil)
	base.EXPECT().Query(gomock.Any(), &query.FetchArgs{URL: "items/2"}, gomock.Nil()).Return(jsonResult(t, item{ID: 2}), nil)

	get, err := query.DefineQuery(newAPI(t, base, query.Hooks{}), getDefinition())
	require.NoError(t, err)

	a, err := get.Do(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, int64(1), a.ID)

	b, err := get.Do(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, int64(2), b.ID)
}

func TestMutationInvalidatesList(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	ctrl := gomock.NewController(t)

	base := mock.NewMockBaseQuery(ctrl)

	gomock.InOrder(
		base.EXPECT().Query(gomock.Any(), &query.FetchArgs{URL: "items"}, gomock.Nil()).Return(jsonResult(t, []item{{ID: 1}}), nil),
		base.EXPECT().Query(gomock.Any(), gomock.Any(), gomock.Nil()).Return(jsonResult(t, item{ID: 2}), nil),
		base.EXPECT().Query(gomock.Any(), &query.FetchArgs{URL: "items"}, gomock.Nil()).Return(jsonResult(t, []item{{ID: 1}, {ID: 2}}), nil),
	)

	var invalidated []string

	api := newAPI(t, base, query.Hooks{
		OnInvalidate: func(endpoint string) { invalidated = append(invalidated, endpoint) },
	})

	list, err := query.DefineQuery(api, listDefinition())
	require.NoError(t, err)

	add, err := query.DefineMutation(api, addDefinition())
	require.NoError(t, err)

	subscription, err := list.Subscribe(struct{}{})
	require.NoError(t, err)

	defer subscription.Unsubscribe()

	items, err := list.Do(ctx, struct{}{})
	require.NoError(t, err)
	require.Len(t, items, 1)

	_, err = add.Do(ctx, item{Name: "b"})
	require.NoError(t, err)

	select {
	case <-subscription.C:
	default:
		t.Fatal("subscriber not notified")
	}

	_, state, err := list.Select(struct{}{})
	require.NoError(t, err)
	require.True(t, state.Stale)
	require.Equal(t, []string{"getItems"}, invalidated)

	items, err = list.Do(ctx, struct{}{})
	require.NoError(t, err)
	require.Len(t, items, 2)
}

func TestMutationInvalidatesOnError(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	ctrl := gomock.NewController(t)

	base := mock.NewMockBaseQuery(ctrl)

	gomock.InOrder(
		base.EXPECT().Query(gomock.Any(), gomock.Any(), gomock.Nil()).Return(jsonResult(t, []item{}), nil),
		base.EXPECT().Query(gomock.Any(), gomock.Any(), gomock.Nil()).Return(nil, &query.HTTPError{StatusCode: http.StatusConflict}),
	)

	api := newAPI(t, base, query.Hooks{})

	list, err := query.DefineQuery(api, listDefinition())
	require.NoError(t, err)

	add, err := query.DefineMutation(api, addDefinition())
	require.NoError(t, err)

	_, err = list.Do(ctx, struct{}{})
	require.NoError(t, err)

	_, err = add.Do(ctx, item{})
	require.True(t, query.IsHTTPStatus(err, http.StatusConflict))

	_, state, err := list.Select(struct{}{})
	require.NoError(t, err)
	require.True(t, state.Stale)
}

func TestEntityInvalidationLeavesOthers(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	ctrl := gomock.NewController(t)

	base := mock.NewMockBaseQuery(ctrl)
	base.EXPECT().Query(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, args *query.FetchArgs, _ *query.ExtraOptions) (*query.Result, error) {
		return jsonResult(t, item{Name: args.URL}), nil
	}).Times(2)

	api := newAPI(t, base, query.Hooks{})

	get, err := query.DefineQuery(api, getDefinition())
	require.NoError(t, err)

	_, err = get.Do(ctx, 1)
	require.NoError(t, err)

	_, err = get.Do(ctx, 2)
	require.NoError(t, err)

	require.NoError(t, api.InvalidateTags(ctx, query.NewTag(tagPosts, query.ID(1))))

	_, state, err := get.Select(1)
	require.NoError(t, err)
	require.True(t, state.Stale)

	_, state, err = get.Select(2)
	require.NoError(t, err)
	require.False(t, state.Stale)
}

func TestUnknownTagType(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	ctrl := gomock.NewController(t)

	base := mock.NewMockBaseQuery(ctrl)
	base.EXPECT().Query(gomock.Any(), gomock.Any(), gomock.Any()).Return(jsonResult(t, item{}), nil)

	api := newAPI(t, base, query.Hooks{})

	require.ErrorIs(t, api.InvalidateTags(ctx, query.NewTag(tagPet, query.ListID)), query.ErrUnknownTagType)

	get, err := query.DefineQuery(api, getDefinition().WithProvides(func(item, error, int64) []query.Tag {
		return []query.Tag{query.NewTag(tagPet, query.ListID)}
	}))
	require.NoError(t, err)

	// Registration succeeds, the undeclared type is caught when tags are
	// produced and nothing is cached.
	_, err = get.Do(ctx, 1)
	require.ErrorIs(t, err, query.ErrUnknownTagType)

	_, state, err := get.Select(1)
	require.NoError(t, err)
	require.Equal(t, query.StatusUninitialized, state.Status)
}

func TestQueryErrorNotCached(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	ctrl := gomock.NewController(t)

	var errs int

	base := mock.NewMockBaseQuery(ctrl)

	gomock.InOrder(
		base.EXPECT().Query(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, &query.HTTPError{StatusCode: http.StatusNotFound}),
		base.EXPECT().Query(gomock.Any(), gomock.Any(), gomock.Any()).Return(jsonResult(t, item{ID: 1}), nil),
	)

	get, err := query.DefineQuery(newAPI(t, base, query.Hooks{
		OnError: func(string, error) { errs++ },
	}), getDefinition())
	require.NoError(t, err)

	_, err = get.Do(ctx, 1)
	require.Error(t, err)
	require.Equal(t, 1, errs)

	_, state, err := get.Select(1)
	require.NoError(t, err)
	require.Equal(t, query.StatusRejected, state.Status)
	require.Error(t, state.Error)

	result, err := get.Do(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, int64(1), result.ID)
}

func TestRefetchBypassesCache(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	ctrl := gomock.NewController(t)

	base := mock.NewMockBaseQuery(ctrl)
	base.EXPECT().Query(gomock.Any(), gomock.Any(), gomock.Any()).Return(jsonResult(t, item{ID: 1}), nil).Times(2)

	get, err := query.DefineQuery(newAPI(t, base, query.Hooks{}), getDefinition())
	require.NoError(t, err)

	_, err = get.Do(ctx, 1)
	require.NoError(t, err)

	_, err = get.Refetch(ctx, 1)
	require.NoError(t, err)
}

func TestResetAPIState(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	ctrl := gomock.NewController(t)

	base := mock.NewMockBaseQuery(ctrl)
	base.EXPECT().Query(gomock.Any(), gomock.Any(), gomock.Any()).Return(jsonResult(t, item{ID: 1}), nil).Times(2)

	api := newAPI(t, base, query.Hooks{})

	get, err := query.DefineQuery(api, getDefinition())
	require.NoError(t, err)

	_, err = get.Do(ctx, 1)
	require.NoError(t, err)

	api.ResetAPIState()

	_, state, err := get.Select(1)
	require.NoError(t, err)
	require.Equal(t, query.StatusUninitialized, state.Status)

	_, err = get.Do(ctx, 1)
	require.NoError(t, err)
}

func TestKeepUnusedDataFor(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	ctrl := gomock.NewController(t)

	base := mock.NewMockBaseQuery(ctrl)
	base.EXPECT().Query(gomock.Any(), gomock.Any(), gomock.Any()).Return(jsonResult(t, item{ID: 1}), nil).Times(2)

	api, err := query.New(query.Options{
		BaseQuery:         base,
		TagTypes:          []query.TagType{tagPosts},
		KeepUnusedDataFor: 10 * time.Millisecond,
	})
	require.NoError(t, err)

	get, err := query.DefineQuery(api, getDefinition())
	require.NoError(t, err)

	_, err = get.Do(ctx, 1)
	require.NoError(t, err)

	time.Sleep(20 * time.Millisecond)

	_, err = get.Do(ctx, 1)
	require.NoError(t, err)
}

func TestSubscriptionKeepsEntry(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	ctrl := gomock.NewController(t)

	base := mock.NewMockBaseQuery(ctrl)
	base.EXPECT().Query(gomock.Any(), gomock.Any(), gomock.Any()).Return(jsonResult(t, item{ID: 1}), nil).Times(1)

	api, err := query.New(query.Options{
		BaseQuery:         base,
		TagTypes:          []query.TagType{tagPosts},
		KeepUnusedDataFor: 10 * time.Millisecond,
	})
	require.NoError(t, err)

	get, err := query.DefineQuery(api, getDefinition())
	require.NoError(t, err)

	subscription, err := get.Subscribe(1)
	require.NoError(t, err)

	defer subscription.Unsubscribe()

	_, err = get.Do(ctx, 1)
	require.NoError(t, err)

	time.Sleep(20 * time.Millisecond)

	_, err = get.Do(ctx, 1)
	require.NoError(t, err)

	_, state, err := get.Select(1)
	require.NoError(t, err)
	require.Equal(t, 1, state.Subscribers)
}

func TestConcurrentQueriesShareRequest(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	ctrl := gomock.NewController(t)

	release := make(chan struct{})

	base := mock.NewMockBaseQuery(ctrl)
	base.EXPECT().Query(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(context.Context, *query.FetchArgs, *query.ExtraOptions) (*query.Result, error) {
		<-release

		return jsonResult(t, item{ID: 1}), nil
	}).Times(1)

	get, err := query.DefineQuery(newAPI(t, base, query.Hooks{}), getDefinition())
	require.NoError(t, err)

	const callers = 8

	var wg sync.WaitGroup

	results := make([]item, callers)
	errs := make([]error, callers)

	for i := range callers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			results[i], errs[i] = get.Do(ctx, 1)
		}()
	}

	time.Sleep(20 * time.Millisecond)
	close(release)

	wg.Wait()

	for i := range callers {
		require.NoError(t, errs[i])
		require.Equal(t, int64(1), results[i].ID)
	}
}

func TestFailFirstAttempt(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	ctrl := gomock.NewController(t)

	base := mock.NewMockBaseQuery(ctrl)
	base.EXPECT().Query(gomock.Any(), gomock.Any(), gomock.Any()).Return(jsonResult(t, item{ID: 1}), nil).Times(1)

	counter := &querytest.Counter{}

	add, err := query.DefineMutation(newAPI(t, base, query.Hooks{}), addDefinition().WithMiddleware(counter.Middleware(), querytest.FailFirstAttempt(errTest)))
	require.NoError(t, err)

	_, err = add.Do(ctx, item{})
	require.ErrorIs(t, err, errTest)
	require.True(t, query.IsFatal(err))
	require.Equal(t, 0, counter.Calls())

	_, err = add.Do(ctx, item{})
	require.NoError(t, err)
	require.Equal(t, 1, counter.Calls())
}

func TestDefinitionsAreValues(t *testing.T) {
	t.Parallel()

	base := getDefinition()
	extended := base.WithMiddleware(querytest.FailFirstAttempt(errTest)).WithExtraOptions(&query.ExtraOptions{})

	require.Empty(t, base.Middleware)
	require.Nil(t, base.ExtraOptions)
	require.Len(t, extended.Middleware, 1)
	require.NotNil(t, extended.ExtraOptions)
}

func TestInvalidationDuringFetch(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	ctrl := gomock.NewController(t)

	started := make(chan struct{})
	release := make(chan struct{})

	base := mock.NewMockBaseQuery(ctrl)

	gomock.InOrder(
		base.EXPECT().Query(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(context.Context, *query.FetchArgs, *query.ExtraOptions) (*query.Result, error) {
			close(started)
			<-release

			return jsonResult(t, []item{{ID: 1, Name: "old"}}), nil
		}),
		base.EXPECT().Query(gomock.Any(), gomock.Any(), gomock.Any()).Return(jsonResult(t, item{ID: 2, Name: "new"}), nil),
		base.EXPECT().Query(gomock.Any(), gomock.Any(), gomock.Any()).Return(jsonResult(t, []item{{ID: 1, Name: "old"}, {ID: 2, Name: "new"}}), nil),
	)

	api := newAPI(t, base, query.Hooks{})

	list, err := query.DefineQuery(api, listDefinition())
	require.NoError(t, err)

	add, err := query.DefineMutation(api, addDefinition())
	require.NoError(t, err)

	done := make(chan error, 1)

	go func() {
		_, err := list.Do(ctx, struct{}{})
		done <- err
	}()

	<-started

	_, err = add.Do(ctx, item{Name: "new"})
	require.NoError(t, err)

	close(release)
	require.NoError(t, <-done)

	// The response predates the mutation so must not be served.
	_, state, err := list.Select(struct{}{})
	require.NoError(t, err)
	require.Equal(t, query.StatusFulfilled, state.Status)
	require.True(t, state.Stale)

	items, err := list.Do(ctx, struct{}{})
	require.NoError(t, err)
	require.Len(t, items, 2)
}

func TestUnrelatedInvalidationDuringFetch(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	ctrl := gomock.NewController(t)

	started := make(chan struct{})
	release := make(chan struct{})

	base := mock.NewMockBaseQuery(ctrl)
	base.EXPECT().Query(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(context.Context, *query.FetchArgs, *query.ExtraOptions) (*query.Result, error) {
		close(started)
		<-release

		return jsonResult(t, item{ID: 1}), nil
	}).Times(1)

	api := newAPI(t, base, query.Hooks{})

	get, err := query.DefineQuery(api, getDefinition())
	require.NoError(t, err)

	done := make(chan error, 1)

	go func() {
		_, err := get.Do(ctx, 1)
		done <- err
	}()

	<-started

	require.NoError(t, api.InvalidateTags(ctx, query.NewTag(tagPosts, query.ID(2))))

	close(release)
	require.NoError(t, <-done)

	_, state, err := get.Select(1)
	require.NoError(t, err)
	require.False(t, state.Stale)

	_, err = get.Do(ctx, 1)
	require.NoError(t, err)
}

func TestCancelledCallerLeavesSharedRequest(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)

	started := make(chan struct{})
	release := make(chan struct{})

	base := mock.NewMockBaseQuery(ctrl)
	base.EXPECT().Query(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, _ *query.FetchArgs, _ *query.ExtraOptions) (*query.Result, error) {
		close(started)

		select {
		case <-release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}

		return jsonResult(t, item{ID: 1}), nil
	}).Times(1)

	var errs int

	get, err := query.DefineQuery(newAPI(t, base, query.Hooks{
		OnError: func(string, error) { errs++ },
	}), getDefinition())
	require.NoError(t, err)

	first, cancel := context.WithCancel(t.Context())

	firstDone := make(chan error, 1)

	go func() {
		_, err := get.Do(first, 1)
		firstDone <- err
	}()

	<-started

	type outcome struct {
		result item
		err    error
	}

	secondDone := make(chan outcome, 1)

	go func() {
		result, err := get.Do(context.Background(), 1)
		secondDone <- outcome{result: result, err: err}
	}()

	cancel()
	require.ErrorIs(t, <-firstDone, context.Canceled)

	close(release)

	second := <-secondDone
	require.NoError(t, second.err)
	require.Equal(t, int64(1), second.result.ID)
	require.Equal(t, 1, errs)
}

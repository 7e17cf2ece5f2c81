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
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/spjmurray/go-util/pkg/set"
	"golang.org/x/sync/singleflight"

	"sigs.k8s.io/controller-runtime/pkg/log"
)

const (
	// DefaultKeepUnusedDataFor is how long an entry without subscribers is kept.
	DefaultKeepUnusedDataFor = 60 * time.Second

	// DefaultFetchTimeout bounds a shared request once its callers have gone.
	DefaultFetchTimeout = 2 * time.Minute
)

// ErrMissingBaseQuery is raised when an API is created without transport.
var ErrMissingBaseQuery = errors.New("base query must be specified")

// Status is the lifecycle state of a cache entry.
type Status int

const (
	StatusUninitialized Status = iota
	StatusFulfilled
	StatusRejected
)

func (s Status) String() string {
	switch s {
	case StatusFulfilled:
		return "fulfilled"
	case StatusRejected:
		return "rejected"
	case StatusUninitialized:
	}

	return "uninitialized"
}

// State describes a cache entry without exposing it.
type State struct {
	Status      Status
	Stale       bool
	Error       error
	Tags        []Tag
	FulfilledAt time.Time
	Subscribers int
}

// Hooks are called on cache events, typically to record metrics.
type Hooks struct {
	OnHit        func(endpoint string)
	OnMiss       func(endpoint string)
	OnInvalidate func(endpoint string)
	OnError      func(endpoint string, err error)
}

func (h *Hooks) hit(endpoint string) {
	if h.OnHit != nil {
		h.OnHit(endpoint)
	}
}

func (h *Hooks) miss(endpoint string) {
	if h.OnMiss != nil {
		h.OnMiss(endpoint)
	}
}

func (h *Hooks) invalidate(endpoint string) {
	if h.OnInvalidate != nil {
		h.OnInvalidate(endpoint)
	}
}

func (h *Hooks) error(endpoint string, err error) {
	if h.OnError != nil {
		h.OnError(endpoint, err)
	}
}

// Options configure an API.
type Options struct {
	// ReducerPath names the API, it prefixes log lines and metrics.
	ReducerPath string

	// BaseQuery performs every request.
	BaseQuery BaseQuery

	// TagTypes is the closed set of tag types endpoints may use.
	TagTypes []TagType

	// KeepUnusedDataFor defaults to DefaultKeepUnusedDataFor.
	KeepUnusedDataFor time.Duration

	// FetchTimeout defaults to DefaultFetchTimeout.
	FetchTimeout time.Duration

	// Hooks are optional event callbacks.
	Hooks Hooks
}

type entry struct {
	endpoint    string
	value       any
	err         error
	tags        []Tag
	status      Status
	stale       bool
	fulfilledAt time.Time
	lastUsed    time.Time
	subscribers map[*Subscription]struct{}
}

// invalidation is a set of tags invalidated while fetches were in flight.
type invalidation struct {
	generation uint64
	tags       []Tag
}

// API owns a set of endpoints and the cache they share.
type API struct {
	reducerPath       string
	baseQuery         BaseQuery
	tagTypes          []TagType
	knownTagTypes     set.Set[TagType]
	keepUnusedDataFor time.Duration
	fetchTimeout      time.Duration
	hooks             Hooks

	lock      sync.Mutex
	endpoints map[string]struct{}
	entries   map[string]*entry
	flights   singleflight.Group

	// generation counts invalidations, invalidations made while any fetch
	// is in flight are kept until the last one completes.
	generation    uint64
	inflight      int
	invalidations []invalidation
}

// New creates an API with no endpoints.
func New(options Options) (*API, error) {
	if options.BaseQuery == nil {
		return nil, ErrMissingBaseQuery
	}

	keepUnusedDataFor := options.KeepUnusedDataFor
	if keepUnusedDataFor <= 0 {
		keepUnusedDataFor = DefaultKeepUnusedDataFor
	}

	fetchTimeout := options.FetchTimeout
	if fetchTimeout <= 0 {
		fetchTimeout = DefaultFetchTimeout
	}

	api := &API{
		reducerPath:       options.ReducerPath,
		baseQuery:         options.BaseQuery,
		tagTypes:          slices.Clone(options.TagTypes),
		knownTagTypes:     set.New[TagType](options.TagTypes...),
		keepUnusedDataFor: keepUnusedDataFor,
		fetchTimeout:      fetchTimeout,
		hooks:             options.Hooks,
		endpoints:         map[string]struct{}{},
		entries:           map[string]*entry{},
	}

	return api, nil
}

// ReducerPath returns the API's name.
func (a *API) ReducerPath() string {
	return a.reducerPath
}

// TagTypes returns the declared tag types.
func (a *API) TagTypes() []TagType {
	return slices.Clone(a.tagTypes)
}

// Endpoints returns the sorted names of all registered endpoints.
func (a *API) Endpoints() []string {
	a.lock.Lock()
	defer a.lock.Unlock()

	names := make([]string, 0, len(a.endpoints))

	for name := range a.endpoints {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

func (a *API) register(name string) error {
	if name == "" {
		return fmt.Errorf("%w: endpoint has no name", ErrInvalidEndpoint)
	}

	a.lock.Lock()
	defer a.lock.Unlock()

	if _, ok := a.endpoints[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateEndpoint, name)
	}

	a.endpoints[name] = struct{}{}

	return nil
}

// validateTags ensures all tags are of a declared type.
func (a *API) validateTags(tags []Tag) error {
	for t := range tagTypes(tags).Difference(a.knownTagTypes).All() {
		return fmt.Errorf("%w: %s", ErrUnknownTagType, t)
	}

	return nil
}

// cacheKey serializes an endpoint call, arguments are canonicalized by
// encoding/json so equal arguments yield equal keys.
func cacheKey(endpoint string, arg any) (string, error) {
	data, err := json.Marshal(arg)
	if err != nil {
		return "", fmt.Errorf("serializing query arguments: %w", err)
	}

	return endpoint + "(" + string(data) + ")", nil
}

func (a *API) expired(e *entry, now time.Time) bool {
	return len(e.subscribers) == 0 && now.Sub(e.lastUsed) > a.keepUnusedDataFor
}

// collect drops unused entries, called with the lock held.
func (a *API) collect(now time.Time) {
	for key, e := range a.entries {
		if a.expired(e, now) {
			delete(a.entries, key)
		}
	}
}

// lookup returns a cached value if it is fulfilled and not stale.
func (a *API) lookup(key string) (any, bool) {
	a.lock.Lock()
	defer a.lock.Unlock()

	now := time.Now()

	e, ok := a.entries[key]
	if !ok || e.status != StatusFulfilled || e.stale || a.expired(e, now) {
		return nil, false
	}

	e.lastUsed = now

	return e.value, true
}

// begin marks the start of a fetch and returns the invalidation generation
// it observed.  Every begin is paired with a store or an end.
func (a *API) begin() uint64 {
	a.lock.Lock()
	defer a.lock.Unlock()

	a.inflight++

	return a.generation
}

// end marks the completion of a fetch, called with the lock held.
func (a *API) end() {
	a.inflight--

	if a.inflight == 0 {
		a.invalidations = nil
	}
}

// abort marks the completion of a fetch whose result is discarded.
func (a *API) abort() {
	a.lock.Lock()
	defer a.lock.Unlock()

	a.end()
}

// invalidatedSince reports whether any tag was invalidated after the given
// generation, called with the lock held.
func (a *API) invalidatedSince(generation uint64, tags []Tag) bool {
	for _, i := range a.invalidations {
		if i.generation <= generation {
			continue
		}

		for _, tag := range tags {
			if tag.matchesAny(i.tags) {
				return true
			}
		}
	}

	return false
}

// store records the outcome of a query started at the given generation.  A
// failed query keeps any previous value, but is never served from the cache.
// A result whose tags were invalidated while it was fetched is stored stale.
func (a *API) store(endpoint, key string, value any, err error, tags []Tag, generation uint64) {
	a.lock.Lock()
	defer a.lock.Unlock()

	defer a.end()

	now := time.Now()

	a.collect(now)

	e, ok := a.entries[key]
	if !ok {
		e = &entry{
			endpoint:    endpoint,
			subscribers: map[*Subscription]struct{}{},
		}

		a.entries[key] = e
	}

	e.tags = tags
	e.stale = a.invalidatedSince(generation, tags)
	e.lastUsed = now

	if err != nil {
		e.status = StatusRejected
		e.err = err

		return
	}

	e.status = StatusFulfilled
	e.value = value
	e.err = nil
	e.fulfilledAt = now
}

// state returns a snapshot of an entry.
func (a *API) state(key string) (any, State) {
	a.lock.Lock()
	defer a.lock.Unlock()

	e, ok := a.entries[key]
	if !ok {
		return nil, State{}
	}

	state := State{
		Status:      e.status,
		Stale:       e.stale,
		Error:       e.err,
		Tags:        slices.Clone(e.tags),
		FulfilledAt: e.fulfilledAt,
		Subscribers: len(e.subscribers),
	}

	return e.value, state
}

// InvalidateTags marks every entry providing a matching tag as stale and
// notifies its subscribers.
func (a *API) InvalidateTags(ctx context.Context, tags ...Tag) error {
	if len(tags) == 0 {
		return nil
	}

	if err := a.validateTags(tags); err != nil {
		return err
	}

	log := log.FromContext(ctx)

	var (
		notify      []*Subscription
		invalidated []string
	)

	a.lock.Lock()

	a.generation++

	if a.inflight > 0 {
		a.invalidations = append(a.invalidations, invalidation{
			generation: a.generation,
			tags:       slices.Clone(tags),
		})
	}

	for key, e := range a.entries {
		if e.stale {
			continue
		}

		for _, tag := range e.tags {
			if !tag.matchesAny(tags) {
				continue
			}

			e.stale = true

			for s := range e.subscribers {
				notify = append(notify, s)
			}

			invalidated = append(invalidated, e.endpoint)

			log.V(1).Info("invalidated cache entry", "api", a.reducerPath, "key", key, "tag", tag.String())

			break
		}
	}

	a.lock.Unlock()

	for _, s := range notify {
		s.notify()
	}

	for _, endpoint := range invalidated {
		a.hooks.invalidate(endpoint)
	}

	return nil
}

// ResetAPIState drops every cache entry, subscribers are notified so they
// may refetch.
func (a *API) ResetAPIState() {
	a.lock.Lock()

	var notify []*Subscription

	for _, e := range a.entries {
		for s := range e.subscribers {
			notify = append(notify, s)
		}
	}

	a.entries = map[string]*entry{}

	a.lock.Unlock()

	for _, s := range notify {
		s.notify()
	}
}

// Subscription is notified whenever its cache entry is invalidated.
type Subscription struct {
	// C receives a value when the entry becomes stale, notifications
	// coalesce if not consumed.
	C <-chan struct{}

	c    chan struct{}
	api  *API
	key  string
	once sync.Once
}

func (s *Subscription) notify() {
	select {
	case s.c <- struct{}{}:
	default:
	}
}

// Unsubscribe releases the subscription, the entry becomes eligible for
// collection once it has no subscribers.
func (s *Subscription) Unsubscribe() {
	s.once.Do(func() {
		s.api.unsubscribe(s)
	})
}

func (a *API) subscribe(endpoint, key string) *Subscription {
	c := make(chan struct{}, 1)

	s := &Subscription{
		C:   c,
		c:   c,
		api: a,
		key: key,
	}

	a.lock.Lock()
	defer a.lock.Unlock()

	e, ok := a.entries[key]
	if !ok {
		e = &entry{
			endpoint:    endpoint,
			subscribers: map[*Subscription]struct{}{},
		}

		a.entries[key] = e
	}

	e.subscribers[s] = struct{}{}
	e.lastUsed = time.Now()

	return s
}

func (a *API) unsubscribe(s *Subscription) {
	a.lock.Lock()
	defer a.lock.Unlock()

	if e, ok := a.entries[s.key]; ok {
		delete(e.subscribers, s)
		e.lastUsed = time.Now()
	}
}

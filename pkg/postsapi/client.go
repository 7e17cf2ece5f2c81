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

package postsapi

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/unikorn-cloud/posts/pkg/openapi"
	"github.com/unikorn-cloud/posts/pkg/query"

	"k8s.io/utils/ptr"
)

type options struct {
	baseURL           string
	httpClient        *http.Client
	retry             query.RetryOptions
	hooks             query.Hooks
	keepUnusedDataFor time.Duration
	transforms        []func(Endpoints) Endpoints
}

// Option configures a Client.
type Option func(*options)

// WithBaseURL sets the URL all endpoint paths are relative to.
func WithBaseURL(baseURL string) Option {
	return func(o *options) {
		o.baseURL = baseURL
	}
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithRetryOptions replaces the default retry policy.
func WithRetryOptions(retry query.RetryOptions) Option {
	return func(o *options) {
		o.retry = retry
	}
}

// WithHooks installs cache event callbacks.
func WithHooks(hooks query.Hooks) Option {
	return func(o *options) {
		o.hooks = hooks
	}
}

// WithKeepUnusedDataFor sets how long unsubscribed cache entries live.
func WithKeepUnusedDataFor(d time.Duration) Option {
	return func(o *options) {
		o.keepUnusedDataFor = d
	}
}

// WithEndpoints modifies the endpoint definitions before the client is built.
// Transforms are applied in order after Enhance.
func WithEndpoints(transform func(Endpoints) Endpoints) Option {
	return func(o *options) {
		o.transforms = append(o.transforms, transform)
	}
}

// Client is the posts API client.
type Client struct {
	api       *query.API
	endpoints Endpoints

	lock  sync.RWMutex
	token string

	login            *query.Mutation[openapi.LoginRequest, openapi.LoginResponse]
	getPosts         *query.Query[NoArgs, openapi.Posts]
	addPost          *query.Mutation[openapi.PostWrite, openapi.Post]
	getPost          *query.Query[int64, openapi.Post]
	updatePost       *query.Mutation[UpdatePostArgs, openapi.Post]
	deletePost       *query.Mutation[int64, openapi.DeletePostResponse]
	getErrorProne    *query.Query[NoArgs, openapi.ErrorProneResponse]
	getPetByID       *query.Query[GetPetByIdArgs, openapi.Pet]
	findPetsByStatus *query.Query[FindPetsByStatusArgs, openapi.Pets]
	addPet           *query.Mutation[openapi.PetWrite, openapi.Pet]
	updatePet        *query.Mutation[UpdatePetArgs, openapi.Pet]
	deletePet        *query.Mutation[DeletePetArgs, NoArgs]
}

// New builds a client from the enhanced endpoint set.
func New(opts ...Option) (*Client, error) {
	o := &options{
		baseURL: "/",
		retry:   query.DefaultRetryOptions(),
	}

	for _, opt := range opts {
		opt(o)
	}

	endpoints := Enhance(BaseEndpoints())

	for _, transform := range o.transforms {
		endpoints = transform(endpoints)
	}

	c := &Client{
		endpoints: endpoints,
	}

	fetch := query.NewFetchBaseQuery(query.FetchBaseQueryOptions{
		BaseURL:        o.baseURL,
		HTTPClient:     o.httpClient,
		PrepareHeaders: c.prepareHeaders,
	})

	api, err := query.New(query.Options{
		ReducerPath:       ReducerPath,
		BaseQuery:         query.Retry(fetch, o.retry),
		TagTypes:          endpoints.TagTypes,
		KeepUnusedDataFor: o.keepUnusedDataFor,
		Hooks:             o.hooks,
	})
	if err != nil {
		return nil, err
	}

	c.api = api

	if err := c.define(); err != nil {
		return nil, err
	}

	return c, nil
}

//nolint:cyclop
func (c *Client) define() error {
	var err error

	e := c.endpoints

	if c.login, err = query.DefineMutation(c.api, e.Login.WithMiddleware(c.captureToken)); err != nil {
		return err
	}

	if c.getPosts, err = query.DefineQuery(c.api, e.GetPosts); err != nil {
		return err
	}

	if c.addPost, err = query.DefineMutation(c.api, e.AddPost); err != nil {
		return err
	}

	if c.getPost, err = query.DefineQuery(c.api, e.GetPost); err != nil {
		return err
	}

	if c.updatePost, err = query.DefineMutation(c.api, e.UpdatePost); err != nil {
		return err
	}

	if c.deletePost, err = query.DefineMutation(c.api, e.DeletePost); err != nil {
		return err
	}

	if c.getErrorProne, err = query.DefineQuery(c.api, e.GetErrorProne); err != nil {
		return err
	}

	if c.getPetByID, err = query.DefineQuery(c.api, e.GetPetById); err != nil {
		return err
	}

	if c.findPetsByStatus, err = query.DefineQuery(c.api, e.FindPetsByStatus); err != nil {
		return err
	}

	if c.addPet, err = query.DefineMutation(c.api, e.AddPet); err != nil {
		return err
	}

	if c.updatePet, err = query.DefineMutation(c.api, e.UpdatePet); err != nil {
		return err
	}

	if c.deletePet, err = query.DefineMutation(c.api, e.DeletePet); err != nil {
		return err
	}

	return nil
}

// prepareHeaders attaches the bearer token once logged in.
func (c *Client) prepareHeaders(_ context.Context, headers http.Header) http.Header {
	if token := c.Token(); token != "" {
		headers.Set("Authorization", "Bearer "+token)
	}

	return headers
}

// captureToken records the token of a successful login.
func (c *Client) captureToken(base query.BaseQuery) query.BaseQuery {
	return query.BaseQueryFunc(func(ctx context.Context, args *query.FetchArgs, extra *query.ExtraOptions) (*query.Result, error) {
		result, err := base.Query(ctx, args, extra)
		if err != nil {
			return nil, err
		}

		var response openapi.LoginResponse

		if err := json.Unmarshal(result.Data, &response); err == nil && response.Token != "" {
			c.SetToken(response.Token)
		}

		return result, nil
	})
}

// Token returns the current bearer token, if any.
func (c *Client) Token() string {
	c.lock.RLock()
	defer c.lock.RUnlock()

	return c.token
}

// SetToken replaces the bearer token.
func (c *Client) SetToken(token string) {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.token = token
}

// API returns the underlying cache.
func (c *Client) API() *query.API {
	return c.api
}

// Endpoints returns the endpoint definitions the client was built with.
func (c *Client) Endpoints() Endpoints {
	return c.endpoints
}

func (c *Client) LoginMutation() *query.Mutation[openapi.LoginRequest, openapi.LoginResponse] {
	return c.login
}

func (c *Client) GetPostsQuery() *query.Query[NoArgs, openapi.Posts] {
	return c.getPosts
}

func (c *Client) AddPostMutation() *query.Mutation[openapi.PostWrite, openapi.Post] {
	return c.addPost
}

func (c *Client) GetPostQuery() *query.Query[int64, openapi.Post] {
	return c.getPost
}

func (c *Client) UpdatePostMutation() *query.Mutation[UpdatePostArgs, openapi.Post] {
	return c.updatePost
}

func (c *Client) DeletePostMutation() *query.Mutation[int64, openapi.DeletePostResponse] {
	return c.deletePost
}

func (c *Client) GetErrorProneQuery() *query.Query[NoArgs, openapi.ErrorProneResponse] {
	return c.getErrorProne
}

func (c *Client) GetPetByIdQuery() *query.Query[GetPetByIdArgs, openapi.Pet] {
	return c.getPetByID
}

func (c *Client) FindPetsByStatusQuery() *query.Query[FindPetsByStatusArgs, openapi.Pets] {
	return c.findPetsByStatus
}

func (c *Client) AddPetMutation() *query.Mutation[openapi.PetWrite, openapi.Pet] {
	return c.addPet
}

func (c *Client) UpdatePetMutation() *query.Mutation[UpdatePetArgs, openapi.Pet] {
	return c.updatePet
}

func (c *Client) DeletePetMutation() *query.Mutation[DeletePetArgs, NoArgs] {
	return c.deletePet
}

// Login authenticates, the token is used for all subsequent requests.
func (c *Client) Login(ctx context.Context, credentials openapi.LoginRequest) (*openapi.LoginResponse, error) {
	result, err := c.login.Do(ctx, credentials)
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// Logout forgets the token and drops all cached data.
func (c *Client) Logout() {
	c.SetToken("")
	c.api.ResetAPIState()
}

func (c *Client) GetPosts(ctx context.Context) (openapi.Posts, error) {
	return c.getPosts.Do(ctx, NoArgs{})
}

func (c *Client) GetPost(ctx context.Context, id int64) (*openapi.Post, error) {
	result, err := c.getPost.Do(ctx, id)
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (c *Client) AddPost(ctx context.Context, name string) (*openapi.Post, error) {
	result, err := c.addPost.Do(ctx, openapi.PostWrite{Name: ptr.To(name)})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// UpdatePost applies a partial update to the post with the given ID.
func (c *Client) UpdatePost(ctx context.Context, id int64, post openapi.PostWrite) (*openapi.Post, error) {
	result, err := c.updatePost.Do(ctx, UpdatePostArgs{ID: id, Post: post})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (c *Client) DeletePost(ctx context.Context, id int64) (*openapi.DeletePostResponse, error) {
	result, err := c.deletePost.Do(ctx, id)
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (c *Client) GetErrorProne(ctx context.Context) (*openapi.ErrorProneResponse, error) {
	result, err := c.getErrorProne.Do(ctx, NoArgs{})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (c *Client) GetPetById(ctx context.Context, id int64) (*openapi.Pet, error) {
	result, err := c.getPetByID.Do(ctx, GetPetByIdArgs{PetId: id})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (c *Client) FindPetsByStatus(ctx context.Context, status ...openapi.PetStatus) (openapi.Pets, error) {
	return c.findPetsByStatus.Do(ctx, FindPetsByStatusArgs{Status: status})
}

func (c *Client) AddPet(ctx context.Context, pet openapi.PetWrite) (*openapi.Pet, error) {
	result, err := c.addPet.Do(ctx, pet)
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (c *Client) UpdatePet(ctx context.Context, id int64, pet openapi.PetWrite) (*openapi.Pet, error) {
	result, err := c.updatePet.Do(ctx, UpdatePetArgs{PetId: id, Pet: pet})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (c *Client) DeletePet(ctx context.Context, id int64) error {
	_, err := c.deletePet.Do(ctx, DeletePetArgs{PetId: id})

	return err
}

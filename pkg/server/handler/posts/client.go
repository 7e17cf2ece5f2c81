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

package posts

import (
	"context"
	goerrors "errors"
	"strings"
	"time"

	"github.com/unikorn-cloud/core/pkg/server/errors"
	"github.com/unikorn-cloud/posts/pkg/openapi"
	"github.com/unikorn-cloud/posts/pkg/server/store"

	"k8s.io/apimachinery/pkg/util/validation/field"
	"k8s.io/utils/ptr"
)

// Client wraps up post related management handling.
type Client struct {
	// store persists posts.
	store store.Store

	// now stamps served posts.
	now func() time.Time
}

// NewClient returns a new client with required parameters.
func NewClient(store store.Store) *Client {
	return &Client{
		store: store,
		now:   time.Now,
	}
}

func convert(in *store.Post, fetchedAt time.Time) *openapi.Post {
	return &openapi.Post{
		Id:        in.ID,
		Name:      in.Name,
		FetchedAt: ptr.To(fetchedAt.UTC().Format(time.RFC3339)),
	}
}

func convertList(in []store.Post, fetchedAt time.Time) openapi.Posts {
	out := make(openapi.Posts, len(in))

	for i := range in {
		out[i] = *convert(&in[i], fetchedAt)
	}

	return out
}

func storeError(err error, message string) error {
	if goerrors.Is(err, store.ErrNotFound) {
		return errors.HTTPNotFound().WithError(err)
	}

	return errors.OAuth2ServerError(message).WithError(err)
}

func validate(request *openapi.PostWrite, id *int64) error {
	var errs field.ErrorList

	namePath := field.NewPath("name")

	switch {
	case id == nil && request.Name == nil:
		errs = append(errs, field.Required(namePath, "a post must be named"))
	case request.Name != nil && strings.TrimSpace(*request.Name) == "":
		errs = append(errs, field.Invalid(namePath, *request.Name, "must not be blank"))
	}

	if id != nil && request.Id != nil && *request.Id != *id {
		errs = append(errs, field.Invalid(field.NewPath("id"), *request.Id, "must match the post being updated"))
	}

	if err := errs.ToAggregate(); err != nil {
		return errors.OAuth2InvalidRequest("post validation failed").WithError(err)
	}

	return nil
}

// List returns all posts.
func (c *Client) List(ctx context.Context) (openapi.Posts, error) {
	result, err := c.store.ListPosts(ctx)
	if err != nil {
		return nil, storeError(err, "unable to list posts")
	}

	return convertList(result, c.now()), nil
}

// Get returns a single post.
func (c *Client) Get(ctx context.Context, id openapi.PostIDParameter) (*openapi.Post, error) {
	result, err := c.store.GetPost(ctx, id)
	if err != nil {
		return nil, storeError(err, "unable to read post")
	}

	return convert(result, c.now()), nil
}

// Create adds a new post, the ID is always assigned by the server.
func (c *Client) Create(ctx context.Context, request *openapi.PostWrite) (*openapi.Post, error) {
	if err := validate(request, nil); err != nil {
		return nil, err
	}

	result, err := c.store.CreatePost(ctx, *request.Name)
	if err != nil {
		return nil, storeError(err, "unable to create post")
	}

	return convert(result, c.now()), nil
}

// Update applies a partial update, absent fields are left unchanged.
func (c *Client) Update(ctx context.Context, id openapi.PostIDParameter, request *openapi.PostWrite) (*openapi.Post, error) {
	if err := validate(request, &id); err != nil {
		return nil, err
	}

	result, err := c.store.UpdatePost(ctx, id, request.Name)
	if err != nil {
		return nil, storeError(err, "unable to update post")
	}

	return convert(result, c.now()), nil
}

// Delete removes a post.
func (c *Client) Delete(ctx context.Context, id openapi.PostIDParameter) (*openapi.DeletePostResponse, error) {
	if err := c.store.DeletePost(ctx, id); err != nil {
		return nil, storeError(err, "unable to delete post")
	}

	result := &openapi.DeletePostResponse{
		Success: true,
		Id:      id,
	}

	return result, nil
}

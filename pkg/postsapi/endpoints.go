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
	"fmt"
	"net/http"

	"github.com/unikorn-cloud/posts/pkg/openapi"
	"github.com/unikorn-cloud/posts/pkg/query"

	"k8s.io/utils/ptr"
)

// ReducerPath names the API, there are many services so each is named.
const ReducerPath = "postsApi"

const (
	// TagPosts is provided by posts queries.
	TagPosts query.TagType = "Posts"

	// TagPet is added by Enhance.
	TagPet query.TagType = "Pet"
)

// NoArgs is the argument of queries that take none.
type NoArgs struct{}

// UpdatePostArgs partially updates a post, the ID in the body is ignored.
type UpdatePostArgs struct {
	ID   int64             `json:"id"`
	Post openapi.PostWrite `json:"post"`
}

// Endpoints is the complete set of endpoint definitions.  It is a value,
// modifications are made on copies and applied when a client is built.
type Endpoints struct {
	TagTypes []query.TagType

	Login         query.MutationDefinition[openapi.LoginRequest, openapi.LoginResponse]
	GetPosts      query.QueryDefinition[NoArgs, openapi.Posts]
	AddPost       query.MutationDefinition[openapi.PostWrite, openapi.Post]
	GetPost       query.QueryDefinition[int64, openapi.Post]
	UpdatePost    query.MutationDefinition[UpdatePostArgs, openapi.Post]
	DeletePost    query.MutationDefinition[int64, openapi.DeletePostResponse]
	GetErrorProne query.QueryDefinition[NoArgs, openapi.ErrorProneResponse]

	GetPetById       query.QueryDefinition[GetPetByIdArgs, openapi.Pet]
	FindPetsByStatus query.QueryDefinition[FindPetsByStatusArgs, openapi.Pets]
	AddPet           query.MutationDefinition[openapi.PetWrite, openapi.Pet]
	UpdatePet        query.MutationDefinition[UpdatePetArgs, openapi.Pet]
	DeletePet        query.MutationDefinition[DeletePetArgs, NoArgs]
}

func postsListTags(result openapi.Posts, err error, _ NoArgs) []query.Tag {
	tags := []query.Tag{
		query.NewTag(TagPosts, query.ListID),
	}

	if err != nil {
		return tags
	}

	for i := range result {
		tags = append(tags, query.NewTag(TagPosts, query.ID(result[i].Id)))
	}

	return tags
}

func postTags(_ openapi.Post, _ error, id int64) []query.Tag {
	return []query.Tag{
		query.NewTag(TagPosts, query.ID(id)),
	}
}

// BaseEndpoints returns the posts endpoints, and the pet endpoints without
// any cache tags.
func BaseEndpoints() Endpoints {
	e := Endpoints{
		TagTypes: []query.TagType{
			TagPosts,
		},
		Login: query.MutationDefinition[openapi.LoginRequest, openapi.LoginResponse]{
			Name: "login",
			Query: func(credentials openapi.LoginRequest) *query.FetchArgs {
				return &query.FetchArgs{
					URL:    "login",
					Method: http.MethodPost,
					Body:   credentials,
				}
			},
			ExtraOptions: &query.ExtraOptions{
				MaxRetries: ptr.To(0),
			},
		},
		GetPosts: query.QueryDefinition[NoArgs, openapi.Posts]{
			Name: "getPosts",
			Query: func(NoArgs) *query.FetchArgs {
				return &query.FetchArgs{
					URL: "posts",
				}
			},
			Provides: postsListTags,
		},
		AddPost: query.MutationDefinition[openapi.PostWrite, openapi.Post]{
			Name: "addPost",
			Query: func(body openapi.PostWrite) *query.FetchArgs {
				return &query.FetchArgs{
					URL:    "posts",
					Method: http.MethodPost,
					Body:   body,
				}
			},
			Invalidates: func(openapi.Post, error, openapi.PostWrite) []query.Tag {
				return []query.Tag{
					query.NewTag(TagPosts, query.ListID),
				}
			},
		},
		GetPost: query.QueryDefinition[int64, openapi.Post]{
			Name: "getPost",
			Query: func(id int64) *query.FetchArgs {
				return &query.FetchArgs{
					URL: fmt.Sprintf("posts/%d", id),
				}
			},
			Provides: postTags,
		},
		UpdatePost: query.MutationDefinition[UpdatePostArgs, openapi.Post]{
			Name: "updatePost",
			Query: func(arg UpdatePostArgs) *query.FetchArgs {
				body := arg.Post
				body.Id = nil

				return &query.FetchArgs{
					URL:    fmt.Sprintf("posts/%d", arg.ID),
					Method: http.MethodPut,
					Body:   body,
				}
			},
			Invalidates: func(_ openapi.Post, _ error, arg UpdatePostArgs) []query.Tag {
				return []query.Tag{
					query.NewTag(TagPosts, query.ID(arg.ID)),
				}
			},
		},
		DeletePost: query.MutationDefinition[int64, openapi.DeletePostResponse]{
			Name: "deletePost",
			Query: func(id int64) *query.FetchArgs {
				return &query.FetchArgs{
					URL:    fmt.Sprintf("posts/%d", id),
					Method: http.MethodDelete,
				}
			},
			Invalidates: func(_ openapi.DeletePostResponse, _ error, id int64) []query.Tag {
				return []query.Tag{
					query.NewTag(TagPosts, query.ID(id)),
				}
			},
		},
		GetErrorProne: query.QueryDefinition[NoArgs, openapi.ErrorProneResponse]{
			Name: "getErrorProne",
			Query: func(NoArgs) *query.FetchArgs {
				return &query.FetchArgs{
					URL: "error-prone",
				}
			},
		},
	}

	petEndpoints(&e)

	return e
}

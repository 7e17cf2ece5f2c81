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
	"net/url"
	"slices"

	"github.com/unikorn-cloud/posts/pkg/openapi"
	"github.com/unikorn-cloud/posts/pkg/query"
)

// GetPetByIdArgs selects a pet.
//
//nolint:revive,stylecheck
type GetPetByIdArgs struct {
	PetId openapi.PetIDParameter `json:"petId"`
}

// FindPetsByStatusArgs filters pets, an empty status matches all pets.
type FindPetsByStatusArgs struct {
	Status []openapi.PetStatus `json:"status,omitempty"`
}

// UpdatePetArgs replaces a pet.
//
//nolint:revive,stylecheck
type UpdatePetArgs struct {
	PetId openapi.PetIDParameter `json:"petId"`
	Pet   openapi.PetWrite       `json:"pet"`
}

// DeletePetArgs removes a pet.
//
//nolint:revive,stylecheck
type DeletePetArgs struct {
	PetId openapi.PetIDParameter `json:"petId"`
}

// petEndpoints adds the pet store operations without cache tags.
func petEndpoints(e *Endpoints) {
	e.GetPetById = query.QueryDefinition[GetPetByIdArgs, openapi.Pet]{
		Name: "getPetById",
		Query: func(arg GetPetByIdArgs) *query.FetchArgs {
			return &query.FetchArgs{
				URL: fmt.Sprintf("pet/%d", arg.PetId),
			}
		},
	}

	e.FindPetsByStatus = query.QueryDefinition[FindPetsByStatusArgs, openapi.Pets]{
		Name: "findPetsByStatus",
		Query: func(arg FindPetsByStatusArgs) *query.FetchArgs {
			params := url.Values{}

			for _, status := range arg.Status {
				params.Add("status", string(status))
			}

			return &query.FetchArgs{
				URL:    "pet/findByStatus",
				Params: params,
			}
		},
	}

	e.AddPet = query.MutationDefinition[openapi.PetWrite, openapi.Pet]{
		Name: "addPet",
		Query: func(pet openapi.PetWrite) *query.FetchArgs {
			return &query.FetchArgs{
				URL:    "pet",
				Method: http.MethodPost,
				Body:   pet,
			}
		},
	}

	e.UpdatePet = query.MutationDefinition[UpdatePetArgs, openapi.Pet]{
		Name: "updatePet",
		Query: func(arg UpdatePetArgs) *query.FetchArgs {
			return &query.FetchArgs{
				URL:    fmt.Sprintf("pet/%d", arg.PetId),
				Method: http.MethodPut,
				Body:   arg.Pet,
			}
		},
	}

	e.DeletePet = query.MutationDefinition[DeletePetArgs, NoArgs]{
		Name: "deletePet",
		Query: func(arg DeletePetArgs) *query.FetchArgs {
			return &query.FetchArgs{
				URL:    fmt.Sprintf("pet/%d", arg.PetId),
				Method: http.MethodDelete,
			}
		},
	}
}

// Enhance returns a copy of the endpoints with the Pet tag type declared and
// pet cache tags attached.  The input is left untouched.
func Enhance(e Endpoints) Endpoints {
	if !slices.Contains(e.TagTypes, TagPet) {
		e.TagTypes = append(slices.Clone(e.TagTypes), TagPet)
	}

	e.GetPetById = e.GetPetById.WithProvides(func(_ openapi.Pet, _ error, arg GetPetByIdArgs) []query.Tag {
		return []query.Tag{
			query.NewTag(TagPet, query.ID(arg.PetId)),
		}
	})

	// An error still provides the list tag, so the query is refetched when
	// the list is invalidated.
	e.FindPetsByStatus = e.FindPetsByStatus.WithProvides(func(result openapi.Pets, err error, _ FindPetsByStatusArgs) []query.Tag {
		tags := []query.Tag{
			query.NewTag(TagPet, query.ListID),
		}

		if err != nil {
			return tags
		}

		for i := range result {
			tags = append(tags, query.NewTag(TagPet, query.ID(result[i].Id)))
		}

		return tags
	})

	e.AddPet = e.AddPet.WithInvalidates(func(result openapi.Pet, err error, _ openapi.PetWrite) []query.Tag {
		if err != nil {
			return nil
		}

		return []query.Tag{
			query.NewTag(TagPet, query.ID(result.Id)),
		}
	})

	e.UpdatePet = e.UpdatePet.WithInvalidates(func(_ openapi.Pet, _ error, arg UpdatePetArgs) []query.Tag {
		return []query.Tag{
			query.NewTag(TagPet, query.ID(arg.PetId)),
		}
	})

	e.DeletePet = e.DeletePet.WithInvalidates(func(_ NoArgs, _ error, arg DeletePetArgs) []query.Tag {
		return []query.Tag{
			query.NewTag(TagPet, query.ID(arg.PetId)),
		}
	})

	return e
}

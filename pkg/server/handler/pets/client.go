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

package pets

import (
	"context"
	goerrors "errors"
	"slices"
	"strings"

	"github.com/unikorn-cloud/core/pkg/server/errors"
	"github.com/unikorn-cloud/posts/pkg/openapi"
	"github.com/unikorn-cloud/posts/pkg/server/store"

	"k8s.io/apimachinery/pkg/util/validation/field"
	"k8s.io/utils/ptr"
)

// Client wraps up pet store handling.
type Client struct {
	store store.Store
}

// NewClient returns a new client with required parameters.
func NewClient(store store.Store) *Client {
	return &Client{
		store: store,
	}
}

func convert(in *store.Pet) *openapi.Pet {
	photoURLs := slices.Clone(in.PhotoURLs)
	if photoURLs == nil {
		photoURLs = []string{}
	}

	out := &openapi.Pet{
		Id:        in.ID,
		Name:      in.Name,
		PhotoUrls: photoURLs,
	}

	if in.Status != "" {
		out.Status = ptr.To(openapi.PetStatus(in.Status))
	}

	return out
}

func convertList(in []store.Pet) openapi.Pets {
	out := make(openapi.Pets, len(in))

	for i := range in {
		out[i] = *convert(&in[i])
	}

	return out
}

func generate(id int64, request *openapi.PetWrite) *store.Pet {
	return &store.Pet{
		ID:        id,
		Name:      request.Name,
		Status:    string(ptr.Deref(request.Status, "")),
		PhotoURLs: slices.Clone(request.PhotoUrls),
	}
}

func storeError(err error, message string) error {
	if goerrors.Is(err, store.ErrNotFound) {
		return errors.HTTPNotFound().WithError(err)
	}

	if goerrors.Is(err, store.ErrConflict) {
		return errors.HTTPConflict().WithError(err)
	}

	return errors.OAuth2ServerError(message).WithError(err)
}

func validate(request *openapi.PetWrite, id *int64) error {
	var errs field.ErrorList

	if strings.TrimSpace(request.Name) == "" {
		errs = append(errs, field.Required(field.NewPath("name"), "a pet must be named"))
	}

	if request.Status != nil && !request.Status.Valid() {
		errs = append(errs, field.NotSupported(field.NewPath("status"), *request.Status, openapi.PetStatuses()))
	}

	if request.Id != nil {
		idPath := field.NewPath("id")

		switch {
		case *request.Id < 0:
			errs = append(errs, field.Invalid(idPath, *request.Id, "must not be negative"))
		case id != nil && *request.Id != *id:
			errs = append(errs, field.Invalid(idPath, *request.Id, "must match the pet being updated"))
		}
	}

	if err := errs.ToAggregate(); err != nil {
		return errors.OAuth2InvalidRequest("pet validation failed").WithError(err)
	}

	return nil
}

// FindByStatus returns pets with any of the statuses, all pets when none
// are given.
func (c *Client) FindByStatus(ctx context.Context, statuses []openapi.PetStatus) (openapi.Pets, error) {
	filter := make([]string, 0, len(statuses))

	for _, status := range statuses {
		if !status.Valid() {
			return nil, errors.OAuth2InvalidRequest("invalid status filter").WithError(openapi.ErrInvalidPetStatus)
		}

		filter = append(filter, string(status))
	}

	result, err := c.store.ListPets(ctx, filter)
	if err != nil {
		return nil, storeError(err, "unable to list pets")
	}

	return convertList(result), nil
}

// Get returns a single pet.
func (c *Client) Get(ctx context.Context, id openapi.PetIDParameter) (*openapi.Pet, error) {
	result, err := c.store.GetPet(ctx, id)
	if err != nil {
		return nil, storeError(err, "unable to read pet")
	}

	return convert(result), nil
}

// Create adds a pet, an ID is assigned unless one is requested.
func (c *Client) Create(ctx context.Context, request *openapi.PetWrite) (*openapi.Pet, error) {
	if err := validate(request, nil); err != nil {
		return nil, err
	}

	result, err := c.store.CreatePet(ctx, generate(ptr.Deref(request.Id, 0), request))
	if err != nil {
		return nil, storeError(err, "unable to create pet")
	}

	return convert(result), nil
}

// Update replaces a pet.
func (c *Client) Update(ctx context.Context, id openapi.PetIDParameter, request *openapi.PetWrite) (*openapi.Pet, error) {
	if err := validate(request, &id); err != nil {
		return nil, err
	}

	result, err := c.store.UpdatePet(ctx, generate(id, request))
	if err != nil {
		return nil, storeError(err, "unable to update pet")
	}

	return convert(result), nil
}

// Delete removes a pet.
func (c *Client) Delete(ctx context.Context, id openapi.PetIDParameter) error {
	if err := c.store.DeletePet(ctx, id); err != nil {
		return storeError(err, "unable to delete pet")
	}

	return nil
}

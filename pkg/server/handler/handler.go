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

//nolint:revive
package handler

import (
	"fmt"
	"net/http"
	"sync/atomic"

	"github.com/unikorn-cloud/core/pkg/server/errors"
	"github.com/unikorn-cloud/core/pkg/server/util"
	"github.com/unikorn-cloud/posts/pkg/openapi"
	"github.com/unikorn-cloud/posts/pkg/server/auth"
	"github.com/unikorn-cloud/posts/pkg/server/handler/pets"
	"github.com/unikorn-cloud/posts/pkg/server/handler/posts"
	"github.com/unikorn-cloud/posts/pkg/server/store"

	"k8s.io/utils/ptr"
	"sigs.k8s.io/controller-runtime/pkg/log"
)

type Handler struct {
	// store persists posts and pets.
	store store.Store

	// issuer signs login tokens.
	issuer *auth.Issuer

	// options allows behaviour to be defined on the CLI.
	options *Options

	// errorProneCalls counts calls to the diagnostic endpoint.
	errorProneCalls atomic.Int64
}

func New(store store.Store, issuer *auth.Issuer, options *Options) (*Handler, error) {
	h := &Handler{
		store:   store,
		issuer:  issuer,
		options: options,
	}

	return h, nil
}

func (h *Handler) setUncacheable(w http.ResponseWriter) {
	w.Header().Add("Cache-Control", "no-cache")
}

func (h *Handler) postsClient() *posts.Client {
	return posts.NewClient(h.store)
}

func (h *Handler) petsClient() *pets.Client {
	return pets.NewClient(h.store)
}

// username extracts a user name from opaque credentials.
func username(request openapi.LoginRequest) string {
	if name, ok := request["username"].(string); ok && name != "" {
		return name
	}

	return "anonymous"
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	request := openapi.LoginRequest{}

	if err := util.ReadJSONBody(r, &request); err != nil {
		errors.HandleError(w, r, err)
		return
	}

	name := username(request)

	token, err := h.issuer.Issue(name)
	if err != nil {
		errors.HandleError(w, r, errors.OAuth2ServerError("unable to issue token").WithError(err))
		return
	}

	result := &openapi.LoginResponse{
		Token: token,
		User: openapi.User{
			FirstName: name,
			LastName:  "User",
			Email:     fmt.Sprintf("%s@example.com", name),
			Phone:     "555-0100",
		},
	}

	log.FromContext(r.Context()).V(1).Info("issued token", "username", name)

	h.setUncacheable(w)
	util.WriteJSONResponse(w, r, http.StatusOK, result)
}

func (h *Handler) GetPosts(w http.ResponseWriter, r *http.Request) {
	result, err := h.postsClient().List(r.Context())
	if err != nil {
		errors.HandleError(w, r, err)
		return
	}

	h.setUncacheable(w)
	util.WriteJSONResponse(w, r, http.StatusOK, result)
}

func (h *Handler) AddPost(w http.ResponseWriter, r *http.Request) {
	request := &openapi.PostWrite{}

	if err := util.ReadJSONBody(r, request); err != nil {
		errors.HandleError(w, r, err)
		return
	}

	result, err := h.postsClient().Create(r.Context(), request)
	if err != nil {
		errors.HandleError(w, r, err)
		return
	}

	h.setUncacheable(w)
	util.WriteJSONResponse(w, r, http.StatusCreated, result)
}

func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request, id openapi.PostIDParameter) {
	result, err := h.postsClient().Get(r.Context(), id)
	if err != nil {
		errors.HandleError(w, r, err)
		return
	}

	h.setUncacheable(w)
	util.WriteJSONResponse(w, r, http.StatusOK, result)
}

func (h *Handler) UpdatePost(w http.ResponseWriter, r *http.Request, id openapi.PostIDParameter) {
	request := &openapi.PostWrite{}

	if err := util.ReadJSONBody(r, request); err != nil {
		errors.HandleError(w, r, err)
		return
	}

	result, err := h.postsClient().Update(r.Context(), id, request)
	if err != nil {
		errors.HandleError(w, r, err)
		return
	}

	h.setUncacheable(w)
	util.WriteJSONResponse(w, r, http.StatusOK, result)
}

func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request, id openapi.PostIDParameter) {
	result, err := h.postsClient().Delete(r.Context(), id)
	if err != nil {
		errors.HandleError(w, r, err)
		return
	}

	h.setUncacheable(w)
	util.WriteJSONResponse(w, r, http.StatusOK, result)
}

// errorProneFails returns true when the nth call, counting from one, should
// fail.  Calls fail in runs of the configured length separated by a single
// success.
func errorProneFails(n int64, failures int) bool {
	if failures <= 0 {
		return false
	}

	return (n-1)%int64(failures+1) < int64(failures)
}

func (h *Handler) GetErrorProne(w http.ResponseWriter, r *http.Request) {
	n := h.errorProneCalls.Add(1)

	if errorProneFails(n, h.options.ErrorProneFailures) {
		log.FromContext(r.Context()).V(1).Info("error-prone call failing", "call", n)

		errors.HandleError(w, r, errors.OAuth2ServerError(fmt.Sprintf("error-prone call %d failed", n)))

		return
	}

	h.setUncacheable(w)
	util.WriteJSONResponse(w, r, http.StatusOK, &openapi.ErrorProneResponse{Success: true})
}

func (h *Handler) AddPet(w http.ResponseWriter, r *http.Request) {
	request := &openapi.PetWrite{}

	if err := util.ReadJSONBody(r, request); err != nil {
		errors.HandleError(w, r, err)
		return
	}

	result, err := h.petsClient().Create(r.Context(), request)
	if err != nil {
		errors.HandleError(w, r, err)
		return
	}

	h.setUncacheable(w)
	util.WriteJSONResponse(w, r, http.StatusCreated, result)
}

func (h *Handler) FindPetsByStatus(w http.ResponseWriter, r *http.Request, params openapi.FindPetsByStatusParams) {
	result, err := h.petsClient().FindByStatus(r.Context(), ptr.Deref(params.Status, nil))
	if err != nil {
		errors.HandleError(w, r, err)
		return
	}

	h.setUncacheable(w)
	util.WriteJSONResponse(w, r, http.StatusOK, result)
}

func (h *Handler) GetPetById(w http.ResponseWriter, r *http.Request, petID openapi.PetIDParameter) {
	result, err := h.petsClient().Get(r.Context(), petID)
	if err != nil {
		errors.HandleError(w, r, err)
		return
	}

	h.setUncacheable(w)
	util.WriteJSONResponse(w, r, http.StatusOK, result)
}

func (h *Handler) UpdatePet(w http.ResponseWriter, r *http.Request, petID openapi.PetIDParameter) {
	request := &openapi.PetWrite{}

	if err := util.ReadJSONBody(r, request); err != nil {
		errors.HandleError(w, r, err)
		return
	}

	result, err := h.petsClient().Update(r.Context(), petID, request)
	if err != nil {
		errors.HandleError(w, r, err)
		return
	}

	h.setUncacheable(w)
	util.WriteJSONResponse(w, r, http.StatusOK, result)
}

func (h *Handler) DeletePet(w http.ResponseWriter, r *http.Request, petID openapi.PetIDParameter) {
	if err := h.petsClient().Delete(r.Context(), petID); err != nil {
		errors.HandleError(w, r, err)
		return
	}

	h.setUncacheable(w)
	w.WriteHeader(http.StatusNoContent)
}

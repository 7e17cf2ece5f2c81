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

package api

import (
	"fmt"
	"net/url"
)

// Endpoints contains all API endpoint patterns.
type Endpoints struct{}

// NewEndpoints creates a new Endpoints instance.
func NewEndpoints() *Endpoints {
	return &Endpoints{}
}

// Authentication endpoints.
func (e *Endpoints) Login() string {
	return "/login"
}

// Post endpoints.
func (e *Endpoints) ListPosts() string {
	return "/posts"
}

func (e *Endpoints) CreatePost() string {
	return "/posts"
}

func (e *Endpoints) GetPost(id int64) string {
	return fmt.Sprintf("/posts/%d", id)
}

func (e *Endpoints) UpdatePost(id int64) string {
	return fmt.Sprintf("/posts/%d", id)
}

func (e *Endpoints) DeletePost(id int64) string {
	return fmt.Sprintf("/posts/%d", id)
}

// Diagnostic endpoints.
func (e *Endpoints) ErrorProne() string {
	return "/error-prone"
}

// Pet endpoints.
func (e *Endpoints) CreatePet() string {
	return "/pet"
}

func (e *Endpoints) FindPetsByStatus(statuses ...string) string {
	if len(statuses) == 0 {
		return "/pet/findByStatus"
	}

	query := url.Values{
		"status": statuses,
	}

	return "/pet/findByStatus?" + query.Encode()
}

func (e *Endpoints) GetPet(id int64) string {
	return fmt.Sprintf("/pet/%d", id)
}

func (e *Endpoints) UpdatePet(id int64) string {
	return fmt.Sprintf("/pet/%d", id)
}

func (e *Endpoints) DeletePet(id int64) string {
	return fmt.Sprintf("/pet/%d", id)
}

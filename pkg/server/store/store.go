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

//go:generate mockgen -source=store.go -destination=mock/store.go -package=mock

// Package store persists posts and pets for the mock server.
package store

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrConflict is returned when creating a record whose ID is taken.
	ErrConflict = errors.New("resource already exists")
)

// Post is a persisted post.
type Post struct {
	ID   int64
	Name string
}

// Pet is a persisted pet.
type Pet struct {
	ID        int64
	Name      string
	Status    string
	PhotoURLs []string
}

// Store is implemented by all backends.
type Store interface {
	ListPosts(ctx context.Context) ([]Post, error)
	GetPost(ctx context.Context, id int64) (*Post, error)
	CreatePost(ctx context.Context, name string) (*Post, error)
	UpdatePost(ctx context.Context, id int64, name *string) (*Post, error)
	DeletePost(ctx context.Context, id int64) error

	// ListPets returns pets with any of the statuses, or all pets if
	// none are given.
	ListPets(ctx context.Context, statuses []string) ([]Pet, error)
	GetPet(ctx context.Context, id int64) (*Pet, error)
	// CreatePet assigns an ID if the pet's is zero, an explicit ID
	// that is already in use fails with ErrConflict.
	CreatePet(ctx context.Context, pet *Pet) (*Pet, error)
	UpdatePet(ctx context.Context, pet *Pet) (*Pet, error)
	DeletePet(ctx context.Context, id int64) error

	Close() error
}

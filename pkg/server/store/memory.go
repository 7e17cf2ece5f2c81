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

package store

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"
)

// Memory keeps everything in process, it is the default backend.
type Memory struct {
	lock     sync.RWMutex
	posts    map[int64]Post
	pets     map[int64]Pet
	nextPost int64
	nextPet  int64
}

// NewMemory returns an empty store.
func NewMemory() *Memory {
	return &Memory{
		posts:    map[int64]Post{},
		pets:     map[int64]Pet{},
		nextPost: 1,
		nextPet:  1,
	}
}

func (m *Memory) ListPosts(_ context.Context) ([]Post, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	ids := slices.Sorted(maps.Keys(m.posts))

	result := make([]Post, len(ids))

	for i, id := range ids {
		result[i] = m.posts[id]
	}

	return result, nil
}

func (m *Memory) GetPost(_ context.Context, id int64) (*Post, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	post, ok := m.posts[id]
	if !ok {
		return nil, fmt.Errorf("%w: post %d", ErrNotFound, id)
	}

	return &post, nil
}

func (m *Memory) CreatePost(_ context.Context, name string) (*Post, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	post := Post{
		ID:   m.nextPost,
		Name: name,
	}

	m.nextPost++
	m.posts[post.ID] = post

	return &post, nil
}

func (m *Memory) UpdatePost(_ context.Context, id int64, name *string) (*Post, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	post, ok := m.posts[id]
	if !ok {
		return nil, fmt.Errorf("%w: post %d", ErrNotFound, id)
	}

	if name != nil {
		post.Name = *name
	}

	m.posts[id] = post

	return &post, nil
}

func (m *Memory) DeletePost(_ context.Context, id int64) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	if _, ok := m.posts[id]; !ok {
		return fmt.Errorf("%w: post %d", ErrNotFound, id)
	}

	delete(m.posts, id)

	return nil
}

func (m *Memory) ListPets(_ context.Context, statuses []string) ([]Pet, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	var result []Pet

	for _, id := range slices.Sorted(maps.Keys(m.pets)) {
		pet := m.pets[id]

		if len(statuses) != 0 && !slices.Contains(statuses, pet.Status) {
			continue
		}

		result = append(result, pet)
	}

	return result, nil
}

func (m *Memory) GetPet(_ context.Context, id int64) (*Pet, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	pet, ok := m.pets[id]
	if !ok {
		return nil, fmt.Errorf("%w: pet %d", ErrNotFound, id)
	}

	return &pet, nil
}

func (m *Memory) CreatePet(_ context.Context, pet *Pet) (*Pet, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	created := *pet
	created.PhotoURLs = slices.Clone(pet.PhotoURLs)

	if created.ID == 0 {
		created.ID = m.nextPet
	}

	if _, ok := m.pets[created.ID]; ok {
		return nil, fmt.Errorf("%w: pet %d", ErrConflict, created.ID)
	}

	m.nextPet = max(m.nextPet, created.ID+1)
	m.pets[created.ID] = created

	return &created, nil
}

func (m *Memory) UpdatePet(_ context.Context, pet *Pet) (*Pet, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	if _, ok := m.pets[pet.ID]; !ok {
		return nil, fmt.Errorf("%w: pet %d", ErrNotFound, pet.ID)
	}

	updated := *pet
	updated.PhotoURLs = slices.Clone(pet.PhotoURLs)

	m.pets[updated.ID] = updated

	return &updated, nil
}

func (m *Memory) DeletePet(_ context.Context, id int64) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	if _, ok := m.pets[id]; !ok {
		return fmt.Errorf("%w: pet %d", ErrNotFound, id)
	}

	delete(m.pets, id)

	return nil
}

func (m *Memory) Close() error {
	return nil
}

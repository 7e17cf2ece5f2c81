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
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

func generateRandomName(prefix string) string {
	bytes := make([]byte, 4) // 8 hex characters
	_, _ = rand.Read(bytes)

	return fmt.Sprintf("%s-%s", prefix, hex.EncodeToString(bytes))
}

func GenerateTestID() string {
	return generateRandomName("test")
}

// PostPayloadBuilder builds post payloads for testing.
type PostPayloadBuilder struct {
	payload map[string]interface{}
}

// NewPostPayload creates a post payload with a unique name.
func NewPostPayload() *PostPayloadBuilder {
	return &PostPayloadBuilder{
		payload: map[string]interface{}{
			"name": generateRandomName("testautomation-post"),
		},
	}
}

// WithName sets the post name.
func (b *PostPayloadBuilder) WithName(name string) *PostPayloadBuilder {
	b.payload["name"] = name

	return b
}

// WithID sets a client supplied ID, which the server is expected to ignore.
func (b *PostPayloadBuilder) WithID(id int64) *PostPayloadBuilder {
	b.payload["id"] = id

	return b
}

// WithoutName removes the name to exercise validation.
func (b *PostPayloadBuilder) WithoutName() *PostPayloadBuilder {
	delete(b.payload, "name")

	return b
}

// Build returns the completed post payload.
func (b *PostPayloadBuilder) Build() map[string]interface{} {
	return b.payload
}

// PetPayloadBuilder builds pet payloads for testing.
type PetPayloadBuilder struct {
	payload map[string]interface{}
}

// NewPetPayload creates an available pet with a unique name.
func NewPetPayload() *PetPayloadBuilder {
	return &PetPayloadBuilder{
		payload: map[string]interface{}{
			"name":      generateRandomName("testautomation-pet"),
			"status":    "available",
			"photoUrls": []string{},
		},
	}
}

// WithName sets the pet name.
func (b *PetPayloadBuilder) WithName(name string) *PetPayloadBuilder {
	b.payload["name"] = name

	return b
}

// WithStatus sets the pet status (pass empty string to omit).
func (b *PetPayloadBuilder) WithStatus(status string) *PetPayloadBuilder {
	if status == "" {
		delete(b.payload, "status")
	} else {
		b.payload["status"] = status
	}

	return b
}

// WithPhotoURLs sets the photo URLs.
func (b *PetPayloadBuilder) WithPhotoURLs(urls ...string) *PetPayloadBuilder {
	b.payload["photoUrls"] = urls

	return b
}

// Build returns the completed pet payload.
func (b *PetPayloadBuilder) Build() map[string]interface{} {
	return b.payload
}

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

//go:generate go tool oapi-codegen -generate types,skip-prune -package openapi -o types.go server.spec.yaml
//go:generate go tool oapi-codegen -generate chi-server -package openapi -o router.go server.spec.yaml
//go:generate go tool oapi-codegen -generate spec -package openapi -o schema.go server.spec.yaml

package openapi

import (
	"errors"
	"slices"
)

var ErrInvalidPetStatus = errors.New("invalid pet status: must be one of available, pending or sold")

// PetStatuses lists every valid status.
func PetStatuses() []PetStatus {
	return []PetStatus{Available, Pending, Sold}
}

// Valid returns true if the status is known.
func (s PetStatus) Valid() bool {
	return slices.Contains(PetStatuses(), s)
}

func (s *PetStatus) UnmarshalText(text []byte) error {
	status := PetStatus(text)

	if !status.Valid() {
		return ErrInvalidPetStatus
	}

	*s = status

	return nil
}

// Credentials are the username and password accepted by login.
type Credentials struct {
	Username string
	Password string
}

// LoginRequest converts credentials into the opaque wire format.
func (c Credentials) LoginRequest() LoginRequest {
	return LoginRequest{
		"username": c.Username,
		"password": c.Password,
	}
}

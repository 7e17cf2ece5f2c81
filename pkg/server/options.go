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

package server

import (
	"time"

	"github.com/spf13/pflag"
)

// Options control the HTTP server and its backing services.
type Options struct {
	// ListenAddress tells the server what to listen on, you shouldn't
	// need to change this, it's already non-privileged.
	ListenAddress string

	// ReadTimeout defines how long before we give up on the client,
	// this should be fairly short.
	ReadTimeout time.Duration

	// ReadHeaderTimeout defines how long before we give up on the client,
	// this should be fairly short.
	ReadHeaderTimeout time.Duration

	// WriteTimeout defines how long we take to respond before we give up.
	WriteTimeout time.Duration

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration

	// DatabaseURL selects PostgreSQL storage, memory is used when empty.
	DatabaseURL string

	// SeedPosts is the number of posts created in an empty store.
	SeedPosts int

	// RequireAuth enforces bearer tokens on post mutations.
	RequireAuth bool

	// TokenSecret signs login tokens, a random one is used when empty.
	TokenSecret string

	// TokenValidity is how long a login token is valid for.
	TokenValidity time.Duration

	// ValidateRequests checks requests against the OpenAPI document.
	ValidateRequests bool
}

func (o *Options) AddFlags(f *pflag.FlagSet) {
	f.StringVar(&o.ListenAddress, "server-listen-address", ":6080", "API listener address.")
	f.DurationVar(&o.ReadTimeout, "server-read-timeout", time.Second, "How long to wait for the client to send the request body.")
	f.DurationVar(&o.ReadHeaderTimeout, "server-read-header-timeout", time.Second, "How long to wait for the client to send headers.")
	f.DurationVar(&o.WriteTimeout, "server-write-timeout", 10*time.Second, "How long to wait for the API to respond to the client.")
	f.DurationVar(&o.ShutdownTimeout, "server-shutdown-timeout", 5*time.Second, "How long to wait for in flight requests on shutdown.")
	f.StringVar(&o.DatabaseURL, "database-url", "", "PostgreSQL connection string, posts are kept in memory when not set.")
	f.IntVar(&o.SeedPosts, "seed-posts", 10, "Number of posts to create when the store is empty.")
	f.BoolVar(&o.RequireAuth, "require-auth", false, "Require a bearer token for post mutations.")
	f.StringVar(&o.TokenSecret, "token-secret", "", "HMAC secret used to sign login tokens.")
	f.DurationVar(&o.TokenValidity, "token-validity", time.Hour, "How long login tokens are valid for.")
	f.BoolVar(&o.ValidateRequests, "validate-requests", true, "Validate requests against the OpenAPI schema.")
}

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

//nolint:revive,staticcheck // dot imports are standard for Ginkgo/Gomega test code
package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/unikorn-cloud/posts/pkg/postsapi"
	"github.com/unikorn-cloud/posts/pkg/query"
	"github.com/unikorn-cloud/posts/pkg/server"
	"github.com/unikorn-cloud/posts/pkg/server/handler"
	"github.com/unikorn-cloud/posts/pkg/server/store"
)

// SeedPosts is the number of posts an in-process server starts with.
const SeedPosts = 10

// StartServer returns the base URL of the server under test.  When no
// external server is configured a fresh in-process one is started, and
// stopped when the spec ends.
func StartServer(config *TestConfig) string {
	if config.BaseURL != "" {
		return strings.TrimSuffix(config.BaseURL, "/")
	}

	s := store.NewMemory()

	Expect(server.Seed(context.Background(), s, SeedPosts)).To(Succeed())

	options := &server.Options{
		RequireAuth:      config.RequireAuth,
		TokenValidity:    time.Hour,
		ValidateRequests: true,
	}

	handlerOptions := &handler.Options{
		ErrorProneFailures: config.ErrorProneFailures,
	}

	router, err := server.NewRouter(s, options, handlerOptions, prometheus.NewRegistry())
	Expect(err).NotTo(HaveOccurred())

	ts := httptest.NewServer(router)
	DeferCleanup(ts.Close)

	return ts.URL
}

// RetryOptions are the default retry options with a fixed, short delay and
// every retry logged.
func RetryOptions(config *TestConfig) query.RetryOptions {
	retry := query.DefaultRetryOptions()
	retry.BaseDelay = config.RetryDelay
	retry.MaxDelay = config.RetryDelay
	retry.OnRetry = func(_ context.Context, attempt int, err error) {
		GinkgoWriter.Printf("RETRY attempt=%d error=%v\n", attempt, err)
	}

	return retry
}

// NewPostsClient creates a posts API client that retries quickly and logs
// every retry.  Options override the defaults.
func NewPostsClient(config *TestConfig, baseURL string, opts ...postsapi.Option) *postsapi.Client {
	defaults := []postsapi.Option{
		postsapi.WithBaseURL(baseURL + "/"),
		postsapi.WithHTTPClient(&http.Client{Timeout: config.RequestTimeout}),
		postsapi.WithRetryOptions(RetryOptions(config)),
	}

	client, err := postsapi.New(append(defaults, opts...)...)
	Expect(err).NotTo(HaveOccurred())

	return client
}

// IDOf extracts the numeric ID of a decoded resource.
func IDOf(resource map[string]interface{}) int64 {
	id, ok := resource["id"].(float64)
	Expect(ok).To(BeTrue(), "resource has no numeric id: %v", resource)

	return int64(id)
}

// CreatePostWithCleanup creates a post and schedules its deletion.
func CreatePostWithCleanup(ctx context.Context, client *APIClient, payload map[string]interface{}) (map[string]interface{}, int64) {
	post, err := client.CreatePost(ctx, payload)
	Expect(err).NotTo(HaveOccurred())

	id := IDOf(post)

	GinkgoWriter.Printf("Created post with ID: %d\n", id)

	DeferCleanup(func(ctx SpecContext) {
		// The spec may already have deleted it.
		if _, err := client.DeletePost(ctx, id); err != nil {
			GinkgoWriter.Printf("Post %d cleanup skipped: %v\n", id, err)
		}
	})

	return post, id
}

// CreatePetWithCleanup creates a pet and schedules its deletion.
func CreatePetWithCleanup(ctx context.Context, client *APIClient, payload map[string]interface{}) (map[string]interface{}, int64) {
	pet, err := client.CreatePet(ctx, payload)
	Expect(err).NotTo(HaveOccurred())

	id := IDOf(pet)

	GinkgoWriter.Printf("Created pet with ID: %d\n", id)

	DeferCleanup(func(ctx SpecContext) {
		if err := client.DeletePet(ctx, id); err != nil {
			GinkgoWriter.Printf("Pet %d cleanup skipped: %v\n", id, err)
		}
	})

	return pet, id
}

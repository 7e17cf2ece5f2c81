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
//nolint:testpackage,revive // dot imports are standard for Ginkgo/Gomega test code
package suites

import (
	"fmt"
	"net/http"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/unikorn-cloud/posts/pkg/metrics"
	"github.com/unikorn-cloud/posts/pkg/postsapi"
	"github.com/unikorn-cloud/posts/pkg/query"
	"github.com/unikorn-cloud/posts/test/api"
)

var _ = Describe("Error prone endpoint", func() {
	var (
		registry *prometheus.Registry
		posts    *postsapi.Client
	)

	BeforeEach(func() {
		registry = prometheus.NewRegistry()

		recorder, err := metrics.NewClient(registry, postsapi.ReducerPath)
		Expect(err).NotTo(HaveOccurred())

		posts = api.NewPostsClient(config, baseURL,
			postsapi.WithRetryOptions(recorder.RetryOptions(api.RetryOptions(config))),
			postsapi.WithHooks(recorder.Hooks()),
		)
	})

	Context("When the server fails transiently", func() {
		It("should retry until the request succeeds", func() {
			// When querying the endpoint
			response, err := posts.GetErrorProne(ctx)

			// Then the retries absorb the failures
			Expect(err).NotTo(HaveOccurred())
			Expect(response.Success).To(BeTrue())

			if config.BaseURL != "" {
				// An external server's failure cycle may already be advanced.
				return
			}

			// And one retry was made per injected failure
			expected := fmt.Sprintf(`
# HELP query_retries_total Total number of retried requests
# TYPE query_retries_total counter
query_retries_total{api="%s"} %d
`, postsapi.ReducerPath, config.ErrorProneFailures)

			Expect(testutil.GatherAndCompare(registry, strings.NewReader(expected), "query_retries_total")).To(Succeed())
		})
	})

	Context("When the server keeps failing", func() {
		It("should give up after the maximum number of retries", func() {
			// Given a server that fails more often than the client retries
			if config.BaseURL != "" {
				Skip("failure count of an external server cannot be changed")
			}

			failing := *config
			failing.ErrorProneFailures = query.DefaultMaxRetries + 1

			url := api.StartServer(&failing)
			posts := api.NewPostsClient(config, url)

			// When querying the endpoint
			_, err := posts.GetErrorProne(ctx)

			// Then the last server error is returned and recorded
			Expect(err).To(HaveOccurred())
			Expect(query.IsHTTPStatus(err, http.StatusInternalServerError)).To(BeTrue())

			_, state, err := posts.GetErrorProneQuery().Select(postsapi.NoArgs{})
			Expect(err).NotTo(HaveOccurred())
			Expect(state.Status).To(Equal(query.StatusRejected))
		})
	})

	Context("When tags are invalidated", func() {
		It("should never affect the cached result", func() {
			// Given a cached result
			_, err := posts.GetErrorProne(ctx)
			Expect(err).NotTo(HaveOccurred())

			_, state, err := posts.GetErrorProneQuery().Select(postsapi.NoArgs{})
			Expect(err).NotTo(HaveOccurred())
			Expect(state.Tags).To(BeEmpty())

			// When every tag type is invalidated
			Expect(posts.API().InvalidateTags(ctx,
				query.Tag{Type: postsapi.TagPosts},
				query.Tag{Type: postsapi.TagPet},
			)).To(Succeed())

			// Then the result is still fresh and served from the cache
			_, state, err = posts.GetErrorProneQuery().Select(postsapi.NoArgs{})
			Expect(err).NotTo(HaveOccurred())
			Expect(state.Stale).To(BeFalse())

			_, err = posts.GetErrorProne(ctx)
			Expect(err).NotTo(HaveOccurred())

			expected := fmt.Sprintf(`
# HELP query_cache_hits_total Total number of queries served from the cache
# TYPE query_cache_hits_total counter
query_cache_hits_total{api="%[1]s",endpoint="getErrorProne"} 1
# HELP query_cache_misses_total Total number of queries that required a request
# TYPE query_cache_misses_total counter
query_cache_misses_total{api="%[1]s",endpoint="getErrorProne"} 1
`, postsapi.ReducerPath)

			Expect(testutil.GatherAndCompare(registry, strings.NewReader(expected), "query_cache_hits_total", "query_cache_misses_total")).To(Succeed())
		})
	})
})

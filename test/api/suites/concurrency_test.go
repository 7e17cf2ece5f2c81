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
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/unikorn-cloud/posts/pkg/openapi"
	"github.com/unikorn-cloud/posts/pkg/postsapi"
	"github.com/unikorn-cloud/posts/pkg/query"
	"github.com/unikorn-cloud/posts/test/api"
)

// gatedTransport holds every request until released and counts them.
type gatedTransport struct {
	requests atomic.Int64
	release  chan struct{}
}

func (t *gatedTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	t.requests.Add(1)

	select {
	case <-t.release:
	case <-r.Context().Done():
		return nil, r.Context().Err()
	}

	return http.DefaultTransport.RoundTrip(r)
}

var _ = Describe("Concurrency", func() {
	const callers = 10

	var (
		transport *gatedTransport
		misses    atomic.Int64
		posts     *postsapi.Client
	)

	BeforeEach(func() {
		transport = &gatedTransport{
			release: make(chan struct{}),
		}

		misses.Store(0)

		posts = api.NewPostsClient(config, baseURL,
			postsapi.WithHTTPClient(&http.Client{Transport: transport, Timeout: config.RequestTimeout}),
			postsapi.WithHooks(query.Hooks{
				OnMiss: func(string) {
					misses.Add(1)
				},
			}),
		)
	})

	// releaseWhenWaiting opens the gate once every caller has missed the
	// cache and had time to join the in-flight request.
	releaseWhenWaiting := func(n int64) {
		Eventually(misses.Load).WithTimeout(config.RequestTimeout).Should(BeNumerically(">=", n))

		time.Sleep(50 * time.Millisecond)

		close(transport.release)
	}

	Context("When many callers read the same post", func() {
		It("should share a single request", func() {
			// Given a post
			_, id := api.CreatePostWithCleanup(ctx, client, api.NewPostPayload().Build())

			// When it is read concurrently
			var (
				wg      sync.WaitGroup
				results = make([]*openapi.Post, callers)
				errs    = make([]error, callers)
			)

			for i := range callers {
				wg.Add(1)

				go func() {
					defer GinkgoRecover()
					defer wg.Done()

					results[i], errs[i] = posts.GetPost(ctx, id)
				}()
			}

			releaseWhenWaiting(callers)
			wg.Wait()

			// Then every caller gets the post from one request
			for i := range callers {
				Expect(errs[i]).NotTo(HaveOccurred())
				Expect(results[i].Id).To(Equal(id))
			}

			Expect(transport.requests.Load()).To(BeEquivalentTo(1))

			// And later reads are cached
			_, err := posts.GetPost(ctx, id)
			Expect(err).NotTo(HaveOccurred())
			Expect(transport.requests.Load()).To(BeEquivalentTo(1))
		})
	})

	Context("When callers read different posts", func() {
		It("should make a request per post", func() {
			// Given two posts
			_, first := api.CreatePostWithCleanup(ctx, client, api.NewPostPayload().Build())
			_, second := api.CreatePostWithCleanup(ctx, client, api.NewPostPayload().Build())

			// When both are read concurrently
			var wg sync.WaitGroup

			for _, id := range []int64{first, second} {
				wg.Add(1)

				go func() {
					defer GinkgoRecover()
					defer wg.Done()

					_, err := posts.GetPost(ctx, id)
					Expect(err).NotTo(HaveOccurred())
				}()
			}

			releaseWhenWaiting(2)
			wg.Wait()

			// Then each has its own request
			Expect(transport.requests.Load()).To(BeEquivalentTo(2))
		})
	})

	Context("When posts are created concurrently", func() {
		It("should assign unique IDs", func() {
			// When many posts are created at once
			var (
				wg  sync.WaitGroup
				ids = make([]int64, callers)
			)

			for i := range callers {
				wg.Add(1)

				go func() {
					defer GinkgoRecover()
					defer wg.Done()

					post, err := client.CreatePost(ctx, api.NewPostPayload().Build())
					Expect(err).NotTo(HaveOccurred())

					ids[i] = api.IDOf(post)
				}()
			}

			wg.Wait()

			DeferCleanup(func(ctx SpecContext) {
				for _, id := range ids {
					_, _ = client.DeletePost(ctx, id)
				}
			})

			// Then no two share an ID
			seen := map[int64]struct{}{}

			for _, id := range ids {
				Expect(seen).NotTo(HaveKey(id))

				seen[id] = struct{}{}
			}
		})
	})
})

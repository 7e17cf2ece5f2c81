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

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/unikorn-cloud/posts/pkg/openapi"
	"github.com/unikorn-cloud/posts/pkg/postsapi"
	"github.com/unikorn-cloud/posts/pkg/postsapi/postsapitest"
	"github.com/unikorn-cloud/posts/pkg/query"
	"github.com/unikorn-cloud/posts/test/api"
)

var _ = Describe("Authentication", func() {
	Context("When the first login attempt is faulted", func() {
		It("should fail once without contacting the server then succeed", func() {
			// Given a client whose first login is injected with a failure
			posts := api.NewPostsClient(config, baseURL, postsapitest.WithLoginFault())

			// When logging in for the first time
			_, err := posts.Login(ctx, credentials())

			// Then the injected error is returned and no token is held
			Expect(err).To(MatchError(postsapitest.ErrFakeLogin))
			Expect(query.IsFatal(err)).To(BeTrue())
			Expect(posts.Token()).To(BeEmpty())

			// When logging in again
			response, err := posts.Login(ctx, credentials())

			// Then the server issues a token which the client keeps
			Expect(err).NotTo(HaveOccurred())
			Expect(response.Token).NotTo(BeEmpty())
			Expect(posts.Token()).To(Equal(response.Token))

			GinkgoWriter.Printf("Logged in as %s %s\n", response.User.FirstName, response.User.LastName)
		})

		It("should fault each client independently", func() {
			// Given two faulted clients
			first := api.NewPostsClient(config, baseURL, postsapitest.WithLoginFault())
			second := api.NewPostsClient(config, baseURL, postsapitest.WithLoginFault())

			// When the first client exhausts its fault
			_, err := first.Login(ctx, credentials())
			Expect(err).To(MatchError(postsapitest.ErrFakeLogin))

			_, err = first.Login(ctx, credentials())
			Expect(err).NotTo(HaveOccurred())

			// Then the second client still fails its first login
			_, err = second.Login(ctx, credentials())
			Expect(err).To(MatchError(postsapitest.ErrFakeLogin))
		})
	})

	DescribeTable("login accepts any credentials object",
		func(request openapi.LoginRequest) {
			// Given an unfaulted client
			posts := api.NewPostsClient(config, baseURL)

			// When logging in with the credentials
			response, err := posts.Login(ctx, request)

			// Then a token and user are returned
			Expect(err).NotTo(HaveOccurred())
			Expect(response.Token).NotTo(BeEmpty())
			Expect(response.User.Email).NotTo(BeEmpty())
		},
		Entry("with a username and password", openapi.LoginRequest{"username": "alice", "password": "secret"}),
		Entry("with only a username", openapi.LoginRequest{"username": "bob"}),
		Entry("with an empty object", openapi.LoginRequest{}),
	)

	Context("When a token is held", func() {
		It("should be dropped with the cache on logout", func() {
			// Given a logged in client with a cached post list
			posts := api.NewPostsClient(config, baseURL)

			_, err := posts.Login(ctx, credentials())
			Expect(err).NotTo(HaveOccurred())

			_, err = posts.GetPosts(ctx)
			Expect(err).NotTo(HaveOccurred())

			_, state, err := posts.GetPostsQuery().Select(postsapi.NoArgs{})
			Expect(err).NotTo(HaveOccurred())
			Expect(state.Status).To(Equal(query.StatusFulfilled))

			// When logging out
			posts.Logout()

			// Then the token and cache are gone
			Expect(posts.Token()).To(BeEmpty())

			_, state, err = posts.GetPostsQuery().Select(postsapi.NoArgs{})
			Expect(err).NotTo(HaveOccurred())
			Expect(state.Status).To(Equal(query.StatusUninitialized))
		})
	})

	Context("When the server requires authentication", func() {
		var protected *api.TestConfig

		BeforeEach(func() {
			if config.BaseURL != "" && !config.RequireAuth {
				Skip("external server is not configured to require authentication")
			}

			copied := *config
			copied.RequireAuth = true
			protected = &copied
		})

		It("should reject post mutations until logged in", func() {
			// Given a server requiring authentication
			url := api.StartServer(protected)
			posts := api.NewPostsClient(protected, url)

			// When creating a post anonymously
			_, err := posts.AddPost(ctx, "anonymous "+api.GenerateTestID())

			// Then the request is unauthorized and not retried
			Expect(err).To(HaveOccurred())
			Expect(query.IsHTTPStatus(err, http.StatusUnauthorized)).To(BeTrue())

			// When logged in
			_, err = posts.Login(ctx, credentials())
			Expect(err).NotTo(HaveOccurred())

			// Then the post is created
			post, err := posts.AddPost(ctx, "authenticated "+api.GenerateTestID())
			Expect(err).NotTo(HaveOccurred())

			DeferCleanup(func(ctx SpecContext) {
				_, _ = posts.DeletePost(ctx, post.Id)
			})
		})

		It("should serve reads without a token", func() {
			// Given a server requiring authentication
			url := api.StartServer(protected)
			posts := api.NewPostsClient(protected, url)

			// When listing posts anonymously
			list, err := posts.GetPosts(ctx)

			// Then the list is returned
			Expect(err).NotTo(HaveOccurred())
			Expect(list).NotTo(BeNil())
		})
	})
})

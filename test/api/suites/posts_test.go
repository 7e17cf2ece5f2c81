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
	"github.com/unikorn-cloud/posts/pkg/query"
	"github.com/unikorn-cloud/posts/test/api"

	"k8s.io/utils/ptr"
)

var _ = Describe("Posts", func() {
	var posts *postsapi.Client

	BeforeEach(func() {
		posts = api.NewPostsClient(config, baseURL)

		if config.RequireAuth {
			posts.SetToken(client.AuthToken())
		}
	})

	listState := func() query.State {
		_, state, err := posts.GetPostsQuery().Select(postsapi.NoArgs{})
		Expect(err).NotTo(HaveOccurred())

		return state
	}

	postState := func(id int64) query.State {
		_, state, err := posts.GetPostQuery().Select(id)
		Expect(err).NotTo(HaveOccurred())

		return state
	}

	Context("When listing posts", func() {
		It("should serve the cached list until it is invalidated", func() {
			// Given a cached post list
			before, err := posts.GetPosts(ctx)
			Expect(err).NotTo(HaveOccurred())

			// When a post is created behind the cache's back
			_, id := api.CreatePostWithCleanup(ctx, client, api.NewPostPayload().Build())

			// Then the cached list does not see it
			cached, err := posts.GetPosts(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(cached).To(HaveLen(len(before)))

			// When the list is invalidated
			Expect(posts.API().InvalidateTags(ctx, query.NewTag(postsapi.TagPosts, query.ListID))).To(Succeed())

			// Then the refetched list contains the post
			refetched, err := posts.GetPosts(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(refetched).To(ContainElement(HaveField("Id", id)))
		})

		It("should provide the list tag and a tag per post", func() {
			// Given a fetched post list
			list, err := posts.GetPosts(ctx)
			Expect(err).NotTo(HaveOccurred())

			// Then the entry provides the list tag and one tag per post
			state := listState()
			Expect(state.Tags).To(ContainElement(query.NewTag(postsapi.TagPosts, query.ListID)))
			Expect(state.Tags).To(HaveLen(len(list) + 1))
		})
	})

	Context("When adding a post", func() {
		It("should mark the list stale and include the post on refetch", func() {
			// Given a cached post list
			_, err := posts.GetPosts(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(listState().Stale).To(BeFalse())

			// When a post is added through the client
			name := "added " + api.GenerateTestID()

			post, err := posts.AddPost(ctx, name)
			Expect(err).NotTo(HaveOccurred())

			DeferCleanup(func(ctx SpecContext) {
				_, _ = client.DeletePost(ctx, post.Id)
			})

			// Then the list is stale
			Expect(listState().Stale).To(BeTrue())

			// And the refetched list includes the new post
			list, err := posts.GetPosts(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(ContainElement(And(
				HaveField("Id", post.Id),
				HaveField("Name", name),
			)))
		})

		It("should assign the ID on the server", func() {
			// Given a payload carrying a client chosen ID
			payload := api.NewPostPayload().WithID(999999).Build()

			// When the post is created
			post, id := api.CreatePostWithCleanup(ctx, client, payload)

			// Then the server assigned its own ID
			Expect(id).NotTo(Equal(int64(999999)))
			Expect(post).To(HaveKey("fetched_at"))
		})
	})

	Context("When updating a post", func() {
		var id int64

		BeforeEach(func() {
			_, id = api.CreatePostWithCleanup(ctx, client, api.NewPostPayload().WithName("original").Build())
		})

		It("should mark the cached post stale", func() {
			// Given a cached post
			_, err := posts.GetPost(ctx, id)
			Expect(err).NotTo(HaveOccurred())
			Expect(postState(id).Stale).To(BeFalse())

			// When the post is renamed
			updated, err := posts.UpdatePost(ctx, id, openapi.PostWrite{Name: ptr.To("renamed")})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Name).To(Equal("renamed"))

			// Then the cached post is stale and refetches the new name
			Expect(postState(id).Stale).To(BeTrue())

			post, err := posts.GetPost(ctx, id)
			Expect(err).NotTo(HaveOccurred())
			Expect(post.Name).To(Equal("renamed"))
		})

		It("should leave other posts cached", func() {
			// Given two cached posts
			_, other := api.CreatePostWithCleanup(ctx, client, api.NewPostPayload().Build())

			_, err := posts.GetPost(ctx, id)
			Expect(err).NotTo(HaveOccurred())

			_, err = posts.GetPost(ctx, other)
			Expect(err).NotTo(HaveOccurred())

			// When one is updated
			_, err = posts.UpdatePost(ctx, id, openapi.PostWrite{Name: ptr.To("renamed")})
			Expect(err).NotTo(HaveOccurred())

			// Then only that one is stale
			Expect(postState(id).Stale).To(BeTrue())
			Expect(postState(other).Stale).To(BeFalse())
		})

		It("should keep the name when none is given", func() {
			// When updating with an empty body
			updated, err := client.UpdatePost(ctx, id, map[string]interface{}{})

			// Then nothing changes
			Expect(err).NotTo(HaveOccurred())
			Expect(updated).To(HaveKeyWithValue("name", "original"))
		})
	})

	Context("When deleting a post", func() {
		It("should invalidate the post and make it unreadable", func() {
			// Given a cached post
			_, id := api.CreatePostWithCleanup(ctx, client, api.NewPostPayload().Build())

			_, err := posts.GetPost(ctx, id)
			Expect(err).NotTo(HaveOccurred())

			// When it is deleted
			response, err := posts.DeletePost(ctx, id)
			Expect(err).NotTo(HaveOccurred())
			Expect(response.Success).To(BeTrue())
			Expect(response.Id).To(Equal(id))

			// Then the cached entry is stale
			Expect(postState(id).Stale).To(BeTrue())

			// And reading it again is not found, without retrying
			_, err = posts.GetPost(ctx, id)
			Expect(err).To(HaveOccurred())
			Expect(query.IsHTTPStatus(err, http.StatusNotFound)).To(BeTrue())
			Expect(postState(id).Status).To(Equal(query.StatusRejected))
		})

		It("should report a missing post as not found", func() {
			// When deleting a post that never existed
			_, err := posts.DeletePost(ctx, 987654321)

			// Then the server reports not found
			Expect(query.IsHTTPStatus(err, http.StatusNotFound)).To(BeTrue())
		})
	})
})

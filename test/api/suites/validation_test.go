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

	"github.com/unikorn-cloud/posts/test/api"
)

var _ = Describe("Request validation", func() {
	var endpoints *api.Endpoints

	BeforeEach(func() {
		endpoints = api.NewEndpoints()
	})

	expectStatus := func(method, path string, body interface{}, status int) map[string]interface{} {
		response, err := client.Do(ctx, method, path, body)
		Expect(err).NotTo(HaveOccurred())
		Expect(response.StatusCode).To(Equal(status), "body: %s", string(response.Body))

		if len(response.Body) == 0 {
			return nil
		}

		decoded, err := response.JSON()
		Expect(err).NotTo(HaveOccurred())

		return decoded
	}

	Context("When creating posts", func() {
		DescribeTable("invalid payloads are rejected",
			func(payload map[string]interface{}) {
				// When posting the payload
				body := expectStatus(http.MethodPost, endpoints.CreatePost(), payload, http.StatusBadRequest)

				// Then an OAuth2 style error is returned
				Expect(body).To(HaveKey("error"))
				Expect(body).To(HaveKey("error_description"))
			},
			Entry("without a name", api.NewPostPayload().WithoutName().Build()),
			Entry("with an empty name", api.NewPostPayload().WithName("").Build()),
			Entry("with a mistyped name", map[string]interface{}{"name": 42}),
		)
	})

	Context("When addressing posts", func() {
		It("should reject a non-numeric ID", func() {
			expectStatus(http.MethodGet, "/posts/not-a-number", nil, http.StatusBadRequest)
		})

		It("should report a missing post", func() {
			expectStatus(http.MethodGet, endpoints.GetPost(987654321), nil, http.StatusNotFound)
		})

		It("should reject an update whose body ID differs from the path", func() {
			// Given a post
			_, id := api.CreatePostWithCleanup(ctx, client, api.NewPostPayload().Build())

			// When updating it with a different ID in the body
			payload := api.NewPostPayload().WithID(id + 1).Build()

			// Then the update is rejected
			expectStatus(http.MethodPut, endpoints.UpdatePost(id), payload, http.StatusBadRequest)
		})
	})

	Context("When managing pets", func() {
		DescribeTable("invalid payloads are rejected",
			func(payload map[string]interface{}) {
				expectStatus(http.MethodPost, endpoints.CreatePet(), payload, http.StatusBadRequest)
			},
			Entry("without a name", map[string]interface{}{"photoUrls": []string{}}),
			Entry("with an unknown status", api.NewPetPayload().WithStatus("lost").Build()),
		)

		It("should reject an unknown status filter", func() {
			expectStatus(http.MethodGet, endpoints.FindPetsByStatus("lost"), nil, http.StatusBadRequest)
		})

		It("should acknowledge a deletion without a body", func() {
			// Given a pet
			_, id := api.CreatePetWithCleanup(ctx, client, api.NewPetPayload().Build())

			// When it is deleted, then no content is returned
			Expect(expectStatus(http.MethodDelete, endpoints.DeletePet(id), nil, http.StatusNoContent)).To(BeNil())
		})
	})
})

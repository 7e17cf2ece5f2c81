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

var _ = Describe("Pets", func() {
	var posts *postsapi.Client

	BeforeEach(func() {
		posts = api.NewPostsClient(config, baseURL)
	})

	petState := func(id int64) query.State {
		_, state, err := posts.GetPetByIdQuery().Select(postsapi.GetPetByIdArgs{PetId: id})
		Expect(err).NotTo(HaveOccurred())

		return state
	}

	listState := func(status ...openapi.PetStatus) query.State {
		_, state, err := posts.FindPetsByStatusQuery().Select(postsapi.FindPetsByStatusArgs{Status: status})
		Expect(err).NotTo(HaveOccurred())

		return state
	}

	It("should declare the pet tag type", func() {
		Expect(posts.API().TagTypes()).To(ConsistOf(postsapi.TagPosts, postsapi.TagPet))
	})

	Context("When reading a pet", func() {
		It("should provide a tag for the pet", func() {
			// Given a pet
			_, id := api.CreatePetWithCleanup(ctx, client, api.NewPetPayload().Build())

			// When it is read
			pet, err := posts.GetPetById(ctx, id)
			Expect(err).NotTo(HaveOccurred())
			Expect(pet.PhotoUrls).NotTo(BeNil())

			// Then the entry provides its tag
			Expect(petState(id).Tags).To(ConsistOf(query.NewTag(postsapi.TagPet, query.ID(id))))
		})
	})

	Context("When finding pets by status", func() {
		It("should only return matching pets and provide the list tag", func() {
			// Given an available and a sold pet
			_, available := api.CreatePetWithCleanup(ctx, client, api.NewPetPayload().WithStatus("available").Build())
			_, sold := api.CreatePetWithCleanup(ctx, client, api.NewPetPayload().WithStatus("sold").Build())

			// When finding available pets
			pets, err := posts.FindPetsByStatus(ctx, openapi.Available)
			Expect(err).NotTo(HaveOccurred())

			// Then only available pets are returned
			Expect(pets).To(ContainElement(HaveField("Id", available)))
			Expect(pets).NotTo(ContainElement(HaveField("Id", sold)))
			Expect(pets).To(HaveEach(HaveField("Status", HaveValue(Equal(openapi.Available)))))

			// And the entry provides the list tag and one per pet
			tags := listState(openapi.Available).Tags
			Expect(tags).To(ContainElement(query.NewTag(postsapi.TagPet, query.ListID)))
			Expect(tags).To(ContainElement(query.NewTag(postsapi.TagPet, query.ID(available))))
		})
	})

	Context("When adding a pet", func() {
		It("should only invalidate the new pet", func() {
			// Given a cached list of available pets
			_, err := posts.FindPetsByStatus(ctx, openapi.Available)
			Expect(err).NotTo(HaveOccurred())

			// When a pet is added
			pet, err := posts.AddPet(ctx, openapi.PetWrite{
				Name:      "added " + api.GenerateTestID(),
				Status:    ptr.To(openapi.Available),
				PhotoUrls: []string{},
			})
			Expect(err).NotTo(HaveOccurred())

			DeferCleanup(func(ctx SpecContext) {
				_ = client.DeletePet(ctx, pet.Id)
			})

			// Then the list, which never provided the new pet's tag, stays fresh
			Expect(listState(openapi.Available).Stale).To(BeFalse())
		})

		It("should invalidate nothing when the request fails", func() {
			// Given a cached list of available pets
			_, err := posts.FindPetsByStatus(ctx, openapi.Available)
			Expect(err).NotTo(HaveOccurred())

			// When adding an invalid pet
			_, err = posts.AddPet(ctx, openapi.PetWrite{Status: ptr.To(openapi.Available), PhotoUrls: []string{}})

			// Then the request is rejected and the list stays fresh
			Expect(query.IsHTTPStatus(err, http.StatusBadRequest)).To(BeTrue())
			Expect(listState(openapi.Available).Stale).To(BeFalse())
		})
	})

	Context("When updating a pet", func() {
		It("should invalidate the pet and any list containing it", func() {
			// Given a cached pet and list
			_, id := api.CreatePetWithCleanup(ctx, client, api.NewPetPayload().WithStatus("pending").Build())

			_, err := posts.GetPetById(ctx, id)
			Expect(err).NotTo(HaveOccurred())

			_, err = posts.FindPetsByStatus(ctx, openapi.Pending)
			Expect(err).NotTo(HaveOccurred())

			// When the pet is sold
			updated, err := posts.UpdatePet(ctx, id, openapi.PetWrite{
				Name:      "sold " + api.GenerateTestID(),
				Status:    ptr.To(openapi.Sold),
				PhotoUrls: []string{"https://example.com/pet.png"},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Status).To(HaveValue(Equal(openapi.Sold)))

			// Then both entries are stale
			Expect(petState(id).Stale).To(BeTrue())
			Expect(listState(openapi.Pending).Stale).To(BeTrue())

			// And the refetched list no longer contains it
			pets, err := posts.FindPetsByStatus(ctx, openapi.Pending)
			Expect(err).NotTo(HaveOccurred())
			Expect(pets).NotTo(ContainElement(HaveField("Id", id)))
		})
	})

	Context("When deleting a pet", func() {
		It("should invalidate the pet", func() {
			// Given a cached pet
			_, id := api.CreatePetWithCleanup(ctx, client, api.NewPetPayload().Build())

			_, err := posts.GetPetById(ctx, id)
			Expect(err).NotTo(HaveOccurred())

			// When it is deleted
			Expect(posts.DeletePet(ctx, id)).To(Succeed())

			// Then the entry is stale and the pet is gone
			Expect(petState(id).Stale).To(BeTrue())

			_, err = posts.GetPetById(ctx, id)
			Expect(query.IsHTTPStatus(err, http.StatusNotFound)).To(BeTrue())
		})
	})
})

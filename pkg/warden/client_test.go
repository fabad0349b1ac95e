package warden_test

import (
	"context"
	"net/http"

	. "github.com/docshelf/warden/pkg/warden"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/ghttp"
)

var _ = Describe("Client", func() {
	var (
		server *ghttp.Server
		client *Client

		ctx context.Context
	)

	BeforeEach(func() {
		server = ghttp.NewServer()
		ctx = context.Background()

		var err error
		client, err = Dial(server.Addr(), WithoutTransportSecurity())
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		server.Close()
	})

	Describe("#Dial", func() {
		It("fails when no transport security is supplied", func() {
			_, err := Dial(server.Addr())

			Expect(err).To(MatchError("warden: no transport security set (use warden.WithTLSConfig() to set)"))
		})
	})

	Describe("#Authorize", func() {
		It("returns the server's decision", func() {
			server.AppendHandlers(ghttp.CombineHandlers(
				ghttp.VerifyRequest(http.MethodPost, "/v1/authorize"),
				ghttp.VerifyJSON(`{
					"principal": {"id": "viewer1", "issuer": "https://issuer.example.com"},
					"action": "view",
					"resource_type": "document"
				}`),
				ghttp.RespondWithJSONEncoded(http.StatusOK, map[string]string{"decision": "allow"}),
			))

			decision, err := client.Authorize(ctx, Principal{
				ID:     "viewer1",
				Issuer: "https://issuer.example.com",
			}, ActionView, ResourceTypeDocument)

			Expect(err).NotTo(HaveOccurred())
			Expect(decision).To(Equal(DecisionAllow))
		})

		It("maps an invalid action response back to the sentinel error", func() {
			server.AppendHandlers(ghttp.RespondWithJSONEncoded(
				http.StatusUnprocessableEntity,
				map[string]string{"error": ErrInvalidAction.Error()},
			))

			_, err := client.Authorize(ctx, Principal{ID: "viewer1"}, "publish", ResourceTypeDocument)

			Expect(err).To(Equal(ErrInvalidAction))
		})

		It("fails with a connection error when the server is unreachable", func() {
			server.Close()

			_, err := client.Authorize(ctx, Principal{ID: "viewer1"}, ActionView, ResourceTypeDocument)

			Expect(err).To(Equal(ErrFailedToConnect))
		})
	})

	Describe("#ProvisionGroups", func() {
		It("posts the definitions", func() {
			server.AppendHandlers(ghttp.CombineHandlers(
				ghttp.VerifyRequest(http.MethodPost, "/v1/groups/provision"),
				ghttp.RespondWith(http.StatusNoContent, nil),
			))

			err := client.ProvisionGroups(ctx, DefaultGroupDefinitions...)

			Expect(err).NotTo(HaveOccurred())
		})

		It("surfaces a provisioning conflict", func() {
			server.AppendHandlers(ghttp.RespondWithJSONEncoded(
				http.StatusConflict,
				map[string]string{"error": ErrProvisioningConflict.Error()},
			))

			err := client.ProvisionGroups(ctx, DefaultGroupDefinitions...)

			Expect(err).To(Equal(ErrProvisioningConflict))
		})
	})

	Describe("#CreateGroup", func() {
		It("returns the created group", func() {
			server.AppendHandlers(ghttp.CombineHandlers(
				ghttp.VerifyRequest(http.MethodPost, "/v1/groups"),
				ghttp.RespondWithJSONEncoded(http.StatusCreated, map[string]interface{}{
					"group": map[string]string{"name": "Reviewers"},
				}),
			))

			group, err := client.CreateGroup(ctx, "Reviewers")

			Expect(err).NotTo(HaveOccurred())
			Expect(group).To(Equal(Group{Name: "Reviewers"}))
		})

		It("maps a duplicate group onto the sentinel error", func() {
			server.AppendHandlers(ghttp.RespondWithJSONEncoded(
				http.StatusConflict,
				map[string]string{"error": ErrGroupAlreadyExists.Error()},
			))

			_, err := client.CreateGroup(ctx, "Reviewers")

			Expect(err).To(Equal(ErrGroupAlreadyExists))
		})
	})

	Describe("#AssignPrincipal", func() {
		It("posts the assignment", func() {
			server.AppendHandlers(ghttp.CombineHandlers(
				ghttp.VerifyRequest(http.MethodPost, "/v1/groups/Reviewers/assignments"),
				ghttp.VerifyJSON(`{"principal": {"id": "user1", "issuer": "https://issuer.example.com"}}`),
				ghttp.RespondWith(http.StatusNoContent, nil),
			))

			err := client.AssignPrincipal(ctx, "Reviewers", Principal{
				ID:     "user1",
				Issuer: "https://issuer.example.com",
			})

			Expect(err).NotTo(HaveOccurred())
		})

		It("maps a missing group onto the sentinel error", func() {
			server.AppendHandlers(ghttp.RespondWithJSONEncoded(
				http.StatusNotFound,
				map[string]string{"error": ErrGroupNotFound.Error()},
			))

			err := client.AssignPrincipal(ctx, "Reviewers", Principal{ID: "user1"})

			Expect(err).To(Equal(ErrGroupNotFound))
		})
	})

	Describe("#ListPrincipalGroups", func() {
		It("queries by principal identity", func() {
			server.AppendHandlers(ghttp.CombineHandlers(
				ghttp.VerifyRequest(http.MethodGet, "/v1/memberships", "issuer=https%3A%2F%2Fissuer.example.com&principal_id=user1"),
				ghttp.RespondWithJSONEncoded(http.StatusOK, map[string]interface{}{
					"groups": []map[string]string{{"name": "Viewers"}, {"name": "Editors"}},
				}),
			))

			groups, err := client.ListPrincipalGroups(ctx, Principal{
				ID:     "user1",
				Issuer: "https://issuer.example.com",
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(groups).To(ConsistOf(Group{Name: "Viewers"}, Group{Name: "Editors"}))
		})
	})

	Describe("unrecognized server errors", func() {
		It("maps a 401 onto ErrUnauthenticated", func() {
			server.AppendHandlers(ghttp.RespondWith(http.StatusUnauthorized, nil))

			err := client.DeleteGroup(ctx, "Reviewers")

			Expect(err).To(Equal(ErrUnauthenticated))
		})

		It("maps anything else onto ErrUnknown", func() {
			server.AppendHandlers(ghttp.RespondWith(http.StatusInternalServerError, nil))

			err := client.DeleteGroup(ctx, "Reviewers")

			Expect(err).To(Equal(ErrUnknown))
		})
	})
})

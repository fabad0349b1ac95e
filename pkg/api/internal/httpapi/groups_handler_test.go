package httpapi_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"code.cloudfoundry.org/lager/lagertest"
	"github.com/docshelf/warden/pkg/api/internal/httpapi"
	"github.com/docshelf/warden/pkg/api/repos/inmemory"
	"github.com/docshelf/warden/pkg/logx"
	"github.com/docshelf/warden/pkg/logx/lagerx"
	"github.com/docshelf/warden/pkg/warden"
	"github.com/go-chi/chi/v5"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Groups endpoints", func() {
	var (
		router         chi.Router
		store          *inmemory.InMemoryStore
		securityLogger *recordingSecurityLogger
		logger         logx.Logger
	)

	do := func(method, path string, body interface{}) *httptest.ResponseRecorder {
		var reader *bytes.Reader
		if body != nil {
			raw, err := json.Marshal(body)
			Expect(err).NotTo(HaveOccurred())
			reader = bytes.NewReader(raw)
		} else {
			reader = bytes.NewReader(nil)
		}

		req := httptest.NewRequest(method, path, reader)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		return rec
	}

	BeforeEach(func() {
		store = inmemory.NewInMemoryStore()
		securityLogger = &recordingSecurityLogger{}
		logger = lagerx.NewLogger(lagertest.NewTestLogger("warden-test"))

		router = httpapi.NewRouter(logger, securityLogger, store)
	})

	Describe("POST /v1/groups", func() {
		It("creates the group", func() {
			rec := do(http.MethodPost, "/v1/groups", map[string]interface{}{
				"name": "Reviewers",
				"permissions": []warden.Permission{
					{Action: warden.ActionView, ResourceType: warden.ResourceTypeDocument},
				},
			})

			Expect(rec.Code).To(Equal(http.StatusCreated))

			var res struct {
				Group warden.Group `json:"group"`
			}
			Expect(json.NewDecoder(rec.Body).Decode(&res)).To(Succeed())
			Expect(res.Group.Name).To(Equal("Reviewers"))
		})

		It("conflicts on duplicate names", func() {
			Expect(do(http.MethodPost, "/v1/groups", map[string]interface{}{"name": "Reviewers"}).Code).To(Equal(http.StatusCreated))

			rec := do(http.MethodPost, "/v1/groups", map[string]interface{}{"name": "Reviewers"})
			Expect(rec.Code).To(Equal(http.StatusConflict))
		})

		It("rejects an empty name", func() {
			rec := do(http.MethodPost, "/v1/groups", map[string]interface{}{"name": ""})
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})

		It("rejects undefined actions", func() {
			rec := do(http.MethodPost, "/v1/groups", map[string]interface{}{
				"name": "Reviewers",
				"permissions": []map[string]string{
					{"action": "publish", "resource_type": "document"},
				},
			})
			Expect(rec.Code).To(Equal(http.StatusUnprocessableEntity))
		})
	})

	Describe("POST /v1/groups/provision", func() {
		It("provisions the standard catalog and is idempotent", func() {
			body := map[string]interface{}{"definitions": warden.DefaultGroupDefinitions}

			Expect(do(http.MethodPost, "/v1/groups/provision", body).Code).To(Equal(http.StatusNoContent))
			Expect(do(http.MethodPost, "/v1/groups/provision", body).Code).To(Equal(http.StatusNoContent))

			rec := do(http.MethodGet, "/v1/groups/Viewers/permissions", nil)
			Expect(rec.Code).To(Equal(http.StatusOK))

			var res struct {
				Permissions []warden.Permission `json:"permissions"`
			}
			Expect(json.NewDecoder(rec.Body).Decode(&res)).To(Succeed())
			Expect(res.Permissions).To(ConsistOf(warden.Permission{
				Action:       warden.ActionView,
				ResourceType: warden.ResourceTypeDocument,
			}))
		})

		It("conflicts when one group is declared twice with different sets", func() {
			rec := do(http.MethodPost, "/v1/groups/provision", map[string]interface{}{
				"definitions": []warden.GroupDefinition{
					{Name: "Viewers", Permissions: []warden.Permission{
						{Action: warden.ActionView, ResourceType: warden.ResourceTypeDocument},
					}},
					{Name: "Viewers", Permissions: []warden.Permission{
						{Action: warden.ActionEdit, ResourceType: warden.ResourceTypeDocument},
					}},
				},
			})

			Expect(rec.Code).To(Equal(http.StatusConflict))

			Expect(do(http.MethodGet, "/v1/groups/Viewers/permissions", nil).Code).To(Equal(http.StatusNotFound))
		})

		It("records the provisioning in the security log", func() {
			do(http.MethodPost, "/v1/groups/provision", map[string]interface{}{
				"definitions": warden.DefaultGroupDefinitions,
			})

			events := securityLogger.Events()
			Expect(events).To(HaveLen(1))
			Expect(events[0].Signature).To(Equal(httpapi.ProvisionSignature))
		})
	})

	Describe("DELETE /v1/groups/{name}", func() {
		It("deletes the group", func() {
			Expect(do(http.MethodPost, "/v1/groups", map[string]interface{}{"name": "Reviewers"}).Code).To(Equal(http.StatusCreated))

			Expect(do(http.MethodDelete, "/v1/groups/Reviewers", nil).Code).To(Equal(http.StatusNoContent))
			Expect(do(http.MethodGet, "/v1/groups/Reviewers/permissions", nil).Code).To(Equal(http.StatusNotFound))
		})

		It("404s when the group does not exist", func() {
			Expect(do(http.MethodDelete, "/v1/groups/Reviewers", nil).Code).To(Equal(http.StatusNotFound))
		})
	})
})

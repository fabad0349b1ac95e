package httpapi_test

import (
	"bytes"
	"context"
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

var _ = Describe("Authorize endpoint", func() {
	var (
		router         chi.Router
		store          *inmemory.InMemoryStore
		securityLogger *recordingSecurityLogger
		logger         logx.Logger

		viewer warden.Principal
		admin  warden.Principal
	)

	authorize := func(principal warden.Principal, action warden.Action) *httptest.ResponseRecorder {
		body, err := json.Marshal(map[string]interface{}{
			"principal":     principal,
			"action":        action,
			"resource_type": warden.ResourceTypeDocument,
		})
		Expect(err).NotTo(HaveOccurred())

		req := httptest.NewRequest(http.MethodPost, "/v1/authorize", bytes.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		return rec
	}

	decision := func(rec *httptest.ResponseRecorder) warden.Decision {
		var res struct {
			Decision warden.Decision `json:"decision"`
		}
		Expect(json.NewDecoder(rec.Body).Decode(&res)).To(Succeed())
		return res.Decision
	}

	BeforeEach(func() {
		store = inmemory.NewInMemoryStore()
		securityLogger = &recordingSecurityLogger{}
		logger = lagerx.NewLogger(lagertest.NewTestLogger("warden-test"))

		router = httpapi.NewRouter(logger, securityLogger, store)

		ctx := context.Background()
		Expect(store.ProvisionGroups(ctx, logger, warden.DefaultGroupDefinitions)).To(Succeed())

		viewer = warden.Principal{ID: "viewer1", Issuer: "https://issuer.example.com"}
		admin = warden.Principal{ID: "admin1", Issuer: "https://issuer.example.com"}

		Expect(store.AssignPrincipal(ctx, logger, "Viewers", viewer)).To(Succeed())
		Expect(store.AssignPrincipal(ctx, logger, "Admins", admin)).To(Succeed())
	})

	It("allows an action granted through group membership", func() {
		rec := authorize(viewer, warden.ActionView)

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(decision(rec)).To(Equal(warden.DecisionAllow))
	})

	It("denies an action the principal's groups do not grant", func() {
		rec := authorize(viewer, warden.ActionEdit)

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(decision(rec)).To(Equal(warden.DecisionDeny))
	})

	It("allows every action for an admin", func() {
		for _, action := range warden.Actions {
			rec := authorize(admin, action)

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(decision(rec)).To(Equal(warden.DecisionAllow))
		}
	})

	It("denies an unknown principal without erroring", func() {
		rec := authorize(warden.Principal{ID: "stranger", Issuer: "https://issuer.example.com"}, warden.ActionView)

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(decision(rec)).To(Equal(warden.DecisionDeny))
	})

	It("denies an anonymous principal before touching the store", func() {
		rec := authorize(warden.Principal{}, warden.ActionView)

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(decision(rec)).To(Equal(warden.DecisionDeny))
	})

	It("rejects an undefined action instead of deciding", func() {
		rec := authorize(viewer, "publish")

		Expect(rec.Code).To(Equal(http.StatusUnprocessableEntity))

		var res struct {
			Error string `json:"error"`
		}
		Expect(json.NewDecoder(rec.Body).Decode(&res)).To(Succeed())
		Expect(res.Error).To(Equal(warden.ErrInvalidAction.Error()))
	})

	It("rejects a malformed body", func() {
		req := httptest.NewRequest(http.MethodPost, "/v1/authorize", bytes.NewReader([]byte("{")))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		Expect(rec.Code).To(Equal(http.StatusBadRequest))
	})

	It("records every check in the security log", func() {
		authorize(viewer, warden.ActionView)
		authorize(viewer, warden.ActionEdit)

		var signatures []string
		for _, event := range securityLogger.Events() {
			signatures = append(signatures, event.Signature)
		}

		Expect(signatures).To(Equal([]string{
			httpapi.AuthzCheckSignature,
			httpapi.AuthzAllowSignature,
			httpapi.AuthzCheckSignature,
			httpapi.AuthzDenySignature,
		}))
	})
})

package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/docshelf/warden/pkg/api/repos"
	"github.com/docshelf/warden/pkg/logx"
)

type Store interface {
	repos.GroupRepo
	repos.PermissionRepo
	repos.MembershipRepo
}

// NewRouter wires the decision and administration endpoints. Middleware
// (context stamping, recovery, metrics, authn) is chained by the caller.
func NewRouter(
	logger logx.Logger,
	securityLogger SecurityLogger,
	store Store,
	middlewares ...func(http.Handler) http.Handler,
) chi.Router {
	authorizeHandler := NewAuthorizeHandler(logger, securityLogger, store)
	groupsHandler := NewGroupsHandler(logger, securityLogger, store)
	assignmentsHandler := NewAssignmentsHandler(logger, securityLogger, store)

	r := chi.NewRouter()

	r.Use(ContextMiddleware)
	r.Use(RecoveryMiddleware(logger))
	for _, mw := range middlewares {
		r.Use(mw)
	}

	r.Route("/v1", func(r chi.Router) {
		r.Post("/authorize", authorizeHandler.Authorize)

		r.Post("/groups", groupsHandler.CreateGroup)
		r.Post("/groups/provision", groupsHandler.ProvisionGroups)
		r.Delete("/groups/{name}", groupsHandler.DeleteGroup)
		r.Get("/groups/{name}/permissions", groupsHandler.ListGroupPermissions)

		r.Post("/groups/{name}/assignments", assignmentsHandler.AssignPrincipal)
		r.Delete("/groups/{name}/assignments", assignmentsHandler.UnassignPrincipal)

		r.Get("/memberships", assignmentsHandler.ListPrincipalGroups)
	})

	return r
}

package httpapi

import (
	"net/http"

	"github.com/docshelf/warden/pkg/api/repos"
	"github.com/docshelf/warden/pkg/logx"
	"github.com/docshelf/warden/pkg/warden"
)

type AuthorizeHandler struct {
	logger         logx.Logger
	securityLogger SecurityLogger
	permissionRepo repos.PermissionRepo
}

func NewAuthorizeHandler(
	logger logx.Logger,
	securityLogger SecurityLogger,
	permissionRepo repos.PermissionRepo,
) *AuthorizeHandler {
	return &AuthorizeHandler{
		logger:         logger,
		securityLogger: securityLogger,
		permissionRepo: permissionRepo,
	}
}

type authorizeRequest struct {
	Principal    warden.Principal    `json:"principal"`
	Action       warden.Action       `json:"action"`
	ResourceType warden.ResourceType `json:"resource_type"`
}

type authorizeResponse struct {
	Decision warden.Decision `json:"decision"`
}

// Authorize is the decision endpoint. Deny is a successful response, not
// an error; the caller maps it to its own forbidden semantics. The only
// client error on this path is an action outside the defined set.
func (h *AuthorizeHandler) Authorize(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req authorizeRequest
	if err := decodeJSON(r, h.logger, &req); err != nil {
		respondJSON(w, h.logger, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}

	logger := h.logger.WithName("authorize").WithData(logx.Data{
		Key:   "principal.id",
		Value: req.Principal.ID,
	}, logx.Data{
		Key:   "principal.issuer",
		Value: req.Principal.Issuer,
	}, logx.Data{
		Key:   "permission.action",
		Value: req.Action,
	}, logx.Data{
		Key:   "permission.resourceType",
		Value: req.ResourceType,
	})
	logger.Debug(starting)

	extensions := []logx.SecurityData{
		{Key: "principalID", Value: req.Principal.ID},
		{Key: "permission", Value: string(req.Action)},
		{Key: "resourceType", Value: string(req.ResourceType)},
	}

	h.securityLogger.Log(ctx, AuthzCheckSignature, "Permission check", extensions...)

	if !req.Action.Valid() {
		logger.Error(errInvalidActionName, warden.ErrInvalidAction)
		respondError(w, logger, warden.ErrInvalidAction)
		return
	}

	// Fail closed: anonymous principals are denied before the store is
	// consulted.
	if req.Principal.Anonymous() {
		logger.Debug(errAnonymousPrincipal)
		h.securityLogger.Log(ctx, AuthzDenySignature, "Anonymous principal denied", extensions...)
		respondJSON(w, logger, http.StatusOK, authorizeResponse{Decision: warden.DecisionDeny})
		return
	}

	query := repos.HasPermissionQuery{
		Principal:    req.Principal,
		Action:       req.Action,
		ResourceType: req.ResourceType,
	}

	found, err := h.permissionRepo.HasPermission(ctx, logger, query)
	if err != nil {
		// An unknown principal is a deny; every other store failure is
		// surfaced so it can never be mistaken for an allow.
		if err == warden.ErrPrincipalNotFound {
			h.securityLogger.Log(ctx, AuthzDenySignature, "Unknown principal denied", extensions...)
			respondJSON(w, logger, http.StatusOK, authorizeResponse{Decision: warden.DecisionDeny})
			return
		}

		logger.Error(errFailedAuthorization, err)
		respondError(w, logger, err)
		return
	}

	decision := warden.DecisionDeny
	signature := AuthzDenySignature
	name := "Permission denied"
	if found {
		decision = warden.DecisionAllow
		signature = AuthzAllowSignature
		name = "Permission granted"
	}

	h.securityLogger.Log(ctx, signature, name, extensions...)

	logger.Debug(success)
	respondJSON(w, logger, http.StatusOK, authorizeResponse{Decision: decision})
}

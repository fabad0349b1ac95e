package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/docshelf/warden/pkg/api/repos"
	"github.com/docshelf/warden/pkg/logx"
	"github.com/docshelf/warden/pkg/warden"
)

type AssignmentsHandler struct {
	logger         logx.Logger
	securityLogger SecurityLogger
	membershipRepo repos.MembershipRepo
}

func NewAssignmentsHandler(
	logger logx.Logger,
	securityLogger SecurityLogger,
	membershipRepo repos.MembershipRepo,
) *AssignmentsHandler {
	return &AssignmentsHandler{
		logger:         logger,
		securityLogger: securityLogger,
		membershipRepo: membershipRepo,
	}
}

type assignmentRequest struct {
	Principal warden.Principal `json:"principal"`
}

type listPrincipalGroupsResponse struct {
	Groups []warden.Group `json:"groups"`
}

func (h *AssignmentsHandler) AssignPrincipal(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	groupName := chi.URLParam(r, "name")

	var req assignmentRequest
	if err := decodeJSON(r, h.logger, &req); err != nil {
		respondJSON(w, h.logger, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}

	logger := h.logger.WithName("assign-principal").WithData(logx.Data{
		Key:   "group.name",
		Value: groupName,
	}, logx.Data{
		Key:   "principal.id",
		Value: req.Principal.ID,
	})
	logger.Debug(starting)

	if req.Principal.Anonymous() {
		logger.Debug(errMissingPrincipalID)
		respondJSON(w, logger, http.StatusBadRequest, errorResponse{Error: "principal id cannot be empty"})
		return
	}

	h.securityLogger.Log(ctx, AssignSignature, "Principal assigned to group",
		logx.SecurityData{Key: "principalID", Value: req.Principal.ID},
		logx.SecurityData{Key: "group", Value: groupName},
	)

	if err := h.membershipRepo.AssignPrincipal(ctx, logger, groupName, req.Principal); err != nil {
		respondError(w, logger, err)
		return
	}

	logger.Debug(success)
	respondJSON(w, logger, http.StatusNoContent, nil)
}

func (h *AssignmentsHandler) UnassignPrincipal(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	groupName := chi.URLParam(r, "name")

	var req assignmentRequest
	if err := decodeJSON(r, h.logger, &req); err != nil {
		respondJSON(w, h.logger, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}

	logger := h.logger.WithName("unassign-principal").WithData(logx.Data{
		Key:   "group.name",
		Value: groupName,
	}, logx.Data{
		Key:   "principal.id",
		Value: req.Principal.ID,
	})
	logger.Debug(starting)

	h.securityLogger.Log(ctx, UnassignSignature, "Principal unassigned from group",
		logx.SecurityData{Key: "principalID", Value: req.Principal.ID},
		logx.SecurityData{Key: "group", Value: groupName},
	)

	if err := h.membershipRepo.UnassignPrincipal(ctx, logger, groupName, req.Principal); err != nil {
		respondError(w, logger, err)
		return
	}

	logger.Debug(success)
	respondJSON(w, logger, http.StatusNoContent, nil)
}

func (h *AssignmentsHandler) ListPrincipalGroups(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	principal := warden.Principal{
		ID:     r.URL.Query().Get("principal_id"),
		Issuer: r.URL.Query().Get("issuer"),
	}

	logger := h.logger.WithName("list-principal-groups").WithData(logx.Data{
		Key:   "principal.id",
		Value: principal.ID,
	})
	logger.Debug(starting)

	groups, err := h.membershipRepo.ListPrincipalGroups(ctx, logger, repos.ListPrincipalGroupsQuery{
		Principal: principal,
	})
	if err != nil {
		respondError(w, logger, err)
		return
	}

	logger.Debug(success)
	respondJSON(w, logger, http.StatusOK, listPrincipalGroupsResponse{Groups: groups})
}

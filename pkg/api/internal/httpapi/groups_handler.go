package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/docshelf/warden/pkg/api/repos"
	"github.com/docshelf/warden/pkg/logx"
	"github.com/docshelf/warden/pkg/warden"
)

type GroupsHandler struct {
	logger         logx.Logger
	securityLogger SecurityLogger
	groupRepo      repos.GroupRepo
}

func NewGroupsHandler(
	logger logx.Logger,
	securityLogger SecurityLogger,
	groupRepo repos.GroupRepo,
) *GroupsHandler {
	return &GroupsHandler{
		logger:         logger,
		securityLogger: securityLogger,
		groupRepo:      groupRepo,
	}
}

type createGroupRequest struct {
	Name        string              `json:"name"`
	Permissions []warden.Permission `json:"permissions"`
}

type groupResponse struct {
	Group warden.Group `json:"group"`
}

type provisionGroupsRequest struct {
	Definitions []warden.GroupDefinition `json:"definitions"`
}

type listGroupPermissionsResponse struct {
	Permissions []warden.Permission `json:"permissions"`
}

func (h *GroupsHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createGroupRequest
	if err := decodeJSON(r, h.logger, &req); err != nil {
		respondJSON(w, h.logger, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}

	logger := h.logger.WithName("create-group").WithData(logx.Data{
		Key:   "group.name",
		Value: req.Name,
	})
	logger.Debug(starting)

	if req.Name == "" {
		logger.Debug(errMissingGroupName)
		respondJSON(w, logger, http.StatusBadRequest, errorResponse{Error: "group name cannot be empty"})
		return
	}

	group, err := h.groupRepo.CreateGroup(ctx, logger, req.Name, req.Permissions...)
	if err != nil {
		respondError(w, logger, err)
		return
	}

	logger.Debug(success)
	respondJSON(w, logger, http.StatusCreated, groupResponse{Group: group})
}

func (h *GroupsHandler) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := chi.URLParam(r, "name")

	logger := h.logger.WithName("delete-group").WithData(logx.Data{
		Key:   "group.name",
		Value: name,
	})
	logger.Debug(starting)

	if err := h.groupRepo.DeleteGroup(ctx, logger, name); err != nil {
		respondError(w, logger, err)
		return
	}

	logger.Debug(success)
	respondJSON(w, logger, http.StatusNoContent, nil)
}

// ProvisionGroups is idempotent and all-or-nothing: conflicting
// definitions reject the whole request and leave the catalog untouched.
func (h *GroupsHandler) ProvisionGroups(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req provisionGroupsRequest
	if err := decodeJSON(r, h.logger, &req); err != nil {
		respondJSON(w, h.logger, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}

	logger := h.logger.WithName("provision-groups")
	logger.Debug(starting)

	var names []logx.SecurityData
	for _, def := range req.Definitions {
		if len(names) < 6 {
			names = append(names, logx.SecurityData{Key: "group", Value: def.Name})
		}
	}
	h.securityLogger.Log(ctx, ProvisionSignature, "Group provisioning", names...)

	if err := h.groupRepo.ProvisionGroups(ctx, logger, req.Definitions); err != nil {
		respondError(w, logger, err)
		return
	}

	logger.Debug(success)
	respondJSON(w, logger, http.StatusNoContent, nil)
}

func (h *GroupsHandler) ListGroupPermissions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := chi.URLParam(r, "name")

	logger := h.logger.WithName("list-group-permissions").WithData(logx.Data{
		Key:   "group.name",
		Value: name,
	})
	logger.Debug(starting)

	permissions, err := h.groupRepo.ListGroupPermissions(ctx, logger, repos.ListGroupPermissionsQuery{
		GroupName: name,
	})
	if err != nil {
		respondError(w, logger, err)
		return
	}

	logger.Debug(success)
	respondJSON(w, logger, http.StatusOK, listGroupPermissionsResponse{Permissions: permissions})
}

package repos

import (
	"context"

	"github.com/docshelf/warden/pkg/logx"
	"github.com/docshelf/warden/pkg/warden"
)

type HasPermissionQuery struct {
	Principal    warden.Principal
	Action       warden.Action
	ResourceType warden.ResourceType
}

// PermissionRepo answers the access-control question. HasPermission is a
// pure read of current membership and permission state: the requested
// action is checked against the union of the permission sets of every
// group the principal belongs to. An unknown principal yields
// (false, nil), never an error.
type PermissionRepo interface {
	HasPermission(
		ctx context.Context,
		logger logx.Logger,
		query HasPermissionQuery,
	) (bool, error)
}

package repos

import (
	"context"

	"github.com/docshelf/warden/pkg/logx"
	"github.com/docshelf/warden/pkg/warden"
)

type ListGroupPermissionsQuery struct {
	GroupName string
}

type GroupRepo interface {
	CreateGroup(
		ctx context.Context,
		logger logx.Logger,
		name string,
		permissions ...warden.Permission,
	) (warden.Group, error)

	DeleteGroup(
		ctx context.Context,
		logger logx.Logger,
		name string,
	) error

	// ProvisionGroups idempotently creates the declared groups and
	// synchronizes each group's permission set to the declared one.
	// Memberships are never touched. Conflicting definitions abort the
	// whole call with warden.ErrProvisioningConflict; nothing is applied.
	ProvisionGroups(
		ctx context.Context,
		logger logx.Logger,
		definitions []warden.GroupDefinition,
	) error

	ListGroupPermissions(
		ctx context.Context,
		logger logx.Logger,
		query ListGroupPermissionsQuery,
	) ([]warden.Permission, error)
}

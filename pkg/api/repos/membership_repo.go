package repos

import (
	"context"

	"github.com/docshelf/warden/pkg/logx"
	"github.com/docshelf/warden/pkg/warden"
)

type ListPrincipalGroupsQuery struct {
	Principal warden.Principal
}

type MembershipRepo interface {
	AssignPrincipal(
		ctx context.Context,
		logger logx.Logger,
		groupName string,
		principal warden.Principal,
	) error

	UnassignPrincipal(
		ctx context.Context,
		logger logx.Logger,
		groupName string,
		principal warden.Principal,
	) error

	ListPrincipalGroups(
		ctx context.Context,
		logger logx.Logger,
		query ListPrincipalGroupsQuery,
	) ([]warden.Group, error)
}

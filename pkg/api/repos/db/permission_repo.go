package db

import (
	"context"

	"github.com/docshelf/warden/pkg/api/repos"
	"github.com/docshelf/warden/pkg/logx"
	"github.com/docshelf/warden/pkg/warden"
)

// HasPermission resolves the union of the principal's group permission
// sets with a single join. Principals the store has never seen produce a
// zero count, which is a plain deny.
func (s *DataService) HasPermission(
	ctx context.Context,
	logger logx.Logger,
	query repos.HasPermissionQuery,
) (bool, error) {
	if !query.Action.Valid() {
		return false, warden.ErrInvalidAction
	}

	return hasPermission(
		ctx,
		logger.WithName("data-service"),
		s.conn,
		query.Principal,
		string(query.Action),
		string(query.ResourceType),
	)
}

package inmemory

import (
	"context"

	"github.com/docshelf/warden/pkg/api/repos"
	"github.com/docshelf/warden/pkg/logx"
	"github.com/docshelf/warden/pkg/warden"
)

// HasPermission unions the permission sets of every group the principal
// belongs to. A principal with no memberships, or one the store has never
// seen, is denied without error.
func (s *InMemoryStore) HasPermission(
	ctx context.Context,
	logger logx.Logger,
	query repos.HasPermissionQuery,
) (bool, error) {
	if !query.Action.Valid() {
		return false, warden.ErrInvalidAction
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	want := warden.Permission{
		Action:       query.Action,
		ResourceType: query.ResourceType,
	}

	for _, groupName := range s.memberships[query.Principal] {
		for _, p := range s.permissions[groupName] {
			if p == want {
				return true, nil
			}
		}
	}

	return false, nil
}

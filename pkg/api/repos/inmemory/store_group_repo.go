package inmemory

import (
	"context"

	"github.com/docshelf/warden/pkg/api/repos"
	"github.com/docshelf/warden/pkg/logx"
	"github.com/docshelf/warden/pkg/warden"
)

func (s *InMemoryStore) CreateGroup(
	ctx context.Context,
	logger logx.Logger,
	name string,
	permissions ...warden.Permission,
) (warden.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range permissions {
		if !p.Action.Valid() {
			return warden.Group{}, warden.ErrInvalidAction
		}
	}

	if _, exists := s.groups[name]; exists {
		return warden.Group{}, warden.ErrGroupAlreadyExists
	}

	group := warden.Group{
		Name: name,
	}
	s.groups[name] = group
	s.permissions[name] = dedupePermissions(permissions)

	return group, nil
}

func (s *InMemoryStore) DeleteGroup(
	ctx context.Context,
	logger logx.Logger,
	name string,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.groups[name]; !exists {
		return warden.ErrGroupNotFound
	}

	delete(s.groups, name)
	delete(s.permissions, name)

	// "Cascade": remove memberships of the deleted group
	for principal, groupNames := range s.memberships {
		for i, groupName := range groupNames {
			if groupName == name {
				s.memberships[principal] = append(groupNames[:i], groupNames[i+1:]...)
				logger.Debug(success, logx.Data{
					Key:   "principal.id",
					Value: principal.ID,
				}, logx.Data{
					Key:   "group.name",
					Value: name,
				})
				break
			}
		}
	}

	logger.Debug(success)

	return nil
}

func (s *InMemoryStore) ProvisionGroups(
	ctx context.Context,
	logger logx.Logger,
	definitions []warden.GroupDefinition,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Validate everything up front so a bad definition applies nothing.
	declared := make(map[string][]warden.Permission)
	for _, def := range definitions {
		for _, p := range def.Permissions {
			if !p.Action.Valid() {
				return warden.ErrInvalidAction
			}
		}

		if existing, ok := declared[def.Name]; ok {
			if !samePermissionSet(existing, def.Permissions) {
				err := warden.ErrProvisioningConflict
				logger.Error(errProvisioningConflict, err, logx.Data{
					Key:   "group.name",
					Value: def.Name,
				})
				return err
			}
			continue
		}

		declared[def.Name] = def.Permissions
	}

	for name, permissions := range declared {
		if _, exists := s.groups[name]; !exists {
			s.groups[name] = warden.Group{Name: name}
		}
		s.permissions[name] = dedupePermissions(permissions)
	}

	logger.Debug(success)

	return nil
}

func (s *InMemoryStore) ListGroupPermissions(
	ctx context.Context,
	logger logx.Logger,
	query repos.ListGroupPermissionsQuery,
) ([]warden.Permission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	permissions, exists := s.permissions[query.GroupName]
	if !exists {
		return nil, warden.ErrGroupNotFound
	}

	return permissions, nil
}

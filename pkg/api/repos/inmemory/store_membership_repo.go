package inmemory

import (
	"context"

	"github.com/docshelf/warden/pkg/api/repos"
	"github.com/docshelf/warden/pkg/logx"
	"github.com/docshelf/warden/pkg/warden"
)

func (s *InMemoryStore) AssignPrincipal(
	ctx context.Context,
	logger logx.Logger,
	groupName string,
	principal warden.Principal,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.groups[groupName]; !exists {
		logger.Error(errGroupNotFound, warden.ErrGroupNotFound)
		return warden.ErrGroupNotFound
	}

	groupNames, ok := s.memberships[principal]
	if !ok {
		groupNames = []string{}
	}

	for _, name := range groupNames {
		if name == groupName {
			err := warden.ErrMembershipAlreadyExists
			logger.Error(errMembershipAlreadyExists, err)
			return err
		}
	}

	s.memberships[principal] = append(groupNames, groupName)

	return nil
}

func (s *InMemoryStore) UnassignPrincipal(
	ctx context.Context,
	logger logx.Logger,
	groupName string,
	principal warden.Principal,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.groups[groupName]; !exists {
		logger.Error(errGroupNotFound, warden.ErrGroupNotFound)
		return warden.ErrGroupNotFound
	}

	groupNames, ok := s.memberships[principal]
	if !ok {
		err := warden.ErrMembershipNotFound
		logger.Error(errMembershipNotFound, err)
		return err
	}

	for i, name := range groupNames {
		if name == groupName {
			s.memberships[principal] = append(groupNames[:i], groupNames[i+1:]...)
			logger.Debug(success)
			return nil
		}
	}

	err := warden.ErrMembershipNotFound
	logger.Error(errMembershipNotFound, err)

	return err
}

func (s *InMemoryStore) ListPrincipalGroups(
	ctx context.Context,
	logger logx.Logger,
	query repos.ListPrincipalGroupsQuery,
) ([]warden.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var groups []warden.Group
	for _, name := range s.memberships[query.Principal] {
		groups = append(groups, s.groups[name])
	}

	return groups, nil
}

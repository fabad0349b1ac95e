package db

import (
	"context"

	"github.com/docshelf/warden/pkg/api/repos"
	"github.com/docshelf/warden/pkg/logx"
	"github.com/docshelf/warden/pkg/sqlx"
	"github.com/docshelf/warden/pkg/warden"
)

func (s *DataService) AssignPrincipal(
	ctx context.Context,
	logger logx.Logger,
	groupName string,
	principal warden.Principal,
) (err error) {
	logger = logger.WithName("data-service").WithName("assign-principal")

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		logger.Error(failedToStartTransaction, err)
		return err
	}

	defer func() {
		err = sqlx.Commit(logger, tx, err)
	}()

	g, err := findGroup(ctx, logger, tx, groupName)
	if err != nil {
		return err
	}

	// Principals are created lazily on first assignment; the identity
	// collaborator owns their credentials.
	_, err = createPrincipal(ctx, logger, tx, principal.ID, principal.Issuer)
	if err != nil && err != warden.ErrPrincipalAlreadyExists {
		return err
	}

	principalID, err := findPrincipalID(ctx, logger, tx, principal.ID, principal.Issuer)
	if err != nil {
		return err
	}

	return createMembership(ctx, logger, tx, g.ID, principalID)
}

func (s *DataService) UnassignPrincipal(
	ctx context.Context,
	logger logx.Logger,
	groupName string,
	principal warden.Principal,
) error {
	logger = logger.WithName("data-service").WithName("unassign-principal")

	g, err := findGroup(ctx, logger, s.conn, groupName)
	if err != nil {
		return err
	}

	principalID, err := findPrincipalID(ctx, logger, s.conn, principal.ID, principal.Issuer)
	if err == errPrincipalNotFoundDB {
		return warden.ErrMembershipNotFound
	} else if err != nil {
		return err
	}

	return deleteMembership(ctx, logger, s.conn, g.ID, principalID)
}

func (s *DataService) ListPrincipalGroups(
	ctx context.Context,
	logger logx.Logger,
	query repos.ListPrincipalGroupsQuery,
) ([]warden.Group, error) {
	logger = logger.WithName("data-service").WithName("list-principal-groups")

	principalID, err := findPrincipalID(ctx, logger, s.conn, query.Principal.ID, query.Principal.Issuer)
	if err == errPrincipalNotFoundDB {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	found, err := findPrincipalGroups(ctx, logger, s.conn, principalID)
	if err != nil {
		return nil, err
	}

	var groups []warden.Group
	for _, g := range found {
		groups = append(groups, g.Group)
	}

	return groups, nil
}

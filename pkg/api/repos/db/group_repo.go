package db

import (
	"context"

	"github.com/docshelf/warden/pkg/api/repos"
	"github.com/docshelf/warden/pkg/logx"
	"github.com/docshelf/warden/pkg/sqlx"
	"github.com/docshelf/warden/pkg/warden"
)

func (s *DataService) CreateGroup(
	ctx context.Context,
	logger logx.Logger,
	name string,
	permissions ...warden.Permission,
) (g warden.Group, err error) {
	logger = logger.WithName("data-service")

	for _, p := range permissions {
		if !p.Action.Valid() {
			return warden.Group{}, warden.ErrInvalidAction
		}
	}

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		logger.Error(failedToStartTransaction, err)
		return warden.Group{}, err
	}

	defer func() {
		err = sqlx.Commit(logger, tx, err)
	}()

	created, err := createGroupAndAssignPermissions(ctx, logger, tx, name, permissions...)
	if err != nil {
		return warden.Group{}, err
	}

	return created.Group, nil
}

func (s *DataService) DeleteGroup(
	ctx context.Context,
	logger logx.Logger,
	name string,
) error {
	// permission and membership rows cascade with the group
	return deleteGroup(ctx, logger.WithName("data-service"), s.conn, name)
}

func (s *DataService) ProvisionGroups(
	ctx context.Context,
	logger logx.Logger,
	definitions []warden.GroupDefinition,
) (err error) {
	logger = logger.WithName("data-service").WithName("provision-groups")

	declared, err := validateDefinitions(logger, definitions)
	if err != nil {
		return err
	}

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		logger.Error(failedToStartTransaction, err)
		return err
	}

	defer func() {
		err = sqlx.Commit(logger, tx, err)
	}()

	for name, permissions := range declared {
		g, findErr := findGroup(ctx, logger, tx, name)
		if findErr == warden.ErrGroupNotFound {
			g, err = createGroup(ctx, logger, tx, name)
			if err != nil {
				return err
			}
		} else if findErr != nil {
			return findErr
		}

		// Synchronize the permission set to the declared one. Dropping and
		// re-adding inside the transaction keeps the call idempotent.
		err = deleteGroupPermissions(ctx, logger, tx, g.ID)
		if err != nil {
			return err
		}

		err = assignPermissions(ctx, logger, tx, g.ID, permissions)
		if err != nil {
			return err
		}
	}

	logger.Debug(success)

	return nil
}

func validateDefinitions(
	logger logx.Logger,
	definitions []warden.GroupDefinition,
) (map[string][]warden.Permission, error) {
	declared := make(map[string][]warden.Permission)

	for _, def := range definitions {
		for _, p := range def.Permissions {
			if !p.Action.Valid() {
				return nil, warden.ErrInvalidAction
			}
		}

		if existing, ok := declared[def.Name]; ok {
			if !samePermissionSet(existing, def.Permissions) {
				err := warden.ErrProvisioningConflict
				logger.Error(errProvisioningConflict, err, logx.Data{
					Key:   "group.name",
					Value: def.Name,
				})
				return nil, err
			}
			continue
		}

		declared[def.Name] = def.Permissions
	}

	return declared, nil
}

func samePermissionSet(a, b []warden.Permission) bool {
	set := make(map[warden.Permission]struct{}, len(a))
	for _, p := range a {
		set[p] = struct{}{}
	}

	other := make(map[warden.Permission]struct{}, len(b))
	for _, p := range b {
		other[p] = struct{}{}
	}

	if len(set) != len(other) {
		return false
	}

	for p := range other {
		if _, ok := set[p]; !ok {
			return false
		}
	}

	return true
}

func (s *DataService) ListGroupPermissions(
	ctx context.Context,
	logger logx.Logger,
	query repos.ListGroupPermissionsQuery,
) ([]warden.Permission, error) {
	logger = logger.WithName("data-service").WithName("list-group-permissions")

	g, err := findGroup(ctx, logger, s.conn, query.GroupName)
	if err != nil {
		return nil, err
	}

	found, err := findGroupPermissions(ctx, logger, s.conn, g.ID)
	if err != nil {
		return nil, err
	}

	var permissions []warden.Permission
	for _, p := range found {
		permissions = append(permissions, p.Permission)
	}

	return permissions, nil
}

package db

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/docshelf/warden/pkg/logx"
	"github.com/docshelf/warden/pkg/sqlx"
	"github.com/docshelf/warden/pkg/warden"
	"github.com/go-sql-driver/mysql"
	uuid "github.com/satori/go.uuid"
)

// DataService implements the repo interfaces on top of MySQL. Every
// decision read goes straight to the database; there is no in-process
// cache, so a committed membership change is visible to the next call.
type DataService struct {
	conn *sqlx.DB
}

func NewDataService(conn *sqlx.DB) *DataService {
	return &DataService{
		conn: conn,
	}
}

func createGroupAndAssignPermissions(
	ctx context.Context,
	logger logx.Logger,
	conn squirrel.BaseRunner,
	name string,
	permissions ...warden.Permission,
) (*group, error) {
	g, err := createGroup(ctx, logger, conn, name)
	if err != nil {
		return nil, err
	}

	err = assignPermissions(ctx, logger, conn, g.ID, permissions)
	if err != nil {
		return nil, err
	}

	return g, nil
}

func assignPermissions(
	ctx context.Context,
	logger logx.Logger,
	conn squirrel.BaseRunner,
	groupID id,
	permissions []warden.Permission,
) error {
	for _, p := range permissions {
		_, err := createAction(ctx, logger, conn, string(p.Action))
		if err != nil && err != errActionAlreadyExistsInDB {
			return err
		}

		a, err := findAction(ctx, logger, conn, string(p.Action))
		if err != nil {
			return err
		}

		_, err = createPermission(ctx, logger, conn, a.ID, groupID, p)
		if err != nil && err != errPermissionAlreadyExistsDB {
			return err
		}
	}

	return nil
}

func createGroup(
	ctx context.Context,
	logger logx.Logger,
	conn squirrel.BaseRunner,
	name string,
) (*group, error) {
	logger = logger.WithName("create-group")
	u := uuid.NewV4().Bytes()

	result, err := squirrel.Insert("user_group").
		Columns("uuid", "name").
		Values(u, name).
		RunWith(conn).
		ExecContext(ctx)

	switch e := err.(type) {
	case nil:
		groupID, err2 := result.LastInsertId()
		if err2 != nil {
			logger.Error(failedToRetrieveID, err2)
			return nil, err2
		}

		return &group{
			ID: id(groupID),
			Group: warden.Group{
				Name: name,
			},
		}, nil
	case *mysql.MySQLError:
		if e.Number == MySQLErrorCodeDuplicateKey {
			logger.Debug(errGroupAlreadyExists)
			return nil, warden.ErrGroupAlreadyExists
		}

		logger.Error(failedToCreateGroup, err)
		return nil, err
	default:
		logger.Error(failedToCreateGroup, err)
		return nil, err
	}
}

func findGroup(
	ctx context.Context,
	logger logx.Logger,
	conn squirrel.BaseRunner,
	name string,
) (*group, error) {
	logger = logger.WithName("find-group")

	var (
		groupID   int64
		groupName string
	)

	err := squirrel.Select("id", "name").
		From("user_group").
		Where(squirrel.Eq{
			"name": name,
		}).
		RunWith(conn).
		ScanContext(ctx, &groupID, &groupName)

	switch err {
	case nil:
		return &group{
			ID: id(groupID),
			Group: warden.Group{
				Name: groupName,
			},
		}, nil
	case sql.ErrNoRows:
		logger.Debug(errGroupNotFound)
		return nil, warden.ErrGroupNotFound
	default:
		logger.Error(failedToFindGroup, err)
		return nil, err
	}
}

func deleteGroup(
	ctx context.Context,
	logger logx.Logger,
	conn squirrel.BaseRunner,
	name string,
) error {
	logger = logger.WithName("delete-group")
	result, err := squirrel.Delete("user_group").
		Where(squirrel.Eq{
			"name": name,
		}).
		RunWith(conn).
		ExecContext(ctx)

	switch err {
	case nil:
		n, err2 := result.RowsAffected()
		if err2 != nil {
			logger.Error(failedToCountRowsAffected, err2)
			return err2
		}

		if n == 0 {
			logger.Debug(errGroupNotFound)
			return warden.ErrGroupNotFound
		}

		return nil
	case sql.ErrNoRows:
		logger.Debug(errGroupNotFound)
		return warden.ErrGroupNotFound
	default:
		logger.Error(failedToDeleteGroup, err)
		return err
	}
}

func createAction(
	ctx context.Context,
	logger logx.Logger,
	conn squirrel.BaseRunner,
	name string,
) (*action, error) {
	logger = logger.WithName("create-action")
	u := uuid.NewV4().Bytes()

	result, err := squirrel.Insert("action").
		Columns("uuid", "name").
		Values(u, name).
		RunWith(conn).
		ExecContext(ctx)

	switch e := err.(type) {
	case nil:
		actionID, err2 := result.LastInsertId()
		if err2 != nil {
			logger.Error(failedToRetrieveID, err2)
			return nil, err2
		}

		return &action{
			ID:   id(actionID),
			Name: name,
		}, nil
	case *mysql.MySQLError:
		if e.Number == MySQLErrorCodeDuplicateKey {
			logger.Debug(errActionAlreadyExists)
			return nil, errActionAlreadyExistsInDB
		}

		logger.Error(failedToCreateAction, err)
		return nil, err
	default:
		logger.Error(failedToCreateAction, err)
		return nil, err
	}
}

func findAction(
	ctx context.Context,
	logger logx.Logger,
	conn squirrel.BaseRunner,
	actionName string,
) (*action, error) {
	logger = logger.WithName("find-action")

	var (
		actionID int64
		name     string
	)

	err := squirrel.Select("id", "name").
		From("action").
		Where(squirrel.Eq{
			"name": actionName,
		}).
		RunWith(conn).
		ScanContext(ctx, &actionID, &name)

	switch err {
	case nil:
		return &action{
			ID:   id(actionID),
			Name: name,
		}, nil
	case sql.ErrNoRows:
		logger.Debug(errActionNotFound)
		return nil, errActionNotFoundDB
	default:
		logger.Error(failedToFindAction, err)
		return nil, err
	}
}

func createPermission(
	ctx context.Context,
	logger logx.Logger,
	conn squirrel.BaseRunner,
	actionID id,
	groupID id,
	p warden.Permission,
) (*permission, error) {
	logger = logger.WithName("create-permission")
	u := uuid.NewV4().Bytes()

	result, err := squirrel.Insert("permission").
		Columns("uuid", "action_id", "group_id", "resource_type").
		Values(u, actionID, groupID, string(p.ResourceType)).
		RunWith(conn).
		ExecContext(ctx)

	switch e := err.(type) {
	case nil:
		permissionID, err2 := result.LastInsertId()
		if err2 != nil {
			logger.Error(failedToRetrieveID, err2)
			return nil, err2
		}

		return &permission{
			ID:         id(permissionID),
			Permission: p,
		}, nil
	case *mysql.MySQLError:
		if e.Number == MySQLErrorCodeDuplicateKey {
			logger.Debug(errPermissionAlreadyExists)
			return nil, errPermissionAlreadyExistsDB
		}

		logger.Error(failedToCreatePermission, err)
		return nil, err
	default:
		logger.Error(failedToCreatePermission, err)
		return nil, err
	}
}

func deleteGroupPermissions(
	ctx context.Context,
	logger logx.Logger,
	conn squirrel.BaseRunner,
	groupID id,
) error {
	logger = logger.WithName("delete-group-permissions")

	_, err := squirrel.Delete("permission").
		Where(squirrel.Eq{
			"group_id": groupID,
		}).
		RunWith(conn).
		ExecContext(ctx)
	if err != nil {
		logger.Error(failedToDeletePermissions, err)
		return err
	}

	return nil
}

func findGroupPermissions(
	ctx context.Context,
	logger logx.Logger,
	conn squirrel.BaseRunner,
	groupID id,
) ([]*permission, error) {
	logger = logger.WithName("find-group-permissions").WithData(logx.Data{
		Key:   "group.id",
		Value: groupID,
	})

	rows, err := squirrel.Select("permission.id", "action.name", "permission.resource_type").
		From("permission").
		JoinClause("INNER JOIN action ON permission.action_id = action.id").
		Where(squirrel.Eq{"group_id": groupID}).
		RunWith(conn).
		QueryContext(ctx)
	if err != nil {
		logger.Error(failedToFindPermissions, err)
		return nil, err
	}
	defer rows.Close()

	var permissions []*permission
	for rows.Next() {
		var (
			permissionID int64
			actionName   string
			resourceType string
		)
		e := rows.Scan(&permissionID, &actionName, &resourceType)
		if e != nil {
			logger.Error(failedToScanRow, e)
			return nil, e
		}

		permissions = append(permissions, &permission{
			ID: id(permissionID),
			Permission: warden.Permission{
				Action:       warden.Action(actionName),
				ResourceType: warden.ResourceType(resourceType),
			},
		})
	}

	err = rows.Err()
	if err != nil {
		logger.Error(failedToIterateOverRows, err)
		return nil, err
	}

	return permissions, nil
}

func createPrincipal(
	ctx context.Context,
	logger logx.Logger,
	conn squirrel.BaseRunner,
	domainID string,
	issuer string,
) (*principal, error) {
	logger = logger.WithName("create-principal")

	u := uuid.NewV4().Bytes()

	result, err := squirrel.Insert("principal").
		Columns("uuid", "domain_id", "issuer").
		Values(u, domainID, issuer).
		RunWith(conn).
		ExecContext(ctx)

	switch e := err.(type) {
	case nil:
		principalID, err2 := result.LastInsertId()
		if err2 != nil {
			logger.Error(failedToRetrieveID, err2)
			return nil, err2
		}

		return &principal{
			ID: id(principalID),
			Principal: warden.Principal{
				ID:     domainID,
				Issuer: issuer,
			},
		}, nil
	case *mysql.MySQLError:
		if e.Number == MySQLErrorCodeDuplicateKey {
			logger.Debug(errPrincipalAlreadyExists)
			return nil, warden.ErrPrincipalAlreadyExists
		}
		logger.Error(failedToCreatePrincipal, err)
		return nil, err
	default:
		logger.Error(failedToCreatePrincipal, err)
		return nil, err
	}
}

func findPrincipalID(
	ctx context.Context,
	logger logx.Logger,
	conn squirrel.BaseRunner,
	domainID string,
	issuer string,
) (id, error) {
	logger = logger.WithName("find-principal")

	var principalID int64

	err := squirrel.Select("id").
		From("principal").
		Where(squirrel.Eq{
			"domain_id": domainID,
			"issuer":    issuer,
		}).
		RunWith(conn).
		ScanContext(ctx, &principalID)

	switch err {
	case nil:
		return id(principalID), nil
	case sql.ErrNoRows:
		logger.Debug(errPrincipalNotFound)
		return 0, errPrincipalNotFoundDB
	default:
		logger.Error(failedToFindPrincipal, err)
		return 0, err
	}
}

func createMembership(
	ctx context.Context,
	logger logx.Logger,
	conn squirrel.BaseRunner,
	groupID, principalID id,
) error {
	logger = logger.WithName("create-membership").WithData(logx.Data{
		Key:   "group.id",
		Value: groupID,
	}, logx.Data{
		Key:   "principal.id",
		Value: principalID,
	})

	u := uuid.NewV4().Bytes()

	_, err := squirrel.Insert("membership").
		Columns("uuid", "group_id", "principal_id").
		Values(u, groupID, principalID).
		RunWith(conn).
		ExecContext(ctx)

	switch e := err.(type) {
	case nil:
		return nil
	case *mysql.MySQLError:
		if e.Number == MySQLErrorCodeDuplicateKey {
			logger.Debug(errMembershipAlreadyExists)
			return warden.ErrMembershipAlreadyExists
		}

		logger.Error(failedToCreateMembership, err)
		return err
	default:
		logger.Error(failedToCreateMembership, err)
		return err
	}
}

func deleteMembership(
	ctx context.Context,
	logger logx.Logger,
	conn squirrel.BaseRunner,
	groupID, principalID id,
) error {
	logger = logger.WithName("delete-membership").WithData(logx.Data{
		Key:   "group.id",
		Value: groupID,
	}, logx.Data{
		Key:   "principal.id",
		Value: principalID,
	})

	result, err := squirrel.Delete("membership").
		Where(squirrel.Eq{
			"group_id":     groupID,
			"principal_id": principalID,
		}).
		RunWith(conn).
		ExecContext(ctx)

	switch err {
	case nil:
		n, e := result.RowsAffected()
		if e != nil {
			logger.Error(failedToDeleteMembership, e)
			return e
		}

		if n == 0 {
			logger.Debug(errMembershipNotFound)
			return warden.ErrMembershipNotFound
		}

		return nil
	case sql.ErrNoRows:
		logger.Debug(errMembershipNotFound)
		return warden.ErrMembershipNotFound
	default:
		logger.Error(failedToDeleteMembership, err)
		return err
	}
}

func findPrincipalGroups(
	ctx context.Context,
	logger logx.Logger,
	conn squirrel.BaseRunner,
	principalID id,
) ([]*group, error) {
	logger = logger.WithName("find-principal-groups").WithData(logx.Data{
		Key:   "principal.id",
		Value: principalID,
	})

	rows, err := squirrel.Select("user_group.id", "user_group.name").
		From("membership").
		JoinClause("INNER JOIN user_group ON membership.group_id = user_group.id").
		Where(squirrel.Eq{"principal_id": principalID}).
		RunWith(conn).
		QueryContext(ctx)
	if err != nil {
		logger.Error(failedToFindMemberships, err)
		return nil, err
	}
	defer rows.Close()

	var groups []*group
	for rows.Next() {
		var (
			groupID int64
			name    string
		)
		e := rows.Scan(&groupID, &name)
		if e != nil {
			logger.Error(failedToScanRow, e)
			return nil, e
		}

		groups = append(groups, &group{
			ID: id(groupID),
			Group: warden.Group{
				Name: name,
			},
		})
	}

	err = rows.Err()
	if err != nil {
		logger.Error(failedToIterateOverRows, err)
		return nil, err
	}

	return groups, nil
}

func hasPermission(
	ctx context.Context,
	logger logx.Logger,
	conn squirrel.BaseRunner,
	principal warden.Principal,
	actionName string,
	resourceType string,
) (bool, error) {
	logger = logger.WithName("has-permission").WithData(logx.Data{
		Key:   "principal.issuer",
		Value: principal.Issuer,
	}, logx.Data{
		Key:   "principal.id",
		Value: principal.ID,
	}, logx.Data{
		Key:   "permission.action",
		Value: actionName,
	}, logx.Data{
		Key:   "permission.resourceType",
		Value: resourceType,
	})

	var count int

	err := squirrel.Select("count(membership.group_id)").
		From("membership").
		JoinClause("INNER JOIN principal ON principal.id = membership.principal_id").
		JoinClause("INNER JOIN permission ON permission.group_id = membership.group_id").
		JoinClause("INNER JOIN action ON permission.action_id = action.id").
		Where(squirrel.Eq{
			"principal.issuer":         principal.Issuer,
			"principal.domain_id":      principal.ID,
			"action.name":              actionName,
			"permission.resource_type": resourceType,
		}).
		RunWith(conn).
		ScanContext(ctx, &count)
	if err != nil {
		logger.Error(failedToFindPermissions, err)
		return false, err
	}

	return count != 0, nil
}

package migrations

import (
	"github.com/docshelf/warden/pkg/sqlx"
)

var TableName = "warden_migrations"

var Migrations = []sqlx.Migration{
	{
		Name: "create_groups_table",
		Up:   createGroupsTableUp,
		Down: createGroupsTableDown,
	},
	{
		Name: "create_principals_table",
		Up:   createPrincipalsTableUp,
		Down: createPrincipalsTableDown,
	},
	{
		Name: "create_actions_table",
		Up:   createActionsTableUp,
		Down: createActionsTableDown,
	},
	{
		Name: "create_permissions_table",
		Up:   createPermissionsTableUp,
		Down: createPermissionsTableDown,
	},
	{
		Name: "create_memberships_table",
		Up:   createMembershipsTableUp,
		Down: createMembershipsTableDown,
	},
}

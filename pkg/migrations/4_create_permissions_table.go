package migrations

import (
	"context"

	"github.com/docshelf/warden/pkg/logx"
	"github.com/docshelf/warden/pkg/sqlx"
)

var createPermissionsTable = `
CREATE TABLE IF NOT EXISTS permission
(
  id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
  uuid BINARY(16) NOT NULL UNIQUE,
  group_id BIGINT NOT NULL,
  action_id BIGINT NOT NULL,
  resource_type VARCHAR(255) NOT NULL,
  UNIQUE (group_id, action_id, resource_type)
)
`

var addPermissionGroupIDForeignKey = `
ALTER TABLE
  permission
ADD CONSTRAINT
  permission_group_id_fkey
FOREIGN KEY(group_id) REFERENCES user_group(id)
ON DELETE CASCADE
`

var addPermissionActionIDForeignKey = `
ALTER TABLE
  permission
ADD CONSTRAINT
  permission_action_id_fkey
FOREIGN KEY(action_id) REFERENCES action(id)
ON DELETE CASCADE
`

var dropPermissionsTable = `DROP TABLE IF EXISTS permission`

func createPermissionsTableUp(ctx context.Context, logger logx.Logger, tx *sqlx.Tx) error {
	logger = logger.WithName("create-permissions-table")
	logger.Debug(starting)
	defer logger.Debug(finished)

	_, err := tx.ExecContext(ctx, createPermissionsTable)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, addPermissionGroupIDForeignKey)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, addPermissionActionIDForeignKey)

	return err
}

func createPermissionsTableDown(ctx context.Context, logger logx.Logger, tx *sqlx.Tx) error {
	logger = logger.WithName("create-permissions-table")
	logger.Debug(starting)
	defer logger.Debug(finished)

	_, err := tx.ExecContext(ctx, dropPermissionsTable)

	return err
}

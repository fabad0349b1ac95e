package migrations

import (
	"context"

	"github.com/docshelf/warden/pkg/logx"
	"github.com/docshelf/warden/pkg/sqlx"
)

// "group" is a reserved word in MySQL, hence user_group.
var createGroupsTable = `
CREATE TABLE IF NOT EXISTS user_group
(
  id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
  uuid BINARY(16) NOT NULL UNIQUE,
  name VARCHAR(255) NOT NULL UNIQUE
)
`

var dropGroupsTable = `DROP TABLE user_group`

func createGroupsTableUp(ctx context.Context, logger logx.Logger, tx *sqlx.Tx) error {
	logger = logger.WithName("create-groups-table")
	logger.Debug(starting)
	defer logger.Debug(finished)

	_, err := tx.ExecContext(ctx, createGroupsTable)

	return err
}

func createGroupsTableDown(ctx context.Context, logger logx.Logger, tx *sqlx.Tx) error {
	logger = logger.WithName("create-groups-table")
	logger.Debug(starting)
	defer logger.Debug(finished)

	_, err := tx.ExecContext(ctx, dropGroupsTable)

	return err
}

package migrations

import (
	"context"

	"github.com/docshelf/warden/pkg/logx"
	"github.com/docshelf/warden/pkg/sqlx"
)

var createMembershipsTable = `
CREATE TABLE IF NOT EXISTS membership
(
  id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
  uuid BINARY(16) NOT NULL UNIQUE,
  group_id BIGINT NOT NULL,
  principal_id BIGINT NOT NULL,
  UNIQUE (group_id, principal_id)
)
`

var addMembershipGroupIDForeignKey = `
ALTER TABLE
  membership
ADD CONSTRAINT
  membership_group_id_fkey
FOREIGN KEY(group_id) REFERENCES user_group(id)
ON DELETE CASCADE
`

var addMembershipPrincipalIDForeignKey = `
ALTER TABLE
  membership
ADD CONSTRAINT
  membership_principal_id_fkey
FOREIGN KEY(principal_id) REFERENCES principal(id)
ON DELETE CASCADE
`

var dropMembershipsTable = `DROP TABLE IF EXISTS membership`

func createMembershipsTableUp(ctx context.Context, logger logx.Logger, tx *sqlx.Tx) error {
	logger = logger.WithName("create-memberships-table")
	logger.Debug(starting)
	defer logger.Debug(finished)

	_, err := tx.ExecContext(ctx, createMembershipsTable)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, addMembershipGroupIDForeignKey)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, addMembershipPrincipalIDForeignKey)

	return err
}

func createMembershipsTableDown(ctx context.Context, logger logx.Logger, tx *sqlx.Tx) error {
	logger = logger.WithName("create-memberships-table")
	logger.Debug(starting)
	defer logger.Debug(finished)

	_, err := tx.ExecContext(ctx, dropMembershipsTable)

	return err
}

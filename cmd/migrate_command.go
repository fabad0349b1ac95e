package cmd

import (
	"context"

	"github.com/docshelf/warden/cmd/flags"
	"github.com/docshelf/warden/pkg/migrations"
	"github.com/docshelf/warden/pkg/sqlx"
)

type MigrateCommand struct {
	Up     UpMigrationCommand     `command:"up" description:"Apply migrations to the database"`
	Down   DownMigrationCommand   `command:"down" description:"Roll back the most recently applied migration"`
	Verify VerifyMigrationCommand `command:"verify" description:"Verify that all migrations have been applied"`
}

type UpMigrationCommand struct {
	Logger flags.LagerFlag

	DB flags.DBFlag `group:"DB" namespace:"db"`
}

type DownMigrationCommand struct {
	Logger flags.LagerFlag

	All bool `long:"all" description:"Roll back all applied migrations instead of the most recent one"`

	DB flags.DBFlag `group:"DB" namespace:"db"`
}

type VerifyMigrationCommand struct {
	Logger flags.LagerFlag

	DB flags.DBFlag `group:"DB" namespace:"db"`
}

func (cmd UpMigrationCommand) Execute([]string) error {
	logger := cmd.Logger.Logger("warden").WithName("migrate-up")
	logger.Debug(starting)
	defer logger.Debug(finished)

	ctx := context.Background()

	conn, err := cmd.DB.Connect(ctx, logger)
	if err != nil {
		return err
	}
	defer conn.Close()

	return sqlx.ApplyMigrations(ctx, logger, conn, migrations.TableName, migrations.Migrations)
}

func (cmd DownMigrationCommand) Execute([]string) error {
	logger := cmd.Logger.Logger("warden").WithName("migrate-down")
	logger.Debug(starting)
	defer logger.Debug(finished)

	ctx := context.Background()

	conn, err := cmd.DB.Connect(ctx, logger)
	if err != nil {
		return err
	}
	defer conn.Close()

	return sqlx.RollbackMigrations(ctx, logger, conn, migrations.TableName, migrations.Migrations, cmd.All)
}

func (cmd VerifyMigrationCommand) Execute([]string) error {
	logger := cmd.Logger.Logger("warden").WithName("migrate-verify")
	logger.Debug(starting)
	defer logger.Debug(finished)

	ctx := context.Background()

	conn, err := cmd.DB.Connect(ctx, logger)
	if err != nil {
		return err
	}
	defer conn.Close()

	migrated, err := sqlx.VerifyAppliedMigrations(ctx, logger, conn, migrations.TableName, migrations.Migrations)
	if err != nil {
		return err
	}

	if !migrated {
		return ErrMigrationsOutOfDate
	}

	return nil
}

package sqlxtest

import (
	"context"
	"os"
	"strconv"
	"strings"

	"code.cloudfoundry.org/lager/lagertest"
	"github.com/docshelf/warden/pkg/logx"
	"github.com/docshelf/warden/pkg/logx/lagerx"
	"github.com/docshelf/warden/pkg/sqlx"
	uuid "github.com/satori/go.uuid"
)

const testMigrationsTableName = "warden_migrations"

// TestMySQLDB provisions a uniquely named schema on the MySQL server named
// by the WARDEN_TEST_MYSQL_* environment variables, so that suites can run
// against real SQL without trampling each other.
type TestMySQLDB struct {
	dbName string
	logger logx.Logger
}

// MySQLAvailable reports whether the environment points at a MySQL server
// to test against.
func MySQLAvailable() bool {
	return os.Getenv("WARDEN_TEST_MYSQL_HOST") != ""
}

func NewTestMySQLDB() *TestMySQLDB {
	suffix := strings.Replace(uuid.NewV4().String(), "-", "_", -1)

	return &TestMySQLDB{
		dbName: "warden_test_" + suffix,
		logger: lagerx.NewLogger(lagertest.NewTestLogger("sqlxtest")),
	}
}

func (t *TestMySQLDB) Create(migrations ...sqlx.Migration) error {
	conn, err := t.connect("")
	if err != nil {
		return err
	}

	_, err = conn.Exec("CREATE DATABASE " + t.dbName)
	if closeErr := conn.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return err
	}

	conn, err = t.Connect()
	if err != nil {
		return err
	}
	defer conn.Close()

	return sqlx.ApplyMigrations(context.Background(), t.logger, conn, testMigrationsTableName, migrations)
}

func (t *TestMySQLDB) Connect() (*sqlx.DB, error) {
	return t.connect(t.dbName)
}

func (t *TestMySQLDB) Truncate(truncateStmts ...string) error {
	conn, err := t.Connect()
	if err != nil {
		return err
	}
	defer conn.Close()

	for _, stmt := range truncateStmts {
		if _, err := conn.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}

func (t *TestMySQLDB) Drop() error {
	conn, err := t.connect("")
	if err != nil {
		return err
	}
	defer conn.Close()

	_, err = conn.Exec("DROP DATABASE " + t.dbName)
	return err
}

func (t *TestMySQLDB) connect(dbName string) (*sqlx.DB, error) {
	return sqlx.Connect(
		sqlx.DBDriverMySQL,
		sqlx.DBUsername(envOrDefault("WARDEN_TEST_MYSQL_USERNAME", "root")),
		sqlx.DBPassword(os.Getenv("WARDEN_TEST_MYSQL_PASSWORD")),
		sqlx.DBDatabaseName(dbName),
		sqlx.DBHost(envOrDefault("WARDEN_TEST_MYSQL_HOST", "127.0.0.1")),
		sqlx.DBPort(envPort()),
	)
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envPort() int {
	port, err := strconv.Atoi(envOrDefault("WARDEN_TEST_MYSQL_PORT", "3306"))
	if err != nil {
		return 3306
	}
	return port
}

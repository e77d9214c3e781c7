package db

import "errors"

var (
	ErrFailedToParseDBConfig    = errors.New("db: failed to parse database configuration")
	ErrFailedToOpenDBConnection = errors.New("db: failed to open database connection")
	ErrHealthcheckFailed        = errors.New("db: healthcheck failed")
	ErrInvalidSchema            = errors.New("db schema: invalid table definition")
	ErrSchemaExec               = errors.New("db schema: failed to execute statement")
	ErrNotFound                 = errors.New("db: record not found")
	ErrInvalidRecord            = errors.New("db: invalid record")
	ErrQuery                    = errors.New("db: query failed")
	ErrSetDialect               = errors.New("db migrator: failed to set dialect")
	ErrApplyMigrations          = errors.New("db migrator: failed to apply migrations")
	ErrRollbackMigration        = errors.New("db migrator: failed to roll back migration")
	ErrMigrationStatus          = errors.New("db migrator: failed to read migration status")
	ErrInvalidMigration         = errors.New("db migrator: invalid migration set")
)

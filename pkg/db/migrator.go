package db

import (
	"cmp"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/pressly/goose/v3"
	"github.com/pressly/goose/v3/database"

	"github.com/zenithgo/zenith/pkg/logger"
)

// DefaultMigrationsTable is the version table used when none is configured.
const DefaultMigrationsTable = "schema_migrations"

// Migration changes the schema in one direction and reverts it in the other.
// Both methods run inside a transaction.
type Migration interface {
	Up(ctx context.Context, s *Schema) error
	Down(ctx context.Context, s *Schema) error
}

// MigrationFuncs adapts a pair of functions to Migration.
// A nil function is a no-op that still records the version.
type MigrationFuncs struct {
	UpFn   func(ctx context.Context, s *Schema) error
	DownFn func(ctx context.Context, s *Schema) error
}

func (m MigrationFuncs) Up(ctx context.Context, s *Schema) error {
	if m.UpFn == nil {
		return nil
	}
	return m.UpFn(ctx, s)
}

func (m MigrationFuncs) Down(ctx context.Context, s *Schema) error {
	if m.DownFn == nil {
		return nil
	}
	return m.DownFn(ctx, s)
}

// VersionedMigration binds a Migration to its version number.
// Versions must be positive and unique; they are applied in ascending order.
type VersionedMigration struct {
	Version   int64
	Name      string
	Migration Migration
}

// MigrationResult reports one applied or reverted migration.
type MigrationResult struct {
	Version   int64
	Name      string
	Direction string
	Duration  time.Duration
}

// MigrationStatus reports whether a migration has been applied.
type MigrationStatus struct {
	Version   int64
	Name      string
	Applied   bool
	AppliedAt time.Time
}

// Migrator applies Go migrations written against Schema.
type Migrator struct {
	provider *goose.Provider
	names    map[int64]string
	log      *slog.Logger
}

// MigratorOption configures a Migrator.
type MigratorOption func(*migratorConfig)

type migratorConfig struct {
	table string
	log   *slog.Logger
}

// WithMigrationsTable sets the version table name.
func WithMigrationsTable(name string) MigratorOption {
	return func(c *migratorConfig) {
		c.table = name
	}
}

// WithMigratorLogger sets the logger for applied migrations.
func WithMigratorLogger(log *slog.Logger) MigratorOption {
	return func(c *migratorConfig) {
		c.log = log
	}
}

// NewMigrator validates migrations and prepares them to run against db.
// Use stdlib.OpenDBFromPool to obtain a *sql.DB from a pgx pool.
func NewMigrator(db *sql.DB, migrations []VersionedMigration, opts ...MigratorOption) (*Migrator, error) {
	cfg := migratorConfig{table: DefaultMigrationsTable}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.table = cmp.Or(cfg.table, DefaultMigrationsTable)
	if cfg.log == nil {
		cfg.log = logger.NewNope()
	}

	if err := validateMigrations(migrations); err != nil {
		return nil, err
	}
	if db == nil {
		return nil, fmt.Errorf("%w: nil database handle", ErrInvalidMigration)
	}

	store, err := database.NewStore(database.DialectPostgres, cfg.table)
	if err != nil {
		return nil, errors.Join(ErrSetDialect, err)
	}

	names := make(map[int64]string, len(migrations))
	gooseMigrations := make([]*goose.Migration, 0, len(migrations))
	for _, vm := range migrations {
		names[vm.Version] = vm.Name
		gooseMigrations = append(gooseMigrations, goMigration(vm, cfg.log))
	}

	provider, err := goose.NewProvider(goose.DialectCustom, db, nil,
		goose.WithStore(store),
		goose.WithDisableGlobalRegistry(true),
		goose.WithGoMigrations(gooseMigrations...),
	)
	if err != nil {
		return nil, errors.Join(ErrInvalidMigration, err)
	}

	return &Migrator{provider: provider, names: names, log: cfg.log}, nil
}

// Up applies every pending migration.
func (m *Migrator) Up(ctx context.Context) ([]MigrationResult, error) {
	results, err := m.provider.Up(ctx)
	if err != nil {
		return m.results(results), errors.Join(ErrApplyMigrations, err)
	}
	out := m.results(results)
	for _, r := range out {
		m.log.InfoContext(ctx, "migration applied",
			slog.Int64("version", r.Version),
			slog.String("name", r.Name),
			slog.Duration("duration", r.Duration),
		)
	}
	return out, nil
}

// Down reverts the most recently applied migration.
// It returns false when nothing was applied.
func (m *Migrator) Down(ctx context.Context) (MigrationResult, bool, error) {
	res, err := m.provider.Down(ctx)
	if errors.Is(err, goose.ErrNoNextVersion) {
		return MigrationResult{}, false, nil
	}
	if err != nil {
		return MigrationResult{}, false, errors.Join(ErrRollbackMigration, err)
	}
	out := m.result(res)
	m.log.InfoContext(ctx, "migration reverted",
		slog.Int64("version", out.Version),
		slog.String("name", out.Name),
	)
	return out, true, nil
}

// Status lists every known migration in version order.
func (m *Migrator) Status(ctx context.Context) ([]MigrationStatus, error) {
	statuses, err := m.provider.Status(ctx)
	if err != nil {
		return nil, errors.Join(ErrMigrationStatus, err)
	}
	out := make([]MigrationStatus, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, MigrationStatus{
			Version:   s.Source.Version,
			Name:      m.names[s.Source.Version],
			Applied:   s.State == goose.StateApplied,
			AppliedAt: s.AppliedAt,
		})
	}
	return out, nil
}

func (m *Migrator) results(in []*goose.MigrationResult) []MigrationResult {
	out := make([]MigrationResult, 0, len(in))
	for _, r := range in {
		out = append(out, m.result(r))
	}
	return out
}

func (m *Migrator) result(r *goose.MigrationResult) MigrationResult {
	if r == nil || r.Source == nil {
		return MigrationResult{}
	}
	return MigrationResult{
		Version:   r.Source.Version,
		Name:      m.names[r.Source.Version],
		Direction: r.Direction,
		Duration:  r.Duration,
	}
}

func goMigration(vm VersionedMigration, log *slog.Logger) *goose.Migration {
	m := vm.Migration
	return goose.NewGoMigration(vm.Version,
		&goose.GoFunc{RunTx: func(ctx context.Context, tx *sql.Tx) error {
			return m.Up(ctx, NewSchema(tx, log))
		}},
		&goose.GoFunc{RunTx: func(ctx context.Context, tx *sql.Tx) error {
			return m.Down(ctx, NewSchema(tx, log))
		}},
	)
}

func validateMigrations(migrations []VersionedMigration) error {
	if len(migrations) == 0 {
		return fmt.Errorf("%w: no migrations", ErrInvalidMigration)
	}
	versions := make([]int64, 0, len(migrations))
	for _, vm := range migrations {
		if vm.Version <= 0 {
			return fmt.Errorf("%w: version %d of %q must be positive", ErrInvalidMigration, vm.Version, vm.Name)
		}
		if vm.Migration == nil {
			return fmt.Errorf("%w: version %d has no migration", ErrInvalidMigration, vm.Version)
		}
		if slices.Contains(versions, vm.Version) {
			return fmt.Errorf("%w: duplicate version %d", ErrInvalidMigration, vm.Version)
		}
		versions = append(versions, vm.Version)
	}
	return nil
}

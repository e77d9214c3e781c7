// Package db provides PostgreSQL access for zenith applications.
//
// It wraps [github.com/jackc/pgx/v5/pgxpool] for pooling, adds a small
// schema builder, Go migrations run through [github.com/pressly/goose/v3]
// and a map-based CRUD model.
//
// # Connecting
//
//	var cfg db.Config // populated by pkg/config from DATABASE_* variables
//	pool, err := db.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//
//	app.Run(":8080", zenith.ShutdownHook(db.Shutdown(pool)))
//
// Register the pool with the readiness endpoint:
//
//	zenith.WithHealthChecks(zenith.WithReadinessCheck("db", db.Healthcheck(pool)))
//
// # Schema
//
// A Blueprint declares columns; Schema executes the resulting statement:
//
//	s.Create(ctx, "posts", func(t *db.Blueprint) {
//		t.ID()
//		t.String("title", 0).NotNull()
//		t.ForeignID("user_id").Constrained("users").CascadeOnDelete()
//		t.Boolean("published").Default(false)
//		t.Timestamps()
//	})
//
// Foreign key constraints are emitted after the column list. Statements use
// IF NOT EXISTS / IF EXISTS so reruns are harmless.
//
// # Migrations
//
//	migrator, err := db.NewMigrator(stdlib.OpenDBFromPool(pool), []db.VersionedMigration{
//		{Version: 1, Name: "create_users", Migration: createUsers{}},
//	}, db.WithMigrationsTable(cfg.MigrationsTable))
//	if err != nil {
//		return err
//	}
//	_, err = migrator.Up(ctx)
//
// Each migration runs in its own transaction.
//
// # Models
//
//	users := db.NewModel(pool, "users")
//	u, err := users.Find(ctx, 42)
//	if errors.Is(err, db.ErrNotFound) {
//		return zenith.ErrNotFound("user not found")
//	}
//
// Use [WithTx] and Model.With to run several statements atomically.
package db

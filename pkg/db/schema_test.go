package db_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zenithgo/zenith/pkg/db"
)

type execRecorder struct {
	queries []string
	err     error
}

func (e *execRecorder) ExecContext(_ context.Context, query string, _ ...any) (sql.Result, error) {
	e.queries = append(e.queries, query)
	return nil, e.err
}

func TestCreateTableSQL(t *testing.T) {
	t.Parallel()

	b := db.NewBlueprint("posts")
	b.ID()
	b.String("title", 0).NotNull()
	b.String("slug", 120).Unique()
	b.Text("body").Nullable()
	b.Decimal("price", 0, 0).Default(0)
	b.Boolean("published").Default(false)
	b.String("status", 20).Default("it's draft")
	b.ForeignID("user_id").Constrained("users").CascadeOnDelete().CascadeOnUpdate()
	b.ForeignID("category_id").Constrained("categories")
	b.Timestamps()

	got, err := db.CreateTableSQL(b)
	require.NoError(t, err)
	require.Equal(t, `CREATE TABLE IF NOT EXISTS "posts" (
    "id" BIGSERIAL PRIMARY KEY,
    "title" VARCHAR(255) NOT NULL,
    "slug" VARCHAR(120) UNIQUE,
    "body" TEXT NULL,
    "price" NUMERIC(10, 2) DEFAULT 0,
    "published" BOOLEAN DEFAULT FALSE,
    "status" VARCHAR(20) DEFAULT 'it''s draft',
    "user_id" BIGINT,
    "category_id" BIGINT,
    "created_at" TIMESTAMPTZ NOT NULL DEFAULT now(),
    "updated_at" TIMESTAMPTZ NOT NULL DEFAULT now(),
    FOREIGN KEY ("user_id") REFERENCES "users" ("id") ON DELETE CASCADE ON UPDATE CASCADE,
    FOREIGN KEY ("category_id") REFERENCES "categories" ("id")
)`, got)
}

func TestCreateTableSQL_QuotesIdentifiers(t *testing.T) {
	t.Parallel()

	b := db.NewBlueprint(`odd"table`)
	b.Integer("count")

	got, err := db.CreateTableSQL(b)
	require.NoError(t, err)
	require.Contains(t, got, `"odd""table"`)
	require.Contains(t, got, `"count" INTEGER`)
}

func TestCreateTableSQL_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		build func() *db.Blueprint
	}{
		{"empty table name", func() *db.Blueprint {
			b := db.NewBlueprint(" ")
			b.ID()
			return b
		}},
		{"no columns", func() *db.Blueprint { return db.NewBlueprint("t") }},
		{"duplicate column", func() *db.Blueprint {
			b := db.NewBlueprint("t")
			b.Date("day")
			b.Timestamp("day")
			return b
		}},
		{"unnamed column", func() *db.Blueprint {
			b := db.NewBlueprint("t")
			b.Text("")
			return b
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := db.CreateTableSQL(tt.build())
			require.ErrorIs(t, err, db.ErrInvalidSchema)
		})
	}
}

func TestDropTableSQL(t *testing.T) {
	t.Parallel()

	got, err := db.DropTableSQL("users")
	require.NoError(t, err)
	require.Equal(t, `DROP TABLE IF EXISTS "users"`, got)

	_, err = db.DropTableSQL("")
	require.ErrorIs(t, err, db.ErrInvalidSchema)
}

func TestSchema(t *testing.T) {
	t.Parallel()

	t.Run("create and drop", func(t *testing.T) {
		t.Parallel()

		exec := &execRecorder{}
		s := db.NewSchema(exec, nil)

		require.NoError(t, s.Create(context.Background(), "tags", func(b *db.Blueprint) {
			b.ID()
			b.String("name", 50)
		}))
		require.NoError(t, s.Drop(context.Background(), "tags"))

		require.Len(t, exec.queries, 2)
		require.Contains(t, exec.queries[0], `CREATE TABLE IF NOT EXISTS "tags"`)
		require.Equal(t, `DROP TABLE IF EXISTS "tags"`, exec.queries[1])
	})

	t.Run("invalid definition is not executed", func(t *testing.T) {
		t.Parallel()

		exec := &execRecorder{}
		err := db.NewSchema(exec, nil).Create(context.Background(), "empty", func(*db.Blueprint) {})
		require.ErrorIs(t, err, db.ErrInvalidSchema)
		require.Empty(t, exec.queries)
	})

	t.Run("exec failure", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("permission denied")
		err := db.NewSchema(&execRecorder{err: boom}, nil).Drop(context.Background(), "users")
		require.ErrorIs(t, err, db.ErrSchemaExec)
		require.ErrorIs(t, err, boom)
	})
}

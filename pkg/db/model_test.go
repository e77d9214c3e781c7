package db_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/zenithgo/zenith/pkg/db"
)

type fakeQuerier struct {
	tag      string
	err      error
	lastSQL  string
	lastArgs []any
}

func (f *fakeQuerier) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	f.lastSQL, f.lastArgs = sql, args
	return nil, f.err
}

func (f *fakeQuerier) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.lastSQL, f.lastArgs = sql, args
	return pgconn.NewCommandTag(f.tag), f.err
}

func TestModelSQL(t *testing.T) {
	t.Parallel()

	require.Equal(t, `SELECT * FROM "users" ORDER BY "id"`, db.SelectAllSQL("users"))
	require.Equal(t, `SELECT * FROM "users" WHERE "id" = $1`, db.SelectByIDSQL("users"))
	require.Equal(t, `DELETE FROM "users" WHERE "id" = $1`, db.DeleteSQL("users"))

	query, args, err := db.InsertSQL("users", db.Record{"name": "Ann", "email": "ann@example.com"})
	require.NoError(t, err)
	require.Equal(t, `INSERT INTO "users" ("email", "name") VALUES ($1, $2) RETURNING *`, query)
	require.Equal(t, []any{"ann@example.com", "Ann"}, args)

	query, args, err = db.UpdateSQL("users", 7, db.Record{"name": "Bo", "age": 30})
	require.NoError(t, err)
	require.Equal(t, `UPDATE "users" SET "age" = $1, "name" = $2 WHERE "id" = $3`, query)
	require.Equal(t, []any{30, "Bo", 7}, args)
}

func TestModelSQL_Injection(t *testing.T) {
	t.Parallel()

	query, args, err := db.InsertSQL("users", db.Record{`name"; DROP TABLE users; --`: "x"})
	require.NoError(t, err)
	require.Equal(t, `INSERT INTO "users" ("name""; DROP TABLE users; --") VALUES ($1) RETURNING *`, query)
	require.Equal(t, []any{"x"}, args)
}

func TestModelSQL_InvalidRecord(t *testing.T) {
	t.Parallel()

	_, _, err := db.InsertSQL("users", nil)
	require.ErrorIs(t, err, db.ErrInvalidRecord)

	_, _, err = db.UpdateSQL("users", 1, db.Record{"": 1})
	require.ErrorIs(t, err, db.ErrInvalidRecord)
}

func TestModel_UpdateDelete(t *testing.T) {
	t.Parallel()

	t.Run("update", func(t *testing.T) {
		t.Parallel()

		q := &fakeQuerier{tag: "UPDATE 1"}
		require.NoError(t, db.NewModel(q, "users").Update(context.Background(), 3, db.Record{"name": "Cy"}))
		require.Equal(t, `UPDATE "users" SET "name" = $1 WHERE "id" = $2`, q.lastSQL)
		require.Equal(t, []any{"Cy", 3}, q.lastArgs)
	})

	t.Run("update missing row", func(t *testing.T) {
		t.Parallel()

		q := &fakeQuerier{tag: "UPDATE 0"}
		err := db.NewModel(q, "users").Update(context.Background(), 3, db.Record{"name": "Cy"})
		require.ErrorIs(t, err, db.ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		t.Parallel()

		q := &fakeQuerier{tag: "DELETE 1"}
		require.NoError(t, db.NewModel(q, "users").Delete(context.Background(), 9))
		require.Equal(t, []any{9}, q.lastArgs)
	})

	t.Run("delete missing row", func(t *testing.T) {
		t.Parallel()

		q := &fakeQuerier{tag: "DELETE 0"}
		require.ErrorIs(t, db.NewModel(q, "users").Delete(context.Background(), 9), db.ErrNotFound)
	})

	t.Run("empty update is not sent", func(t *testing.T) {
		t.Parallel()

		q := &fakeQuerier{tag: "UPDATE 1"}
		require.ErrorIs(t, db.NewModel(q, "users").Update(context.Background(), 1, db.Record{}), db.ErrInvalidRecord)
		require.Empty(t, q.lastSQL)
	})
}

func TestModel_QueryErrors(t *testing.T) {
	t.Parallel()

	boom := errors.New("connection reset")
	m := db.NewModel(&fakeQuerier{err: boom}, "users")

	_, err := m.All(context.Background())
	require.ErrorIs(t, err, db.ErrQuery)
	require.ErrorIs(t, err, boom)

	_, err = m.Find(context.Background(), 1)
	require.ErrorIs(t, err, db.ErrQuery)

	_, err = m.Store(context.Background(), db.Record{"name": "x"})
	require.ErrorIs(t, err, boom)

	require.ErrorIs(t, m.Delete(context.Background(), 1), db.ErrQuery)
}

func TestModel_With(t *testing.T) {
	t.Parallel()

	base := db.NewModel(&fakeQuerier{}, "posts")
	q := &fakeQuerier{tag: "DELETE 1"}
	require.NoError(t, base.With(q).Delete(context.Background(), 1))
	require.Equal(t, `DELETE FROM "posts" WHERE "id" = $1`, q.lastSQL)
	require.Equal(t, "posts", base.With(q).Table())
}

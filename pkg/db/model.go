package db

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Record is one table row keyed by column name.
type Record = map[string]any

// Querier is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Model provides basic CRUD over a single table keyed by an "id" column.
// Identifiers are quoted and values are always bound as parameters.
type Model struct {
	db    Querier
	table string
}

// NewModel returns a Model for table.
func NewModel(db Querier, table string) *Model {
	return &Model{db: db, table: table}
}

// Table returns the table name.
func (m *Model) Table() string { return m.table }

// With returns a copy of m that runs on q, typically a transaction from WithTx.
func (m *Model) With(q Querier) *Model {
	return &Model{db: q, table: m.table}
}

// All returns every row ordered by id.
func (m *Model) All(ctx context.Context) ([]Record, error) {
	rows, err := m.db.Query(ctx, SelectAllSQL(m.table))
	if err != nil {
		return nil, errors.Join(ErrQuery, err)
	}
	records, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, errors.Join(ErrQuery, err)
	}
	return records, nil
}

// Find returns the row with the given id or ErrNotFound.
func (m *Model) Find(ctx context.Context, id any) (Record, error) {
	rows, err := m.db.Query(ctx, SelectByIDSQL(m.table), id)
	if err != nil {
		return nil, errors.Join(ErrQuery, err)
	}
	record, err := pgx.CollectOneRow(rows, pgx.RowToMap)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Join(ErrQuery, err)
	}
	return record, nil
}

// Store inserts data and returns the stored row.
func (m *Model) Store(ctx context.Context, data Record) (Record, error) {
	query, args, err := InsertSQL(m.table, data)
	if err != nil {
		return nil, err
	}
	rows, err := m.db.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Join(ErrQuery, err)
	}
	record, err := pgx.CollectOneRow(rows, pgx.RowToMap)
	if err != nil {
		return nil, errors.Join(ErrQuery, err)
	}
	return record, nil
}

// Update sets the columns in data on the row with the given id.
// It returns ErrNotFound when no row matched.
func (m *Model) Update(ctx context.Context, id any, data Record) error {
	query, args, err := UpdateSQL(m.table, id, data)
	if err != nil {
		return err
	}
	tag, err := m.db.Exec(ctx, query, args...)
	if err != nil {
		return errors.Join(ErrQuery, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the row with the given id.
// It returns ErrNotFound when no row matched.
func (m *Model) Delete(ctx context.Context, id any) error {
	tag, err := m.db.Exec(ctx, DeleteSQL(m.table), id)
	if err != nil {
		return errors.Join(ErrQuery, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SelectAllSQL renders the query used by Model.All.
func SelectAllSQL(table string) string {
	return fmt.Sprintf("SELECT * FROM %s ORDER BY %s", quoteIdent(table), quoteIdent("id"))
}

// SelectByIDSQL renders the query used by Model.Find.
func SelectByIDSQL(table string) string {
	return fmt.Sprintf("SELECT * FROM %s WHERE %s = $1", quoteIdent(table), quoteIdent("id"))
}

// DeleteSQL renders the statement used by Model.Delete.
func DeleteSQL(table string) string {
	return fmt.Sprintf("DELETE FROM %s WHERE %s = $1", quoteIdent(table), quoteIdent("id"))
}

// InsertSQL renders an INSERT for data with columns in sorted order.
func InsertSQL(table string, data Record) (string, []any, error) {
	cols, err := columns(data)
	if err != nil {
		return "", nil, err
	}

	names := make([]string, len(cols))
	holders := make([]string, len(cols))
	args := make([]any, len(cols))
	for i, c := range cols {
		names[i] = quoteIdent(c)
		holders[i] = "$" + strconv.Itoa(i+1)
		args[i] = data[c]
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING *",
		quoteIdent(table), strings.Join(names, ", "), strings.Join(holders, ", "))
	return query, args, nil
}

// UpdateSQL renders an UPDATE of data for the row with the given id.
// The id is bound as the last argument.
func UpdateSQL(table string, id any, data Record) (string, []any, error) {
	cols, err := columns(data)
	if err != nil {
		return "", nil, err
	}

	sets := make([]string, len(cols))
	args := make([]any, 0, len(cols)+1)
	for i, c := range cols {
		sets[i] = quoteIdent(c) + " = $" + strconv.Itoa(i+1)
		args = append(args, data[c])
	}
	args = append(args, id)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = $%d",
		quoteIdent(table), strings.Join(sets, ", "), quoteIdent("id"), len(args))
	return query, args, nil
}

func columns(data Record) ([]string, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: no columns", ErrInvalidRecord)
	}
	cols := slices.Sorted(maps.Keys(data))
	if cols[0] == "" {
		return nil, fmt.Errorf("%w: empty column name", ErrInvalidRecord)
	}
	return cols, nil
}

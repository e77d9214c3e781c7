package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/zenithgo/zenith/pkg/logger"
)

// Executor runs a statement that returns no rows.
// *sql.DB, *sql.Tx and *sql.Conn satisfy it.
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Expr is a raw SQL expression used as a column default, such as now().
// It is written to the statement unquoted.
type Expr string

// Column describes one column of a table under construction.
// Modifiers return the column so they can be chained.
type Column struct {
	name       string
	sqlType    string
	primary    bool
	unique     bool
	nullable   *bool
	hasDefault bool
	defaultVal string
	references string
	onDelete   bool
	onUpdate   bool
}

// Name returns the column name.
func (c *Column) Name() string { return c.name }

// Unique adds a UNIQUE constraint.
func (c *Column) Unique() *Column {
	c.unique = true
	return c
}

// Default sets the column default. Strings are quoted as literals,
// Expr values are written as is.
func (c *Column) Default(v any) *Column {
	c.hasDefault = true
	c.defaultVal = literal(v)
	return c
}

// Nullable allows NULL values.
func (c *Column) Nullable() *Column {
	n := true
	c.nullable = &n
	return c
}

// NotNull forbids NULL values.
func (c *Column) NotNull() *Column {
	n := false
	c.nullable = &n
	return c
}

// Constrained adds a foreign key from this column to the id column of table.
func (c *Column) Constrained(table string) *Column {
	c.references = table
	return c
}

// CascadeOnDelete deletes rows when the referenced row is deleted.
// It has no effect without Constrained.
func (c *Column) CascadeOnDelete() *Column {
	c.onDelete = true
	return c
}

// CascadeOnUpdate updates rows when the referenced key changes.
// It has no effect without Constrained.
func (c *Column) CascadeOnUpdate() *Column {
	c.onUpdate = true
	return c
}

func (c *Column) definition() string {
	var b strings.Builder
	b.WriteString(quoteIdent(c.name))
	b.WriteByte(' ')
	b.WriteString(c.sqlType)
	if c.primary {
		b.WriteString(" PRIMARY KEY")
	}
	if c.nullable != nil {
		if *c.nullable {
			b.WriteString(" NULL")
		} else {
			b.WriteString(" NOT NULL")
		}
	}
	if c.unique {
		b.WriteString(" UNIQUE")
	}
	if c.hasDefault {
		b.WriteString(" DEFAULT ")
		b.WriteString(c.defaultVal)
	}
	return b.String()
}

func (c *Column) foreignKey() string {
	fk := fmt.Sprintf("FOREIGN KEY (%s) REFERENCES %s (%s)",
		quoteIdent(c.name), quoteIdent(c.references), quoteIdent("id"))
	if c.onDelete {
		fk += " ON DELETE CASCADE"
	}
	if c.onUpdate {
		fk += " ON UPDATE CASCADE"
	}
	return fk
}

// Blueprint collects the columns of a table definition.
type Blueprint struct {
	table   string
	columns []*Column
}

// NewBlueprint returns an empty definition for table.
func NewBlueprint(table string) *Blueprint {
	return &Blueprint{table: table}
}

// Table returns the table name.
func (b *Blueprint) Table() string { return b.table }

// Columns returns the columns in declaration order.
func (b *Blueprint) Columns() []*Column { return b.columns }

func (b *Blueprint) add(name, sqlType string) *Column {
	c := &Column{name: name, sqlType: sqlType}
	b.columns = append(b.columns, c)
	return c
}

// ID adds an auto-incrementing "id" primary key.
func (b *Blueprint) ID() *Column {
	c := b.add("id", "BIGSERIAL")
	c.primary = true
	return c
}

// String adds a VARCHAR column. A length of zero means 255.
func (b *Blueprint) String(name string, length int) *Column {
	if length <= 0 {
		length = 255
	}
	return b.add(name, "VARCHAR("+strconv.Itoa(length)+")")
}

// Integer adds an INTEGER column.
func (b *Blueprint) Integer(name string) *Column { return b.add(name, "INTEGER") }

// Text adds a TEXT column.
func (b *Blueprint) Text(name string) *Column { return b.add(name, "TEXT") }

// Decimal adds a NUMERIC column. Zero precision means NUMERIC(10, 2).
func (b *Blueprint) Decimal(name string, precision, scale int) *Column {
	if precision <= 0 {
		precision, scale = 10, 2
	}
	return b.add(name, fmt.Sprintf("NUMERIC(%d, %d)", precision, scale))
}

// Boolean adds a BOOLEAN column.
func (b *Blueprint) Boolean(name string) *Column { return b.add(name, "BOOLEAN") }

// Timestamp adds a TIMESTAMPTZ column.
func (b *Blueprint) Timestamp(name string) *Column { return b.add(name, "TIMESTAMPTZ") }

// Date adds a DATE column.
func (b *Blueprint) Date(name string) *Column { return b.add(name, "DATE") }

// ForeignID adds a BIGINT column meant to reference another table's id.
func (b *Blueprint) ForeignID(name string) *Column { return b.add(name, "BIGINT") }

// Timestamps adds created_at and updated_at, both defaulting to now().
func (b *Blueprint) Timestamps() {
	b.Timestamp("created_at").NotNull().Default(Expr("now()"))
	b.Timestamp("updated_at").NotNull().Default(Expr("now()"))
}

// CreateTableSQL renders the CREATE TABLE statement for b.
// Foreign key constraints follow the column definitions.
func CreateTableSQL(b *Blueprint) (string, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", fmt.Errorf("%w: empty table name", ErrInvalidSchema)
	}
	if len(b.columns) == 0 {
		return "", fmt.Errorf("%w: table %q has no columns", ErrInvalidSchema, b.table)
	}

	seen := make(map[string]bool, len(b.columns))
	parts := make([]string, 0, len(b.columns))
	var fks []string
	for _, c := range b.columns {
		if c.name == "" {
			return "", fmt.Errorf("%w: table %q has an unnamed column", ErrInvalidSchema, b.table)
		}
		if seen[c.name] {
			return "", fmt.Errorf("%w: duplicate column %q in table %q", ErrInvalidSchema, c.name, b.table)
		}
		seen[c.name] = true
		parts = append(parts, c.definition())
		if c.references != "" {
			fks = append(fks, c.foreignKey())
		}
	}
	parts = append(parts, fks...)

	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n    %s\n)",
		quoteIdent(b.table), strings.Join(parts, ",\n    ")), nil
}

// DropTableSQL renders the DROP TABLE statement for table.
func DropTableSQL(table string) (string, error) {
	if strings.TrimSpace(table) == "" {
		return "", fmt.Errorf("%w: empty table name", ErrInvalidSchema)
	}
	return "DROP TABLE IF EXISTS " + quoteIdent(table), nil
}

// Schema applies table definitions through an Executor.
type Schema struct {
	exec Executor
	log  *slog.Logger
}

// NewSchema returns a Schema bound to exec.
// A nil logger discards output.
func NewSchema(exec Executor, log *slog.Logger) *Schema {
	if log == nil {
		log = logger.NewNope()
	}
	return &Schema{exec: exec, log: log}
}

// Create builds a table definition with fn and executes it.
func (s *Schema) Create(ctx context.Context, table string, fn func(*Blueprint)) error {
	b := NewBlueprint(table)
	fn(b)

	query, err := CreateTableSQL(b)
	if err != nil {
		return err
	}
	if _, err := s.exec.ExecContext(ctx, query); err != nil {
		return errors.Join(ErrSchemaExec, err)
	}
	s.log.DebugContext(ctx, "table created", slog.String("table", table))
	return nil
}

// Drop removes table if it exists.
func (s *Schema) Drop(ctx context.Context, table string) error {
	query, err := DropTableSQL(table)
	if err != nil {
		return err
	}
	if _, err := s.exec.ExecContext(ctx, query); err != nil {
		return errors.Join(ErrSchemaExec, err)
	}
	s.log.DebugContext(ctx, "table dropped", slog.String("table", table))
	return nil
}

// Exec runs a raw statement, for changes the Blueprint cannot express.
func (s *Schema) Exec(ctx context.Context, query string, args ...any) error {
	if _, err := s.exec.ExecContext(ctx, query, args...); err != nil {
		return errors.Join(ErrSchemaExec, err)
	}
	return nil
}

func quoteIdent(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

func literal(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case Expr:
		return string(x)
	case string:
		return "'" + strings.ReplaceAll(x, "'", "''") + "'"
	case bool:
		if x {
			return "TRUE"
		}
		return "FALSE"
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return literal(fmt.Sprint(x))
	}
}

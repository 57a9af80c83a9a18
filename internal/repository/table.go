package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/stagebook/internal/database"
)

// Entity is implemented by every model persisted through Table.  Columns
// lists the writable columns (everything except the "id" primary key) and
// Values returns the matching field values in the same order.
type Entity interface {
	TableName() string
	Columns() []string
	Values() []any
	PK() uint64
	SetPK(id uint64)
}

type entityPtr[T any] interface {
	*T
	Entity
}

// Table is a generic repository over one table.  It runs against either the
// connection pool or a transaction; With rebinds it to another executor so
// the same code can take part in a WithTx block.  Placeholders are written
// as "?" and rebound for the driver in use.
type Table[T any, PT entityPtr[T]] struct {
	ext sqlx.ExtContext
}

// NewTable constructs a Table bound to ext (a *sqlx.DB or *sqlx.Tx).
func NewTable[T any, PT entityPtr[T]](ext sqlx.ExtContext) Table[T, PT] {
	return Table[T, PT]{ext: ext}
}

// With returns a copy of t bound to ext.
func (t Table[T, PT]) With(ext sqlx.ExtContext) Table[T, PT] {
	return Table[T, PT]{ext: ext}
}

func (t Table[T, PT]) proto() PT { return PT(new(T)) }

func (t Table[T, PT]) name() string { return t.proto().TableName() }

func (t Table[T, PT]) selectList() string {
	return "id, " + strings.Join(t.proto().Columns(), ", ")
}

func (t Table[T, PT]) hasColumn(col string) bool {
	if col == "id" {
		return true
	}
	for _, c := range t.proto().Columns() {
		if c == col {
			return true
		}
	}
	return false
}

func (t Table[T, PT]) rebind(q string) string { return t.ext.Rebind(q) }

// lower names the case folding function of the dialect.  It must agree with
// strings.ToLower, which folds the search term.
func (t Table[T, PT]) lower() string {
	if t.ext.DriverName() == "sqlite" {
		return database.SQLiteLower
	}
	return "LOWER"
}

// Create inserts e and stores the generated primary key back into it.
func (t Table[T, PT]) Create(ctx context.Context, e PT) error {
	cols := e.Columns()
	ph := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	q := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", e.TableName(), strings.Join(cols, ", "), ph)

	// Postgres has no LastInsertId; ask for the key explicitly.
	if sqlx.BindType(t.ext.DriverName()) == sqlx.DOLLAR {
		var id uint64
		if err := t.ext.QueryRowxContext(ctx, t.rebind(q+" RETURNING id"), e.Values()...).Scan(&id); err != nil {
			return translate(err)
		}
		e.SetPK(id)
		return nil
	}

	res, err := t.ext.ExecContext(ctx, t.rebind(q), e.Values()...)
	if err != nil {
		return translate(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	e.SetPK(uint64(id))
	return nil
}

// GetByID fetches one row.  It returns ErrNotFound if no row matches.
func (t Table[T, PT]) GetByID(ctx context.Context, id uint64) (*T, error) {
	q := fmt.Sprintf("SELECT %s FROM %s WHERE id = ?", t.selectList(), t.name())
	var out T
	if err := sqlx.GetContext(ctx, t.ext, &out, t.rebind(q), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}

// Exists reports whether a row with the given id is present.
func (t Table[T, PT]) Exists(ctx context.Context, id uint64) (bool, error) {
	n, err := t.Count(ctx, "id = ?", id)
	return n > 0, err
}

// ListAll returns every row ordered by id.
func (t Table[T, PT]) ListAll(ctx context.Context) ([]T, error) {
	return t.Filter(ctx, "")
}

// Filter returns the rows matching where (a SQL predicate using "?"
// placeholders) in id order.  An empty where matches all rows.
func (t Table[T, PT]) Filter(ctx context.Context, where string, args ...any) ([]T, error) {
	q := fmt.Sprintf("SELECT %s FROM %s%s ORDER BY id", t.selectList(), t.name(), whereClause(where))
	out := []T{}
	if err := sqlx.SelectContext(ctx, t.ext, &out, t.rebind(q), args...); err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the number of rows matching where.
func (t Table[T, PT]) Count(ctx context.Context, where string, args ...any) (int, error) {
	q := fmt.Sprintf("SELECT COUNT(*) FROM %s%s", t.name(), whereClause(where))
	var n int
	if err := sqlx.GetContext(ctx, t.ext, &n, t.rebind(q), args...); err != nil {
		return 0, err
	}
	return n, nil
}

// Page returns one page of the rows matching where, in id order, plus the
// total number of matching rows.  An empty page yields ErrNotFound together
// with the total, so callers can tell "past the end" from "no rows" if they
// need to.
func (t Table[T, PT]) Page(ctx context.Context, p Page, where string, args ...any) ([]T, int, error) {
	total, err := t.Count(ctx, where, args...)
	if err != nil {
		return nil, 0, err
	}
	if p.unreachable() {
		return nil, total, ErrNotFound
	}
	q := fmt.Sprintf("SELECT %s FROM %s%s ORDER BY id LIMIT ? OFFSET ?", t.selectList(), t.name(), whereClause(where))
	out := []T{}
	pageArgs := append(append([]any{}, args...), p.Size, p.Offset())
	if err := sqlx.SelectContext(ctx, t.ext, &out, t.rebind(q), pageArgs...); err != nil {
		return nil, 0, err
	}
	if len(out) == 0 {
		return nil, total, ErrNotFound
	}
	return out, total, nil
}

// Search returns the rows whose column contains term, ignoring case, in
// storage order, plus the match count.  An empty term matches every row.
func (t Table[T, PT]) Search(ctx context.Context, column, term string) ([]T, int, error) {
	if !t.hasColumn(column) {
		return nil, 0, fmt.Errorf("search: unknown column %q on %s", column, t.name())
	}
	rows, err := t.Filter(ctx, t.lower()+"("+column+") LIKE ? ESCAPE '"+likeEscape+"'", containsPattern(term))
	if err != nil {
		return nil, 0, err
	}
	return rows, len(rows), nil
}

// Update writes every column of e.  It returns ErrNotFound when no row has
// e's id.
func (t Table[T, PT]) Update(ctx context.Context, e PT) error {
	cols := e.Columns()
	sets := make([]string, len(cols))
	for i, c := range cols {
		sets[i] = c + " = ?"
	}
	q := fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", e.TableName(), strings.Join(sets, ", "))
	res, err := t.ext.ExecContext(ctx, t.rebind(q), append(e.Values(), e.PK())...)
	if err != nil {
		return translate(err)
	}
	return affected(res)
}

// Delete removes the row with the given id.  It returns ErrNotFound when no
// such row exists.
func (t Table[T, PT]) Delete(ctx context.Context, id uint64) error {
	q := fmt.Sprintf("DELETE FROM %s WHERE id = ?", t.name())
	res, err := t.ext.ExecContext(ctx, t.rebind(q), id)
	if err != nil {
		return translate(err)
	}
	return affected(res)
}

// DeleteWhere removes every row matching where and reports how many went.
func (t Table[T, PT]) DeleteWhere(ctx context.Context, where string, args ...any) (int64, error) {
	if strings.TrimSpace(where) == "" {
		return 0, errors.New("delete: refusing to run without a predicate")
	}
	q := fmt.Sprintf("DELETE FROM %s WHERE %s", t.name(), where)
	res, err := t.ext.ExecContext(ctx, t.rebind(q), args...)
	if err != nil {
		return 0, translate(err)
	}
	return res.RowsAffected()
}

func whereClause(where string) string {
	if strings.TrimSpace(where) == "" {
		return ""
	}
	return " WHERE " + where
}

func affected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

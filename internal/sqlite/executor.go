// This file holds the query primitives every repository is built from.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/mesh-intelligence/homestead/pkg/types"
)

// Querier is satisfied by *sql.DB and *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Compile-time checks.
var (
	_ Querier = (*sql.DB)(nil)
	_ Querier = (*sql.Tx)(nil)
)

// RowScanner is satisfied by *sql.Row and *sql.Rows.
type RowScanner interface {
	Scan(dest ...any) error
}

// QueryAll runs query and maps every row with scan. The result is never nil
// on success.
func QueryAll[T any](ctx context.Context, q Querier, scan func(RowScanner) (T, error), query string, args ...any) ([]T, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err)
	}
	return out, nil
}

// QueryFirst returns the first row mapped with scan, or nil when the query
// matches nothing.
func QueryFirst[T any](ctx context.Context, q Querier, scan func(RowScanner) (T, error), query string, args ...any) (*T, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, classify(err)
		}
		return nil, nil
	}
	item, err := scan(rows)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Exec runs an insert, update, or delete.
func Exec(ctx context.Context, q Querier, query string, args ...any) (sql.Result, error) {
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, classify(err)
	}
	return res, nil
}

// classify marks foreign key failures with ErrIntegrity, keeping the driver
// error in the chain.
func classify(err error) error {
	if isForeignKeyError(err) {
		return fmt.Errorf("%w: %w", types.ErrIntegrity, err)
	}
	return err
}

func isForeignKeyError(err error) bool {
	var serr *sqlite.Error
	if !errors.As(err, &serr) {
		return false
	}
	code := serr.Code()
	if code == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY {
		return true
	}
	return code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(serr.Error(), "FOREIGN KEY")
}

type txKey struct{}

// Executor hands out the backend's handle and scopes transactions.
type Executor struct {
	backend *Backend
}

// NewExecutor creates an executor over b.
func NewExecutor(b *Backend) *Executor {
	return &Executor{backend: b}
}

// DB returns the live handle, initializing the store on first use.
func (e *Executor) DB(ctx context.Context) (*sql.DB, error) {
	return e.backend.Conn(ctx)
}

// Querier returns the transaction carried by ctx, or the live handle when
// ctx carries none.
func (e *Executor) Querier(ctx context.Context) (Querier, error) {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx, nil
	}
	return e.DB(ctx)
}

// WithTx runs fn inside one transaction: commit on success, rollback and
// return fn's error otherwise. A panic in fn also rolls back before it
// propagates. fn must use the Querier it is given; the pool holds a single
// connection. Calling WithTx from inside fn returns ErrNestedTransaction.
func (e *Executor) WithTx(ctx context.Context, fn func(ctx context.Context, q Querier) error) error {
	if ctx.Value(txKey{}) != nil {
		return types.ErrNestedTransaction
	}
	db, err := e.DB(ctx)
	if err != nil {
		return err
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(context.WithValue(ctx, txKey{}, tx), tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return classify(fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}

// atomically runs fn in the transaction carried by ctx, or in a new one when
// ctx carries none. Repository operations that must be atomic use it so they
// also compose inside a caller's WithTx.
func (e *Executor) atomically(ctx context.Context, fn func(ctx context.Context, q Querier) error) error {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return fn(ctx, tx)
	}
	return e.WithTx(ctx, fn)
}

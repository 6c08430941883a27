// This file maps typed patches onto parameterized UPDATE statements and
// holds the per-table accessor shared by every repository.
package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mesh-intelligence/homestead/pkg/types"
)

// patchSet collects the assignments for one UPDATE. Column names come from
// repository code; values are always bound.
type patchSet struct {
	sets []string
	args []any
	err  error
}

func (p *patchSet) set(column string, value any) {
	p.sets = append(p.sets, column+" = ?")
	p.args = append(p.args, value)
}

func (p *patchSet) text(column string, v *string) {
	if v != nil {
		p.set(column, *v)
	}
}

// required rejects an empty value for a NOT NULL text column.
func (p *patchSet) required(column string, v *string) {
	if v == nil {
		return
	}
	if *v == "" {
		p.fail(fmt.Errorf("%w: %s must not be empty", types.ErrInvalidData, column))
		return
	}
	p.set(column, *v)
}

// ref writes an optional reference; the empty string clears it.
func (p *patchSet) ref(column string, v *string) {
	if v != nil {
		p.set(column, refArg(*v))
	}
}

// date writes an optional date; the zero time clears it.
func (p *patchSet) date(column string, v *time.Time) {
	if v != nil {
		p.set(column, dateArg(v))
	}
}

func (p *patchSet) requiredDate(column string, v *time.Time) {
	if v == nil {
		return
	}
	if v.IsZero() {
		p.fail(fmt.Errorf("%w: %s must be set", types.ErrInvalidData, column))
		return
	}
	p.set(column, fmtDate(*v))
}

func (p *patchSet) money(column string, v *decimal.Decimal) {
	if v != nil {
		p.set(column, moneyArg(*v))
	}
}

func (p *patchSet) nullMoney(column string, v *decimal.NullDecimal) {
	if v != nil {
		p.set(column, nullMoneyArg(*v))
	}
}

func (p *patchSet) flag(column string, v *bool) {
	if v != nil {
		p.set(column, boolInt(*v))
	}
}

func (p *patchSet) integer(column string, v *int) {
	if v != nil {
		p.set(column, *v)
	}
}

func (p *patchSet) integer64(column string, v *int64) {
	if v != nil {
		p.set(column, *v)
	}
}

func (p *patchSet) list(column string, v *[]string) {
	if v == nil {
		return
	}
	encoded, err := listArg(*v)
	if err != nil {
		p.fail(err)
		return
	}
	p.set(column, encoded)
}

// enum writes a value that must satisfy valid.
func (p *patchSet) enum(column string, v *string, valid func(string) bool) {
	if v == nil {
		return
	}
	if !valid(*v) {
		p.fail(fmt.Errorf("%w: %s %q", types.ErrInvalidData, column, *v))
		return
	}
	p.set(column, *v)
}

func (p *patchSet) fail(err error) {
	if p.err == nil {
		p.err = err
	}
}

// apply runs the UPDATE with updated_at always refreshed and reports the
// number of rows changed.
func (p *patchSet) apply(ctx context.Context, q Querier, table, id string, updatedAt time.Time) (int64, error) {
	if p.err != nil {
		return 0, p.err
	}
	sets := append(append([]string{}, p.sets...), "updated_at = ?")
	args := append(append([]any{}, p.args...), fmtTime(updatedAt), id)
	res, err := Exec(ctx, q, `UPDATE `+table+` SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// entityTable reads and writes one table whose rows map to T.
type entityTable[T any] struct {
	name    string
	columns []string
	scan    func(RowScanner) (T, error)
}

func (t entityTable[T]) selectSQL() string {
	return `SELECT ` + strings.Join(t.columns, ", ") + ` FROM ` + t.name
}

// selectAs qualifies every column with alias for use in joins, followed by
// any extra select expressions.
func (t entityTable[T]) selectAs(alias string, extra ...string) string {
	cols := make([]string, 0, len(t.columns)+len(extra))
	for _, c := range t.columns {
		cols = append(cols, alias+"."+c)
	}
	cols = append(cols, extra...)
	return `SELECT ` + strings.Join(cols, ", ") + ` FROM ` + t.name + ` ` + alias
}

// find returns nil when id has no row.
func (t entityTable[T]) find(ctx context.Context, q Querier, id string) (*T, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	item, err := QueryFirst(ctx, q, t.scan, t.selectSQL()+` WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("getting %s %s: %w", t.name, id, err)
	}
	return item, nil
}

// get returns ErrNotFound when id has no row.
func (t entityTable[T]) get(ctx context.Context, q Querier, id string) (*T, error) {
	item, err := t.find(ctx, q, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("getting %s %s: %w", t.name, id, types.ErrNotFound)
	}
	return item, nil
}

// list returns the rows matching where (which may be empty) in order.
func (t entityTable[T]) list(ctx context.Context, q Querier, where, order string, args ...any) ([]T, error) {
	query := t.selectSQL()
	if where != "" {
		query += ` WHERE ` + where
	}
	if order != "" {
		query += ` ORDER BY ` + order
	}
	items, err := QueryAll(ctx, q, t.scan, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", t.name, err)
	}
	return items, nil
}

func (t entityTable[T]) insert(ctx context.Context, q Querier, values map[string]any) error {
	cols := make([]string, 0, len(t.columns))
	args := make([]any, 0, len(t.columns))
	for _, c := range t.columns {
		v, ok := values[c]
		if !ok {
			return fmt.Errorf("inserting %s: missing column %s", t.name, c)
		}
		cols = append(cols, c)
		args = append(args, v)
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	query := `INSERT INTO ` + t.name + ` (` + strings.Join(cols, ", ") + `) VALUES (` + placeholders + `)`
	if _, err := Exec(ctx, q, query, args...); err != nil {
		return fmt.Errorf("inserting %s: %w", t.name, err)
	}
	return nil
}

// reread returns the canonical row after a successful write. A missing row
// means the store is in an impossible state.
func (t entityTable[T]) reread(ctx context.Context, q Querier, id string) (*T, error) {
	item, err := t.find(ctx, q, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: %s %s missing after write", types.ErrInvariant, t.name, id)
	}
	return item, nil
}

// update applies p to id and returns the re-read row.
func (t entityTable[T]) update(ctx context.Context, q Querier, id string, p *patchSet, updatedAt time.Time) (*T, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	n, err := p.apply(ctx, q, t.name, id, updatedAt)
	if err != nil {
		return nil, fmt.Errorf("updating %s %s: %w", t.name, id, err)
	}
	if n == 0 {
		return nil, fmt.Errorf("updating %s %s: %w", t.name, id, types.ErrNotFound)
	}
	return t.reread(ctx, q, id)
}

// delete removes id. Deleting a missing id is not an error; dependents are
// handled by the foreign key rules.
func (t entityTable[T]) delete(ctx context.Context, q Querier, id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	if _, err := Exec(ctx, q, `DELETE FROM `+t.name+` WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting %s %s: %w", t.name, id, err)
	}
	return nil
}

// This file converts between stored column values and domain values.
// Scan-side converters implement sql.Scanner; arg-side helpers produce
// bound parameters.
package sqlite

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Stored timestamps are fixed width so text order matches time order.
const (
	timestampLayout = "2006-01-02T15:04:05.000000Z"
	dateLayout      = "2006-01-02"
)

func fmtTime(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func parseTime(raw string) (time.Time, error) {
	t, err := time.Parse(timestampLayout, raw)
	if err == nil {
		return t, nil
	}
	t, err = time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", raw, err)
	}
	return t.UTC(), nil
}

// dateOnly truncates t to its calendar date at midnight UTC.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func fmtDate(t time.Time) string {
	return t.Format(dateLayout)
}

func parseDate(raw string) (time.Time, error) {
	if len(raw) > len(dateLayout) {
		raw = raw[:len(dateLayout)]
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", raw, err)
	}
	return t, nil
}

// dateArg binds an optional date; nil and the zero time become NULL.
func dateArg(t *time.Time) any {
	if t == nil || t.IsZero() {
		return nil
	}
	return fmtDate(*t)
}

// refArg binds an optional reference; the empty string becomes NULL.
func refArg(id string) any {
	if id == "" {
		return nil
	}
	return id
}

func moneyArg(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

func nullMoneyArg(d decimal.NullDecimal) any {
	if !d.Valid {
		return nil
	}
	return d.Decimal.InexactFloat64()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func listArg(items []string) (string, error) {
	if items == nil {
		items = []string{}
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("encode list: %w", err)
	}
	return string(payload), nil
}

func srcString(src any) (string, bool, error) {
	switch v := src.(type) {
	case nil:
		return "", false, nil
	case string:
		return v, true, nil
	case []byte:
		return string(v), true, nil
	default:
		return "", false, fmt.Errorf("unexpected column type %T", src)
	}
}

// timestampCol scans a stored timestamp.
type timestampCol struct{ dst *time.Time }

func (c timestampCol) Scan(src any) error {
	raw, ok, err := srcString(src)
	if err != nil {
		return err
	}
	if !ok {
		*c.dst = time.Time{}
		return nil
	}
	t, err := parseTime(raw)
	if err != nil {
		return err
	}
	*c.dst = t
	return nil
}

func tsCol(dst *time.Time) timestampCol { return timestampCol{dst} }

// dateCol scans a required calendar date.
type dateCol struct{ dst *time.Time }

func (c dateCol) Scan(src any) error {
	raw, ok, err := srcString(src)
	if err != nil {
		return err
	}
	if !ok {
		*c.dst = time.Time{}
		return nil
	}
	t, err := parseDate(raw)
	if err != nil {
		return err
	}
	*c.dst = t
	return nil
}

func dayCol(dst *time.Time) dateCol { return dateCol{dst} }

// optDateCol scans an optional calendar date; NULL leaves dst nil.
type optDateCol struct{ dst **time.Time }

func (c optDateCol) Scan(src any) error {
	raw, ok, err := srcString(src)
	if err != nil {
		return err
	}
	if !ok || raw == "" {
		*c.dst = nil
		return nil
	}
	t, err := parseDate(raw)
	if err != nil {
		return err
	}
	*c.dst = &t
	return nil
}

func nullDayCol(dst **time.Time) optDateCol { return optDateCol{dst} }

// refCol scans an optional reference; NULL becomes the empty string.
type refCol struct{ dst *string }

func (c refCol) Scan(src any) error {
	raw, _, err := srcString(src)
	if err != nil {
		return err
	}
	*c.dst = raw
	return nil
}

func nullRefCol(dst *string) refCol { return refCol{dst} }

// flagCol scans a 0/1 integer.
type flagCol struct{ dst *bool }

func (c flagCol) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*c.dst = false
	case int64:
		*c.dst = v != 0
	case bool:
		*c.dst = v
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse flag %q: %w", v, err)
		}
		*c.dst = n != 0
	default:
		return fmt.Errorf("unexpected flag type %T", src)
	}
	return nil
}

func boolCol(dst *bool) flagCol { return flagCol{dst} }

// listCol scans a JSON array of strings; the result is never nil.
type listCol struct{ dst *[]string }

func (c listCol) Scan(src any) error {
	raw, ok, err := srcString(src)
	if err != nil {
		return err
	}
	out := []string{}
	if ok && raw != "" {
		if err := json.Unmarshal([]byte(raw), &out); err != nil {
			return fmt.Errorf("decode list: %w", err)
		}
		if out == nil {
			out = []string{}
		}
	}
	*c.dst = out
	return nil
}

func jsonListCol(dst *[]string) listCol { return listCol{dst} }

// scanDecimal reads a single aggregate value that may be NULL.
func scanDecimal(row RowScanner) (decimal.Decimal, error) {
	var d decimal.NullDecimal
	if err := row.Scan(&d); err != nil {
		return decimal.Zero, err
	}
	if !d.Valid {
		return decimal.Zero, nil
	}
	return d.Decimal.Round(2), nil
}

func scanInt(row RowScanner) (int, error) {
	var n int
	err := row.Scan(&n)
	return n, err
}

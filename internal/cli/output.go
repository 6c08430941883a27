package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/mesh-intelligence/homestead/pkg/types"
)

const dateLayout = "2006-01-02"

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// newTable returns a tab-aligned writer; callers Flush it.
func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

// formatMoney renders amount in the currency's own notation, rounding to
// the currency's minor unit.
func formatMoney(amount decimal.Decimal, code string) string {
	cur := *money.New(0, code).Currency()
	minor := amount.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}

// currency returns the currency chosen in the app settings.
func (a *app) currency(ctx context.Context) (string, error) {
	settings, err := a.openStore().Settings.Get(ctx)
	if err != nil {
		return "", err
	}
	return settings.Currency, nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(dateLayout)
}

func parseDate(flag, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("%w: --%s wants YYYY-MM-DD, got %q", errUsage, flag, value)
	}
	return &t, nil
}

func parseMoney(flag, value string) (decimal.NullDecimal, error) {
	if value == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("%w: --%s wants an amount, got %q", errUsage, flag, value)
	}
	if d.IsNegative() {
		return decimal.NullDecimal{}, fmt.Errorf("%w: --%s must not be negative", errUsage, flag)
	}
	return decimal.NewNullDecimal(d), nil
}

func taskDue(t types.MaintenanceTask) string {
	return formatDate(t.NextDueDate)
}

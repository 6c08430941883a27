package cli

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func (a *app) expenseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "expense",
		Aliases: []string{"expenses"},
		Short:   "Report on expenses",
	}
	cmd.AddCommand(a.expenseMonthlyCmd())
	return cmd
}

type monthlyTotal struct {
	Year     int             `json:"year"`
	Month    int             `json:"month"`
	Total    decimal.Decimal `json:"total"`
	Currency string          `json:"currency"`
}

func (a *app) expenseMonthlyCmd() *cobra.Command {
	var year, month int
	cmd := &cobra.Command{
		Use:   "monthly",
		Short: "Total the expenses of one calendar month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := a.now()
			if year == 0 {
				year = now.Year()
			}
			if month == 0 {
				month = int(now.Month())
			}
			if month < 1 || month > 12 {
				return fmt.Errorf("%w: --month must be 1-12, got %d", errUsage, month)
			}

			total, err := a.openStore().Expenses.GetMonthlyTotal(cmd.Context(), year, time.Month(month))
			if err != nil {
				return err
			}
			code, err := a.currency(cmd.Context())
			if err != nil {
				return err
			}
			if a.jsonMode {
				return printJSON(cmd.OutOrStdout(), monthlyTotal{Year: year, Month: month, Total: total, Currency: code})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d: %s\n", time.Month(month), year, formatMoney(total, code))
			return nil
		},
	}
	cmd.Flags().IntVar(&year, "year", 0, "year (default: this year)")
	cmd.Flags().IntVar(&month, "month", 0, "month 1-12 (default: this month)")
	return cmd
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/homestead/pkg/types"
)

func (a *app) propertyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "property",
		Aliases: []string{"properties"},
		Short:   "Manage properties",
	}
	cmd.AddCommand(a.propertyListCmd(), a.propertyAddCmd(), a.propertyDeleteCmd(), a.propertySummaryCmd())
	return cmd
}

func (a *app) propertyListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List properties",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := a.openStore().Properties.List(cmd.Context())
			if err != nil {
				return err
			}
			if a.jsonMode {
				return printJSON(cmd.OutOrStdout(), list)
			}
			if len(list) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No properties yet. Add one with: homestead property add NAME")
				return nil
			}
			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "ID\tNAME\tTYPE\tADDRESS")
			for _, p := range list {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.ID, p.Name, p.PropertyType, p.Address)
			}
			return tw.Flush()
		},
	}
}

func (a *app) propertyAddCmd() *cobra.Command {
	var address, propertyType, price, purchased, notes string
	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a property",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			purchasePrice, err := parseMoney("purchase-price", price)
			if err != nil {
				return err
			}
			purchaseDate, err := parseDate("purchase-date", purchased)
			if err != nil {
				return err
			}
			p, err := a.openStore().Properties.Create(cmd.Context(), &types.Property{
				Name:          args[0],
				Address:       address,
				PropertyType:  propertyType,
				PurchaseDate:  purchaseDate,
				PurchasePrice: purchasePrice,
				Notes:         notes,
			})
			if err != nil {
				return err
			}
			if a.jsonMode {
				return printJSON(cmd.OutOrStdout(), p)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", p.Name, p.ID)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&address, "address", "", "street address")
	f.StringVar(&propertyType, "type", "", "house, apartment, cabin, ...")
	f.StringVar(&price, "purchase-price", "", "purchase price")
	f.StringVar(&purchased, "purchase-date", "", "purchase date (YYYY-MM-DD)")
	f.StringVar(&notes, "notes", "", "free-form notes")
	return cmd
}

func (a *app) propertyDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a property and everything it owns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.openStore().Properties.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}
}

func (a *app) propertySummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary ID",
		Short: "Show counts and totals for a property",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sum, err := a.openStore().Properties.GetSummary(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if a.jsonMode {
				return printJSON(cmd.OutOrStdout(), sum)
			}
			code, err := a.currency(cmd.Context())
			if err != nil {
				return err
			}
			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintf(tw, "Property\t%s\n", sum.Property.Name)
			fmt.Fprintf(tw, "Rooms\t%d\n", sum.RoomCount)
			fmt.Fprintf(tw, "Assets\t%d\n", sum.AssetCount)
			fmt.Fprintf(tw, "Open tasks\t%d\n", sum.OpenTaskCount)
			fmt.Fprintf(tw, "Asset value\t%s\n", formatMoney(sum.TotalAssetValue, code))
			fmt.Fprintf(tw, "Expenses\t%s\n", formatMoney(sum.TotalExpenses, code))
			fmt.Fprintf(tw, "Monthly bills\t%s\n", formatMoney(sum.MonthlyRecurringBill, code))
			return tw.Flush()
		},
	}
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/homestead/internal/sqlite"
)

type schemaStatus struct {
	Path          string `json:"path"`
	StoreVersion  int    `json:"store_version"`
	CodeVersion   int    `json:"code_version"`
	UpgradedFrom  int    `json:"upgraded_from"`
	AppliedOnOpen []int  `json:"applied_on_open"`
}

func (a *app) schemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Show the store's schema version, upgrading it if needed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b := a.openStore().Backend()
			version, err := b.SchemaVersion(cmd.Context())
			if err != nil {
				return err
			}
			report := b.LastMigration()
			status := schemaStatus{
				Path:          b.Path(),
				StoreVersion:  version,
				CodeVersion:   sqlite.CurrentSchemaVersion(),
				UpgradedFrom:  report.From,
				AppliedOnOpen: report.Applied,
			}
			if status.AppliedOnOpen == nil {
				status.AppliedOnOpen = []int{}
			}
			if a.jsonMode {
				return printJSON(cmd.OutOrStdout(), status)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "store:  %s\nschema: %d (code %d)\n", status.Path, status.StoreVersion, status.CodeVersion)
			if len(report.Applied) > 0 {
				fmt.Fprintf(out, "upgraded from %d, applied %v\n", report.From, report.Applied)
			}
			return nil
		},
	}
}

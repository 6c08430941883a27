package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/homestead/internal/backup"
	"github.com/mesh-intelligence/homestead/internal/paths"
)

func (a *app) exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [DIR]",
		Short: "Write a JSONL snapshot of the store",
		Long: "Export writes one JSONL file per table plus a manifest. Without DIR\n" +
			"the snapshot goes to a timestamped directory under the data dir.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := paths.BackupDir(a.dataDir, a.now())
			if len(args) == 1 {
				dir = args[0]
			}
			m, err := backup.Export(cmd.Context(), a.openStore(), dir,
				backup.WithLogger(a.logger), backup.WithClock(a.now))
			if err != nil {
				return err
			}
			if a.jsonMode {
				return printJSON(cmd.OutOrStdout(), m)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d records to %s\n", countRecords(m), dir)
			return nil
		},
	}
}

func (a *app) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import DIR",
		Short: "Restore a snapshot into an empty store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := backup.Import(cmd.Context(), a.openStore(), args[0], backup.WithLogger(a.logger))
			if err != nil {
				return err
			}
			if a.jsonMode {
				return printJSON(cmd.OutOrStdout(), m)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Imported %d records from %s\n", countRecords(m), args[0])
			tables := make([]string, 0, len(m.Tables))
			for table, n := range m.Tables {
				if n > 0 {
					tables = append(tables, table)
				}
			}
			sort.Strings(tables)
			tw := newTable(out)
			for _, table := range tables {
				fmt.Fprintf(tw, "  %s\t%d\n", table, m.Tables[table])
			}
			return tw.Flush()
		},
	}
}

func countRecords(m *backup.Manifest) int {
	n := 0
	for _, c := range m.Tables {
		n += c
	}
	return n
}

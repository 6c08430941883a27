package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (a *app) initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the config file and the store, and seed defaults",
		Long: "Init writes config.yaml if it is missing, creates or upgrades the\n" +
			"store, and seeds the default categories and settings. Running it\n" +
			"again is safe.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			wrote, err := writeConfigIfMissing(a.configDir, a.dataDir)
			if err != nil {
				return err
			}
			if wrote {
				a.logger.Info("config written", zap.String("dir", a.configDir))
			}

			s := a.openStore()
			seeded, err := s.SeedDefaults(cmd.Context())
			if err != nil {
				return fmt.Errorf("initializing store: %w", err)
			}
			report := s.Backend().LastMigration()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Store ready at %s (schema %d)\n", s.Backend().Path(), report.To)
			if len(report.Applied) > 0 {
				fmt.Fprintf(out, "Applied migrations: %v\n", report.Applied)
			}
			if seeded > 0 {
				fmt.Fprintf(out, "Seeded %d default categories\n", seeded)
			}
			return nil
		},
	}
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/homestead/pkg/types"
)

func (a *app) maintenanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "maintenance",
		Short: "Track upkeep tasks",
	}
	cmd.AddCommand(a.maintenanceDueCmd(), a.maintenanceCompleteCmd())
	return cmd
}

type dueReport struct {
	Overdue  []types.MaintenanceTask `json:"overdue"`
	Upcoming []types.MaintenanceTask `json:"upcoming"`
}

func (a *app) maintenanceDueCmd() *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "due",
		Short: "List overdue tasks and tasks due soon",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if days < 0 {
				return fmt.Errorf("%w: --days must not be negative", errUsage)
			}
			s := a.openStore()
			overdue, err := s.MaintenanceTasks.GetOverdue(cmd.Context())
			if err != nil {
				return err
			}
			upcoming, err := s.MaintenanceTasks.GetUpcoming(cmd.Context(), days)
			if err != nil {
				return err
			}
			if a.jsonMode {
				return printJSON(cmd.OutOrStdout(), dueReport{Overdue: overdue, Upcoming: upcoming})
			}

			out := cmd.OutOrStdout()
			if len(overdue) == 0 && len(upcoming) == 0 {
				fmt.Fprintf(out, "Nothing due in the next %d days\n", days)
				return nil
			}
			tw := newTable(out)
			fmt.Fprintln(tw, "STATUS\tDUE\tTITLE\tPRIORITY\tID")
			for _, t := range overdue {
				fmt.Fprintf(tw, "overdue\t%s\t%s\t%s\t%s\n", taskDue(t), t.Title, t.Priority, t.ID)
			}
			for _, t := range upcoming {
				fmt.Fprintf(tw, "due\t%s\t%s\t%s\t%s\n", taskDue(t), t.Title, t.Priority, t.ID)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVar(&days, "days", 7, "look-ahead window in days")
	return cmd
}

func (a *app) maintenanceCompleteCmd() *cobra.Command {
	var worker, cost, notes string
	cmd := &cobra.Command{
		Use:   "complete TASK_ID",
		Short: "Record a completion and reschedule recurring tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseMoney("cost", cost)
			if err != nil {
				return err
			}
			task, err := a.openStore().MaintenanceTasks.MarkComplete(cmd.Context(), args[0], types.CompletionDetails{
				WorkerID: worker,
				Cost:     amount,
				Notes:    notes,
			})
			if err != nil {
				return err
			}
			if a.jsonMode {
				return printJSON(cmd.OutOrStdout(), task)
			}
			if task.IsCompleted {
				fmt.Fprintf(cmd.OutOrStdout(), "Completed %q\n", task.Title)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Completed %q, next due %s\n", task.Title, taskDue(*task))
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&worker, "worker", "", "worker who did the job (default: the assigned worker)")
	f.StringVar(&cost, "cost", "", "what the job cost")
	f.StringVar(&notes, "notes", "", "completion notes")
	return cmd
}

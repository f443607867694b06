package main

import (
	"context"
	"fmt"
	"time"

	"go-ems/internal/payroll"

	"github.com/spf13/cobra"
)

const dateLayout = "2006-01-02"

type commands struct {
	generate func(ctx context.Context, at time.Time) (payroll.Summary, error)
	migrate  func(ctx context.Context) error
}

func newRootCmd(cmds commands) *cobra.Command {
	root := &cobra.Command{
		Use:           "payroll",
		Short:         "Employee payroll batch operations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCmd(cmds), newMigrateCmd(cmds))
	return root
}

func newRunCmd(cmds commands) *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Generate salary records for the current billing month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var at time.Time
			if date != "" {
				parsed, err := time.ParseInLocation(dateLayout, date, time.Local)
				if err != nil {
					return fmt.Errorf("invalid --date %q, expected YYYY-MM-DD", date)
				}
				at = parsed
			}

			summary, err := cmds.generate(cmd.Context(), at)
			fmt.Fprintf(cmd.OutOrStdout(),
				"period=%s %d processed=%d generated=%d skipped=%d failed=%d\n",
				summary.Month, summary.Year, summary.Processed, summary.Generated, summary.Skipped, summary.Failed,
			)
			return err
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "billing date inside the month to generate (YYYY-MM-DD), defaults to today")
	return cmd
}

func newMigrateCmd(cmds commands) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and seed roles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := cmds.migrate(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migration complete")
			return nil
		},
	}
}

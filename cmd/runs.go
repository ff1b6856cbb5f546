package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// runsCmd represents the runs command
var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show recorded workflow runs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		env, err := newProbeEnv(cmd.Context(), true)
		if err != nil {
			return err
		}
		defer env.close()

		runs, err := env.service().RecentRuns(cmd.Context(), limit)
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "RUN ID\tWHEN\tBUCKET\tKEY\tSTATUS\tDURATION\tMESSAGE")
		for _, r := range runs {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				r.RunID,
				humanize.Time(r.CreatedAt),
				r.Bucket,
				r.ObjectKey,
				r.Status,
				time.Duration(r.DurationMs)*time.Millisecond,
				r.Message,
			)
		}
		return tw.Flush()
	},
}

func init() {
	RootCmd.AddCommand(runsCmd)
	runsCmd.Flags().Int("limit", 20, "Number of runs to show")
}

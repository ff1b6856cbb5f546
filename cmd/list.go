package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"storage-probe/core/storage"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List objects in the bucket",
	Long:  `Lists objects in the configured bucket. Entries that failed are reported on stderr and skipped.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		prefix, _ := cmd.Flags().GetString("prefix")
		limit, _ := cmd.Flags().GetInt("limit")

		env, err := newProbeEnv(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer env.close()

		result := env.service().List(cmd.Context(), storage.ListOptions{Prefix: prefix, MaxResults: limit})

		tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tSIZE\tUPDATED\tGENERATION")
		for _, e := range result.Entries {
			if e.Object == nil {
				fmt.Fprintf(os.Stderr, "listing entry failed: %s\n", e.Error)
				continue
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
				e.Object.Name,
				humanize.IBytes(uint64(e.Object.Size)),
				humanize.Time(e.Object.Updated),
				e.Object.Generation,
			)
		}
		if err := tw.Flush(); err != nil {
			return err
		}

		fmt.Printf("\n%s object(s), %d failed\n", humanize.Comma(int64(len(result.Objects()))), result.Failed)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(listCmd)
	listCmd.Flags().String("prefix", "", "Only list keys starting with this prefix")
	listCmd.Flags().Int("limit", 0, "Maximum number of entries (0 for no limit)")
}

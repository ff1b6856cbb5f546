package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"storage-probe/feature/workflow"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full storage workflow",
	Long: `Creates the bucket, writes the payload to the key, closes the writer and
verifies the key is listed exactly once. The run is recorded when a history
database is reachable.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		plan := workflow.Plan{}
		plan.Key, _ = cmd.Flags().GetString("key")
		plan.Payload, _ = cmd.Flags().GetString("payload")
		plan.ReadBack, _ = cmd.Flags().GetBool("read-back")
		plan.Sole, _ = cmd.Flags().GetBool("sole")
		plan.Cleanup, _ = cmd.Flags().GetBool("cleanup")
		jsonOutput, _ := cmd.Flags().GetBool("json")
		withHistory, _ := cmd.Flags().GetBool("history")

		env, err := newProbeEnv(cmd.Context(), withHistory)
		if err != nil {
			return err
		}
		defer env.close()

		report, runErr := env.service().Run(cmd.Context(), plan)

		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(report); err != nil {
				return fmt.Errorf("failed to encode report: %w", err)
			}
			return reportedIf(runErr)
		}

		fmt.Println("\n=== Storage Workflow ===")
		fmt.Printf("Run ID: %s\n", report.RunID)
		fmt.Printf("Bucket: %s (existed: %t)\n", report.Bucket, report.BucketExisted)
		if report.Object != nil {
			fmt.Printf("Object: %s, %s, generation %s\n", report.Object.Name, humanize.IBytes(uint64(report.Object.Size)), report.Object.Generation)
		} else {
			fmt.Printf("Upload failed: %s\n", report.Error)
		}
		if v := report.Verification; v != nil {
			fmt.Printf("Listed: %d  Matches: %d  Failed entries: %d\n", v.Listed, v.Matches, v.Failed)
			for _, p := range v.Problems {
				fmt.Printf("  - %s\n", p)
			}
		}
		if plan.Cleanup {
			fmt.Printf("Cleaned up: %t\n", report.CleanedUp)
		}
		fmt.Printf("Status: %s\n", report.Status)
		fmt.Printf("Execution Time: %s\n", report.Duration)
		return reportedIf(runErr)
	},
}

func init() {
	RootCmd.AddCommand(runCmd)
	runCmd.Flags().String("key", "my-key", "Object key to write")
	runCmd.Flags().String("payload", "hello world", "Object content")
	runCmd.Flags().Bool("read-back", false, "Download the object and compare content digests")
	runCmd.Flags().Bool("sole", false, "Require the key to be the only object in the bucket")
	runCmd.Flags().Bool("cleanup", false, "Delete the object after verification")
	runCmd.Flags().Bool("json", false, "Print the report as JSON")
	runCmd.Flags().Bool("history", true, "Record the run in the history database if reachable")
}

// reportedIf turns a failure already shown in the printed report into
// errReported.
func reportedIf(err error) error {
	if err != nil {
		return errReported
	}
	return nil
}

package cmd

import (
	"fmt"

	"storage-probe/feature/workflow"

	"github.com/spf13/cobra"
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify <key>",
	Short: "Verify that a key is listed exactly once",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		readBack, _ := cmd.Flags().GetBool("read-back")
		payload, _ := cmd.Flags().GetString("payload")
		sole, _ := cmd.Flags().GetBool("sole")

		env, err := newProbeEnv(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer env.close()

		v, err := env.service().Verify(cmd.Context(), workflow.Expectation{
			Key:      args[0],
			Payload:  []byte(payload),
			ReadBack: readBack,
			Sole:     sole,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Listed: %d  Matches: %d  Failed entries: %d\n", v.Listed, v.Matches, v.Failed)
		if v.DigestMatch != nil {
			fmt.Printf("Content digest match: %t\n", *v.DigestMatch)
		}
		if !v.Passed {
			for _, p := range v.Problems {
				fmt.Printf("  - %s\n", p)
			}
			fmt.Println("Verification failed")
			return errReported
		}
		fmt.Println("Verification passed")
		return nil
	},
}

func init() {
	RootCmd.AddCommand(verifyCmd)
	verifyCmd.Flags().Bool("read-back", false, "Download the object and compare it with --payload")
	verifyCmd.Flags().String("payload", "hello world", "Expected content for --read-back")
	verifyCmd.Flags().Bool("sole", false, "Require the key to be the only object in the bucket")
}

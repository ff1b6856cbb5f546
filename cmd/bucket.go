package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// bucketCmd represents the bucket command
var bucketCmd = &cobra.Command{
	Use:   "bucket",
	Short: "Create the configured bucket",
	Long:  `Creates the configured bucket. A bucket that already exists is reported and not treated as a failure.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newProbeEnv(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer env.close()

		attrs, existed, err := env.service().EnsureBucket(cmd.Context())
		if err != nil {
			return err
		}

		if existed {
			fmt.Printf("Bucket %s already exists\n", attrs.Name)
		} else {
			fmt.Printf("Bucket %s created\n", attrs.Name)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(bucketCmd)
}

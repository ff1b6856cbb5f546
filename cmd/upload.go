package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// uploadCmd represents the upload command
var uploadCmd = &cobra.Command{
	Use:   "upload <key> [payload|-]",
	Short: "Write an object",
	Long: `Writes the payload to the given key in the configured bucket. The payload is
read from stdin when it is "-" and defaults to "hello world" when omitted.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var payload io.Reader = strings.NewReader("hello world")
		if len(args) == 2 {
			if args[1] == "-" {
				payload = cmd.InOrStdin()
			} else {
				payload = strings.NewReader(args[1])
			}
		}

		env, err := newProbeEnv(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer env.close()

		attrs, err := env.service().Upload(cmd.Context(), args[0], payload)
		if err != nil {
			fmt.Printf("Upload failed: %v\n", err)
			return errReported
		}

		fmt.Println("Upload succeeded")
		fmt.Printf("  name:       %s\n", attrs.Name)
		fmt.Printf("  size:       %s\n", humanize.IBytes(uint64(attrs.Size)))
		fmt.Printf("  generation: %s\n", attrs.Generation)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(uploadCmd)
}

package cmd

import (
	"errors"
	"fmt"
	"os"

	"storage-probe/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// errReported marks a failure the command already printed for the user.
// The process still exits non-zero, but the error is not logged again.
var errReported = errors.New("failure already reported")

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "storage-probe",
	Short: "Object storage workflow probe",
	Long: `storage-probe provisions a bucket, writes an object through a streaming writer
and verifies the object shows up in a listing. It targets GCS or S3 compatible
endpoints, usually a local emulator.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format with debug level gives ISO8601 timestamps for CLI output
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			logCommandError(l, err)
			_ = l.Sync()
		} else if !errors.Is(err, errReported) {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

func logCommandError(l *zap.Logger, err error) {
	if errors.Is(err, errReported) {
		return
	}
	l.Error("command failed", zap.Error(err))
}

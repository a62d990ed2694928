package cmd

import (
	"fmt"
	"os"

	"s3lib/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "s3lib",
	Short: "Filesystem-style access to S3 paths",
	Long: `s3lib treats s3://bucket/key locations like filesystem paths.
It lists, reads, writes, removes and copies objects on MinIO, AWS S3 or a
local directory tree, and can serve the same operations over HTTP.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console encoding with the development config for readable CLI errors.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

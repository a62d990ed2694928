package cmd

import (
	"fmt"
	"iter"

	"s3lib/core/s3path"

	"github.com/spf13/cobra"
)

// lsCmd represents the ls command
var lsCmd = &cobra.Command{
	Use:   "ls URI",
	Short: "List the immediate children of a path",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup()
		if err != nil {
			return err
		}
		defer e.logger.Sync()

		paths, err := parsePaths(args[0])
		if err != nil {
			return err
		}
		return printPaths(cmd, e.fs.Iterdir(cmd.Context(), paths[0]))
	},
}

// globCmd represents the glob command
var globCmd = &cobra.Command{
	Use:   "glob URI PATTERN",
	Short: "Recursively list objects matching a pattern",
	Long: `Lists every object below URI whose trailing path segments match PATTERN,
at any depth. "*.json" finds JSON files anywhere below URI; "sub/*.json"
finds them in every directory named sub.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup()
		if err != nil {
			return err
		}
		defer e.logger.Sync()

		paths, err := parsePaths(args[0])
		if err != nil {
			return err
		}
		return printPaths(cmd, e.fs.Rglob(cmd.Context(), paths[0], args[1]))
	},
}

func printPaths(cmd *cobra.Command, seq iter.Seq2[s3path.Path, error]) error {
	out := cmd.OutOrStdout()
	for p, err := range seq {
		if err != nil {
			return err
		}
		fmt.Fprintln(out, p)
	}
	return nil
}

func init() {
	RootCmd.AddCommand(lsCmd)
	RootCmd.AddCommand(globCmd)
}

package cmd

import (
	"encoding/json"
	"io"

	"s3lib/core/pathfs"

	"github.com/spf13/cobra"
)

// catCmd represents the cat command
var catCmd = &cobra.Command{
	Use:   "cat URI",
	Short: "Print the content of an object",
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
		return e.fs.Open(cmd.Context(), paths[0], pathfs.ModeRead, func(f *pathfs.File) error {
			_, err := io.Copy(cmd.OutOrStdout(), f)
			return err
		})
	},
}

// putCmd represents the put command
var putCmd = &cobra.Command{
	Use:   "put URI",
	Short: "Replace an object with standard input",
	Long:  `Reads standard input into memory and uploads it in one request once the input ends.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, _ := cmd.Flags().GetBool("text")

		e, err := setup()
		if err != nil {
			return err
		}
		defer e.logger.Sync()

		paths, err := parsePaths(args[0])
		if err != nil {
			return err
		}
		mode := pathfs.ModeWriteBinary
		if text {
			mode = pathfs.ModeWriteText
		}
		return e.fs.Open(cmd.Context(), paths[0], mode, func(f *pathfs.File) error {
			_, err := io.Copy(f, cmd.InOrStdin())
			return err
		})
	},
}

// statCmd represents the stat command
var statCmd = &cobra.Command{
	Use:   "stat URI",
	Short: "Show whether a path exists and is a file",
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
		info, err := e.fs.Stat(cmd.Context(), paths[0])
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	},
}

func init() {
	putCmd.Flags().Bool("text", false, "Require the input to be UTF-8 text")

	RootCmd.AddCommand(catCmd)
	RootCmd.AddCommand(putCmd)
	RootCmd.AddCommand(statCmd)
}

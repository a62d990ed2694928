package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// rmCmd represents the rm command
var rmCmd = &cobra.Command{
	Use:   "rm URI",
	Short: "Remove a file",
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
		return e.fs.Unlink(cmd.Context(), paths[0])
	},
}

// rmdirCmd represents the rmdir command
var rmdirCmd = &cobra.Command{
	Use:   "rmdir URI",
	Short: "Remove a directory",
	Long: `Removes every object under URI. Without --contents the directory may
only hold folder markers; a directory holding files is left untouched.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		contents, _ := cmd.Flags().GetBool("contents")

		e, err := setup()
		if err != nil {
			return err
		}
		defer e.logger.Sync()

		paths, err := parsePaths(args[0])
		if err != nil {
			return err
		}
		return e.fs.Rmdir(cmd.Context(), paths[0], contents)
	},
}

// cpCmd represents the cp command
var cpCmd = &cobra.Command{
	Use:   "cp SRC DST",
	Short: "Copy objects server-side",
	Long: `Copies every object under SRC to DST, replacing the SRC prefix with DST.
Objects whose name starts with "_" are skipped. The copy stops at the first
failure and does not roll back.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup()
		if err != nil {
			return err
		}
		defer e.logger.Sync()

		paths, err := parsePaths(args[0], args[1])
		if err != nil {
			return err
		}
		n, err := e.fs.Copy(cmd.Context(), paths[0], paths[1])
		fmt.Fprintf(cmd.OutOrStdout(), "copied %d objects\n", n)
		return err
	},
}

func init() {
	rmdirCmd.Flags().Bool("contents", false, "Also remove files in the directory")

	RootCmd.AddCommand(rmCmd)
	RootCmd.AddCommand(rmdirCmd)
	RootCmd.AddCommand(cpCmd)
}

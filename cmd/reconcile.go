package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"s3lib/core/reconcile"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// reconcileCmd compares two trees and optionally repairs the destination.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile SRC DST",
	Short: "Reconcile DST against SRC (report + optionally copy/purge)",
	Long: `Compare every object under SRC with DST by relative key and size.

Reports keys missing in DST, keys only present in DST, and size mismatches.
Optionally copy missing and mismatched objects, and purge extra ones.

Examples:
  # Report only
  reconcile s3://assets/docs s3://backup/docs

  # Copy missing and mismatched objects (with interactive confirmation)
  reconcile s3://assets/docs s3://backup/docs --sync

  # Also delete objects missing in SRC, auto-confirmed
  reconcile s3://assets/docs s3://backup/docs --sync --purge --yes`,
	Args: cobra.ExactArgs(2),
	RunE: runReconcile,
}

func init() {
	reconcileCmd.Flags().Bool("sync", false, "Copy objects missing or mismatched in DST")
	reconcileCmd.Flags().Bool("purge", false, "Delete objects in DST that SRC does not have")
	reconcileCmd.Flags().Bool("dry-run", false, "Force dry-run (no mutations even with --yes)")
	reconcileCmd.Flags().Bool("yes", false, "Auto-confirm destructive actions (non-interactive)")

	RootCmd.AddCommand(reconcileCmd)
}

func runReconcile(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	doSync, _ := flags.GetBool("sync")
	doPurge, _ := flags.GetBool("purge")
	dryRun, _ := flags.GetBool("dry-run")
	yes, _ := flags.GetBool("yes")

	e, err := setup()
	if err != nil {
		return err
	}
	defer e.logger.Sync()

	paths, err := parsePaths(args[0], args[1])
	if err != nil {
		return err
	}

	opts := reconcile.Options{DoPurge: doPurge, DryRun: dryRun}

	e.logger.Info("Planning reconciliation...", zap.Stringer("src", paths[0]), zap.Stringer("dst", paths[1]))
	plan, err := reconcile.Reconcile(cmd.Context(), e.fs, paths[0], paths[1], opts)
	if err != nil {
		return fmt.Errorf("failed to plan reconciliation: %w", err)
	}
	if !doSync {
		plan.Actions = dropCopies(plan.Actions)
	}

	printReconcileReport(cmd.OutOrStdout(), e.logger, plan)

	if !doSync && !doPurge {
		e.logger.Info("No actions requested. Use --sync to copy missing objects or --purge to delete extra ones.")
		return nil
	}
	if dryRun {
		e.logger.Info("Dry-run mode: No changes were made.")
		return nil
	}
	if len(plan.Actions) == 0 {
		e.logger.Info("No actions required based on current flags.")
		return nil
	}

	if !confirmDestructiveAction(cmd.InOrStdin(), cmd.OutOrStdout(), yes) {
		e.logger.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}
	opts.Confirmed = true

	executed, err := reconcile.ApplyPlan(cmd.Context(), e.fs, plan, opts)
	fmt.Fprintf(cmd.OutOrStdout(), "executed %d actions\n", executed)
	if err != nil {
		return fmt.Errorf("failed to apply plan: %w", err)
	}
	return nil
}

func dropCopies(actions []reconcile.Action) []reconcile.Action {
	var kept []reconcile.Action
	for _, a := range actions {
		if a.Type != reconcile.ActionCopy {
			kept = append(kept, a)
		}
	}
	return kept
}

// printReconcileReport logs the summary and writes one line per planned action to w.
func printReconcileReport(w io.Writer, l *zap.Logger, plan *reconcile.Plan) {
	s := plan.Summary
	l.Info("Reconciliation report",
		zap.Int("total_items", s.TotalItems),
		zap.Int("missing_dst", s.MissingDst),
		zap.Int("extra_dst", s.ExtraDst),
		zap.Int("mismatches", s.Mismatches),
	)
	for _, action := range plan.Actions {
		fmt.Fprintf(w, "%s %s (%s)\n", action.Type, action.Key, action.Reason)
	}
}

// confirmDestructiveAction reads a "yes" from r unless auto is set.
func confirmDestructiveAction(r io.Reader, w io.Writer, auto bool) bool {
	if auto {
		return true
	}

	fmt.Fprint(w, "Type 'yes' to confirm destructive actions: ")
	response, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && response == "" {
		return false
	}
	return strings.TrimSpace(response) == "yes"
}

package reconcile

import (
	"context"
	"fmt"
	"strings"

	"s3lib/core/pathfs"
	"s3lib/core/s3path"
)

// BuildPlan derives the summary and actions from reconciliation results.
// Keys missing from dst or differing in size get a copy action. Keys only
// present in dst get a delete action when opts.DoPurge is set.
func BuildPlan(results []Result, opts Options) (Summary, []Action) {
	summary := Summary{TotalItems: len(results)}
	var actions []Action

	for _, r := range results {
		switch {
		case r.SrcPresent && !r.DstPresent:
			summary.MissingDst++
			actions = append(actions, Action{Type: ActionCopy, Key: r.Key, Reason: "missing in destination"})
			summary.CopyActions++
		case r.Mismatch != "":
			summary.Mismatches++
			actions = append(actions, Action{Type: ActionCopy, Key: r.Key, Reason: r.Mismatch})
			summary.CopyActions++
		case !r.SrcPresent && r.DstPresent:
			summary.ExtraDst++
			if opts.DoPurge {
				actions = append(actions, Action{Type: ActionDelete, Key: r.Key, Reason: "missing in source"})
				summary.PurgeActions++
			}
		}
	}
	return summary, actions
}

// ApplyPlan executes the actions in plan. Copies run one by one and stop at
// the first failure; deletes are sent as a single batch afterwards. It
// returns the number of actions executed.
// Requires opts.Confirmed=true and opts.DryRun=false to actually execute.
func ApplyPlan(ctx context.Context, fsys *pathfs.FS, plan *Plan, opts Options) (executed int, err error) {
	if !opts.Confirmed || opts.DryRun {
		return 0, nil
	}

	client := fsys.Client()
	var deleteKeys []string
	for _, action := range plan.Actions {
		switch action.Type {
		case ActionCopy:
			srcKey, dstKey := objectKey(plan.Src, action.Key), objectKey(plan.Dst, action.Key)
			if err := client.CopyObject(ctx, plan.Src.Bucket(), srcKey, plan.Dst.Bucket(), dstKey); err != nil {
				return executed, fmt.Errorf("failed to copy %s: %w", action.Key, err)
			}
			executed++
		case ActionDelete:
			deleteKeys = append(deleteKeys, objectKey(plan.Dst, action.Key))
		}
	}

	if len(deleteKeys) > 0 {
		if err := client.RemoveObjects(ctx, plan.Dst.Bucket(), deleteKeys); err != nil {
			return executed, fmt.Errorf("failed to batch delete %d objects: %w", len(deleteKeys), err)
		}
		executed += len(deleteKeys)
	}
	return executed, nil
}

// objectKey resolves a relative key against a tree root. A root that names
// a single object resolves to itself.
func objectKey(root s3path.Path, rel string) string {
	dir := strings.Join(root.Segments()[1:], "/")
	if !root.IsRoot() && root.Suffix() != "" && root.Name() == rel {
		return dir
	}
	if dir == "" {
		return rel
	}
	return dir + "/" + rel
}

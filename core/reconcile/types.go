package reconcile

import "s3lib/core/s3path"

// Result is the reconciliation output for one relative key.
type Result struct {
	// Key is the object key relative to both tree roots.
	Key string `json:"key"`

	// SrcPresent indicates whether the key exists under the source.
	SrcPresent bool `json:"src_present"`

	// DstPresent indicates whether the key exists under the destination.
	DstPresent bool `json:"dst_present"`

	// Mismatch describes a size difference, e.g. "size: src=4 dst=2".
	Mismatch string `json:"mismatch,omitempty"`
}

// ActionType is the kind of change an Action makes to the destination.
type ActionType string

const (
	// ActionCopy copies the source object over the destination key.
	ActionCopy ActionType = "copy"
	// ActionDelete removes a destination object that has no source.
	ActionDelete ActionType = "delete"
)

// Action is one planned change.
type Action struct {
	Type   ActionType `json:"type"`
	Key    string     `json:"key"`
	Reason string     `json:"reason"`
}

// Summary counts the results and actions of a plan.
type Summary struct {
	TotalItems   int `json:"total_items"`
	MissingDst   int `json:"missing_dst"`
	ExtraDst     int `json:"extra_dst"`
	Mismatches   int `json:"mismatches"`
	CopyActions  int `json:"copy_actions"`
	PurgeActions int `json:"purge_actions"`
}

// Plan bundles the results of a reconciliation and the actions derived from them.
type Plan struct {
	Src     s3path.Path `json:"src"`
	Dst     s3path.Path `json:"dst"`
	Results []Result    `json:"results"`
	Actions []Action    `json:"actions"`
	Summary Summary     `json:"summary"`
}

// Options controls which actions are planned and whether they are executed.
type Options struct {
	// DryRun plans actions without executing them.
	DryRun bool
	// DoPurge plans deletes for destination keys missing from the source.
	DoPurge bool
	// Confirmed must be set for ApplyPlan to change anything.
	Confirmed bool
}

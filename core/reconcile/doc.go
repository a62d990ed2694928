// Package reconcile compares two path trees and plans the copies and deletes
// that make the destination match the source.
//
// Both trees are listed once, concurrently, into in-memory indices keyed by
// the object key relative to the tree root. The union of both indices yields
// one Result per key. A key is a mismatch when it is present on both sides
// with a different size.
//
// # Usage Example
//
//	plan, err := reconcile.Reconcile(ctx, fsys, src, dst, reconcile.Options{DoPurge: true})
//	if err != nil {
//	    return err
//	}
//	executed, err := reconcile.ApplyPlan(ctx, fsys, plan, reconcile.Options{Confirmed: true})
//
// Objects whose name starts with "_" are left out of both indices, the same
// way pathfs.FS.Copy skips them.
package reconcile

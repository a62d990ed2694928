package mirror

import (
	"context"

	"s3lib/core/pathfs"
	"s3lib/core/reconcile"
	"s3lib/core/s3path"

	"go.uber.org/zap"
)

// Service handles reconciliation between two trees.
type Service struct {
	fs     *pathfs.FS
	logger *zap.Logger
}

// NewService creates a new mirror service.
func NewService(fsys *pathfs.FS, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{fs: fsys, logger: logger}
}

// Check plans the reconciliation of dst against src without changing anything.
func (s *Service) Check(ctx context.Context, src, dst s3path.Path, purge bool) (*reconcile.Plan, error) {
	return reconcile.Reconcile(ctx, s.fs, src, dst, reconcile.Options{DoPurge: purge})
}

// Fix plans and applies the reconciliation. It returns the plan and the
// number of executed actions.
func (s *Service) Fix(ctx context.Context, src, dst s3path.Path, purge, dryRun bool) (*reconcile.Plan, int, error) {
	opts := reconcile.Options{DoPurge: purge, DryRun: dryRun, Confirmed: true}
	plan, err := reconcile.Reconcile(ctx, s.fs, src, dst, opts)
	if err != nil {
		return nil, 0, err
	}
	executed, err := reconcile.ApplyPlan(ctx, s.fs, plan, opts)
	return plan, executed, err
}

package service

import (
	"context"
	"time"

	"github.com/avitali/liblink/internal/catalog"
	"github.com/avitali/liblink/internal/domain"
	"github.com/avitali/liblink/internal/logger"
	"github.com/avitali/liblink/internal/state"
)

// SyncOptions configures one reconciliation run. The engine holds no
// interactive state: force confirmation happens at the caller layer and
// the flag is trusted here.
type SyncOptions struct {
	// Force downgrades conflicts to remove-then-link actions
	Force bool

	// DryRun computes the result without touching the filesystem
	DryRun bool
}

// SyncReport is everything one run produces for the caller's report
type SyncReport struct {
	// Plan is the reconciliation plan that was applied
	Plan *domain.Plan

	// Result holds the apply counters and issue lists
	Result *domain.ApplyResult

	// Orphans lists local symlinks whose portable twin is gone.
	// Informational only; nothing removes them.
	Orphans []domain.Issue
}

// Reconcile runs one forward (import) pass: scan both roots, plan, and
// apply. Scan failures are fatal and abort before any mutation;
// per-identifier apply failures are collected in the report instead.
func (s *Service) Reconcile(ctx context.Context, opts SyncOptions) (*SyncReport, error) {
	start := time.Now()
	log := logger.With("operation", "sync", "force", opts.Force, "dry_run", opts.DryRun)

	localRoot, portableRoot, err := s.roots()
	if err != nil {
		s.journalRun("sync", start, state.StatusFailed, nil, err)
		return nil, err
	}

	localInv, err := catalog.Scan(localRoot)
	if err != nil {
		s.journalRun("sync", start, state.StatusFailed, nil, err)
		return nil, err
	}
	portableInv, err := catalog.Scan(portableRoot)
	if err != nil {
		s.journalRun("sync", start, state.StatusFailed, nil, err)
		return nil, err
	}

	log.Info("scanned catalogs",
		"local_entries", len(localInv.Entries),
		"local_manifests", len(localInv.Manifests),
		"portable_entries", len(portableInv.Entries),
		"portable_manifests", len(portableInv.Manifests))

	plan := s.planner.Plan(localInv, portableInv, opts.Force)
	result := s.applier.Apply(plan, opts.DryRun)

	report := &SyncReport{
		Plan:    plan,
		Result:  result,
		Orphans: catalog.Orphans(localInv, portableInv),
	}

	log.Info("reconciliation finished",
		"created", result.Created,
		"refreshed", result.Refreshed,
		"skipped", result.Skipped,
		"forced", result.Forced,
		"conflicts_left", result.ConflictsLeft,
		"failed", result.Failed,
		"orphans", len(report.Orphans))

	if !opts.DryRun {
		status := state.StatusSuccess
		if result.Partial() {
			status = state.StatusPartial
		}
		s.journalRun("sync", start, status, result, nil)
	}

	return report, nil
}

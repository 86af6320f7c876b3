// Package applier executes reconciliation plans against the filesystem.
// Each action's failure is isolated: it is recorded against its
// identifier and never aborts the remaining plan, since a partially
// applied plan leaves the filesystem valid, just incomplete.
package applier

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/avitali/liblink/internal/domain"
	"github.com/avitali/liblink/internal/logger"
)

// Applier executes plans in order
type Applier struct{}

// New creates a new Applier
func New() *Applier {
	return &Applier{}
}

// Apply executes the plan's actions in order and returns counters plus
// per-identifier issue lists. With dryRun the counters are computed
// without touching the filesystem, for user-facing previews.
//
// The force decision was made at plan time; RemoveFirst is trusted here
// and not re-validated. Confirmation is the caller's job.
func (a *Applier) Apply(plan *domain.Plan, dryRun bool) *domain.ApplyResult {
	result := &domain.ApplyResult{}
	log := logger.Get()

	for _, action := range plan.Actions {
		switch action.Type {
		case domain.ActionSkipUpToDate:
			result.Skipped++
			result.SkippedIDs = append(result.SkippedIDs, action.ID)

		case domain.ActionConflict:
			result.ConflictsLeft++
			result.Conflicts = append(result.Conflicts, domain.Issue{
				Slot:   action.Slot,
				ID:     action.ID,
				Reason: action.Reason,
			})
			log.Warn("conflict left unresolved",
				"slot", action.Slot, "id", action.ID, "reason", action.Reason)

		case domain.ActionCreateLink, domain.ActionRefreshLink:
			if !dryRun {
				if err := a.link(action); err != nil {
					result.Failed++
					result.Failures = append(result.Failures, domain.Issue{
						Slot:   action.Slot,
						ID:     action.ID,
						Reason: err.Error(),
					})
					log.Error("apply action failed",
						"slot", action.Slot, "id", action.ID, "error", err)
					continue
				}
			}
			a.count(result, action)
			log.Info("linked",
				"slot", action.Slot, "id", action.ID, "target", action.Source,
				"refreshed", action.Type == domain.ActionRefreshLink,
				"forced", action.RemoveFirst, "dry_run", dryRun)
		}
	}

	return result
}

// link materializes one symlink: remove whatever occupies the slot
// according to the action, then create the link.
func (a *Applier) link(action domain.Action) error {
	if err := os.MkdirAll(filepath.Dir(action.Dest), 0755); err != nil {
		return fmt.Errorf("creating parent directory: %w", err)
	}

	if action.RemoveFirst {
		// The single destructive operation in the system: a conflict
		// downgraded by force removes the real file or directory tree.
		if err := os.RemoveAll(action.Dest); err != nil {
			return fmt.Errorf("removing existing path: %w", err)
		}
	} else if info, err := os.Lstat(action.Dest); err == nil {
		if info.Mode()&os.ModeSymlink == 0 {
			// A real path appeared since planning. Never silently
			// destroy it; report and let the next run plan a conflict.
			return fmt.Errorf("slot occupied by a real path since planning: %s", action.Dest)
		}
		if err := os.Remove(action.Dest); err != nil {
			return fmt.Errorf("removing stale symlink: %w", err)
		}
	}

	if err := os.Symlink(action.Source, action.Dest); err != nil {
		return fmt.Errorf("creating symlink: %w", err)
	}

	return nil
}

func (a *Applier) count(result *domain.ApplyResult, action domain.Action) {
	switch action.Type {
	case domain.ActionCreateLink:
		result.Created++
		result.CreatedIDs = append(result.CreatedIDs, action.ID)
	case domain.ActionRefreshLink:
		result.Refreshed++
		result.RefreshedIDs = append(result.RefreshedIDs, action.ID)
	}
	if action.RemoveFirst {
		result.Forced++
		result.ForcedIDs = append(result.ForcedIDs, action.ID)
	}
}

// Package planner diffs two catalog inventories and produces an ordered
// reconciliation plan. Planning is pure: no filesystem access, and the
// same pair of inventories always yields the same plan.
package planner

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/avitali/liblink/internal/core/compare"
	"github.com/avitali/liblink/internal/domain"
)

// Planner generates reconciliation plans
type Planner interface {
	Plan(local, portable *domain.Inventory, force bool) *domain.Plan
}

// DefaultPlanner walks every identifier present in the portable
// inventory; the portable root is authoritative for what should exist
// locally. Identifiers present only locally are never touched: the
// engine is additive and repairing, not pruning.
type DefaultPlanner struct {
	Comparer compare.Comparer
}

// NewDefaultPlanner creates a planner with the metadata comparator
func NewDefaultPlanner() *DefaultPlanner {
	return &DefaultPlanner{
		Comparer: compare.NewMetadataComparer(),
	}
}

// Plan implements the Planner interface. Entries and manifests are
// planned independently with identical logic; entries come first in the
// resulting plan, each group sorted by identifier.
func (p *DefaultPlanner) Plan(local, portable *domain.Inventory, force bool) *domain.Plan {
	plan := &domain.Plan{Force: force}

	for _, name := range sortedKeys(portable.Entries) {
		pe := portable.Entries[name]
		dest := filepath.Join(local.Root.EntriesDir, name)

		le, exists := local.Entries[name]
		slot := slotState{exists: exists, isLink: le.IsLink, target: le.LinkTarget}
		plan.Actions = append(plan.Actions,
			p.decide(domain.SlotEntry, name, pe.Path, dest, slot, "", force))
	}

	for _, id := range sortedKeys(portable.Manifests) {
		pm := portable.Manifests[id]
		dest := filepath.Join(local.Root.ManifestsDir, pm.Name)

		lm, exists := local.Manifests[id]
		slot := slotState{exists: exists, isLink: lm.IsLink, target: lm.LinkTarget}

		// Freshness only matters when a real local file occupies the
		// slot; it becomes part of the conflict reason so a local copy
		// that is newer than the portable one is surfaced, not lost.
		freshness := ""
		if exists && !lm.IsLink {
			if p.Comparer.Compare(&lm, pm) == domain.LocalNewer {
				freshness = "; local manifest is newer than portable copy"
			}
		}

		plan.Actions = append(plan.Actions,
			p.decide(domain.SlotManifest, id, pm.Path, dest, slot, freshness, force))
	}

	return plan
}

// slotState describes what currently occupies a local slot
type slotState struct {
	exists bool
	isLink bool
	target string
}

func (p *DefaultPlanner) decide(kind domain.SlotKind, id, source, dest string, slot slotState, note string, force bool) domain.Action {
	action := domain.Action{
		Slot:   kind,
		ID:     id,
		Source: source,
		Dest:   dest,
	}

	switch {
	case !slot.exists:
		action.Type = domain.ActionCreateLink
		action.Reason = "no local slot"

	case slot.isLink && filepath.Clean(slot.target) == filepath.Clean(source):
		action.Type = domain.ActionSkipUpToDate
		action.Reason = "already linked"

	case slot.isLink:
		// Repointing a stale symlink is never destructive.
		action.Type = domain.ActionRefreshLink
		action.Reason = fmt.Sprintf("symlink points to %s", slot.target)

	case force:
		action.Type = domain.ActionCreateLink
		action.RemoveFirst = true
		action.Reason = "real path replaced by force" + note

	default:
		action.Type = domain.ActionConflict
		action.Reason = "real file or directory occupies slot" + note
	}

	return action
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

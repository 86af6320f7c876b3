// Package export pushes local manifests back onto the portable drive.
// This is the reverse direction: the only writes the system ever makes
// to the portable side, and each one overwrites at most a single
// manifest file after the guard has approved it.
package export

import (
	"time"

	"github.com/avitali/liblink/internal/domain"
)

// portableNewerSlack absorbs coarse timestamp granularity on the
// portable filesystem (exFAT stores modification times in 2-second
// steps). A portable copy counts as newer only beyond this slack.
const portableNewerSlack = time.Second

// Check is the inverse-direction safety check run before copying a
// local manifest onto the portable drive. It protects manifests the
// client application updated directly on the drive since the last
// import: a strictly newer portable copy blocks the copy until the
// caller confirms an explicit overwrite.
func Check(local domain.Manifest, portable *domain.Manifest) domain.ExportDecision {
	if portable == nil {
		return domain.ExportProceedNoPortableCopy
	}
	if portable.ModTime.After(local.ModTime.Add(portableNewerSlack)) {
		return domain.ExportWarnNewerOnPortable
	}
	return domain.ExportProceed
}

// Decision pairs a manifest identifier with its guard outcome
type Decision struct {
	ID       string
	Decision domain.ExportDecision
}

// Decisions runs the guard over every local manifest, sorted by
// identifier. Callers use this to prompt before an overwriting run.
func Decisions(local, portable *domain.Inventory) []Decision {
	decisions := make([]Decision, 0, len(local.Manifests))
	for _, id := range sortedManifestIDs(local) {
		lm := local.Manifests[id]
		var pm *domain.Manifest
		if twin, ok := portable.Manifests[id]; ok {
			pm = &twin
		}
		decisions = append(decisions, Decision{ID: id, Decision: Check(lm, pm)})
	}
	return decisions
}

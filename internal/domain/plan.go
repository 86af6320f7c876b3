package domain

// ActionType represents the kind of reconciliation action
type ActionType string

const (
	// ActionCreateLink creates a symlink where no local slot exists
	ActionCreateLink ActionType = "create_link"

	// ActionRefreshLink repoints a local symlink that targets elsewhere
	ActionRefreshLink ActionType = "refresh_link"

	// ActionSkipUpToDate leaves a local symlink that already targets the
	// exact portable path
	ActionSkipUpToDate ActionType = "skip"

	// ActionConflict marks a slot occupied by a real (non-symlink)
	// file or directory; blocks creation unless force was requested
	ActionConflict ActionType = "conflict"
)

// SlotKind distinguishes entry slots from manifest slots
type SlotKind string

const (
	SlotEntry    SlotKind = "entry"
	SlotManifest SlotKind = "manifest"
)

// Action is a single reconciliation decision over one identifier
type Action struct {
	// Type of action to perform
	Type ActionType

	// Slot indicates whether this targets an entry or a manifest
	Slot SlotKind

	// ID is the entry name or manifest identifier
	ID string

	// Source is the absolute path on the portable side the link must
	// resolve to (empty for conflicts and skips)
	Source string

	// Dest is the absolute local path of the slot
	Dest string

	// RemoveFirst records the remove-then-link side effect of a conflict
	// downgraded by force. The only destructive operation in the system.
	RemoveFirst bool

	// Reason explains why this action was chosen
	Reason string
}

// Plan is an ordered sequence of actions over all identifiers found in
// the portable inventory. The portable root is authoritative for what
// should exist locally. Built once, applied once, then discarded.
type Plan struct {
	// Actions to execute in order
	Actions []Action

	// Force records whether conflicts were downgraded when planning
	Force bool
}

// HasConflicts returns true if the plan contains unresolved conflicts
func (p *Plan) HasConflicts() bool {
	for _, a := range p.Actions {
		if a.Type == ActionConflict {
			return true
		}
	}
	return false
}

// Changes returns the number of actions that will mutate the filesystem
func (p *Plan) Changes() int {
	n := 0
	for _, a := range p.Actions {
		if a.Type == ActionCreateLink || a.Type == ActionRefreshLink {
			n++
		}
	}
	return n
}

// Issue records a per-identifier non-success outcome
type Issue struct {
	// Slot indicates entry or manifest
	Slot SlotKind

	// ID is the affected identifier
	ID string

	// Reason is a human-readable explanation
	Reason string
}

// ApplyResult summarizes one plan execution
type ApplyResult struct {
	// Created counts symlinks created into empty slots
	Created int

	// Refreshed counts stale symlinks that were repointed
	Refreshed int

	// Skipped counts slots that were already up to date
	Skipped int

	// Forced counts conflicts resolved by force (remove-then-link)
	Forced int

	// ConflictsLeft counts conflicts left unresolved
	ConflictsLeft int

	// Failed counts actions that hit a filesystem error
	Failed int

	// CreatedIDs, RefreshedIDs, SkippedIDs, ForcedIDs list the
	// identifiers in each success bucket
	CreatedIDs   []string
	RefreshedIDs []string
	SkippedIDs   []string
	ForcedIDs    []string

	// Conflicts lists unresolved conflicts with their reasons
	Conflicts []Issue

	// Failures lists per-action filesystem errors. A failure never
	// aborts the remaining plan.
	Failures []Issue
}

// Partial returns true if any identifier did not reach a success state
func (r *ApplyResult) Partial() bool {
	return r.ConflictsLeft > 0 || r.Failed > 0
}

// Freshness is the outcome of comparing a local manifest against its
// portable twin. Ordering is modification time first, then size on an
// exact timestamp tie.
type Freshness int

const (
	// LocalMissing means there is no local manifest to compare
	LocalMissing Freshness = iota

	// PortableNewer means the portable copy is fresher
	PortableNewer

	// LocalNewer means the local copy is fresher. On import this is a
	// warning, not a blocker; the conflict policy decides the action.
	LocalNewer

	// Equal means timestamps and sizes match
	Equal
)

// String returns the freshness name for logs and reports
func (f Freshness) String() string {
	switch f {
	case LocalMissing:
		return "local-missing"
	case PortableNewer:
		return "portable-newer"
	case LocalNewer:
		return "local-newer"
	case Equal:
		return "equal"
	default:
		return "unknown"
	}
}

// ExportDecision is the outcome of the export guard, consulted before
// copying a local manifest back onto the portable drive.
type ExportDecision int

const (
	// ExportProceed means the copy is safe
	ExportProceed ExportDecision = iota

	// ExportWarnNewerOnPortable means the portable copy is strictly
	// newer; the copy must not happen until the caller confirms.
	ExportWarnNewerOnPortable

	// ExportProceedNoPortableCopy means no portable copy exists yet
	ExportProceedNoPortableCopy
)

// String returns the decision name for logs and reports
func (d ExportDecision) String() string {
	switch d {
	case ExportProceed:
		return "proceed"
	case ExportWarnNewerOnPortable:
		return "warn-newer-on-portable"
	case ExportProceedNoPortableCopy:
		return "proceed-no-portable-copy"
	default:
		return "unknown"
	}
}

// Package service orchestrates the reconciliation engine: it wires the
// scanner, planner, applier and collaborators together for the CLI.
package service

import (
	"fmt"
	"os"
	"time"

	"github.com/avitali/liblink/internal/catalog"
	"github.com/avitali/liblink/internal/config"
	"github.com/avitali/liblink/internal/copytree"
	"github.com/avitali/liblink/internal/core/applier"
	"github.com/avitali/liblink/internal/core/planner"
	"github.com/avitali/liblink/internal/domain"
	"github.com/avitali/liblink/internal/logger"
	"github.com/avitali/liblink/internal/state"
)

// Service orchestrates reconciliation, export and runtime transfer runs
type Service struct {
	cfg     *config.Config
	planner planner.Planner
	applier *applier.Applier
	copier  copytree.Copier
	journal *state.Manager
}

// New creates a service with default components. The run journal is
// best effort: a failure to open it degrades history, never a run.
func New(cfg *config.Config) (*Service, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	svc := &Service{
		cfg:     cfg,
		planner: planner.NewDefaultPlanner(),
		applier: applier.New(),
		copier:  copytree.Detect(),
	}

	journal, err := state.NewManager(cfg.DataDir)
	if err != nil {
		logger.Get().Warn("run journal unavailable", "error", err)
	} else {
		svc.journal = journal
	}

	return svc, nil
}

// Close releases the service's resources
func (s *Service) Close() error {
	if s.journal == nil {
		return nil
	}
	return s.journal.Close()
}

// History returns the most recent journaled runs, newest first
func (s *Service) History(limit int) ([]state.RunRecord, error) {
	if s.journal == nil {
		return nil, fmt.Errorf("run journal unavailable")
	}
	return s.journal.History(limit)
}

// roots validates both catalog roots. The local root is created on
// first use; the portable one must already exist.
func (s *Service) roots() (local, portable domain.CatalogRoot, err error) {
	if mkErr := os.MkdirAll(s.cfg.LocalRoot, 0755); mkErr != nil {
		err = fmt.Errorf("creating local root: %w", mkErr)
		return
	}

	local, err = catalog.Resolve(domain.RootLocal, s.cfg.LocalRoot)
	if err != nil {
		return
	}
	portable, err = catalog.Resolve(domain.RootPortable, s.cfg.PortableRoot)
	return
}

func (s *Service) journalRun(op string, start time.Time, status string, result *domain.ApplyResult, runErr error) {
	if s.journal == nil {
		return
	}

	record := state.RunRecord{
		Operation: op,
		StartTime: start,
		EndTime:   time.Now(),
		Status:    status,
	}
	if result != nil {
		record.Created = result.Created
		record.Refreshed = result.Refreshed
		record.Skipped = result.Skipped
		record.Forced = result.Forced
		record.Conflicts = result.ConflictsLeft
		record.Failed = result.Failed
	}
	if runErr != nil {
		record.Error = runErr.Error()
	}

	if err := s.journal.SaveRun(record); err != nil {
		logger.Get().Warn("failed to journal run", "operation", op, "error", err)
	}
}

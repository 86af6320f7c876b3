package service

import (
	"context"
	"time"

	"github.com/avitali/liblink/internal/catalog"
	"github.com/avitali/liblink/internal/core/export"
	"github.com/avitali/liblink/internal/domain"
	"github.com/avitali/liblink/internal/state"
)

// ExportPreview runs the export guard over every local manifest without
// copying anything, so the caller can ask for confirmation when newer
// portable copies would be overwritten.
func (s *Service) ExportPreview(ctx context.Context) ([]export.Decision, error) {
	localInv, portableInv, err := s.scanBoth()
	if err != nil {
		return nil, err
	}
	return export.Decisions(localInv, portableInv), nil
}

// Export copies local manifests back onto the portable drive. Manifests
// flagged by the guard are skipped unless allowOverwrite is set.
func (s *Service) Export(ctx context.Context, allowOverwrite bool) (*export.Result, error) {
	start := time.Now()

	localInv, portableInv, err := s.scanBoth()
	if err != nil {
		s.journalRun("export", start, state.StatusFailed, nil, err)
		return nil, err
	}

	result, err := export.Run(localInv, portableInv, allowOverwrite)
	if err != nil {
		s.journalRun("export", start, state.StatusFailed, nil, err)
		return nil, err
	}

	status := state.StatusSuccess
	if len(result.Failures) > 0 {
		status = state.StatusPartial
	}
	record := &domain.ApplyResult{
		Created: result.Copied,
		Skipped: result.SkippedNewer + result.SkippedSame,
		Failed:  len(result.Failures),
	}
	s.journalRun("export", start, status, record, nil)

	return result, nil
}

func (s *Service) scanBoth() (local, portable *domain.Inventory, err error) {
	localRoot, portableRoot, err := s.roots()
	if err != nil {
		return nil, nil, err
	}

	local, err = catalog.Scan(localRoot)
	if err != nil {
		return nil, nil, err
	}
	portable, err = catalog.Scan(portableRoot)
	if err != nil {
		return nil, nil, err
	}
	return local, portable, nil
}

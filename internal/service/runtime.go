package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/avitali/liblink/internal/domain"
	"github.com/avitali/liblink/internal/logger"
)

// EnsureRuntime performs the one-time runtime-directory transfer: the
// runtime cannot execute from the symlink-incapable drive, so its tree
// is copied to local storage through the bulk-copy collaborator and the
// local entries slot is linked at the copy.
func (s *Service) EnsureRuntime(ctx context.Context) error {
	localRoot, portableRoot, err := s.roots()
	if err != nil {
		return err
	}

	src := filepath.Join(portableRoot.EntriesDir, s.cfg.RuntimeName)
	if info, statErr := os.Stat(src); statErr != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s", domain.ErrRuntimeMissing, src)
	}

	dst := filepath.Join(s.cfg.RuntimeDir, s.cfg.RuntimeName)
	log := logger.With("operation", "runtime", "runtime", s.cfg.RuntimeName)
	log.Info("transferring runtime directory", "copier", s.copier.Name(), "src", src, "dst", dst)

	if err := s.copier.CopyTree(ctx, src, dst); err != nil {
		return fmt.Errorf("runtime transfer: %w", err)
	}

	// Link the local entries slot at the copy, replacing whatever is
	// there: the slot belongs to the runtime by definition.
	slot := filepath.Join(localRoot.EntriesDir, s.cfg.RuntimeName)
	if err := os.MkdirAll(localRoot.EntriesDir, 0755); err != nil {
		return fmt.Errorf("creating entries dir: %w", err)
	}
	if err := os.RemoveAll(slot); err != nil {
		return fmt.Errorf("clearing runtime slot: %w", err)
	}
	if err := os.Symlink(dst, slot); err != nil {
		return fmt.Errorf("linking runtime: %w", err)
	}

	log.Info("runtime ready", "slot", slot)
	return nil
}

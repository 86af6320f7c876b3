// Package copytree is the bulk-copy collaborator for the one-time
// runtime-directory transfer. The engine only needs the copier's
// success or failure; its output is never interpreted.
package copytree

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/avitali/liblink/internal/logger"
)

// Copier transfers a directory tree from src to dst
type Copier interface {
	// CopyTree makes dst mirror src. Implementations choose an
	// incremental or full-copy strategy behind this single seam.
	CopyTree(ctx context.Context, src, dst string) error

	// Name identifies the strategy for logs
	Name() string
}

// Detect returns the preferred copier: rsync when available, otherwise
// the built-in recursive copy.
func Detect() Copier {
	if path, err := exec.LookPath("rsync"); err == nil {
		return &RsyncCopier{Path: path}
	}
	return &RecursiveCopier{}
}

// RsyncCopier delegates to rsync for an incremental transfer
type RsyncCopier struct {
	Path string
}

// Name implements Copier
func (c *RsyncCopier) Name() string { return "rsync" }

// CopyTree runs rsync -a --delete so repeat transfers only move what
// changed. Only the exit status matters.
func (c *RsyncCopier) CopyTree(ctx context.Context, src, dst string) error {
	if err := os.MkdirAll(dst, 0755); err != nil {
		return fmt.Errorf("creating destination: %w", err)
	}

	// Trailing slash on src copies the tree's contents, not the tree.
	cmd := exec.CommandContext(ctx, c.Path, "-a", "--delete", src+string(filepath.Separator), dst)
	logger.Get().Info("running bulk copy", "copier", c.Name(), "src", src, "dst", dst)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("rsync: %w", err)
	}
	return nil
}

// RecursiveCopier is the full-copy fallback when rsync is missing
type RecursiveCopier struct{}

// Name implements Copier
func (c *RecursiveCopier) Name() string { return "recursive" }

// CopyTree removes any previous destination and copies the tree
func (c *RecursiveCopier) CopyTree(ctx context.Context, src, dst string) error {
	logger.Get().Info("running bulk copy", "copier", c.Name(), "src", src, "dst", dst)

	if err := os.RemoveAll(dst); err != nil {
		return fmt.Errorf("clearing destination: %w", err)
	}
	return c.copyDir(ctx, src, dst)
}

func (c *RecursiveCopier) copyDir(ctx context.Context, src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source directory: %w", err)
	}
	if err := os.MkdirAll(dst, info.Mode()); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	children, err := os.ReadDir(src)
	if err != nil {
		return fmt.Errorf("reading source directory: %w", err)
	}

	for _, child := range children {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		srcPath := filepath.Join(src, child.Name())
		dstPath := filepath.Join(dst, child.Name())

		if child.IsDir() {
			if err := c.copyDir(ctx, srcPath, dstPath); err != nil {
				return err
			}
			continue
		}

		childInfo, err := child.Info()
		if err != nil {
			return fmt.Errorf("stat %s: %w", srcPath, err)
		}
		if err := c.copyFile(srcPath, dstPath, childInfo.Mode()); err != nil {
			return err
		}
	}

	return nil
}

func (c *RecursiveCopier) copyFile(src, dst string, mode os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}

	_, copyErr := io.Copy(out, in)
	closeErr := out.Close()
	if copyErr != nil {
		return fmt.Errorf("copy %s: %w", dst, copyErr)
	}
	if closeErr != nil {
		return fmt.Errorf("close %s: %w", dst, closeErr)
	}

	return nil
}

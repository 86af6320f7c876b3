// Package fstab generates and appends mount-table entries for the
// portable drive. Entirely independent of the reconciliation engine's
// data model: it receives a path, finds the backing mount, and formats
// one line.
package fstab

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/avitali/liblink/internal/domain"
)

// DefaultPath is the system mount configuration file
const DefaultPath = "/etc/fstab"

// ErrAlreadyPresent indicates the mount already has an fstab entry
var ErrAlreadyPresent = errors.New("fstab entry already present")

// MountInfo describes the filesystem containing a path
type MountInfo struct {
	Device     string
	MountPoint string
	FSType     string
}

// Entry is one formatted mount-table record
type Entry struct {
	UUID       string
	MountPoint string
	FSType     string
	Options    string
}

// String renders the entry as an fstab line. Spaces in the mount point
// are escaped the way the kernel writes them.
func (e Entry) String() string {
	mount := strings.ReplaceAll(e.MountPoint, " ", `\040`)
	return fmt.Sprintf("UUID=%s %s %s %s 0 0", e.UUID, mount, e.FSType, e.Options)
}

// DefaultOptions returns mount options suited to a removable exFAT
// drive owned by the given user: no-fail on absence, automount on
// access, and permissive masks so the client application can execute
// from it.
func DefaultOptions(uid, gid int) string {
	return fmt.Sprintf(
		"rw,nofail,x-systemd.automount,nosuid,nodev,relatime,"+
			"uid=%d,gid=%d,fmask=0022,dmask=0022,umask=000,"+
			"iocharset=utf8,errors=remount-ro,x-gvfs-show,exec", uid, gid)
}

// FindMountInfo returns the mount containing path, chosen as the
// longest mount point that prefixes it.
func FindMountInfo(path string) (MountInfo, error) {
	f, err := os.Open("/proc/mounts")
	if err != nil {
		return MountInfo{}, fmt.Errorf("%w: %v", domain.ErrMountNotFound, err)
	}
	defer f.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return MountInfo{}, err
	}
	return findMount(f, abs)
}

func findMount(r io.Reader, path string) (MountInfo, error) {
	var best MountInfo
	bestLen := -1

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 3 {
			continue
		}
		mountPoint := strings.ReplaceAll(fields[1], `\040`, " ")
		if !pathWithin(path, mountPoint) {
			continue
		}
		if len(mountPoint) > bestLen {
			best = MountInfo{Device: fields[0], MountPoint: mountPoint, FSType: fields[2]}
			bestLen = len(mountPoint)
		}
	}
	if err := scanner.Err(); err != nil {
		return MountInfo{}, fmt.Errorf("%w: %v", domain.ErrMountNotFound, err)
	}

	if bestLen < 0 {
		return MountInfo{}, fmt.Errorf("%w: %s", domain.ErrMountNotFound, path)
	}
	return best, nil
}

func pathWithin(path, base string) bool {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return false
	}
	return rel == "." || !strings.HasPrefix(rel, "..")
}

// DeviceUUID resolves the UUID of a device, asking blkid when the
// device reference is not already UUID-based.
func DeviceUUID(device string) (string, error) {
	if uuid, ok := strings.CutPrefix(device, "UUID="); ok {
		return uuid, nil
	}

	out, err := exec.Command("blkid", "-s", "UUID", "-o", "value", device).Output()
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", domain.ErrUUIDNotFound, device, err)
	}
	uuid := strings.TrimSpace(string(out))
	if uuid == "" {
		return "", fmt.Errorf("%w: %s", domain.ErrUUIDNotFound, device)
	}
	return uuid, nil
}

// Append adds the entry to the mount configuration at path, refusing
// when an entry for the same UUID or mount point already exists.
func Append(path string, entry Entry) error {
	existing, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	content := string(existing)
	mount := strings.ReplaceAll(entry.MountPoint, " ", `\040`)
	if strings.Contains(content, "UUID="+entry.UUID) || strings.Contains(content, mount) {
		return fmt.Errorf("%w: %s", ErrAlreadyPresent, entry.MountPoint)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	line := entry.String() + "\n"
	if len(content) > 0 && !strings.HasSuffix(content, "\n") {
		line = "\n" + line
	}
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	return nil
}

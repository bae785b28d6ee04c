// Package store reads and persists environment files.
//
// It is the only package that touches the filesystem on behalf of a set
// operation: it creates missing files, serializes read-modify-write cycles
// with an advisory lock and optionally keeps timestamped backups.
package store

import (
	"EnvSet/internal/console"
	"EnvSet/internal/constants"
	"EnvSet/internal/logger"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// ErrLockTimeout is returned when the lock cannot be taken in time.
var ErrLockTimeout = errors.New("timed out waiting for file lock")

// lockRetryDelay is the polling interval while waiting for the lock.
const lockRetryDelay = 50 * time.Millisecond

// Read returns the content of path. A missing file is created empty, along
// with its parent directories.
func Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		return string(data), nil
	}
	if !os.IsNotExist(err) {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return "", err
	}
	return "", f.Close()
}

// Write replaces path with content. The data goes to a temporary file in the
// same directory first and is renamed over the target, so readers never see
// a partial file. The existing file mode is kept. A symlinked path is
// written through to its target and the link stays in place.
func Write(ctx context.Context, path, content string) error {
	path, err := resolveTarget(path)
	if err != nil {
		return err
	}

	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}

	logger.Debug(ctx, "Wrote '{{_File_}}%s{{|-|}}' (%d bytes).", console.Escape(path), len(content))
	return nil
}

// resolveTarget follows symlinks in path. A path that does not exist yet
// is returned unchanged.
func resolveTarget(path string) (string, error) {
	target, err := filepath.EvalSymlinks(path)
	if err == nil {
		return target, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		if _, lerr := os.Lstat(path); lerr == nil {
			// Dangling link: create the file it points to
			dest, rerr := os.Readlink(path)
			if rerr != nil {
				return "", rerr
			}
			if !filepath.IsAbs(dest) {
				dest = filepath.Join(filepath.Dir(path), dest)
			}
			return dest, nil
		}
		return path, nil
	}
	return "", err
}

// Backup copies path into dir as <name>.<timestamp>.bak and returns the
// backup path. Nothing is done for a missing or empty file.
func Backup(ctx context.Context, path, dir string, now time.Time) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	if len(data) == 0 {
		return "", nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create backup folder: %w", err)
	}

	name := fmt.Sprintf("%s.%s%s", filepath.Base(path), now.Format(constants.BackupTimeFormat), constants.BackupFileSuffix)
	dst := filepath.Join(dir, name)

	logger.Info(ctx, "Copying '{{_File_}}%s{{|-|}}' to '{{_Folder_}}%s{{|-|}}'.", console.Escape(path), console.Escape(dst))
	if err := os.WriteFile(dst, data, 0600); err != nil {
		return "", fmt.Errorf("failed to copy backup: %w", err)
	}
	return dst, nil
}

// Lock takes an exclusive advisory lock for path, waiting at most timeout.
// The lock lives in <path>.lock next to the file (the symlink target for a
// link) and is never removed, so every process agrees on one lock file.
// The returned function releases the lock.
func Lock(ctx context.Context, path string, timeout time.Duration) (func(), error) {
	path, err := resolveTarget(path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	fl := flock.New(path + constants.LockFileSuffix)

	lockCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		lockCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	locked, err := fl.TryLockContext(lockCtx, lockRetryDelay)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %s", ErrLockTimeout, path)
		}
		return nil, err
	}
	if !locked {
		return nil, fmt.Errorf("%w: %s", ErrLockTimeout, path)
	}

	logger.Trace(ctx, "Locked '{{_File_}}%s{{|-|}}'.", console.Escape(fl.Path()))
	return func() {
		if err := fl.Unlock(); err != nil {
			logger.Warn(ctx, "Failed to unlock '{{_File_}}%s{{|-|}}': %v", console.Escape(fl.Path()), err)
		}
	}, nil
}

// UpdateOptions controls Update.
type UpdateOptions struct {
	// LockTimeout bounds the wait for the file lock. Zero waits for ctx.
	LockTimeout time.Duration
	// BackupDir enables backups when non-empty.
	BackupDir string
	// DryRun runs the callback but writes nothing.
	DryRun bool
	// Now stamps backups. Defaults to time.Now.
	Now func() time.Time
}

// Update runs one locked read-modify-write cycle on path. fn receives the
// current content and returns the new content. When fn fails nothing is
// written. It returns the content before and after fn.
func Update(ctx context.Context, path string, opts UpdateOptions, fn func(content string) (string, error)) (before, after string, err error) {
	unlock, err := Lock(ctx, path, opts.LockTimeout)
	if err != nil {
		return "", "", err
	}
	defer unlock()

	before, err = Read(path)
	if err != nil {
		return "", "", fmt.Errorf("failed to read '%s': %w", path, err)
	}

	after, err = fn(before)
	if err != nil {
		return before, before, err
	}
	if opts.DryRun || after == before {
		return before, after, nil
	}

	if opts.BackupDir != "" {
		now := time.Now
		if opts.Now != nil {
			now = opts.Now
		}
		if _, err := Backup(ctx, path, opts.BackupDir, now()); err != nil {
			return before, before, err
		}
	}

	if err := Write(ctx, path, after); err != nil {
		return before, before, fmt.Errorf("failed to write '%s': %w", path, err)
	}
	return before, after, nil
}

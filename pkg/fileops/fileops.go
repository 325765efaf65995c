// pkg/fileops/fileops.go - directory mutation helpers: cleanup, copy, and the
// nested-folder collapse used after archive extraction.
//
// Cleanup operations treat a missing directory as a logged no-op; only the
// callers that gate forward progress turn filesystem absences into fatal
// errors.

package fileops

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nicholas-yahung-chien/ibm-vscode-4-z/pkg/logging"
	"github.com/nicholas-yahung-chien/ibm-vscode-4-z/pkg/retry"
)

// CleanDirExcept deletes every top-level entry of dir except plain files whose
// name ends with keepSuffix (case-insensitive). Subdirectories are removed
// wholesale, even when they contain files that would otherwise be kept.
func CleanDirExcept(dir, keepSuffix string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		logging.Info("Directory does not exist, skipping cleanup", "dir", dir)
		return
	}

	logging.Info("Cleaning directory", "dir", dir, "keep_suffix", keepSuffix)
	suffix := strings.ToLower(keepSuffix)
	for _, entry := range entries {
		full := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			if err := RemoveTreeRetry(full, 3, time.Second); err != nil {
				logging.Warn("Unable to remove directory", "dir", full, "error", err)
			} else {
				logging.Debug("Removed directory", "dir", full)
			}
			continue
		}
		if strings.HasSuffix(strings.ToLower(entry.Name()), suffix) {
			continue
		}
		if err := RemoveFileRetry(full, 3); err != nil {
			logging.Warn("Unable to remove file", "file", full, "error", err)
		} else {
			logging.Debug("Removed file", "file", full)
		}
	}
	logging.Info("Directory cleanup complete", "dir", dir)
}

// CleanDirMatching deletes only the top-level plain files of dir whose base
// name matches the glob pattern. Directories are left alone.
func CleanDirMatching(dir, pattern string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		logging.Info("Directory does not exist, skipping cleanup", "dir", dir)
		return
	}

	logging.Info("Cleaning matching files", "dir", dir, "pattern", pattern)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if ok, _ := filepath.Match(pattern, entry.Name()); !ok {
			continue
		}
		full := filepath.Join(dir, entry.Name())
		if err := RemoveFileRetry(full, 3); err != nil {
			logging.Warn("Unable to remove file", "file", full, "error", err)
		} else {
			logging.Debug("Removed file", "file", full)
		}
	}
}

// RemoveTreeRetry deletes a directory tree, retrying on transient errors such
// as a slow-to-release handle held by a just-terminated process. A missing
// directory is success. The last error is returned after attempts are
// exhausted; the caller decides whether that is fatal.
func RemoveTreeRetry(dir string, attempts int, delay time.Duration) error {
	return retry.Do(retry.Config{MaxAttempts: attempts, Interval: delay, Multiplier: 1},
		func() error {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				return nil
			}
			return os.RemoveAll(dir)
		})
}

// RemoveFileRetry deletes a single file with retries. A missing file is
// success.
func RemoveFileRetry(path string, attempts int) error {
	return retry.Do(retry.Config{MaxAttempts: attempts, Interval: time.Second, Multiplier: 1},
		func() error {
			if _, err := os.Stat(path); os.IsNotExist(err) {
				return nil
			}
			return os.Remove(path)
		})
}

// CopyTree recursively copies the contents of src into dst, creating dst and
// any intermediate directories.
func CopyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		return copyFile(path, target)
	})
}

// CopyFile copies a single file, creating the destination directory if needed.
func CopyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}
	return copyFile(src, dst)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copying %s: %w", src, err)
	}
	return nil
}

// MoveContentsUp moves every entry of the nested folder up into parent and
// removes the then-empty nested folder. Silent no-op when nested is empty,
// equal to parent, or does not exist. Archives are sometimes authored with a
// superfluous single top-level folder; this collapses it.
func MoveContentsUp(parent, nested string) error {
	if nested == "" {
		return nil
	}
	absParent, err := filepath.Abs(parent)
	if err != nil {
		return err
	}
	absNested, err := filepath.Abs(nested)
	if err != nil {
		return err
	}
	if absParent == absNested {
		return nil
	}

	entries, err := os.ReadDir(absNested)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	for _, entry := range entries {
		from := filepath.Join(absNested, entry.Name())
		to := filepath.Join(absParent, entry.Name())
		if err := os.Rename(from, to); err != nil {
			return fmt.Errorf("moving %s up to %s: %w", from, absParent, err)
		}
	}
	if err := os.Remove(absNested); err != nil {
		return fmt.Errorf("removing emptied folder %s: %w", absNested, err)
	}
	logging.Info("Collapsed nested folder", "from", absNested, "into", absParent)
	return nil
}

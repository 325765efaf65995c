// pkg/paths/paths.go - glob and tree-walk lookups used by the provisioning pipeline.
//
// Every helper takes the workspace-derived directory it operates on as an
// explicit argument; nothing in this package reads or mutates the process
// working directory.

package paths

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Compose joins workspace with a relative sub-folder path that may use either
// forward or backward slashes as separators.
func Compose(workspace, subFolder string) string {
	parts := strings.Split(strings.ReplaceAll(subFolder, `\`, "/"), "/")
	return filepath.Join(append([]string{workspace}, parts...)...)
}

// LatestByModTime finds files in dir matching the glob pattern and returns the
// base name of the newest one by modification time. Ties are broken by
// descending base name so the result is deterministic regardless of directory
// enumeration order. Returns an empty string when nothing matches.
func LatestByModTime(dir, pattern string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", nil
	}

	sort.Slice(matches, func(i, j int) bool {
		ii, erri := os.Stat(matches[i])
		ji, errj := os.Stat(matches[j])
		if erri != nil || errj != nil {
			return filepath.Base(matches[i]) > filepath.Base(matches[j])
		}
		if !ii.ModTime().Equal(ji.ModTime()) {
			return ii.ModTime().After(ji.ModTime())
		}
		return filepath.Base(matches[i]) > filepath.Base(matches[j])
	})
	return filepath.Base(matches[0]), nil
}

// AllReverseSorted returns every file in dir matching the glob pattern, sorted
// by base name in descending lexicographic order. Note this is plain string
// ordering, not version-aware ordering: "pkg-2.9.0" sorts after "pkg-2.10.0".
func AllReverseSorted(dir, pattern string) []string {
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil || len(matches) == 0 {
		return nil
	}
	sort.Slice(matches, func(i, j int) bool {
		return filepath.Base(matches[i]) > filepath.Base(matches[j])
	})
	return matches
}

// walkDirs visits root and every directory below it in pre-order, calling fn
// with the directory path and the names of the plain files it contains. A true
// return from fn stops the walk.
func walkDirs(root string, fn func(dir string, files []string) bool) {
	abs, err := filepath.Abs(root)
	if err != nil {
		abs = root
	}
	_ = filepath.WalkDir(abs, func(path string, d os.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil
		}
		var files []string
		for _, e := range entries {
			if !e.IsDir() {
				files = append(files, e.Name())
			}
		}
		if fn(path, files) {
			return filepath.SkipAll
		}
		return nil
	})
}

// FindRealDirectory walks the tree under root and returns the first directory
// containing at least one file whose name does not end with exemptExt
// (case-insensitive). After an archive has been extracted next to itself, that
// directory is the real payload folder. Returns "" when no such directory
// exists.
func FindRealDirectory(root, exemptExt string) string {
	var found string
	exempt := strings.ToLower(exemptExt)
	walkDirs(root, func(dir string, files []string) bool {
		for _, f := range files {
			if !strings.HasSuffix(strings.ToLower(f), exempt) {
				found = dir
				return true
			}
		}
		return false
	})
	return found
}

// FindHomePath walks the tree under root and returns the first directory
// containing a file named target (case-insensitive). The target may carry a
// relative directory prefix using either slash style, e.g. "bin/java.exe";
// the returned directory is then the one holding the file, so it matches the
// tail of the marker. Returns "" when absent.
func FindHomePath(root, target string) string {
	norm := strings.ToLower(strings.ReplaceAll(target, `\`, "/"))
	prefix := ""
	base := norm
	if i := strings.LastIndex(norm, "/"); i >= 0 {
		prefix = "/" + norm[:i]
		base = norm[i+1:]
	}

	var found string
	walkDirs(root, func(dir string, files []string) bool {
		if prefix != "" &&
			!strings.HasSuffix(strings.ToLower(filepath.ToSlash(dir)), prefix) {
			return false
		}
		for _, f := range files {
			if strings.EqualFold(f, base) {
				found = dir
				return true
			}
		}
		return false
	})
	return found
}

// FindFileByPattern walks the tree under root and returns the full path of the
// first file whose base name matches the glob pattern. Returns "" when absent.
func FindFileByPattern(root, pattern string) string {
	var found string
	walkDirs(root, func(dir string, files []string) bool {
		for _, f := range files {
			if ok, _ := filepath.Match(pattern, f); ok {
				found = filepath.Join(dir, f)
				return true
			}
		}
		return false
	})
	return found
}

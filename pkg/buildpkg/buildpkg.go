// pkg/buildpkg/buildpkg.go - release packaging: gather the workspace contents,
// skip excluded directories and files, and compress the rest into one archive.

package buildpkg

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/nicholas-yahung-chien/ibm-vscode-4-z/pkg/logging"
	"github.com/nicholas-yahung-chien/ibm-vscode-4-z/pkg/progress"
)

// matchesAny reports whether name matches any of the glob patterns.
func matchesAny(name string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, _ := filepath.Match(pattern, name); ok {
			return true
		}
	}
	return false
}

// GatherFiles walks root and collects every file to package, pruning
// directories whose base name matches an exclude pattern and skipping files
// likewise. It returns absolute file paths and their slash-separated archive
// paths relative to root, index-aligned.
func GatherFiles(root string, excludeDirs, excludeFiles []string) ([]string, []string, error) {
	var absPaths, relPaths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && matchesAny(d.Name(), excludeDirs) {
				return filepath.SkipDir
			}
			return nil
		}
		if matchesAny(d.Name(), excludeFiles) {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		absPaths = append(absPaths, path)
		relPaths = append(relPaths, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("walking %s: %w", root, err)
	}
	return absPaths, relPaths, nil
}

// CompressDirectory packages root into outZip, honoring the exclude patterns.
// The output archive itself is always excluded so packaging a workspace into
// itself does not recurse.
func CompressDirectory(root, outZip string, excludeDirs, excludeFiles []string) error {
	excludeFiles = append(append([]string{}, excludeFiles...), filepath.Base(outZip))

	absPaths, relPaths, err := GatherFiles(root, excludeDirs, excludeFiles)
	if err != nil {
		return err
	}
	if len(absPaths) == 0 {
		logging.Warn("Nothing to compress", "dir", root)
		return nil
	}

	out, err := os.Create(outZip)
	if err != nil {
		return fmt.Errorf("creating %s: %w", outZip, err)
	}
	defer out.Close()

	spinner := progress.NewSpinner(fmt.Sprintf("Compressing %s", filepath.Base(outZip)))
	defer spinner.Stop()

	zw := zip.NewWriter(out)
	for i, abs := range absPaths {
		if err := addFile(zw, abs, relPaths[i]); err != nil {
			zw.Close()
			return err
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalizing %s: %w", outZip, err)
	}

	logging.Info("Package created", "zip", outZip, "files", len(absPaths))
	return nil
}

func addFile(zw *zip.Writer, abs, rel string) error {
	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("stat %s: %w", abs, err)
	}
	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return fmt.Errorf("header for %s: %w", abs, err)
	}
	header.Name = rel
	header.Method = zip.Deflate

	w, err := zw.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("adding %s: %w", rel, err)
	}
	in, err := os.Open(abs)
	if err != nil {
		return fmt.Errorf("opening %s: %w", abs, err)
	}
	defer in.Close()
	if _, err := io.Copy(w, in); err != nil {
		return fmt.Errorf("compressing %s: %w", rel, err)
	}
	return nil
}

// CopyExecutables copies every .exe under srcDir into workspace.
func CopyExecutables(srcDir, workspace string) error {
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return fmt.Errorf("reading %s: %w", srcDir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".exe") {
			continue
		}
		src := filepath.Join(srcDir, entry.Name())
		dst := filepath.Join(workspace, entry.Name())
		logging.Info("Copying executable", "file", entry.Name(), "dest", workspace)
		if err := copyFile(src, dst); err != nil {
			return err
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copying to %s: %w", dst, err)
	}
	return out.Close()
}

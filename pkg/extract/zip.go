// pkg/extract/zip.go - zip extraction and payload normalization for tool archives.

package extract

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nicholas-yahung-chien/ibm-vscode-4-z/pkg/fileops"
	"github.com/nicholas-yahung-chien/ibm-vscode-4-z/pkg/logging"
	"github.com/nicholas-yahung-chien/ibm-vscode-4-z/pkg/paths"
	"github.com/nicholas-yahung-chien/ibm-vscode-4-z/pkg/progress"
)

// Zip extracts zipPath into destDir, creating directories as needed. Entries
// resolving outside destDir are rejected.
func Zip(zipPath, destDir string) error {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return fmt.Errorf("opening archive %s: %w", zipPath, err)
	}
	defer r.Close()

	absDest, err := filepath.Abs(destDir)
	if err != nil {
		return err
	}

	spinner := progress.NewSpinner(fmt.Sprintf("Extracting %s", filepath.Base(zipPath)))
	defer spinner.Stop()

	for _, f := range r.File {
		if err := extractEntry(f, absDest); err != nil {
			return err
		}
	}

	logging.Info("Extraction complete", "archive", zipPath, "destination", destDir)
	return nil
}

func extractEntry(f *zip.File, destDir string) error {
	target := filepath.Join(destDir, filepath.FromSlash(f.Name))
	if !strings.HasPrefix(target, destDir+string(os.PathSeparator)) && target != destDir {
		return fmt.Errorf("archive entry %q escapes destination", f.Name)
	}

	if f.FileInfo().IsDir() {
		return os.MkdirAll(target, 0755)
	}
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}

	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("reading entry %s: %w", f.Name, err)
	}
	defer rc.Close()

	mode := f.Mode().Perm()
	if mode == 0 {
		mode = 0644
	}
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, rc); err != nil {
		return fmt.Errorf("writing %s: %w", target, err)
	}
	return nil
}

// Normalize collapses the superfluous single top-level folder some archives
// wrap their payload in, so the payload sits directly under destDir.
// Idempotent: once the payload is at the root, destDir itself is the first
// directory holding non-archive files and nothing moves.
func Normalize(destDir, archiveExt string) error {
	real := paths.FindRealDirectory(destDir, archiveExt)
	if real == "" {
		return nil
	}

	absDest, err := filepath.Abs(destDir)
	if err != nil {
		return err
	}
	rel, err := filepath.Rel(absDest, real)
	if err != nil || rel == "." {
		return err
	}

	wrapper := filepath.Join(absDest, strings.Split(rel, string(os.PathSeparator))[0])
	return fileops.MoveContentsUp(absDest, wrapper)
}

// pkg/download/artifacts.go - the full artifact fetch: extensions, python
// wheels and tool archives, each staged into the directory the install
// pipeline later reads.

package download

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/nicholas-yahung-chien/ibm-vscode-4-z/pkg/config"
	"github.com/nicholas-yahung-chien/ibm-vscode-4-z/pkg/fileops"
	"github.com/nicholas-yahung-chien/ibm-vscode-4-z/pkg/logging"
	"github.com/nicholas-yahung-chien/ibm-vscode-4-z/pkg/paths"
	"github.com/nicholas-yahung-chien/ibm-vscode-4-z/pkg/progress"
)

const wheelDownloadTimeout = 15 * time.Minute

// extensionsDirName and wheelsDirName mirror the install pipeline's staging
// layout.
const (
	extensionsDirName = "extensions"
	wheelsDirName     = "pywhls"
)

// Extensions clears previously downloaded packages and fetches every declared
// extension from the gallery. A failed download is logged and skipped so the
// remaining packages still land.
func Extensions(workspace string, extensions config.Extensions) {
	destDir := filepath.Join(workspace, extensionsDirName)
	fileops.CleanDirMatching(destDir, "*.vsix")

	for _, publisher := range extensions.Publishers() {
		for _, entry := range extensions[publisher] {
			for id, version := range entry {
				url := ExtensionURL(publisher, id, version)
				name := ExtensionFileName(publisher, id, version)
				if err := File(url, destDir, "*.vsix", name); err != nil {
					logging.Error("Extension download failed",
						"publisher", publisher, "extension", id, "error", err)
				}
			}
		}
	}
}

// Wheels clears the wheel cache and repopulates it with the declared packages
// and their dependency closure, using the host interpreter's package tool.
func Wheels(workspace string, pip *config.Pip) error {
	destDir := filepath.Join(workspace, wheelsDirName)
	fileops.CleanDirMatching(destDir, "*.whl")

	argv := append([]string{"pip", "download"}, pip.Whls...)
	argv = append(argv, "--dest", destDir)
	if err := progress.Run(context.Background(),
		"Downloading python packages", "", argv, wheelDownloadTimeout); err != nil {
		return fmt.Errorf("downloading wheels: %w", err)
	}
	return nil
}

// Tools fetches every tool archive that declares a source URL into its tool
// directory, clearing stale archives of the same type first. A failed download
// is logged and skipped.
func Tools(workspace string, tools config.Tools) {
	for _, name := range tools.Names() {
		tool := tools[name]
		if tool.Source == "" {
			logging.Debug("Tool declares no source, skipping", "tool", name)
			continue
		}
		destDir := paths.Compose(workspace, tool.Dir)
		fileops.CleanDirMatching(destDir, "*"+tool.ArchiveSuffix())

		// Fallback name when neither the response headers nor the final URL
		// yield one, e.g. "python_.zip" from pattern "python_*".
		defaultName := strings.ReplaceAll(tool.FilePattern(), "*", "")
		if err := File(tool.Source, destDir, tool.FilePattern(), defaultName); err != nil {
			logging.Error("Tool download failed", "tool", name, "error", err)
		}
	}
}

// Artifacts runs the three download stages in order.
func Artifacts(workspace string, tools config.Tools, pip *config.Pip, extensions config.Extensions) error {
	Extensions(workspace, extensions)
	if err := Wheels(workspace, pip); err != nil {
		return err
	}
	Tools(workspace, tools)
	return nil
}

// pkg/installer/uninstall.go - reverting the workspace to its pre-install state.

package installer

import (
	"path/filepath"

	"github.com/nicholas-yahung-chien/ibm-vscode-4-z/pkg/config"
	"github.com/nicholas-yahung-chien/ibm-vscode-4-z/pkg/fileops"
	"github.com/nicholas-yahung-chien/ibm-vscode-4-z/pkg/logging"
	"github.com/nicholas-yahung-chien/ibm-vscode-4-z/pkg/paths"
	"github.com/nicholas-yahung-chien/ibm-vscode-4-z/pkg/template"
)

// Uninstall clears every declared tool directory down to its archive files,
// clears installed extension payloads, then restores the newest configuration
// backup over the live connection config. Cleanup order across tool
// directories carries no dependencies; missing directories are logged no-ops.
func Uninstall(workspace string, tools config.Tools) error {
	for _, name := range tools.Names() {
		tool := tools[name]
		dir := paths.Compose(workspace, tool.Dir)
		logging.Info("Cleaning tool directory", "tool", name, "dir", dir)
		fileops.CleanDirExcept(dir, tool.ArchiveSuffix())
	}

	// Downloaded extension packages stay for a later reinstall; everything
	// else in the extensions directory goes.
	fileops.CleanDirExcept(filepath.Join(workspace, ExtensionsDirName), ".vsix")

	return template.RestoreLatestBackup(filepath.Join(workspace, WorkspaceDirName))
}

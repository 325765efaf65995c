// pkg/installer/install.go - the seven install phases.
//
// Each phase is a plain function over the pipeline context; ordering and
// confirmation gating belong to the runner. Failures that gate forward
// progress (missing archive, missing runtime, failed environment creation)
// return errors; failures inside a batch of independent sub-operations are
// logged and skipped.

package installer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nicholas-yahung-chien/ibm-vscode-4-z/pkg/config"
	"github.com/nicholas-yahung-chien/ibm-vscode-4-z/pkg/extract"
	"github.com/nicholas-yahung-chien/ibm-vscode-4-z/pkg/fileops"
	"github.com/nicholas-yahung-chien/ibm-vscode-4-z/pkg/logging"
	"github.com/nicholas-yahung-chien/ibm-vscode-4-z/pkg/paths"
	"github.com/nicholas-yahung-chien/ibm-vscode-4-z/pkg/pipeline"
	"github.com/nicholas-yahung-chien/ibm-vscode-4-z/pkg/process"
	"github.com/nicholas-yahung-chien/ibm-vscode-4-z/pkg/progress"
	"github.com/nicholas-yahung-chien/ibm-vscode-4-z/pkg/shortcut"
	"github.com/nicholas-yahung-chien/ibm-vscode-4-z/pkg/template"
)

// Well-known tool names in tools.yml.
const (
	ToolVSCode     = "vscode"
	ToolNodeJS     = "nodejs"
	ToolPython     = "python"
	ToolZoweCore   = "zowe-core"
	ToolZowePlugin = "zowe-plugin"

	runtimePrefix = "java"
)

// Workspace-relative directory names.
const (
	ExtensionsDirName = "extensions"
	WheelsDirName     = "pywhls"
	WorkspaceDirName  = "workspace"
	DataDirName       = "data"
	VenvDirName       = "venv"
)

const (
	cliModuleTimeout = 10 * time.Minute
	wheelTimeout     = 5 * time.Minute
	extensionTimeout = 5 * time.Minute
)

// editorProcessNames are the image names killed to release extension file
// locks between installs.
var editorProcessNames = []string{"Code.exe", "code.exe", "code.cmd"}

// Phases returns the ordered install phases. The shortcut Creator is injected
// so hosts without shell integration take a clean skip branch.
func Phases(creator shortcut.Creator) []pipeline.Phase {
	return []pipeline.Phase{
		{Name: "check-tools", Confirm: "[Step 1] Check tool archives: confirm every required tool has been downloaded", Run: CheckTools},
		{Name: "extract", Confirm: "[Step 2] Extract tool archives: confirm ready to extract", Run: ExtractTools},
		{Name: "cli-modules", Confirm: "[Step 3] Install Zowe CLI modules: confirm install settings", Run: InstallCLIModules},
		{Name: "python-modules", Confirm: "[Step 4] Install python packages", Run: InstallPythonModules},
		{Name: "settings", Confirm: "[Step 5] Migrate path settings: confirm settings file rewrite", Run: MigrateSettings},
		{Name: "extensions", Confirm: "[Step 6] Install editor extensions: confirm extension install", Run: InstallExtensions},
		{Name: "shortcut", Confirm: "[Step 7] Create editor shortcut: confirm shortcut creation", Run: CreateShortcutPhase(creator)},
	}
}

// CheckTools verifies every declared tool's archive exists in its directory.
// Any missing archive fails the whole run before anything is extracted.
func CheckTools(ctx *pipeline.Context) error {
	ctx.ToolFiles = make(map[string]string, len(ctx.Tools))
	for _, name := range ctx.Tools.Names() {
		tool := ctx.Tools[name]
		dir := paths.Compose(ctx.Workspace, tool.Dir)
		file, err := paths.LatestByModTime(dir, tool.FilePattern())
		if err != nil {
			return err
		}
		if file == "" {
			return fmt.Errorf("required archive for %s not found in %s (pattern %s)",
				name, dir, tool.FilePattern())
		}
		logging.Info("Tool archive present", "tool", name, "file", file)
		ctx.ToolFiles[name] = file
	}
	return nil
}

// ExtractTools extracts every archive into its tool directory. Zip payloads
// are normalized so the tool's contents sit directly under the directory;
// self-extracting archives run silently and are trusted to lay their payload
// flat. The newest-named runtime's directory is recorded as the runtime home.
func ExtractTools(ctx *pipeline.Context) error {
	for _, name := range ctx.Tools.Names() {
		tool := ctx.Tools[name]
		if tool.Type != "zip" {
			continue
		}
		dir := paths.Compose(ctx.Workspace, tool.Dir)
		archive := filepath.Join(dir, ctx.ToolFiles[name])
		if err := extract.Zip(archive, dir); err != nil {
			return fmt.Errorf("extracting %s: %w", name, err)
		}
		if err := extract.Normalize(dir, tool.ArchiveSuffix()); err != nil {
			return fmt.Errorf("normalizing %s: %w", name, err)
		}
	}

	for _, name := range ctx.Tools.Names() {
		tool := ctx.Tools[name]
		if tool.Type != "exe" {
			continue
		}
		dir := paths.Compose(ctx.Workspace, tool.Dir)
		archive := filepath.Join(dir, ctx.ToolFiles[name])
		if err := extract.SelfExtracting(context.Background(), archive, dir); err != nil {
			logging.Warn("Self-extracting archive failed", "tool", name, "error", err)
		}
	}

	runtimes := ctx.Tools.NamesWithPrefix(runtimePrefix)
	if len(runtimes) > 0 {
		ctx.JavaHome = paths.Compose(ctx.Workspace, ctx.Tools[runtimes[0]].Dir)
		logging.Info("Runtime home recorded", "path", ctx.JavaHome)
	}
	return nil
}

// InstallCLIModules installs the packaged CLI modules, core group before
// plugin group, newest-named package first within each group. A failed or
// timed-out module is logged and skipped; the batch continues.
func InstallCLIModules(ctx *pipeline.Context) error {
	nodeTool, ok := ctx.Tools[ToolNodeJS]
	if !ok {
		return fmt.Errorf("tool %s not declared in manifest", ToolNodeJS)
	}
	nodeDir := paths.Compose(ctx.Workspace, nodeTool.Dir)
	npmCmd := filepath.Join(nodeDir, "npm.cmd")

	for _, group := range []string{ToolZoweCore, ToolZowePlugin} {
		tool, ok := ctx.Tools[group]
		if !ok {
			logging.Warn("CLI module group not declared, skipping", "group", group)
			continue
		}
		groupDir := paths.Compose(ctx.Workspace, tool.Dir)
		for _, module := range paths.AllReverseSorted(groupDir, "*.tgz") {
			name := filepath.Base(module)
			argv := []string{npmCmd, "install", "-g",
				"--prefer-offline", "--prefer-online",
				"--no-fund", "--no-audit", module}
			err := progress.Run(context.Background(),
				fmt.Sprintf("Installing %s", name), nodeDir, argv, cliModuleTimeout)
			if err != nil {
				logging.Error("CLI module install failed", "module", name, "error", err)
				continue
			}
			logging.Info("CLI module installed", "module", name)
		}
	}
	return nil
}

// InstallPythonModules builds an isolated interpreter environment from the
// extracted runtime and installs the declared wheels into it from the local
// package cache. Environment creation failure is fatal; individual wheel
// failures are logged and skipped.
func InstallPythonModules(ctx *pipeline.Context) error {
	tool, ok := ctx.Tools[ToolPython]
	if !ok {
		return fmt.Errorf("tool %s not declared in manifest", ToolPython)
	}
	pythonDir := paths.Compose(ctx.Workspace, tool.Dir)
	pythonHome := paths.FindHomePath(pythonDir, "python.exe")
	if pythonHome == "" {
		return fmt.Errorf("python.exe not found under %s", pythonDir)
	}

	venvPath := filepath.Join(pythonDir, VenvDirName)
	argv := []string{filepath.Join(pythonHome, "python.exe"), "-m", "venv", venvPath}
	if err := progress.Run(context.Background(), "Creating python environment", "", argv, 0); err != nil {
		return fmt.Errorf("creating isolated environment: %w", err)
	}
	logging.Info("Isolated python environment created", "path", venvPath)

	venvHome := paths.FindHomePath(venvPath, "python.exe")
	if venvHome == "" {
		return fmt.Errorf("python.exe not found in environment %s", venvPath)
	}

	wheelCache := filepath.Join(ctx.Workspace, WheelsDirName)
	for _, whl := range ctx.Pip.Whls {
		argv := []string{filepath.Join(venvHome, "python.exe"), "-m", "pip", "install",
			"--no-input", "--disable-pip-version-check", "--no-cache-dir",
			"--no-index", fmt.Sprintf("--find-links=%s", wheelCache), whl}
		err := progress.Run(context.Background(),
			fmt.Sprintf("Installing %s", whl), "", argv, wheelTimeout)
		if err != nil {
			logging.Error("Wheel install failed", "package", whl, "error", err)
			continue
		}
		logging.Info("Wheel installed", "package", whl)
	}
	return nil
}

// MigrateSettings copies the user-data template into the editor directory and
// stamps workspace-dependent values into the settings file. A missing settings
// file or schema file fails the run.
func MigrateSettings(ctx *pipeline.Context) error {
	vscodeTool, ok := ctx.Tools[ToolVSCode]
	if !ok {
		return fmt.Errorf("tool %s not declared in manifest", ToolVSCode)
	}
	vscodeDir := paths.Compose(ctx.Workspace, vscodeTool.Dir)

	src := filepath.Join(ctx.Workspace, DataDirName)
	dst := filepath.Join(vscodeDir, DataDirName)
	spinner := progress.NewSpinner("Copying user-data template")
	err := fileops.CopyTree(src, dst)
	spinner.Stop()
	if err != nil {
		return fmt.Errorf("copying user-data template: %w", err)
	}

	settingsPath := filepath.Join(dst, "user-data", "User", "settings.json")
	if _, err := os.Stat(settingsPath); err != nil {
		return fmt.Errorf("settings file missing: %s: %w", settingsPath, err)
	}

	schemaURIs, err := resolveSchemaURIs(ctx.Workspace)
	if err != nil {
		return err
	}

	pythonDir := paths.Compose(ctx.Workspace, ctx.Tools[ToolPython].Dir)
	venvPath := filepath.Join(pythonDir, VenvDirName)

	values := template.SettingsValues{
		Workspace:  ctx.Workspace,
		JavaHome:   ctx.JavaHome,
		VenvHome:   venvPath,
		VenvExec:   filepath.Join(venvPath, "Scripts", "python.exe"),
		SchemaURIs: schemaURIs,
		Runtimes:   runtimeEntries(ctx),
	}
	if err := template.ApplySettings(settingsPath, values); err != nil {
		return err
	}
	logging.Info("Settings migrated", "file", settingsPath)
	return nil
}

// schemaFiles maps each settings placeholder to the file pattern located under
// the workspace subtree. Every schema file is required.
var schemaFiles = map[string]string{
	"_ZAPP_SCHEMA_URI_":         "zapp-schema*.json",
	"_ZCODE_FORMAT_SCHEMA_URI_": "zcodeformat-schema*.json",
}

func resolveSchemaURIs(workspace string) (map[string]string, error) {
	root := filepath.Join(workspace, WorkspaceDirName)
	uris := make(map[string]string, len(schemaFiles))
	for token, pattern := range schemaFiles {
		found := paths.FindFileByPattern(root, pattern)
		if found == "" {
			return nil, fmt.Errorf("required schema file %s not found under %s", pattern, root)
		}
		uris[token] = paths.FileURI(found)
	}
	return uris, nil
}

func runtimeEntries(ctx *pipeline.Context) []template.RuntimeEntry {
	var entries []template.RuntimeEntry
	for _, name := range ctx.Tools.NamesWithPrefix(runtimePrefix) {
		major := config.MajorVersion(name)
		if major == "" {
			logging.Warn("Runtime name carries no version, skipping", "tool", name)
			continue
		}
		entries = append(entries, template.RuntimeEntry{
			Name: "JavaSE-" + major,
			Path: paths.Compose(ctx.Workspace, ctx.Tools[name].Dir),
		})
	}
	return entries
}

// InstallExtensions installs every packaged extension found on disk, grouped
// by publisher, newest-named first within a group. After each successful
// install the editor's own processes are terminated to release file locks
// before the next one.
func InstallExtensions(ctx *pipeline.Context) error {
	vscodeTool, ok := ctx.Tools[ToolVSCode]
	if !ok {
		return fmt.Errorf("tool %s not declared in manifest", ToolVSCode)
	}
	binDir := filepath.Join(paths.Compose(ctx.Workspace, vscodeTool.Dir), "bin")
	codeCmd := filepath.Join(binDir, "code.cmd")
	extensionsDir := filepath.Join(ctx.Workspace, ExtensionsDirName)

	for _, publisher := range ctx.Extensions.Publishers() {
		vsixes := paths.AllReverseSorted(extensionsDir, publisher+"*.vsix")
		for _, vsix := range vsixes {
			name := filepath.Base(vsix)
			argv := []string{codeCmd, "--install-extension", vsix}
			err := progress.Run(context.Background(),
				fmt.Sprintf("Installing %s", name), binDir, argv, extensionTimeout)
			if err != nil {
				logging.Error("Extension install failed", "extension", name, "error", err)
				continue
			}
			logging.Info("Extension installed", "extension", name)
			// The editor spawns itself during the install and keeps files
			// locked; kill its process images before the next extension.
			process.KillByName(editorProcessNames...)
		}
	}
	return nil
}

// CreateShortcutPhase returns the final best-effort phase: bootstrap the
// launch script's environment, then create the launcher shortcut when the
// host supports it.
func CreateShortcutPhase(creator shortcut.Creator) func(*pipeline.Context) error {
	return func(ctx *pipeline.Context) error {
		vscodeTool, ok := ctx.Tools[ToolVSCode]
		if !ok {
			return fmt.Errorf("tool %s not declared in manifest", ToolVSCode)
		}
		vscodeDir := paths.Compose(ctx.Workspace, vscodeTool.Dir)
		binDir := filepath.Join(vscodeDir, "bin")
		codeCmd := filepath.Join(binDir, "code.cmd")

		linkPath := filepath.Join(ctx.Workspace, "VSCode.lnk")
		if err := os.Remove(linkPath); err == nil {
			logging.Info("Removed existing shortcut", "link", linkPath)
		}

		insertions := []string{
			`powershell -Command "Set-ExecutionPolicy -ExecutionPolicy Unrestricted -Scope CurrentUser -Force"`,
			fmt.Sprintf(`set "PATH=%s;%%PATH%%"`, joinToolHomePaths(ctx)),
			fmt.Sprintf(`set "JAVA_HOME=%s"`, ctx.JavaHome),
		}
		if err := InsertAfterSetlocal(codeCmd, insertions); err != nil {
			return fmt.Errorf("updating launch script: %w", err)
		}
		logging.Info("Launch script environment bootstrap inserted", "script", codeCmd)

		if !creator.Available() {
			logging.Info("Shortcut capability unavailable on this host, skipping")
			return nil
		}

		args := filepath.Join(ctx.Workspace, WorkspaceDirName, ctx.Init.Default.Workspace)
		if locale := ctx.Init.Default.Locale; locale != "" {
			args += " --locale=" + locale
		}
		spec := shortcut.Spec{
			LinkPath:     linkPath,
			Target:       codeCmd,
			Arguments:    args,
			WorkingDir:   binDir,
			IconLocation: filepath.Join(vscodeDir, "Code.exe") + ",0",
		}
		if err := creator.Create(spec); err != nil {
			// Best-effort: a failed shortcut never fails the install.
			logging.Warn("Shortcut creation failed", "error", err)
			return nil
		}
		logging.Info("Shortcut created", "link", linkPath)
		return nil
	}
}

// joinToolHomePaths concatenates the home directory of every tool flagged as
// PATH-contributing, resolving each declared marker executable. The python
// tool resolves inside the isolated environment's Scripts directory so the
// launch PATH points at the venv interpreter.
func joinToolHomePaths(ctx *pipeline.Context) string {
	var homes []string
	for _, name := range ctx.Tools.Names() {
		tool := ctx.Tools[name]
		if !tool.AddHomePathToEnv {
			continue
		}
		for _, marker := range tool.HomePathOf {
			root := paths.Compose(ctx.Workspace, tool.Dir)
			if name == ToolPython {
				root = filepath.Join(root, VenvDirName, "Scripts")
			}
			if home := paths.FindHomePath(root, marker); home != "" {
				homes = append(homes, home)
			}
		}
	}
	return strings.Join(homes, ";")
}

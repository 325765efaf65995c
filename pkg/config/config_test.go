package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, workspace, name, content string) {
	t.Helper()
	dir := filepath.Join(workspace, ConfigsDirName)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestLoadTools(t *testing.T) {
	ws := t.TempDir()
	writeManifest(t, ws, "tools.yml", `
vscode:
  dir: vscode
  pattern: VSCode-win32-x64-*
  type: zip
  source: https://example.com/vscode.zip
  add_home_path_to_env: true
  home_path_of:
    - code.cmd
javaJDK11.0.18:
  dir: java/jdk11
  pattern: jdk-*
  type: zip
`)

	tools, err := LoadTools(ws)
	require.NoError(t, err)
	require.Len(t, tools, 2)

	vscode := tools["vscode"]
	assert.Equal(t, "VSCode-win32-x64-*.zip", vscode.FilePattern())
	assert.Equal(t, ".zip", vscode.ArchiveSuffix())
	assert.Equal(t, "https://example.com/vscode.zip", vscode.Source)
	assert.True(t, vscode.AddHomePathToEnv)
	assert.Equal(t, []string{"code.cmd"}, vscode.HomePathOf)
}

func TestLoadToolsMissingManifest(t *testing.T) {
	_, err := LoadTools(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "manifest not found")
}

func TestToolsNamesSorted(t *testing.T) {
	tools := Tools{"c": {}, "a": {}, "b": {}}
	assert.Equal(t, []string{"a", "b", "c"}, tools.Names())
}

func TestToolsNamesWithPrefixDescending(t *testing.T) {
	tools := Tools{
		"javaJDK11.0.18": {},
		"javaJDK8.0.362": {},
		"python":         {},
	}
	// Descending string order puts the 8 runtime first; the caller relies on
	// the newest-named entry leading, which holds for same-width names.
	got := tools.NamesWithPrefix("java")
	assert.Equal(t, []string{"javaJDK8.0.362", "javaJDK11.0.18"}, got)
	assert.Empty(t, tools.NamesWithPrefix("ruby"))
}

func TestLoadPip(t *testing.T) {
	ws := t.TempDir()
	writeManifest(t, ws, "pip.yml", "whls:\n  - zowe-core-for-zowe-sdk\n  - requests\n")

	pip, err := LoadPip(ws)
	require.NoError(t, err)
	assert.Equal(t, []string{"zowe-core-for-zowe-sdk", "requests"}, pip.Whls)
}

func TestLoadExtensions(t *testing.T) {
	ws := t.TempDir()
	writeManifest(t, ws, "extensions.yml", `
ibm:
  - zopeneditor: 4.2.1
zowe:
  - vscode-extension-for-zowe: 2.18.0
`)

	exts, err := LoadExtensions(ws)
	require.NoError(t, err)
	assert.Equal(t, []string{"ibm", "zowe"}, exts.Publishers())
	require.Len(t, exts["ibm"], 1)
	assert.Equal(t, "4.2.1", exts["ibm"][0]["zopeneditor"])
}

func TestLoadInit(t *testing.T) {
	ws := t.TempDir()
	writeManifest(t, ws, "init.yml", "default:\n  workspace: mainframe.code-workspace\n  locale: zh-tw\n")

	initCfg, err := LoadInit(ws)
	require.NoError(t, err)
	assert.Equal(t, "mainframe.code-workspace", initCfg.Default.Workspace)
	assert.Equal(t, "zh-tw", initCfg.Default.Locale)
}

func TestLoadBuild(t *testing.T) {
	ws := t.TempDir()
	writeManifest(t, ws, "build.yml", `
release:
  name: VSCode4z
  version: 2.6.0
  exclude_dirs:
    - .git
  exclude_files:
    - "*.zip"
`)

	build, err := LoadBuild(ws)
	require.NoError(t, err)
	assert.Equal(t, "VSCode4z", build.Release.Name)
	assert.Equal(t, "2.6.0", build.Release.Version)
	assert.Equal(t, []string{".git"}, build.Release.ExcludeDirs)
	assert.Equal(t, []string{"*.zip"}, build.Release.ExcludeFiles)
}

func TestMajorVersion(t *testing.T) {
	assert.Equal(t, "11", MajorVersion("javaJDK11.0.18"))
	assert.Equal(t, "8", MajorVersion("javaJDK8.0.362"))
	assert.Equal(t, "17", MajorVersion("java17"))
	assert.Equal(t, "", MajorVersion("python"))
}

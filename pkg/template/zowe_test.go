package template

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const zoweTemplate = `{
	"host": "_HOST_",
	"user": "_USER_",
	"password": "_PASSWORD_",
	"zosmfPort": "_ZOSMF_PORT_",
	"tsoCodepage": "_TSO_CODEPAGE_",
	"sshPort": "_SSH_PORT_",
	"ftpPort": "_FTP_PORT_",
	"rsePort": "_RSE_PORT_",
	"rseEncoding": "_RSE_ENCODING_",
	"debugPort": "_DEBUG_PORT_"
}`

func TestApplyConnection(t *testing.T) {
	path := filepath.Join(t.TempDir(), ZoweConfigName)
	writeFile(t, path, zoweTemplate)

	params := DefaultConnectionParams()
	params.Host = "mf.example.com"
	params.User = "ibmuser"
	params.Password = "secret"

	require.NoError(t, ApplyConnection(path, params))
	got := readFile(t, path)

	assert.Contains(t, got, `"host": "mf.example.com"`)
	assert.Contains(t, got, `"user": "ibmuser"`)
	assert.Contains(t, got, `"password": "secret"`)
	// Quoted numeric placeholders lose their quotes so the ports stay numbers.
	assert.Contains(t, got, `"zosmfPort": 443`)
	assert.Contains(t, got, `"sshPort": 22`)
	assert.Contains(t, got, `"ftpPort": 21`)
	assert.Contains(t, got, `"rsePort": 6800`)
	assert.Contains(t, got, `"debugPort": 8143`)
	// Codepage and encoding placeholders are bare and stay quoted.
	assert.Contains(t, got, `"tsoCodepage": "1047"`)
	assert.Contains(t, got, `"rseEncoding": "IBM-937"`)
	assert.NotContains(t, got, "_HOST_")
}

func TestBackupAndRestoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, ZoweConfigName)
	writeFile(t, configPath, "pristine")

	backup, err := Backup(configPath)
	require.NoError(t, err)
	assert.FileExists(t, backup)

	writeFile(t, configPath, "templated")
	require.NoError(t, RestoreLatestBackup(dir))

	assert.Equal(t, "pristine", readFile(t, configPath))
	leftovers, err := filepath.Glob(filepath.Join(dir, "zowe.config.backup_*.json"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestRestoreLatestBackupPicksNewestAndRemovesAll(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ZoweConfigName), "live")
	writeFile(t, filepath.Join(dir, "zowe.config.backup_20240101_000000.json"), "older")
	writeFile(t, filepath.Join(dir, "zowe.config.backup_20250101_000000.json"), "newer")

	require.NoError(t, RestoreLatestBackup(dir))

	assert.Equal(t, "newer", readFile(t, filepath.Join(dir, ZoweConfigName)))
	leftovers, err := filepath.Glob(filepath.Join(dir, "zowe.config.backup_*.json"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestRestoreLatestBackupNoBackups(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ZoweConfigName), "live")

	require.NoError(t, RestoreLatestBackup(dir))
	assert.Equal(t, "live", readFile(t, filepath.Join(dir, ZoweConfigName)))
}

func TestApplySettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	writeFile(t, path, `{
	"workspace": "_WORKSPACE_",
	"workspaceUri": "_WORKSPACEURI_",
	"javaHome": "_JAVAHOME_",
	"venvHome": "_PYTHON_VENV_HOME_",
	"venvExec": "_PYTHON_VENV_EXEC_",
	"zapp": "_ZAPP_SCHEMA_URI_",
	"runtimes": ["_JAVA_RUNTIMES_"]
}`)

	values := SettingsValues{
		Workspace: `C:\dev\ws`,
		JavaHome:  `C:\dev\ws\java\jdk11`,
		VenvHome:  `C:\dev\ws\python\venv`,
		VenvExec:  `C:\dev\ws\python\venv\Scripts\python.exe`,
		SchemaURIs: map[string]string{
			"_ZAPP_SCHEMA_URI_": "file:///C:/dev/ws/workspace/zapp-schema-1.2.json",
		},
		Runtimes: []RuntimeEntry{
			{Name: "JavaSE-11", Path: `C:\dev\ws\java\jdk11`},
		},
	}
	require.NoError(t, ApplySettings(path, values))
	got := readFile(t, path)

	assert.Contains(t, got, `"workspace": "C:\\dev\\ws"`)
	assert.Contains(t, got, `"workspaceUri": "file:///C:/dev/ws"`)
	assert.Contains(t, got, `"javaHome": "C:\\dev\\ws\\java\\jdk11"`)
	assert.Contains(t, got, `"zapp": "file:///C:/dev/ws/workspace/zapp-schema-1.2.json"`)
	assert.Contains(t, got, `{"name":"JavaSE-11","path":"C:\\dev\\ws\\java\\jdk11"}`)
	assert.NotContains(t, got, "_JAVA_RUNTIMES_")
}

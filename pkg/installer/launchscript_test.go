package installer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertAfterSetlocal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "code.cmd")
	writeFile(t, path, "@echo off\r\nsetlocal\r\ncall something\r\nendlocal\r\n")

	insertions := []string{
		`set "PATH=C:\tools;%PATH%"`,
		`set "JAVA_HOME=C:\java"`,
	}
	require.NoError(t, InsertAfterSetlocal(path, insertions))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"@echo off\r\n"+
			"setlocal\r\n"+
			`set "PATH=C:\tools;%PATH%"`+"\r\n"+
			`set "JAVA_HOME=C:\java"`+"\r\n"+
			"call something\r\n"+
			"endlocal\r\n",
		string(got))
}

func TestInsertAfterSetlocalOnlyFirstOccurrence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "code.cmd")
	writeFile(t, path, "setlocal\r\nbody\r\nsetlocal\r\n")

	require.NoError(t, InsertAfterSetlocal(path, []string{"inserted"}))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "setlocal\r\ninserted\r\nbody\r\nsetlocal\r\n", string(got))
}

func TestInsertAfterSetlocalNoSetlocal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.cmd")
	content := "@echo off\r\ncall something\r\n"
	writeFile(t, path, content)

	require.NoError(t, InsertAfterSetlocal(path, []string{"inserted"}))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, string(got))
}

func TestInsertAfterSetlocalMissingFile(t *testing.T) {
	err := InsertAfterSetlocal(filepath.Join(t.TempDir(), "absent.cmd"), []string{"x"})
	require.Error(t, err)
}

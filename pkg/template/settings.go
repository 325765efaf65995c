// pkg/template/settings.go - stamps workspace-dependent values into the editor's
// settings file.

package template

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nicholas-yahung-chien/ibm-vscode-4-z/pkg/paths"
)

// Placeholder tokens in the shipped settings.json template. Each is unique in
// the file and replaced exactly once per run.
const (
	TokenWorkspace    = "_WORKSPACE_"
	TokenWorkspaceURI = "_WORKSPACEURI_"
	TokenJavaHome     = "_JAVAHOME_"
	TokenVenvHome     = "_PYTHON_VENV_HOME_"
	TokenVenvExec     = "_PYTHON_VENV_EXEC_"
	TokenRuntimes     = "_JAVA_RUNTIMES_"
)

// RuntimeEntry is one managed-runtime row for the editor's runtime list.
type RuntimeEntry struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// SettingsValues carries everything ApplySettings stamps into the settings
// file. SchemaURIs maps a placeholder token to its resolved file URI.
type SettingsValues struct {
	Workspace  string
	JavaHome   string
	VenvHome   string
	VenvExec   string
	SchemaURIs map[string]string
	Runtimes   []RuntimeEntry
}

// ApplySettings substitutes every placeholder in the settings file at path.
// The file must already exist; a missing settings file is an error the caller
// treats as fatal.
func ApplySettings(path string, v SettingsValues) error {
	// Backslashes double up so the path is a valid JSON string once embedded.
	subs := []struct{ token, replacement string }{
		{TokenWorkspace, paths.EscapeBackslashes(v.Workspace)},
		{TokenWorkspaceURI, paths.FileURI(v.Workspace)},
		{TokenJavaHome, paths.EscapeBackslashes(v.JavaHome)},
		{TokenVenvHome, paths.EscapeBackslashes(v.VenvHome)},
		{TokenVenvExec, paths.EscapeBackslashes(v.VenvExec)},
	}
	for _, s := range subs {
		if err := ReplaceInFile(path, s.token, s.replacement); err != nil {
			return err
		}
	}

	for token, uri := range v.SchemaURIs {
		if err := ReplaceInFile(path, token, uri); err != nil {
			return err
		}
	}

	if len(v.Runtimes) > 0 {
		runtimeJSON, err := marshalRuntimes(v.Runtimes)
		if err != nil {
			return err
		}
		// The template holds a quoted placeholder standing in for the whole
		// array body; the quotes are part of the pattern so the substituted
		// file stays valid JSON.
		if err := ReplaceInFile(path, `"`+TokenRuntimes+`"`, runtimeJSON); err != nil {
			return err
		}
	}
	return nil
}

func marshalRuntimes(entries []RuntimeEntry) (string, error) {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		b, err := json.Marshal(e)
		if err != nil {
			return "", fmt.Errorf("marshaling runtime %s: %w", e.Name, err)
		}
		parts = append(parts, string(b))
	}
	return strings.Join(parts, ",\n"), nil
}

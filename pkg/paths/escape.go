// pkg/paths/escape.go - path-to-text transforms for templated configuration files.

package paths

import (
	"net/url"
	"strings"
)

// EscapeBackslashes doubles the backslashes in a Windows path so it can be
// embedded in a JSON string.
func EscapeBackslashes(path string) string {
	return strings.ReplaceAll(path, `\`, `\\`)
}

// FileURI converts a Windows path string into a percent-encoded file URI,
// e.g. `C:\dev ws` becomes `file:///C:/dev%20ws`. This is a pure string
// transform so it behaves identically on every build platform.
func FileURI(path string) string {
	slashed := strings.ReplaceAll(path, `\`, "/")
	slashed = strings.TrimPrefix(slashed, "/")
	u := url.URL{Scheme: "file", Path: "/" + slashed}
	return u.String()
}

// pkg/installer/launchscript.go - environment bootstrap insertion into the
// editor's batch launch script.

package installer

import (
	"fmt"
	"os"
	"strings"
)

// InsertAfterSetlocal inserts the given lines immediately after the first
// `setlocal` line of the batch script at path. Only the first occurrence
// triggers an insertion; a script without a setlocal line is left unchanged.
// The file is written back with CRLF endings, as batch scripts expect.
func InsertAfterSetlocal(path string, insertions []string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	lines := strings.Split(strings.ReplaceAll(string(content), "\r\n", "\n"), "\n")
	out := make([]string, 0, len(lines)+len(insertions))
	inserted := false
	for _, line := range lines {
		out = append(out, line)
		if !inserted && strings.EqualFold(strings.TrimSpace(line), "setlocal") {
			out = append(out, insertions...)
			inserted = true
		}
	}

	updated := strings.Join(out, "\r\n")
	if err := os.WriteFile(path, []byte(updated), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

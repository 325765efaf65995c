// pkg/template/replace.go - whole-file regex substitution.

package template

import (
	"fmt"
	"os"
	"regexp"

	"github.com/nicholas-yahung-chien/ibm-vscode-4-z/pkg/logging"
)

// ReplaceInFile reads path as text, replaces every occurrence of the regexp
// pattern with replacement, and writes the result back in place.
//
// The write is NOT atomic: a crash mid-write can leave the file truncated.
// Acceptable for this offline, single-user tool; callers needing atomicity
// should write to a temporary file and rename.
func ReplaceInFile(path, pattern, replacement string) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return fmt.Errorf("bad pattern %q: %w", pattern, err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	// Literal replacement: substituted values (paths, passwords) must never be
	// reinterpreted as $-expansions.
	updated := re.ReplaceAllLiteral(content, []byte(replacement))
	if err := os.WriteFile(path, updated, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	logging.Debug("Substituted in file", "file", path, "pattern", pattern)
	return nil
}

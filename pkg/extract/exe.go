// pkg/extract/exe.go - silent execution of self-extracting tool archives.

package extract

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/nicholas-yahung-chien/ibm-vscode-4-z/pkg/progress"
)

// SelfExtractingTimeout bounds a silent installer run.
const SelfExtractingTimeout = 15 * time.Minute

// SelfExtracting runs an installer-style archive with silent/auto-accept flags
// and an explicit output directory. No normalization step follows: these
// installers lay their payload down without a wrapper folder.
func SelfExtracting(ctx context.Context, exePath, destDir string) error {
	argv := []string{exePath, "/S", "-y", fmt.Sprintf("-o%s", destDir)}
	return progress.Run(ctx,
		fmt.Sprintf("Extracting %s", filepath.Base(exePath)),
		destDir, argv, SelfExtractingTimeout)
}

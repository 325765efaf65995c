//go:build !windows

package process

import (
	"runtime"

	"github.com/nicholas-yahung-chien/ibm-vscode-4-z/pkg/logging"
)

// LogHostInfo records basic host identity on non-Windows builds.
func LogHostInfo() {
	logging.Info("Host environment", "os", runtime.GOOS, "arch", runtime.GOARCH)
}

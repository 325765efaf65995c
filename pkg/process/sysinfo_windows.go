//go:build windows

// pkg/process/sysinfo_windows.go - host survey logged at the start of a run.

package process

import (
	"github.com/yusufpapurcu/wmi"

	"github.com/nicholas-yahung-chien/ibm-vscode-4-z/pkg/logging"
)

type win32OperatingSystem struct {
	Caption        string
	Version        string
	OSArchitecture string
}

// LogHostInfo records the operating system identity in the session log so an
// install log can be tied back to the machine it ran on. Best-effort: WMI
// failures only produce a debug line.
func LogHostInfo() {
	var results []win32OperatingSystem
	q := wmi.CreateQuery(&results, "")
	if err := wmi.Query(q, &results); err != nil || len(results) == 0 {
		logging.Debug("Unable to query operating system info", "error", err)
		return
	}
	os := results[0]
	logging.Info("Host environment",
		"os", os.Caption,
		"version", os.Version,
		"arch", os.OSArchitecture)
}

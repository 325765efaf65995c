// pkg/process/process.go - terminating processes that hold locks on files the
// pipeline needs to replace.

package process

import (
	"strings"

	"github.com/shirou/gopsutil/v3/process"

	"github.com/nicholas-yahung-chien/ibm-vscode-4-z/pkg/logging"
)

// KillByName force-terminates every running process whose image name matches
// one of names (case-insensitive). The editor relaunches itself after an
// extension install and keeps extension files locked; killing it between
// installs releases the locks. No matching process is not an error.
func KillByName(names ...string) {
	procs, err := process.Processes()
	if err != nil {
		logging.Warn("Unable to enumerate processes", "error", err)
		return
	}

	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[strings.ToLower(n)] = true
	}

	for _, p := range procs {
		name, err := p.Name()
		if err != nil {
			continue
		}
		if !wanted[strings.ToLower(name)] {
			continue
		}
		if err := p.Kill(); err != nil {
			logging.Debug("Unable to terminate process", "name", name, "pid", p.Pid, "error", err)
			continue
		}
		logging.Info("Terminated process", "name", name, "pid", p.Pid)
	}
}

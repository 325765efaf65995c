// pkg/pipeline/pipeline.go - the staged runner: an ordered list of named
// phases, each gated by a user confirmation prompt unless the run is
// non-interactive.
//
// Phases are strictly sequential and never re-entrant within one invocation.
// The first phase error aborts the run; batched sub-operation failures inside
// a phase are the phase's own business.

package pipeline

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/nicholas-yahung-chien/ibm-vscode-4-z/pkg/config"
	"github.com/nicholas-yahung-chien/ibm-vscode-4-z/pkg/logging"
)

// Context carries the workspace root, the loaded manifests and the outputs
// prior phases leave behind for later ones. The workspace root is fixed for
// the whole run; phases derive absolute paths from it and never change the
// process working directory.
type Context struct {
	Workspace  string
	Tools      config.Tools
	Pip        *config.Pip
	Extensions config.Extensions
	Init       *config.Init
	ToolFiles  map[string]string // tool name -> discovered archive base name
	JavaHome   string            // runtime home recorded by the extraction phase
}

// Phase is one ordered, confirmable unit of work.
type Phase struct {
	Name    string
	Confirm string
	Run     func(*Context) error
}

// Runner executes phases in order with an optional confirmation gate before
// each one.
type Runner struct {
	AutoContinue bool
	In           io.Reader
	Out          io.Writer

	reader *bufio.Reader
}

// NewRunner returns a Runner reading confirmations from stdin.
func NewRunner(autoContinue bool) *Runner {
	return &Runner{AutoContinue: autoContinue, In: os.Stdin, Out: os.Stdout}
}

// Run executes each phase in order. The confirmation gate prints the phase's
// message and waits for Enter; with AutoContinue set it logs and proceeds
// immediately. The first error stops the run.
func (r *Runner) Run(ctx *Context, phases []Phase) error {
	for _, phase := range phases {
		r.Pause(phase.Confirm)
		logging.Info("Phase starting", "phase", phase.Name)
		if err := phase.Run(ctx); err != nil {
			return fmt.Errorf("phase %s: %w", phase.Name, err)
		}
		logging.Info("Phase complete", "phase", phase.Name)
	}
	return nil
}

// Pause shows a message and waits for Enter unless the run is
// non-interactive.
func (r *Runner) Pause(message string) {
	if message == "" {
		return
	}
	if r.AutoContinue {
		fmt.Fprintf(r.Out, "%s (continuing automatically)\n\n", message)
		return
	}
	fmt.Fprintf(r.Out, "%s (press Enter to continue)\n", message)
	// One reader for the Runner's lifetime; a throwaway reader per gate would
	// drop input it buffered past the first newline.
	if r.reader == nil {
		r.reader = bufio.NewReader(r.In)
	}
	_, _ = r.reader.ReadString('\n')
}

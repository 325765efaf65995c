// cmd/vz4install/main.go

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/nicholas-yahung-chien/ibm-vscode-4-z/pkg/config"
	"github.com/nicholas-yahung-chien/ibm-vscode-4-z/pkg/installer"
	"github.com/nicholas-yahung-chien/ibm-vscode-4-z/pkg/logging"
	"github.com/nicholas-yahung-chien/ibm-vscode-4-z/pkg/pipeline"
	"github.com/nicholas-yahung-chien/ibm-vscode-4-z/pkg/process"
	"github.com/nicholas-yahung-chien/ibm-vscode-4-z/pkg/shortcut"
	"github.com/nicholas-yahung-chien/ibm-vscode-4-z/pkg/version"
)

func defaultWorkspace() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

func main() {
	logging.EnableANSIConsole()

	workspace := pflag.String("workspace", "", "Workspace directory (default: the executable's directory).")
	yes := pflag.BoolP("yes", "y", false, "Run every step without waiting for confirmation.")
	versionFlag := pflag.Bool("version", false, "Print the version and exit.")
	var verbosity int
	pflag.CountVarP(&verbosity, "verbose", "v", "Increase verbosity (e.g. -v, -vv)")
	pflag.Parse()

	if *versionFlag {
		if verbosity > 0 {
			version.PrintFull()
		} else {
			version.Print()
		}
		os.Exit(0)
	}

	ws := *workspace
	if ws == "" {
		ws = defaultWorkspace()
	}
	var err error
	if ws, err = filepath.Abs(ws); err != nil {
		fmt.Fprintf(os.Stderr, "Unable to resolve workspace: %v\n", err)
		os.Exit(1)
	}

	level := logging.LevelInfo
	if verbosity > 0 {
		level = logging.LevelDebug
	}
	if err := logging.Init(logging.Config{
		BaseDir:       filepath.Join(ws, "logs"),
		Level:         level,
		EnableConsole: true,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		os.Exit(1)
	}
	defer logging.CloseLogger()

	logging.Info("Workspace", "path", ws)
	process.LogHostInfo()

	tools, err := config.LoadTools(ws)
	if err != nil {
		logging.Fatal("Loading tool manifest failed", "error", err)
	}
	pip, err := config.LoadPip(ws)
	if err != nil {
		logging.Fatal("Loading pip manifest failed", "error", err)
	}
	extensions, err := config.LoadExtensions(ws)
	if err != nil {
		logging.Fatal("Loading extension manifest failed", "error", err)
	}
	initCfg, err := config.LoadInit(ws)
	if err != nil {
		logging.Fatal("Loading init manifest failed", "error", err)
	}

	ctx := &pipeline.Context{
		Workspace:  ws,
		Tools:      tools,
		Pip:        pip,
		Extensions: extensions,
		Init:       initCfg,
	}

	runner := pipeline.NewRunner(*yes)
	if err := runner.Run(ctx, installer.Phases(shortcut.New())); err != nil {
		logging.Fatal("Install aborted", "error", err)
	}
	logging.Info("Install complete", "workspace", ws)
}

// cmd/vz4build/main.go

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/nicholas-yahung-chien/ibm-vscode-4-z/pkg/buildpkg"
	"github.com/nicholas-yahung-chien/ibm-vscode-4-z/pkg/config"
	"github.com/nicholas-yahung-chien/ibm-vscode-4-z/pkg/download"
	"github.com/nicholas-yahung-chien/ibm-vscode-4-z/pkg/logging"
	"github.com/nicholas-yahung-chien/ibm-vscode-4-z/pkg/version"
)

// distDirName holds the helper executables staged for inclusion in a release.
const distDirName = "dist"

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
	releaseVersion := pflag.String("release-version", "", "Release version, e.g. 1.2.3 (default: the build manifest's version).")
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

	build, err := config.LoadBuild(ws)
	if err != nil {
		logging.Fatal("Loading build manifest failed", "error", err)
	}
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

	if err := download.Artifacts(ws, tools, pip, extensions); err != nil {
		logging.Fatal("Download stage failed", "error", err)
	}

	distDir := filepath.Join(ws, distDirName)
	if _, err := os.Stat(distDir); err == nil {
		if err := buildpkg.CopyExecutables(distDir, ws); err != nil {
			logging.Fatal("Staging helper executables failed", "error", err)
		}
	} else {
		logging.Warn("No staged executables to include", "dir", distDir)
	}

	rel := build.Release
	if *releaseVersion != "" {
		rel.Version = *releaseVersion
	}
	outZip := filepath.Join(ws, fmt.Sprintf("%s-%s.zip", rel.Name, rel.Version))
	if err := buildpkg.CompressDirectory(ws, outZip, rel.ExcludeDirs, rel.ExcludeFiles); err != nil {
		logging.Fatal("Packaging failed", "error", err)
	}
	logging.Info("Release packaged", "zip", outZip)
}

// pkg/config/config.go - declarative manifests that parameterize the pipeline.
//
// Five YAML manifests live under the workspace's configs directory:
// tools.yml (tool descriptors), pip.yml (python wheels), extensions.yml
// (editor extensions by publisher), init.yml (workspace-open defaults) and
// build.yml (release packaging). All are read-only for the duration of a run;
// a missing manifest is an error the entry points treat as fatal.

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	goversion "github.com/hashicorp/go-version"
	"gopkg.in/yaml.v3"
)

// ConfigsDirName is the manifest directory under the workspace root.
const ConfigsDirName = "configs"

// Tool describes one installable component: where its archive lives, how to
// recognize the archive file, and how it participates in the launch
// environment.
type Tool struct {
	Dir              string   `yaml:"dir"`
	Pattern          string   `yaml:"pattern"`
	Type             string   `yaml:"type"` // "zip" or "exe" (self-extracting)
	Source           string   `yaml:"source"`
	AddHomePathToEnv bool     `yaml:"add_home_path_to_env"`
	HomePathOf       []string `yaml:"home_path_of"`
}

// FilePattern returns the glob matching the tool's archive file.
func (t Tool) FilePattern() string {
	return fmt.Sprintf("%s.%s", t.Pattern, t.Type)
}

// ArchiveSuffix returns the archive extension with its leading dot.
func (t Tool) ArchiveSuffix() string {
	return "." + t.Type
}

// Tools maps tool name to its descriptor.
type Tools map[string]Tool

// Names returns every tool name in ascending order for deterministic
// iteration.
func (ts Tools) Names() []string {
	names := make([]string, 0, len(ts))
	for name := range ts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NamesWithPrefix returns tool names sharing a prefix in descending order, so
// the newest-named runtime comes first.
func (ts Tools) NamesWithPrefix(prefix string) []string {
	var names []string
	for name := range ts {
		if len(name) >= len(prefix) && name[:len(prefix)] == prefix {
			names = append(names, name)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	return names
}

// Pip lists the python wheel packages installed into the isolated environment.
type Pip struct {
	Whls []string `yaml:"whls"`
}

// Extensions maps a publisher to its extension id → version entries.
type Extensions map[string][]map[string]string

// Publishers returns the publishers in ascending order.
func (e Extensions) Publishers() []string {
	pubs := make([]string, 0, len(e))
	for p := range e {
		pubs = append(pubs, p)
	}
	sort.Strings(pubs)
	return pubs
}

// Init holds the defaults used when opening the provisioned workspace.
type Init struct {
	Default struct {
		Workspace string `yaml:"workspace"`
		Locale    string `yaml:"locale"`
	} `yaml:"default"`
}

// Build holds release packaging settings.
type Build struct {
	Release struct {
		Name         string   `yaml:"name"`
		Version      string   `yaml:"version"`
		ExcludeDirs  []string `yaml:"exclude_dirs"`
		ExcludeFiles []string `yaml:"exclude_files"`
	} `yaml:"release"`
}

func readManifest(workspace, name string, out interface{}) error {
	path := filepath.Join(workspace, ConfigsDirName, name)
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("manifest not found: %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// LoadTools reads tools.yml from the workspace's configs directory.
func LoadTools(workspace string) (Tools, error) {
	var tools Tools
	if err := readManifest(workspace, "tools.yml", &tools); err != nil {
		return nil, err
	}
	return tools, nil
}

// LoadPip reads pip.yml.
func LoadPip(workspace string) (*Pip, error) {
	var pip Pip
	if err := readManifest(workspace, "pip.yml", &pip); err != nil {
		return nil, err
	}
	return &pip, nil
}

// LoadExtensions reads extensions.yml.
func LoadExtensions(workspace string) (Extensions, error) {
	var exts Extensions
	if err := readManifest(workspace, "extensions.yml", &exts); err != nil {
		return nil, err
	}
	return exts, nil
}

// LoadInit reads init.yml.
func LoadInit(workspace string) (*Init, error) {
	var init Init
	if err := readManifest(workspace, "init.yml", &init); err != nil {
		return nil, err
	}
	return &init, nil
}

// LoadBuild reads build.yml.
func LoadBuild(workspace string) (*Build, error) {
	var build Build
	if err := readManifest(workspace, "build.yml", &build); err != nil {
		return nil, err
	}
	return &build, nil
}

var versionRun = regexp.MustCompile(`\d+(?:\.\d+)*`)

// MajorVersion extracts the leading version run embedded in a tool name and
// returns its major segment; "javaJDK11.0.18" yields "11". Empty when the name
// carries no version run.
func MajorVersion(name string) string {
	run := versionRun.FindString(name)
	if run == "" {
		return ""
	}
	v, err := goversion.NewVersion(run)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%d", v.Segments()[0])
}

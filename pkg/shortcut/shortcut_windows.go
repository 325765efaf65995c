//go:build windows

// pkg/shortcut/shortcut_windows.go - shortcut creation through the WScript.Shell
// COM object.

package shortcut

import (
	"fmt"

	"github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"
)

type shellCreator struct{}

// New returns a Creator backed by WScript.Shell.
func New() Creator {
	return shellCreator{}
}

func (shellCreator) Available() bool { return true }

func (shellCreator) Create(spec Spec) error {
	if err := ole.CoInitialize(0); err != nil {
		return fmt.Errorf("initializing COM: %w", err)
	}
	defer ole.CoUninitialize()

	unknown, err := oleutil.CreateObject("WScript.Shell")
	if err != nil {
		return fmt.Errorf("creating WScript.Shell: %w", err)
	}
	defer unknown.Release()

	shell, err := unknown.QueryInterface(ole.IID_IDispatch)
	if err != nil {
		return fmt.Errorf("querying shell interface: %w", err)
	}
	defer shell.Release()

	link, err := oleutil.CallMethod(shell, "CreateShortcut", spec.LinkPath)
	if err != nil {
		return fmt.Errorf("creating shortcut object: %w", err)
	}
	linkDisp := link.ToIDispatch()
	defer linkDisp.Release()

	props := []struct {
		name  string
		value string
	}{
		{"TargetPath", spec.Target},
		{"Arguments", spec.Arguments},
		{"WorkingDirectory", spec.WorkingDir},
		{"IconLocation", spec.IconLocation},
	}
	for _, p := range props {
		if p.value == "" {
			continue
		}
		if _, err := oleutil.PutProperty(linkDisp, p.name, p.value); err != nil {
			return fmt.Errorf("setting %s: %w", p.name, err)
		}
	}

	if _, err := oleutil.CallMethod(linkDisp, "Save"); err != nil {
		return fmt.Errorf("saving shortcut: %w", err)
	}
	return nil
}

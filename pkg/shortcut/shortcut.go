// pkg/shortcut/shortcut.go - optional launcher-shortcut capability.
//
// Shortcut creation depends on shell COM integration that may be unavailable
// on the host; callers branch on Available() and skip cleanly instead of
// failing the run.

package shortcut

// Spec describes the shortcut to create. IconLocation uses the Windows
// "path,index" convention.
type Spec struct {
	LinkPath     string
	Target       string
	Arguments    string
	WorkingDir   string
	IconLocation string
}

// Creator creates launcher shortcuts when the host supports it.
type Creator interface {
	Available() bool
	Create(Spec) error
}

// Unavailable is the no-op Creator used when shell integration is missing.
type Unavailable struct{}

// Available reports that shortcut creation is not supported.
func (Unavailable) Available() bool { return false }

// Create does nothing.
func (Unavailable) Create(Spec) error { return nil }

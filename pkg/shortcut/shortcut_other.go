//go:build !windows

package shortcut

// New returns the Unavailable Creator on hosts without shell COM integration.
func New() Creator {
	return Unavailable{}
}

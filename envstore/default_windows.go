//go:build windows

package envstore

// New returns the persistent environment store for the current platform.
func New() Store {
	return NewRegistryStore()
}

//go:build !windows

// Package monitor enumerates displays and picks the surface extent from them.
package monitor

// ListMonitors returns ErrUnsupported on non-Windows platforms; callers fall
// back to configured or default surface sizes.
func ListMonitors() ([]Monitor, error) {
	return nil, ErrUnsupported
}

//go:build darwin

package uibind

import "golang.org/x/sys/unix"

// hostOSRelease returns the macOS product version, e.g. "13.4.1".
func hostOSRelease() string {
	v, err := unix.Sysctl("kern.osproductversion")
	if err != nil {
		return ""
	}
	return v
}

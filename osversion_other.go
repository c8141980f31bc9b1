//go:build !darwin

package uibind

// hostOSRelease is only meaningful where hard OS/toolkit gates exist.
func hostOSRelease() string {
	return ""
}

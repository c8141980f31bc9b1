//go:build !windows && !linux && !darwin

package uibind

import (
	"fmt"
	"runtime"
)

// No registry and no sourced environment file here: initialization fails
// outright rather than degrading to partial functionality.
func newBackend(StoreOptions) (storeBackend, error) {
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedOS, runtime.GOOS)
}

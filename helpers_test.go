//go:build linux || darwin

package uibind_test

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/lixenwraith/uibind"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// cleanupKeys removes every canonical preference variable for the given
// prefix when the test finishes, so resolution persist-back and Set calls
// cannot leak into other tests.
func cleanupKeys(t *testing.T, prefix string) {
	t.Helper()
	t.Cleanup(func() {
		for _, key := range uibind.Keys() {
			os.Unsetenv(prefix + key)
		}
	})
}

// newStore builds a store against a throwaway environment file.
func newStore(t *testing.T, prefix string) *uibind.Store {
	t.Helper()
	cleanupKeys(t, prefix)

	store, err := uibind.NewStore(uibind.StoreOptions{
		Prefix:  prefix,
		EnvFile: filepath.Join(t.TempDir(), "environment.sh"),
		Logger:  discardLogger(),
	})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return store
}

// newEnvBuilder returns a builder wired to a throwaway environment file, a
// private registry, and a silent logger.
func newEnvBuilder(t *testing.T, prefix string, registry *uibind.Registry) *uibind.Builder {
	t.Helper()
	cleanupKeys(t, prefix)

	return uibind.NewBuilder().
		WithPrefix(prefix).
		WithEnvFile(filepath.Join(t.TempDir(), "environment.sh")).
		WithRegistry(registry).
		WithLogger(discardLogger())
}

// fakeDriver is a scriptable binding driver.
type fakeDriver struct {
	loaded bool
	info   uibind.DriverInfo
	err    error
	opens  int
}

func (d *fakeDriver) Loaded() bool { return d.loaded }

func (d *fakeDriver) Open() (uibind.DriverInfo, error) {
	d.opens++
	if d.err != nil {
		return uibind.DriverInfo{}, d.err
	}
	return d.info, nil
}

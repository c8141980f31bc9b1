//go:build windows

package uibind

import (
	"log/slog"
	"os"
	"os/exec"
	"sync"
	"syscall"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
)

// registryLocations are consulted in order: current-user environment, then
// the machine-wide session-manager environment.
var registryLocations = []struct {
	root registry.Key
	path string
}{
	{registry.CURRENT_USER, `Environment`},
	{registry.LOCAL_MACHINE, `SYSTEM\CurrentControlSet\Control\Session Manager\Environment`},
}

// registryBackend persists preferences in the Windows registry via a
// background `setx`, so values survive for future process launches without
// blocking the current one.
type registryBackend struct {
	// overridden holds the environment names redefined in-process before
	// the store initialized. Those keep their live process value on read
	// instead of being shadowed by the registry.
	overridden map[string]bool
	logger     *slog.Logger
}

func newBackend(opts StoreOptions) (storeBackend, error) {
	forceDPIAwareness()
	return &registryBackend{
		overridden: redefinedKeys(environMap(opts.Baseline), environMap(os.Environ())),
		logger:     opts.Logger,
	}, nil
}

func (b *registryBackend) lookup(name string) (string, bool) {
	if b.overridden[name] {
		if v, ok := os.LookupEnv(name); ok {
			return v, true
		}
	}
	for _, loc := range registryLocations {
		key, err := registry.OpenKey(loc.root, loc.path, registry.QUERY_VALUE)
		if err != nil {
			continue
		}
		v, _, err := key.GetStringValue(name)
		key.Close()
		if err == nil {
			return v, true
		}
	}
	return os.LookupEnv(name)
}

// persist launches `setx` hidden and does not wait for it. The write is
// best-effort persistence for future launches only; its exit status is
// deliberately unobserved and failure to even start is not surfaced.
func (b *registryBackend) persist(name, value string) error {
	cmd := exec.Command("setx", name, value)
	cmd.SysProcAttr = &syscall.SysProcAttr{
		HideWindow:    true,
		CreationFlags: windows.CREATE_NO_WINDOW,
	}
	if err := cmd.Start(); err != nil {
		b.logger.Warn("background registry write could not start", "key", name, "error", err)
		return nil
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

var (
	dpiOnce sync.Once

	shcoreDLL = windows.NewLazySystemDLL("shcore.dll")
	user32DLL = windows.NewLazySystemDLL("user32.dll")

	procSetProcessDpiAwareness = shcoreDLL.NewProc("SetProcessDpiAwareness")
	procSetProcessDPIAware     = user32DLL.NewProc("SetProcessDPIAware")
)

// processPerMonitorDPIAware is PROCESS_PER_MONITOR_DPI_AWARE.
const processPerMonitorDPIAware = 2

// forceDPIAwareness puts the process into a DPI-aware display mode so the
// compositor does not blur-scale windows behind our back. Tries the
// per-monitor API (Windows 8.1+), falls back to the legacy one. One-time,
// idempotent, non-fatal.
func forceDPIAwareness() {
	dpiOnce.Do(func() {
		if err := procSetProcessDpiAwareness.Find(); err == nil {
			procSetProcessDpiAwareness.Call(uintptr(processPerMonitorDPIAware))
			return
		}
		if err := procSetProcessDPIAware.Find(); err == nil {
			procSetProcessDPIAware.Call()
		}
	})
}

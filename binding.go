package uibind

import (
	"fmt"
	"sort"
	"sync"
)

// Selection values for the API preference. APIAuto picks the first usable
// candidate; the others name one binding of the default candidate set.
const (
	APIAuto = "auto"
	APIQt5  = "qt5"
	APIQt6  = "qt6"
	APIGtk3 = "gtk3"
	APIGtk4 = "gtk4"
)

// Candidate describes one toolkit binding the resolver may select.
type Candidate struct {
	// Name is the canonical lower-case identifier used in the API
	// preference.
	Name string

	// DisplayName is the human-readable toolkit name.
	DisplayName string

	// MinVersion is the lowest supported binding library version. Older
	// versions resolve with a warning.
	MinVersion string

	// MinToolkitVersion is the lowest supported version of the underlying
	// toolkit runtime. Older versions resolve with a warning.
	MinToolkitVersion string
}

// DefaultCandidates returns the fixed candidate set in priority order.
func DefaultCandidates() []Candidate {
	return []Candidate{
		{Name: APIQt5, DisplayName: "Qt5", MinVersion: "5.12.0", MinToolkitVersion: "5.9.0"},
		{Name: APIQt6, DisplayName: "Qt6", MinVersion: "6.2.0", MinToolkitVersion: "6.2.0"},
		{Name: APIGtk3, DisplayName: "GTK3", MinVersion: "3.24.0", MinToolkitVersion: "3.22.0"},
		{Name: APIGtk4, DisplayName: "GTK4", MinVersion: "4.6.0", MinToolkitVersion: "4.4.0"},
	}
}

// DriverInfo reports the versions of an opened binding.
type DriverInfo struct {
	// Version of the binding library itself.
	Version string

	// ToolkitVersion of the underlying toolkit runtime.
	ToolkitVersion string
}

// Driver is implemented by toolkit binding packages, which register
// themselves in an init function (typically pulled in via blank import).
type Driver interface {
	// Loaded reports whether the binding is already initialized in this
	// process. A loaded binding wins auto selection regardless of priority
	// order, so an incompatible second toolkit is never brought up next to
	// one some other component already started.
	Loaded() bool

	// Open initializes the binding and reports its versions. Open must be
	// idempotent: opening an already-loaded binding returns its info
	// without reinitializing.
	Open() (DriverInfo, error)
}

// Registry holds the drivers available to the resolver. A registered
// driver marks its candidate as present; an unregistered candidate behaves
// like a library that is not installed.
type Registry struct {
	mu      sync.RWMutex
	drivers map[string]Driver
}

// NewRegistry returns an empty driver registry.
func NewRegistry() *Registry {
	return &Registry{drivers: make(map[string]Driver)}
}

// Register makes a driver available under the given candidate name.
// It panics if the driver is nil or the name is already taken.
func (r *Registry) Register(name string, d Driver) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if d == nil {
		panic("uibind: Register driver is nil")
	}
	if _, dup := r.drivers[name]; dup {
		panic(fmt.Sprintf("uibind: Register called twice for driver %q", name))
	}
	r.drivers[name] = d
}

// Driver returns the registered driver for name, if any.
func (r *Registry) Driver(name string) (Driver, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.drivers[name]
	return d, ok
}

// Drivers returns the registered driver names, sorted.
func (r *Registry) Drivers() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.drivers))
	for name := range r.drivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var defaultRegistry = NewRegistry()

// Register makes a driver available in the default registry.
func Register(name string, d Driver) {
	defaultRegistry.Register(name, d)
}

// DefaultRegistry returns the registry used when a Builder is given none.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

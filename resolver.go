package uibind

import (
	"fmt"
	"log/slog"
	"strings"

	goversion "github.com/hashicorp/go-version"
)

// ResolvedBinding is the immutable result of binding resolution.
type ResolvedBinding struct {
	// Name is the canonical identifier of the active candidate.
	Name string

	// DisplayName of the active candidate.
	DisplayName string

	// Version of the binding library, as reported by its driver.
	Version string

	// ToolkitVersion of the underlying toolkit runtime.
	ToolkitVersion string

	// Requested is the selection that resolution started from, lower-cased
	// ("auto" when nothing was set).
	Requested string

	// FellBack is true when a specific candidate was requested but a
	// different one ended up active.
	FellBack bool

	// Warnings raised during resolution. Warnings never alter the outcome.
	Warnings []string
}

// darwinGates lists toolkit releases that hard-require a minimum macOS
// release. Shipping past these combinations fails inside the toolkit at
// runtime, so resolution refuses them outright instead of warning.
var darwinGates = map[string][]struct{ toolkit, osMin string }{
	APIQt5: {
		{toolkit: "5.9", osMin: "10.10"},
		{toolkit: "5.11", osMin: "10.11"},
	},
}

type resolveOptions struct {
	store      *Store
	registry   *Registry
	candidates []Candidate
	logger     *slog.Logger
	goos       string
	osRelease  string
}

// resolve runs the binding selection state machine once. It reads the
// requested selection from the store, probes candidates in priority order,
// persists the resolved name back (in-process), and returns the result.
func resolve(o resolveOptions) (*ResolvedBinding, error) {
	raw, explicit := o.store.Lookup(KeyAPI)
	requested := strings.ToLower(strings.TrimSpace(raw))
	if requested == "" {
		requested = APIAuto
	}

	start := -1
	if requested == APIAuto {
		// Loaded-wins: a binding some other component already initialized
		// beats priority order.
		for i, c := range o.candidates {
			if d, ok := o.registry.Driver(c.Name); ok && d.Loaded() {
				start = i
				break
			}
		}
		if start < 0 {
			for i, c := range o.candidates {
				if _, ok := o.registry.Driver(c.Name); ok {
					start = i
					break
				}
			}
		}
		if start < 0 {
			return nil, fmt.Errorf("%w: no binding drivers are registered", ErrBindingsNotFound)
		}
	} else {
		for i, c := range o.candidates {
			if c.Name == requested {
				start = i
				break
			}
		}
		if start < 0 {
			return nil, fmt.Errorf("%w: %s=%q is not in valid options: %s",
				ErrInvalidSelection, KeyAPI, raw, strings.Join(candidateNames(o.candidates), ", "))
		}
	}

	// Open the candidate at start, advancing through the remaining fixed
	// order on failure. The order is not cyclic: candidates before start
	// are never retried.
	var (
		chosen Candidate
		info   DriverInfo
		opened bool
	)
	for i := start; i < len(o.candidates); i++ {
		c := o.candidates[i]
		d, ok := o.registry.Driver(c.Name)
		if !ok {
			continue
		}
		di, err := d.Open()
		if err != nil {
			o.logger.Debug("binding failed to open", "binding", c.Name, "error", err)
			continue
		}
		chosen, info, opened = c, di, true
		break
	}
	if !opened {
		return nil, fmt.Errorf("%w: tried %s",
			ErrBindingsNotFound, strings.Join(candidateNames(o.candidates[start:]), ", "))
	}

	if err := checkPlatformGate(o.goos, o.osRelease, chosen, info); err != nil {
		return nil, err
	}

	resolved := &ResolvedBinding{
		Name:           chosen.Name,
		DisplayName:    chosen.DisplayName,
		Version:        info.Version,
		ToolkitVersion: info.ToolkitVersion,
		Requested:      requested,
		FellBack:       requested != APIAuto && chosen.Name != requested,
	}

	warn := func(format string, args ...any) {
		msg := fmt.Sprintf(format, args...)
		resolved.Warnings = append(resolved.Warnings, msg)
		o.logger.Warn(msg, "binding", chosen.Name)
	}

	if versionBelow(info.Version, chosen.MinVersion) {
		warn("%s binding version %s is no longer supported; upgrade to %s or later",
			chosen.DisplayName, info.Version, chosen.MinVersion)
	}
	if versionBelow(info.ToolkitVersion, chosen.MinToolkitVersion) {
		warn("%s toolkit version %s is no longer supported; upgrade to %s or later",
			chosen.DisplayName, info.ToolkitVersion, chosen.MinToolkitVersion)
	}
	if resolved.FellBack && explicit {
		warn("selected binding %q could not be opened; falling back to %q",
			requested, chosen.Name)
	}

	// Same-process reads of the API key now observe the resolved choice.
	o.store.SetProcess(KeyAPI, chosen.Name)

	return resolved, nil
}

// checkPlatformGate enforces known-incompatible OS/toolkit combinations.
func checkPlatformGate(goos, osRelease string, c Candidate, info DriverInfo) error {
	if goos != "darwin" {
		return nil
	}
	gates := darwinGates[c.Name]
	if len(gates) == 0 {
		return nil
	}
	if osRelease == "" {
		osRelease = hostOSRelease()
	}
	osv, err := goversion.NewVersion(osRelease)
	if err != nil {
		return nil
	}
	tkv, err := goversion.NewVersion(info.ToolkitVersion)
	if err != nil {
		return nil
	}
	for _, g := range gates {
		if tkv.GreaterThanOrEqual(goversion.Must(goversion.NewVersion(g.toolkit))) &&
			osv.LessThan(goversion.Must(goversion.NewVersion(g.osMin))) {
			return fmt.Errorf("%w: %s %s or higher requires macOS %s or higher (running %s)",
				ErrIncompatiblePlatform, c.DisplayName, g.toolkit, g.osMin, osRelease)
		}
	}
	return nil
}

// versionBelow reports whether have is a parsable version lower than
// floor. Unparsable runtime versions are not treated as violations.
func versionBelow(have, floor string) bool {
	hv, err := goversion.NewVersion(have)
	if err != nil {
		return false
	}
	fv, err := goversion.NewVersion(floor)
	if err != nil {
		return false
	}
	return hv.LessThan(fv)
}

func candidateNames(candidates []Candidate) []string {
	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = c.Name
	}
	return names
}

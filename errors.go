package uibind

import "errors"

var (
	// ErrUnsupportedOS is returned when the current operating system has no
	// persistence mechanism (neither registry nor environment file).
	ErrUnsupportedOS = errors.New("uibind: unsupported operating system")

	// ErrInvalidSelection is returned when a requested binding name is not in
	// the candidate set, or when a persisted preference value cannot be
	// parsed. No fallback is attempted.
	ErrInvalidSelection = errors.New("uibind: invalid selection")

	// ErrBindingsNotFound is returned when no binding candidate could be
	// opened, either because none is registered or because every open
	// attempt failed.
	ErrBindingsNotFound = errors.New("uibind: no bindings could be found")

	// ErrIncompatiblePlatform is returned when the opened toolkit version is
	// known not to work on the host OS release. Continuing would fail at
	// runtime inside the toolkit, so this is never downgraded to a warning.
	ErrIncompatiblePlatform = errors.New("uibind: toolkit version incompatible with host OS release")
)

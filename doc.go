// Package uibind selects one of several mutually-exclusive GUI-toolkit
// binding implementations at process start, remembers the choice (and
// display-scaling preferences) across restarts, and converts geometry
// values into DPI-adjusted ones.
//
// Features:
//   - Deterministic binding resolution over a fixed, ordered candidate set
//     with loaded-wins auto selection and ordered fallback
//   - Minimum-version floors (warnings) and hard OS/toolkit compatibility
//     gates (errors)
//   - Persistent key/value preference store without a settings database:
//     user/machine registry plus a background `setx` on Windows, a
//     shell-sourced `export KEY=VALUE` file elsewhere
//   - DPI-aware scaling with a cached per-process factor and a deliberate
//     upward bias on .5 boundaries
//   - Settings surface for selector UIs: struct scan, snapshot, TOML
//     export/import
//   - Builder pattern for initialization
//
// Quick Start:
//
//	import (
//	    "github.com/lixenwraith/uibind"
//	    _ "example.com/bindings/qt6" // registers itself via uibind.Register
//	)
//
//	env, err := uibind.NewBuilder().
//	    WithDisplayDPI(probeDPI).
//	    Build()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println(env.Binding().DisplayName, env.Binding().Version)
//	w := env.Scaler().Dim(300) // 600 at 2x
//
// Preference Precedence (highest to lowest):
//  1. Process environment (UIBIND_API=qt6)
//  2. Persisted store (registry on Windows, environment file elsewhere)
//  3. Defaults
//
// On Windows the persisted store wins over environment variables inherited
// unchanged from the parent process; only variables redefined in-process
// before the store initialized keep their override.
//
// Concurrency:
// Resolution runs once per Env and its result is immutable. The scale
// factor is derived at most once per process and cached with an atomic,
// idempotent write; Store reads are side-effect free.
package uibind

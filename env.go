package uibind

// FontDefault marks an unset font preference.
const FontDefault = "default"

// Env is the process-wide context: the preference store, the resolved
// binding, and the scale transform. It replaces hidden global state;
// construct one at process start via Builder and pass it down.
type Env struct {
	store    *Store
	registry *Registry
	binding  *ResolvedBinding
	scaler   *Scaler
	font     string
	fontSize string
}

// Store returns the preference store.
func (e *Env) Store() *Store {
	return e.store
}

// Registry returns the driver registry resolution ran against.
func (e *Env) Registry() *Registry {
	return e.registry
}

// Binding returns a copy of the immutable resolution result.
func (e *Env) Binding() ResolvedBinding {
	b := *e.binding
	b.Warnings = append([]string(nil), e.binding.Warnings...)
	return b
}

// Scaler returns the DPI scale transform.
func (e *Env) Scaler() *Scaler {
	return e.scaler
}

// Font returns the font-family preference, case preserved, or
// FontDefault.
func (e *Env) Font() string {
	return e.font
}

// FontSize returns the font-size preference lower-cased, or FontDefault.
func (e *Env) FontSize() string {
	return e.fontSize
}

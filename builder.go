package uibind

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"
)

// Builder provides a fluent interface for constructing an Env.
type Builder struct {
	storeOpts  StoreOptions
	store      *Store
	registry   *Registry
	candidates []Candidate
	display    DisplayDPIFunc
	goos       string
	osRelease  string
	startupEnv map[string]string
	logger     *slog.Logger
}

// NewBuilder creates an Env builder with the default candidate set.
func NewBuilder() *Builder {
	return &Builder{
		candidates: DefaultCandidates(),
		goos:       runtime.GOOS,
	}
}

// WithPrefix sets the environment/registry name prefix for the store.
func (b *Builder) WithPrefix(prefix string) *Builder {
	b.storeOpts.Prefix = prefix
	return b
}

// WithEnvFile overrides the persisted environment file path on
// file-backed platforms.
func (b *Builder) WithEnvFile(path string) *Builder {
	b.storeOpts.EnvFile = path
	return b
}

// WithBaselineEnv overrides the environment the process is considered to
// have inherited, as KEY=VALUE pairs.
func (b *Builder) WithBaselineEnv(environ []string) *Builder {
	b.storeOpts.Baseline = environ
	return b
}

// WithStore uses a pre-built store instead of constructing one.
func (b *Builder) WithStore(store *Store) *Builder {
	b.store = store
	return b
}

// WithRegistry sets the driver registry. Defaults to DefaultRegistry().
func (b *Builder) WithRegistry(registry *Registry) *Builder {
	b.registry = registry
	return b
}

// WithCandidates replaces the candidate set. Order is priority order.
func (b *Builder) WithCandidates(candidates []Candidate) *Builder {
	b.candidates = candidates
	return b
}

// WithDisplayDPI sets the probe used to derive an "auto" scale factor.
func (b *Builder) WithDisplayDPI(fn DisplayDPIFunc) *Builder {
	b.display = fn
	return b
}

// WithHostPlatform overrides the detected OS and release used by the
// hard compatibility gates. Intended for tests.
func (b *Builder) WithHostPlatform(goos, release string) *Builder {
	b.goos = goos
	b.osRelease = release
	return b
}

// WithStartupEnv sets process environment variables right before binding
// resolution, e.g. knobs that stop a toolkit from applying its own
// high-DPI scaling on top of ours.
func (b *Builder) WithStartupEnv(env map[string]string) *Builder {
	b.startupEnv = env
	return b
}

// WithLogger sets the diagnostics logger. Defaults to slog.Default().
func (b *Builder) WithLogger(logger *slog.Logger) *Builder {
	b.logger = logger
	return b
}

// Build initializes the store (with its platform side effects), resolves
// the binding, and constructs the scale transform. Resolution runs once;
// the returned Env exposes the memoized result.
func (b *Builder) Build() (*Env, error) {
	logger := b.logger
	if logger == nil {
		logger = slog.Default()
	}
	registry := b.registry
	if registry == nil {
		registry = DefaultRegistry()
	}

	if len(b.candidates) == 0 {
		return nil, fmt.Errorf("uibind: candidate set is empty")
	}
	seen := make(map[string]bool, len(b.candidates))
	for _, c := range b.candidates {
		if c.Name == "" || seen[c.Name] {
			return nil, fmt.Errorf("uibind: candidate names must be unique and non-empty, got %q", c.Name)
		}
		seen[c.Name] = true
	}

	store := b.store
	if store == nil {
		opts := b.storeOpts
		opts.Logger = logger
		var err error
		if store, err = NewStore(opts); err != nil {
			return nil, err
		}
	}

	for name, value := range b.startupEnv {
		if err := os.Setenv(name, value); err != nil {
			return nil, fmt.Errorf("failed to set startup environment %s: %w", name, err)
		}
	}

	binding, err := resolve(resolveOptions{
		store:      store,
		registry:   registry,
		candidates: b.candidates,
		logger:     logger,
		goos:       b.goos,
		osRelease:  b.osRelease,
	})
	if err != nil {
		return nil, err
	}

	scaler, err := newScaler(store, b.display, logger)
	if err != nil {
		return nil, err
	}

	return &Env{
		store:    store,
		registry: registry,
		binding:  binding,
		scaler:   scaler,
		font:     store.Get(KeyFont, FontDefault),
		fontSize: strings.ToLower(store.Get(KeyFontSize, FontDefault)),
	}, nil
}

// MustBuild is like Build but panics on error.
func (b *Builder) MustBuild() *Env {
	env, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("uibind build failed: %v", err))
	}
	return env
}

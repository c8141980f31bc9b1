package uibind

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Canonical preference keys. Values are always strings; numeric or enum
// parsing happens at the call site, never in storage.
const (
	KeyAPI      = "API"
	KeyScale    = "SCALE"
	KeyFont     = "FONT"
	KeyFontSize = "FONT_SIZE"
)

// DefaultPrefix is prepended to canonical keys when they are materialized
// as environment variable or registry value names.
const DefaultPrefix = "UIBIND_"

// Keys returns the canonical preference keys in declaration order.
func Keys() []string {
	return []string{KeyAPI, KeyScale, KeyFont, KeyFontSize}
}

// startupEnviron is captured before main runs so the store can tell which
// variables were redefined in-process before it initialized.
var startupEnviron = os.Environ()

// StoreOptions configures store construction.
type StoreOptions struct {
	// Prefix for environment/registry names. Defaults to DefaultPrefix.
	Prefix string

	// EnvFile overrides the persisted environment file path on
	// file-backed platforms. Defaults to the per-user config path.
	EnvFile string

	// Baseline is the environment the process is considered to have
	// inherited, as KEY=VALUE pairs. Defaults to a snapshot taken at
	// package initialization. Used on registry-backed platforms to detect
	// in-process overrides.
	Baseline []string

	// Logger receives diagnostics. Defaults to slog.Default().
	Logger *slog.Logger
}

// storeBackend is the platform persistence layer. lookup resolves a fully
// prefixed name against the persisted state and the process environment;
// persist records name=value for future process launches and may be
// asynchronous.
type storeBackend interface {
	lookup(name string) (string, bool)
	persist(name, value string) error
}

// Store is a per-process key/value preference store persisted per OS.
// Reads are idempotent and side-effect free; the in-process environment
// acts as a cache so same-process reads observe writes immediately.
type Store struct {
	prefix  string
	backend storeBackend
	logger  *slog.Logger
}

// NewStore initializes the platform persistence backend and returns the
// store. On Windows this also forces the process into a DPI-aware display
// mode (one-time, idempotent, non-fatal). On an OS with no persistence
// mechanism it fails with ErrUnsupportedOS.
func NewStore(opts StoreOptions) (*Store, error) {
	if opts.Prefix == "" {
		opts.Prefix = DefaultPrefix
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Baseline == nil {
		opts.Baseline = startupEnviron
	}

	backend, err := newBackend(opts)
	if err != nil {
		return nil, err
	}

	return &Store{
		prefix:  opts.Prefix,
		backend: backend,
		logger:  opts.Logger,
	}, nil
}

// envName maps a canonical key to its environment/registry name.
func (s *Store) envName(key string) string {
	return s.prefix + strings.ToUpper(key)
}

// Lookup returns the stored value for key and whether any layer holds it.
func (s *Store) Lookup(key string) (string, bool) {
	return s.backend.lookup(s.envName(key))
}

// Get returns the stored value for key, or def if no layer holds it.
func (s *Store) Get(key, def string) string {
	if v, ok := s.Lookup(key); ok {
		return v
	}
	return def
}

// Set writes key=value into the in-process environment so same-process
// reads observe it, and persists it for future launches. Persistence is
// synchronous on file-backed platforms and fire-and-forget on Windows.
func (s *Store) Set(key, value string) error {
	name := s.envName(key)
	if err := os.Setenv(name, value); err != nil {
		return fmt.Errorf("failed to set %s in process environment: %w", name, err)
	}
	return s.backend.persist(name, value)
}

// SetProcess writes key=value into the in-process environment only,
// leaving the persisted state untouched.
func (s *Store) SetProcess(key, value string) {
	_ = os.Setenv(s.envName(key), value)
}

// Float64 returns the stored value for key parsed as a float, or def if
// the key is absent. A present but unparsable value is an error.
func (s *Store) Float64(key string, def float64) (float64, error) {
	raw, ok := s.Lookup(key)
	if !ok {
		return def, nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("cannot parse %s=%q as a number: %w", key, raw, err)
	}
	return f, nil
}

// environMap converts KEY=VALUE pairs into a map. Keys are uppercased,
// matching the case-insensitive Windows environment block.
func environMap(environ []string) map[string]string {
	m := make(map[string]string, len(environ))
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok {
			m[strings.ToUpper(k)] = v
		}
	}
	return m
}

// redefinedKeys returns the names whose current value differs from the
// baseline, including names absent from the baseline entirely.
func redefinedKeys(baseline, current map[string]string) map[string]bool {
	redefined := make(map[string]bool)
	for name, value := range current {
		if base, ok := baseline[name]; !ok || base != value {
			redefined[name] = true
		}
	}
	return redefined
}

//go:build linux || darwin

package uibind

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// envFileName is the shell-sourced per-user file holding persisted
// preferences, one `export KEY=VALUE` line per key. The desktop session is
// expected to source it at login so values survive process restarts.
const envFileName = "environment.sh"

// fileBackend persists preferences in a shell-style environment file.
// The file is parsed once at store initialization; the process environment
// always wins over the parsed cache on read.
type fileBackend struct {
	path   string
	cache  map[string]string
	logger *slog.Logger
}

func newBackend(opts StoreOptions) (storeBackend, error) {
	path := opts.EnvFile
	if path == "" {
		var err error
		if path, err = defaultEnvFilePath(); err != nil {
			return nil, err
		}
	}

	b := &fileBackend{
		path:   path,
		cache:  make(map[string]string),
		logger: opts.Logger,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read environment file '%s': %w", path, err)
		}
		return b, nil
	}
	b.cache = parseEnvFile(data)
	return b, nil
}

func (b *fileBackend) lookup(name string) (string, bool) {
	if v, ok := os.LookupEnv(name); ok {
		return v, true
	}
	v, ok := b.cache[name]
	return v, ok
}

func (b *fileBackend) persist(name, value string) error {
	b.cache[name] = value
	return rewriteEnvFile(b.path, name, value)
}

// defaultEnvFilePath resolves the fixed per-user file location, honoring
// XDG_CONFIG_HOME when set.
func defaultEnvFilePath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "uibind", envFileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot locate home directory for environment file: %w", err)
	}
	return filepath.Join(home, ".config", "uibind", envFileName), nil
}

// parseEnvFile extracts KEY=VALUE pairs from `export KEY=VALUE` lines.
// Other lines are ignored. Values containing '=' or newlines are
// unsupported; the value is cut at the first '='.
func parseEnvFile(data []byte) map[string]string {
	out := make(map[string]string)
	for _, line := range strings.Split(string(data), "\n") {
		if !strings.HasPrefix(line, "export ") {
			continue
		}
		kv := strings.TrimSpace(line[len("export "):])
		if k, v, ok := strings.Cut(kv, "="); ok {
			out[k] = v
		}
	}
	return out
}

// rewriteEnvFile replaces the `export name=` line in place, preserving
// every other line and their order, or appends one line if no match. The
// whole file is rewritten (read-modify-write). A missing file is created
// with exactly one line.
func rewriteEnvFile(path, name, value string) error {
	entry := "export " + name + "=" + value + "\n"

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to read environment file '%s': %w", path, err)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("failed to create environment directory: %w", err)
		}
		if err := os.WriteFile(path, []byte(entry), 0o644); err != nil {
			return fmt.Errorf("failed to create environment file '%s': %w", path, err)
		}
		return nil
	}

	lines := strings.SplitAfter(string(data), "\n")
	prefix := "export " + name + "="
	replaced := false
	for i, line := range lines {
		if strings.HasPrefix(line, prefix) {
			lines[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		if last := lines[len(lines)-1]; last != "" && !strings.HasSuffix(last, "\n") {
			lines[len(lines)-1] = last + "\n"
		}
		lines = append(lines, entry)
	}

	if err := os.WriteFile(path, []byte(strings.Join(lines, "")), 0o644); err != nil {
		return fmt.Errorf("failed to rewrite environment file '%s': %w", path, err)
	}
	return nil
}

package uibind

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/mitchellh/mapstructure"
)

// Settings is the surface a selector UI reads and edits. All fields are
// plain strings; interpretation happens where the value is consumed.
type Settings struct {
	API      string `toml:"api"`
	Scale    string `toml:"scale"`
	Font     string `toml:"font"`
	FontSize string `toml:"font_size"`
}

// Snapshot returns the canonical keys that currently resolve to a value.
func (s *Store) Snapshot() map[string]string {
	snap := make(map[string]string)
	for _, key := range Keys() {
		if v, ok := s.Lookup(key); ok {
			snap[key] = v
		}
	}
	return snap
}

// Scan decodes the current preference values into a struct or map, using
// the lower-cased canonical keys against `toml` tags.
func (s *Store) Scan(target any) error {
	data := make(map[string]any)
	for key, value := range s.Snapshot() {
		data[strings.ToLower(key)] = value
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "toml",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create settings decoder: %w", err)
	}
	if err := decoder.Decode(data); err != nil {
		return fmt.Errorf("failed to scan settings into %T: %w", target, err)
	}
	return nil
}

// Export writes the current preference values to a TOML file, atomically.
func (s *Store) Export(path string) error {
	data := make(map[string]string)
	for key, value := range s.Snapshot() {
		data[strings.ToLower(key)] = value
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(data); err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	return atomicWriteFile(path, buf.Bytes())
}

// Import reads a TOML settings file and persists every canonical key it
// contains through Set. Unknown keys are skipped with a warning;
// non-string values are an error, since values are strings by contract.
func (s *Store) Import(path string) error {
	raw := make(map[string]any)
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return fmt.Errorf("failed to parse settings file '%s': %w", path, err)
	}

	known := make(map[string]string, len(Keys()))
	for _, key := range Keys() {
		known[strings.ToLower(key)] = key
	}

	for name, value := range raw {
		key, ok := known[strings.ToLower(name)]
		if !ok {
			s.logger.Warn("unknown settings key, skipping", "key", name)
			continue
		}
		str, ok := value.(string)
		if !ok {
			return fmt.Errorf("settings key %q must be a string, got %T", name, value)
		}
		if err := s.Set(key, str); err != nil {
			return err
		}
	}
	return nil
}

// atomicWriteFile writes data through a temp file in the target directory
// and renames it into place.
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory '%s': %w", dir, err)
	}

	tempFile, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	tempPath := tempFile.Name()
	defer os.Remove(tempPath) // Clean up on any error

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err := tempFile.Sync(); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to sync temporary file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}
	if err := os.Chmod(tempPath, 0o644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}
	return nil
}

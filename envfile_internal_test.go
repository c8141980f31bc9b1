//go:build linux || darwin

package uibind

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnvFile(t *testing.T) {
	data := []byte("# comment\n" +
		"export A=1\n" +
		"B=not exported\n" +
		"export C=a=b\n" +
		"export TRAILING=x \n" +
		"export NOVALUE\n")

	m := parseEnvFile(data)

	assert.Equal(t, "1", m["A"])
	assert.NotContains(t, m, "B")
	// Values containing '=' are unsupported on write; reads cut at the
	// first '='.
	assert.Equal(t, "a=b", m["C"])
	assert.Equal(t, "x", m["TRAILING"])
	assert.NotContains(t, m, "NOVALUE")
}

func TestRewriteEnvFileWithoutTrailingNewline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "environment.sh")
	require.NoError(t, os.WriteFile(path, []byte("export A=1"), 0o644))

	require.NoError(t, rewriteEnvFile(path, "B", "2"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "export A=1\nexport B=2\n", string(data))
}

func TestRewriteEnvFileReplacesFirstMatchOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "environment.sh")
	require.NoError(t, os.WriteFile(path,
		[]byte("export A=1\nexport A=2\n"), 0o644))

	require.NoError(t, rewriteEnvFile(path, "A", "3"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "export A=3\nexport A=2\n", string(data))
}

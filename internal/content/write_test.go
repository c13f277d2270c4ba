package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteProtectedAppendsNewline(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "config.toml")

	require.NoError(t, WriteProtected("line1", dest))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "line1\n", string(data))
}

func TestWriteProtectedKeepsExistingNewline(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "config.toml")

	require.NoError(t, WriteProtected("line1\n", dest))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "line1\n", string(data))
}

func TestWriteProtectedEmptyContent(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "empty.toml")

	require.NoError(t, WriteProtected("", dest))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "\n", string(data))
}

func TestWriteProtectedTruncatesExisting(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "config.toml")

	require.NoError(t, WriteProtected("a much longer first write", dest))
	require.NoError(t, WriteProtected("short", dest))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "short\n", string(data))
}

func TestWriteProtectedMissingParent(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "missing", "config.toml")

	err := WriteProtected("content", dest)
	require.Error(t, err)
	assert.Contains(t, err.Error(), dest)
}

package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, in string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader(in))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestNewCommandGeneratesSite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "mysite")

	out, err := execute(t, "MySite\nAlice\nFoo, Bar\n", "new", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Site generated in "+dir)

	for _, p := range []string{
		filepath.Join(dir, "config.toml"),
		filepath.Join(dir, "site", "templates", "default.tmpl"),
		filepath.Join(dir, "site", "webroot", "foo", "posts"),
		filepath.Join(dir, "site", "webroot", "bar", "ext"),
		filepath.Join(dir, "site", "webroot", "main", "posts"),
		filepath.Join(dir, "site", "webroot", "static", "ext"),
	} {
		_, statErr := os.Stat(p)
		assert.NoError(t, statErr, "expected %s to exist", p)
	}
}

func TestRunCommandRequiresConfigArg(t *testing.T) {
	_, err := execute(t, "", "run")
	require.Error(t, err)
}

func TestRunCommandMissingConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.toml")

	_, err := execute(t, "", "run", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "arse")
}

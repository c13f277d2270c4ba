package config

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codywizlet/arse/internal/logging"
)

func testBuilder() *Builder {
	return NewBuilderWithOutput(logging.NewDiscard(), &bytes.Buffer{})
}

func TestNewDocPaths(t *testing.T) {
	dp := NewDocPaths("/srv/blog")

	assert.Equal(t, filepath.Join("/srv/blog", "site", "templates"), dp.Templates)
	assert.Equal(t, filepath.Join("/srv/blog", "site", "webroot"), dp.Webroot)
}

func TestDefaultServer(t *testing.T) {
	srv := DefaultServer()

	assert.Equal(t, "0.0.0.0", srv.Bind)
	assert.Equal(t, uint16(9090), srv.Port)
}

func TestSplitTopics(t *testing.T) {
	tests := []struct {
		name string
		csv  string
		want []string
	}{
		{"plain", "One, Two, Three, And More", []string{"One", "Two", "Three", "And More"}},
		{"uneven whitespace", "One, Two,  Three", []string{"One", "Two", "Three"}},
		{"trailing comma keeps empty segment", "One,", []string{"One", ""}},
		{"single", "Solo", []string{"Solo"}},
		{"empty input", "", []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitTopics(tt.csv))
		})
	}
}

func TestFromPathFixture(t *testing.T) {
	cfg, err := testBuilder().FromPath(filepath.Join("testdata", "config.toml"))
	require.NoError(t, err)

	assert.Equal(t, "Test Site", cfg.Site.Name)
	assert.Equal(t, "Test Author", cfg.Site.Author)
	assert.Equal(t, "default.tmpl", cfg.Site.Template)
	assert.Equal(t, []string{"One", "Two", "Three", "And More"}, cfg.Site.Topics)
	assert.Equal(t, uint16(9090), cfg.Server.Port)
	assert.Equal(t, "testdata/site/webroot", cfg.Docpaths.Webroot)
}

func TestFromPathMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.toml")

	cfg, err := testBuilder().FromPath(path)
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), path)
}

func TestFromPathUnknownField(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	doc := `[site]
name = 'X'
author = 'Y'
template = 'default.tmpl'
topics = ['one']
surprise = 'not in the schema'

[server]
bind = '0.0.0.0'
port = 9090

[docpaths]
templates = 't'
webroot = 'w'
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, err := testBuilder().FromPath(path)
	require.Error(t, err)
	assert.Nil(t, cfg)
}

func TestFromPathMissingRequiredKey(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	doc := `[site]
name = 'X'
author = 'Y'
template = 'default.tmpl'
topics = ['one']

[docpaths]
templates = 't'
webroot = 'w'
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, err := testBuilder().FromPath(path)
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), `missing required key "server"`)
}

func TestFromPathMalformedTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("not = [valid"), 0o644))

	_, err := testBuilder().FromPath(path)
	require.Error(t, err)
}

func TestConfigRoundTrip(t *testing.T) {
	original := &AppConfig{
		Site: Site{
			Name:     "MySite",
			Author:   "Alice",
			Template: DefaultTemplate,
			Topics:   []string{"Foo", "Bar", ""},
		},
		Server:   DefaultServer(),
		Docpaths: NewDocPaths("/srv/site"),
	}

	doc, err := marshalConfig(original)
	require.NoError(t, err)

	decoded, err := unmarshalStrict([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestGenerateFromInput(t *testing.T) {
	dir := t.TempDir()
	input := strings.NewReader("Site Name\nAuthor Name\nOne, Two, Three, And More\n")

	cfg, err := testBuilder().Generate(dir, input)
	require.NoError(t, err)

	assert.Equal(t, "Site Name", cfg.Site.Name)
	assert.Equal(t, "Author Name", cfg.Site.Author)
	assert.Equal(t, DefaultTemplate, cfg.Site.Template)
	assert.Equal(t, []string{"One", "Two", "Three", "And More"}, cfg.Site.Topics)
	assert.Equal(t, DefaultServer(), cfg.Server)

	expected := []string{
		filepath.Join(dir, "config.toml"),
		filepath.Join(dir, "site"),
		filepath.Join(dir, "site", "templates"),
		filepath.Join(dir, "site", "webroot"),
		filepath.Join(dir, "site", "webroot", "static", "ext"),
		filepath.Join(dir, "site", "webroot", "main", "ext"),
		filepath.Join(dir, "site", "webroot", "main", "posts"),
		filepath.Join(dir, "site", "webroot", "one", "ext"),
		filepath.Join(dir, "site", "webroot", "one", "posts"),
		filepath.Join(dir, "site", "webroot", "two", "ext"),
		filepath.Join(dir, "site", "webroot", "two", "posts"),
		filepath.Join(dir, "site", "webroot", "three", "ext"),
		filepath.Join(dir, "site", "webroot", "three", "posts"),
		filepath.Join(dir, "site", "webroot", "and-more", "ext"),
		filepath.Join(dir, "site", "webroot", "and-more", "posts"),
	}
	for _, p := range expected {
		_, err := os.Stat(p)
		assert.NoError(t, err, "expected %s to exist", p)
	}
}

func TestGeneratePersistedConfigReloads(t *testing.T) {
	dir := t.TempDir()
	input := strings.NewReader("MySite\nAlice\nFoo, Bar\n")
	b := testBuilder()

	generated, err := b.Generate(dir, input)
	require.NoError(t, err)

	loaded, err := b.FromPath(filepath.Join(dir, ConfigFileName))
	require.NoError(t, err)
	assert.Equal(t, generated, loaded)
}

func TestGenerateTrimsInputWhitespace(t *testing.T) {
	dir := t.TempDir()
	input := strings.NewReader("  MySite  \n\tAlice\t\nFoo, Bar\n")

	cfg, err := testBuilder().Generate(dir, input)
	require.NoError(t, err)

	assert.Equal(t, "MySite", cfg.Site.Name)
	assert.Equal(t, "Alice", cfg.Site.Author)
	assert.Equal(t, []string{"Foo", "Bar"}, cfg.Site.Topics)
}

func TestGenerateWritesPrompts(t *testing.T) {
	dir := t.TempDir()
	var prompts bytes.Buffer
	b := NewBuilderWithOutput(logging.NewDiscard(), &prompts)

	_, err := b.Generate(dir, strings.NewReader("A\nB\nC\n"))
	require.NoError(t, err)

	out := prompts.String()
	assert.Contains(t, out, "Please enter a name for the site:")
	assert.Contains(t, out, "Please enter the site author's name:")
	assert.Contains(t, out, "Please enter comma-separated site topics:")
}

func TestGenerateConfigFilePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("POSIX permission bits not meaningful on Windows")
	}

	dir := t.TempDir()
	_, err := testBuilder().Generate(dir, strings.NewReader("A\nB\nC\n"))
	require.NoError(t, err)

	info, err := os.Stat(filepath.Join(dir, ConfigFileName))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

// Package config owns the site configuration lifecycle: the AppConfig data
// model, loading a persisted config.toml back into memory, and the interactive
// generation flow that builds a new site's directory tree and persists its
// configuration.
//
// An AppConfig is all-or-nothing: it is either loaded/generated fully valid or
// the operation fails. Nothing in this package mutates a config after
// construction; edits happen by hand-editing config.toml and reloading.
package config

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/codywizlet/arse/internal/content"
	"github.com/codywizlet/arse/internal/logging"
)

const (
	// ConfigFileName is the fixed filename persisted under the site's base
	// directory.
	ConfigFileName = "config.toml"

	// DefaultTemplate is the template reference fixed at generation time. It
	// is not user-chosen in the interactive flow.
	DefaultTemplate = "default.tmpl"

	defaultBind = "0.0.0.0"
	defaultPort = 9090
)

// Site holds the site's identity: display name, author, the logical template
// reference, and the ordered, user-supplied topic list. Topic entries are
// trimmed but not deduplicated or otherwise validated.
type Site struct {
	Name     string   `toml:"name"`
	Author   string   `toml:"author"`
	Template string   `toml:"template"`
	Topics   []string `toml:"topics"`
}

// Server is the declarative network binding consumed by the HTTP layer.
type Server struct {
	Bind string `toml:"bind"`
	Port uint16 `toml:"port"`
}

// DefaultServer returns the default binding of 0.0.0.0:9090.
func DefaultServer() Server {
	return Server{
		Bind: defaultBind,
		Port: defaultPort,
	}
}

// DocPaths holds the two on-disk roots the engine works against. Both are
// always derived from the same base directory and are never relocated
// independently after construction.
type DocPaths struct {
	Templates string `toml:"templates"`
	Webroot   string `toml:"webroot"`
}

// NewDocPaths derives the document paths for a site rooted at dir.
func NewDocPaths(dir string) DocPaths {
	return DocPaths{
		Templates: filepath.Join(dir, "site", "templates"),
		Webroot:   filepath.Join(dir, "site", "webroot"),
	}
}

// AppConfig is the root aggregate owning the site identity, server binding,
// and document paths by value.
type AppConfig struct {
	Site     Site     `toml:"site"`
	Server   Server   `toml:"server"`
	Docpaths DocPaths `toml:"docpaths"`
}

// Builder constructs AppConfigs, either from a persisted file or
// interactively from a line-oriented input stream. The logger is an explicit
// handle so the package carries no global state.
type Builder struct {
	log logging.Logger
	out io.Writer
}

// NewBuilder creates a configuration builder that writes interactive prompts
// to stdout.
func NewBuilder(log logging.Logger) *Builder {
	return &Builder{
		log: log.WithComponent("config"),
		out: os.Stdout,
	}
}

// NewBuilderWithOutput creates a builder that writes prompts to out. Used by
// tests to capture the prompt stream.
func NewBuilderWithOutput(log logging.Logger, out io.Writer) *Builder {
	b := NewBuilder(log)
	b.out = out
	return b
}

// FromPath reads and deserializes a persisted configuration file. The
// document must match the AppConfig schema exactly: unknown fields and
// missing required fields are parse failures, never silently defaulted.
func (b *Builder) FromPath(path string) (*AppConfig, error) {
	ctx := context.Background()
	b.log.Debug(ctx, "loading site configuration", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed reading %q: %w", path, err)
	}

	b.log.Trace(ctx, "parsing configuration TOML")
	cfg, err := unmarshalStrict(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %q: %w", path, err)
	}

	return cfg, nil
}

// Generate builds a new AppConfig interactively: it derives DocPaths from
// dir, prompts for the site fields on the input stream, creates the site's
// filesystem tree, and persists the configuration to <dir>/config.toml with
// owner-only permissions.
//
// A failure during tree creation or persistence aborts the generation; side
// effects already committed stay on disk. Re-running from scratch is the only
// recovery path.
func (b *Builder) Generate(dir string, input io.Reader) (*AppConfig, error) {
	b.log.Info(context.Background(), "generating new site configuration", "dir", dir)

	docpaths := NewDocPaths(dir)
	site, err := b.siteFromInput(input)
	if err != nil {
		return nil, err
	}

	cfg := &AppConfig{
		Site:     site,
		Server:   DefaultServer(),
		Docpaths: docpaths,
	}

	if err := b.createPaths(cfg); err != nil {
		return nil, fmt.Errorf("failed while creating site paths: %w", err)
	}
	if err := b.write(cfg, dir); err != nil {
		return nil, fmt.Errorf("failed to write site config to disk: %w", err)
	}

	return cfg, nil
}

// createPaths creates the site's directory tree: the templates root plus the
// static, main, and per-topic subtrees under webroot. Creation is recursive
// and idempotent.
func (b *Builder) createPaths(cfg *AppConfig) error {
	b.log.Info(context.Background(), "creating site filesystem tree")

	webroot := cfg.Docpaths.Webroot
	dirs := []string{
		cfg.Docpaths.Templates,
		filepath.Join(webroot, "static", "ext"),
		filepath.Join(webroot, "main", "ext"),
		filepath.Join(webroot, "main", "posts"),
	}
	for _, topic := range cfg.Site.Topics {
		slug := content.Slugify(topic)
		dirs = append(dirs,
			filepath.Join(webroot, slug, "ext"),
			filepath.Join(webroot, slug, "posts"),
		)
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %q: %w", dir, err)
		}
	}
	return nil
}

// write serializes the configuration and persists it via the protected
// writer.
func (b *Builder) write(cfg *AppConfig, dir string) error {
	b.log.Info(context.Background(), "writing site configuration to disk")

	doc, err := marshalConfig(cfg)
	if err != nil {
		return fmt.Errorf("failure creating TOML: %w", err)
	}
	return content.WriteProtected(doc, filepath.Join(dir, ConfigFileName))
}

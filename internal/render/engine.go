// Package render turns the site's on-disk content into HTML pages. It loads
// the user-editable template set from the configured templates directory,
// enumerates topic posts through the content path resolver, and renders
// markdown bodies with goldmark.
package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Masterminds/sprig/v3"
	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/codywizlet/arse/internal/config"
	"github.com/codywizlet/arse/internal/content"
	"github.com/codywizlet/arse/internal/logging"
)

// ErrUnknownTopic is returned when a requested topic slug does not map to a
// configured topic or the main section.
var ErrUnknownTopic = errors.New("unknown topic")

// MainSlug is the slug of the landing section every site has regardless of
// its configured topics.
const MainSlug = "main"

// TopicLink pairs a topic's display name with its slug for navigation.
type TopicLink struct {
	Name string
	Slug string
}

// PostEntry is a single rendered content file.
type PostEntry struct {
	Title string
	Slug  string
	Date  string
	Body  template.HTML
}

// Page is the data handed to the site template.
type Page struct {
	Site   config.Site
	Topic  TopicLink
	Topics []TopicLink
	Posts  []PostEntry
}

// Engine renders site pages from an AppConfig. Template reloads are guarded
// by a read/write lock so concurrent request rendering stays safe while the
// watcher swaps the template set.
type Engine struct {
	App *config.AppConfig

	log logging.Logger
	md  goldmark.Markdown

	mu   sync.RWMutex
	tmpl *template.Template
}

// NewEngine creates a rendering engine for the given configuration and parses
// the template set from the configured templates directory.
func NewEngine(app *config.AppConfig, log logging.Logger) (*Engine, error) {
	e := &Engine{
		App: app,
		log: log.WithComponent("render"),
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
		),
	}
	if err := e.Reload(); err != nil {
		return nil, err
	}
	return e, nil
}

// Reload re-parses the template set from disk. Safe to call while requests
// are being served.
func (e *Engine) Reload() error {
	pattern := filepath.Join(e.App.Docpaths.Templates, "*.tmpl")
	e.log.Debug(context.Background(), "loading templates", "pattern", pattern)

	tmpl, err := template.New("site").Funcs(sprig.HtmlFuncMap()).ParseGlob(pattern)
	if err != nil {
		return fmt.Errorf("failed parsing templates from %q: %w", e.App.Docpaths.Templates, err)
	}

	e.mu.Lock()
	e.tmpl = tmpl
	e.mu.Unlock()
	return nil
}

// Topics returns the navigation links for every configured topic, in the
// configured order.
func (e *Engine) Topics() []TopicLink {
	links := make([]TopicLink, 0, len(e.App.Site.Topics))
	for _, topic := range e.App.Site.Topics {
		links = append(links, TopicLink{Name: topic, Slug: content.Slugify(topic)})
	}
	return links
}

// topicLink resolves a slug back to its display form. The main section is
// always valid; everything else must match a configured topic's slug.
func (e *Engine) topicLink(slug string) (TopicLink, error) {
	if slug == MainSlug {
		return TopicLink{Name: e.App.Site.Name, Slug: MainSlug}, nil
	}
	for _, link := range e.Topics() {
		if link.Slug == slug {
			return link, nil
		}
	}
	return TopicLink{}, fmt.Errorf("%w: %q", ErrUnknownTopic, slug)
}

// RenderIndex renders the landing page, which is the main section's listing.
func (e *Engine) RenderIndex() (string, error) {
	return e.RenderTopic(MainSlug)
}

// RenderTopic renders a topic's listing page: every post under the topic's
// posts directory, most recent first.
func (e *Engine) RenderTopic(slug string) (string, error) {
	link, err := e.topicLink(slug)
	if err != nil {
		return "", err
	}

	pattern := filepath.Join(e.App.Docpaths.Webroot, slug, "posts", "*.md")
	paths, err := content.PathMatches(pattern)
	if err != nil {
		return "", err
	}

	posts := make([]PostEntry, 0, len(paths))
	for _, path := range paths {
		post, err := e.loadPost(path)
		if err != nil {
			return "", err
		}
		posts = append(posts, post)
	}

	return e.execute(Page{
		Site:   e.App.Site,
		Topic:  link,
		Topics: e.Topics(),
		Posts:  posts,
	})
}

// RenderPost renders a single post page.
func (e *Engine) RenderPost(slug, name string) (string, error) {
	link, err := e.topicLink(slug)
	if err != nil {
		return "", err
	}

	path := filepath.Join(e.App.Docpaths.Webroot, slug, "posts", name+".md")
	post, err := e.loadPost(path)
	if err != nil {
		return "", err
	}

	return e.execute(Page{
		Site:   e.App.Site,
		Topic:  link,
		Topics: e.Topics(),
		Posts:  []PostEntry{post},
	})
}

type postMatter struct {
	Title string `yaml:"title" toml:"title"`
	Date  string `yaml:"date" toml:"date"`
}

// loadPost reads a content file, strips optional front matter, and converts
// the markdown body to HTML.
func (e *Engine) loadPost(path string) (PostEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return PostEntry{}, fmt.Errorf("failed reading post %q: %w", path, err)
	}
	defer f.Close()

	var matter postMatter
	body, err := frontmatter.Parse(f, &matter)
	if err != nil {
		return PostEntry{}, fmt.Errorf("failed parsing front matter in %q: %w", path, err)
	}

	var buf bytes.Buffer
	if err := e.md.Convert(body, &buf); err != nil {
		return PostEntry{}, fmt.Errorf("failed rendering markdown in %q: %w", path, err)
	}

	slug := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	title := matter.Title
	if title == "" {
		title = titleFromSlug(slug)
	}

	return PostEntry{
		Title: title,
		Slug:  slug,
		Date:  matter.Date,
		Body:  template.HTML(buf.String()),
	}, nil
}

// titleFromSlug falls back to a readable title when a post carries no front
// matter: the date prefix is dropped and hyphens become spaces.
func titleFromSlug(slug string) string {
	trimmed := strings.TrimLeft(slug, "0123456789")
	trimmed = strings.TrimPrefix(trimmed, "-")
	if trimmed == "" {
		trimmed = slug
	}
	return strings.ReplaceAll(trimmed, "-", " ")
}

func (e *Engine) execute(page Page) (string, error) {
	e.mu.RLock()
	tmpl := e.tmpl
	e.mu.RUnlock()

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, e.App.Site.Template, page); err != nil {
		return "", fmt.Errorf("failed executing template %q: %w", e.App.Site.Template, err)
	}
	return buf.String(), nil
}

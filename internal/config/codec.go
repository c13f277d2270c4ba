package config

import (
	"bytes"
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

// The shadow document types use pointer fields so a strict decode can tell a
// missing key apart from a zero value. TOML decoding alone would happily
// default absent fields, and the persisted schema treats that as malformed.

type siteDoc struct {
	Name     *string   `toml:"name"`
	Author   *string   `toml:"author"`
	Template *string   `toml:"template"`
	Topics   *[]string `toml:"topics"`
}

type serverDoc struct {
	Bind *string `toml:"bind"`
	Port *uint16 `toml:"port"`
}

type docPathsDoc struct {
	Templates *string `toml:"templates"`
	Webroot   *string `toml:"webroot"`
}

type appConfigDoc struct {
	Site     *siteDoc     `toml:"site"`
	Server   *serverDoc   `toml:"server"`
	Docpaths *docPathsDoc `toml:"docpaths"`
}

// marshalConfig renders the configuration as a TOML document. The output
// round-trips losslessly through unmarshalStrict.
func marshalConfig(cfg *AppConfig) (string, error) {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// unmarshalStrict decodes a TOML document into an AppConfig. Unknown fields
// and missing required keys are both parse failures.
func unmarshalStrict(data []byte) (*AppConfig, error) {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var doc appConfigDoc
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	return doc.appConfig()
}

// appConfig validates that every required key was present and assembles the
// final value.
func (d *appConfigDoc) appConfig() (*AppConfig, error) {
	switch {
	case d.Site == nil:
		return nil, missingKey("site")
	case d.Server == nil:
		return nil, missingKey("server")
	case d.Docpaths == nil:
		return nil, missingKey("docpaths")
	case d.Site.Name == nil:
		return nil, missingKey("site.name")
	case d.Site.Author == nil:
		return nil, missingKey("site.author")
	case d.Site.Template == nil:
		return nil, missingKey("site.template")
	case d.Site.Topics == nil:
		return nil, missingKey("site.topics")
	case d.Server.Bind == nil:
		return nil, missingKey("server.bind")
	case d.Server.Port == nil:
		return nil, missingKey("server.port")
	case d.Docpaths.Templates == nil:
		return nil, missingKey("docpaths.templates")
	case d.Docpaths.Webroot == nil:
		return nil, missingKey("docpaths.webroot")
	}

	return &AppConfig{
		Site: Site{
			Name:     *d.Site.Name,
			Author:   *d.Site.Author,
			Template: *d.Site.Template,
			Topics:   *d.Site.Topics,
		},
		Server: Server{
			Bind: *d.Server.Bind,
			Port: *d.Server.Port,
		},
		Docpaths: DocPaths{
			Templates: *d.Docpaths.Templates,
			Webroot:   *d.Docpaths.Webroot,
		},
	}, nil
}

func missingKey(key string) error {
	return fmt.Errorf("missing required key %q", key)
}

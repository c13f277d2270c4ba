package render

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/codywizlet/arse/internal/config"
)

//go:embed templates/default.tmpl
var defaultTemplate string

// WriteDefaultTemplate seeds a templates directory with the embedded starter
// template so a freshly generated site renders out of the box. An existing
// template is never overwritten; user edits win.
func WriteDefaultTemplate(templatesDir string) error {
	dest := filepath.Join(templatesDir, config.DefaultTemplate)
	if _, err := os.Stat(dest); err == nil {
		return nil
	}
	if err := os.WriteFile(dest, []byte(defaultTemplate), 0o644); err != nil {
		return fmt.Errorf("failed writing starter template %q: %w", dest, err)
	}
	return nil
}

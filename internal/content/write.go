package content

import (
	"fmt"
)

// WriteProtected writes content to dest with owner-exclusive access, creating
// or truncating the file and guaranteeing exactly one trailing newline.
//
// On Unix the 0600 mode is applied at creation time via the open flags, so
// there is no window where the file is more permissive than intended. On
// Windows the file is written normally and then marked read-only as a
// best-effort guard against accidental overwrite; see write_windows.go.
func WriteProtected(content string, dest string) error {
	f, err := openProtected(dest)
	if err != nil {
		return fmt.Errorf("failed to open %q for writing: %w", dest, err)
	}

	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return fmt.Errorf("failure writing %q: %w", dest, err)
	}
	if len(content) == 0 || content[len(content)-1] != '\n' {
		if _, err := f.WriteString("\n"); err != nil {
			f.Close()
			return fmt.Errorf("failure writing %q: %w", dest, err)
		}
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failure closing %q: %w", dest, err)
	}
	return finishProtected(dest)
}

//go:build windows

package content

import (
	"fmt"
	"os"
)

// openProtected creates or truncates dest. Windows has no POSIX mode bits, so
// the protection happens after the write in finishProtected.
func openProtected(dest string) (*os.File, error) {
	return os.Create(dest)
}

// finishProtected marks dest read-only. This only guards against accidental
// overwrite, not against other readers.
func finishProtected(dest string) error {
	if err := os.Chmod(dest, 0o444); err != nil {
		return fmt.Errorf("failed setting read-only on %q: %w", dest, err)
	}
	return nil
}

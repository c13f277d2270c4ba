//go:build !windows

package content

import "os"

// openProtected creates or truncates dest with owner-only read/write set in
// the creation mode itself, not as a follow-up chmod.
func openProtected(dest string) (*os.File, error) {
	return os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
}

// finishProtected is a no-op on Unix; the mode bits were applied at open time.
func finishProtected(string) error {
	return nil
}

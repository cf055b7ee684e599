//go:build windows

package stderr

// Start is a no-op on Windows.
func Start() error {
	return nil
}

// Stop is a no-op on Windows.
func Stop() {}

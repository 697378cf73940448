//go:build !windows && !darwin && !linux

package capture

func listWindows() ([]Window, error) {
	return nil, ErrUnsupported
}

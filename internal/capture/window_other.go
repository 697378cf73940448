//go:build !windows && !darwin && !linux

package capture

// NewWindowCapturer reports that this platform has no window capture adapter.
func NewWindowCapturer() (Capturer, error) {
	return nil, ErrUnsupported
}

//go:build !darwin

package permissions

// EnsureScreenRecording always succeeds outside macOS.
func EnsureScreenRecording(prompt bool) error { return nil }

// Package permissions gates window capture on the host's privacy settings.
// Only macOS restricts reading other windows' pixels; elsewhere every check
// passes.
package permissions

import (
	"errors"
	"fmt"
)

// ErrScreenRecordingDenied means the process may not read other windows.
var ErrScreenRecordingDenied = errors.New("screen recording permission not granted")

func denied(prompted bool) error {
	if prompted {
		return fmt.Errorf("%w: allow this program under Privacy & Security > Screen Recording, then restart it", ErrScreenRecordingDenied)
	}
	return ErrScreenRecordingDenied
}

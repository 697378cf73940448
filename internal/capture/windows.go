package capture

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Window is one capturable top-level window.
type Window struct {
	Handle Handle
	Title  string
}

func (w Window) String() string {
	return fmt.Sprintf("%s (%#x)", w.Title, uintptr(w.Handle))
}

var (
	ErrNoWindows     = errors.New("no capturable windows")
	ErrInvalidChoice = errors.New("invalid window choice")
)

// ListWindows returns the visible, titled top-level windows in the host's
// stacking order.
func ListWindows() ([]Window, error) {
	ws, err := listWindows()
	if err != nil {
		return nil, fmt.Errorf("list windows: %w", err)
	}
	return ws, nil
}

// Choose prints ws as a numbered list to out and reads a 1-based choice from
// in. Anything but a number naming a listed window is ErrInvalidChoice.
func Choose(ws []Window, in io.Reader, out io.Writer) (Window, error) {
	if len(ws) == 0 {
		return Window{}, ErrNoWindows
	}
	fmt.Fprintln(out, "Open windows:")
	for i, w := range ws {
		fmt.Fprintf(out, "  %2d) %s\n", i+1, w)
	}
	fmt.Fprintf(out, "Window to capture [1-%d]: ", len(ws))

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return Window{}, fmt.Errorf("read choice: %w", err)
	}
	line = strings.TrimSpace(line)
	n, err := strconv.Atoi(line)
	if err != nil || n < 1 || n > len(ws) {
		return Window{}, fmt.Errorf("%w: %q", ErrInvalidChoice, line)
	}
	return ws[n-1], nil
}

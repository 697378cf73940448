//go:build linux

package capture

import (
	"fmt"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

func listWindows() ([]Window, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect to X server: %w", err)
	}
	defer conn.Close()
	root := xproto.Setup(conn).DefaultScreen(conn).Root

	clients, err := windowProperty(conn, root, "_NET_CLIENT_LIST", xproto.AtomWindow)
	if err != nil {
		return nil, err
	}
	if clients == nil {
		return nil, fmt.Errorf("window manager does not publish _NET_CLIENT_LIST")
	}

	var ws []Window
	for i := 0; i+4 <= len(clients.Value); i += 4 {
		win := xproto.Window(xgb.Get32(clients.Value[i:]))
		attrs, err := xproto.GetWindowAttributes(conn, win).Reply()
		if err != nil || attrs.MapState != xproto.MapStateViewable {
			continue
		}
		if title := windowTitle(conn, win); title != "" {
			ws = append(ws, Window{Handle: Handle(win), Title: title})
		}
	}
	return ws, nil
}

// windowTitle prefers the UTF-8 EWMH name over the legacy WM_NAME.
func windowTitle(conn *xgb.Conn, win xproto.Window) string {
	utf8, err := internAtom(conn, "UTF8_STRING")
	if err == nil {
		if p, err := windowProperty(conn, win, "_NET_WM_NAME", utf8); err == nil && p != nil && len(p.Value) > 0 {
			return string(p.Value)
		}
	}
	p, err := xproto.GetProperty(conn, false, win, xproto.AtomWmName, xproto.AtomString, 0, 1<<10).Reply()
	if err != nil {
		return ""
	}
	return string(p.Value)
}

func windowProperty(conn *xgb.Conn, win xproto.Window, name string, typ xproto.Atom) (*xproto.GetPropertyReply, error) {
	atom, err := internAtom(conn, name)
	if err != nil {
		return nil, err
	}
	p, err := xproto.GetProperty(conn, false, win, atom, typ, 0, 1<<16).Reply()
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", name, err)
	}
	if p.Format == 0 {
		return nil, nil
	}
	return p, nil
}

func internAtom(conn *xgb.Conn, name string) (xproto.Atom, error) {
	r, err := xproto.InternAtom(conn, true, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, fmt.Errorf("intern %s: %w", name, err)
	}
	return r.Atom, nil
}

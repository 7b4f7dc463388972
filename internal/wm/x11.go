//go:build linux

package wm

import (
	"encoding/binary"
	"strings"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
	"github.com/pkg/errors"
)

// x11Conn owns one connection to the X server plus the interned atoms the
// activator needs. Created once, torn down at process exit.
type x11Conn struct {
	conn *xgb.Conn
	root xproto.Window

	activeWindow  xproto.Atom // _NET_ACTIVE_WINDOW
	wmState       xproto.Atom // _NET_WM_STATE
	wmStateAbove  xproto.Atom // _NET_WM_STATE_ABOVE
	wmStateSticky xproto.Atom // _NET_WM_STATE_STICKY
	wmName        xproto.Atom // _NET_WM_NAME
	utf8String    xproto.Atom // UTF8_STRING
}

func connectX11() (*x11Conn, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, errors.Wrap(err, "connect to X server")
	}

	c := &x11Conn{
		conn: conn,
		root: xproto.Setup(conn).DefaultScreen(conn).Root,
	}

	for _, a := range []struct {
		name string
		dst  *xproto.Atom
	}{
		{"_NET_ACTIVE_WINDOW", &c.activeWindow},
		{"_NET_WM_STATE", &c.wmState},
		{"_NET_WM_STATE_ABOVE", &c.wmStateAbove},
		{"_NET_WM_STATE_STICKY", &c.wmStateSticky},
		{"_NET_WM_NAME", &c.wmName},
		{"UTF8_STRING", &c.utf8String},
	} {
		reply, err := xproto.InternAtom(conn, false, uint16(len(a.name)), a.name).Reply()
		if err != nil {
			conn.Close()
			return nil, errors.Wrapf(err, "intern atom %s", a.name)
		}
		*a.dst = reply.Atom
	}

	return c, nil
}

func (c *x11Conn) close() { c.conn.Close() }

// setState replaces _NET_WM_STATE on the window with the sticky/above atoms.
// Sent before the window is mapped this is honored directly by the window
// manager when it maps the window.
func (c *x11Conn) setState(window uint32, sticky, above bool) error {
	var atoms []xproto.Atom
	if sticky {
		atoms = append(atoms, c.wmStateSticky)
	}
	if above {
		atoms = append(atoms, c.wmStateAbove)
	}
	if len(atoms) == 0 {
		return nil
	}

	data := make([]byte, 4*len(atoms))
	for i, a := range atoms {
		binary.LittleEndian.PutUint32(data[4*i:], uint32(a))
	}

	err := xproto.ChangePropertyChecked(c.conn, xproto.PropModeReplace,
		xproto.Window(window), c.wmState, xproto.AtomAtom, 32,
		uint32(len(atoms)), data).Check()
	return errors.Wrap(err, "change _NET_WM_STATE")
}

// activate sends the EWMH _NET_ACTIVE_WINDOW client message to the root
// window. Source indication 1 marks the request as coming from an
// application.
func (c *x11Conn) activate(window uint32) error {
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: xproto.Window(window),
		Type:   c.activeWindow,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{1, 0, 0, 0, 0}),
	}

	mask := uint32(xproto.EventMaskSubstructureRedirect | xproto.EventMaskSubstructureNotify)
	err := xproto.SendEventChecked(c.conn, false, c.root, mask, string(ev.Bytes())).Check()
	return errors.Wrap(err, "send _NET_ACTIVE_WINDOW")
}

// findByTitle walks the direct children of the root window looking for one
// whose _NET_WM_NAME (or legacy WM_NAME) equals title.
func (c *x11Conn) findByTitle(title string) (uint32, error) {
	tree, err := xproto.QueryTree(c.conn, c.root).Reply()
	if err != nil {
		return 0, errors.Wrap(err, "query window tree")
	}

	for _, child := range tree.Children {
		if c.windowName(child) == title {
			return uint32(child), nil
		}
		// Reparenting window managers wrap clients in a frame window.
		sub, err := xproto.QueryTree(c.conn, child).Reply()
		if err != nil {
			continue
		}
		for _, w := range sub.Children {
			if c.windowName(w) == title {
				return uint32(w), nil
			}
		}
	}
	return 0, errors.Errorf("no window titled %q", title)
}

func (c *x11Conn) windowName(w xproto.Window) string {
	reply, err := xproto.GetProperty(c.conn, false, w, c.wmName, c.utf8String, 0, 64).Reply()
	if err == nil && len(reply.Value) > 0 {
		return strings.TrimRight(string(reply.Value), "\x00")
	}
	reply, err = xproto.GetProperty(c.conn, false, w, xproto.AtomWmName, xproto.AtomString, 0, 64).Reply()
	if err == nil && len(reply.Value) > 0 {
		return strings.TrimRight(string(reply.Value), "\x00")
	}
	return ""
}

//go:build linux

package hotkey

import (
	"fmt"
	"os"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const (
	portalBus      = "org.freedesktop.portal.Desktop"
	portalPath     = dbus.ObjectPath("/org/freedesktop/portal/desktop")
	shortcutsIface = "org.freedesktop.portal.GlobalShortcuts"
	requestIface   = "org.freedesktop.portal.Request"

	portalShortcutID = "capture-selection"

	// BindShortcuts may block on a consent dialog the user has to click.
	portalReplyTimeout = 30 * time.Second
)

// portalShortcut marshals as the (sa{sv}) struct the portal expects.
type portalShortcut struct {
	ID   string
	Meta map[string]dbus.Variant
}

// PortalBackend registers the shortcut through the desktop portal's
// global-shortcuts interface. The compositor owns the actual grab and
// reports presses as Activated signals. This is the only Wayland mechanism
// that delivers into the process directly; compositors without the interface
// make Register fail and the caller falls back to shell registration.
type PortalBackend struct {
	log     zerolog.Logger
	conn    *dbus.Conn
	signals chan *dbus.Signal
	session dbus.ObjectPath
}

func NewPortalBackend(log zerolog.Logger) *PortalBackend {
	conn, err := dbus.SessionBus()
	if err != nil {
		log.Debug().Err(err).Msg("no session bus, portal backend unavailable")
		return &PortalBackend{log: log}
	}
	return &PortalBackend{log: log, conn: conn}
}

func (b *PortalBackend) Name() string { return "desktop-portal" }

// Available reports whether the portal service owns its bus name. A portal
// without the GlobalShortcuts interface surfaces later as a Register error.
func (b *PortalBackend) Available() bool {
	if b.conn == nil {
		return false
	}
	var owned bool
	err := b.conn.BusObject().Call("org.freedesktop.DBus.NameHasOwner", 0, portalBus).Store(&owned)
	return err == nil && owned
}

// Register runs the CreateSession / BindShortcuts handshake and then listens
// for Activated signals. Each portal call returns a request object whose
// Response signal carries the actual result.
func (b *PortalBackend) Register(combo Combo, fire func()) error {
	if b.conn == nil {
		return errors.New("no session bus")
	}

	b.signals = make(chan *dbus.Signal, 16)
	b.conn.Signal(b.signals)
	if err := b.conn.AddMatchSignal(
		dbus.WithMatchInterface(requestIface),
		dbus.WithMatchMember("Response"),
	); err != nil {
		return errors.Wrap(err, "subscribe to portal responses")
	}

	desktop := b.conn.Object(portalBus, portalPath)
	token := fmt.Sprintf("swiftlingo%d", os.Getpid())

	var request dbus.ObjectPath
	err := desktop.Call(shortcutsIface+".CreateSession", 0, map[string]dbus.Variant{
		"handle_token":         dbus.MakeVariant(token),
		"session_handle_token": dbus.MakeVariant("swiftlingo"),
	}).Store(&request)
	if err != nil {
		return errors.Wrap(err, "create portal session")
	}
	results, err := b.waitResponse(request)
	if err != nil {
		return errors.Wrap(err, "create portal session")
	}
	session, _ := results["session_handle"].Value().(string)
	if session == "" {
		return errors.New("portal returned no session handle")
	}
	b.session = dbus.ObjectPath(session)

	shortcuts := []portalShortcut{{
		ID: portalShortcutID,
		Meta: map[string]dbus.Variant{
			"description":       dbus.MakeVariant("Capture the current selection"),
			"preferred_trigger": dbus.MakeVariant(combo.PortalTrigger()),
		},
	}}
	err = desktop.Call(shortcutsIface+".BindShortcuts", 0,
		b.session, shortcuts, "", map[string]dbus.Variant{
			"handle_token": dbus.MakeVariant(token + "bind"),
		}).Store(&request)
	if err != nil {
		return errors.Wrap(err, "bind portal shortcut")
	}
	if _, err := b.waitResponse(request); err != nil {
		return errors.Wrap(err, "bind portal shortcut")
	}

	if err := b.conn.AddMatchSignal(
		dbus.WithMatchInterface(shortcutsIface),
		dbus.WithMatchMember("Activated"),
	); err != nil {
		return errors.Wrap(err, "subscribe to shortcut activations")
	}

	go b.listen(fire)
	b.log.Info().Str("trigger", combo.PortalTrigger()).Msg("portal shortcut bound")
	return nil
}

// waitResponse blocks until the Response signal for the given request object
// arrives. Response code 0 is success; 1 means the user dismissed the
// consent dialog.
func (b *PortalBackend) waitResponse(request dbus.ObjectPath) (map[string]dbus.Variant, error) {
	deadline := time.After(portalReplyTimeout)
	for {
		select {
		case sig, ok := <-b.signals:
			if !ok {
				return nil, errors.New("signal channel closed")
			}
			if sig.Path != request || sig.Name != requestIface+".Response" || len(sig.Body) < 2 {
				continue
			}
			code, _ := sig.Body[0].(uint32)
			if code != 0 {
				return nil, errors.Errorf("portal request declined (response %d)", code)
			}
			results, _ := sig.Body[1].(map[string]dbus.Variant)
			return results, nil
		case <-deadline:
			return nil, errors.New("timed out waiting for portal response")
		}
	}
}

func (b *PortalBackend) listen(fire func()) {
	for sig := range b.signals {
		if sig.Name != shortcutsIface+".Activated" || len(sig.Body) < 2 {
			continue
		}
		if id, _ := sig.Body[1].(string); id != portalShortcutID {
			continue
		}
		b.log.Debug().Msg("portal shortcut activated")
		fire()
	}
}

// Close detaches from the bus. The session bus connection itself is shared
// process-wide and stays open.
func (b *PortalBackend) Close() error {
	if b.conn != nil && b.signals != nil {
		b.conn.RemoveSignal(b.signals)
		close(b.signals)
		b.signals = nil
	}
	return nil
}

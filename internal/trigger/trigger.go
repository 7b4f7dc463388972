// Package trigger implements the filesystem signaling channel between the
// hotkey detection side and the UI loop. Each event kind is a single marker
// file under the user's config directory: existence plus modification time is
// the signal, file content is the payload. Files are the one IPC primitive
// that also works when the detecting side is a shell script spawned by the
// desktop's shortcut daemon rather than this process.
package trigger

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Kind names one marker file in the channel directory.
type Kind string

const (
	// KindHotkey is touched by the detection side (or by the shortcut
	// script) every time the key combination fires.
	KindHotkey Kind = "hotkey-trigger"

	// KindSelection carries the captured selection text as file content.
	KindSelection Kind = "selection.txt"

	// KindFocus asks the UI loop to raise and focus the window.
	KindFocus Kind = "focus-window"
)

// Channel is a single-slot, overwrite-based mailbox per event kind. Writers
// may live in another process; readers consume with read-then-delete, so each
// write is delivered at most once.
type Channel struct {
	dir string
	log zerolog.Logger
}

// NewChannel creates the channel rooted at dir, creating the directory if
// needed.
func NewChannel(dir string, log zerolog.Logger) (*Channel, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create trigger directory")
	}
	return &Channel{dir: dir, log: log}, nil
}

// Dir returns the channel's directory.
func (c *Channel) Dir() string { return c.dir }

// Path returns the marker file path for kind. Shortcut scripts touch this
// path directly, so it is part of the channel's external contract.
func (c *Channel) Path(kind Kind) string { return filepath.Join(c.dir, string(kind)) }

// Signal creates or overwrites the marker for kind with payload as content.
// The marker's modification time is the implicit sequence number. The write
// goes through a temp file and rename so a concurrent poll never observes a
// half-written payload.
func (c *Channel) Signal(kind Kind, payload string) error {
	tmp, err := os.CreateTemp(c.dir, string(kind)+".*")
	if err != nil {
		return errors.Wrapf(err, "signal %s", kind)
	}
	if _, err := tmp.WriteString(payload); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return errors.Wrapf(err, "signal %s", kind)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrapf(err, "signal %s", kind)
	}
	if err := os.Rename(tmp.Name(), c.Path(kind)); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrapf(err, "signal %s", kind)
	}
	return nil
}

// Pending reports whether a marker for kind currently exists, without
// consuming it.
func (c *Channel) Pending(kind Kind) bool {
	_, err := os.Stat(c.Path(kind))
	return err == nil
}

// Poll consumes the marker for kind if its modification time is newer than
// lastSeen. It reads the payload, deletes the marker, and returns the payload
// with the observed modification time; the caller keeps the returned time as
// its next lastSeen. Deleting before the caller acts is what makes delivery
// at-most-once even if the consumer crashes mid-action.
//
// Any stat or read failure is treated as "no event yet": a marker may be
// mid-write by another process, and the next poll tick will see it whole.
func (c *Channel) Poll(kind Kind, lastSeen time.Time) (payload string, mtime time.Time, ok bool) {
	path := c.Path(kind)

	info, err := os.Stat(path)
	if err != nil {
		return "", lastSeen, false
	}
	mtime = info.ModTime()
	if !mtime.After(lastSeen) {
		return "", lastSeen, false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		// Racing a writer; retry next tick.
		c.log.Debug().Str("kind", string(kind)).Err(err).Msg("marker read raced, retrying next tick")
		return "", lastSeen, false
	}

	c.Clear(kind)
	return string(data), mtime, true
}

// Clear removes the marker for kind. Removing an absent marker is a no-op,
// never an error.
func (c *Channel) Clear(kind Kind) {
	if err := os.Remove(c.Path(kind)); err != nil && !os.IsNotExist(err) {
		c.log.Debug().Str("kind", string(kind)).Err(err).Msg("could not remove marker")
	}
}

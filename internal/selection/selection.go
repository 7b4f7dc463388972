//go:build linux

// Package selection retrieves the current primary text selection: the text
// the user has highlighted in whatever application is focused. Capture is
// total: every failure mode yields an empty string, never an error, and the
// whole attempt is bounded so a wedged clipboard owner cannot hang the
// trigger path.
package selection

import (
	"context"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/rs/zerolog"

	"github.com/swiftlingo/swiftlingo/internal/display"
)

// captureTimeout bounds one whole Capture call, library attempt and tool
// fallbacks together.
const captureTimeout = 2 * time.Second

// tool is one external fallback command. extraEnv entries override the
// inherited environment; "WAYLAND_DISPLAY=" forces an XWayland code path in
// tools that would otherwise speak Wayland.
type tool struct {
	name     string
	args     []string
	extraEnv []string
}

// runFunc executes a fallback tool and returns its stdout. Injected in tests.
type runFunc func(ctx context.Context, t tool) (string, error)

// Reader captures the primary selection for one display-server kind.
type Reader struct {
	log    zerolog.Logger
	server display.Server

	readPrimary func() (string, error) // clipboard-library attempt
	run         runFunc
	timeout     time.Duration
}

// NewReader returns a Reader for the given display server.
func NewReader(server display.Server, log zerolog.Logger) *Reader {
	return &Reader{
		log:         log,
		server:      server,
		readPrimary: readPrimaryClipboard,
		run:         runTool,
		timeout:     captureTimeout,
	}
}

// Capture returns the current primary selection, or "" if none could be
// retrieved within the time bound. Callers treat "" as "nothing to do".
func (r *Reader) Capture() string {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	if text := r.capturePrimary(ctx); text != "" {
		return text
	}

	for _, t := range r.fallbacks() {
		if ctx.Err() != nil {
			r.log.Debug().Msg("selection capture timed out, giving up")
			break
		}
		out, err := r.run(ctx, t)
		if err != nil {
			r.log.Debug().Str("tool", t.name).Err(err).Msg("selection fallback failed")
			continue
		}
		if out != "" {
			return out
		}
	}
	return ""
}

// capturePrimary tries the clipboard library. The read shells out under the
// hood and can block on a dead selection owner, so it runs on its own
// goroutine and is abandoned at the deadline; the stray goroutine exits when
// the underlying tool does.
func (r *Reader) capturePrimary(ctx context.Context) string {
	done := make(chan string, 1)
	go func() {
		text, err := r.readPrimary()
		if err != nil {
			done <- ""
			return
		}
		done <- text
	}()

	select {
	case text := <-done:
		return text
	case <-ctx.Done():
		r.log.Debug().Msg("primary selection read did not complete in time")
		return ""
	}
}

// fallbacks returns the external tools to try, in order, for the detected
// display server. Each is attempted only if the previous yielded nothing.
func (r *Reader) fallbacks() []tool {
	xclip := tool{name: "xclip", args: []string{"-o", "-selection", "primary"}}
	xsel := tool{name: "xsel", args: []string{"--primary"}}
	wlPaste := tool{name: "wl-paste", args: []string{"--primary"}}
	// Compatibility-layer sessions: an X11 tool with the Wayland connection
	// suppressed reaches the XWayland selection.
	xwayland := tool{name: "xclip", args: []string{"-o", "-selection", "primary"}, extraEnv: []string{"WAYLAND_DISPLAY="}}

	switch r.server {
	case display.Wayland:
		return []tool{wlPaste, xwayland}
	case display.X11:
		return []tool{xclip, xsel}
	default:
		return []tool{xclip, xsel, wlPaste, xwayland}
	}
}

func readPrimaryClipboard() (string, error) {
	clipboard.Primary = true
	defer func() { clipboard.Primary = false }()
	return clipboard.ReadAll()
}

func runTool(ctx context.Context, t tool) (string, error) {
	cmd := exec.CommandContext(ctx, t.name, t.args...)
	if len(t.extraEnv) > 0 {
		cmd.Env = append(os.Environ(), t.extraEnv...)
	}
	out, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.ToValidUTF8(string(out), ""), nil
}

//go:build linux

package ui

import (
	"github.com/gen2brain/beeep"
	"github.com/rs/zerolog"
)

// NotificationManager shows desktop notifications when the user has them
// enabled. A failing notification daemon is logged and otherwise ignored.
type NotificationManager struct {
	enabled bool
	log     zerolog.Logger
}

func NewNotificationManager(enabled bool, log zerolog.Logger) *NotificationManager {
	return &NotificationManager{enabled: enabled, log: log}
}

// Show displays a notification with the given title and message.
func (n *NotificationManager) Show(title, message string) {
	if !n.enabled {
		n.log.Debug().Str("title", title).Msg("notification suppressed by config")
		return
	}
	if err := beeep.Notify(title, message, ""); err != nil {
		n.log.Debug().Err(err).Msg("could not show notification")
	}
}

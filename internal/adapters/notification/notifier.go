// Package notification provides desktop notification utilities.
package notification

import (
	"fmt"

	"github.com/gen2brain/beeep"
	"github.com/xvierd/hourglass/internal/config"
)

// Notifier handles desktop notifications.
type Notifier struct {
	cfg  *config.NotificationConfig
	send func(title, message string, icon any) error
}

// New creates a new notifier with the given configuration.
func New(cfg *config.NotificationConfig) *Notifier {
	return &Notifier{cfg: cfg, send: beeep.Notify}
}

// Notify displays a desktop notification if enabled.
func (n *Notifier) Notify(title, message string) error {
	if !n.IsEnabled() {
		return nil
	}

	return n.send(title, message, "")
}

// NotifyCountdownDone displays a notification when the countdown reaches zero.
func (n *Notifier) NotifyCountdownDone(duration string) error {
	title := "⏳ Countdown finished"
	message := fmt.Sprintf("Your %s countdown is done.", duration)
	return n.Notify(title, message)
}

// NotifyDeadlineReached displays a notification when the deadline passes.
func (n *Notifier) NotifyDeadlineReached(target string) error {
	title := "⌛ Deadline reached"
	message := fmt.Sprintf("The deadline %s has arrived.", target)
	return n.Notify(title, message)
}

// IsEnabled returns true if notifications are enabled.
func (n *Notifier) IsEnabled() bool {
	return n.cfg != nil && n.cfg.Enabled
}

package desktop

import (
	"context"

	"med-reminder/internal/domain/reminders"
	"med-reminder/internal/domain/tracker"

	"github.com/gen2brain/beeep"
)

// Notifier muestra popups nativos y hace sonar la alarma en el equipo.
type Notifier struct {
	notify func(title, message, appIcon string) error
	alert  func(title, message, appIcon string) error
	beep   func(freq float64, duration int) error
	icon   string
}

var _ reminders.Notifier = (*Notifier)(nil)

func New(icon string) *Notifier {
	return &Notifier{
		notify: beeep.Notify,
		alert:  beeep.Alert,
		beep:   beeep.Beep,
		icon:   icon,
	}
}

func (n *Notifier) Alert(_ context.Context, a tracker.Alert) error {
	title, body := reminders.AlertText(a)
	return n.alert(title, body, n.icon)
}

func (n *Notifier) Ring(_ context.Context, _ tracker.Alert) error {
	return n.beep(beeep.DefaultFreq, beeep.DefaultDuration)
}

func (n *Notifier) Notify(_ context.Context, title, message string) error {
	return n.notify(title, message, n.icon)
}

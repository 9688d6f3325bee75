package mainwindow

import (
	"fyne.io/fyne/v2"

	"pomoblock/internal/core/scheduler"
)

// NewAlarm returns an alarm that posts a desktop notification on every
// phase flip.
func NewAlarm(fyneApp fyne.App) scheduler.Alarm {
	return scheduler.AlarmFunc(func(transition scheduler.Transition) {
		fyneApp.SendNotification(notificationFor(transition))
	})
}

func notificationFor(transition scheduler.Transition) *fyne.Notification {
	if transition.To == scheduler.PhaseBreak {
		return fyne.NewNotification("Break time", "Blocking is off. Step away from the screen.")
	}
	return fyne.NewNotification("Back to work", "Blocking is on again.")
}

// Package tray manages the system tray menu.
package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"pomoblock/internal/app"
	"pomoblock/internal/core/scheduler"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow  func()
	OnStart func()
	OnPause func()
	OnReset func()
	OnQuit  func()
}

// Manager handles system tray state.
type Manager struct {
	app        desktop.App
	menu       *fyne.Menu
	statusItem *fyne.MenuItem
	startItem  *fyne.MenuItem
	pauseItem  *fyne.MenuItem
	callbacks  Callbacks
	status     string
}

// New creates a tray manager with the provided callbacks.
func New(desktopApp desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       desktopApp,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem("Status: idle", nil)
	manager.statusItem.Disabled = true

	show := fyne.NewMenuItem("Show timer", invoke(&manager.callbacks.OnShow))
	manager.startItem = fyne.NewMenuItem("Start", invoke(&manager.callbacks.OnStart))
	manager.pauseItem = fyne.NewMenuItem("Pause", invoke(&manager.callbacks.OnPause))
	manager.pauseItem.Disabled = true
	reset := fyne.NewMenuItem("Reset", invoke(&manager.callbacks.OnReset))
	quit := fyne.NewMenuItem("Quit", invoke(&manager.callbacks.OnQuit))
	quit.IsQuit = true

	manager.menu = fyne.NewMenu(app.DisplayName,
		manager.statusItem,
		fyne.NewMenuItemSeparator(),
		show,
		manager.startItem,
		manager.pauseItem,
		reset,
		fyne.NewMenuItemSeparator(),
		quit,
	)
	manager.refreshMenu()

	return manager
}

// Update reflects a scheduler snapshot in the menu. Menu items are only
// rebuilt when the visible text or enablement changes.
func (manager *Manager) Update(snapshot scheduler.Snapshot) {
	status := statusText(snapshot)
	running := snapshot.Running()
	if status == manager.status && manager.startItem.Disabled == running {
		return
	}
	manager.status = status
	manager.statusItem.Label = "Status: " + status
	manager.startItem.Disabled = running
	manager.pauseItem.Disabled = !running
	manager.refreshMenu()
}

func (manager *Manager) refreshMenu() {
	if manager.app != nil {
		manager.app.SetSystemTrayMenu(manager.menu)
	}
}

func statusText(snapshot scheduler.Snapshot) string {
	switch snapshot.State {
	case scheduler.StateIdle:
		return "idle"
	case scheduler.StatePaused:
		return fmt.Sprintf("%s paused at %s", snapshot.Phase, snapshot.Clock())
	}
	// Whole minutes keep the menu from being rebuilt every second.
	minutes := (snapshot.RemainingSeconds + 59) / 60
	return fmt.Sprintf("%s, %d min left", snapshot.Phase, minutes)
}

func invoke(handler *func()) func() {
	return func() {
		if *handler != nil {
			(*handler)()
		}
	}
}

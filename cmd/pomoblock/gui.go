package main

import (
	"log"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"github.com/spf13/cobra"

	"pomoblock/internal/app"
	"pomoblock/internal/platform"
	"pomoblock/internal/ui/mainwindow"
	"pomoblock/internal/ui/tray"
)

const appID = "com.pomoblock.app"

func runGUI(cmd *cobra.Command) error {
	lock, err := platform.AcquireInstanceLock(app.Name)
	if err != nil {
		return err
	}
	defer func() {
		_ = lock.Release()
	}()

	fyneApp := fyneapp.NewWithID(appID)
	fyneApp.SetIcon(theme.HistoryIcon())

	runtime := app.New(cfg, platform.NewProcessTable())
	runtime.Scheduler.SetAlarm(mainwindow.NewAlarm(fyneApp))

	view := mainwindow.New(fyneApp, runtime)
	view.Bind()

	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager := tray.New(desktopApp, tray.Callbacks{
			OnShow:  view.Show,
			OnStart: view.Start,
			OnPause: runtime.Scheduler.Pause,
			OnReset: view.Reset,
			OnQuit:  fyneApp.Quit,
		})
		desktopApp.SetSystemTrayIcon(theme.HistoryIcon())
		trayManager.Update(runtime.Scheduler.Snapshot())

		events := runtime.Scheduler.Subscribe(4)
		go func() {
			for range events {
				fyne.Do(func() {
					trayManager.Update(runtime.Scheduler.Snapshot())
				})
			}
		}()
		view.HideOnClose()
	} else {
		log.Printf("gui: system tray unsupported, closing the window quits")
	}

	runtime.Start(cmd.Context())
	defer runtime.Stop()

	view.Show()
	if configErr != nil {
		view.ShowError(configErr)
	}
	fyneApp.Run()
	return nil
}

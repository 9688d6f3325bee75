// Package mainwindow implements the desktop timer window.
package mainwindow

import (
	"errors"
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"pomoblock/internal/app"
	"pomoblock/internal/core/enforcer"
	"pomoblock/internal/core/presentation"
	"pomoblock/internal/core/scheduler"
	"pomoblock/internal/ui/preferences"
)

// ErrTopMostUnsupported is returned when the window system offers no way to
// keep the window above others.
var ErrTopMostUnsupported = errors.New("always on top is not supported on this platform")

var (
	workColor  = color.NRGBA{R: 214, G: 69, B: 65, A: 255}
	breakColor = color.NRGBA{R: 76, G: 175, B: 80, A: 255}
	idleColor  = color.NRGBA{R: 160, G: 160, B: 160, A: 255}
)

const (
	fullWidth     = float32(420)
	fullHeight    = float32(520)
	compactWidth  = float32(220)
	compactHeight = float32(64)
)

// Window is the main timer window.
type Window struct {
	app     fyne.App
	window  fyne.Window
	runtime *app.Runtime

	phaseLabel   *canvas.Text
	clockLabel   *canvas.Text
	compactClock *canvas.Text
	statusLabel  *widget.Label
	form         *preferences.Form

	startButton   *widget.Button
	pauseButton   *widget.Button
	resetButton   *widget.Button
	compactButton *widget.Button
	pinButton     *widget.Button
	compactStart  *widget.Button
	compactPause  *widget.Button

	blockNames []string
	full       fyne.CanvasObject
	compact    fyne.CanvasObject
	compactOn  bool
}

// New builds the window around a runtime. Call Bind before Show.
func New(fyneApp fyne.App, runtime *app.Runtime) *Window {
	window := fyneApp.NewWindow(app.DisplayName)
	if fyneApp.Icon() != nil {
		window.SetIcon(fyneApp.Icon())
	}

	view := &Window{
		app:        fyneApp,
		window:     window,
		runtime:    runtime,
		blockNames: runtime.BlockList.Names(),
		form:       preferences.NewForm(runtime.Scheduler.Durations()),
	}

	view.phaseLabel = canvas.NewText("", idleColor)
	view.phaseLabel.Alignment = fyne.TextAlignCenter
	view.phaseLabel.TextStyle = fyne.TextStyle{Bold: true}
	view.phaseLabel.TextSize = 16

	view.clockLabel = canvas.NewText("--:--", theme.Color(theme.ColorNameForeground))
	view.clockLabel.Alignment = fyne.TextAlignCenter
	view.clockLabel.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	view.clockLabel.TextSize = 56

	view.compactClock = canvas.NewText("--:--", theme.Color(theme.ColorNameForeground))
	view.compactClock.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	view.compactClock.TextSize = 24

	view.statusLabel = widget.NewLabel("")
	view.statusLabel.Wrapping = fyne.TextWrapWord

	view.startButton = widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), view.Start)
	view.startButton.Importance = widget.HighImportance
	view.pauseButton = widget.NewButtonWithIcon("Pause", theme.MediaPauseIcon(), view.runtime.Scheduler.Pause)
	view.resetButton = widget.NewButtonWithIcon("Reset", theme.MediaReplayIcon(), view.Reset)
	view.compactButton = widget.NewButtonWithIcon("Compact", theme.ViewRestoreIcon(), view.toggleCompact)
	view.pinButton = widget.NewButton("", view.togglePin)
	view.compactStart = widget.NewButtonWithIcon("", theme.MediaPlayIcon(), view.Start)
	view.compactPause = widget.NewButtonWithIcon("", theme.MediaPauseIcon(), view.runtime.Scheduler.Pause)

	blockList := widget.NewList(
		func() int { return len(view.blockNames) },
		func() fyne.CanvasObject { return widget.NewLabel("template") },
		func(id widget.ListItemID, object fyne.CanvasObject) {
			object.(*widget.Label).SetText(view.blockNames[id])
		},
	)

	header := container.New(&clockLayout{}, view.phaseLabel, view.clockLabel)
	controls := container.NewGridWithColumns(3, view.startButton, view.pauseButton, view.resetButton)
	toggles := container.NewGridWithColumns(2, view.compactButton, view.pinButton)
	top := container.NewVBox(
		header,
		container.NewCenter(view.form.Object()),
		controls,
		toggles,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Closed while working", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
	)
	view.full = container.NewBorder(top, view.statusLabel, nil, nil, blockList)

	expand := widget.NewButtonWithIcon("", theme.ViewFullScreenIcon(), view.toggleCompact)
	view.compact = container.NewHBox(view.compactClock, view.compactStart, view.compactPause, expand)

	window.SetContent(container.NewStack(view.full, view.compact))
	view.compact.Hide()
	window.Resize(fyne.NewSize(fullWidth, fullHeight))

	view.render(runtime.Scheduler.Snapshot())
	view.applyPresentation(runtime.Presentation.State())
	return view
}

// Bind subscribes the window to scheduler, presentation and scan updates.
// It must be called once before the runtime is started.
func (view *Window) Bind() {
	events := view.runtime.Scheduler.Subscribe(8)
	go func() {
		for range events {
			fyne.Do(func() {
				view.render(view.runtime.Scheduler.Snapshot())
			})
		}
	}()

	view.runtime.Presentation.OnChange(func(state presentation.State) {
		fyne.Do(func() {
			view.applyPresentation(state)
		})
	})
	view.runtime.Presentation.SetPinner(view)

	view.runtime.OnReport(func(report enforcer.Report) {
		status := reportStatus(report)
		if status == "" {
			return
		}
		fyne.Do(func() {
			view.statusLabel.SetText(status)
		})
	})

	view.app.Lifecycle().SetOnEnteredForeground(view.runtime.Presentation.FocusRegained)
}

// HideOnClose makes the close button hide the window instead of quitting.
func (view *Window) HideOnClose() {
	view.window.SetCloseIntercept(view.window.Hide)
}

// Show displays the window and brings it to the front.
func (view *Window) Show() {
	view.window.Show()
	view.window.RequestFocus()
}

// Window returns the underlying fyne window.
func (view *Window) Window() fyne.Window {
	return view.window
}

// ShowError reports a problem in a dialog attached to the window.
func (view *Window) ShowError(err error) {
	dialog.ShowError(err, view.window)
}

// SetAlwaysOnTop implements presentation.Pinner.
func (view *Window) SetAlwaysOnTop(enabled bool) error {
	return view.setTopMost(enabled)
}

// Start applies the form's durations when the timer is stopped and starts it.
func (view *Window) Start() {
	snapshot := view.runtime.Scheduler.Snapshot()
	if !snapshot.Running() && !view.applyDurations() {
		return
	}
	view.runtime.Scheduler.Start()
}

// Reset stops the timer and applies the form's durations.
func (view *Window) Reset() {
	view.runtime.Scheduler.Reset()
	view.applyDurations()
}

// applyDurations pushes the form values to the scheduler. The scheduler only
// accepts them while the timer is stopped.
func (view *Window) applyDurations() bool {
	durations, err := view.form.Durations()
	if err != nil {
		view.ShowError(err)
		return false
	}
	if err := view.runtime.Scheduler.SetDurations(durations.WorkMinutes, durations.BreakMinutes); err != nil {
		view.ShowError(err)
		return false
	}
	return true
}

func (view *Window) toggleCompact() {
	view.runtime.Presentation.ToggleCompactView()
}

func (view *Window) togglePin() {
	view.runtime.Presentation.ToggleTopMostLock()
}

func (view *Window) render(snapshot scheduler.Snapshot) {
	accent := idleColor
	if snapshot.State != scheduler.StateIdle {
		accent = workColor
		if snapshot.Phase == scheduler.PhaseBreak {
			accent = breakColor
		}
	}

	view.phaseLabel.Text = snapshot.PhaseLabel()
	view.phaseLabel.Color = accent
	view.phaseLabel.Refresh()

	view.clockLabel.Text = snapshot.Clock()
	view.clockLabel.Refresh()

	view.compactClock.Text = snapshot.Clock()
	view.compactClock.Color = accent
	view.compactClock.Refresh()

	running := snapshot.Running()
	setEnabled(view.startButton, !running)
	setEnabled(view.compactStart, !running)
	setEnabled(view.pauseButton, running)
	setEnabled(view.compactPause, running)
	view.form.SetEnabled(!running)
	if snapshot.State == scheduler.StateIdle {
		view.form.SetDurations(view.runtime.Scheduler.Durations())
	}
}

func (view *Window) applyPresentation(state presentation.State) {
	if state.TopMostLock {
		view.pinButton.SetText("Keep on top: on")
		view.pinButton.SetIcon(theme.CheckButtonCheckedIcon())
	} else {
		view.pinButton.SetText("Keep on top: off")
		view.pinButton.SetIcon(theme.CheckButtonIcon())
	}

	if state.CompactView == view.compactOn {
		return
	}
	view.compactOn = state.CompactView
	if state.CompactView {
		view.full.Hide()
		view.compact.Show()
		view.window.Resize(fyne.NewSize(compactWidth, compactHeight))
		return
	}
	view.compact.Hide()
	view.full.Show()
	view.window.Resize(fyne.NewSize(fullWidth, fullHeight))
}

func reportStatus(report enforcer.Report) string {
	if report.Err != nil {
		return fmt.Sprintf("Scan failed: %v", report.Err)
	}
	terminated := report.Terminated()
	failed := report.Failed()
	switch {
	case len(terminated) > 0 && len(failed) > 0:
		return fmt.Sprintf("Closed %s; could not close %s", terminated[0].ProcessName, failed[0].ProcessName)
	case len(terminated) > 0:
		return fmt.Sprintf("Closed %s (pid %d) at %s", terminated[0].ProcessName, terminated[0].PID, report.ScannedAt.Format("15:04:05"))
	case len(failed) > 0:
		return fmt.Sprintf("Could not close %s: %s", failed[0].ProcessName, failed[0].Reason)
	}
	return ""
}

func setEnabled(button *widget.Button, enabled bool) {
	if enabled {
		button.Enable()
		return
	}
	button.Disable()
}

// clockLayout stacks the phase label above the clock and centers both.
type clockLayout struct{}

func (layout *clockLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) < 2 {
		return
	}
	phase := objects[0]
	clock := objects[1]

	pad := theme.Padding()
	phaseSize := phase.MinSize()
	phase.Move(fyne.NewPos(0, pad))
	phase.Resize(fyne.NewSize(size.Width, phaseSize.Height))

	clockSize := clock.MinSize()
	clockY := pad*2 + phaseSize.Height
	if remaining := size.Height - clockY - clockSize.Height; remaining > 0 {
		clockY += remaining / 2
	}
	clock.Move(fyne.NewPos(0, clockY))
	clock.Resize(fyne.NewSize(size.Width, clockSize.Height))
}

func (layout *clockLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	if len(objects) < 2 {
		return fyne.NewSize(0, 0)
	}
	phaseSize := objects[0].MinSize()
	clockSize := objects[1].MinSize()
	width := phaseSize.Width
	if clockSize.Width > width {
		width = clockSize.Width
	}
	return fyne.NewSize(width+theme.Padding()*2, phaseSize.Height+clockSize.Height+theme.Padding()*4)
}

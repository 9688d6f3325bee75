// Package presentation derives window pin and compact state from the
// scheduler.
package presentation

import (
	"log"
	"sync"

	"pomoblock/internal/core/scheduler"
)

// Pinner is the window capability that keeps the timer above other windows.
type Pinner interface {
	SetAlwaysOnTop(enabled bool) error
}

// State is the derived presentation state.
type State struct {
	PinTopMost  bool
	CompactView bool
	TopMostLock bool
}

// Controller tracks user toggles and issues pin requests on change.
//
// applyMu serializes reading the desired pin value with pushing it to the
// window, so the last request the window sees always matches the current
// state. It is always taken before mu.
type Controller struct {
	mu          sync.Mutex
	pinner      Pinner
	pinnerGen   int
	topMostLock bool
	compact     bool
	running     bool
	onChange    func(State)

	applyMu    sync.Mutex
	appliedGen int
	pinned     bool
	lastErr    string
}

// New creates a controller with the initial toggle values.
func New(topMostLock, compact bool) *Controller {
	return &Controller{
		topMostLock: topMostLock,
		compact:     compact,
	}
}

// SetPinner attaches the window capability and applies the current value.
func (controller *Controller) SetPinner(pinner Pinner) {
	controller.mu.Lock()
	controller.pinner = pinner
	controller.pinnerGen++
	callback := controller.syncLocked(false)
	controller.mu.Unlock()
	callback()
}

// OnChange registers a callback fired after any state change.
func (controller *Controller) OnChange(handler func(State)) {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	controller.onChange = handler
}

// State returns the current derived state.
func (controller *Controller) State() State {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.stateLocked()
}

// Observe updates the running flag from a scheduler snapshot.
func (controller *Controller) Observe(snapshot scheduler.Snapshot) {
	controller.mu.Lock()
	if controller.running == snapshot.Running() {
		controller.mu.Unlock()
		return
	}
	controller.running = snapshot.Running()
	callback := controller.syncLocked(false)
	controller.mu.Unlock()
	callback()
}

// FocusRegained reissues the current pin value to the window.
func (controller *Controller) FocusRegained() {
	controller.mu.Lock()
	callback := controller.syncLocked(true)
	controller.mu.Unlock()
	callback()
}

// ToggleTopMostLock flips the user's pin preference.
func (controller *Controller) ToggleTopMostLock() State {
	controller.mu.Lock()
	controller.topMostLock = !controller.topMostLock
	state := controller.stateLocked()
	callback := controller.syncLocked(false)
	controller.mu.Unlock()
	callback()
	return state
}

// ToggleCompactView flips the compact layout. It never affects the timer.
func (controller *Controller) ToggleCompactView() State {
	controller.mu.Lock()
	controller.compact = !controller.compact
	state := controller.stateLocked()
	callback := controller.notifyLocked()
	controller.mu.Unlock()
	callback()
	return state
}

func (controller *Controller) stateLocked() State {
	return State{
		PinTopMost:  controller.running && controller.topMostLock,
		CompactView: controller.compact,
		TopMostLock: controller.topMostLock,
	}
}

// syncLocked returns a callback, to run after unlocking, that brings the
// window in line with the current pin value. With force set the value is
// reissued even when unchanged.
func (controller *Controller) syncLocked(force bool) func() {
	notify := controller.notifyLocked()
	return func() {
		controller.applyPin(force)
		notify()
	}
}

// applyPin reads the pin value at apply time rather than at decision time,
// so a request that waited behind a slow one cannot push a stale value.
func (controller *Controller) applyPin(force bool) {
	controller.applyMu.Lock()
	defer controller.applyMu.Unlock()

	controller.mu.Lock()
	pin := controller.stateLocked().PinTopMost
	pinner := controller.pinner
	gen := controller.pinnerGen
	controller.mu.Unlock()

	if pinner == nil {
		return
	}
	if !force && gen == controller.appliedGen && controller.pinned == pin {
		return
	}
	controller.appliedGen = gen
	controller.pinned = pin
	controller.reportPinError(pinner.SetAlwaysOnTop(pin))
}

// reportPinError logs each distinct failure once. Callers hold applyMu.
func (controller *Controller) reportPinError(err error) {
	if err == nil {
		controller.lastErr = ""
		return
	}
	if err.Error() != controller.lastErr {
		log.Printf("presentation: set always on top: %v", err)
		controller.lastErr = err.Error()
	}
}

func (controller *Controller) notifyLocked() func() {
	handler := controller.onChange
	state := controller.stateLocked()
	return func() {
		if handler != nil {
			handler(state)
		}
	}
}

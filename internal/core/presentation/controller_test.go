package presentation

import (
	"errors"
	"sync"
	"testing"

	"pomoblock/internal/core/scheduler"
)

type fakePinner struct {
	mu    sync.Mutex
	calls []bool
	err   error
}

func (pinner *fakePinner) SetAlwaysOnTop(enabled bool) error {
	pinner.mu.Lock()
	defer pinner.mu.Unlock()
	pinner.calls = append(pinner.calls, enabled)
	return pinner.err
}

func (pinner *fakePinner) history() []bool {
	pinner.mu.Lock()
	defer pinner.mu.Unlock()
	return append([]bool(nil), pinner.calls...)
}

var (
	running = scheduler.Snapshot{State: scheduler.StateRunning, Phase: scheduler.PhaseWork}
	paused  = scheduler.Snapshot{State: scheduler.StatePaused, Phase: scheduler.PhaseWork}
	onBreak = scheduler.Snapshot{State: scheduler.StateRunning, Phase: scheduler.PhaseBreak}
)

func equalCalls(got, want []bool) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestPinFollowsRunningAndLock(t *testing.T) {
	controller := New(true, false)
	pinner := &fakePinner{}
	controller.SetPinner(pinner)

	controller.Observe(running)
	if !controller.State().PinTopMost {
		t.Fatal("running with lock enabled should pin")
	}
	controller.Observe(paused)
	if controller.State().PinTopMost {
		t.Fatal("paused should unpin")
	}

	if got := pinner.history(); !equalCalls(got, []bool{false, true, false}) {
		t.Fatalf("unexpected pin calls: %v", got)
	}
}

func TestPinRequestOnlyOnChange(t *testing.T) {
	controller := New(true, false)
	pinner := &fakePinner{}
	controller.SetPinner(pinner)

	for i := 0; i < 5; i++ {
		controller.Observe(running)
	}
	// A phase flip keeps the timer running, so the pin does not change.
	controller.Observe(onBreak)

	if got := pinner.history(); !equalCalls(got, []bool{false, true}) {
		t.Fatalf("unexpected pin calls: %v", got)
	}
}

func TestLockDisabledNeverPins(t *testing.T) {
	controller := New(false, false)
	pinner := &fakePinner{}
	controller.SetPinner(pinner)
	controller.Observe(running)

	if controller.State().PinTopMost {
		t.Fatal("lock disabled should never pin")
	}
	state := controller.ToggleTopMostLock()
	if !state.PinTopMost || !state.TopMostLock {
		t.Fatalf("toggle while running should pin: %+v", state)
	}
	if got := pinner.history(); !equalCalls(got, []bool{false, true}) {
		t.Fatalf("unexpected pin calls: %v", got)
	}
}

func TestFocusRegainedReissues(t *testing.T) {
	controller := New(true, false)
	pinner := &fakePinner{}
	controller.SetPinner(pinner)
	controller.Observe(running)
	controller.FocusRegained()
	controller.FocusRegained()

	if got := pinner.history(); !equalCalls(got, []bool{false, true, true, true}) {
		t.Fatalf("unexpected pin calls: %v", got)
	}
}

func TestCompactToggleDoesNotPin(t *testing.T) {
	controller := New(true, false)
	pinner := &fakePinner{}
	controller.SetPinner(pinner)

	var changes []State
	controller.OnChange(func(state State) {
		changes = append(changes, state)
	})

	state := controller.ToggleCompactView()
	if !state.CompactView {
		t.Fatal("compact view should be on")
	}
	state = controller.ToggleCompactView()
	if state.CompactView {
		t.Fatal("compact view should be off")
	}
	if got := pinner.history(); !equalCalls(got, []bool{false}) {
		t.Fatalf("compact toggle issued pin calls: %v", got)
	}
	if len(changes) != 2 {
		t.Fatalf("want 2 change callbacks, got %d", len(changes))
	}
}

func TestPinnerErrorsAreNotFatal(t *testing.T) {
	controller := New(true, false)
	pinner := &fakePinner{err: errors.New("unsupported")}
	controller.SetPinner(pinner)
	controller.Observe(running)
	controller.Observe(paused)

	if got := len(pinner.history()); got != 3 {
		t.Fatalf("want 3 attempts, got %d", got)
	}
}

func TestObserveWithoutPinner(t *testing.T) {
	controller := New(true, true)
	controller.Observe(running)
	state := controller.State()
	if !state.PinTopMost || !state.CompactView {
		t.Fatalf("unexpected state: %+v", state)
	}
}

// gatedPinner blocks the call numbered gateAt until release is closed.
type gatedPinner struct {
	fakePinner
	gateAt  int
	entered chan struct{}
	release chan struct{}
}

func (pinner *gatedPinner) SetAlwaysOnTop(enabled bool) error {
	pinner.mu.Lock()
	call := len(pinner.calls) + 1
	pinner.mu.Unlock()
	if call == pinner.gateAt {
		close(pinner.entered)
		<-pinner.release
	}
	return pinner.fakePinner.SetAlwaysOnTop(enabled)
}

func (pinner *gatedPinner) last() bool {
	history := pinner.history()
	return history[len(history)-1]
}

func TestSlowPinRequestCannotOverwriteNewerState(t *testing.T) {
	controller := New(true, false)
	pinner := &gatedPinner{gateAt: 3, entered: make(chan struct{}), release: make(chan struct{})}
	controller.SetPinner(pinner)
	controller.Observe(running)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		controller.FocusRegained()
	}()
	<-pinner.entered

	// The timer stops while the focus request is still in flight.
	go func() {
		defer wg.Done()
		controller.Observe(paused)
	}()
	close(pinner.release)
	wg.Wait()

	if controller.State().PinTopMost {
		t.Fatal("paused controller should not pin")
	}
	if pinner.last() {
		t.Fatalf("window left pinned after pause: %v", pinner.history())
	}

	controller.Observe(paused)
	if pinner.last() {
		t.Fatalf("window left pinned after a repeated pause: %v", pinner.history())
	}
}

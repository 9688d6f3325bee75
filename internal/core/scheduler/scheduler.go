// Package scheduler implements the work/break countdown state machine.
//
// The state machine only advances when Tick is called. Run drives it from a
// ticker, tests call Tick directly.
package scheduler

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"pomoblock/internal/core/model"
)

// ErrRunning is returned when durations are changed while the timer runs.
var ErrRunning = errors.New("durations cannot change while the timer is running")

type session struct {
	state        State
	phase        Phase
	remaining    int
	workSeconds  int
	breakSeconds int
}

// Scheduler owns the timer session and serializes every mutation.
type Scheduler struct {
	tickMu   sync.Mutex
	mu       sync.Mutex
	session  session
	alarm    Alarm
	events   []chan Event
	closed   bool
	snapshot atomic.Pointer[Snapshot]
}

// New creates an idle scheduler. Invalid durations are clamped into range.
func New(durations model.Durations) *Scheduler {
	durations = durations.Clamp()
	scheduler := &Scheduler{
		session: session{
			state:        StateIdle,
			phase:        PhaseWork,
			workSeconds:  durations.WorkSeconds(),
			breakSeconds: durations.BreakSeconds(),
		},
	}
	scheduler.session.remaining = scheduler.session.workSeconds
	scheduler.publishLocked()
	return scheduler
}

// SetAlarm injects the phase transition collaborator.
func (scheduler *Scheduler) SetAlarm(alarm Alarm) {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	scheduler.alarm = alarm
}

// Subscribe registers a new observer channel.
func (scheduler *Scheduler) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	if scheduler.closed {
		close(ch)
		return ch
	}
	scheduler.events = append(scheduler.events, ch)
	return ch
}

// Close closes all observer channels.
func (scheduler *Scheduler) Close() {
	scheduler.mu.Lock()
	if scheduler.closed {
		scheduler.mu.Unlock()
		return
	}
	scheduler.closed = true
	events := scheduler.events
	scheduler.events = nil
	scheduler.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

// Snapshot returns the latest published session state without locking.
func (scheduler *Scheduler) Snapshot() Snapshot {
	return *scheduler.snapshot.Load()
}

// Durations returns the configured phase lengths in minutes.
func (scheduler *Scheduler) Durations() model.Durations {
	snapshot := scheduler.Snapshot()
	return model.Durations{
		WorkMinutes:  snapshot.WorkSeconds / 60,
		BreakMinutes: snapshot.BreakSeconds / 60,
	}
}

// Start begins or resumes the countdown.
func (scheduler *Scheduler) Start() {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	if scheduler.session.state == StateRunning {
		return
	}
	if scheduler.session.remaining <= 0 {
		scheduler.session.phase = PhaseWork
		scheduler.session.remaining = scheduler.session.workSeconds
	}
	scheduler.session.state = StateRunning
	scheduler.emitLocked(EventStateChange, time.Now())
}

// Pause freezes the countdown. It is a no-op unless running.
func (scheduler *Scheduler) Pause() {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	if scheduler.session.state != StateRunning {
		return
	}
	scheduler.session.state = StatePaused
	scheduler.emitLocked(EventStateChange, time.Now())
}

// Reset returns to an idle work phase with the full work duration.
func (scheduler *Scheduler) Reset() {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	scheduler.session.state = StateIdle
	scheduler.session.phase = PhaseWork
	scheduler.session.remaining = scheduler.session.workSeconds
	scheduler.emitLocked(EventStateChange, time.Now())
}

// SetDurations updates the phase lengths. It fails while running or when a
// value is out of range, leaving the session untouched.
func (scheduler *Scheduler) SetDurations(workMinutes, breakMinutes int) error {
	durations := model.Durations{WorkMinutes: workMinutes, BreakMinutes: breakMinutes}
	if err := durations.Validate(); err != nil {
		return err
	}

	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	if scheduler.session.state == StateRunning {
		return ErrRunning
	}
	scheduler.session.workSeconds = durations.WorkSeconds()
	scheduler.session.breakSeconds = durations.BreakSeconds()
	if scheduler.session.state == StateIdle {
		scheduler.session.remaining = scheduler.session.workSeconds
	}
	scheduler.emitLocked(EventDurationsChange, time.Now())
	return nil
}

// Tick advances the countdown by one second.
func (scheduler *Scheduler) Tick() {
	scheduler.tickMu.Lock()
	defer scheduler.tickMu.Unlock()

	now := time.Now()
	scheduler.mu.Lock()
	if scheduler.session.state != StateRunning {
		scheduler.mu.Unlock()
		return
	}

	scheduler.session.remaining--
	var transition *Transition
	if scheduler.session.remaining <= 0 {
		from := scheduler.session.phase
		scheduler.session.phase = from.Opposite()
		scheduler.session.remaining = scheduler.durationLocked(scheduler.session.phase)
		transition = &Transition{From: from, To: scheduler.session.phase, At: now}
	}

	scheduler.emitLocked(EventTick, now)
	if transition != nil {
		scheduler.emitLocked(EventPhaseChange, now)
	}
	alarm := scheduler.alarm
	scheduler.mu.Unlock()

	if transition != nil && alarm != nil {
		alarm.PhaseChanged(*transition)
	}
}

// Run calls Tick every interval until ctx is done.
func (scheduler *Scheduler) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			scheduler.Tick()
		}
	}
}

func (scheduler *Scheduler) durationLocked(phase Phase) int {
	if phase == PhaseWork {
		return scheduler.session.workSeconds
	}
	return scheduler.session.breakSeconds
}

func (scheduler *Scheduler) publishLocked() Snapshot {
	snapshot := Snapshot{
		State:            scheduler.session.state,
		Phase:            scheduler.session.phase,
		RemainingSeconds: scheduler.session.remaining,
		WorkSeconds:      scheduler.session.workSeconds,
		BreakSeconds:     scheduler.session.breakSeconds,
	}
	scheduler.snapshot.Store(&snapshot)
	return snapshot
}

func (scheduler *Scheduler) emitLocked(eventType EventType, at time.Time) {
	event := Event{
		Type:     eventType,
		Snapshot: scheduler.publishLocked(),
		At:       at,
	}
	for _, ch := range scheduler.events {
		select {
		case ch <- event:
		default:
		}
	}
}

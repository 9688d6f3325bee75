package scheduler

import (
	"fmt"
	"time"
)

// State represents the session lifecycle.
type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
	StatePaused  State = "paused"
)

// Phase identifies which countdown is active.
type Phase string

const (
	PhaseWork  Phase = "work"
	PhaseBreak Phase = "break"
)

// Opposite returns the phase that follows this one.
func (phase Phase) Opposite() Phase {
	if phase == PhaseWork {
		return PhaseBreak
	}
	return PhaseWork
}

// EventType defines the type of scheduler event.
type EventType string

const (
	EventStateChange     EventType = "state_change"
	EventTick            EventType = "tick"
	EventPhaseChange     EventType = "phase_change"
	EventDurationsChange EventType = "durations_change"
)

// Event represents a scheduler update for observers.
type Event struct {
	Type     EventType
	Snapshot Snapshot
	At       time.Time
}

// Transition describes a single phase flip.
type Transition struct {
	From Phase
	To   Phase
	At   time.Time
}

// Alarm is notified once per phase flip, synchronously within the tick.
type Alarm interface {
	PhaseChanged(transition Transition)
}

// AlarmFunc adapts a plain function to Alarm.
type AlarmFunc func(Transition)

// PhaseChanged calls fn.
func (fn AlarmFunc) PhaseChanged(transition Transition) {
	fn(transition)
}

// Snapshot is a read-only copy of the timer session.
type Snapshot struct {
	State            State
	Phase            Phase
	RemainingSeconds int
	WorkSeconds      int
	BreakSeconds     int
}

// Running reports whether the countdown is advancing.
func (snapshot Snapshot) Running() bool {
	return snapshot.State == StateRunning
}

// EnforcementGate reports whether blocked processes should be terminated.
func (snapshot Snapshot) EnforcementGate() bool {
	return snapshot.State == StateRunning && snapshot.Phase == PhaseWork
}

// Clock formats the remaining time as mm:ss. Minutes do not wrap at 60.
func (snapshot Snapshot) Clock() string {
	return FormatClock(snapshot.RemainingSeconds)
}

// PhaseLabel returns a human readable phase description.
func (snapshot Snapshot) PhaseLabel() string {
	if snapshot.Phase == PhaseWork {
		return "WORK (blocking enabled)"
	}
	return "BREAK (blocking off)"
}

// FormatClock renders seconds as mm:ss.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

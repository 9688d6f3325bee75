package model

import "fmt"

// Valid minute ranges for the configurable phase durations.
const (
	MinWorkMinutes  = 1
	MaxWorkMinutes  = 120
	MinBreakMinutes = 1
	MaxBreakMinutes = 60

	DefaultWorkMinutes  = 25
	DefaultBreakMinutes = 5
)

// Durations holds the configured phase lengths in minutes.
type Durations struct {
	WorkMinutes  int
	BreakMinutes int
}

// DefaultDurations returns the 25/5 pomodoro split.
func DefaultDurations() Durations {
	return Durations{
		WorkMinutes:  DefaultWorkMinutes,
		BreakMinutes: DefaultBreakMinutes,
	}
}

// WorkSeconds returns the work phase length in seconds.
func (durations Durations) WorkSeconds() int {
	return durations.WorkMinutes * 60
}

// BreakSeconds returns the break phase length in seconds.
func (durations Durations) BreakSeconds() int {
	return durations.BreakMinutes * 60
}

// Validate reports the first field that falls outside its range.
func (durations Durations) Validate() error {
	if durations.WorkMinutes < MinWorkMinutes || durations.WorkMinutes > MaxWorkMinutes {
		return &RangeError{Field: "work", Value: durations.WorkMinutes, Min: MinWorkMinutes, Max: MaxWorkMinutes}
	}
	if durations.BreakMinutes < MinBreakMinutes || durations.BreakMinutes > MaxBreakMinutes {
		return &RangeError{Field: "break", Value: durations.BreakMinutes, Min: MinBreakMinutes, Max: MaxBreakMinutes}
	}
	return nil
}

// Clamp pulls both fields into their valid ranges.
func (durations Durations) Clamp() Durations {
	return Durations{
		WorkMinutes:  clamp(durations.WorkMinutes, MinWorkMinutes, MaxWorkMinutes),
		BreakMinutes: clamp(durations.BreakMinutes, MinBreakMinutes, MaxBreakMinutes),
	}
}

// RangeError is returned when a duration is outside its allowed range.
type RangeError struct {
	Field string
	Value int
	Min   int
	Max   int
}

func (err *RangeError) Error() string {
	return fmt.Sprintf("%s minutes %d out of range [%d, %d]", err.Field, err.Value, err.Min, err.Max)
}

func clamp(value, minValue, maxValue int) int {
	if value < minValue {
		return minValue
	}
	if value > maxValue {
		return maxValue
	}
	return value
}

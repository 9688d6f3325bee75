package terminal

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomoblock/internal/app"
	"pomoblock/internal/config"
	"pomoblock/internal/core/enforcer"
	"pomoblock/internal/core/model"
	"pomoblock/internal/core/scheduler"
)

type emptyTable struct{}

func (emptyTable) List(ctx context.Context) ([]enforcer.Process, error) { return nil, nil }

func (emptyTable) TerminateTree(ctx context.Context, pid int) error { return nil }

func newModel(t *testing.T) (Model, *bytes.Buffer) {
	t.Helper()
	m := New(app.New(config.Default(), emptyTable{}))
	bell := &bytes.Buffer{}
	m.bell = bell
	return m, bell
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "left":
			msg = tea.KeyMsg{Type: tea.KeyLeft}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		updated, _ := m.Update(msg)
		m = updated.(Model)
	}
	return m
}

func TestStartPauseReset(t *testing.T) {
	m, _ := newModel(t)
	assert.Contains(t, m.View(), "25:00")

	m = press(t, m, "s")
	assert.Equal(t, scheduler.StateRunning, m.snapshot.State)
	assert.Contains(t, m.View(), "WORK (blocking enabled)")

	m = press(t, m, "p")
	assert.Equal(t, scheduler.StatePaused, m.snapshot.State)

	m = press(t, m, "r")
	assert.Equal(t, scheduler.StateIdle, m.snapshot.State)
}

func TestAdjustDurationsWhileStopped(t *testing.T) {
	m, _ := newModel(t)
	m = press(t, m, "up", "up", "left")

	assert.Equal(t, model.Durations{WorkMinutes: 27, BreakMinutes: 4}, m.runtime.Scheduler.Durations())
	assert.Contains(t, m.View(), "27:00")
	assert.NoError(t, m.err)
}

func TestAdjustDurationsClampsAtBounds(t *testing.T) {
	m, _ := newModel(t)
	require.NoError(t, m.runtime.Scheduler.SetDurations(model.MinWorkMinutes, model.MinBreakMinutes))
	m = press(t, m, "down", "left")

	assert.Equal(t, model.Durations{WorkMinutes: model.MinWorkMinutes, BreakMinutes: model.MinBreakMinutes}, m.runtime.Scheduler.Durations())
	assert.NoError(t, m.err)
}

func TestAdjustDurationsRejectedWhileRunning(t *testing.T) {
	m, _ := newModel(t)
	m = press(t, m, "s", "up")

	assert.Error(t, m.err)
	assert.Equal(t, model.DefaultDurations(), m.runtime.Scheduler.Durations())
	assert.Contains(t, m.View(), "pause or reset")
}

func TestCompactViewIsSingleLine(t *testing.T) {
	m, _ := newModel(t)
	m = press(t, m, "s", "c")

	view := strings.TrimRight(m.View(), "\n")
	assert.NotContains(t, view, "\n")
	assert.Contains(t, view, "25:00")
	assert.Equal(t, scheduler.StateRunning, m.snapshot.State, "compact view must not touch the timer")

	m = press(t, m, "c")
	assert.Contains(t, m.View(), "\n")
}

func TestKeepOnTopToggle(t *testing.T) {
	m, _ := newModel(t)
	assert.Contains(t, m.View(), "keep on top: on")
	m = press(t, m, "t")
	assert.Contains(t, m.View(), "keep on top: off")
}

func TestAlarmShowsBannerAndRingsBell(t *testing.T) {
	m, bell := newModel(t)
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	updated, _ := m.Update(alarmMsg(scheduler.Transition{From: scheduler.PhaseWork, To: scheduler.PhaseBreak}))
	m = updated.(Model)
	assert.Equal(t, "\a", bell.String())
	assert.Contains(t, m.View(), "Break time")

	now = now.Add(bannerDuration + time.Second)
	updated, _ = m.Update(refreshMsg(now))
	m = updated.(Model)
	assert.NotContains(t, m.View(), "Break time")
}

func TestReportMessageUpdatesStatus(t *testing.T) {
	m, _ := newModel(t)
	updated, _ := m.Update(reportMsg(enforcer.Report{
		ScannedAt: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		Entries: []enforcer.Entry{
			{PID: 4, ProcessName: "steam", Outcome: enforcer.OutcomeTerminated},
			{PID: 5, ProcessName: "bash", Outcome: enforcer.OutcomeSkipped, Reason: enforcer.ReasonNotBlocked},
		},
	}))
	m = updated.(Model)
	assert.Contains(t, m.View(), "steam(4)")
	assert.NotContains(t, m.View(), "bash")
}

func TestScanStatus(t *testing.T) {
	assert.Empty(t, scanStatus(enforcer.Report{Entries: []enforcer.Entry{{PID: 1, ProcessName: "init", Outcome: enforcer.OutcomeSkipped, Reason: enforcer.ReasonNotBlocked}}}))
	assert.Contains(t, scanStatus(enforcer.Report{Err: errors.New("permission denied")}), "permission denied")
	assert.Contains(t, scanStatus(enforcer.Report{Entries: []enforcer.Entry{{PID: 2, ProcessName: "chrome", Outcome: enforcer.OutcomeFailed, Reason: "denied"}}}), "1 failed")
}

func TestQuitKey(t *testing.T) {
	m, _ := newModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

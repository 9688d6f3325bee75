// Package terminal provides a Bubble Tea shell for the timer.
package terminal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pomoblock/internal/app"
	"pomoblock/internal/core/enforcer"
	"pomoblock/internal/core/model"
	"pomoblock/internal/core/presentation"
	"pomoblock/internal/core/scheduler"
)

const (
	refreshInterval = 200 * time.Millisecond
	bannerDuration  = 10 * time.Second
)

// ── Styles ────────────

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 2)

	workStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("203"))

	breakStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("82"))

	idleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("245"))

	clockStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(1, 4).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("33")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	bannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("214")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

// ── Messages ────────────

type refreshMsg time.Time

type alarmMsg scheduler.Transition

type reportMsg enforcer.Report

// ── Model ────────────

// Model is the root Bubble Tea model for the terminal shell.
type Model struct {
	runtime      *app.Runtime
	keys         keyMap
	help         help.Model
	snapshot     scheduler.Snapshot
	presentation presentation.State
	banner       string
	bannerUntil  time.Time
	scanStatus   string
	err          error
	bell         io.Writer
	now          func() time.Time
	width        int
}

// New creates a terminal model bound to runtime.
func New(runtime *app.Runtime) Model {
	return Model{
		runtime:      runtime,
		keys:         defaultKeyMap(),
		help:         help.New(),
		snapshot:     runtime.Scheduler.Snapshot(),
		presentation: runtime.Presentation.State(),
		bell:         os.Stderr,
		now:          time.Now,
	}
}

// ── Bubble Tea interface ────────────

func (m Model) Init() tea.Cmd {
	return refresh()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.FocusMsg:
		m.runtime.Presentation.FocusRegained()
		return m, nil

	case refreshMsg:
		m.sync()
		return m, refresh()

	case alarmMsg:
		m.banner = announcement(scheduler.Transition(msg))
		m.bannerUntil = m.now().Add(bannerDuration)
		m.sync()
		if m.bell != nil {
			fmt.Fprint(m.bell, "\a")
		}
		return m, nil

	case reportMsg:
		if status := scanStatus(enforcer.Report(msg)); status != "" {
			m.scanStatus = status
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	timer := m.runtime.Scheduler
	m.err = nil

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Start):
		timer.Start()
	case key.Matches(msg, m.keys.Pause):
		timer.Pause()
	case key.Matches(msg, m.keys.Reset):
		timer.Reset()
		m.banner = ""
	case key.Matches(msg, m.keys.WorkUp):
		m.adjustDurations(1, 0)
	case key.Matches(msg, m.keys.WorkDown):
		m.adjustDurations(-1, 0)
	case key.Matches(msg, m.keys.BreakUp):
		m.adjustDurations(0, 1)
	case key.Matches(msg, m.keys.BreakDown):
		m.adjustDurations(0, -1)
	case key.Matches(msg, m.keys.Compact):
		m.runtime.Presentation.ToggleCompactView()
	case key.Matches(msg, m.keys.KeepOnTop):
		m.runtime.Presentation.ToggleTopMostLock()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	m.sync()
	return m, nil
}

// adjustDurations nudges the configured minutes. Values are clamped into
// range and rejected by the scheduler while the timer is running.
func (m *Model) adjustDurations(workDelta, breakDelta int) {
	durations := m.runtime.Scheduler.Durations()
	durations = model.Durations{
		WorkMinutes:  durations.WorkMinutes + workDelta,
		BreakMinutes: durations.BreakMinutes + breakDelta,
	}.Clamp()

	err := m.runtime.Scheduler.SetDurations(durations.WorkMinutes, durations.BreakMinutes)
	if errors.Is(err, scheduler.ErrRunning) {
		err = errors.New("pause or reset the timer to change durations")
	}
	m.err = err
}

func (m *Model) sync() {
	m.snapshot = m.runtime.Scheduler.Snapshot()
	m.presentation = m.runtime.Presentation.State()
	if m.banner != "" && m.now().After(m.bannerUntil) {
		m.banner = ""
	}
}

func (m Model) View() string {
	if m.presentation.CompactView {
		return m.compactView()
	}

	phase := phaseStyle(m.snapshot).Render(m.snapshot.PhaseLabel())
	clock := clockStyle.Render(phaseStyle(m.snapshot).Render(m.snapshot.Clock()))

	durations := m.runtime.Scheduler.Durations()
	settings := fmt.Sprintf("%s %d min   %s %d min",
		labelStyle.Render("Work"), durations.WorkMinutes,
		labelStyle.Render("Break"), durations.BreakMinutes)

	keepOnTop := "off"
	if m.presentation.TopMostLock {
		keepOnTop = "on"
	}
	state := dimStyle.Render(fmt.Sprintf("state: %s   keep on top: %s   blocking %d apps",
		m.snapshot.State, keepOnTop, m.runtime.BlockList.Len()))

	rows := []string{
		titleStyle.Render(app.DisplayName),
		"",
		phase,
		clock,
		settings,
		state,
	}
	if m.scanStatus != "" {
		rows = append(rows, dimStyle.Render("last scan: ")+m.scanStatus)
	}
	if m.banner != "" {
		rows = append(rows, "", bannerStyle.Render(m.banner))
	}
	if m.err != nil {
		rows = append(rows, errorStyle.Render(m.err.Error()))
	}
	rows = append(rows, "", m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, rows...) + "\n"
}

func (m Model) compactView() string {
	marker := "■"
	if m.snapshot.Running() {
		marker = "▶"
	}
	line := phaseStyle(m.snapshot).Render(fmt.Sprintf("%s %s %s",
		marker, phaseWord(m.snapshot.Phase), m.snapshot.Clock()))
	if m.banner != "" {
		line += "  " + bannerStyle.Render(m.banner)
	}
	return line + "  " + dimStyle.Render("c expand  q quit") + "\n"
}

// ── Helpers ────────────

func refresh() tea.Cmd {
	return tea.Tick(refreshInterval, func(at time.Time) tea.Msg {
		return refreshMsg(at)
	})
}

func phaseStyle(snapshot scheduler.Snapshot) lipgloss.Style {
	switch {
	case snapshot.State == scheduler.StateIdle:
		return idleStyle
	case snapshot.Phase == scheduler.PhaseBreak:
		return breakStyle
	default:
		return workStyle
	}
}

func phaseWord(phase scheduler.Phase) string {
	if phase == scheduler.PhaseBreak {
		return "BREAK"
	}
	return "WORK"
}

func announcement(transition scheduler.Transition) string {
	if transition.To == scheduler.PhaseBreak {
		return "Break time. Blocking is off."
	}
	return "Back to work. Blocking is on."
}

func scanStatus(report enforcer.Report) string {
	if report.Err != nil {
		return errorStyle.Render(report.Err.Error())
	}
	terminated := report.Terminated()
	failed := report.Failed()
	if len(terminated) == 0 && len(failed) == 0 {
		return ""
	}
	status := fmt.Sprintf("%s closed %d", report.ScannedAt.Format("15:04:05"), len(terminated))
	for _, entry := range terminated {
		status += fmt.Sprintf(" %s(%d)", entry.ProcessName, entry.PID)
	}
	if len(failed) > 0 {
		status += errorStyle.Render(fmt.Sprintf(", %d failed", len(failed)))
	}
	return status
}

// Run starts the terminal shell and blocks until the user quits.
func Run(runtime *app.Runtime) error {
	program := tea.NewProgram(New(runtime), tea.WithAltScreen(), tea.WithReportFocus())

	runtime.Scheduler.SetAlarm(scheduler.AlarmFunc(func(transition scheduler.Transition) {
		go program.Send(alarmMsg(transition))
	}))
	runtime.OnReport(func(report enforcer.Report) {
		go program.Send(reportMsg(report))
	})

	_, err := program.Run()
	return err
}

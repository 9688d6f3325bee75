// Package enforcer terminates blocked processes while the work phase runs.
package enforcer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"pomoblock/internal/core/blocklist"
)

// ErrProcessGone indicates the process exited before it could be terminated.
var ErrProcessGone = errors.New("process no longer exists")

// Process is one entry of an OS process snapshot.
type Process struct {
	PID  int
	Name string
}

// ProcessTable is the OS capability the engine needs.
type ProcessTable interface {
	List(ctx context.Context) ([]Process, error)
	// TerminateTree kills the process and all of its descendants.
	TerminateTree(ctx context.Context, pid int) error
}

// GateFunc reports whether enforcement is active right now.
type GateFunc func() bool

// Options tunes scan behaviour.
type Options struct {
	ListTimeout time.Duration
	KillTimeout time.Duration
	// DryRun reports matches without terminating them.
	DryRun bool
	// SelfPID is never terminated. Defaults to os.Getpid().
	SelfPID int
}

// Engine runs scans against a process table.
type Engine struct {
	table   ProcessTable
	options Options
	now     func() time.Time
}

// New creates an engine with the provided table and options.
func New(table ProcessTable, options Options) *Engine {
	if options.ListTimeout <= 0 {
		options.ListTimeout = 2 * time.Second
	}
	if options.KillTimeout <= 0 {
		options.KillTimeout = 500 * time.Millisecond
	}
	if options.SelfPID == 0 {
		options.SelfPID = os.Getpid()
	}
	return &Engine{
		table:   table,
		options: options,
		now:     time.Now,
	}
}

// EnforceOnce performs a single scan. With a closed gate it returns an empty
// report without touching the process table.
func (engine *Engine) EnforceOnce(gate bool, list blocklist.BlockList) Report {
	if !gate {
		return Report{}
	}

	report := Report{ScannedAt: engine.now()}
	processes, err := engine.list()
	if err != nil {
		report.Err = err
		return report
	}

	report.Entries = make([]Entry, 0, len(processes))
	for _, process := range processes {
		report.Entries = append(report.Entries, engine.enforce(process, list))
	}
	return report
}

// Run scans every interval until ctx is done. The gate is read once at the
// start of each scan; a scan in flight completes with that value.
func (engine *Engine) Run(ctx context.Context, interval time.Duration, gate GateFunc, list blocklist.BlockList, onReport func(Report)) {
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
			report := engine.EnforceOnce(gate(), list)
			logReport(report)
			if onReport != nil {
				onReport(report)
			}
		}
	}
}

func (engine *Engine) list() ([]Process, error) {
	ctx, cancel := context.WithTimeout(context.Background(), engine.options.ListTimeout)
	defer cancel()

	processes, err := bounded(ctx, engine.table.List)
	if err != nil {
		return nil, fmt.Errorf("list processes: %w", err)
	}
	return processes, nil
}

func (engine *Engine) enforce(process Process, list blocklist.BlockList) Entry {
	entry := Entry{
		PID:         process.PID,
		ProcessName: process.Name,
		Outcome:     OutcomeSkipped,
	}

	switch {
	case process.PID == engine.options.SelfPID:
		entry.Reason = ReasonSelf
		return entry
	case !list.Contains(process.Name):
		entry.Reason = ReasonNotBlocked
		return entry
	case engine.options.DryRun:
		entry.Reason = ReasonDryRun
		return entry
	}

	err := engine.terminate(process.PID)
	switch {
	case err == nil:
		entry.Outcome = OutcomeTerminated
	case errors.Is(err, ErrProcessGone):
		entry.Reason = ReasonAlreadyExited
	default:
		entry.Outcome = OutcomeFailed
		entry.Reason = err.Error()
	}
	return entry
}

func (engine *Engine) terminate(pid int) error {
	ctx, cancel := context.WithTimeout(context.Background(), engine.options.KillTimeout)
	defer cancel()

	_, err := bounded(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, engine.table.TerminateTree(ctx, pid)
	})
	return err
}

// bounded runs call on its own goroutine and stops waiting once ctx is done,
// so a table that ignores ctx cannot hold up the scan. A panic in call is
// returned as an error.
func bounded[T any](ctx context.Context, call func(context.Context) (T, error)) (T, error) {
	type result struct {
		value T
		err   error
	}
	done := make(chan result, 1)
	go func() {
		var res result
		defer func() {
			if recovered := recover(); recovered != nil {
				res = result{err: fmt.Errorf("panic: %v", recovered)}
			}
			done <- res
		}()
		res.value, res.err = call(ctx)
	}()

	select {
	case res := <-done:
		return res.value, res.err
	case <-ctx.Done():
		var zero T
		return zero, fmt.Errorf("timed out: %w", ctx.Err())
	}
}

func logReport(report Report) {
	if report.Err != nil {
		log.Printf("enforcer: scan failed: %v", report.Err)
		return
	}
	for _, entry := range report.Entries {
		switch entry.Outcome {
		case OutcomeTerminated:
			log.Printf("enforcer: terminated %s (pid %d)", entry.ProcessName, entry.PID)
		case OutcomeFailed:
			log.Printf("enforcer: could not terminate %s (pid %d): %s", entry.ProcessName, entry.PID, entry.Reason)
		}
	}
}

// Package app wires the scheduler, enforcement engine and presentation
// controller into a runtime shared by the desktop and terminal shells.
package app

import (
	"context"
	"log"
	"sync"

	"pomoblock/internal/config"
	"pomoblock/internal/core/blocklist"
	"pomoblock/internal/core/enforcer"
	"pomoblock/internal/core/presentation"
	"pomoblock/internal/core/scheduler"
)

// Name is used for the config directory, instance lock and autostart entry.
const Name = "PomodoroBlocker"

// DisplayName is the human readable application title.
const DisplayName = "Pomodoro Blocker"

// Runtime owns the core components and their periodic drivers.
type Runtime struct {
	Scheduler    *scheduler.Scheduler
	Enforcer     *enforcer.Engine
	BlockList    blocklist.BlockList
	Presentation *presentation.Controller

	config config.Config

	mu         sync.Mutex
	lastReport enforcer.Report
	onReport   func(enforcer.Report)
	cancel     context.CancelFunc
	wg         sync.WaitGroup
}

// New builds a runtime from the startup configuration.
func New(cfg config.Config, table enforcer.ProcessTable) *Runtime {
	return &Runtime{
		Scheduler: scheduler.New(cfg.Durations),
		Enforcer: enforcer.New(table, enforcer.Options{
			KillTimeout: cfg.KillTimeout,
		}),
		BlockList:    blocklist.Default(),
		Presentation: presentation.New(cfg.TopMostLock, cfg.CompactView),
		config:       cfg,
	}
}

// OnReport registers a callback for every non-empty scan report.
func (runtime *Runtime) OnReport(handler func(enforcer.Report)) {
	runtime.mu.Lock()
	defer runtime.mu.Unlock()
	runtime.onReport = handler
}

// LastReport returns the most recent non-empty scan report.
func (runtime *Runtime) LastReport() enforcer.Report {
	runtime.mu.Lock()
	defer runtime.mu.Unlock()
	return runtime.lastReport
}

// Start launches the tick driver, the scan driver and the presentation
// observer. Calling Start twice has no effect.
func (runtime *Runtime) Start(ctx context.Context) {
	runtime.mu.Lock()
	if runtime.cancel != nil {
		runtime.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	runtime.cancel = cancel
	runtime.mu.Unlock()

	events := runtime.Scheduler.Subscribe(16)
	runtime.Presentation.Observe(runtime.Scheduler.Snapshot())

	runtime.wg.Add(3)
	go func() {
		defer runtime.wg.Done()
		runtime.Scheduler.Run(ctx, runtime.config.TickInterval)
	}()
	go func() {
		defer runtime.wg.Done()
		gate := func() bool {
			return runtime.Scheduler.Snapshot().EnforcementGate()
		}
		runtime.Enforcer.Run(ctx, runtime.config.ScanInterval, gate, runtime.BlockList, runtime.handleReport)
	}()
	go func() {
		defer runtime.wg.Done()
		for range events {
			// The latest snapshot is used so a dropped event cannot leave the
			// presentation state behind.
			runtime.Presentation.Observe(runtime.Scheduler.Snapshot())
		}
	}()

	log.Printf("app: started (work %d min, break %d min, %d blocked names)",
		runtime.config.Durations.WorkMinutes, runtime.config.Durations.BreakMinutes, runtime.BlockList.Len())
}

// Stop halts the drivers and waits for an in-flight scan to finish.
func (runtime *Runtime) Stop() {
	runtime.mu.Lock()
	cancel := runtime.cancel
	runtime.mu.Unlock()
	if cancel == nil {
		return
	}

	cancel()
	runtime.Scheduler.Close()
	runtime.wg.Wait()
	log.Printf("app: stopped")
}

func (runtime *Runtime) handleReport(report enforcer.Report) {
	if report.Empty() {
		return
	}
	runtime.mu.Lock()
	runtime.lastReport = report
	handler := runtime.onReport
	runtime.mu.Unlock()

	if handler != nil {
		handler(report)
	}
}

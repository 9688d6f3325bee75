package enforcer

import "time"

// Outcome describes what happened to one process during a scan.
type Outcome string

const (
	OutcomeTerminated Outcome = "terminated"
	OutcomeSkipped    Outcome = "skipped"
	OutcomeFailed     Outcome = "failed"
)

// Skip reasons recorded in Entry.Reason.
const (
	ReasonNotBlocked    = "not blocked"
	ReasonSelf          = "self"
	ReasonDryRun        = "dry run"
	ReasonAlreadyExited = "already exited"
)

// Entry is the result for a single process in the snapshot.
type Entry struct {
	PID         int
	ProcessName string
	Outcome     Outcome
	Reason      string
}

// Blocked reports whether the entry matched the block list.
func (entry Entry) Blocked() bool {
	return entry.Outcome != OutcomeSkipped || entry.Reason == ReasonDryRun || entry.Reason == ReasonAlreadyExited
}

// Report is the ordered result of one scan.
type Report struct {
	ScannedAt time.Time
	Entries   []Entry
	// Err is set when the process table could not be listed at all.
	Err error
}

// Empty reports whether the scan produced nothing at all.
func (report Report) Empty() bool {
	return len(report.Entries) == 0 && report.Err == nil
}

// Matched returns the entries whose names were on the block list.
func (report Report) Matched() []Entry {
	return report.filter(Entry.Blocked)
}

// Terminated returns the entries that were killed.
func (report Report) Terminated() []Entry {
	return report.filter(func(entry Entry) bool {
		return entry.Outcome == OutcomeTerminated
	})
}

// Failed returns the entries whose termination failed.
func (report Report) Failed() []Entry {
	return report.filter(func(entry Entry) bool {
		return entry.Outcome == OutcomeFailed
	})
}

func (report Report) filter(keep func(Entry) bool) []Entry {
	var entries []Entry
	for _, entry := range report.Entries {
		if keep(entry) {
			entries = append(entries, entry)
		}
	}
	return entries
}

package platform

import (
	"context"
	"errors"
	"fmt"

	"github.com/shirou/gopsutil/v4/process"

	"pomoblock/internal/core/enforcer"
)

// ProcessTable reads and terminates OS processes through gopsutil.
type ProcessTable struct{}

// NewProcessTable returns the OS process table.
func NewProcessTable() *ProcessTable {
	return &ProcessTable{}
}

// List returns every visible process. Names that cannot be read are left
// empty so they never match a block list.
func (table *ProcessTable) List(ctx context.Context) ([]enforcer.Process, error) {
	processes, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("enumerate processes: %w", err)
	}

	snapshot := make([]enforcer.Process, 0, len(processes))
	for _, proc := range processes {
		name, err := proc.NameWithContext(ctx)
		if err != nil {
			name = ""
		}
		snapshot = append(snapshot, enforcer.Process{PID: int(proc.Pid), Name: name})
	}
	return snapshot, nil
}

// TerminateTree kills pid and all of its descendants. The tree is collected
// before anything is killed so re-parented children are not missed, and the
// root dies first so it cannot respawn them.
func (table *ProcessTable) TerminateTree(ctx context.Context, pid int) error {
	root, err := process.NewProcessWithContext(ctx, int32(pid))
	if err != nil {
		if errors.Is(err, process.ErrorProcessNotRunning) {
			return enforcer.ErrProcessGone
		}
		return fmt.Errorf("open process %d: %w", pid, err)
	}

	tree := append([]*process.Process{root}, descendants(ctx, root)...)
	return killTree(ctx, tree, kill)
}

type killFunc func(ctx context.Context, proc *process.Process) error

// killTree kills tree[0] and then the rest. A root that has already exited is
// reported as ErrProcessGone only when no descendant failed, so survivors are
// never hidden behind a skipped entry.
func killTree(ctx context.Context, tree []*process.Process, kill killFunc) error {
	var rootErr error
	var failures []error
	for i, proc := range tree {
		err := kill(ctx, proc)
		switch {
		case err == nil:
		case i == 0:
			rootErr = err
		case !errors.Is(err, enforcer.ErrProcessGone):
			failures = append(failures, err)
		}
	}

	if len(failures) == 0 {
		return rootErr
	}
	if rootErr != nil && !errors.Is(rootErr, enforcer.ErrProcessGone) {
		failures = append([]error{rootErr}, failures...)
	}
	return fmt.Errorf("%d of %d processes in tree survived: %w", len(failures), len(tree), errors.Join(failures...))
}

func descendants(ctx context.Context, root *process.Process) []*process.Process {
	var result []*process.Process
	seen := map[int32]bool{root.Pid: true}
	queue := []*process.Process{root}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		children, err := current.ChildrenWithContext(ctx)
		if err != nil {
			continue
		}
		for _, child := range children {
			if seen[child.Pid] {
				continue
			}
			seen[child.Pid] = true
			result = append(result, child)
			queue = append(queue, child)
		}
	}
	return result
}

func kill(ctx context.Context, proc *process.Process) error {
	err := proc.KillWithContext(ctx)
	if err == nil {
		return nil
	}
	if exists, existsErr := process.PidExistsWithContext(ctx, proc.Pid); existsErr == nil && !exists {
		return enforcer.ErrProcessGone
	}
	return fmt.Errorf("kill process %d: %w", proc.Pid, err)
}

package platform

import (
	"context"
	"errors"
	"testing"

	"github.com/shirou/gopsutil/v4/process"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomoblock/internal/core/enforcer"
)

func treeOf(pids ...int32) []*process.Process {
	tree := make([]*process.Process, 0, len(pids))
	for _, pid := range pids {
		tree = append(tree, &process.Process{Pid: pid})
	}
	return tree
}

func killWith(results map[int32]error, killed *[]int32) killFunc {
	return func(ctx context.Context, proc *process.Process) error {
		*killed = append(*killed, proc.Pid)
		return results[proc.Pid]
	}
}

func TestKillTreeKillsRootFirst(t *testing.T) {
	var killed []int32
	err := killTree(context.Background(), treeOf(10, 11, 12), killWith(nil, &killed))
	require.NoError(t, err)
	assert.Equal(t, []int32{10, 11, 12}, killed)
}

func TestKillTreeReportsSurvivingDescendant(t *testing.T) {
	var killed []int32
	denied := errors.New("operation not permitted")
	err := killTree(context.Background(), treeOf(10, 11, 12), killWith(map[int32]error{11: denied}, &killed))

	require.Error(t, err)
	assert.ErrorIs(t, err, denied)
	assert.Contains(t, err.Error(), "1 of 3")
	assert.Equal(t, []int32{10, 11, 12}, killed, "a failed child must not stop the rest of the tree")
}

func TestKillTreeIgnoresDescendantsThatExited(t *testing.T) {
	var killed []int32
	err := killTree(context.Background(), treeOf(10, 11), killWith(map[int32]error{11: enforcer.ErrProcessGone}, &killed))
	assert.NoError(t, err)
}

func TestKillTreeGoneRootWithSurvivorIsFailure(t *testing.T) {
	var killed []int32
	denied := errors.New("operation not permitted")
	err := killTree(context.Background(), treeOf(10, 11), killWith(map[int32]error{
		10: enforcer.ErrProcessGone,
		11: denied,
	}, &killed))

	require.Error(t, err)
	assert.False(t, errors.Is(err, enforcer.ErrProcessGone), "a surviving child must not be reported as already exited")
	assert.ErrorIs(t, err, denied)
}

func TestKillTreeRootErrorOnly(t *testing.T) {
	var killed []int32
	err := killTree(context.Background(), treeOf(10, 11), killWith(map[int32]error{10: enforcer.ErrProcessGone}, &killed))
	assert.ErrorIs(t, err, enforcer.ErrProcessGone)
}

//go:build linux || darwin

package platform

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomoblock/internal/core/enforcer"
)

func TestListIncludesCurrentProcess(t *testing.T) {
	table := NewProcessTable()
	processes, err := table.List(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, processes)

	found := false
	for _, proc := range processes {
		if proc.PID == os.Getpid() {
			found = true
			assert.NotEmpty(t, proc.Name)
		}
	}
	assert.True(t, found, "current process missing from snapshot")
}

func TestTerminateTreeKillsChildren(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	cmd := exec.Command("sh", "-c", "sleep 30 & sleep 30; wait")
	require.NoError(t, cmd.Start())
	parent := cmd.Process.Pid

	waitErr := make(chan error, 1)
	go func() { waitErr <- cmd.Wait() }()

	// Give the shell time to fork its children.
	time.Sleep(200 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, NewProcessTable().TerminateTree(ctx, parent))

	select {
	case err := <-waitErr:
		assert.Error(t, err, "killed shell should report a non-zero exit")
	case <-time.After(5 * time.Second):
		t.Fatal("parent process still running after TerminateTree")
	}
}

func TestTerminateMissingProcess(t *testing.T) {
	err := NewProcessTable().TerminateTree(context.Background(), 1<<30)
	assert.True(t, errors.Is(err, enforcer.ErrProcessGone), "got %v", err)
}

//go:build linux

package mainwindow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWmctrlArgsMatchExactTitle(t *testing.T) {
	assert.Equal(t, []string{"-F", "-r", "Pomodoro Blocker", "-b", "add,above"}, wmctrlArgs("Pomodoro Blocker", true))
	assert.Equal(t, []string{"-F", "-r", "Pomodoro Blocker", "-b", "remove,above"}, wmctrlArgs("Pomodoro Blocker", false))
}

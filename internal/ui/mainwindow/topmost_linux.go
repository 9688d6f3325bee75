//go:build linux

package mainwindow

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"pomoblock/internal/app"
)

const wmctrlTimeout = 2 * time.Second

// setTopMost asks the window manager through wmctrl to toggle the "above"
// hint on the window whose title is exactly the app's display name.
func (view *Window) setTopMost(enabled bool) error {
	path, err := exec.LookPath("wmctrl")
	if err != nil {
		return ErrTopMostUnsupported
	}

	ctx, cancel := context.WithTimeout(context.Background(), wmctrlTimeout)
	defer cancel()
	args := wmctrlArgs(app.DisplayName, enabled)
	output, err := exec.CommandContext(ctx, path, args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("wmctrl %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(string(output)))
	}
	return nil
}

// wmctrlArgs builds the command line. -F turns -r into an exact,
// case-sensitive title match instead of a substring match.
func wmctrlArgs(title string, enabled bool) []string {
	action := "remove,above"
	if enabled {
		action = "add,above"
	}
	return []string{"-F", "-r", title, "-b", action}
}

//go:build windows

package mainwindow

import (
	"syscall"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver"
)

const (
	swpNoSize     = 0x0001
	swpNoMove     = 0x0002
	swpNoActivate = 0x0010
)

var (
	user32DLL        = syscall.NewLazyDLL("user32.dll")
	procSetWindowPos = user32DLL.NewProc("SetWindowPos")
)

// HWND_TOPMOST and HWND_NOTOPMOST as pointer-sized values.
var (
	hwndTopMost   = ^uintptr(0)
	hwndNoTopMost = ^uintptr(1)
)

func (view *Window) setTopMost(enabled bool) error {
	nativeWindow, ok := view.window.(driver.NativeWindow)
	if !ok {
		return ErrTopMostUnsupported
	}

	insertAfter := hwndNoTopMost
	if enabled {
		insertAfter = hwndTopMost
	}

	fyne.Do(func() {
		nativeWindow.RunNative(func(context any) {
			var hwnd uintptr
			switch value := context.(type) {
			case driver.WindowsWindowContext:
				hwnd = value.HWND
			case *driver.WindowsWindowContext:
				hwnd = value.HWND
			default:
				return
			}
			if hwnd == 0 {
				return
			}
			procSetWindowPos.Call(hwnd, insertAfter, 0, 0, 0, 0, swpNoMove|swpNoSize|swpNoActivate)
		})
	})
	return nil
}

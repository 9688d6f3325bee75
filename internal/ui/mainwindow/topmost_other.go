//go:build !windows && !linux

package mainwindow

func (view *Window) setTopMost(enabled bool) error {
	return ErrTopMostUnsupported
}

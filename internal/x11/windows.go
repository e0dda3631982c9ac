package x11

import (
	"fmt"

	"github.com/bnema/pointerbridge/internal/pointer"
)

// WindowsOfProcess walks the window tree depth-first from the root and
// returns every window whose _NET_WM_PID equals pid, in visit order.
func (s *System) WindowsOfProcess(pid uint64) ([]Window, error) {
	if s.display == nil {
		return nil, fmt.Errorf("display: %w", pointer.ErrNullArgument)
	}

	atom := s.display.InternAtom(pidAtomName, true)
	if atom == 0 {
		// No client ever set the property
		return nil, nil
	}

	var found []Window
	s.collectWindows(s.display.RootWindow(), pid, atom, &found)
	return found, nil
}

func (s *System) collectWindows(window Window, pid uint64, atom Atom, found *[]Window) {
	if windowPID, ok := s.display.CardinalProperty(window, atom); ok && windowPID == pid {
		*found = append(*found, window)
	}

	children, ok := s.display.QueryTree(window)
	if !ok {
		return
	}
	for _, child := range children {
		s.collectWindows(child, pid, atom, found)
	}
}

package wintouch

import (
	"fmt"
	"sync"

	"github.com/bnema/pointerbridge/internal/pointer"
)

// Window procedures are plain C callbacks with no room for state, so the
// trampoline finds its handler through this table.
var hooks = struct {
	sync.Mutex
	byWindow map[HWND]*Handler
}{byWindow: make(map[HWND]*Handler)}

func hookWindow(h *Handler) error {
	hooks.Lock()
	defer hooks.Unlock()

	if other, ok := hooks.byWindow[h.hwnd]; ok && other != h {
		return fmt.Errorf("window %#x already hooked: %w", uintptr(h.hwnd), pointer.ErrDuplicateItem)
	}
	hooks.byWindow[h.hwnd] = h
	return nil
}

func unhookWindow(h *Handler) {
	hooks.Lock()
	defer hooks.Unlock()

	if hooks.byWindow[h.hwnd] == h {
		delete(hooks.byWindow, h.hwnd)
	}
}

func hookedHandler(hwnd HWND) *Handler {
	hooks.Lock()
	defer hooks.Unlock()
	return hooks.byWindow[hwnd]
}

// dispatch routes a message to the handler that subclassed hwnd. handled is
// false when no handler owns the window any more.
func dispatch(hwnd HWND, msg uint32, wParam, lParam uintptr) (result uintptr, handled bool) {
	h := hookedHandler(hwnd)
	if h == nil {
		return 0, false
	}
	return h.WindowProc(msg, wParam, lParam), true
}

//go:build windows

package wintouch

import (
	"fmt"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/bnema/pointerbridge/internal/pointer"
)

var (
	user32DLL = windows.NewLazySystemDLL("user32.dll")

	procGetPointerInfo        = user32DLL.NewProc("GetPointerInfo")
	procGetPointerTouchInfo   = user32DLL.NewProc("GetPointerTouchInfo")
	procGetPointerPenInfo     = user32DLL.NewProc("GetPointerPenInfo")
	procGetTouchInputInfo     = user32DLL.NewProc("GetTouchInputInfo")
	procCloseTouchInputHandle = user32DLL.NewProc("CloseTouchInputHandle")
	procRegisterTouchWindow   = user32DLL.NewProc("RegisterTouchWindow")
	procUnregisterTouchWindow = user32DLL.NewProc("UnregisterTouchWindow")
	procScreenToClient        = user32DLL.NewProc("ScreenToClient")
	procSetWindowLongPtrW     = user32DLL.NewProc("SetWindowLongPtrW")
	procCallWindowProcW       = user32DLL.NewProc("CallWindowProcW")
	procDefWindowProcW        = user32DLL.NewProc("DefWindowProcW")
)

var (
	trampolineOnce sync.Once
	trampoline     uintptr
)

// windowProc is the single native procedure every subclassed window gets.
func windowProc() uintptr {
	trampolineOnce.Do(func() {
		trampoline = windows.NewCallback(func(hwnd, msg, wParam, lParam uintptr) uintptr {
			if ret, ok := dispatch(HWND(hwnd), uint32(msg), wParam, lParam); ok {
				return ret
			}
			ret, _, _ := procDefWindowProcW.Call(hwnd, msg, wParam, lParam)
			return ret
		})
	})
	return trampoline
}

type user32 struct{}

func systemUser32() User32 {
	return user32{}
}

func (user32) ResolvePointerAPI() error {
	for _, p := range []*windows.LazyProc{procGetPointerInfo, procGetPointerTouchInfo, procGetPointerPenInfo} {
		if err := p.Find(); err != nil {
			return fmt.Errorf("%s: %v: %w", p.Name, err, pointer.ErrAPIFailure)
		}
	}
	return nil
}

func (user32) GetPointerInfo(id uint32, info *PointerInfo) bool {
	r, _, _ := procGetPointerInfo.Call(uintptr(id), uintptr(unsafe.Pointer(info)))
	return r != 0
}

func (user32) GetPointerTouchInfo(id uint32, info *PointerTouchInfo) bool {
	r, _, _ := procGetPointerTouchInfo.Call(uintptr(id), uintptr(unsafe.Pointer(info)))
	return r != 0
}

func (user32) GetPointerPenInfo(id uint32, info *PointerPenInfo) bool {
	r, _, _ := procGetPointerPenInfo.Call(uintptr(id), uintptr(unsafe.Pointer(info)))
	return r != 0
}

func (user32) GetTouchInputInfo(handle uintptr, inputs []TouchInput) bool {
	if len(inputs) == 0 {
		return false
	}
	r, _, _ := procGetTouchInputInfo.Call(
		handle,
		uintptr(len(inputs)),
		uintptr(unsafe.Pointer(&inputs[0])),
		unsafe.Sizeof(inputs[0]),
	)
	return r != 0
}

func (user32) CloseTouchInputHandle(handle uintptr) {
	procCloseTouchInputHandle.Call(handle)
}

func (user32) RegisterTouchWindow(hwnd HWND) bool {
	r, _, _ := procRegisterTouchWindow.Call(uintptr(hwnd), 0)
	return r != 0
}

func (user32) UnregisterTouchWindow(hwnd HWND) bool {
	r, _, _ := procUnregisterTouchWindow.Call(uintptr(hwnd))
	return r != 0
}

func (user32) ScreenToClient(hwnd HWND, p *Point) bool {
	r, _, _ := procScreenToClient.Call(uintptr(hwnd), uintptr(unsafe.Pointer(p)))
	return r != 0
}

func (user32) SubclassWindow(hwnd HWND) (uintptr, error) {
	if err := procSetWindowLongPtrW.Find(); err != nil {
		return 0, err
	}
	gwlpWndProc := GWLP_WNDPROC
	prev, _, err := procSetWindowLongPtrW.Call(uintptr(hwnd), uintptr(gwlpWndProc), windowProc())
	if prev == 0 {
		if errno, ok := err.(windows.Errno); ok && errno != 0 {
			return 0, errno
		}
	}
	return prev, nil
}

func (user32) RestoreWindowProc(hwnd HWND, prev uintptr) {
	gwlpWndProc := GWLP_WNDPROC
	procSetWindowLongPtrW.Call(uintptr(hwnd), uintptr(gwlpWndProc), prev)
}

func (user32) CallWindowProc(prev uintptr, hwnd HWND, msg uint32, wParam, lParam uintptr) uintptr {
	if prev == 0 {
		r, _, _ := procDefWindowProcW.Call(uintptr(hwnd), uintptr(msg), wParam, lParam)
		return r
	}
	r, _, _ := procCallWindowProcW.Call(prev, uintptr(hwnd), uintptr(msg), wParam, lParam)
	return r
}

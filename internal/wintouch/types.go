// Package wintouch bridges WM_POINTER (Windows 8+) and WM_TOUCH (Windows 7)
// messages into normalized pointer events by subclassing the target
// window's procedure.
package wintouch

import (
	"strings"

	"github.com/bnema/pointerbridge/internal/pointer"
)

// HWND is a window handle.
type HWND uintptr

// TouchAPI selects which message family a handler decodes.
type TouchAPI int32

const (
	Win8 TouchAPI = 0
	Win7 TouchAPI = 1
)

func (a TouchAPI) String() string {
	switch a {
	case Win8:
		return "win8"
	case Win7:
		return "win7"
	default:
		return "unknown"
	}
}

// ParseTouchAPI accepts the config spellings win8 and win7 in any case.
// An empty name selects Win8.
func ParseTouchAPI(s string) (TouchAPI, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "win8", "":
		return Win8, true
	case "win7":
		return Win7, true
	}
	return Win8, false
}

// Window messages.
const (
	WM_TOUCH                 = 0x0240
	WM_POINTERUPDATE         = 0x0245
	WM_POINTERDOWN           = 0x0246
	WM_POINTERUP             = 0x0247
	WM_POINTERENTER          = 0x0249
	WM_POINTERLEAVE          = 0x024A
	WM_POINTERCAPTURECHANGED = 0x024C

	// POINTER_CANCELLED is the kind code hosts receive for cancelled
	// pointers. It is not a real window message.
	POINTER_CANCELLED = 0x1000
)

// Pointer input types.
const (
	PT_POINTER  = 1
	PT_TOUCH    = 2
	PT_PEN      = 3
	PT_MOUSE    = 4
	PT_TOUCHPAD = 5
)

const (
	POINTER_FLAG_CANCELED = 0x00008000

	TOUCHEVENTF_MOVE = 0x0001
	TOUCHEVENTF_DOWN = 0x0002
	TOUCHEVENTF_UP   = 0x0004

	GWLP_WNDPROC = -4
)

type Point struct {
	X, Y int32
}

type Rect struct {
	Left, Top, Right, Bottom int32
}

// PointerInfo mirrors POINTER_INFO.
type PointerInfo struct {
	PointerType         uint32
	PointerID           uint32
	FrameID             uint32
	PointerFlags        uint32
	SourceDevice        uintptr
	WindowTarget        HWND
	PixelLocation       Point
	HimetricLocation    Point
	PixelLocationRaw    Point
	HimetricLocationRaw Point
	Time                uint32
	HistoryCount        uint32
	InputData           int32
	KeyStates           uint32
	PerformanceCount    uint64
	ButtonChangeType    uint32
}

// PointerTouchInfo mirrors POINTER_TOUCH_INFO.
type PointerTouchInfo struct {
	PointerInfo PointerInfo
	TouchFlags  uint32
	TouchMask   uint32
	Contact     Rect
	ContactRaw  Rect
	Orientation uint32
	Pressure    uint32
}

// PointerPenInfo mirrors POINTER_PEN_INFO.
type PointerPenInfo struct {
	PointerInfo PointerInfo
	PenFlags    uint32
	PenMask     uint32
	Pressure    uint32
	Rotation    uint32
	TiltX       int32
	TiltY       int32
}

// TouchInput mirrors TOUCHINPUT. X and Y are in hundredths of a pixel.
type TouchInput struct {
	X         int32
	Y         int32
	Source    uintptr
	ID        uint32
	Flags     uint32
	Mask      uint32
	Time      uint32
	ExtraInfo uintptr
	CX        uint32
	CY        uint32
}

// User32 is the part of user32.dll the bridge calls.
type User32 interface {
	// ResolvePointerAPI checks that the WM_POINTER entry points exist.
	ResolvePointerAPI() error
	GetPointerInfo(id uint32, info *PointerInfo) bool
	GetPointerTouchInfo(id uint32, info *PointerTouchInfo) bool
	GetPointerPenInfo(id uint32, info *PointerPenInfo) bool

	GetTouchInputInfo(handle uintptr, inputs []TouchInput) bool
	CloseTouchInputHandle(handle uintptr)
	RegisterTouchWindow(hwnd HWND) bool
	UnregisterTouchWindow(hwnd HWND) bool

	ScreenToClient(hwnd HWND, p *Point) bool

	// SubclassWindow installs the bridge's window procedure and returns the
	// one it replaced.
	SubclassWindow(hwnd HWND) (prev uintptr, err error)
	RestoreWindowProc(hwnd HWND, prev uintptr)
	CallWindowProc(prev uintptr, hwnd HWND, msg uint32, wParam, lParam uintptr) uintptr
}

// MessageCode is the WM_POINTER code hosts receive for a kind.
func MessageCode(k pointer.Kind) uint32 {
	switch k {
	case pointer.KindDown:
		return WM_POINTERDOWN
	case pointer.KindUpdate:
		return WM_POINTERUPDATE
	case pointer.KindUp:
		return WM_POINTERUP
	case pointer.KindEnter:
		return WM_POINTERENTER
	case pointer.KindLeave:
		return WM_POINTERLEAVE
	case pointer.KindCancel:
		return POINTER_CANCELLED
	default:
		return 0
	}
}

// PointerTypeCode is the PT_* value hosts receive for a type.
func PointerTypeCode(t pointer.Type) int32 {
	switch t {
	case pointer.TypeTouch:
		return PT_TOUCH
	case pointer.TypePen:
		return PT_PEN
	case pointer.TypeMouse:
		return PT_MOUSE
	default:
		return 0
	}
}

func loword(v uintptr) uint32 {
	return uint32(v & 0xFFFF)
}

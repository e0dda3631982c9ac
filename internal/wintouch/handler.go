package wintouch

import (
	"fmt"

	"github.com/bnema/pointerbridge/internal/logger"
	"github.com/bnema/pointerbridge/internal/pointer"
)

// Handler subclasses one window and decodes its pointer messages.
type Handler struct {
	user32   User32
	api      TouchAPI
	hwnd     HWND
	callback pointer.Func
	msg      *logger.Messenger

	params           pointer.ScreenParams
	legacyUpAsLeave  bool
	dropUnconfigured bool
	targetDisplay    int

	prevProc uintptr
	state    pointer.State
}

// NewHandler returns an unbound handler. Bind attaches it to a window.
func NewHandler(opts Options) *Handler {
	opts = opts.withDefaults()
	return &Handler{
		user32:           opts.User32,
		api:              opts.API,
		msg:              logger.NewMessenger("wintouch", opts.OnMessage),
		params:           opts.ScreenParams,
		legacyUpAsLeave:  opts.LegacyUpAsLeave,
		dropUnconfigured: opts.DropUnconfigured,
	}
}

// Bind sets the API, window and callback, then initializes the handler.
func (h *Handler) Bind(api TouchAPI, hwnd HWND, callback pointer.Func) error {
	if h.state == pointer.StateInitialized {
		return fmt.Errorf("handler already bound to window %#x: %w", uintptr(h.hwnd), pointer.ErrDuplicateItem)
	}
	h.attach(api, hwnd, callback)
	if err := h.Initialize(); err != nil {
		h.Teardown()
		return err
	}
	return nil
}

func (h *Handler) attach(api TouchAPI, hwnd HWND, callback pointer.Func) {
	h.api = api
	h.hwnd = hwnd
	h.callback = callback
	h.msg = h.msg.With("hwnd", fmt.Sprintf("%#x", uintptr(hwnd)))
}

// Initialize subclasses the window. For Win7 the window is registered for
// WM_TOUCH first.
func (h *Handler) Initialize() error {
	h.msg.Infof("Initializing handler...")

	if h.hwnd == 0 {
		h.msg.Errorf("hWnd is NULL")
		return fmt.Errorf("hwnd: %w", pointer.ErrNullArgument)
	}
	if h.callback == nil {
		h.msg.Errorf("pointerCallback is NULL")
		return fmt.Errorf("pointer callback: %w", pointer.ErrNullArgument)
	}
	if h.user32 == nil {
		h.msg.Errorf("user32 is not available")
		return fmt.Errorf("user32: %w", pointer.ErrUnsupported)
	}

	switch h.api {
	case Win8:
		if err := h.user32.ResolvePointerAPI(); err != nil {
			h.msg.Errorf("Failed to resolve pointer API: %v", err)
			return fmt.Errorf("resolve pointer api: %w", err)
		}
	case Win7:
		if !h.user32.RegisterTouchWindow(h.hwnd) {
			h.msg.Errorf("Failed to register window for touch")
			return fmt.Errorf("RegisterTouchWindow: %w", pointer.ErrAPIFailure)
		}
	default:
		h.msg.Errorf("Unknown touch API %d", h.api)
		return fmt.Errorf("touch api %d: %w", h.api, pointer.ErrUnsupported)
	}

	if err := hookWindow(h); err != nil {
		h.msg.Errorf("%v", err)
		h.unregisterTouch()
		return err
	}

	prev, err := h.user32.SubclassWindow(h.hwnd)
	if err != nil {
		h.msg.Errorf("Failed to replace window procedure: %v", err)
		unhookWindow(h)
		h.unregisterTouch()
		return fmt.Errorf("subclass window: %w", pointer.ErrAPIFailure)
	}
	h.prevProc = prev
	h.state = pointer.StateInitialized

	h.msg.Infof("Handler has been initialized for %s.", h.api)
	return nil
}

// Teardown restores the previous window procedure, then leaves the hook
// table. Calling it again does nothing.
func (h *Handler) Teardown() {
	if h.state == pointer.StateTornDown {
		return
	}
	wasInitialized := h.state == pointer.StateInitialized
	h.state = pointer.StateTornDown

	if !wasInitialized {
		return
	}
	if h.prevProc != 0 {
		h.user32.RestoreWindowProc(h.hwnd, h.prevProc)
	}
	unhookWindow(h)
	h.unregisterTouch()
	h.msg.Infof("Handler torn down")
}

func (h *Handler) unregisterTouch() {
	if h.api == Win7 && h.user32 != nil {
		h.user32.UnregisterTouchWindow(h.hwnd)
	}
}

// HWND returns the subclassed window.
func (h *Handler) HWND() HWND {
	return h.hwnd
}

func (h *Handler) API() TouchAPI {
	return h.api
}

func (h *Handler) State() pointer.State {
	return h.state
}

// SetScreenParams replaces the transform used for the next message.
func (h *Handler) SetScreenParams(width, height int, offsetX, offsetY, scaleX, scaleY float32) {
	h.params = pointer.NewScreenParams(width, height, offsetX, offsetY, scaleX, scaleY)
}

func (h *Handler) ScreenParams() pointer.ScreenParams {
	return h.params
}

func (h *Handler) SetTargetDisplay(display int) {
	h.targetDisplay = display
}

func (h *Handler) TargetDisplay() int {
	return h.targetDisplay
}

// WindowProc handles one message sent to the subclassed window.
func (h *Handler) WindowProc(msg uint32, wParam, lParam uintptr) uintptr {
	if h.state != pointer.StateInitialized {
		return h.chain(msg, wParam, lParam)
	}

	switch h.api {
	case Win8:
		switch msg {
		case WM_TOUCH:
			h.user32.CloseTouchInputHandle(lParam)
			return 0
		case WM_POINTERENTER, WM_POINTERLEAVE, WM_POINTERDOWN, WM_POINTERUP,
			WM_POINTERUPDATE, WM_POINTERCAPTURECHANGED:
			if ev, ok := decodePointer(h.user32, h.hwnd, msg, wParam, h.params); ok {
				h.emit(ev)
			}
			return 0
		}
	case Win7:
		if msg == WM_TOUCH {
			for _, ev := range decodeTouchInputs(h.user32, h.hwnd, wParam, lParam, h.params, h.legacyUpAsLeave) {
				h.emit(ev)
			}
			return 0
		}
	}

	return h.chain(msg, wParam, lParam)
}

func (h *Handler) chain(msg uint32, wParam, lParam uintptr) uintptr {
	if h.user32 == nil {
		return 0
	}
	return h.user32.CallWindowProc(h.prevProc, h.hwnd, msg, wParam, lParam)
}

func (h *Handler) emit(ev pointer.Event) {
	if h.callback == nil {
		return
	}
	if h.dropUnconfigured && !h.params.Configured() {
		return
	}
	ev.TargetDisplay = h.targetDisplay
	h.callback(ev)
}

package x11

import (
	"fmt"

	"github.com/bnema/pointerbridge/internal/logger"
	"github.com/bnema/pointerbridge/internal/pointer"
)

// Handler owns the XInput2 subscription of one window and its screen
// transform.
type Handler struct {
	display  Display
	opcode   int
	deviceID int
	window   Window
	callback pointer.Func
	msg      *logger.Messenger

	params           pointer.ScreenParams
	dropUnconfigured bool
	targetDisplay    int
	state            pointer.State
}

func newHandler(s *System, window Window, callback pointer.Func) *Handler {
	return &Handler{
		display:          s.display,
		opcode:           s.opcode,
		deviceID:         s.opts.DeviceSet,
		window:           window,
		callback:         callback,
		msg:              s.msg.With("window", uint64(window)),
		params:           s.opts.ScreenParams,
		dropUnconfigured: s.opts.DropUnconfigured,
	}
}

// Initialize subscribes the window to button, motion and touch events and
// pushes the request to the server right away.
func (h *Handler) Initialize() error {
	h.msg.Infof("Initializing handler...")

	if h.display == nil {
		h.msg.Errorf("display is nil")
		return fmt.Errorf("display: %w", pointer.ErrNullArgument)
	}
	if h.window == 0 {
		h.msg.Errorf("window is None")
		return fmt.Errorf("window: %w", pointer.ErrNullArgument)
	}
	if h.callback == nil {
		h.msg.Errorf("pointer callback is nil")
		return fmt.Errorf("pointer callback: %w", pointer.ErrNullArgument)
	}
	if h.opcode == 0 {
		h.msg.Errorf("XInput extension opcode not resolved")
		return fmt.Errorf("xinput opcode: %w", pointer.ErrUnsupported)
	}

	if err := h.display.SelectEvents(h.window, h.deviceID, pointerEventMask()); err != nil {
		h.msg.Errorf("Failed to select pointer events on window %d: %v", h.window, err)
		return fmt.Errorf("select events on window %d: %w", h.window, pointer.ErrAPIFailure)
	}
	h.display.Flush()

	h.state = pointer.StateInitialized
	h.msg.Infof("Handler has been initialized")
	return nil
}

// Teardown marks the handler dead. XInput2 selections go away with the
// window, so there is nothing to undo on the server.
func (h *Handler) Teardown() {
	if h.state == pointer.StateTornDown {
		return
	}
	h.state = pointer.StateTornDown
	h.callback = nil
}

// Window returns the window the handler is subscribed to.
func (h *Handler) Window() Window {
	return h.window
}

// State returns the lifecycle state.
func (h *Handler) State() pointer.State {
	return h.state
}

// SetScreenParams replaces the transform used for the next event.
func (h *Handler) SetScreenParams(width, height int, offsetX, offsetY, scaleX, scaleY float32) {
	h.params = pointer.NewScreenParams(width, height, offsetX, offsetY, scaleX, scaleY)
}

// ScreenParams returns the current transform.
func (h *Handler) ScreenParams() pointer.ScreenParams {
	return h.params
}

// ScreenResolution returns the size of the screen the window lives on.
func (h *Handler) ScreenResolution() (int, int, error) {
	if h.display == nil {
		return 0, 0, fmt.Errorf("display: %w", pointer.ErrNullArgument)
	}
	w, ht, err := h.display.ScreenSize(h.window)
	if err != nil {
		h.msg.Errorf("Failed to retrieve XWindowAttributes")
		return 0, 0, err
	}
	return w, ht, nil
}

func (h *Handler) SetTargetDisplay(display int) {
	h.targetDisplay = display
}

func (h *Handler) TargetDisplay() int {
	return h.targetDisplay
}

// ProcessEvent decodes one device event and hands it to the callback.
// Untranslatable events are dropped.
func (h *Handler) ProcessEvent(ev DeviceEvent) {
	if h.state != pointer.StateInitialized {
		return
	}
	if h.dropUnconfigured && !h.params.Configured() {
		return
	}

	out, ok := Decode(ev, h.params)
	if !ok {
		return
	}
	out.TargetDisplay = h.targetDisplay
	h.callback(out)
}

package x11

import (
	"fmt"

	"github.com/bnema/pointerbridge/internal/logger"
	"github.com/bnema/pointerbridge/internal/pointer"
	"github.com/bnema/pointerbridge/internal/registry"
)

// Options configure a System.
type Options struct {
	// DisplayName is passed to XOpenDisplay; empty uses $DISPLAY.
	DisplayName string
	// DeviceSet is XIAllMasterDevices or XIAllDevices.
	DeviceSet int
	// FrameGuard makes ProcessFrame run at most once per frame number.
	FrameGuard bool
	// DropUnconfigured drops events until SetScreenParams is called.
	DropUnconfigured bool
	// ScreenParams is the transform new handlers start with.
	ScreenParams pointer.ScreenParams
	// OnMessage receives diagnostics for the host. May be nil.
	OnMessage logger.MessageFunc
	// Opener connects to the display. Nil uses Xlib.
	Opener Opener
}

// DefaultOptions returns the options the plugin uses when the host gives
// none.
func DefaultOptions() Options {
	return Options{
		DeviceSet:    XIAllMasterDevices,
		FrameGuard:   true,
		ScreenParams: pointer.DefaultScreenParams(),
	}
}

// System owns the display connection and every handler created on it.
type System struct {
	display  Display
	opcode   int
	opts     Options
	msg      *logger.Messenger
	handlers *registry.Registry[Window, *Handler]

	lastFrame int64
}

// NewSystem opens the display and checks for XInput 2.3. On failure no
// connection is left open.
func NewSystem(opts Options) (*System, error) {
	if opts.ScreenParams == (pointer.ScreenParams{}) {
		opts.ScreenParams = pointer.DefaultScreenParams()
	}
	s := &System{
		opts:      opts,
		msg:       logger.NewMessenger("x11", opts.OnMessage),
		handlers:  registry.New[Window, *Handler](),
		lastFrame: -1,
	}
	s.msg.Infof("Initializing system...")

	open := opts.Opener
	if open == nil {
		open = openXlib
	}

	display, err := open(opts.DisplayName)
	if err != nil {
		s.msg.Errorf("Failed to open X11 display connection: %v", err)
		return nil, fmt.Errorf("open display %q: %w", opts.DisplayName, err)
	}
	if display == nil {
		s.msg.Errorf("Failed to open X11 display connection.")
		return nil, fmt.Errorf("open display %q: %w", opts.DisplayName, pointer.ErrAPIFailure)
	}

	opcode, ok := display.QueryExtension(extensionName)
	if !ok {
		s.msg.Errorf("Failed to get the XInput extension.")
		display.Close()
		return nil, fmt.Errorf("%s: %w", extensionName, pointer.ErrUnsupported)
	}

	major, minor, ok := display.QueryVersion(minMajorVersion, minMinorVersion)
	if !ok || !versionAtLeast(major, minor, minMajorVersion, minMinorVersion) {
		s.msg.Errorf("Unsupported XInput extension version: expected %d.%d+, actual %d.%d",
			minMajorVersion, minMinorVersion, major, minor)
		display.Close()
		return nil, fmt.Errorf("xinput %d.%d: %w", major, minor, pointer.ErrUnsupported)
	}

	s.display = display
	s.opcode = opcode
	s.msg.Infof("System initialized with XInput %d.%d", major, minor)
	return s, nil
}

func versionAtLeast(major, minor, wantMajor, wantMinor int) bool {
	if major != wantMajor {
		return major > wantMajor
	}
	return minor >= wantMinor
}

// Opcode returns the XInput extension major opcode.
func (s *System) Opcode() int {
	return s.opcode
}

// CreateHandler subscribes window and registers its handler. A second
// handler for the same window fails with ErrDuplicateItem.
func (s *System) CreateHandler(window Window, callback pointer.Func) (*Handler, error) {
	h, err := s.handlers.Create(window, func() *Handler {
		return newHandler(s, window, callback)
	})
	if err != nil {
		s.msg.Errorf("Failed to create handler for window %d: %v", window, err)
		return nil, err
	}
	return h, nil
}

// Handler returns the handler for window, if any.
func (s *System) Handler(window Window) (*Handler, bool) {
	return s.handlers.Get(window)
}

// Handlers returns the subscribed windows in creation order.
func (s *System) Handlers() []Window {
	return s.handlers.Keys()
}

// DestroyHandler removes h from the system. Unknown or already destroyed
// handlers are ignored.
func (s *System) DestroyHandler(h *Handler) {
	if h == nil {
		return
	}
	s.handlers.Destroy(h.window, h)
}

// Close destroys every handler, then closes the display connection.
func (s *System) Close() {
	s.handlers.DestroyAll()
	if s.display != nil {
		s.display.Close()
		s.display = nil
	}
	s.msg.Infof("System closed")
}

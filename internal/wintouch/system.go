package wintouch

import (
	"github.com/bnema/pointerbridge/internal/logger"
	"github.com/bnema/pointerbridge/internal/pointer"
	"github.com/bnema/pointerbridge/internal/registry"
)

// Options configure handlers.
type Options struct {
	API TouchAPI
	// LegacyUpAsLeave reports a Win7 TOUCHEVENTF_UP as Leave rather than Up.
	LegacyUpAsLeave bool
	// DropUnconfigured drops events until SetScreenParams is called.
	DropUnconfigured bool
	ScreenParams     pointer.ScreenParams
	OnMessage        logger.MessageFunc
	// User32 is the OS surface. Nil uses user32.dll.
	User32 User32
}

func DefaultOptions() Options {
	return Options{
		API:             Win8,
		LegacyUpAsLeave: true,
		ScreenParams:    pointer.DefaultScreenParams(),
	}
}

func (o Options) withDefaults() Options {
	if o.User32 == nil {
		o.User32 = systemUser32()
	}
	if o.ScreenParams == (pointer.ScreenParams{}) {
		o.ScreenParams = pointer.DefaultScreenParams()
	}
	return o
}

// System keeps one handler per window.
type System struct {
	opts     Options
	msg      *logger.Messenger
	handlers *registry.Registry[HWND, *Handler]
}

func NewSystem(opts Options) *System {
	opts = opts.withDefaults()
	return &System{
		opts:     opts,
		msg:      logger.NewMessenger("wintouch", opts.OnMessage),
		handlers: registry.New[HWND, *Handler](),
	}
}

// HandlerOption overrides a system option for one handler.
type HandlerOption func(*Options)

// WithAPI makes the handler decode api instead of the system default.
func WithAPI(api TouchAPI) HandlerOption {
	return func(o *Options) { o.API = api }
}

// WithMessages sends the handler's diagnostics to fn.
func WithMessages(fn logger.MessageFunc) HandlerOption {
	return func(o *Options) { o.OnMessage = fn }
}

// CreateHandler subclasses hwnd. A second handler for the same window fails
// with ErrDuplicateItem.
func (s *System) CreateHandler(hwnd HWND, callback pointer.Func, options ...HandlerOption) (*Handler, error) {
	opts := s.opts
	for _, opt := range options {
		opt(&opts)
	}

	h, err := s.handlers.Create(hwnd, func() *Handler {
		h := NewHandler(opts)
		h.attach(opts.API, hwnd, callback)
		return h
	})
	if err != nil {
		s.msg.Errorf("Failed to create handler for window %#x: %v", uintptr(hwnd), err)
		return nil, err
	}
	return h, nil
}

func (s *System) Handler(hwnd HWND) (*Handler, bool) {
	return s.handlers.Get(hwnd)
}

func (s *System) Handlers() []HWND {
	return s.handlers.Keys()
}

// DestroyHandler restores the window and forgets the handler. Unknown
// handlers are ignored.
func (s *System) DestroyHandler(h *Handler) {
	if h == nil {
		return
	}
	s.handlers.Destroy(h.hwnd, h)
}

// Close tears down every handler.
func (s *System) Close() {
	s.handlers.DestroyAll()
}

// Package inject drives a uinput virtual mouse from normalized pointer
// events, so the X11 bridge can be exercised end to end without hardware.
package inject

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/bnema/pointerbridge/internal/pointer"
)

var (
	ErrClosed           = errors.New("injector closed")
	ErrUnsupportedEvent = errors.New("event cannot be injected")
)

// Mouse is the subset of uinput.Mouse the injector drives.
type Mouse interface {
	Move(x, y int32) error
	LeftPress() error
	LeftRelease() error
	RightPress() error
	RightRelease() error
	MiddlePress() error
	MiddleRelease() error
	Wheel(horizontal bool, delta int32) error
	Close() error
}

// Injector replays mouse events as relative motion and button presses.
type Injector struct {
	mu     sync.Mutex
	mouse  Mouse
	closed bool

	lastX, lastY float32
	havePos      bool
}

func New(m Mouse) *Injector {
	return &Injector{mouse: m}
}

// Apply injects one mouse event. Positions are host space (Y up), so the
// vertical delta is inverted before it reaches the device. The first
// positioned event only sets the reference point.
func (i *Injector) Apply(ev pointer.Event) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.closed {
		return ErrClosed
	}
	if ev.Type != pointer.TypeMouse {
		return fmt.Errorf("%w: %s events", ErrUnsupportedEvent, ev.Type)
	}

	if err := i.moveTo(ev.Position); err != nil {
		return err
	}

	switch ev.Kind {
	case pointer.KindDown, pointer.KindUp:
		return i.button(ev.Aux.ChangedButton)
	case pointer.KindUpdate, pointer.KindEnter, pointer.KindLeave, pointer.KindCancel:
		return nil
	default:
		return fmt.Errorf("%w: kind %s", ErrUnsupportedEvent, ev.Kind)
	}
}

func (i *Injector) moveTo(p pointer.Vec2) error {
	if !i.havePos {
		i.lastX, i.lastY = p.X, p.Y
		i.havePos = true
		return nil
	}

	dx := int32(math.Round(float64(p.X - i.lastX)))
	dy := -int32(math.Round(float64(p.Y - i.lastY)))
	if dx == 0 && dy == 0 {
		return nil
	}
	i.lastX += float32(dx)
	i.lastY -= float32(dy)
	return i.mouse.Move(dx, dy)
}

// button maps changes in X11 numbering: first is left, second middle,
// third right.
func (i *Injector) button(change pointer.ButtonChange) error {
	switch change {
	case pointer.FirstButtonDown:
		return i.mouse.LeftPress()
	case pointer.FirstButtonUp:
		return i.mouse.LeftRelease()
	case pointer.SecondButtonDown:
		return i.mouse.MiddlePress()
	case pointer.SecondButtonUp:
		return i.mouse.MiddleRelease()
	case pointer.ThirdButtonDown:
		return i.mouse.RightPress()
	case pointer.ThirdButtonUp:
		return i.mouse.RightRelease()
	case pointer.FourthButtonDown:
		return i.mouse.Wheel(false, 1)
	case pointer.FifthButtonDown:
		return i.mouse.Wheel(false, -1)
	case pointer.FourthButtonUp, pointer.FifthButtonUp:
		// the wheel has no release
		return nil
	default:
		return fmt.Errorf("%w: button change %d", ErrUnsupportedEvent, change)
	}
}

// Move sends a raw relative motion.
func (i *Injector) Move(dx, dy int32) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.closed {
		return ErrClosed
	}
	return i.mouse.Move(dx, dy)
}

// Click presses and releases the left button.
func (i *Injector) Click() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.closed {
		return ErrClosed
	}
	if err := i.mouse.LeftPress(); err != nil {
		return err
	}
	return i.mouse.LeftRelease()
}

// Close releases the device. Closing twice is a no-op.
func (i *Injector) Close() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.closed {
		return nil
	}
	i.closed = true
	return i.mouse.Close()
}

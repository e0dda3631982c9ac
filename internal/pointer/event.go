// Package pointer holds the normalized pointer event model shared by the
// Windows and X11 input bridges.
package pointer

import "fmt"

// Kind is the transition a pointer went through.
type Kind uint8

const (
	KindNone Kind = iota
	KindDown
	KindUpdate
	KindUp
	KindCancel
	KindEnter
	KindLeave
)

func (k Kind) String() string {
	switch k {
	case KindDown:
		return "down"
	case KindUpdate:
		return "update"
	case KindUp:
		return "up"
	case KindCancel:
		return "cancel"
	case KindEnter:
		return "enter"
	case KindLeave:
		return "leave"
	default:
		return "none"
	}
}

// Type is the kind of device that produced a pointer.
type Type uint8

const (
	TypeNone Type = iota
	TypeMouse
	TypeTouch
	TypePen
)

func (t Type) String() string {
	switch t {
	case TypeMouse:
		return "mouse"
	case TypeTouch:
		return "touch"
	case TypePen:
		return "pen"
	default:
		return "none"
	}
}

// ButtonChange follows the POINTER_BUTTON_CHANGE_TYPE ordering so it can be
// handed to Windows hosts unchanged.
type ButtonChange uint32

const (
	ButtonChangeNone ButtonChange = iota
	FirstButtonDown
	FirstButtonUp
	SecondButtonDown
	SecondButtonUp
	ThirdButtonDown
	ThirdButtonUp
	FourthButtonDown
	FourthButtonUp
	FifthButtonDown
	FifthButtonUp
)

// ButtonChangeFor returns the change for a 1-based button index. ok is false
// for indices outside 1-5.
func ButtonChangeFor(button int, down bool) (ButtonChange, bool) {
	if button < 1 || button > 5 {
		return ButtonChangeNone, false
	}
	change := ButtonChange(1 + (button-1)*2)
	if !down {
		change++
	}
	return change, true
}

// Pointer flags shared by both platforms. Values match POINTER_FLAGS.
const (
	FlagNone         uint32 = 0x00000000
	FlagNew          uint32 = 0x00000001
	FlagInRange      uint32 = 0x00000002
	FlagInContact    uint32 = 0x00000004
	FlagFirstButton  uint32 = 0x00000010
	FlagSecondButton uint32 = 0x00000020
	FlagThirdButton  uint32 = 0x00000040
	FlagFourthButton uint32 = 0x00000080
	FlagFifthButton  uint32 = 0x00000100
	FlagPrimary      uint32 = 0x00002000
	FlagCanceled     uint32 = 0x00008000
	FlagDown         uint32 = 0x00010000
	FlagUpdate       uint32 = 0x00020000
	FlagUp           uint32 = 0x00040000
)

// ButtonFlag returns the flag bit for a 1-based button index.
func ButtonFlag(button int) uint32 {
	return FlagFirstButton << uint(button-1)
}

// Vec2 is a position in host space.
type Vec2 struct {
	X, Y float32
}

// Aux carries the per-type payload. Fields that do not apply to the event's
// Type are left zero.
type Aux struct {
	Flags         uint32
	TypeFlags     uint32
	Mask          uint32
	ChangedButton ButtonChange
	Rotation      uint32
	Pressure      uint32
	TiltX         int32
	TiltY         int32
}

// Event is the normalized record handed to the host callback.
type Event struct {
	ID            int32
	Kind          Kind
	Type          Type
	Position      Vec2
	Aux           Aux
	TargetDisplay int
}

func (e Event) String() string {
	return fmt.Sprintf("#%d %s/%s (%.1f, %.1f) buttons=%d flags=0x%x",
		e.ID, e.Type, e.Kind, e.Position.X, e.Position.Y, e.Aux.ChangedButton, e.Aux.Flags)
}

// Func receives normalized events, synchronously and in delivery order.
type Func func(Event)

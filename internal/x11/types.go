// Package x11 bridges XInput2 device events from an X server into
// normalized pointer events.
//
// A System owns the display connection and one Handler per subscribed
// window. The host calls ProcessFrame (or ProcessEventQueue) once per frame
// to drain the queue; everything runs on the caller's goroutine.
package x11

// Window is an X window id.
type Window uint64

// Atom is an interned X atom.
type Atom uint64

// Core and XInput2 protocol constants used by the bridge.
const (
	GenericEvent = 35

	XIAllDevices       = 0
	XIAllMasterDevices = 1

	XIKeyPress      = 2
	XIKeyRelease    = 3
	XIButtonPress   = 4
	XIButtonRelease = 5
	XIMotion        = 6
	XITouchBegin    = 18
	XITouchUpdate   = 19
	XITouchEnd      = 20

	// XILastEvent is XI_BarrierLeave, the last event of XInput 2.3.
	XILastEvent = 26

	extensionName = "XInputExtension"
	pidAtomName   = "_NET_WM_PID"

	minMajorVersion = 2
	minMinorVersion = 3
)

// Event is one queued X event. Only GenericEvent cookies carry a payload
// the bridge reads.
type Event struct {
	Type      int
	Extension int

	ref     any
	fetched bool
}

// DeviceEvent is the Go copy of an XIDeviceEvent.
type DeviceEvent struct {
	EvType   int
	Time     uint64
	DeviceID int
	SourceID int
	Detail   int
	Root     Window
	Event    Window
	Child    Window
	RootX    float64
	RootY    float64
	EventX   float64
	EventY   float64
	Flags    int
}

// Display is the subset of Xlib/XInput2 the bridge needs.
type Display interface {
	QueryExtension(name string) (opcode int, ok bool)
	// QueryVersion announces the client version and returns the server's.
	// ok is false when the server rejects the request as too new.
	QueryVersion(major, minor int) (serverMajor, serverMinor int, ok bool)
	SelectEvents(window Window, deviceID int, mask []byte) error
	ScreenSize(window Window) (width, height int, err error)

	Flush()
	EventsQueued() int
	NextEvent() Event
	// EventData fetches the cookie payload of a generic event. Every
	// successful call must be paired with FreeEventData.
	EventData(ev *Event) (DeviceEvent, bool)
	FreeEventData(ev *Event)

	RootWindow() Window
	InternAtom(name string, onlyIfExists bool) Atom
	CardinalProperty(window Window, property Atom) (uint64, bool)
	QueryTree(window Window) ([]Window, bool)

	Close()
}

// Opener connects to a display by name; an empty name means $DISPLAY.
type Opener func(name string) (Display, error)

// SetMask sets the bit for an event type, like XISetMask.
func SetMask(mask []byte, event int) {
	mask[event>>3] |= 1 << uint(event&7)
}

// MaskLen is XIMaskLen.
func MaskLen(event int) int {
	return (event >> 3) + 1
}

// pointerEventMask returns the mask handlers subscribe with: buttons, motion
// and touch.
func pointerEventMask() []byte {
	mask := make([]byte, MaskLen(XILastEvent))
	for _, ev := range []int{XIButtonPress, XIButtonRelease, XIMotion, XITouchBegin, XITouchUpdate, XITouchEnd} {
		SetMask(mask, ev)
	}
	return mask
}

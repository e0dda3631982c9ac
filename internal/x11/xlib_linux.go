//go:build linux

package x11

import (
	"fmt"
	"runtime"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"

	"github.com/bnema/pointerbridge/internal/pointer"
)

const (
	queuedAlready = 0
	success       = 0
	badRequest    = 1
	xaCardinal    = 6
)

// xEvent is an XEvent-sized buffer (24 longs on LP64 Xlib).
type xEvent [24]uintptr

type xGenericEventCookie struct {
	Type      int32
	Serial    uintptr
	SendEvent int32
	Display   uintptr
	Extension int32
	Evtype    int32
	Cookie    uint32
	Data      unsafe.Pointer
}

type xiDeviceEvent struct {
	Type      int32
	Serial    uintptr
	SendEvent int32
	Display   uintptr
	Extension int32
	Evtype    int32
	Time      uintptr
	Deviceid  int32
	Sourceid  int32
	Detail    int32
	Root      uintptr
	Event     uintptr
	Child     uintptr
	RootX     float64
	RootY     float64
	EventX    float64
	EventY    float64
	Flags     int32
}

type xiEventMask struct {
	Deviceid int32
	MaskLen  int32
	Mask     *byte
}

type xWindowAttributes struct {
	X, Y, Width, Height int32
	BorderWidth, Depth  int32
	Visual              uintptr
	Root                uintptr
	Class               int32
	BitGravity          int32
	WinGravity          int32
	BackingStore        int32
	BackingPlanes       uintptr
	BackingPixel        uintptr
	SaveUnder           int32
	Colormap            uintptr
	MapInstalled        int32
	MapState            int32
	AllEventMasks       int
	YourEventMask       int
	DoNotPropagateMask  int
	OverrideRedirect    int32
	Screen              uintptr
}

var (
	libOnce sync.Once
	libErr  error

	x11lib uintptr
	xilib  uintptr

	xOpenDisplay         func(*byte) uintptr
	xCloseDisplay        func(uintptr) int32
	xFlush               func(uintptr) int32
	xEventsQueued        func(uintptr, int32) int32
	xNextEvent           func(uintptr, unsafe.Pointer) int32
	xGetEventData        func(uintptr, unsafe.Pointer) int32
	xFreeEventData       func(uintptr, unsafe.Pointer)
	xQueryExtension      func(uintptr, *byte, *int32, *int32, *int32) int32
	xDefaultRootWindow   func(uintptr) uintptr
	xInternAtom          func(uintptr, *byte, int32) uintptr
	xGetWindowProperty   func(uintptr, uintptr, uintptr, int, int, int32, uintptr, *uintptr, *int32, *uintptr, *uintptr, *unsafe.Pointer) int32
	xQueryTree           func(uintptr, uintptr, *uintptr, *uintptr, *unsafe.Pointer, *uint32) int32
	xFree                func(unsafe.Pointer) int32
	xGetWindowAttributes func(uintptr, uintptr, *xWindowAttributes) int32
	xWidthOfScreen       func(uintptr) int32
	xHeightOfScreen      func(uintptr) int32

	xiQueryVersion func(uintptr, *int32, *int32) int32
	xiSelectEvents func(uintptr, uintptr, *xiEventMask, int32) int32
)

func loadXlib() error {
	libOnce.Do(func() {
		defer func() {
			// RegisterLibFunc panics on a missing symbol
			if r := recover(); r != nil {
				libErr = fmt.Errorf("resolve xlib symbol: %v", r)
			}
		}()

		x11lib, libErr = purego.Dlopen("libX11.so.6", purego.RTLD_LAZY|purego.RTLD_GLOBAL)
		if libErr != nil {
			return
		}
		xilib, libErr = purego.Dlopen("libXi.so.6", purego.RTLD_LAZY|purego.RTLD_GLOBAL)
		if libErr != nil {
			return
		}

		purego.RegisterLibFunc(&xOpenDisplay, x11lib, "XOpenDisplay")
		purego.RegisterLibFunc(&xCloseDisplay, x11lib, "XCloseDisplay")
		purego.RegisterLibFunc(&xFlush, x11lib, "XFlush")
		purego.RegisterLibFunc(&xEventsQueued, x11lib, "XEventsQueued")
		purego.RegisterLibFunc(&xNextEvent, x11lib, "XNextEvent")
		purego.RegisterLibFunc(&xGetEventData, x11lib, "XGetEventData")
		purego.RegisterLibFunc(&xFreeEventData, x11lib, "XFreeEventData")
		purego.RegisterLibFunc(&xQueryExtension, x11lib, "XQueryExtension")
		purego.RegisterLibFunc(&xDefaultRootWindow, x11lib, "XDefaultRootWindow")
		purego.RegisterLibFunc(&xInternAtom, x11lib, "XInternAtom")
		purego.RegisterLibFunc(&xGetWindowProperty, x11lib, "XGetWindowProperty")
		purego.RegisterLibFunc(&xQueryTree, x11lib, "XQueryTree")
		purego.RegisterLibFunc(&xFree, x11lib, "XFree")
		purego.RegisterLibFunc(&xGetWindowAttributes, x11lib, "XGetWindowAttributes")
		purego.RegisterLibFunc(&xWidthOfScreen, x11lib, "XWidthOfScreen")
		purego.RegisterLibFunc(&xHeightOfScreen, x11lib, "XHeightOfScreen")

		purego.RegisterLibFunc(&xiQueryVersion, xilib, "XIQueryVersion")
		purego.RegisterLibFunc(&xiSelectEvents, xilib, "XISelectEvents")
	})
	return libErr
}

type xlibDisplay struct {
	dpy uintptr
}

func openXlib(name string) (Display, error) {
	if err := loadXlib(); err != nil {
		return nil, fmt.Errorf("load xlib: %v: %w", err, pointer.ErrAPIFailure)
	}

	var cname *byte
	if name != "" {
		cname = cString(name)
	}
	dpy := xOpenDisplay(cname)
	runtime.KeepAlive(cname)
	if dpy == 0 {
		return nil, fmt.Errorf("XOpenDisplay: %w", pointer.ErrAPIFailure)
	}
	return &xlibDisplay{dpy: dpy}, nil
}

func cString(s string) *byte {
	b := append([]byte(s), 0)
	return &b[0]
}

func (d *xlibDisplay) QueryExtension(name string) (int, bool) {
	var opcode, event, errBase int32
	cname := cString(name)
	ok := xQueryExtension(d.dpy, cname, &opcode, &event, &errBase)
	runtime.KeepAlive(cname)
	return int(opcode), ok != 0
}

func (d *xlibDisplay) QueryVersion(major, minor int) (int, int, bool) {
	maj, min := int32(major), int32(minor)
	status := xiQueryVersion(d.dpy, &maj, &min)
	return int(maj), int(min), status != badRequest
}

func (d *xlibDisplay) SelectEvents(window Window, deviceID int, mask []byte) error {
	if len(mask) == 0 {
		return fmt.Errorf("empty event mask")
	}
	m := &xiEventMask{
		Deviceid: int32(deviceID),
		MaskLen:  int32(len(mask)),
		Mask:     &mask[0],
	}
	status := xiSelectEvents(d.dpy, uintptr(window), m, 1)
	runtime.KeepAlive(mask)
	if status != success {
		return fmt.Errorf("XISelectEvents status %d", status)
	}
	return nil
}

func (d *xlibDisplay) ScreenSize(window Window) (int, int, error) {
	attrs := new(xWindowAttributes)
	if xGetWindowAttributes(d.dpy, uintptr(window), attrs) == 0 {
		return 0, 0, fmt.Errorf("XGetWindowAttributes(%d): %w", window, pointer.ErrAPIFailure)
	}
	return int(xWidthOfScreen(attrs.Screen)), int(xHeightOfScreen(attrs.Screen)), nil
}

func (d *xlibDisplay) Flush() {
	xFlush(d.dpy)
}

func (d *xlibDisplay) EventsQueued() int {
	return int(xEventsQueued(d.dpy, queuedAlready))
}

func (d *xlibDisplay) NextEvent() Event {
	buf := new(xEvent)
	xNextEvent(d.dpy, unsafe.Pointer(buf))

	cookie := (*xGenericEventCookie)(unsafe.Pointer(buf))
	return Event{
		Type:      int(cookie.Type),
		Extension: int(cookie.Extension),
		ref:       buf,
	}
}

func (d *xlibDisplay) EventData(ev *Event) (DeviceEvent, bool) {
	buf, ok := ev.ref.(*xEvent)
	if !ok {
		return DeviceEvent{}, false
	}
	if xGetEventData(d.dpy, unsafe.Pointer(buf)) == 0 {
		return DeviceEvent{}, false
	}
	ev.fetched = true

	cookie := (*xGenericEventCookie)(unsafe.Pointer(buf))
	if cookie.Data == nil {
		return DeviceEvent{}, true
	}
	if !isDeviceEvent(int(cookie.Evtype)) {
		// Not an XIDeviceEvent layout; only the type is safe to read
		return DeviceEvent{EvType: int(cookie.Evtype)}, true
	}

	raw := (*xiDeviceEvent)(cookie.Data)
	return DeviceEvent{
		EvType:   int(raw.Evtype),
		Time:     uint64(raw.Time),
		DeviceID: int(raw.Deviceid),
		SourceID: int(raw.Sourceid),
		Detail:   int(raw.Detail),
		Root:     Window(raw.Root),
		Event:    Window(raw.Event),
		Child:    Window(raw.Child),
		RootX:    raw.RootX,
		RootY:    raw.RootY,
		EventX:   raw.EventX,
		EventY:   raw.EventY,
		Flags:    int(raw.Flags),
	}, true
}

func isDeviceEvent(evtype int) bool {
	switch evtype {
	case XIKeyPress, XIKeyRelease, XIButtonPress, XIButtonRelease, XIMotion,
		XITouchBegin, XITouchUpdate, XITouchEnd:
		return true
	}
	return false
}

func (d *xlibDisplay) FreeEventData(ev *Event) {
	if !ev.fetched {
		return
	}
	if buf, ok := ev.ref.(*xEvent); ok {
		xFreeEventData(d.dpy, unsafe.Pointer(buf))
	}
	ev.fetched = false
}

func (d *xlibDisplay) RootWindow() Window {
	return Window(xDefaultRootWindow(d.dpy))
}

func (d *xlibDisplay) InternAtom(name string, onlyIfExists bool) Atom {
	var flag int32
	if onlyIfExists {
		flag = 1
	}
	cname := cString(name)
	atom := xInternAtom(d.dpy, cname, flag)
	runtime.KeepAlive(cname)
	return Atom(atom)
}

func (d *xlibDisplay) CardinalProperty(window Window, property Atom) (uint64, bool) {
	var (
		actualType   uintptr
		actualFormat int32
		nItems       uintptr
		bytesAfter   uintptr
		prop         unsafe.Pointer
	)
	status := xGetWindowProperty(d.dpy, uintptr(window), uintptr(property), 0, 1, 0, xaCardinal,
		&actualType, &actualFormat, &nItems, &bytesAfter, &prop)
	if status != success || prop == nil {
		return 0, false
	}
	defer xFree(prop)

	if nItems == 0 {
		return 0, false
	}
	// Format 32 properties come back as C longs
	return uint64(*(*uint)(prop)), true
}

func (d *xlibDisplay) QueryTree(window Window) ([]Window, bool) {
	var (
		root, parent uintptr
		children     unsafe.Pointer
		count        uint32
	)
	if xQueryTree(d.dpy, uintptr(window), &root, &parent, &children, &count) == 0 {
		return nil, false
	}
	if children == nil {
		return nil, true
	}
	defer xFree(children)

	ids := unsafe.Slice((*uintptr)(children), count)
	out := make([]Window, len(ids))
	for i, id := range ids {
		out[i] = Window(id)
	}
	return out, true
}

func (d *xlibDisplay) Close() {
	if d.dpy == 0 {
		return
	}
	xCloseDisplay(d.dpy)
	d.dpy = 0
}

package x11

import (
	"errors"

	"github.com/bnema/pointerbridge/internal/pointer"
)

type queuedEvent struct {
	ev     Event
	dev    DeviceEvent
	hasDev bool
}

// fakeDisplay records every call the bridge makes and serves queued events.
type fakeDisplay struct {
	opcode       int
	hasExtension bool
	major, minor int
	versionOK    bool
	selectErr    error
	width        int
	height       int

	queue []queuedEvent

	// window tree for WindowsOfProcess
	root     Window
	pidAtom  Atom
	pids     map[Window]uint64
	children map[Window][]Window

	selected   map[Window][]byte
	flushes    int
	dataGets   int
	dataFrees  int
	closed     int
	drained    int
	nextCalled int
}

func newFakeDisplay() *fakeDisplay {
	return &fakeDisplay{
		opcode:       131,
		hasExtension: true,
		major:        2,
		minor:        3,
		versionOK:    true,
		width:        1920,
		height:       1080,
		root:         1,
		pidAtom:      300,
		pids:         map[Window]uint64{},
		children:     map[Window][]Window{},
		selected:     map[Window][]byte{},
	}
}

func (d *fakeDisplay) opener() Opener {
	return func(string) (Display, error) { return d, nil }
}

func (d *fakeDisplay) push(dev DeviceEvent) {
	d.queue = append(d.queue, queuedEvent{
		ev:     Event{Type: GenericEvent, Extension: d.opcode},
		dev:    dev,
		hasDev: true,
	})
}

func (d *fakeDisplay) pushRaw(ev Event) {
	d.queue = append(d.queue, queuedEvent{ev: ev})
}

func (d *fakeDisplay) QueryExtension(string) (int, bool) {
	return d.opcode, d.hasExtension
}

func (d *fakeDisplay) QueryVersion(int, int) (int, int, bool) {
	return d.major, d.minor, d.versionOK
}

func (d *fakeDisplay) SelectEvents(window Window, _ int, mask []byte) error {
	if d.selectErr != nil {
		return d.selectErr
	}
	d.selected[window] = mask
	return nil
}

func (d *fakeDisplay) ScreenSize(Window) (int, int, error) {
	if d.width == 0 {
		return 0, 0, errors.New("no attributes")
	}
	return d.width, d.height, nil
}

func (d *fakeDisplay) Flush() { d.flushes++ }

func (d *fakeDisplay) EventsQueued() int { return len(d.queue) }

func (d *fakeDisplay) NextEvent() Event {
	d.nextCalled++
	q := d.queue[0]
	d.queue = d.queue[1:]
	ev := q.ev
	if q.hasDev {
		ev.ref = q.dev
	}
	return ev
}

func (d *fakeDisplay) EventData(ev *Event) (DeviceEvent, bool) {
	dev, ok := ev.ref.(DeviceEvent)
	if !ok {
		return DeviceEvent{}, false
	}
	d.dataGets++
	ev.fetched = true
	return dev, true
}

func (d *fakeDisplay) FreeEventData(ev *Event) {
	if ev.fetched {
		d.dataFrees++
		ev.fetched = false
	}
}

func (d *fakeDisplay) RootWindow() Window { return d.root }

func (d *fakeDisplay) InternAtom(string, bool) Atom { return d.pidAtom }

func (d *fakeDisplay) CardinalProperty(window Window, atom Atom) (uint64, bool) {
	if atom != d.pidAtom {
		return 0, false
	}
	pid, ok := d.pids[window]
	return pid, ok
}

func (d *fakeDisplay) QueryTree(window Window) ([]Window, bool) {
	return d.children[window], true
}

func (d *fakeDisplay) Close() { d.closed++ }

type recorder struct {
	events []pointer.Event
}

func (r *recorder) record(ev pointer.Event) {
	r.events = append(r.events, ev)
}

func newTestSystem(d *fakeDisplay, mutate func(*Options)) (*System, error) {
	opts := DefaultOptions()
	opts.Opener = d.opener()
	if mutate != nil {
		mutate(&opts)
	}
	return NewSystem(opts)
}

package wintouch

import (
	"errors"

	"github.com/bnema/pointerbridge/internal/pointer"
)

type fakeUser32 struct {
	resolveErr   error
	subclassErr  error
	registerFail bool

	pointers map[uint32]PointerInfo
	touches  map[uint32]PointerTouchInfo
	pens     map[uint32]PointerPenInfo

	touchInputs   []TouchInput
	touchInfoFail bool

	// client origin subtracted by ScreenToClient
	originX, originY int32

	prevProc     uintptr
	currentProc  map[HWND]uintptr
	registered   map[HWND]bool
	unregistered int
	closed       []uintptr
	chained      []uint32
	restores     int
}

const bridgeProc uintptr = 0xB0B0

func newFakeUser32() *fakeUser32 {
	return &fakeUser32{
		pointers:    map[uint32]PointerInfo{},
		touches:     map[uint32]PointerTouchInfo{},
		pens:        map[uint32]PointerPenInfo{},
		prevProc:    0xC0DE,
		currentProc: map[HWND]uintptr{},
		registered:  map[HWND]bool{},
	}
}

func (u *fakeUser32) ResolvePointerAPI() error { return u.resolveErr }

func (u *fakeUser32) GetPointerInfo(id uint32, info *PointerInfo) bool {
	p, ok := u.pointers[id]
	if ok {
		*info = p
	}
	return ok
}

func (u *fakeUser32) GetPointerTouchInfo(id uint32, info *PointerTouchInfo) bool {
	t, ok := u.touches[id]
	if ok {
		*info = t
	}
	return ok
}

func (u *fakeUser32) GetPointerPenInfo(id uint32, info *PointerPenInfo) bool {
	p, ok := u.pens[id]
	if ok {
		*info = p
	}
	return ok
}

func (u *fakeUser32) GetTouchInputInfo(_ uintptr, inputs []TouchInput) bool {
	if u.touchInfoFail {
		return false
	}
	copy(inputs, u.touchInputs)
	return true
}

func (u *fakeUser32) CloseTouchInputHandle(handle uintptr) {
	u.closed = append(u.closed, handle)
}

func (u *fakeUser32) RegisterTouchWindow(hwnd HWND) bool {
	if u.registerFail {
		return false
	}
	u.registered[hwnd] = true
	return true
}

func (u *fakeUser32) UnregisterTouchWindow(hwnd HWND) bool {
	u.unregistered++
	delete(u.registered, hwnd)
	return true
}

func (u *fakeUser32) ScreenToClient(_ HWND, p *Point) bool {
	p.X -= u.originX
	p.Y -= u.originY
	return true
}

func (u *fakeUser32) SubclassWindow(hwnd HWND) (uintptr, error) {
	if u.subclassErr != nil {
		return 0, u.subclassErr
	}
	prev, ok := u.currentProc[hwnd]
	if !ok {
		prev = u.prevProc
	}
	u.currentProc[hwnd] = bridgeProc
	return prev, nil
}

func (u *fakeUser32) RestoreWindowProc(hwnd HWND, prev uintptr) {
	u.restores++
	u.currentProc[hwnd] = prev
}

func (u *fakeUser32) CallWindowProc(prev uintptr, _ HWND, msg uint32, _, _ uintptr) uintptr {
	u.chained = append(u.chained, msg)
	return prev
}

var errFake = errors.New("fake failure")

type recorder struct {
	events []pointer.Event
}

func (r *recorder) record(ev pointer.Event) {
	r.events = append(r.events, ev)
}

func testOptions(u *fakeUser32) Options {
	opts := DefaultOptions()
	opts.User32 = u
	return opts
}

package main

/*
#include <stdlib.h>
#include "plugin.h"
*/
import "C"

import (
	"runtime/cgo"
	"unsafe"

	"github.com/bnema/pointerbridge/internal/pointer"
	"github.com/bnema/pointerbridge/internal/x11"
)

// pluginSystem pairs an X11 system with the handles given out for its
// handlers, so they can be released with it.
type pluginSystem struct {
	sys      *x11.System
	handlers map[*x11.Handler]cgo.Handle
}

func (p *pluginSystem) close() {
	for _, h := range p.handlers {
		h.Delete()
	}
	p.handlers = nil
	p.sys.Close()
}

//export PointerSystem_Create
func PointerSystem_Create(messageCallback C.MessageCallback, handle *C.uintptr_t) C.int {
	if handle == nil {
		return C.int(pointer.ResultNullArgument)
	}
	*handle = 0

	opts := x11.DefaultOptions()
	opts.OnMessage = messageFunc(messageCallback)
	sys, err := x11.NewSystem(opts)
	if err != nil {
		return C.int(result(err))
	}

	p := &pluginSystem{sys: sys, handlers: make(map[*x11.Handler]cgo.Handle)}
	*handle = C.uintptr_t(cgo.NewHandle(p))
	return C.int(pointer.ResultOK)
}

//export PointerSystem_Destroy
func PointerSystem_Destroy(system C.uintptr_t) C.int {
	p, ok := lookup[*pluginSystem](system)
	if !ok {
		return C.int(pointer.ResultNullArgument)
	}
	p.close()
	cgo.Handle(system).Delete()
	return C.int(pointer.ResultOK)
}

//export PointerSystem_CreateHandler
func PointerSystem_CreateHandler(system C.uintptr_t, window C.ulong, pointerCallback C.PointerCallback, handle *C.uintptr_t) C.int {
	p, ok := lookup[*pluginSystem](system)
	if !ok || handle == nil || pointerCallback == nil {
		return C.int(pointer.ResultNullArgument)
	}
	*handle = 0

	h, err := p.sys.CreateHandler(x11.Window(window), func(ev pointer.Event) {
		data := C.PointerData{
			pointerFlags:   C.uint32_t(ev.Aux.Flags),
			changedButtons: C.int32_t(ev.Aux.ChangedButton),
		}
		C.invokePointer(pointerCallback, C.int(ev.ID), C.uint32_t(x11Kind(ev.Kind)), C.int(x11Type(ev.Type)),
			vector(ev.Position.X, ev.Position.Y), data)
	})
	if err != nil {
		return C.int(result(err))
	}

	hh := cgo.NewHandle(h)
	p.handlers[h] = hh
	*handle = C.uintptr_t(hh)
	return C.int(pointer.ResultOK)
}

//export PointerSystem_DestroyHandler
func PointerSystem_DestroyHandler(system C.uintptr_t, handler C.uintptr_t) C.int {
	p, ok := lookup[*pluginSystem](system)
	if !ok {
		return C.int(pointer.ResultNullArgument)
	}
	h, ok := lookup[*x11.Handler](handler)
	if !ok {
		return C.int(pointer.ResultNullArgument)
	}

	p.sys.DestroyHandler(h)
	if hh, ok := p.handlers[h]; ok {
		delete(p.handlers, h)
		hh.Delete()
	}
	return C.int(pointer.ResultOK)
}

//export PointerSystem_ProcessEventQueue
func PointerSystem_ProcessEventQueue(system C.uintptr_t, frameCount C.longlong) C.int {
	p, ok := lookup[*pluginSystem](system)
	if !ok {
		return C.int(pointer.ResultNullArgument)
	}
	return C.int(result(p.sys.ProcessFrame(int64(frameCount))))
}

//export PointerSystem_GetWindowsOfProcess
func PointerSystem_GetWindowsOfProcess(system C.uintptr_t, pid C.int, windows **C.ulong, count *C.uint) C.int {
	p, ok := lookup[*pluginSystem](system)
	if !ok || windows == nil || count == nil {
		return C.int(pointer.ResultNullArgument)
	}
	*windows = nil
	*count = 0

	found, err := p.sys.WindowsOfProcess(uint64(pid))
	if err != nil {
		return C.int(result(err))
	}
	if len(found) == 0 {
		return C.int(pointer.ResultOK)
	}

	buf := (*C.ulong)(C.malloc(C.size_t(len(found)) * C.size_t(unsafe.Sizeof(C.ulong(0)))))
	out := unsafe.Slice(buf, len(found))
	for i, w := range found {
		out[i] = C.ulong(w)
	}
	*windows = buf
	*count = C.uint(len(found))
	return C.int(pointer.ResultOK)
}

//export PointerSystem_FreeWindowsOfProcess
func PointerSystem_FreeWindowsOfProcess(windows *C.ulong) C.int {
	if windows == nil {
		return C.int(pointer.ResultNullArgument)
	}
	C.free(unsafe.Pointer(windows))
	return C.int(pointer.ResultOK)
}

//export PointerHandler_GetScreenResolution
func PointerHandler_GetScreenResolution(handler C.uintptr_t, width, height *C.int) C.int {
	h, ok := lookup[*x11.Handler](handler)
	if !ok || width == nil || height == nil {
		return C.int(pointer.ResultNullArgument)
	}
	w, ht, err := h.ScreenResolution()
	if err != nil {
		return C.int(result(err))
	}
	*width = C.int(w)
	*height = C.int(ht)
	return C.int(pointer.ResultOK)
}

//export PointerHandler_SetScreenParams
func PointerHandler_SetScreenParams(handler C.uintptr_t, width, height C.int, offsetX, offsetY, scaleX, scaleY C.float) C.int {
	h, ok := lookup[*x11.Handler](handler)
	if !ok {
		return C.int(pointer.ResultNullArgument)
	}
	h.SetScreenParams(int(width), int(height), float32(offsetX), float32(offsetY), float32(scaleX), float32(scaleY))
	return C.int(pointer.ResultOK)
}

//export PointerHandler_SetTargetDisplay
func PointerHandler_SetTargetDisplay(handler C.uintptr_t, display C.int) C.int {
	h, ok := lookup[*x11.Handler](handler)
	if !ok {
		return C.int(pointer.ResultNullArgument)
	}
	h.SetTargetDisplay(int(display))
	return C.int(pointer.ResultOK)
}

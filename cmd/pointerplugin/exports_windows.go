package main

/*
#include "plugin.h"
*/
import "C"

import (
	"runtime/cgo"
	"sync"

	"github.com/bnema/pointerbridge/internal/config"
	"github.com/bnema/pointerbridge/internal/logger"
	"github.com/bnema/pointerbridge/internal/pointer"
	"github.com/bnema/pointerbridge/internal/wintouch"
)

var (
	systemOnce sync.Once
	system     *wintouch.System
)

// touchSystem returns the process-wide system, built from the
// [windows], [mapper] and [screen] config sections on first use.
func touchSystem() *wintouch.System {
	systemOnce.Do(func() {
		if err := config.Init(); err != nil {
			logger.Warnf("Using default config: %v", err)
		}
		opts, err := wintouch.OptionsFromConfig(config.Get())
		if err != nil {
			logger.Warnf("Using default touch options: %v", err)
			opts = wintouch.DefaultOptions()
		}
		system = wintouch.NewSystem(opts)
	})
	return system
}

// pluginHandler holds what the host sets before Initialize binds a window.
type pluginHandler struct {
	onMessage     logger.MessageFunc
	params        pointer.ScreenParams
	paramsSet     bool
	targetDisplay int
	h             *wintouch.Handler
}

//export PointerHandler_Create
func PointerHandler_Create(messageCallback C.MessageCallback, handle *C.uintptr_t) C.int {
	if handle == nil {
		return C.int(pointer.ResultNullArgument)
	}

	p := &pluginHandler{onMessage: messageFunc(messageCallback)}
	*handle = C.uintptr_t(cgo.NewHandle(p))
	return C.int(pointer.ResultOK)
}

//export PointerHandler_Destroy
func PointerHandler_Destroy(handle C.uintptr_t) C.int {
	p, ok := lookup[*pluginHandler](handle)
	if !ok {
		return C.int(pointer.ResultNullArgument)
	}
	if p.h != nil {
		touchSystem().DestroyHandler(p.h)
		p.h = nil
	}
	cgo.Handle(handle).Delete()
	return C.int(pointer.ResultOK)
}

//export PointerHandler_Initialize
func PointerHandler_Initialize(handle C.uintptr_t, api C.int, hwnd C.uintptr_t, pointerCallback C.PointerCallback) C.int {
	p, ok := lookup[*pluginHandler](handle)
	if !ok || pointerCallback == nil {
		return C.int(pointer.ResultNullArgument)
	}
	if p.h != nil {
		return C.int(pointer.ResultDuplicateItem)
	}

	h, err := touchSystem().CreateHandler(wintouch.HWND(hwnd), func(ev pointer.Event) {
		data := C.PointerData{
			pointerFlags:   C.uint32_t(ev.Aux.Flags),
			flags:          C.uint32_t(ev.Aux.TypeFlags),
			mask:           C.uint32_t(ev.Aux.Mask),
			changedButtons: C.int32_t(ev.Aux.ChangedButton),
			rotation:       C.uint32_t(ev.Aux.Rotation),
			pressure:       C.uint32_t(ev.Aux.Pressure),
			tiltX:          C.int32_t(ev.Aux.TiltX),
			tiltY:          C.int32_t(ev.Aux.TiltY),
		}
		C.invokePointer(pointerCallback, C.int(ev.ID), C.uint32_t(windowsKind(ev.Kind)), C.int(windowsType(ev.Type)),
			vector(ev.Position.X, ev.Position.Y), data)
	}, wintouch.WithAPI(wintouch.TouchAPI(api)), wintouch.WithMessages(p.onMessage))
	if err != nil {
		return C.int(result(err))
	}

	if p.paramsSet {
		s := p.params
		h.SetScreenParams(s.Width, s.Height, s.OffsetX, s.OffsetY, s.ScaleX, s.ScaleY)
	}
	h.SetTargetDisplay(p.targetDisplay)
	p.h = h
	return C.int(pointer.ResultOK)
}

//export PointerHandler_SetScreenParams
func PointerHandler_SetScreenParams(handle C.uintptr_t, width, height C.int, offsetX, offsetY, scaleX, scaleY C.float) C.int {
	p, ok := lookup[*pluginHandler](handle)
	if !ok {
		return C.int(pointer.ResultNullArgument)
	}
	if p.h != nil {
		p.h.SetScreenParams(int(width), int(height), float32(offsetX), float32(offsetY), float32(scaleX), float32(scaleY))
		return C.int(pointer.ResultOK)
	}
	p.params = pointer.NewScreenParams(int(width), int(height), float32(offsetX), float32(offsetY), float32(scaleX), float32(scaleY))
	p.paramsSet = true
	return C.int(pointer.ResultOK)
}

//export PointerHandler_GetScreenParams
func PointerHandler_GetScreenParams(handle C.uintptr_t, width, height *C.int, offsetX, offsetY, scaleX, scaleY *C.float) C.int {
	p, ok := lookup[*pluginHandler](handle)
	if !ok || width == nil || height == nil || offsetX == nil || offsetY == nil || scaleX == nil || scaleY == nil {
		return C.int(pointer.ResultNullArgument)
	}
	s := p.screenParams()
	*width, *height = C.int(s.Width), C.int(s.Height)
	*offsetX, *offsetY = C.float(s.OffsetX), C.float(s.OffsetY)
	*scaleX, *scaleY = C.float(s.ScaleX), C.float(s.ScaleY)
	return C.int(pointer.ResultOK)
}

func (p *pluginHandler) screenParams() pointer.ScreenParams {
	switch {
	case p.h != nil:
		return p.h.ScreenParams()
	case p.paramsSet:
		return p.params
	default:
		return wintouch.DefaultOptions().ScreenParams
	}
}

//export PointerHandler_SetTargetDisplay
func PointerHandler_SetTargetDisplay(handle C.uintptr_t, display C.int) C.int {
	p, ok := lookup[*pluginHandler](handle)
	if !ok {
		return C.int(pointer.ResultNullArgument)
	}
	if p.h != nil {
		p.h.SetTargetDisplay(int(display))
		return C.int(pointer.ResultOK)
	}
	p.targetDisplay = int(display)
	return C.int(pointer.ResultOK)
}

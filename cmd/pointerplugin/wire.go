package main

import (
	"github.com/bnema/pointerbridge/internal/pointer"
	"github.com/bnema/pointerbridge/internal/wintouch"
)

// Codes the X11 host expects.
const (
	x11KindNone   uint32 = 0
	x11KindDown   uint32 = 1
	x11KindUpdate uint32 = 2
	x11KindUp     uint32 = 3

	x11TypeNone  int32 = 0
	x11TypeMouse int32 = 1
	x11TypeTouch int32 = 2
)

func x11Kind(k pointer.Kind) uint32 {
	switch k {
	case pointer.KindDown:
		return x11KindDown
	case pointer.KindUpdate:
		return x11KindUpdate
	case pointer.KindUp:
		return x11KindUp
	default:
		return x11KindNone
	}
}

func x11Type(t pointer.Type) int32 {
	switch t {
	case pointer.TypeMouse:
		return x11TypeMouse
	case pointer.TypeTouch:
		return x11TypeTouch
	default:
		return x11TypeNone
	}
}

// The Windows host gets the raw WM_POINTER message and PT_* type.
func windowsKind(k pointer.Kind) uint32 {
	return wintouch.MessageCode(k)
}

func windowsType(t pointer.Type) int32 {
	return wintouch.PointerTypeCode(t)
}

func result(err error) int32 {
	return int32(pointer.ResultOf(err))
}

//go:build linux || windows

package main

/*
#include <stdlib.h>
#include "plugin.h"
*/
import "C"

import (
	"runtime/cgo"
	"unsafe"

	"github.com/bnema/pointerbridge/internal/logger"
)

// messageFunc forwards diagnostics to the host. The text is copied into C
// memory and freed once the callback returns.
func messageFunc(cb C.MessageCallback) logger.MessageFunc {
	if cb == nil {
		return nil
	}
	return func(severity logger.Severity, text string) {
		ctext := C.CString(text)
		defer C.free(unsafe.Pointer(ctext))
		C.invokeMessage(cb, C.int(severity), ctext)
	}
}

// lookup resolves a handle from the host. Zero, deleted and foreign handles
// report false.
func lookup[T any](h C.uintptr_t) (v T, ok bool) {
	if h == 0 {
		return v, false
	}
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	v, ok = cgo.Handle(h).Value().(T)
	return v, ok
}

func vector(x, y float32) C.Vector2 {
	return C.Vector2{x: C.float(x), y: C.float(y)}
}

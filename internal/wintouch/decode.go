package wintouch

import "github.com/bnema/pointerbridge/internal/pointer"

// decodePointer turns one WM_POINTER* message into an event. ok is false
// when the pointer info cannot be read.
func decodePointer(u User32, hwnd HWND, msg uint32, wParam uintptr, params pointer.ScreenParams) (pointer.Event, bool) {
	id := loword(wParam)

	var info PointerInfo
	if !u.GetPointerInfo(id, &info) {
		return pointer.Event{}, false
	}

	p := info.PixelLocation
	u.ScreenToClient(hwnd, &p)

	ev := pointer.Event{
		ID:       int32(id),
		Kind:     pointerKind(msg, info.PointerFlags),
		Position: params.MapVec(float32(p.X), float32(p.Y)),
		Aux: pointer.Aux{
			Flags:         info.PointerFlags,
			ChangedButton: pointer.ButtonChange(info.ButtonChangeType),
		},
	}

	switch info.PointerType {
	case PT_TOUCH:
		ev.Type = pointer.TypeTouch
		var touch PointerTouchInfo
		if u.GetPointerTouchInfo(id, &touch) {
			ev.Aux.TypeFlags = touch.TouchFlags
			ev.Aux.Mask = touch.TouchMask
			ev.Aux.Rotation = touch.Orientation
			ev.Aux.Pressure = touch.Pressure
		}
	case PT_PEN:
		ev.Type = pointer.TypePen
		var pen PointerPenInfo
		if u.GetPointerPenInfo(id, &pen) {
			ev.Aux.TypeFlags = pen.PenFlags
			ev.Aux.Mask = pen.PenMask
			ev.Aux.Rotation = pen.Rotation
			ev.Aux.Pressure = pen.Pressure
			ev.Aux.TiltX = pen.TiltX
			ev.Aux.TiltY = pen.TiltY
		}
	default:
		// PT_MOUSE, PT_POINTER and PT_TOUCHPAD carry nothing beyond POINTER_INFO
		ev.Type = pointer.TypeMouse
	}

	return ev, true
}

func pointerKind(msg, flags uint32) pointer.Kind {
	if flags&POINTER_FLAG_CANCELED != 0 || msg == WM_POINTERCAPTURECHANGED {
		return pointer.KindCancel
	}
	switch msg {
	case WM_POINTERDOWN:
		return pointer.KindDown
	case WM_POINTERUP:
		return pointer.KindUp
	case WM_POINTERENTER:
		return pointer.KindEnter
	case WM_POINTERLEAVE:
		return pointer.KindLeave
	default:
		return pointer.KindUpdate
	}
}

// decodeTouchInputs decodes a WM_TOUCH batch in OS order. The touch input
// handle is closed exactly once whatever happens.
func decodeTouchInputs(u User32, hwnd HWND, wParam, lParam uintptr, params pointer.ScreenParams, upAsLeave bool) []pointer.Event {
	defer u.CloseTouchInputHandle(lParam)

	count := loword(wParam)
	if count == 0 {
		return nil
	}

	inputs := make([]TouchInput, count)
	if !u.GetTouchInputInfo(lParam, inputs) {
		return nil
	}

	events := make([]pointer.Event, 0, len(inputs))
	for _, in := range inputs {
		ev := pointer.Event{
			ID:   int32(in.ID),
			Type: pointer.TypeTouch,
		}

		switch {
		case in.Flags&TOUCHEVENTF_DOWN != 0:
			ev.Kind = pointer.KindDown
			ev.Aux.ChangedButton = pointer.FirstButtonDown
		case in.Flags&TOUCHEVENTF_UP != 0:
			ev.Kind = pointer.KindUp
			if upAsLeave {
				ev.Kind = pointer.KindLeave
			}
			ev.Aux.ChangedButton = pointer.FirstButtonUp
		case in.Flags&TOUCHEVENTF_MOVE != 0:
			ev.Kind = pointer.KindUpdate
		default:
			// hover-only inputs have no transition to report
			continue
		}

		p := Point{X: in.X / 100, Y: in.Y / 100}
		u.ScreenToClient(hwnd, &p)
		ev.Position = params.MapVec(float32(p.X), float32(p.Y))

		events = append(events, ev)
	}
	return events
}

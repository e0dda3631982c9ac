package x11

import "github.com/bnema/pointerbridge/internal/pointer"

// Decode turns an XInput2 device event into a normalized event. ok is false
// for event types the bridge does not translate and for buttons outside 1-5.
func Decode(ev DeviceEvent, params pointer.ScreenParams) (pointer.Event, bool) {
	out := pointer.Event{
		Position: params.MapVec(float32(ev.EventX), float32(ev.EventY)),
	}

	switch ev.EvType {
	case XIButtonPress, XIButtonRelease:
		down := ev.EvType == XIButtonPress
		change, ok := pointer.ButtonChangeFor(ev.Detail, down)
		if !ok {
			return pointer.Event{}, false
		}
		out.Type = pointer.TypeMouse
		out.Aux.ChangedButton = change
		out.Aux.Flags = pointer.ButtonFlag(ev.Detail)
		if down {
			out.Kind = pointer.KindDown
			out.Aux.Flags |= pointer.FlagDown
		} else {
			out.Kind = pointer.KindUp
			out.Aux.Flags |= pointer.FlagUp
		}
	case XIMotion:
		out.Type = pointer.TypeMouse
		out.Kind = pointer.KindUpdate
		out.Aux.Flags = pointer.FlagUpdate
	case XITouchBegin:
		out.ID = int32(ev.Detail)
		out.Type = pointer.TypeTouch
		out.Kind = pointer.KindDown
		out.Aux.Flags = pointer.FlagNew | pointer.FlagDown
	case XITouchUpdate:
		out.ID = int32(ev.Detail)
		out.Type = pointer.TypeTouch
		out.Kind = pointer.KindUpdate
		out.Aux.Flags = pointer.FlagUpdate
	case XITouchEnd:
		out.ID = int32(ev.Detail)
		out.Type = pointer.TypeTouch
		out.Kind = pointer.KindUp
		out.Aux.Flags = pointer.FlagUp
	default:
		return pointer.Event{}, false
	}

	return out, true
}

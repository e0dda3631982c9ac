package x11

import (
	"fmt"

	"github.com/bnema/pointerbridge/internal/pointer"
)

// ProcessFrame drains the queue once per frame. With the frame guard on, a
// second call with the same frame number is a no-op; hosts that pump once
// per window per frame share one connection this way.
func (s *System) ProcessFrame(frame int64) error {
	if s.opts.FrameGuard {
		if frame == s.lastFrame {
			return nil
		}
		s.lastFrame = frame
	}
	return s.ProcessEventQueue()
}

// ProcessEventQueue flushes the output buffer, then dispatches every queued
// XInput event to the handler of its window.
func (s *System) ProcessEventQueue() error {
	if s.display == nil {
		return fmt.Errorf("display: %w", pointer.ErrNullArgument)
	}

	s.display.Flush()
	for s.display.EventsQueued() > 0 {
		ev := s.display.NextEvent()
		if ev.Type != GenericEvent || ev.Extension != s.opcode {
			continue
		}
		s.dispatch(&ev)
	}
	return nil
}

func (s *System) dispatch(ev *Event) {
	dev, ok := s.display.EventData(ev)
	if !ok {
		return
	}
	defer s.display.FreeEventData(ev)

	h, ok := s.handlers.Get(dev.Event)
	if !ok {
		s.msg.Warnf("Failed to retrieve handler for window %d", dev.Event)
		return
	}
	h.ProcessEvent(dev)
}

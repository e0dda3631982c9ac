package x11

import (
	"testing"

	"github.com/bnema/pointerbridge/internal/pointer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessEventQueue_Dispatch(t *testing.T) {
	d := newFakeDisplay()
	s, err := newTestSystem(d, nil)
	require.NoError(t, err)

	recA, recB := &recorder{}, &recorder{}
	hA, err := s.CreateHandler(10, recA.record)
	require.NoError(t, err)
	_, err = s.CreateHandler(20, recB.record)
	require.NoError(t, err)
	hA.SetTargetDisplay(2)

	d.push(DeviceEvent{EvType: XIButtonPress, Detail: 1, Event: 10})
	d.push(DeviceEvent{EvType: XITouchBegin, Detail: 5, Event: 20})
	d.push(DeviceEvent{EvType: XIMotion, Event: 10})

	require.NoError(t, s.ProcessEventQueue())

	require.Len(t, recA.events, 2)
	assert.Equal(t, pointer.KindDown, recA.events[0].Kind)
	assert.Equal(t, 2, recA.events[0].TargetDisplay)
	assert.Equal(t, pointer.KindUpdate, recA.events[1].Kind)

	require.Len(t, recB.events, 1)
	assert.Equal(t, pointer.TypeTouch, recB.events[0].Type)
	assert.Equal(t, int32(5), recB.events[0].ID)

	assert.Equal(t, 3, d.dataGets)
	assert.Equal(t, d.dataGets, d.dataFrees)
}

func TestProcessEventQueue_FreesUnknownWindow(t *testing.T) {
	d := newFakeDisplay()
	s, err := newTestSystem(d, nil)
	require.NoError(t, err)

	d.push(DeviceEvent{EvType: XIMotion, Event: 77})
	require.NoError(t, s.ProcessEventQueue())

	assert.Equal(t, 1, d.dataGets)
	assert.Equal(t, 1, d.dataFrees)
	assert.Zero(t, d.EventsQueued())
}

func TestProcessEventQueue_SkipsForeignEvents(t *testing.T) {
	d := newFakeDisplay()
	s, err := newTestSystem(d, nil)
	require.NoError(t, err)

	rec := &recorder{}
	_, err = s.CreateHandler(10, rec.record)
	require.NoError(t, err)

	d.pushRaw(Event{Type: 2})
	d.pushRaw(Event{Type: GenericEvent, Extension: d.opcode + 1})
	d.push(DeviceEvent{EvType: XIMotion, Event: 10})

	require.NoError(t, s.ProcessEventQueue())
	assert.Equal(t, 3, d.nextCalled)
	assert.Equal(t, 1, d.dataGets)
	assert.Len(t, rec.events, 1)
}

func TestProcessEventQueue_DropsAfterTeardown(t *testing.T) {
	d := newFakeDisplay()
	s, err := newTestSystem(d, nil)
	require.NoError(t, err)

	rec := &recorder{}
	h, err := s.CreateHandler(10, rec.record)
	require.NoError(t, err)
	s.DestroyHandler(h)

	d.push(DeviceEvent{EvType: XIMotion, Event: 10})
	require.NoError(t, s.ProcessEventQueue())
	assert.Empty(t, rec.events)
	assert.Equal(t, d.dataGets, d.dataFrees)
}

func TestProcessEventQueue_DropUnconfigured(t *testing.T) {
	d := newFakeDisplay()
	s, err := newTestSystem(d, func(o *Options) { o.DropUnconfigured = true })
	require.NoError(t, err)

	rec := &recorder{}
	h, err := s.CreateHandler(10, rec.record)
	require.NoError(t, err)

	d.push(DeviceEvent{EvType: XIMotion, Event: 10})
	require.NoError(t, s.ProcessEventQueue())
	assert.Empty(t, rec.events)

	h.SetScreenParams(800, 600, 0, 0, 1, 1)
	d.push(DeviceEvent{EvType: XIMotion, Event: 10, EventX: 5, EventY: 100})
	require.NoError(t, s.ProcessEventQueue())
	require.Len(t, rec.events, 1)
	assert.Equal(t, pointer.Vec2{X: 5, Y: 500}, rec.events[0].Position)
}

func TestProcessFrame_Guard(t *testing.T) {
	d := newFakeDisplay()
	s, err := newTestSystem(d, nil)
	require.NoError(t, err)

	rec := &recorder{}
	_, err = s.CreateHandler(10, rec.record)
	require.NoError(t, err)

	d.push(DeviceEvent{EvType: XIMotion, Event: 10})
	require.NoError(t, s.ProcessFrame(1))
	assert.Len(t, rec.events, 1)

	// same frame: the queue is left alone
	d.push(DeviceEvent{EvType: XIMotion, Event: 10})
	require.NoError(t, s.ProcessFrame(1))
	assert.Len(t, rec.events, 1)
	assert.Equal(t, 1, d.EventsQueued())

	require.NoError(t, s.ProcessFrame(2))
	assert.Len(t, rec.events, 2)
}

func TestProcessFrame_FirstFrameZero(t *testing.T) {
	d := newFakeDisplay()
	s, err := newTestSystem(d, nil)
	require.NoError(t, err)

	rec := &recorder{}
	_, err = s.CreateHandler(10, rec.record)
	require.NoError(t, err)

	d.push(DeviceEvent{EvType: XIMotion, Event: 10})
	require.NoError(t, s.ProcessFrame(0))
	assert.Len(t, rec.events, 1)
}

func TestProcessFrame_GuardDisabled(t *testing.T) {
	d := newFakeDisplay()
	s, err := newTestSystem(d, func(o *Options) { o.FrameGuard = false })
	require.NoError(t, err)

	rec := &recorder{}
	_, err = s.CreateHandler(10, rec.record)
	require.NoError(t, err)

	d.push(DeviceEvent{EvType: XIMotion, Event: 10})
	require.NoError(t, s.ProcessFrame(1))
	d.push(DeviceEvent{EvType: XIMotion, Event: 10})
	require.NoError(t, s.ProcessFrame(1))
	assert.Len(t, rec.events, 2)
}

func TestProcessEventQueue_ClosedSystem(t *testing.T) {
	d := newFakeDisplay()
	s, err := newTestSystem(d, nil)
	require.NoError(t, err)
	s.Close()

	assert.ErrorIs(t, s.ProcessEventQueue(), pointer.ErrNullArgument)
}

package inject

import (
	"testing"

	"github.com/bnema/pointerbridge/internal/pointer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMouse struct {
	calls  []string
	moves  [][2]int32
	closed int
}

func (m *fakeMouse) Move(x, y int32) error {
	m.calls = append(m.calls, "move")
	m.moves = append(m.moves, [2]int32{x, y})
	return nil
}

func (m *fakeMouse) LeftPress() error {
	m.calls = append(m.calls, "left+")
	return nil
}

func (m *fakeMouse) LeftRelease() error {
	m.calls = append(m.calls, "left-")
	return nil
}

func (m *fakeMouse) RightPress() error {
	m.calls = append(m.calls, "right+")
	return nil
}

func (m *fakeMouse) RightRelease() error {
	m.calls = append(m.calls, "right-")
	return nil
}

func (m *fakeMouse) MiddlePress() error {
	m.calls = append(m.calls, "middle+")
	return nil
}

func (m *fakeMouse) MiddleRelease() error {
	m.calls = append(m.calls, "middle-")
	return nil
}

func (m *fakeMouse) Wheel(_ bool, delta int32) error {
	if delta > 0 {
		m.calls = append(m.calls, "wheel+")
	} else {
		m.calls = append(m.calls, "wheel-")
	}
	return nil
}

func (m *fakeMouse) Close() error {
	m.closed++
	return nil
}

func mouseEvent(kind pointer.Kind, x, y float32, change pointer.ButtonChange) pointer.Event {
	return pointer.Event{
		Kind:     kind,
		Type:     pointer.TypeMouse,
		Position: pointer.Vec2{X: x, Y: y},
		Aux:      pointer.Aux{ChangedButton: change},
	}
}

func TestInjector_Apply(t *testing.T) {
	m := &fakeMouse{}
	inj := New(m)

	require.NoError(t, inj.Apply(mouseEvent(pointer.KindUpdate, 100, 100, pointer.ButtonChangeNone)))
	assert.Empty(t, m.moves, "first event only sets the reference")

	require.NoError(t, inj.Apply(mouseEvent(pointer.KindUpdate, 110, 90, pointer.ButtonChangeNone)))
	require.NoError(t, inj.Apply(mouseEvent(pointer.KindDown, 110, 90, pointer.FirstButtonDown)))
	require.NoError(t, inj.Apply(mouseEvent(pointer.KindUp, 110, 90, pointer.FirstButtonUp)))
	require.NoError(t, inj.Apply(mouseEvent(pointer.KindDown, 110, 90, pointer.ThirdButtonDown)))
	require.NoError(t, inj.Apply(mouseEvent(pointer.KindDown, 110, 90, pointer.FourthButtonDown)))
	require.NoError(t, inj.Apply(mouseEvent(pointer.KindUp, 110, 90, pointer.FourthButtonUp)))

	// host Y grows upwards, device Y downwards
	assert.Equal(t, [][2]int32{{10, 10}}, m.moves)
	assert.Equal(t, []string{"move", "left+", "left-", "right+", "wheel+"}, m.calls)
}

func TestInjector_RejectsNonMouse(t *testing.T) {
	inj := New(&fakeMouse{})

	err := inj.Apply(pointer.Event{Kind: pointer.KindDown, Type: pointer.TypeTouch})
	assert.ErrorIs(t, err, ErrUnsupportedEvent)

	err = inj.Apply(mouseEvent(pointer.KindDown, 0, 0, pointer.ButtonChangeNone))
	assert.ErrorIs(t, err, ErrUnsupportedEvent)
}

func TestInjector_Close(t *testing.T) {
	m := &fakeMouse{}
	inj := New(m)

	require.NoError(t, inj.Close())
	require.NoError(t, inj.Close())
	assert.Equal(t, 1, m.closed)

	assert.ErrorIs(t, inj.Click(), ErrClosed)
	assert.ErrorIs(t, inj.Move(1, 1), ErrClosed)
	assert.ErrorIs(t, inj.Apply(mouseEvent(pointer.KindUpdate, 0, 0, 0)), ErrClosed)
}

func TestInjector_Click(t *testing.T) {
	m := &fakeMouse{}
	require.NoError(t, New(m).Click())
	assert.Equal(t, []string{"left+", "left-"}, m.calls)
}

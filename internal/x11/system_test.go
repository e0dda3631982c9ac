package x11

import (
	"errors"
	"testing"

	"github.com/bnema/pointerbridge/internal/logger"
	"github.com/bnema/pointerbridge/internal/pointer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSystem_Failures(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*fakeDisplay)
		wantErr error
	}{
		{
			name:    "missing extension",
			mutate:  func(d *fakeDisplay) { d.hasExtension = false },
			wantErr: pointer.ErrUnsupported,
		},
		{
			name:    "version rejected",
			mutate:  func(d *fakeDisplay) { d.versionOK = false },
			wantErr: pointer.ErrUnsupported,
		},
		{
			name:    "version too old",
			mutate:  func(d *fakeDisplay) { d.major, d.minor = 2, 2 },
			wantErr: pointer.ErrUnsupported,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newFakeDisplay()
			tt.mutate(d)

			s, err := newTestSystem(d, nil)
			assert.Nil(t, s)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, 1, d.closed, "display must be closed on failure")
		})
	}
}

func TestNewSystem_OpenFailure(t *testing.T) {
	opts := DefaultOptions()
	opts.Opener = func(string) (Display, error) {
		return nil, errors.New("cannot open display")
	}
	_, err := NewSystem(opts)
	assert.Error(t, err)

	opts.Opener = func(string) (Display, error) { return nil, nil }
	_, err = NewSystem(opts)
	assert.ErrorIs(t, err, pointer.ErrAPIFailure)
}

func TestNewSystem_NewerVersionAccepted(t *testing.T) {
	d := newFakeDisplay()
	d.major, d.minor = 3, 0

	s, err := newTestSystem(d, nil)
	require.NoError(t, err)
	assert.Equal(t, d.opcode, s.Opcode())
	s.Close()
	assert.Equal(t, 1, d.closed)
}

func TestNewSystem_ForwardsMessages(t *testing.T) {
	d := newFakeDisplay()
	d.hasExtension = false

	var severities []logger.Severity
	_, err := newTestSystem(d, func(o *Options) {
		o.OnMessage = func(sev logger.Severity, _ string) { severities = append(severities, sev) }
	})
	require.Error(t, err)
	assert.Contains(t, severities, logger.SeverityError)
}

func TestSystem_CreateHandler(t *testing.T) {
	d := newFakeDisplay()
	s, err := newTestSystem(d, nil)
	require.NoError(t, err)
	defer s.Close()

	rec := &recorder{}
	h, err := s.CreateHandler(42, rec.record)
	require.NoError(t, err)
	assert.Equal(t, pointer.StateInitialized, h.State())
	assert.Contains(t, d.selected, Window(42))
	assert.Positive(t, d.flushes)

	got, ok := s.Handler(42)
	require.True(t, ok)
	assert.Same(t, h, got)
	assert.Equal(t, []Window{42}, s.Handlers())
}

func TestSystem_DuplicateHandler(t *testing.T) {
	d := newFakeDisplay()
	s, err := newTestSystem(d, nil)
	require.NoError(t, err)
	defer s.Close()

	rec := &recorder{}
	first, err := s.CreateHandler(42, rec.record)
	require.NoError(t, err)

	second, err := s.CreateHandler(42, rec.record)
	assert.ErrorIs(t, err, pointer.ErrDuplicateItem)
	assert.Nil(t, second)

	got, _ := s.Handler(42)
	assert.Same(t, first, got)
	assert.Equal(t, pointer.ResultDuplicateItem, pointer.ResultOf(err))
}

func TestSystem_CreateHandlerFailures(t *testing.T) {
	t.Run("nil callback", func(t *testing.T) {
		d := newFakeDisplay()
		s, err := newTestSystem(d, nil)
		require.NoError(t, err)

		_, err = s.CreateHandler(42, nil)
		assert.ErrorIs(t, err, pointer.ErrNullArgument)
		assert.Empty(t, s.Handlers())
	})

	t.Run("window none", func(t *testing.T) {
		d := newFakeDisplay()
		s, err := newTestSystem(d, nil)
		require.NoError(t, err)

		_, err = s.CreateHandler(0, (&recorder{}).record)
		assert.ErrorIs(t, err, pointer.ErrNullArgument)
	})

	t.Run("select fails", func(t *testing.T) {
		d := newFakeDisplay()
		d.selectErr = errors.New("BadWindow")
		s, err := newTestSystem(d, nil)
		require.NoError(t, err)

		_, err = s.CreateHandler(42, (&recorder{}).record)
		assert.ErrorIs(t, err, pointer.ErrAPIFailure)
		_, ok := s.Handler(42)
		assert.False(t, ok)
	})
}

func TestSystem_DestroyHandler(t *testing.T) {
	d := newFakeDisplay()
	s, err := newTestSystem(d, nil)
	require.NoError(t, err)
	defer s.Close()

	h, err := s.CreateHandler(42, (&recorder{}).record)
	require.NoError(t, err)

	s.DestroyHandler(h)
	assert.Equal(t, pointer.StateTornDown, h.State())
	_, ok := s.Handler(42)
	assert.False(t, ok)

	// unknown and repeated destroys are harmless
	s.DestroyHandler(h)
	s.DestroyHandler(nil)
	s.DestroyHandler(&Handler{window: 99})
	assert.Empty(t, s.Handlers())
}

func TestHandler_ScreenResolution(t *testing.T) {
	d := newFakeDisplay()
	s, err := newTestSystem(d, nil)
	require.NoError(t, err)

	h, err := s.CreateHandler(42, (&recorder{}).record)
	require.NoError(t, err)

	w, ht, err := h.ScreenResolution()
	require.NoError(t, err)
	assert.Equal(t, 1920, w)
	assert.Equal(t, 1080, ht)

	d.width = 0
	_, _, err = h.ScreenResolution()
	assert.Error(t, err)
}

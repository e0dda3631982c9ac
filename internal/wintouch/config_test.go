package wintouch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/pointerbridge/internal/config"
	"github.com/bnema/pointerbridge/internal/pointer"
)

func win7UpKind(t *testing.T, cfg config.Config) pointer.Kind {
	t.Helper()
	u := newFakeUser32()
	opts, err := OptionsFromConfig(&cfg)
	require.NoError(t, err)
	opts.User32 = u

	s := NewSystem(opts)
	defer s.Close()

	rec := &recorder{}
	h, err := s.CreateHandler(0x900, rec.record)
	require.NoError(t, err)
	require.Equal(t, Win7, h.API())

	u.touchInputs = []TouchInput{{ID: 4, Flags: TOUCHEVENTF_UP}}
	h.WindowProc(WM_TOUCH, 1, 0x1)
	require.Len(t, rec.events, 1)
	return rec.events[0].Kind
}

func TestOptionsFromConfig_LegacyUp(t *testing.T) {
	cfg := config.DefaultConfig
	cfg.Windows.API = "Win7"

	assert.Equal(t, pointer.KindLeave, win7UpKind(t, cfg))

	cfg.Windows.LegacyUpAsLeave = false
	assert.Equal(t, pointer.KindUp, win7UpKind(t, cfg))
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.DefaultConfig
	opts, err := OptionsFromConfig(&cfg)
	require.NoError(t, err)
	assert.Equal(t, Win8, opts.API)
	assert.True(t, opts.LegacyUpAsLeave)
	assert.False(t, opts.DropUnconfigured)
	assert.False(t, opts.ScreenParams.Configured())

	cfg.Mapper.DropUnconfigured = true
	cfg.Screen = config.ScreenConfig{Width: 800, Height: 600, ScaleX: 1, ScaleY: 1}
	opts, err = OptionsFromConfig(&cfg)
	require.NoError(t, err)
	assert.True(t, opts.DropUnconfigured)
	assert.True(t, opts.ScreenParams.Configured())
	assert.Equal(t, 600, opts.ScreenParams.Height)

	cfg.Windows.API = "win95"
	_, err = OptionsFromConfig(&cfg)
	assert.ErrorIs(t, err, pointer.ErrUnsupported)
}

func TestOptionsFromConfig_AcceptsValidatedNames(t *testing.T) {
	for _, name := range []string{"win8", "Win8", "WIN7", " win7 "} {
		cfg := config.DefaultConfig
		cfg.Windows.API = name
		require.NoError(t, cfg.Validate(), name)

		_, err := OptionsFromConfig(&cfg)
		assert.NoError(t, err, name)
	}
}

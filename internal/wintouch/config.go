package wintouch

import (
	"fmt"

	"github.com/bnema/pointerbridge/internal/config"
	"github.com/bnema/pointerbridge/internal/pointer"
)

// OptionsFromConfig maps the [windows], [mapper] and [screen] sections onto
// handler options. OnMessage and User32 are left for the caller.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	opts := DefaultOptions()

	api, ok := ParseTouchAPI(cfg.Windows.API)
	if !ok {
		return opts, fmt.Errorf("windows.api %q: %w", cfg.Windows.API, pointer.ErrUnsupported)
	}
	opts.API = api
	opts.LegacyUpAsLeave = cfg.Windows.LegacyUpAsLeave
	opts.DropUnconfigured = cfg.Mapper.DropUnconfigured

	if s := cfg.Screen; s.Configured() {
		opts.ScreenParams = pointer.NewScreenParams(s.Width, s.Height, s.OffsetX, s.OffsetY, s.ScaleX, s.ScaleY)
	}
	return opts, nil
}

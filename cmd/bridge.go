package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bnema/pointerbridge/internal/config"
	"github.com/bnema/pointerbridge/internal/logger"
	"github.com/bnema/pointerbridge/internal/pointer"
	"github.com/bnema/pointerbridge/internal/x11"
)

// x11Options builds system options from the loaded configuration.
func x11Options(cfg *config.Config, onMessage logger.MessageFunc) x11.Options {
	opts := x11.DefaultOptions()
	opts.DisplayName = cfg.X11.Display
	if cfg.X11.DeviceSet == "all" {
		opts.DeviceSet = x11.XIAllDevices
	}
	opts.FrameGuard = cfg.Pump.FrameGuard
	opts.DropUnconfigured = cfg.Mapper.DropUnconfigured
	opts.OnMessage = onMessage
	return opts
}

type screenConfigurable interface {
	SetScreenParams(width, height int, offsetX, offsetY, scaleX, scaleY float32)
}

// applyScreen hands the configured transform to a new handler. Unconfigured
// screens leave the handler on its defaults.
func applyScreen(h screenConfigurable, s config.ScreenConfig) bool {
	if !s.Configured() {
		return false
	}
	h.SetScreenParams(s.Width, s.Height, s.OffsetX, s.OffsetY, s.ScaleX, s.ScaleY)
	return true
}

// parseWindowID accepts decimal or 0x-prefixed hex ids, as printed by
// xwininfo and xdotool.
func parseWindowID(s string) (x11.Window, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(s), 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid window id %q: %w", s, err)
	}
	if id == 0 {
		return 0, fmt.Errorf("invalid window id %q: %w", s, pointer.ErrNullArgument)
	}
	return x11.Window(id), nil
}

func parseWindowIDs(values []string) ([]x11.Window, error) {
	windows := make([]x11.Window, 0, len(values))
	seen := make(map[x11.Window]bool, len(values))
	for _, v := range values {
		w, err := parseWindowID(v)
		if err != nil {
			return nil, err
		}
		if seen[w] {
			continue
		}
		seen[w] = true
		windows = append(windows, w)
	}
	return windows, nil
}

// framePump is what runPump drives; *x11.System implements it.
type framePump interface {
	ProcessFrame(frame int64) error
}

// runPump calls ProcessFrame with increasing frame numbers every interval
// until ctx is done. It must run on the goroutine that owns the system.
func runPump(ctx context.Context, p framePump, interval time.Duration) error {
	if interval <= 0 {
		interval = 16 * time.Millisecond
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var frame int64
	for {
		if err := p.ProcessFrame(frame); err != nil {
			return fmt.Errorf("frame %d: %w", frame, err)
		}
		frame++

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

package cmd

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bnema/pointerbridge/internal/config"
	"github.com/bnema/pointerbridge/internal/x11"
)

type countingPump struct {
	frames []int64
	stopAt int
	cancel context.CancelFunc
	err    error
}

func (p *countingPump) ProcessFrame(frame int64) error {
	p.frames = append(p.frames, frame)
	if len(p.frames) == p.stopAt {
		if p.err != nil {
			return p.err
		}
		p.cancel()
	}
	return nil
}

func TestRunPump(t *testing.T) {
	t.Run("frames increase until cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		p := &countingPump{stopAt: 3, cancel: cancel}

		if err := runPump(ctx, p, time.Millisecond); err != nil {
			t.Fatalf("runPump failed: %v", err)
		}
		want := []int64{0, 1, 2}
		if len(p.frames) != len(want) {
			t.Fatalf("got frames %v, want %v", p.frames, want)
		}
		for i := range want {
			if p.frames[i] != want[i] {
				t.Errorf("frame %d = %d, want %d", i, p.frames[i], want[i])
			}
		}
	})

	t.Run("stops on error", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		boom := errors.New("boom")
		p := &countingPump{stopAt: 2, cancel: cancel, err: boom}

		err := runPump(ctx, p, time.Millisecond)
		if !errors.Is(err, boom) {
			t.Fatalf("expected boom, got %v", err)
		}
		if len(p.frames) != 2 {
			t.Errorf("got %d frames, want 2", len(p.frames))
		}
	})

	t.Run("cancelled context still pumps once", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		p := &countingPump{}

		if err := runPump(ctx, p, 0); err != nil {
			t.Fatalf("runPump failed: %v", err)
		}
		if len(p.frames) != 1 {
			t.Errorf("got %d frames, want 1", len(p.frames))
		}
	})
}

func TestParseWindowID(t *testing.T) {
	tests := []struct {
		in      string
		want    x11.Window
		wantErr bool
	}{
		{"4194311", 4194311, false},
		{"0x400007", 0x400007, false},
		{" 0x10 ", 0x10, false},
		{"0", 0, true},
		{"window", 0, true},
		{"-5", 0, true},
	}

	for _, tt := range tests {
		got, err := parseWindowID(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseWindowID(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseWindowID(%q) failed: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseWindowID(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseWindowIDsDeduplicates(t *testing.T) {
	got, err := parseWindowIDs([]string{"0x10", "16", "0x20"})
	if err != nil {
		t.Fatalf("parseWindowIDs failed: %v", err)
	}
	if len(got) != 2 || got[0] != 0x10 || got[1] != 0x20 {
		t.Errorf("got %v, want [16 32]", got)
	}

	if _, err := parseWindowIDs([]string{"0x10", "nope"}); err == nil {
		t.Error("expected error for an invalid id")
	}
}

func TestMergeWindows(t *testing.T) {
	got := mergeWindows([]x11.Window{3, 1}, []x11.Window{1, 2, 3})
	want := []x11.Window{3, 1, 2}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got %v, want %v", got, want)
			break
		}
	}
}

func TestX11Options(t *testing.T) {
	cfg := config.DefaultConfig
	opts := x11Options(&cfg, nil)
	if opts.DeviceSet != x11.XIAllMasterDevices {
		t.Errorf("default device set = %d, want XIAllMasterDevices", opts.DeviceSet)
	}
	if !opts.FrameGuard {
		t.Error("frame guard should default to on")
	}

	cfg.X11.DeviceSet = "all"
	cfg.X11.Display = ":1"
	cfg.Pump.FrameGuard = false
	cfg.Mapper.DropUnconfigured = true
	opts = x11Options(&cfg, nil)
	if opts.DeviceSet != x11.XIAllDevices {
		t.Errorf("device set = %d, want XIAllDevices", opts.DeviceSet)
	}
	if opts.DisplayName != ":1" || opts.FrameGuard || !opts.DropUnconfigured {
		t.Errorf("options not taken from config: %+v", opts)
	}
}

type paramsRecorder struct {
	calls  int
	width  int
	height int
	scaleX float32
}

func (r *paramsRecorder) SetScreenParams(width, height int, offsetX, offsetY, scaleX, scaleY float32) {
	r.calls++
	r.width, r.height, r.scaleX = width, height, scaleX
}

func TestApplyScreen(t *testing.T) {
	var r paramsRecorder
	if applyScreen(&r, config.DefaultConfig.Screen) {
		t.Error("unconfigured screen should not be applied")
	}
	if r.calls != 0 {
		t.Errorf("SetScreenParams called %d times", r.calls)
	}

	screen := config.ScreenConfig{Width: 1920, Height: 1080, ScaleX: 2, ScaleY: 2}
	if !applyScreen(&r, screen) {
		t.Error("configured screen should be applied")
	}
	if r.calls != 1 || r.width != 1920 || r.height != 1080 || r.scaleX != 2 {
		t.Errorf("unexpected params: %+v", r)
	}
}

type squareRecorder struct {
	moves  [][2]int32
	clicks int
}

func (s *squareRecorder) Move(dx, dy int32) error {
	s.moves = append(s.moves, [2]int32{dx, dy})
	return nil
}

func (s *squareRecorder) Click() error {
	s.clicks++
	return nil
}

func TestDriveSquare(t *testing.T) {
	var s squareRecorder
	if err := driveSquare(&s, 10, 2); err != nil {
		t.Fatalf("driveSquare failed: %v", err)
	}
	if len(s.moves) != 4 {
		t.Fatalf("got %d moves, want 4", len(s.moves))
	}
	var sumX, sumY int32
	for _, m := range s.moves {
		sumX += m[0]
		sumY += m[1]
	}
	if sumX != 0 || sumY != 0 {
		t.Errorf("square does not close: (%d, %d)", sumX, sumY)
	}
	if s.clicks != 2 {
		t.Errorf("got %d clicks, want 2", s.clicks)
	}
}

func TestWindowsRequiresPID(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	_, err := executeCommand(rootCmd, "windows")
	if err == nil {
		t.Fatal("expected an error without --pid")
	}
}

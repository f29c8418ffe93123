package config

import (
	"errors"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/ggview/device"
	"github.com/gogpu/ggview/present"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v, want nil", err)
	}
	if cfg.ZoomStep != 1.1 {
		t.Errorf("ZoomStep = %v, want 1.1", cfg.ZoomStep)
	}
	if got := cfg.StrategyValue(); got != device.StrategyLayout {
		t.Errorf("StrategyValue() = %v, want %v", got, device.StrategyLayout)
	}
	if got := cfg.BackgroundValue(); got != (color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}) {
		t.Errorf("BackgroundValue() = %v, want white", got)
	}
}

func TestDecodeOverridesDefaults(t *testing.T) {
	src := `
backend = "software"
strategy = "manual"
target = "onscreen"
snapshot = "property"
zoom_step = 1.25
double_buffer = true
background = "#102030"
log_level = "debug"

[viewport]
width = 320
height = 200
`
	cfg, err := Decode(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got := cfg.StrategyValue(); got != device.StrategyManual {
		t.Errorf("StrategyValue() = %v, want %v", got, device.StrategyManual)
	}
	if got := cfg.TargetValue(); got != device.TargetOnScreen {
		t.Errorf("TargetValue() = %v, want %v", got, device.TargetOnScreen)
	}
	if got := cfg.SnapshotValue(); got != present.SnapshotProperty {
		t.Errorf("SnapshotValue() = %v, want %v", got, present.SnapshotProperty)
	}
	if cfg.ZoomStep != 1.25 || !cfg.DoubleBuffer {
		t.Errorf("ZoomStep, DoubleBuffer = %v, %v; want 1.25, true", cfg.ZoomStep, cfg.DoubleBuffer)
	}
	if got := cfg.BackgroundValue(); got != (color.RGBA{0x10, 0x20, 0x30, 0xFF}) {
		t.Errorf("BackgroundValue() = %v, want #102030", got)
	}
	if got := cfg.Level(); got != slog.LevelDebug {
		t.Errorf("Level() = %v, want %v", got, slog.LevelDebug)
	}
	if cfg.Viewport != (Viewport{Width: 320, Height: 200}) {
		t.Errorf("Viewport = %+v, want 320x200", cfg.Viewport)
	}
}

func TestDecodePartialKeepsDefaults(t *testing.T) {
	cfg, err := Decode(strings.NewReader(`zoom_step = 2.0`))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	want := Default()
	want.ZoomStep = 2
	if cfg != want {
		t.Errorf("Decode() = %+v, want %+v", cfg, want)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		invalid bool
	}{
		{"unknown key", `colour = "red"`, false},
		{"syntax", `backend = `, false},
		{"empty backend", `backend = ""`, true},
		{"bad strategy", `strategy = "auto"`, true},
		{"bad target", `target = "printer"`, true},
		{"bad snapshot", `snapshot = "clipboard"`, true},
		{"step one", `zoom_step = 1.0`, true},
		{"step negative", `zoom_step = -2.0`, true},
		{"step inf", `zoom_step = inf`, true},
		{"bad background", `background = "white"`, true},
		{"bad level", `log_level = "trace"`, true},
		{"tiny viewport", "[viewport]\nwidth = 1\nheight = 100", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.src))
			if err == nil {
				t.Fatal("Decode() error = nil, want error")
			}
			if got := errors.Is(err, ErrInvalid); got != tt.invalid {
				t.Errorf("errors.Is(%v, ErrInvalid) = %v, want %v", err, got, tt.invalid)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ggview.toml")
	if err := os.WriteFile(path, []byte("backend = \"custom\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Backend != "custom" {
		t.Errorf("Backend = %q, want %q", cfg.Backend, "custom")
	}

	if _, err := Load(filepath.Join(dir, "missing.toml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) error = %v, want os.ErrNotExist", err)
	}
}

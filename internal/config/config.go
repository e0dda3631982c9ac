// Package config handles configuration management using Viper
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	// X11 connection settings
	X11 X11Config `mapstructure:"x11"`

	// Event pump settings
	Pump PumpConfig `mapstructure:"pump"`

	// Default screen params applied to new handlers
	Screen ScreenConfig `mapstructure:"screen"`

	// Windows bridge settings
	Windows WindowsConfig `mapstructure:"windows"`

	// Coordinate mapper behaviour
	Mapper MapperConfig `mapstructure:"mapper"`

	// Event recording
	Record RecordConfig `mapstructure:"record"`

	// Logging configuration
	Logging LoggingConfig `mapstructure:"logging"`
}

// X11Config contains X server settings
type X11Config struct {
	Display   string `mapstructure:"display"`    // Empty means $DISPLAY
	DeviceSet string `mapstructure:"device_set"` // "master" or "all"
}

// PumpConfig contains event pump settings
type PumpConfig struct {
	FrameGuard bool `mapstructure:"frame_guard"`
	IntervalMS int  `mapstructure:"interval_ms"`
}

// ScreenConfig is the transform handed to SetScreenParams. A zero width and
// height means the CLI leaves handlers unconfigured.
type ScreenConfig struct {
	Width   int     `mapstructure:"width"`
	Height  int     `mapstructure:"height"`
	OffsetX float32 `mapstructure:"offset_x"`
	OffsetY float32 `mapstructure:"offset_y"`
	ScaleX  float32 `mapstructure:"scale_x"`
	ScaleY  float32 `mapstructure:"scale_y"`
}

// Configured reports whether a screen size has been set
func (s ScreenConfig) Configured() bool {
	return s.Width > 0 || s.Height > 0
}

// WindowsConfig contains Windows bridge settings
type WindowsConfig struct {
	API             string `mapstructure:"api"`                // "win8" or "win7"
	LegacyUpAsLeave bool   `mapstructure:"legacy_up_as_leave"` // Report WIN7 touch-up as leave
}

// MapperConfig contains coordinate mapper settings
type MapperConfig struct {
	DropUnconfigured bool `mapstructure:"drop_unconfigured"` // Drop events until screen params are set
}

// RecordConfig contains event recording settings
type RecordConfig struct {
	Path string `mapstructure:"path"` // Empty disables recording
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	LogLevel string `mapstructure:"log_level"` // Override LOG_LEVEL env var
}

var (
	// DefaultConfig provides sensible defaults
	DefaultConfig = Config{
		X11: X11Config{
			Display:   "",
			DeviceSet: "master",
		},
		Pump: PumpConfig{
			FrameGuard: true,
			IntervalMS: 16,
		},
		Screen: ScreenConfig{
			ScaleX: 1,
			ScaleY: 1,
		},
		Windows: WindowsConfig{
			API:             "win8",
			LegacyUpAsLeave: true,
		},
		Mapper: MapperConfig{
			DropUnconfigured: false,
		},
		Record: RecordConfig{
			Path: "",
		},
		Logging: LoggingConfig{
			LogLevel: "", // Empty means use LOG_LEVEL env var
		},
	}

	// Global config instance
	cfg *Config

	// Override config path if set
	configPathOverride string
)

// SetConfigPath allows overriding the config path
func SetConfigPath(path string) {
	configPathOverride = path
}

// Init initializes the configuration system
func Init() error {
	viper.SetConfigName("pointerbridge")
	viper.SetConfigType("toml")

	if configPathOverride != "" {
		viper.SetConfigFile(configPathOverride)
	} else {
		// Add config paths in order of precedence
		if home := os.Getenv("HOME"); home != "" {
			viper.AddConfigPath(filepath.Join(home, ".config", "pointerbridge"))
		}
		viper.AddConfigPath("/etc/pointerbridge")
		viper.AddConfigPath(".")
	}

	viper.SetEnvPrefix("POINTERBRIDGE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, use defaults
	}

	c := &Config{}
	if err := viper.Unmarshal(c); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return err
	}
	cfg = c

	return nil
}

func setDefaults() {
	viper.SetDefault("x11.display", DefaultConfig.X11.Display)
	viper.SetDefault("x11.device_set", DefaultConfig.X11.DeviceSet)

	viper.SetDefault("pump.frame_guard", DefaultConfig.Pump.FrameGuard)
	viper.SetDefault("pump.interval_ms", DefaultConfig.Pump.IntervalMS)

	viper.SetDefault("screen.width", DefaultConfig.Screen.Width)
	viper.SetDefault("screen.height", DefaultConfig.Screen.Height)
	viper.SetDefault("screen.offset_x", DefaultConfig.Screen.OffsetX)
	viper.SetDefault("screen.offset_y", DefaultConfig.Screen.OffsetY)
	viper.SetDefault("screen.scale_x", DefaultConfig.Screen.ScaleX)
	viper.SetDefault("screen.scale_y", DefaultConfig.Screen.ScaleY)

	viper.SetDefault("windows.api", DefaultConfig.Windows.API)
	viper.SetDefault("windows.legacy_up_as_leave", DefaultConfig.Windows.LegacyUpAsLeave)

	viper.SetDefault("mapper.drop_unconfigured", DefaultConfig.Mapper.DropUnconfigured)

	viper.SetDefault("record.path", DefaultConfig.Record.Path)

	viper.SetDefault("logging.log_level", DefaultConfig.Logging.LogLevel)
}

// Validate rejects values the bridges cannot act on
func (c *Config) Validate() error {
	switch c.X11.DeviceSet {
	case "master", "all":
	default:
		return fmt.Errorf("x11.device_set must be \"master\" or \"all\", got %q", c.X11.DeviceSet)
	}

	switch strings.ToLower(strings.TrimSpace(c.Windows.API)) {
	case "win8", "win7":
	default:
		return fmt.Errorf("windows.api must be \"win8\" or \"win7\", got %q", c.Windows.API)
	}

	if c.Pump.IntervalMS <= 0 {
		return fmt.Errorf("pump.interval_ms must be positive, got %d", c.Pump.IntervalMS)
	}

	if c.Screen.Width < 0 || c.Screen.Height < 0 {
		return fmt.Errorf("screen size must not be negative, got %dx%d", c.Screen.Width, c.Screen.Height)
	}

	return nil
}

// Get returns the current configuration
func Get() *Config {
	if cfg == nil {
		// Return defaults if not initialized
		d := DefaultConfig
		return &d
	}
	return cfg
}

// Set sets the current configuration (for testing)
func Set(c *Config) {
	cfg = c
}

// Save saves the current configuration to file
func Save() error {
	configPath := GetConfigPath()

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		if os.IsPermission(err) && strings.Contains(configPath, "/etc/") {
			return fmt.Errorf("failed to create config directory %s: permission denied. Try running with sudo", dir)
		}
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := viper.WriteConfigAs(configPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() string {
	if configPathOverride != "" {
		return configPathOverride
	}

	if viper.ConfigFileUsed() != "" {
		return viper.ConfigFileUsed()
	}

	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "/etc/pointerbridge/pointerbridge.toml"
	}

	return filepath.Join(home, ".config", "pointerbridge", "pointerbridge.toml")
}

package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DeviceConfig selects the controller and its channels. Channels are 1-based
// as shown by the Korg Kontrol Editor.
type DeviceConfig struct {
	PortPattern      string `yaml:"portPattern"`
	TrackChannel     int    `yaml:"trackChannel"`
	TransportChannel int    `yaml:"transportChannel"`
}

// TimingConfig holds the delays used by the script
type TimingConfig struct {
	RefreshRate int           `yaml:"refreshRate"` // LED refresh ticks per second
	FlashDelay  time.Duration `yaml:"flashDelay"`  // scan flash on/off time
	SettleDelay time.Duration `yaml:"settleDelay"` // wait for the host after a solo
}

// UIConfig stores UI preferences
type UIConfig struct {
	Palette string `yaml:"palette,omitempty"` // path to a GPL palette
	LEDOn   string `yaml:"ledOn,omitempty"`
	LEDOff  string `yaml:"ledOff,omitempty"`
}

// Config is the main configuration structure
type Config struct {
	Device  DeviceConfig `yaml:"device"`
	Timing  TimingConfig `yaml:"timing"`
	UI      UIConfig     `yaml:"ui,omitempty"`
	Debug   bool         `yaml:"debug,omitempty"`
	LogPath string       `yaml:"logPath,omitempty"`

	// Project is the track list loaded into the simulated DAW
	Project []string `yaml:"project,omitempty"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Device: DeviceConfig{
			PortPattern:      "nanoKONTROL2",
			TrackChannel:     1,
			TransportChannel: 14,
		},
		Timing: TimingConfig{
			RefreshRate: 30,
			FlashDelay:  100 * time.Millisecond,
			SettleDelay: 50 * time.Millisecond,
		},
		UI: UIConfig{
			LEDOn:  "#ff3b30",
			LEDOff: "#3a3a3a",
		},
		Project: DemoProject(),
	}
}

// DemoProject is a small tagged project for the simulator
func DemoProject() []string {
	return []string{
		"Master",
		"Drums [1]", "Kick (1)", "Snare (1)", "Hats (1)",
		"Bass [2]", "Bass DI (2)",
		"Keys [3]", "Rhodes (3)",
		"Guitars [4]", "Gtr L (4)", "Gtr R (4)",
		"Vox [5]", "Lead (5)", "Double (5)",
		"Synth [6]",
		"FX [7]", "Riser (7)",
		"Reverb",
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "home directory")
	}
	return filepath.Join(home, ".config", "nano-kontrol"), nil
}

// ConfigPath returns the full path to config.yaml
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the config from the default path, or returns defaults if not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFile(path)
}

// LoadFile reads a config file. Missing fields keep their defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, errors.Wrapf(err, "read %s", path)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid %s", path)
	}
	return cfg, nil
}

// Validate checks channel ranges and timings
func (c *Config) Validate() error {
	for name, ch := range map[string]int{
		"trackChannel":     c.Device.TrackChannel,
		"transportChannel": c.Device.TransportChannel,
	} {
		if ch < 1 || ch > 16 {
			return errors.Errorf("device.%s must be 1-16, got %d", name, ch)
		}
	}
	if c.Timing.RefreshRate <= 0 {
		return errors.Errorf("timing.refreshRate must be positive, got %d", c.Timing.RefreshRate)
	}
	if c.Timing.FlashDelay < 0 || c.Timing.SettleDelay < 0 {
		return errors.New("timing delays must not be negative")
	}
	return nil
}

// Save writes the config to the default path
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveFile(path)
}

// SaveFile writes the config to path, creating its directory
func (c *Config) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "create config dir")
	}

	data, err := c.Marshal()
	if err != nil {
		return err
	}
	return errors.Wrapf(os.WriteFile(path, data, 0644), "write %s", path)
}

// Marshal renders the config as YAML
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	return data, errors.Wrap(err, "encode config")
}

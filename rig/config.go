package rig

import (
	"os"

	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"

	"servorig/motion"
	"servorig/servo"
)

// Config is the YAML rig configuration. Zero values are filled by
// applyDefaults; Validate rejects what the defaults cannot fix.
type Config struct {
	ActuatorCount int `yaml:"actuator_count" env:"RIG_ACTUATORS"`

	ConsolePort string `yaml:"console_port" env:"RIG_CONSOLE_PORT"`
	ConsoleBaud int    `yaml:"console_baud" env:"RIG_CONSOLE_BAUD"`
	BusPort     string `yaml:"bus_port" env:"RIG_BUS_PORT"`
	BusBaud     int    `yaml:"bus_baud" env:"RIG_BUS_BAUD"`

	SpeedDegPerSec float64 `yaml:"speed_deg_per_sec" env:"RIG_SPEED"`
	DurationMS     uint32  `yaml:"duration_ms" env:"RIG_DURATION_MS"`
	CPGEnabled     bool    `yaml:"cpg_enabled" env:"RIG_CPG"`
	CPGAlpha       float64 `yaml:"cpg_alpha" env:"RIG_CPG_ALPHA"`

	FeedbackIntervalMS uint32 `yaml:"feedback_interval_ms" env:"RIG_FEEDBACK_MS"`

	PulseMinUS int    `yaml:"pulse_min_us"`
	PulseMaxUS int    `yaml:"pulse_max_us"`
	BusSpeed   uint16 `yaml:"bus_speed"`

	CenterOnStart bool `yaml:"center_on_start" env:"RIG_CENTER_ON_START"`
}

// LoadConfig parses YAML configuration data.
func LoadConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "rig: parse config")
	}
	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadConfigFile reads and parses a YAML configuration file.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "rig: read config")
	}
	return LoadConfig(data)
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.ActuatorCount == 0 {
		cfg.ActuatorCount = servo.MaxActuators
	}
	if cfg.ConsoleBaud == 0 {
		cfg.ConsoleBaud = 115200
	}
	if cfg.BusBaud == 0 {
		cfg.BusBaud = 1000000
	}
	if cfg.SpeedDegPerSec == 0 {
		cfg.SpeedDegPerSec = motion.DefaultParams().SpeedDegPerSec
	}
	if cfg.DurationMS == 0 {
		cfg.DurationMS = motion.DefaultParams().DurationMS
	}
	if cfg.CPGAlpha == 0 {
		cfg.CPGAlpha = motion.DefaultParams().CPGAlpha
	}
	if cfg.FeedbackIntervalMS == 0 {
		cfg.FeedbackIntervalMS = DefaultFeedbackIntervalMS
	}
	if cfg.PulseMinUS == 0 {
		cfg.PulseMinUS = servo.DefaultPulseMinUS
	}
	if cfg.PulseMaxUS == 0 {
		cfg.PulseMaxUS = servo.DefaultPulseMaxUS
	}
	if cfg.BusSpeed == 0 {
		cfg.BusSpeed = servo.DefaultBusSpeed
	}
}

func (cfg *Config) Validate() error {
	if cfg.ActuatorCount < 1 || cfg.ActuatorCount > servo.MaxActuators {
		return errors.Errorf("rig: actuator_count %d out of range 1..%d", cfg.ActuatorCount, servo.MaxActuators)
	}
	if cfg.SpeedDegPerSec < motion.MinSpeedDegPerSec || cfg.SpeedDegPerSec > motion.MaxSpeedDegPerSec {
		return errors.Errorf("rig: speed_deg_per_sec %.1f out of range", cfg.SpeedDegPerSec)
	}
	if cfg.DurationMS < motion.MinDurationMS || cfg.DurationMS > motion.MaxDurationMS {
		return errors.Errorf("rig: duration_ms %d out of range", cfg.DurationMS)
	}
	if cfg.CPGAlpha < 0 || cfg.CPGAlpha > 1 {
		return errors.Errorf("rig: cpg_alpha %.2f out of range", cfg.CPGAlpha)
	}
	if cfg.PulseMinUS >= cfg.PulseMaxUS {
		return errors.Errorf("rig: pulse range %d..%d invalid", cfg.PulseMinUS, cfg.PulseMaxUS)
	}
	return nil
}

// MotionParams builds the shared motion parameters from the config.
func (cfg *Config) MotionParams() motion.Params {
	return motion.Params{
		SpeedDegPerSec: cfg.SpeedDegPerSec,
		DurationMS:     cfg.DurationMS,
		CPGEnabled:     cfg.CPGEnabled,
		CPGAlpha:       cfg.CPGAlpha,
	}
}

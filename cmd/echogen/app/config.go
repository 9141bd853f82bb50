package app

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the main application configuration.
type Config struct {
	Settings Settings        `yaml:"settings"`
	Survey   SurveyConfig    `yaml:"survey"`
	Storage  StorageConfig   `yaml:"storage"`
	Channels []ChannelConfig `yaml:"channels"`
}

// Settings represents global application settings.
type Settings struct {
	LogLevel string `yaml:"logLevel"`
}

// SurveyConfig identifies the synthetic survey session.
type SurveyConfig struct {
	Name       string `yaml:"name"`
	Instrument string `yaml:"instrument"`
}

// StorageConfig represents storage settings.
type StorageConfig struct {
	DatabaseFile string `yaml:"databaseFile"`
}

// ChannelConfig describes one synthetic channel to generate.
type ChannelConfig struct {
	ChannelID       string  `yaml:"channelID"`
	Frequency       float64 `yaml:"frequency"`       // Hz
	Pings           int     `yaml:"pings"`           // number of pings to generate
	Samples         int     `yaml:"samples"`         // samples per ping
	SampleThickness float64 `yaml:"sampleThickness"` // meters per sample
	PingInterval    float64 `yaml:"pingInterval"`    // seconds between pings
	SeafloorDepth   float64 `yaml:"seafloorDepth"`   // meters; 0 disables the seafloor echo
	LayerDepth      float64 `yaml:"layerDepth"`      // scattering layer center in meters
	LayerThickness  float64 `yaml:"layerThickness"`  // scattering layer extent in meters
	NoiseFloor      float64 `yaml:"noiseFloorDb"`    // background Sv in dB
	HeaveAmplitude  float64 `yaml:"heaveAmplitude"`  // vertical vessel motion in meters
	HeavePeriod     float64 `yaml:"heavePeriod"`     // seconds per heave cycle
	Seed            int64   `yaml:"seed"`
}

// LoadConfig reads and validates a yaml configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading configuration: %w", err)
	}

	var config Config
	if err = yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}

	if config.Storage.DatabaseFile == "" {
		return nil, fmt.Errorf("storage.databaseFile is required")
	}
	if len(config.Channels) == 0 {
		return nil, fmt.Errorf("at least one channel is required")
	}
	for i := range config.Channels {
		ch := &config.Channels[i]
		if ch.ChannelID == "" {
			return nil, fmt.Errorf("channel %d: channelID is required", i)
		}
		if ch.Pings <= 0 || ch.Samples <= 0 {
			return nil, fmt.Errorf("channel %q: pings and samples must be positive", ch.ChannelID)
		}
		if ch.SampleThickness <= 0 {
			ch.SampleThickness = 0.5
		}
		if ch.PingInterval <= 0 {
			ch.PingInterval = 1
		}
		if ch.NoiseFloor == 0 {
			ch.NoiseFloor = -90
		}
		if ch.HeavePeriod <= 0 {
			ch.HeavePeriod = 8
		}
	}
	return &config, nil
}

// Level maps the configured level name onto a slog level, defaulting to
// info.
func (s Settings) Level() slog.Level {
	switch strings.ToLower(s.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

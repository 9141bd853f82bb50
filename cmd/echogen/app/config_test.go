package app

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
settings:
  logLevel: debug
survey:
  name: GOA-2025
  instrument: EK60
storage:
  databaseFile: survey.db
channels:
  - channelID: GPT 38 kHz
    frequency: 38000
    pings: 600
    samples: 500
    seafloorDepth: 120
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, slog.LevelDebug, config.Settings.Level())
	assert.Equal(t, "GOA-2025", config.Survey.Name)
	assert.Equal(t, "survey.db", config.Storage.DatabaseFile)

	require.Len(t, config.Channels, 1)
	ch := config.Channels[0]
	assert.Equal(t, "GPT 38 kHz", ch.ChannelID)

	// Unset knobs fall back to their defaults.
	assert.Equal(t, 0.5, ch.SampleThickness)
	assert.Equal(t, 1.0, ch.PingInterval)
	assert.Equal(t, -90.0, ch.NoiseFloor)
	assert.Equal(t, 8.0, ch.HeavePeriod)
}

func TestLoadConfig_Validation(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"missing database", `
channels:
  - channelID: ch
    pings: 10
    samples: 10
`},
		{"no channels", `
storage:
  databaseFile: survey.db
`},
		{"missing channel id", `
storage:
  databaseFile: survey.db
channels:
  - pings: 10
    samples: 10
`},
		{"bad dimensions", `
storage:
  databaseFile: survey.db
channels:
  - channelID: ch
    pings: 0
    samples: 10
`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tc.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestSettings_Level(t *testing.T) {
	assert.Equal(t, slog.LevelInfo, Settings{}.Level())
	assert.Equal(t, slog.LevelWarn, Settings{LogLevel: "WARN"}.Level())
	assert.Equal(t, slog.LevelError, Settings{LogLevel: "error"}.Level())
	assert.Equal(t, slog.LevelInfo, Settings{LogLevel: "bogus"}.Level())
}

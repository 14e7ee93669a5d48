package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(Config{Level: "loud", Format: "json", Output: "stdout"})
	assert.Error(t, err)
}

func TestNewRejectsUnknownOutput(t *testing.T) {
	_, err := New(Config{Level: "info", Format: "json", Output: "/var/log/bot.log"})
	assert.Error(t, err)
}

func TestJSONLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, "json", zerolog.InfoLevel)

	log.Debug().Msg("hidden")
	log.Info().Str("symbol", "ABC").Msg("visible")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "visible", entry["message"])
	assert.Equal(t, "ABC", entry["symbol"])
	assert.Contains(t, entry, "time")
}

package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_LevelAndAppField(t *testing.T) {
	var buf bytes.Buffer
	log := newWithOutput(&buf, "debug", "city-safety-map")

	log.WithField("region", "Colaba").Debug("refreshed")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "city-safety-map", entry["app"])
	assert.Equal(t, "Colaba", entry["region"])
	assert.Equal(t, "refreshed", entry["msg"])
	assert.Equal(t, "debug", entry["level"])
}

func TestNew_InvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := newWithOutput(&buf, "verbose", "")

	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
	log.Debug("hidden")
	assert.Empty(t, buf.String())

	log.Info("shown")
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	_, hasApp := entry["app"]
	assert.False(t, hasApp)
}

package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProdWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "prod", slog.LevelInfo, "station-observations")

	log.Debug("hidden")
	log.Info("fetched observations", "station_id", 94672)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "fetched observations", entry["msg"])
	assert.Equal(t, "station-observations", entry["app"])
	assert.Equal(t, "prod", entry["env"])
	assert.InDelta(t, 94672, entry["station_id"], 0)
}

func TestNewDevWritesText(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "dev", slog.LevelDebug, "station-observations")

	log.Debug("serving observations from store", "station_id", 1)

	assert.Contains(t, buf.String(), "serving observations from store")
	assert.Contains(t, buf.String(), "station_id")
}

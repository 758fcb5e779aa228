package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.Format = "json"
	opts.Timestamps = false

	logger, err := New(&buf, opts)
	require.NoError(t, err)
	logger.Info("list created", "id", 3)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "list created", line["msg"])
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "tada", line["prefix"])
}

func TestNewLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.Level = "warn"

	logger, err := New(&buf, opts)
	require.NoError(t, err)
	logger.Info("hidden")
	assert.Empty(t, buf.String())
	logger.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestNewRejectsUnknownValues(t *testing.T) {
	opts := DefaultOptions()
	opts.Level = "loud"
	_, err := New(&bytes.Buffer{}, opts)
	assert.Error(t, err)

	opts = DefaultOptions()
	opts.Format = "xml"
	_, err = New(&bytes.Buffer{}, opts)
	assert.Error(t, err)
}

package logger

import (
	"bytes"
	"testing"

	"github.com/dukcapil-minsel/suket/config"

	"github.com/op/go-logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel(config.Warn)
	require.NoError(t, err)
	assert.Equal(t, logging.WARNING, lvl)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

func TestInitWriterFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf, logging.WARNING)

	Info("hidden")
	Warningf("fetch failed: %s", "timeout")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "WARNING - fetch failed: timeout")
}

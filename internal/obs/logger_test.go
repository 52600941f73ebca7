package obs

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaskLicense(t *testing.T) {
	assert.Equal(t, "DL*******89", MaskLicense("DL123456789"))
	assert.Equal(t, "AB*DE", MaskLicense("ABCDE"))
	assert.Equal(t, "ABCD", MaskLicense("ABCD"))
	assert.Equal(t, "****", MaskLicense("ABC"))
	assert.Equal(t, "****", MaskLicense(""))
}

func TestNewLogger_JSONOutsideDev(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "prod", "warn")

	logger.Info("dropped")
	logger.Warn("kept", "booking_id", "42")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, "42", entry["booking_id"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warning"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel(""))
}

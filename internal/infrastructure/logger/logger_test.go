package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, parseLevel("debug"))
	assert.Equal(t, logrus.InfoLevel, parseLevel(""))
	assert.Equal(t, logrus.InfoLevel, parseLevel("nope"))
}

func TestLogError(t *testing.T) {
	var buf bytes.Buffer
	Configure(&buf, "info")
	defer Configure(&bytes.Buffer{}, "info")

	LogError("proposal", "UpdateStatus", "cas", map[string]any{"proposal_id": 42}, errors.New("conflict"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "conflict", entry["msg"])
	assert.Equal(t, "proposal", entry["module"])
	assert.Equal(t, "UpdateStatus", entry["funcName"])
	assert.Equal(t, "error", entry["level"])
}

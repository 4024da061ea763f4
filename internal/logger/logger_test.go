package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_Level(t *testing.T) {
	Init("debug", "json")
	assert.Equal(t, logrus.DebugLevel, Log.GetLevel())

	Init("nonsense", "json")
	assert.Equal(t, logrus.InfoLevel, Log.GetLevel())
}

func TestWithFields_JSON(t *testing.T) {
	Init("info", "json")
	var buf bytes.Buffer
	Log.SetOutput(&buf)

	WithFields(logrus.Fields{"patient_id": "BN001"}).Info("record added")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "BN001", entry["patient_id"])
	assert.Equal(t, "record added", entry["msg"])
}

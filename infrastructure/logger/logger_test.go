package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveLevel(t *testing.T) {
	assert.Equal(t, log.DebugLevel, resolveLevel(""))
	assert.Equal(t, log.WarnLevel, resolveLevel("warn"))
	assert.Equal(t, log.DebugLevel, resolveLevel("loud"))
}

func TestResolveOutput(t *testing.T) {
	assert.Equal(t, os.Stdout, resolveOutput("", false))
}

func TestGetLogger(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetLevel(log.InfoLevel)
	t.Cleanup(func() {
		SetOutput(os.Stdout)
		ApplyEnvLevel()
	})

	GetLogger().WithField("user_id", "user-1").Info("calendar projected")
	GetLogger().Debug("dropped")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))[0], &entry))
	assert.Equal(t, "calendar projected", entry["msg"])
	assert.Equal(t, "user-1", entry["user_id"])
	assert.Contains(t, entry["function"], "TestGetLogger")
	assert.Equal(t, 1, bytes.Count(bytes.TrimSpace(buf.Bytes()), []byte("\n"))+1)
}

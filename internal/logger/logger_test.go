package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_LevelAndFormat(t *testing.T) {
	tests := []struct {
		name      string
		config    Config
		wantLevel logrus.Level
		wantJSON  bool
	}{
		{name: "defaults", config: Config{}, wantLevel: logrus.InfoLevel},
		{name: "debug json", config: Config{Level: "debug", Format: "json"}, wantLevel: logrus.DebugLevel, wantJSON: true},
		{name: "bad level", config: Config{Level: "loud"}, wantLevel: logrus.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.config)
			require.NoError(t, err)
			assert.Equal(t, tt.wantLevel, l.GetLevel())

			_, isJSON := l.Formatter.(*logrus.JSONFormatter)
			assert.Equal(t, tt.wantJSON, isJSON)
		})
	}
}

func TestNew_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "service.log")

	l, err := New(Config{Format: "json", Output: path})
	require.NoError(t, err)

	l.WithField("reference", "ref-1").Info("payment dispatched")

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(data, &entry))
	assert.Equal(t, "payment dispatched", entry["msg"])
	assert.Equal(t, "ref-1", entry["reference"])
}

func TestNew_BadOutput(t *testing.T) {
	_, err := New(Config{Output: filepath.Join(t.TempDir(), "missing", "x.log")})
	assert.Error(t, err)
}

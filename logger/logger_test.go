package logger

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetLevel(t *testing.T) {
	defer SetLevel(INFO)

	tests := []struct {
		level LogLevel
		want  logrus.Level
	}{
		{DEBUG, logrus.DebugLevel},
		{INFO, logrus.InfoLevel},
		{WARNING, logrus.WarnLevel},
		{ERROR, logrus.ErrorLevel},
		{FATAL, logrus.FatalLevel},
	}
	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			SetLevel(tt.level)
			assert.Equal(t, tt.want, GetLogger().GetLevel())
		})
	}
}

func TestLogBlockEvent(t *testing.T) {
	var buf bytes.Buffer
	log := GetLogger()
	out := log.Out
	log.SetOutput(&buf)
	defer log.SetOutput(out)
	defer SetLevel(INFO)

	SetLevel(INFO)
	LogBlockEvent(3, "00ab", 17, 17)
	assert.Empty(t, buf.String())

	SetLevel(DEBUG)
	LogBlockEvent(3, "00ab", 17, 17)

	line := buf.String()
	require.NotEmpty(t, line)
	assert.Contains(t, line, "index=3")
	assert.Contains(t, line, "hash=00ab")
	assert.Contains(t, line, "attempts=17")
}

package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	cases := []struct {
		name  string
		value string
		debug bool
		info  bool
	}{
		{
			name:  "defaults to info when unset",
			value: "",
			debug: false,
			info:  true,
		},
		{
			name:  "debug category enables per-file decisions",
			value: "debug",
			debug: true,
			info:  true,
		},
		{
			name:  "error silences info",
			value: "error",
			debug: false,
			info:  false,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Setenv("CHARTS_LOG_TEST", c.value)

			logger, err := New("CHARTS_LOG_TEST")
			require.NoError(t, err)

			assert.Equal(t, c.debug, logger.Core().Enabled(zapcore.DebugLevel))
			assert.Equal(t, c.info, logger.Core().Enabled(zapcore.InfoLevel))
		})
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	t.Setenv("CHARTS_LOG_TEST", "loud")

	_, err := New("CHARTS_LOG_TEST")
	assert.Error(t, err)
}

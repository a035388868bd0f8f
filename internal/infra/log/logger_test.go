package logs

import (
	"testing"

	"agritrace/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	cfg := &config.Config{}
	cfg.Env.ServiceName = "agritrace"
	cfg.Env.Env = "test"
	cfg.Env.Log.Level = "info"

	logger, err := New(Params{Config: cfg})
	require.NoError(t, err)
	require.NotNil(t, logger)
}

func TestNew_UnknownLevel(t *testing.T) {
	cfg := &config.Config{}
	cfg.Env.Log.Level = "verbose"

	_, err := New(Params{Config: cfg})
	assert.Error(t, err)
}

func TestParseLogLevel(t *testing.T) {
	for _, name := range []string{"debug", "INFO", "Warn", "error"} {
		_, err := parseLogLevel(name)
		assert.NoError(t, err)
	}

	_, err := parseLogLevel("trace")
	assert.Error(t, err)
}

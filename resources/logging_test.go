package resources

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/activecm/idsdash/config"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLoggerLevels(t *testing.T) {
	levels := map[int]log.Level{
		3:  log.DebugLevel,
		2:  log.InfoLevel,
		1:  log.WarnLevel,
		0:  log.ErrorLevel,
		-4: log.ErrorLevel,
	}
	for setting, level := range levels {
		logger := initLogger(&config.LogStaticCfg{LogLevel: setting})
		assert.Equal(t, level, logger.Level, "LogLevel %d", setting)
	}
}

func TestAddFileLogger(t *testing.T) {
	dir, err := os.MkdirTemp("", "idsdash-logs")
	require.Nil(t, err)
	defer os.RemoveAll(dir)

	logger := initLogger(&config.LogStaticCfg{LogLevel: 3})
	require.Nil(t, addFileLogger(logger, dir))
	assert.Len(t, logger.Hooks[log.InfoLevel], 1)

	logger.Info("written to the hook")
	matches, err := filepath.Glob(filepath.Join(dir, "*", "info.log"))
	require.Nil(t, err)
	assert.Len(t, matches, 1)
}

func TestInitTestingResources(t *testing.T) {
	res := InitTestingResources(t, "http://127.0.0.1:8000")
	assert.NotEmpty(t, res.SessionID)
	assert.Equal(t, log.DebugLevel, res.Log.Level)
	assert.Equal(t, res.SessionID, res.Logger().Data["session"])
}

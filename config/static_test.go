package config

import (
	"testing"

	"github.com/creasty/defaults"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const staticConfigParserTestConfig = `
Backend:
    URL: https://ids.example.com:8443/api/
    PredictPath: /predict
    BatchPath: /predict/batch
    LivePath: /live
    HealthPath: /health
    ModelInfoPath: /model/info
    Timeout: 30
LogConfig:
    LogLevel: 1
    LogPath: /var/lib/idsdash/logs
    LogToFile: true
Live:
    BufferSize: 100
UserConfig:
    UpdateCheckOwner: someone
    UpdateCheckRepo: fork
`

var testConfigFullExp = StaticCfg{
	Backend: BackendStaticCfg{
		URL:           "https://ids.example.com:8443/api",
		PredictPath:   "/predict",
		BatchPath:     "/predict/batch",
		LivePath:      "/live",
		HealthPath:    "/health",
		ModelInfoPath: "/model/info",
		Timeout:       30,
	},
	Log: LogStaticCfg{
		LogLevel:  1,
		LogPath:   "/var/lib/idsdash/logs",
		LogToFile: true,
	},
	Live: LiveStaticCfg{
		BufferSize: 100,
	},
	UserConfig: UserCfgStaticCfg{
		UpdateCheckOwner: "someone",
		UpdateCheckRepo:  "fork",
	},
}

// TestParseStaticConfig ensures that a yaml config
// string is correctly converted into a StaticCfg struct.
func TestParseStaticConfig(t *testing.T) {
	config := &StaticCfg{}
	err := parseStaticConfig([]byte(staticConfigParserTestConfig), config)
	assert.Nil(t, err)
	assert.Equal(t, testConfigFullExp, *config)
}

func TestParseStaticConfigKeepsDefaults(t *testing.T) {
	config := &StaticCfg{}
	require.Nil(t, defaults.Set(config))

	testConfig := `
Backend:
    URL: http://10.0.0.5:9000
LogConfig:
    LogPath: /var/lib/idsdash/incorrect/./../logs/
`
	err := parseStaticConfig([]byte(testConfig), config)
	assert.Nil(t, err)
	assert.Equal(t, "http://10.0.0.5:9000", config.Backend.URL)
	assert.Equal(t, "/predict/batch", config.Backend.BatchPath)
	assert.Equal(t, 2, config.Log.LogLevel)
	assert.Equal(t, "/var/lib/idsdash/logs", config.Log.LogPath)
	assert.Equal(t, 50, config.Live.BufferSize)
}

func TestParseStaticConfigRejectsGarbage(t *testing.T) {
	config := &StaticCfg{}
	err := parseStaticConfig([]byte("Backend: [unterminated"), config)
	assert.NotNil(t, err)
}

func TestInitRunningConfig(t *testing.T) {
	config := &StaticCfg{}
	require.Nil(t, parseStaticConfig([]byte(staticConfigParserTestConfig), config))
	config.Version = "v1.2.3-4-gabcdef"

	var running RunningCfg
	require.Nil(t, initRunningConfig(config, &running))
	assert.Equal(t, "https://ids.example.com:8443/api/predict", running.Backend.PredictURL.String())
	assert.Equal(t, "https://ids.example.com:8443/api/predict/batch", running.Backend.BatchURL.String())
	assert.Equal(t, "wss://ids.example.com:8443/api/live", running.Backend.LiveURL.String())
	assert.Equal(t, "https://ids.example.com:8443/api/model/info", running.Backend.ModelInfoURL.String())
	assert.Equal(t, "30s", running.Backend.Timeout.String())
	assert.Equal(t, uint64(1), running.Version.Major)
	assert.Equal(t, uint64(3), running.Version.Patch)
}

func TestInitRunningConfigErrors(t *testing.T) {
	testCases := []struct {
		url     string
		timeout int
		msg     string
	}{
		{"ftp://127.0.0.1", 0, "unsupported scheme"},
		{"://nohost", 0, "unparsable url"},
		{"http://127.0.0.1:8000", -1, "negative timeout"},
	}

	for _, test := range testCases {
		config := &StaticCfg{}
		require.Nil(t, defaults.Set(config))
		config.Backend.URL = test.url
		config.Backend.Timeout = test.timeout
		var running RunningCfg
		assert.NotNil(t, initRunningConfig(config, &running), test.msg)
	}
}

func TestLoadTestingConfig(t *testing.T) {
	conf, err := LoadTestingConfig("http://127.0.0.1:1234")
	require.Nil(t, err)
	assert.Equal(t, 3, conf.S.Log.LogLevel)
	assert.Equal(t, "ws://127.0.0.1:1234/live", conf.R.Backend.LiveURL.String())
	assert.Equal(t, "http://127.0.0.1:1234/predict", conf.R.Backend.PredictURL.String())
	assert.Equal(t, 0, int(conf.R.Backend.Timeout))
}

package config

import (
	"github.com/creasty/defaults"
)

const testConfig = `
LogConfig:
    LogLevel: 3
    LogToFile: false
Live:
    BufferSize: 50
UserConfig:
    UpdateCheckOwner: activecm
    UpdateCheckRepo: idsdash
`

// LoadTestingConfig loads the hard coded testing config pointed at the
// given backend
func LoadTestingConfig(backendURL string) (*Config, error) {
	config := &Config{}

	// Initialize static config to the default values
	if err := defaults.Set(&config.S); err != nil {
		return nil, err
	}

	// Deserialize the yaml file contents into the static config
	if err := parseStaticConfig([]byte(testConfig), &config.S); err != nil {
		return nil, err
	}

	config.S.Backend.URL = backendURL

	config.S.Version = "v0.0.0+testing"
	config.S.ExactVersion = "v0.0.0+testing"

	// Use the static config to initialize the running config
	if err := initRunningConfig(&config.S, &config.R); err != nil {
		return nil, err
	}

	return config, nil
}

package config

import (
	"path/filepath"
	"reflect"
	"strings"

	yaml "gopkg.in/yaml.v2"
)

type (
	//StaticCfg is the container for other static config sections
	StaticCfg struct {
		Backend      BackendStaticCfg `yaml:"Backend"`
		Log          LogStaticCfg     `yaml:"LogConfig"`
		Live         LiveStaticCfg    `yaml:"Live"`
		UserConfig   UserCfgStaticCfg `yaml:"UserConfig"`
		Version      string           `yaml:"-"`
		ExactVersion string           `yaml:"-"`
	}

	//BackendStaticCfg contains the means for contacting the classifier backend
	BackendStaticCfg struct {
		URL           string `yaml:"URL" default:"http://127.0.0.1:8000"`
		PredictPath   string `yaml:"PredictPath" default:"/predict"`
		BatchPath     string `yaml:"BatchPath" default:"/predict/batch"`
		LivePath      string `yaml:"LivePath" default:"/live"`
		HealthPath    string `yaml:"HealthPath" default:"/health"`
		ModelInfoPath string `yaml:"ModelInfoPath" default:"/model/info"`
		// Timeout is given in seconds, 0 leaves requests unbounded
		Timeout int `yaml:"Timeout"`
	}

	//LogStaticCfg contains the configuration for logging
	LogStaticCfg struct {
		LogLevel  int    `yaml:"LogLevel" default:"2"`
		LogPath   string `yaml:"LogPath" default:"/var/lib/idsdash/logs"`
		LogToFile bool   `yaml:"LogToFile"`
	}

	//LiveStaticCfg controls the live stream view
	LiveStaticCfg struct {
		BufferSize int `yaml:"BufferSize" default:"50"`
	}

	//UserCfgStaticCfg contains options for the version check
	UserCfgStaticCfg struct {
		UpdateCheckOwner string `yaml:"UpdateCheckOwner" default:"activecm"`
		UpdateCheckRepo  string `yaml:"UpdateCheckRepo" default:"idsdash"`
	}
)

// parseStaticConfig parses the yaml config on top of the values already in
// config, typically the defaults
func parseStaticConfig(cfgFile []byte, config *StaticCfg) error {
	err := yaml.Unmarshal(cfgFile, config)
	if err != nil {
		return err
	}

	// expand env variables, config is a pointer
	// so we have to call elem on the reflect value
	expandConfig(reflect.ValueOf(config).Elem())

	// clean all filepaths
	config.Log.LogPath = filepath.Clean(config.Log.LogPath)

	config.Backend.URL = strings.TrimRight(config.Backend.URL, "/")

	return nil
}

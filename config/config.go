package config

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"reflect"

	"github.com/creasty/defaults"
)

//Version is filled at compile time with the git tag of idsdash
var Version = "undefined"

//ExactVersion is filled at compile time with the git describe of idsdash
var ExactVersion = "undefined"

const (
	userConfigPath   = ".idsdash/config.yaml"
	globalConfigPath = "/etc/idsdash/config.yaml"
)

type (
	//Config holds the configuration for the running system
	Config struct {
		R RunningCfg
		S StaticCfg
	}
)

// LoadConfig loads the configuration in order of precedence: the given
// path, the user's ~/.idsdash/config.yaml, then /etc/idsdash/config.yaml.
// If no file exists the defaults are used.
func LoadConfig(cfgPath string) (*Config, error) {
	config := &Config{}

	if err := defaults.Set(&config.S); err != nil {
		return nil, err
	}

	path, err := findConfig(cfgPath)
	if err != nil {
		return nil, err
	}

	if path != "" {
		cfgFile, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := parseStaticConfig(cfgFile, &config.S); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	config.S.Version = Version
	config.S.ExactVersion = ExactVersion

	if err := initRunningConfig(&config.S, &config.R); err != nil {
		return nil, err
	}
	return config, nil
}

// findConfig returns the first config file that exists. An explicitly
// requested file must exist.
func findConfig(cfgPath string) (string, error) {
	if cfgPath != "" {
		if _, err := os.Stat(cfgPath); err != nil {
			return "", err
		}
		return cfgPath, nil
	}

	candidates := []string{}
	if usr, err := user.Current(); err == nil {
		candidates = append(candidates, filepath.Join(usr.HomeDir, userConfigPath))
	} else {
		fmt.Fprintf(os.Stderr, "Could not get user info: %s\n", err.Error())
	}
	candidates = append(candidates, globalConfigPath)

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", nil
}

// expandConfig expands environment variables in config strings
func expandConfig(reflected reflect.Value) {
	for i := 0; i < reflected.NumField(); i++ {
		f := reflected.Field(i)
		// process sub configs
		if f.Kind() == reflect.Struct {
			expandConfig(f)
		} else if f.Kind() == reflect.String {
			f.SetString(os.ExpandEnv(f.String()))
		} else if f.Kind() == reflect.Slice && f.Type().Elem().Kind() == reflect.String {
			strs := f.Interface().([]string)
			for i, str := range strs {
				strs[i] = os.ExpandEnv(str)
			}
			f.Set(reflect.ValueOf(strs))
		}
	}
}

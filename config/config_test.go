package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type expandStruct struct {
	Inert   string
	Backend string
	Paths   []string
	Inner   expandStructInner
}

type expandStructInner struct {
	LogPath string
}

func TestExpandConfig(t *testing.T) {
	inert := "DO_NOT_CHANGE"
	hostVar := "_IDSDASH_TEST_HOST"
	dirVar := "_IDSDASH_TEST_DIR"

	os.Setenv(hostVar, "ids.local")
	os.Setenv(dirVar, "/tmp/idsdash")
	defer os.Unsetenv(hostVar)
	defer os.Unsetenv(dirVar)

	test := expandStruct{
		Inert:   inert,
		Backend: "http://$" + hostVar + ":8000",
		Paths:   []string{"$" + dirVar, inert},
		Inner:   expandStructInner{LogPath: "${" + dirVar + "}/logs"},
	}
	expandConfig(reflect.ValueOf(&test).Elem())

	assert.Equal(t, inert, test.Inert)
	assert.Equal(t, "http://ids.local:8000", test.Backend)
	assert.Equal(t, []string{"/tmp/idsdash", inert}, test.Paths)
	assert.Equal(t, "/tmp/idsdash/logs", test.Inner.LogPath)
}

func TestLoadConfigFromFile(t *testing.T) {
	dir, err := os.MkdirTemp("", "idsdash-config")
	require.Nil(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "config.yaml")
	require.Nil(t, os.WriteFile(path, []byte("Backend:\n    URL: http://10.1.1.1:8000/\n"), 0644))

	conf, err := LoadConfig(path)
	require.Nil(t, err)
	assert.Equal(t, "http://10.1.1.1:8000", conf.S.Backend.URL)
	assert.Equal(t, "ws://10.1.1.1:8000/live", conf.R.Backend.LiveURL.String())
	assert.Equal(t, 50, conf.S.Live.BufferSize)
	assert.Equal(t, Version, conf.S.Version)
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	_, err := LoadConfig("/nonexistent/idsdash/config.yaml")
	assert.NotNil(t, err)
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	SetDefaults()

	assert.Equal(t, "term", GetOutput())
	assert.Equal(t, 80, GetWidth())
	assert.Equal(t, "dark", GetGlamourStyle())
	assert.True(t, GetJSONIndent())
	assert.False(t, GetPager())
	assert.Equal(t, "36", GetColorHeading())
	for _, k := range Keys {
		assert.NotNil(t, Get(k), "key %s has no default", k)
	}
}

func TestSetters(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	SetDefaults()

	SetOutput("json")
	SetWidth(5)
	SetPager(true)

	assert.Equal(t, "json", GetOutput())
	assert.Equal(t, "json", C.Output)
	assert.Equal(t, 20, GetWidth(), "width is clamped")
	assert.True(t, GetPager())
}

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	assert.Equal(t, filepath.Join(home, "res.yaml"), expandTilde("~/res.yaml"))
	assert.Equal(t, "/abs/res.yaml", expandTilde("/abs/res.yaml"))
	assert.Equal(t, "", expandTilde(""))
}

package config

import (
	"io/ioutil"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

const sample = `
api:
  baseUrl: http://localhost:5000
  timeout: 5s
session:
  tenant: alice
log:
  level: info
`

func write(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, ioutil.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadFile(t *testing.T) {
	v := viper.New()
	require.NoError(t, Load(v, Flags("test"), []string{"--config", write(t, sample)}))

	require.Equal(t, "http://localhost:5000", v.GetString("api.baseUrl"))
	require.Equal(t, 5*time.Second, v.GetDuration("api.timeout"))
	require.Equal(t, "alice", v.GetString("session.tenant"))
}

func TestFlagsOverrideFile(t *testing.T) {
	v := viper.New()
	args := []string{"--config", write(t, sample), "--session.tenant", "bob"}
	require.NoError(t, Load(v, Flags("test"), args))

	require.Equal(t, "bob", v.GetString("session.tenant"))
	require.Equal(t, "http://localhost:5000", v.GetString("api.baseUrl"))
}

func TestLoadErrors(t *testing.T) {
	require.Error(t, Load(viper.New(), Flags("test"), []string{"--config", filepath.Join(t.TempDir(), "missing.yaml")}))
	require.Error(t, Load(viper.New(), Flags("test"), []string{"--no-such-flag"}))
	require.Error(t, Load(viper.New(), Flags("test"), []string{"--config", write(t, "log:\n  level: loud\n")}))
}

func TestDuration(t *testing.T) {
	v := viper.New()
	v.Set("a", "2s")
	require.Equal(t, 2*time.Second, Duration(v, "a", time.Minute))
	require.Equal(t, time.Minute, Duration(v, "b", time.Minute))
}

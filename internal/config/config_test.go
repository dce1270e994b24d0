package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "conf.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
signorloader:
  user: theuser
  password: thep
  server: thes
other:
  user: u2
  password: p2
  server: s2
`)

	p, err := Load(path, DefaultProfile)
	require.NoError(t, err)
	assert.Equal(t, "theuser", p.User)
	assert.Equal(t, "thep", p.Password)
	assert.Equal(t, "thes", p.Server)

	p, err = Load(path, "other")
	require.NoError(t, err)
	assert.Equal(t, "u2", p.User)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	path := writeConfig(t, `
signorloader:
  user: theuser
  password: thep
  server: thes
`)

	t.Setenv("NDEX_USER", "envuser")
	t.Setenv("NDEX_SERVER", "envserver")

	p, err := Load(path, DefaultProfile)
	require.NoError(t, err)
	assert.Equal(t, "envuser", p.User)
	assert.Equal(t, "thep", p.Password)
	assert.Equal(t, "envserver", p.Server)
}

func TestLoad_UnknownProfile(t *testing.T) {
	path := writeConfig(t, `
signorloader:
  user: theuser
  password: thep
  server: thes
`)

	_, err := Load(path, "nosuchprofile")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nosuchprofile")
}

func TestLoad_MissingFields(t *testing.T) {
	path := writeConfig(t, `
signorloader:
  user: theuser
`)

	_, err := Load(path, DefaultProfile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "password is not set")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), DefaultProfile)
	require.Error(t, err)
}

func TestDefaultPath(t *testing.T) {
	path, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, ".signorloader.yaml", filepath.Base(path))
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigHasExpectedEnvironments(t *testing.T) {
	c, err := LoadDefault()
	require.NoError(t, err)

	assert.Equal(t, []string{"prod", "staging", "uat"}, c.EnvironmentNames())

	staging, err := c.Environment("staging")
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:5001", staging.BaseURL)
	assert.NotEmpty(t, staging.Admin.Username)
	assert.NotEmpty(t, staging.NonAdmin.Username)

	// empty name selects the default environment
	def, err := c.Environment("")
	require.NoError(t, err)
	assert.Equal(t, staging, def)
}

func TestEnvironmentLookupFailsForUnknownName(t *testing.T) {
	c, err := LoadDefault()
	require.NoError(t, err)

	_, err = c.Environment("nosuch")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "nosuch")
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "envs.yaml")
	content := `
environments:
  local:
    baseUrl: http://localhost:9999
    admin:
      username: root
      password: hunter2
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	c, err := LoadFile(path)
	require.NoError(t, err)
	env, err := c.Environment("local")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9999", env.BaseURL)
	assert.Equal(t, "root", env.Admin.Username)
}

func TestParseRejectsInvalidConfigs(t *testing.T) {
	for name, content := range map[string]string{
		"not yaml":        "{{{{",
		"no environments": "environments: {}",
		"missing baseUrl": "environments: {a: {admin: {username: u, password: p}}}",
		"missing admin":   "environments: {a: {baseUrl: http://x}}",
		"bad default":     "defaultEnvironment: b\nenvironments: {a: {baseUrl: http://x, admin: {username: u, password: p}}}",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := parse([]byte(content))
			assert.Error(t, err)
		})
	}
}

func TestInvalidCredentialsDifferFromAllConfiguredOnes(t *testing.T) {
	c, err := LoadDefault()
	require.NoError(t, err)
	bad := InvalidCredentials()
	for _, name := range c.EnvironmentNames() {
		env, _ := c.Environment(name)
		assert.NotEqual(t, env.Admin, bad)
		assert.NotEqual(t, env.NonAdmin, bad)
	}
}

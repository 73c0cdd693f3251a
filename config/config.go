// Package config defines which Cars API deployments the harness can target and the
// credentials used against each one. A default set of environments is embedded in
// the binary; a YAML file with the same structure can be substituted on the command
// line.
package config

import (
	_ "embed" // required for go:embed
	"fmt"
	"os"

	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"
)

//go:embed environments.yaml
var defaultConfigData []byte

// Credentials is one username/password pair for HTTP basic auth.
type Credentials struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// Environment describes one deployment of the Cars API.
type Environment struct {
	// BaseURL is the root URL of the deployment, without a trailing slash.
	BaseURL string `yaml:"baseUrl"`

	// Admin is an account that can use every endpoint, including /users.
	Admin Credentials `yaml:"admin"`

	// NonAdmin is an account used for the permission-denial tests.
	NonAdmin Credentials `yaml:"nonAdmin"`
}

// Config is the full set of known environments.
type Config struct {
	DefaultEnvironment string                 `yaml:"defaultEnvironment"`
	Environments       map[string]Environment `yaml:"environments"`
}

// LoadDefault returns the environments embedded in the binary.
func LoadDefault() (Config, error) {
	return parse(defaultConfigData)
}

// LoadFile reads environments from a YAML file.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("cannot read config file: %w", err)
	}
	c, err := parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("in config file %q: %w", path, err)
	}
	return c, nil
}

func parse(data []byte) (Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("malformed config: %w", err)
	}
	if len(c.Environments) == 0 {
		return Config{}, fmt.Errorf("config defines no environments")
	}
	for name, env := range c.Environments {
		if env.BaseURL == "" {
			return Config{}, fmt.Errorf("environment %q has no baseUrl", name)
		}
		if env.Admin.Username == "" {
			return Config{}, fmt.Errorf("environment %q has no admin credentials", name)
		}
	}
	if c.DefaultEnvironment != "" {
		if _, ok := c.Environments[c.DefaultEnvironment]; !ok {
			return Config{}, fmt.Errorf("default environment %q is not defined", c.DefaultEnvironment)
		}
	}
	return c, nil
}

// Environment looks up a deployment by name. An empty name selects the default.
func (c Config) Environment(name string) (Environment, error) {
	if name == "" {
		name = c.DefaultEnvironment
	}
	env, ok := c.Environments[name]
	if !ok {
		return Environment{}, fmt.Errorf("unknown environment %q (known: %v)", name, c.EnvironmentNames())
	}
	return env, nil
}

// EnvironmentNames returns the defined environment names in sorted order.
func (c Config) EnvironmentNames() []string {
	names := make([]string, 0, len(c.Environments))
	for name := range c.Environments {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// InvalidCredentials returns a username/password pair that no environment accepts,
// for the negative authentication tests.
func InvalidCredentials() Credentials {
	return Credentials{Username: "unknown", Password: "unknown"}
}

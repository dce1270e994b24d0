// Package config loads the profile-keyed NDEx credentials file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultProfile is the profile used when none is given on the command line.
const DefaultProfile = "signorloader"

// configFile is the default file name looked up in the home directory.
const configFile = ".signorloader.yaml"

// Profile holds the NDEx credentials of one configuration profile.
type Profile struct {
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Server   string `yaml:"server"`
}

// DefaultPath returns ~/.signorloader.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate home directory: %w", err)
	}
	return filepath.Join(home, configFile), nil
}

// Load reads one profile from a YAML configuration file shaped as a
// top-level map of profile name to credentials:
//
//	signorloader:
//	  user: bob
//	  password: secret
//	  server: public.ndexbio.org
//
// NDEX_USER, NDEX_PASSWORD and NDEX_SERVER environment variables override
// the file values. A .env file in the working directory is honored.
func Load(path, profile string) (Profile, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	// 2. Load YAML config
	file, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("failed to read config: %w", err)
	}

	var profiles map[string]Profile
	if err := yaml.Unmarshal(file, &profiles); err != nil {
		return Profile{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	p, ok := profiles[profile]
	if !ok {
		return Profile{}, fmt.Errorf("profile %q not found in %s", profile, path)
	}

	// 3. Override with Environment Variables if present
	if user := os.Getenv("NDEX_USER"); user != "" {
		p.User = user
	}
	if password := os.Getenv("NDEX_PASSWORD"); password != "" {
		p.Password = password
	}
	if server := os.Getenv("NDEX_SERVER"); server != "" {
		p.Server = server
	}

	if err := p.validate(); err != nil {
		return Profile{}, fmt.Errorf("profile %q: %w", profile, err)
	}
	return p, nil
}

func (p Profile) validate() error {
	if p.User == "" {
		return fmt.Errorf("user is not set")
	}
	if p.Password == "" {
		return fmt.Errorf("password is not set")
	}
	if p.Server == "" {
		return fmt.Errorf("server is not set")
	}
	return nil
}

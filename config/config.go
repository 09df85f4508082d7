package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/m4xw311/duolog/errors"
	"gopkg.in/yaml.v3"
)

// Config is the session configuration surface: which backend generates
// replies and the default turn cap. It is passed explicitly into session
// construction; nothing here is process-wide state.
type Config struct {
	LLMClient string `yaml:"llm"`
	Model     string `yaml:"model"`
	MaxTurns  int    `yaml:"max_turns"`
}

// LoadConfig loads configuration from the user's home directory and the
// current working directory, with the latter taking precedence. A .env file
// in the working directory is loaded first so provider credentials configured
// there are visible to the backend constructors.
func LoadConfig() (*Config, error) {
	// Missing .env is the common case and not an error.
	_ = godotenv.Load()

	cfg := &Config{}

	// Load user-level config first
	home, err := os.UserHomeDir()
	if err == nil {
		userConfigPath := filepath.Join(home, ".duolog", "config.yaml")
		if _, err := os.Stat(userConfigPath); err == nil {
			if err := loadFromFile(userConfigPath, cfg); err != nil {
				return nil, errors.Wrapf(err, "error loading user config")
			}
		}
	}

	// Load project-level config, overriding user-level
	wd, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrapf(err, "could not get working directory")
	}
	projectConfigPath := filepath.Join(wd, ".duolog", "config.yaml")
	if _, err := os.Stat(projectConfigPath); err == nil {
		if err := loadFromFile(projectConfigPath, cfg); err != nil {
			return nil, errors.Wrapf(err, "error loading project config")
		}
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	// Note: Unmarshal will overwrite fields present in the YAML. This provides
	// a simple merge where project-level config replaces user-level.
	return yaml.Unmarshal(data, cfg)
}

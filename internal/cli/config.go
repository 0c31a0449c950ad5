package cli

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigEnv names the environment variable that points at a config file.
const ConfigEnv = "CATALOGCTL_CONFIG"

var configLocations = []string{"catalogctl.yaml", "catalogctl.yml", ".catalogctl.yaml", ".catalogctl.yml"}

// FileConfig represents the catalogctl.yaml configuration structure.
type FileConfig struct {
	Gateway struct {
		URL     string        `yaml:"url"`
		Timeout time.Duration `yaml:"timeout"`
		RPS     float64       `yaml:"rps"`
		Burst   int           `yaml:"burst"`
	} `yaml:"gateway"`

	Output   string `yaml:"output"`
	LogLevel string `yaml:"log_level"`
}

// LoadFileConfig reads the config at path. With an empty path it looks at $CATALOGCTL_CONFIG and
// then the usual file names in the working directory; finding nothing is not an error.
func LoadFileConfig(path string) (*FileConfig, error) {
	if path == "" {
		path = configPath()
	}

	cfg := &FileConfig{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if cfg.Output == "" {
		cfg.Output = "table"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "warn"
	}
	return cfg, nil
}

func configPath() string {
	if path := os.Getenv(ConfigEnv); path != "" {
		return path
	}
	for _, loc := range configLocations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}
	return ""
}

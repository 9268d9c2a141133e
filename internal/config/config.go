package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config holds all configurable paths and export settings.
type Config struct {
	// Paths
	ModelPath string `yaml:"model_path"`
	PoseDir   string `yaml:"pose_dir"`
	OutputDir string `yaml:"output_dir"`

	// Export settings
	Preview     bool `yaml:"preview"`
	PreviewSize int  `yaml:"preview_size"`
	Supersample int  `yaml:"supersample"`
	Workers     int  `yaml:"workers"`

	// Logging
	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`
}

// Load reads a YAML config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	ModelPath string
	PoseDir   string
	OutputDir string
	Workers   int
	Preview   bool
}

// Resolve applies CLI flag overrides and fills empty fields with defaults.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.ModelPath != "" {
		c.ModelPath = flags.ModelPath
	}
	if flags.PoseDir != "" {
		c.PoseDir = flags.PoseDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Preview {
		c.Preview = true
	}

	if c.OutputDir == "" && c.PoseDir != "" {
		c.OutputDir = filepath.Join(filepath.Dir(c.PoseDir), "meshes")
	}

	// Defaults for export settings
	if c.PreviewSize <= 0 {
		c.PreviewSize = 256
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}
